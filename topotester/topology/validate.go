// Copyright 2017 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//     http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package topology

import (
	"fmt"
	"sort"
	"strings"

	log "github.com/cihub/seelog"
)

const (
	hostsMatrixKey  = "hosts_matrix"
	switchMatrixKey = "switch_matrix"
	linksKey        = "links"
	dpIDsKey        = "dp_ids"
	p4Key           = "p4"

	dpIDsLocation = switchMatrixKey + "." + dpIDsKey
	p4Location    = switchMatrixKey + "." + p4Key
)

// validator accumulates defects and warnings while walking a Document
type validator struct {
	defects  []Defect
	warnings []string
}

// parsedInterface is an interface together with what was learnt while
// parsing it
type parsedInterface struct {
	spec        InterfaceSpec
	location    string
	keyed       bool
	macDeclared bool
}

// switchMatrix is the parsed switch section
type switchMatrix struct {
	links []SwitchLinkSpec
	// dpIDs is nil when the document carries no dp_ids table
	dpIDs map[string]uint64
	p4    []string
}

// Validate checks doc and converts it into a Topology. Every defect found
// is reported in the returned *ConfigError; the topology is only returned
// when there are none. Warnings do not prevent the run
func Validate(doc Document) (*Topology, []string, error) {
	v := &validator{}

	hosts := v.hosts(doc)
	matrix := v.switchMatrix(doc)
	switches := v.switches(hosts, matrix)

	for _, warning := range v.warnings {
		log.Warnf("Topology: %s", warning)
	}
	if len(v.defects) > 0 {
		return nil, v.warnings, &ConfigError{Defects: v.defects}
	}

	return &Topology{
		Hosts:    hosts,
		Links:    matrix.links,
		Switches: switches,
	}, v.warnings, nil
}

func (v *validator) defect(location string, field string, format string, args ...interface{}) {
	v.defects = append(v.defects, Defect{
		Location: location,
		Field:    field,
		Rule:     fmt.Sprintf(format, args...),
	})
}

func (v *validator) warn(format string, args ...interface{}) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) hosts(doc Document) []HostSpec {
	raw, ok := doc[hostsMatrixKey]
	if !ok {
		v.defect(hostsMatrixKey, "", "no '%s' found", hostsMatrixKey)
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		v.defect(hostsMatrixKey, "", "expected a list of hosts, found %T", raw)
		return nil
	}
	if len(list) == 0 {
		v.defect(hostsMatrixKey, "", "%s doesn't have any content", hostsMatrixKey)
		return nil
	}

	names := make(map[string]int)
	hosts := make([]HostSpec, 0, len(list))
	for i, rawHost := range list {
		host, ok := v.host(i, rawHost, names)
		if ok {
			hosts = append(hosts, host)
		}
	}

	return hosts
}

func (v *validator) host(index int, raw interface{}, names map[string]int) (HostSpec, bool) {
	before := len(v.defects)
	location := fmt.Sprintf("host[%d]", index)

	fields, ok := raw.(map[string]interface{})
	if !ok {
		v.defect(location, "", "expected a mapping with 'name' and 'interfaces', found %T", raw)
		return HostSpec{}, false
	}

	host := HostSpec{}
	rawName, present := fields["name"]
	name, isString := rawName.(string)
	switch {
	case !present:
		v.defect(location, "name", "entry detected without a name")
	case !isString || strings.TrimSpace(name) == "":
		v.defect(location, "name", "must be a non-empty string")
	default:
		host.Name = name
		location = fmt.Sprintf("host[%d] '%s'", index, name)
		if previous, seen := names[name]; seen {
			v.defect(location, "name", "duplicate host name, already used by host[%d]", previous)
		} else {
			names[name] = index
		}
	}

	rawInterfaces, present := fields["interfaces"]
	if !present {
		v.defect(location, "interfaces", "entry detected without any interfaces")
		return host, false
	}
	list, ok := rawInterfaces.([]interface{})
	if !ok {
		v.defect(location, "interfaces", "expected a list of interfaces, found %T", rawInterfaces)
		return host, false
	}
	if len(list) == 0 {
		v.defect(location, "interfaces", "interfaces section is empty")
		return host, false
	}

	parsed := make([]parsedInterface, len(list))
	for j, rawInterface := range list {
		parsed[j] = v.hostInterface(fmt.Sprintf("%s interface[%d]", location, j), rawInterface)
	}
	for j := range parsed {
		if parsed[j].keyed && !parsed[j].macDeclared {
			v.inheritMAC(j, parsed)
		}
	}

	host.Interfaces = make([]InterfaceSpec, 0, len(parsed))
	for _, iface := range parsed {
		host.Interfaces = append(host.Interfaces, iface.spec)
	}

	return host, len(v.defects) == before
}

func (v *validator) hostInterface(location string, raw interface{}) parsedInterface {
	parsed := parsedInterface{location: location, keyed: true}

	fields, ok := raw.(map[string]interface{})
	if !ok {
		v.defect(location, "", "expected a mapping, found %T", raw)
		parsed.keyed = false
		return parsed
	}

	if rawSwitch, present := fields["switch"]; !present {
		v.defect(location, "switch", "it does not have an assigned switch")
		parsed.keyed = false
	} else if name, ok := rawSwitch.(string); !ok || strings.TrimSpace(name) == "" {
		v.defect(location, "switch", "must be a non-empty switch name")
		parsed.keyed = false
	} else {
		parsed.spec.Switch = name
	}

	if rawPort, present := fields["swport"]; !present {
		v.defect(location, "swport", "it does not have a switch port")
		parsed.keyed = false
	} else if port, err := asInt(rawPort); err != nil {
		v.defect(location, "swport", "%v; expected an integer between 0 and %d", err, MaxSwitchPort)
		parsed.keyed = false
	} else if !ValidPort(port) {
		v.defect(location, "swport", "port %d out of range, expected 0..%d", port, MaxSwitchPort)
		parsed.keyed = false
	} else {
		parsed.spec.SwPort = port
	}

	rawIPv4, hasIPv4 := fields["ipv4"]
	rawIPv6, hasIPv6 := fields["ipv6"]
	if hasIPv4 {
		if addr, _ := rawIPv4.(string); ValidIPv4CIDR(addr) {
			parsed.spec.IPv4 = addr
		} else {
			v.defect(location, "ipv4", "'%v' is not an ipv4 address in address/prefix form", rawIPv4)
		}
	}
	if hasIPv6 {
		if addr, _ := rawIPv6.(string); ValidIPv6CIDR(addr) {
			parsed.spec.IPv6 = addr
		} else {
			v.defect(location, "ipv6", "'%v' is not an ipv6 address in address/prefix form", rawIPv6)
		}
	}
	if !hasIPv4 && !hasIPv6 {
		v.defect(location, "", "it has neither an ipv4 nor an ipv6 address")
	}

	if rawMAC, present := fields["mac"]; present {
		parsed.macDeclared = true
		if mac, _ := rawMAC.(string); ValidMAC(mac) {
			parsed.spec.MAC = CanonicalMAC(mac)
		} else {
			v.defect(location, "mac",
				"'%v' is not a valid mac address, only colon separated addresses are supported", rawMAC)
		}
	}

	if rawVLAN, present := fields["vlan"]; present {
		if vid, err := asInt(rawVLAN); err != nil {
			v.defect(location, "vlan", "%v; expected a vlan id between %d and %d", err, MinVLANID, MaxVLANID)
		} else if !ValidVLAN(vid) {
			v.defect(location, "vlan", "invalid vlan id %d, expected %d..%d", vid, MinVLANID, MaxVLANID)
		} else {
			parsed.spec.VLAN = &vid
		}
	}

	return parsed
}

// inheritMAC copies the mac of the sibling interfaces declared on the same
// switch port. No sibling, or siblings that disagree, is a defect
func (v *validator) inheritMAC(index int, parsed []parsedInterface) {
	iface := &parsed[index]
	macs := []string{}
	for j, other := range parsed {
		if j == index || !other.keyed || !other.macDeclared || other.spec.MAC == "" {
			continue
		}
		if other.spec.Switch != iface.spec.Switch || other.spec.SwPort != iface.spec.SwPort {
			continue
		}
		if !containsString(macs, other.spec.MAC) {
			macs = append(macs, other.spec.MAC)
		}
	}

	switch len(macs) {
	case 0:
		v.defect(iface.location, "mac",
			"no mac address was provided and no interface on %s port %d declares one",
			iface.spec.Switch, iface.spec.SwPort)
	case 1:
		iface.spec.MAC = macs[0]
	default:
		v.defect(iface.location, "mac",
			"no mac address was provided and interfaces on %s port %d declare conflicting addresses: %s",
			iface.spec.Switch, iface.spec.SwPort, strings.Join(macs, ", "))
	}
}

func (v *validator) switchMatrix(doc Document) switchMatrix {
	matrix := switchMatrix{}

	raw, ok := doc[switchMatrixKey]
	if !ok {
		v.defect(switchMatrixKey, "", "no '%s' found", switchMatrixKey)
		return matrix
	}
	fields, ok := raw.(map[string]interface{})
	if !ok || len(fields) == 0 {
		v.defect(switchMatrixKey, "", "switch matrix is empty")
		return matrix
	}

	if rawLinks, present := fields[linksKey]; !present {
		v.defect(switchMatrixKey, linksKey, "no links section found")
	} else if list, ok := rawLinks.([]interface{}); !ok {
		v.defect(switchMatrixKey, linksKey, "expected a list of links, found %T", rawLinks)
	} else {
		for i, rawLink := range list {
			if link, ok := v.link(i, rawLink); ok {
				matrix.links = append(matrix.links, link)
			}
		}
	}

	if rawDPIDs, present := fields[dpIDsKey]; present {
		matrix.dpIDs = v.dpIDs(rawDPIDs)
	} else {
		v.warn("no %s section found, datapath ids generated by the backend might not match those in the controller config", dpIDsKey)
	}

	if rawP4, present := fields[p4Key]; present {
		matrix.p4 = v.p4Switches(rawP4)
	}

	return matrix
}

func (v *validator) link(index int, raw interface{}) (SwitchLinkSpec, bool) {
	location := fmt.Sprintf("link[%d]", index)
	fields, ok := raw.([]interface{})
	if !ok || len(fields) != 4 {
		v.defect(location, "", "invalid link %v, expected [switch1_name, port1, switch2_name, port2]", raw)
		return SwitchLinkSpec{}, false
	}

	before := len(v.defects)
	link := SwitchLinkSpec{}
	link.SwitchA = v.linkSwitch(location, "switchA", fields[0])
	link.PortA = v.linkPort(location, "portA", fields[1])
	link.SwitchB = v.linkSwitch(location, "switchB", fields[2])
	link.PortB = v.linkPort(location, "portB", fields[3])

	return link, len(v.defects) == before
}

func (v *validator) linkSwitch(location string, field string, raw interface{}) string {
	name, ok := raw.(string)
	if !ok || strings.TrimSpace(name) == "" {
		v.defect(location, field, "'%v' is not a switch name", raw)
		return ""
	}
	return name
}

func (v *validator) linkPort(location string, field string, raw interface{}) int {
	port, err := asInt(raw)
	if err != nil {
		v.defect(location, field, "%v; please check value of port numbers", err)
		return 0
	}
	if !ValidPort(port) {
		v.defect(location, field, "invalid port number %d, ensure port numbers are between 0 and %d", port, MaxSwitchPort)
		return 0
	}
	return port
}

// dpIDs accepts either a mapping of switch name to datapath id or a list of
// [switch name, datapath id] pairs
func (v *validator) dpIDs(raw interface{}) map[string]uint64 {
	dpIDs := make(map[string]uint64)
	add := func(location string, rawName interface{}, rawID interface{}) {
		name, ok := rawName.(string)
		if !ok || name == "" {
			v.defect(location, "", "'%v' is not a switch name", rawName)
			return
		}
		dpID, err := ParseDatapathID(rawID)
		if err != nil {
			v.defect(dpIDsLocation, name, "%v; please ensure that dp_ids are valid numbers", err)
			return
		}
		dpIDs[name] = dpID
	}

	switch table := raw.(type) {
	case map[string]interface{}:
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			add(dpIDsLocation, name, table[name])
		}
	case []interface{}:
		for i, rawPair := range table {
			location := fmt.Sprintf("%s[%d]", dpIDsLocation, i)
			pair, ok := rawPair.([]interface{})
			if !ok || len(pair) != 2 {
				v.defect(location, "", "expected a [switch_name, dp_id] pair, found %v", rawPair)
				continue
			}
			add(location, pair[0], pair[1])
		}
	default:
		v.defect(dpIDsLocation, "", "expected a mapping of switch name to datapath id, found %T", raw)
	}

	return dpIDs
}

func (v *validator) p4Switches(raw interface{}) []string {
	list, ok := raw.([]interface{})
	if !ok {
		v.defect(p4Location, "", "expected a list of switch names, found %T", raw)
		return nil
	}

	names := make([]string, 0, len(list))
	for i, rawName := range list {
		name, ok := rawName.(string)
		if !ok || strings.TrimSpace(name) == "" {
			v.defect(fmt.Sprintf("%s[%d]", p4Location, i), "", "'%v' is not a switch name", rawName)
			continue
		}
		names = append(names, name)
	}

	return names
}

// switches builds the switch descriptors in order of first reference, links
// first, and checks that no switch port is claimed twice
func (v *validator) switches(hosts []HostSpec, matrix switchMatrix) []SwitchDescriptor {
	order := []string{}
	seen := make(map[string]struct{})
	reference := func(name string) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			order = append(order, name)
		}
	}

	portOwners := make(map[string]string)
	claim := func(sw string, port int, owner string) {
		key := fmt.Sprintf("%s:%d", sw, port)
		if previous, ok := portOwners[key]; ok && previous != owner {
			v.defect(owner, "", "%s port %d is already used by %s", sw, port, previous)
			return
		}
		portOwners[key] = owner
	}

	for i, link := range matrix.links {
		reference(link.SwitchA)
		reference(link.SwitchB)
		owner := fmt.Sprintf("link[%d]", i)
		claim(link.SwitchA, link.PortA, owner)
		claim(link.SwitchB, link.PortB, owner)
	}
	for _, host := range hosts {
		for _, iface := range host.Interfaces {
			reference(iface.Switch)
			claim(iface.Switch, iface.SwPort, fmt.Sprintf("host '%s'", host.Name))
		}
	}

	alternate := make(map[string]struct{})
	for _, name := range matrix.p4 {
		alternate[name] = struct{}{}
		if _, ok := seen[name]; !ok {
			v.warn("p4 switch %s is not referenced by any link or interface", name)
		}
	}

	switches := make([]SwitchDescriptor, 0, len(order))
	for _, name := range order {
		_, isAlternate := alternate[name]
		descriptor := SwitchDescriptor{
			Name:                       name,
			Alternate:                  isAlternate,
			SupportsControlledFailover: !isAlternate,
		}
		if matrix.dpIDs != nil {
			if dpID, ok := matrix.dpIDs[name]; ok {
				descriptor.DatapathID = &dpID
			} else if !isAlternate {
				v.defect(dpIDsLocation, name, "no datapath id for referenced switch")
			}
		}
		switches = append(switches, descriptor)
	}

	return switches
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
