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
)

// Document is a decoded, not yet validated, topology description
type Document map[string]interface{}

// InterfaceSpec is one logical interface of a host
type InterfaceSpec struct {
	Switch string
	SwPort int
	// IPv4 and IPv6 are CIDR strings, empty when absent
	IPv4 string
	IPv6 string
	// MAC is always set after validation, inherited from a sibling
	// interface on the same switch port when not declared
	MAC  string
	VLAN *int
}

// HostSpec is a named host and its interfaces, in declaration order
type HostSpec struct {
	Name       string
	Interfaces []InterfaceSpec
}

// SwitchLinkSpec is a link between two switch ports
type SwitchLinkSpec struct {
	SwitchA string
	PortA   int
	SwitchB string
	PortB   int
}

func (link SwitchLinkSpec) String() string {
	return fmt.Sprintf("%s:%d<->%s:%d", link.SwitchA, link.PortA, link.SwitchB, link.PortB)
}

// SwitchDescriptor describes a switch referenced by the topology
type SwitchDescriptor struct {
	Name string
	// DatapathID is nil when the topology carries no dp_ids table. The
	// backend then picks one, which may not match an external controller
	DatapathID *uint64
	// SupportsControlledFailover is false for switches whose behavior
	// under link failure has not been validated
	SupportsControlledFailover bool
	// Alternate selects the alternate (p4) switch driver
	Alternate bool
}

// Topology is a validated topology description
type Topology struct {
	Hosts    []HostSpec
	Links    []SwitchLinkSpec
	Switches []SwitchDescriptor
}

// Switch returns the descriptor of the named switch
func (topo *Topology) Switch(name string) (SwitchDescriptor, bool) {
	for _, sw := range topo.Switches {
		if sw.Name == name {
			return sw, true
		}
	}

	return SwitchDescriptor{}, false
}
