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

package normalize

import (
	"github.com/topotester/topotester/topotester/topology"
)

// IDAllocator hands out endpoint ids. Ids start at 1 and strictly increase.
// The zero value is ready to use
type IDAllocator struct {
	last int
}

// NewIDAllocator returns an allocator whose first id is 1
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns a new id
func (allocator *IDAllocator) Next() int {
	allocator.last++
	return allocator.last
}

// Allocated returns how many ids have been handed out
func (allocator *IDAllocator) Allocated() int {
	return allocator.last
}

// Normalize flattens the interfaces of hosts into endpoints. Within one
// host, interfaces on the same (switch, swport) reuse one id. Ids are taken
// from ids strictly in host then interface order
func Normalize(hosts []topology.HostSpec, ids *IDAllocator) *Normalized {
	normalized := &Normalized{}
	for _, host := range hosts {
		ports := make(map[string]map[int]int)
		untaggedIDs := make(map[int]struct{})
		var untagged, tagged []Endpoint

		for _, iface := range host.Interfaces {
			if _, ok := ports[iface.Switch]; !ok {
				ports[iface.Switch] = make(map[int]int)
			}
			id, ok := ports[iface.Switch][iface.SwPort]
			if !ok {
				id = ids.Next()
				ports[iface.Switch][iface.SwPort] = id
			}

			endpoint := newEndpoint(id, host.Name, iface)
			normalized.Interfaces = append(normalized.Interfaces, endpoint)
			if endpoint.VLAN == nil {
				untagged = append(untagged, endpoint)
				untaggedIDs[id] = struct{}{}
			} else {
				tagged = append(tagged, endpoint)
			}
		}

		// A port only carrying vlan traffic still needs a node
		for _, endpoint := range tagged {
			if _, ok := untaggedIDs[endpoint.ID]; ok {
				continue
			}
			untaggedIDs[endpoint.ID] = struct{}{}
			untagged = append(untagged, endpoint)
		}

		normalized.Nodes = append(normalized.Nodes, untagged...)
		normalized.Tagged = append(normalized.Tagged, tagged...)
	}

	return normalized
}

func newEndpoint(id int, hostName string, iface topology.InterfaceSpec) Endpoint {
	endpoint := Endpoint{
		ID:       id,
		HostName: hostName,
		Switch:   iface.Switch,
		SwPort:   iface.SwPort,
		IPv4:     iface.IPv4,
		IPv6:     iface.IPv6,
		MAC:      iface.MAC,
	}
	if iface.VLAN != nil {
		vlan := *iface.VLAN
		endpoint.VLAN = &vlan
	}

	return endpoint
}
