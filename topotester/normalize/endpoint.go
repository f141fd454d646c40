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
	"fmt"
	"strconv"
)

// Endpoint is a deduplicated, addressable network interface. Interfaces of
// one host sharing a switch port share the endpoint id
type Endpoint struct {
	ID       int
	HostName string
	Switch   string
	SwPort   int
	IPv4     string
	IPv6     string
	MAC      string
	VLAN     *int
}

// Key returns the vlan group the endpoint belongs to
func (endpoint Endpoint) Key() VlanKey {
	if endpoint.VLAN == nil {
		return Untagged
	}
	return VlanKey(*endpoint.VLAN)
}

func (endpoint Endpoint) String() string {
	return fmt.Sprintf("%s(id=%d %s:%d vlan=%s)",
		endpoint.HostName, endpoint.ID, endpoint.Switch, endpoint.SwPort, endpoint.Key())
}

// VlanKey identifies a vlan group. Untagged is never a valid vlan id
type VlanKey int

// Untagged is the key of the group of endpoints without a vlan
const Untagged VlanKey = 0

func (key VlanKey) String() string {
	if key == Untagged {
		return "none"
	}
	return strconv.Itoa(int(key))
}

// VlanGroup is the set of endpoints expected to reach each other at layer
// 2, in normalization order
type VlanGroup struct {
	Key     VlanKey
	Members []Endpoint
}

// Normalized is the result of flattening the hosts of a topology
type Normalized struct {
	// Interfaces has one endpoint per input interface, in traversal order
	Interfaces []Endpoint
	// Nodes has one entry per untagged interface plus one per port that
	// only carries vlan traffic. The backend builds one node per id
	Nodes []Endpoint
	// Tagged has one entry per vlan interface
	Tagged []Endpoint
}

// NodeIDs returns the distinct endpoint ids of Nodes in order
func (n *Normalized) NodeIDs() []int {
	seen := make(map[int]struct{}, len(n.Nodes))
	ids := make([]int, 0, len(n.Nodes))
	for _, node := range n.Nodes {
		if _, ok := seen[node.ID]; ok {
			continue
		}
		seen[node.ID] = struct{}{}
		ids = append(ids, node.ID)
	}

	return ids
}

// Node returns the node entry of the given endpoint id
func (n *Normalized) Node(id int) (Endpoint, bool) {
	for _, node := range n.Nodes {
		if node.ID == id {
			return node, true
		}
	}

	return Endpoint{}, false
}
