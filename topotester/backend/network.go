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

package backend

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/topotester/topotester/topotester/normalize"
	"github.com/topotester/topotester/topotester/topology"
	"golang.org/x/sys/unix"
)

const (
	nodeInterfaceName = "eth0"
	netNSNamePrefix   = "tt-h"
	// maxInterfaceNameLength excludes the terminating NUL
	maxInterfaceNameLength = unix.IFNAMSIZ - 1
)

// Network is the state of one emulated network
type Network struct {
	nodes    map[int]*node
	nodeIDs  []int
	links    []topology.SwitchLinkSpec
	switches []*switchInstance
	started  bool
	stopped  bool
}

type node struct {
	handle   NodeHandle
	endpoint normalize.Endpoint
	// vlans holds the vlan sub-interfaces created on the node
	vlans map[int]struct{}
}

type switchInstance struct {
	descriptor topology.SwitchDescriptor
	index      int
	// driverIndex is the position among switches of the same driver
	driverIndex int
	driver      switchDriver
	// ports maps switch port numbers to interface names
	ports map[int]string
}

// Nodes returns the handles of every node, in creation order
func (network *Network) Nodes() []NodeHandle {
	handles := make([]NodeHandle, 0, len(network.nodeIDs))
	for _, id := range network.nodeIDs {
		handles = append(handles, network.nodes[id].handle)
	}
	return handles
}

// Links returns the switch to switch links
func (network *Network) Links() []topology.SwitchLinkSpec {
	return network.links
}

func (network *Network) node(id int) (*node, error) {
	n, ok := network.nodes[id]
	if !ok {
		return nil, errors.Errorf("no node for endpoint id %d", id)
	}
	return n, nil
}

// linksBetween returns the links connecting switchA and switchB in either
// direction
func (network *Network) linksBetween(switchA string, switchB string) []topology.SwitchLinkSpec {
	var links []topology.SwitchLinkSpec
	for _, link := range network.links {
		if (link.SwitchA == switchA && link.SwitchB == switchB) ||
			(link.SwitchA == switchB && link.SwitchB == switchA) {
			links = append(links, link)
		}
	}
	return links
}

func netNSName(id int) string {
	return fmt.Sprintf("%s%d", netNSNamePrefix, id)
}

func switchPortName(switchName string, port int) string {
	return fmt.Sprintf("%s-eth%d", switchName, port)
}

func vlanInterfaceName(vid int) string {
	return fmt.Sprintf("%s.%d", nodeInterfaceName, vid)
}

// bindingName returns the interface a probe from endpoint is bound to
func bindingName(endpoint normalize.Endpoint) string {
	if endpoint.VLAN == nil {
		return nodeInterfaceName
	}
	return vlanInterfaceName(*endpoint.VLAN)
}

func checkInterfaceName(name string) error {
	if len(name) > maxInterfaceNameLength {
		return errors.Errorf("interface name %s is longer than %d characters, use shorter switch names",
			name, maxInterfaceNameLength)
	}
	return nil
}

func (network *Network) switchByName(name string) *switchInstance {
	for _, sw := range network.switches {
		if sw.descriptor.Name == name {
			return sw
		}
	}
	return nil
}
