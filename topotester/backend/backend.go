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

//go:generate mockgen -destination=mocks/backend_mocks.go -copyright_file=../../scripts/copyright_file github.com/topotester/topotester/topotester/backend Backend

import (
	"context"
	"net"

	"github.com/topotester/topotester/topotester/normalize"
	"github.com/topotester/topotester/topotester/topology"
)

// Family is an IP address family
type Family int

const (
	// IPv4 is the ipv4 address family
	IPv4 Family = 4
	// IPv6 is the ipv6 address family
	IPv6 Family = 6
)

func (family Family) String() string {
	if family == IPv6 {
		return "ipv6"
	}
	return "ipv4"
}

// LinkStatus is the administrative state requested for a switch link
type LinkStatus string

const (
	// LinkUp brings a link up
	LinkUp LinkStatus = "up"
	// LinkDown takes a link down
	LinkDown LinkStatus = "down"
)

// ProbeResult holds the packet counts of one probe
type ProbeResult struct {
	Sent     int
	Received int
	// Anomaly is set when the probe output could not be parsed or the
	// probe timed out. The result then counts as a loss
	Anomaly string
}

// NodeHandle identifies the emulated node of an endpoint
type NodeHandle struct {
	ID        int
	HostName  string
	NetNSName string
	NetNSPath string
	// Interface is the node's untagged interface
	Interface string
}

// Backend builds and drives an emulated network
type Backend interface {
	// BuildTopology creates one node per distinct endpoint id of nodes,
	// the switches and the switch to switch links
	BuildTopology(ctx context.Context, nodes []normalize.Endpoint, links []topology.SwitchLinkSpec, switches []topology.SwitchDescriptor) (*Network, error)
	// Start starts the switches of network
	Start(ctx context.Context, network *Network) error
	// Stop tears down everything BuildTopology and Start created. It is
	// safe to call more than once
	Stop(ctx context.Context, network *Network) error
	// ConfigureEndpointAddress assigns cidr to the endpoint's interface,
	// creating the vlan sub-interface first for tagged endpoints
	ConfigureEndpointAddress(ctx context.Context, network *Network, endpoint normalize.Endpoint, family Family, cidr string) error
	// SetLinkStatus changes the state of every link between switchA and
	// switchB and returns once the new state is confirmed
	SetLinkStatus(ctx context.Context, network *Network, switchA string, switchB string, status LinkStatus) error
	// Probe sends echo requests from src's interface to dst
	Probe(ctx context.Context, network *Network, src normalize.Endpoint, dst net.IP, family Family) (ProbeResult, error)
	// ResolveEndpointHandle returns the node of an endpoint id
	ResolveEndpointHandle(network *Network, endpointID int) (NodeHandle, error)
	// Exec runs argv inside the node of an endpoint id
	Exec(ctx context.Context, network *Network, endpointID int, argv []string) ([]byte, error)
}
