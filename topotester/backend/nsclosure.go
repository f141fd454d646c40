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
	"context"
	"net"
	"strings"

	"github.com/containernetworking/cni/pkg/ns"
	"github.com/pkg/errors"
	"github.com/topotester/topotester/pkg/execwrapper"
	"github.com/topotester/topotester/pkg/netlinkwrapper"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

const loopbackInterfaceName = "lo"

// createNodeVethContext wraps the parameters and the method to create the
// node's interface inside its namespace. The peer becomes the switch port
// in the host namespace
type createNodeVethContext struct {
	netLink      netlinkwrapper.NetLink
	hostPortName string
	hardwareAddr net.HardwareAddr
}

func newCreateNodeVethContext(netLink netlinkwrapper.NetLink, hostPortName string, mac string) (*createNodeVethContext, error) {
	hardwareAddr, err := net.ParseMAC(mac)
	if err != nil {
		return nil, errors.Wrapf(err, "create node: malformatted mac address specified: %s", mac)
	}

	return &createNodeVethContext{
		netLink:      netLink,
		hostPortName: hostPortName,
		hardwareAddr: hardwareAddr,
	}, nil
}

// run defines the closure to execute within the node's namespace
func (closureContext *createNodeVethContext) run(hostNS ns.NetNS) error {
	linkAttrs := netlink.NewLinkAttrs()
	linkAttrs.Name = nodeInterfaceName
	err := closureContext.netLink.LinkAdd(&netlink.Veth{
		LinkAttrs: linkAttrs,
		PeerName:  closureContext.hostPortName,
	})
	if err != nil {
		return errors.Wrapf(err, "create node: unable to add veth pair %s/%s",
			nodeInterfaceName, closureContext.hostPortName)
	}

	link, err := closureContext.netLink.LinkByName(nodeInterfaceName)
	if err != nil {
		return errors.Wrapf(err, "create node: unable to get link for device '%s'", nodeInterfaceName)
	}
	err = closureContext.netLink.LinkSetHardwareAddr(link, closureContext.hardwareAddr)
	if err != nil {
		return errors.Wrapf(err, "create node: unable to set mac address %s", closureContext.hardwareAddr)
	}
	err = closureContext.netLink.LinkSetUp(link)
	if err != nil {
		return errors.Wrapf(err, "create node: unable to bring up device '%s'", nodeInterfaceName)
	}

	peer, err := closureContext.netLink.LinkByName(closureContext.hostPortName)
	if err != nil {
		return errors.Wrapf(err, "create node: unable to get link for device '%s'", closureContext.hostPortName)
	}
	err = closureContext.netLink.LinkSetNsFd(peer, int(hostNS.Fd()))
	if err != nil {
		return errors.Wrapf(err, "create node: unable to move '%s' to the host namespace", closureContext.hostPortName)
	}

	loopback, err := closureContext.netLink.LinkByName(loopbackInterfaceName)
	if err != nil {
		return errors.Wrap(err, "create node: unable to get the loopback device")
	}
	err = closureContext.netLink.LinkSetUp(loopback)
	if err != nil {
		return errors.Wrap(err, "create node: unable to bring up the loopback device")
	}

	return nil
}

// configureAddressContext wraps the parameters and the method to assign an
// endpoint address inside the node's namespace
type configureAddressContext struct {
	netLink netlinkwrapper.NetLink
	vlan    *int
	addr    *netlink.Addr
}

func newConfigureAddressContext(netLink netlinkwrapper.NetLink, vlan *int, family Family, cidr string) (*configureAddressContext, error) {
	addr, err := netLink.ParseAddr(cidr)
	if err != nil {
		return nil, errors.Wrapf(err, "configure address: unable to parse %s address '%s'", family, cidr)
	}
	if family == IPv6 {
		// Skip duplicate address detection so the address is usable at once
		addr.Flags |= unix.IFA_F_NODAD
	}

	return &configureAddressContext{
		netLink: netLink,
		vlan:    vlan,
		addr:    addr,
	}, nil
}

// run defines the closure to execute within the node's namespace
func (closureContext *configureAddressContext) run(_ ns.NetNS) error {
	link, err := closureContext.link()
	if err != nil {
		return err
	}

	err = closureContext.netLink.AddrAdd(link, closureContext.addr)
	if err != nil && !strings.Contains(err.Error(), fileExistsErrMsg) {
		return errors.Wrapf(err, "configure address: unable to add address %s to '%s'",
			closureContext.addr.IPNet, link.Attrs().Name)
	}

	return nil
}

// link returns the interface the address goes on, creating the vlan
// sub-interface if needed
func (closureContext *configureAddressContext) link() (netlink.Link, error) {
	if closureContext.vlan == nil {
		link, err := closureContext.netLink.LinkByName(nodeInterfaceName)
		if err != nil {
			return nil, errors.Wrapf(err, "configure address: unable to get link for device '%s'", nodeInterfaceName)
		}
		return link, nil
	}

	vid := *closureContext.vlan
	name := vlanInterfaceName(vid)
	link, err := closureContext.netLink.LinkByName(name)
	if err == nil {
		return link, nil
	}
	if _, ok := err.(netlink.LinkNotFoundError); !ok {
		return nil, errors.Wrapf(err, "configure address: unable to get link for device '%s'", name)
	}

	parent, err := closureContext.netLink.LinkByName(nodeInterfaceName)
	if err != nil {
		return nil, errors.Wrapf(err, "configure address: unable to get link for device '%s'", nodeInterfaceName)
	}
	linkAttrs := netlink.NewLinkAttrs()
	linkAttrs.Name = name
	linkAttrs.ParentIndex = parent.Attrs().Index
	err = closureContext.netLink.LinkAdd(&netlink.Vlan{
		LinkAttrs: linkAttrs,
		VlanId:    vid,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "configure address: unable to add vlan device '%s'", name)
	}

	link, err = closureContext.netLink.LinkByName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "configure address: unable to get link for device '%s'", name)
	}
	err = closureContext.netLink.LinkSetUp(link)
	if err != nil {
		return nil, errors.Wrapf(err, "configure address: unable to bring up device '%s'", name)
	}

	return link, nil
}

// execContext runs a command inside a node's namespace. The command's own
// error is kept apart from errors entering the namespace
type execContext struct {
	exec   execwrapper.Exec
	ctx    context.Context
	argv   []string
	output []byte
	err    error
}

func newExecContext(exec execwrapper.Exec, ctx context.Context, argv []string) *execContext {
	return &execContext{
		exec: exec,
		ctx:  ctx,
		argv: argv,
	}
}

// run defines the closure to execute within the node's namespace
func (closureContext *execContext) run(_ ns.NetNS) error {
	cmd := closureContext.exec.CommandContext(closureContext.ctx, closureContext.argv[0], closureContext.argv[1:]...)
	closureContext.output, closureContext.err = cmd.CombinedOutput()
	return nil
}
