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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"
	"github.com/topotester/topotester/pkg/execwrapper"
	"github.com/topotester/topotester/pkg/netlinkwrapper"
	"github.com/vishvananda/netlink"
)

const (
	// BridgeDriver builds switches out of linux bridges
	BridgeDriver = "bridge"
	// OVSDriver builds switches out of open vswitch bridges
	OVSDriver = "ovs"
	// P4Driver runs alternate switches as p4 software switches
	P4Driver = "p4"

	ovsVsctlExecutableName = "ovs-vsctl"
	defaultSysfsNetPath    = "/sys/class/net"
	// bridgeForwardDelay is the shortest forward delay the kernel accepts,
	// in centiseconds
	bridgeForwardDelay = "200"

	fileExistsErrMsg = "file exists"
)

// SwitchDrivers lists the drivers that can be selected for standard
// switches
var SwitchDrivers = []string{BridgeDriver, OVSDriver}

// switchDriver creates and drives one kind of switch
type switchDriver interface {
	Name() string
	Create(ctx context.Context, sw *switchInstance) error
	AttachPort(ctx context.Context, sw *switchInstance, port int, portName string) error
	Start(ctx context.Context, sw *switchInstance) error
	Stop(ctx context.Context, sw *switchInstance) error
}

// bridgeDriver uses a linux bridge per switch. Spanning tree is enabled so
// that redundant links do not loop
type bridgeDriver struct {
	netLink   netlinkwrapper.NetLink
	sysfsPath string
}

func newBridgeDriver(netLink netlinkwrapper.NetLink) *bridgeDriver {
	return &bridgeDriver{
		netLink:   netLink,
		sysfsPath: defaultSysfsNetPath,
	}
}

func (*bridgeDriver) Name() string {
	return BridgeDriver
}

func (driver *bridgeDriver) Create(ctx context.Context, sw *switchInstance) error {
	name := sw.descriptor.Name
	if err := checkInterfaceName(name); err != nil {
		return errors.Wrap(err, "bridge create")
	}
	if sw.descriptor.DatapathID != nil {
		log.Debugf("Switch %s: datapath id %d is not used by the bridge driver", name, *sw.descriptor.DatapathID)
	}

	bridge, err := driver.lookupBridge(name)
	if err != nil {
		return err
	}
	if bridge == nil {
		bridgeLinkAttributes := netlink.NewLinkAttrs()
		bridgeLinkAttributes.Name = name
		err = driver.netLink.LinkAdd(&netlink.Bridge{LinkAttrs: bridgeLinkAttributes})
		if err != nil && !strings.Contains(err.Error(), fileExistsErrMsg) {
			return errors.Wrapf(err, "bridge create: unable to add bridge interface %s", name)
		}
	}

	for _, setting := range [][2]string{
		{"forward_delay", bridgeForwardDelay},
		{"stp_state", "1"},
	} {
		path := filepath.Join(driver.sysfsPath, name, "bridge", setting[0])
		if err := os.WriteFile(path, []byte(setting[1]), 0644); err != nil {
			return errors.Wrapf(err, "bridge create: unable to set %s on bridge %s", setting[0], name)
		}
	}

	return nil
}

// lookupBridge returns nil if the bridge does not exist and an error if the
// name belongs to a link that is not a bridge
func (driver *bridgeDriver) lookupBridge(name string) (*netlink.Bridge, error) {
	bridgeLink, err := driver.netLink.LinkByName(name)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); !ok {
			return nil, errors.Wrapf(err, "bridge lookup: error looking up bridge interface %s", name)
		}
		return nil, nil
	}

	bridge, ok := bridgeLink.(*netlink.Bridge)
	if !ok {
		return nil, errors.Errorf("bridge lookup: interface named %s already exists, but is not a bridge", name)
	}

	return bridge, nil
}

func (driver *bridgeDriver) AttachPort(ctx context.Context, sw *switchInstance, port int, portName string) error {
	bridge, err := driver.lookupBridge(sw.descriptor.Name)
	if err != nil {
		return err
	}
	if bridge == nil {
		return errors.Errorf("bridge attach: bridge %s not found", sw.descriptor.Name)
	}

	link, err := driver.netLink.LinkByName(portName)
	if err != nil {
		return errors.Wrapf(err, "bridge attach: unable to find port %s", portName)
	}
	if err := driver.netLink.LinkSetMaster(link, bridge); err != nil {
		return errors.Wrapf(err, "bridge attach: unable to attach %s to bridge %s", portName, sw.descriptor.Name)
	}

	return nil
}

func (driver *bridgeDriver) Start(ctx context.Context, sw *switchInstance) error {
	bridge, err := driver.lookupBridge(sw.descriptor.Name)
	if err != nil {
		return err
	}
	if bridge == nil {
		return errors.Errorf("bridge start: bridge %s not found", sw.descriptor.Name)
	}
	if err := driver.netLink.LinkSetUp(bridge); err != nil {
		return errors.Wrapf(err, "bridge start: unable to bring up bridge %s", sw.descriptor.Name)
	}

	return nil
}

func (driver *bridgeDriver) Stop(ctx context.Context, sw *switchInstance) error {
	bridge, err := driver.lookupBridge(sw.descriptor.Name)
	if err != nil {
		return err
	}
	if bridge == nil {
		return nil
	}
	if err := driver.netLink.LinkDel(bridge); err != nil {
		return errors.Wrapf(err, "bridge stop: unable to delete bridge %s", sw.descriptor.Name)
	}

	return nil
}

// ovsDriver uses an open vswitch bridge per switch, managed by an external
// openflow controller
type ovsDriver struct {
	exec       execwrapper.Exec
	controller string
}

func newOVSDriver(exec execwrapper.Exec, controller string) *ovsDriver {
	return &ovsDriver{
		exec:       exec,
		controller: controller,
	}
}

func (*ovsDriver) Name() string {
	return OVSDriver
}

// datapathID returns the switch's datapath id, falling back to its
// position in the topology
func datapathID(sw *switchInstance) uint64 {
	if sw.descriptor.DatapathID != nil {
		return *sw.descriptor.DatapathID
	}
	log.Warnf("Switch %s has no datapath id, using %d; it may not match the controller config",
		sw.descriptor.Name, sw.index+1)
	return uint64(sw.index + 1)
}

func (driver *ovsDriver) Create(ctx context.Context, sw *switchInstance) error {
	name := sw.descriptor.Name
	return driver.vsctl(ctx,
		"--may-exist", "add-br", name,
		"--", "set", "bridge", name,
		fmt.Sprintf("other-config:datapath-id=%016x", datapathID(sw)),
		"fail-mode=secure",
		"protocols=OpenFlow13")
}

func (driver *ovsDriver) AttachPort(ctx context.Context, sw *switchInstance, port int, portName string) error {
	args := []string{"--may-exist", "add-port", sw.descriptor.Name, portName}
	// openflow port 0 is reserved, let ovs pick one
	if port > 0 {
		args = append(args, "--", "set", "interface", portName, fmt.Sprintf("ofport_request=%d", port))
	}
	return driver.vsctl(ctx, args...)
}

func (driver *ovsDriver) Start(ctx context.Context, sw *switchInstance) error {
	return driver.vsctl(ctx, "set-controller", sw.descriptor.Name, driver.controller)
}

func (driver *ovsDriver) Stop(ctx context.Context, sw *switchInstance) error {
	return driver.vsctl(ctx, "--if-exists", "del-br", sw.descriptor.Name)
}

func (driver *ovsDriver) vsctl(ctx context.Context, args ...string) error {
	cmd := driver.exec.CommandContext(ctx, ovsVsctlExecutableName, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Errorf("Error executing '%s' with args '%v': raw output: %s",
			ovsVsctlExecutableName, args, string(out))
		return errors.Wrapf(err, "ovs: command failed: %s %v; output: %s",
			ovsVsctlExecutableName, args, string(out))
	}

	return nil
}
