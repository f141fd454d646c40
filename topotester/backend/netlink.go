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
	"os"
	"os/exec"
	"strings"
	"sync"

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"
	"github.com/topotester/topotester/pkg/cninswrapper"
	"github.com/topotester/topotester/pkg/execwrapper"
	"github.com/topotester/topotester/pkg/netlinkwrapper"
	"github.com/topotester/topotester/pkg/nsutil"
	"github.com/topotester/topotester/topotester/normalize"
	"github.com/topotester/topotester/topotester/topology"
	"github.com/vishvananda/netlink"
)

const (
	// DefaultController is the openflow controller ovs switches connect to
	DefaultController = "tcp:127.0.0.1:6653"

	backendOrigin = "backend"
)

// Options configures the netlink backend
type Options struct {
	// SwitchDriver selects the driver of standard switches
	SwitchDriver string
	// Controller is the openflow controller address used by the ovs driver
	Controller string
	// P4JSONPath is the compiled program loaded by p4 switches
	P4JSONPath string
	// ThriftPortBase is the thrift port of the first p4 switch
	ThriftPortBase int
	// P4LogDir receives the output of p4 switch processes
	P4LogDir string
	// PingCount is the number of echo requests per probe
	PingCount int
}

func (options *Options) setDefaults() {
	if options.SwitchDriver == "" {
		options.SwitchDriver = BridgeDriver
	}
	if options.Controller == "" {
		options.Controller = DefaultController
	}
	if options.ThriftPortBase == 0 {
		options.ThriftPortBase = DefaultThriftPortBase
	}
	if options.P4LogDir == "" {
		options.P4LogDir = os.TempDir()
	}
	if options.PingCount < 1 {
		options.PingCount = 1
	}
}

// netlinkBackend emulates nodes with network namespaces and links with
// veth pairs
type netlinkBackend struct {
	netLink netlinkwrapper.NetLink
	ns      cninswrapper.NS
	netNS   nsutil.NetNS
	exec    execwrapper.Exec
	drivers map[string]switchDriver
	options Options
	// linkLock serializes link state changes
	linkLock sync.Mutex
}

// New creates a Backend built on netlink and named network namespaces
func New(options Options) (Backend, error) {
	return newBackend(options,
		netlinkwrapper.NewNetLink(),
		cninswrapper.NewNS(),
		nsutil.New(),
		execwrapper.NewExec())
}

func newBackend(options Options,
	netLink netlinkwrapper.NetLink,
	ns cninswrapper.NS,
	netNS nsutil.NetNS,
	exec execwrapper.Exec) (*netlinkBackend, error) {
	options.setDefaults()
	if options.SwitchDriver != BridgeDriver && options.SwitchDriver != OVSDriver {
		return nil, newError("new", backendOrigin,
			errors.Errorf("unknown switch driver '%s', expected one of %s",
				options.SwitchDriver, strings.Join(SwitchDrivers, ", ")))
	}

	return &netlinkBackend{
		netLink: netLink,
		ns:      ns,
		netNS:   netNS,
		exec:    exec,
		drivers: map[string]switchDriver{
			BridgeDriver: newBridgeDriver(netLink),
			OVSDriver:    newOVSDriver(exec, options.Controller),
			P4Driver:     newP4Driver(exec, options.P4JSONPath, options.ThriftPortBase, options.P4LogDir),
		},
		options: options,
	}, nil
}

func (b *netlinkBackend) BuildTopology(ctx context.Context,
	nodes []normalize.Endpoint,
	links []topology.SwitchLinkSpec,
	switches []topology.SwitchDescriptor) (*Network, error) {
	network := &Network{
		nodes: make(map[int]*node),
		links: links,
	}
	if err := b.planSwitches(network, switches); err != nil {
		return nil, newError("build topology", backendOrigin, err)
	}
	if err := b.planNodes(network, nodes); err != nil {
		return nil, newError("build topology", backendOrigin, err)
	}
	if err := b.planLinks(network); err != nil {
		return nil, newError("build topology", backendOrigin, err)
	}

	if err := b.build(ctx, network); err != nil {
		log.Errorf("Error building topology, cleaning up: %v", err)
		if stopErr := b.Stop(ctx, network); stopErr != nil {
			log.Warnf("Error cleaning up partially built topology: %v", stopErr)
		}
		return nil, newError("build topology", backendOrigin, err)
	}

	return network, nil
}

func (b *netlinkBackend) planSwitches(network *Network, switches []topology.SwitchDescriptor) error {
	driverCount := make(map[string]int)
	for i, descriptor := range switches {
		driverName := b.options.SwitchDriver
		if descriptor.Alternate {
			driverName = P4Driver
		}
		driver, ok := b.drivers[driverName]
		if !ok {
			return errors.Errorf("no driver %s for switch %s", driverName, descriptor.Name)
		}

		network.switches = append(network.switches, &switchInstance{
			descriptor:  descriptor,
			index:       i,
			driverIndex: driverCount[driverName],
			driver:      driver,
			ports:       make(map[int]string),
		})
		driverCount[driverName]++
	}

	return nil
}

func (b *netlinkBackend) planNodes(network *Network, nodes []normalize.Endpoint) error {
	for _, endpoint := range nodes {
		if _, ok := network.nodes[endpoint.ID]; ok {
			continue
		}
		if network.switchByName(endpoint.Switch) == nil {
			return errors.Errorf("endpoint %s references unknown switch %s", endpoint, endpoint.Switch)
		}
		if err := checkInterfaceName(switchPortName(endpoint.Switch, endpoint.SwPort)); err != nil {
			return err
		}

		name := netNSName(endpoint.ID)
		network.nodes[endpoint.ID] = &node{
			handle: NodeHandle{
				ID:        endpoint.ID,
				HostName:  endpoint.HostName,
				NetNSName: name,
				NetNSPath: b.netNS.Path(name),
				Interface: nodeInterfaceName,
			},
			endpoint: endpoint,
			vlans:    make(map[int]struct{}),
		}
		network.nodeIDs = append(network.nodeIDs, endpoint.ID)
	}

	return nil
}

func (b *netlinkBackend) planLinks(network *Network) error {
	for _, link := range network.links {
		for _, name := range []string{link.SwitchA, link.SwitchB} {
			if network.switchByName(name) == nil {
				return errors.Errorf("link %s references unknown switch %s", link, name)
			}
		}
		for _, portName := range []string{switchPortName(link.SwitchA, link.PortA), switchPortName(link.SwitchB, link.PortB)} {
			if err := checkInterfaceName(portName); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *netlinkBackend) build(ctx context.Context, network *Network) error {
	for _, sw := range network.switches {
		log.Debugf("Creating %s switch %s", sw.driver.Name(), sw.descriptor.Name)
		if err := sw.driver.Create(ctx, sw); err != nil {
			return err
		}
	}

	for _, id := range network.nodeIDs {
		if err := b.createNode(ctx, network, network.nodes[id]); err != nil {
			return err
		}
	}

	for _, link := range network.links {
		if err := b.createLink(ctx, network, link); err != nil {
			return err
		}
	}

	return nil
}

func (b *netlinkBackend) createNode(ctx context.Context, network *Network, n *node) error {
	log.Debugf("Creating node %s for %s", n.handle.NetNSName, n.endpoint)
	path, err := b.netNS.Create(n.handle.NetNSName)
	if err != nil {
		return err
	}
	n.handle.NetNSPath = path

	portName := switchPortName(n.endpoint.Switch, n.endpoint.SwPort)
	closureContext, err := newCreateNodeVethContext(b.netLink, portName, n.endpoint.MAC)
	if err != nil {
		return err
	}
	if err := b.ns.WithNetNSPath(path, closureContext.run); err != nil {
		return err
	}

	return b.attachPort(ctx, network.switchByName(n.endpoint.Switch), n.endpoint.SwPort, portName)
}

func (b *netlinkBackend) createLink(ctx context.Context, network *Network, link topology.SwitchLinkSpec) error {
	log.Debugf("Creating link %s", link)
	nameA := switchPortName(link.SwitchA, link.PortA)
	nameB := switchPortName(link.SwitchB, link.PortB)

	linkAttrs := netlink.NewLinkAttrs()
	linkAttrs.Name = nameA
	err := b.netLink.LinkAdd(&netlink.Veth{
		LinkAttrs: linkAttrs,
		PeerName:  nameB,
	})
	if err != nil {
		return errors.Wrapf(err, "create link: unable to add veth pair %s/%s", nameA, nameB)
	}

	if err := b.attachPort(ctx, network.switchByName(link.SwitchA), link.PortA, nameA); err != nil {
		return err
	}
	return b.attachPort(ctx, network.switchByName(link.SwitchB), link.PortB, nameB)
}

func (b *netlinkBackend) attachPort(ctx context.Context, sw *switchInstance, port int, portName string) error {
	link, err := b.netLink.LinkByName(portName)
	if err != nil {
		return errors.Wrapf(err, "attach port: unable to get link for device '%s'", portName)
	}
	if err := sw.driver.AttachPort(ctx, sw, port, portName); err != nil {
		return err
	}
	if err := b.netLink.LinkSetUp(link); err != nil {
		return errors.Wrapf(err, "attach port: unable to bring up device '%s'", portName)
	}
	sw.ports[port] = portName

	return nil
}

func (b *netlinkBackend) Start(ctx context.Context, network *Network) error {
	if network.started {
		return nil
	}
	for _, sw := range network.switches {
		log.Infof("Starting %s switch %s", sw.driver.Name(), sw.descriptor.Name)
		if err := sw.driver.Start(ctx, sw); err != nil {
			return newError("start", backendOrigin, err)
		}
	}
	network.started = true

	return nil
}

// Stop keeps going after a failure so that as much as possible is torn
// down, and returns the first error
func (b *netlinkBackend) Stop(ctx context.Context, network *Network) error {
	if network.stopped {
		return nil
	}
	network.stopped = true

	var errs []error
	for i := len(network.switches) - 1; i >= 0; i-- {
		sw := network.switches[i]
		if err := sw.driver.Stop(ctx, sw); err != nil {
			errs = append(errs, err)
		}
	}

	for _, link := range network.links {
		portName := switchPortName(link.SwitchA, link.PortA)
		veth, err := b.netLink.LinkByName(portName)
		if err != nil {
			if _, ok := err.(netlink.LinkNotFoundError); !ok {
				errs = append(errs, errors.Wrapf(err, "stop: unable to get link for device '%s'", portName))
			}
			continue
		}
		if err := b.netLink.LinkDel(veth); err != nil {
			errs = append(errs, errors.Wrapf(err, "stop: unable to delete link %s", link))
		}
	}

	// Deleting a namespace removes the node's veth pair with it
	for _, id := range network.nodeIDs {
		if err := b.netNS.Delete(network.nodes[id].handle.NetNSName); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	for _, err := range errs[1:] {
		log.Warnf("Error stopping network: %v", err)
	}
	return newError("stop", backendOrigin, errs[0])
}

func (b *netlinkBackend) ConfigureEndpointAddress(ctx context.Context, network *Network, endpoint normalize.Endpoint, family Family, cidr string) error {
	n, err := network.node(endpoint.ID)
	if err != nil {
		return newError("configure endpoint address", backendOrigin, err)
	}

	closureContext, err := newConfigureAddressContext(b.netLink, endpoint.VLAN, family, cidr)
	if err != nil {
		return newError("configure endpoint address", backendOrigin, err)
	}
	if err := b.ns.WithNetNSPath(n.handle.NetNSPath, closureContext.run); err != nil {
		return newError("configure endpoint address", backendOrigin, err)
	}
	if endpoint.VLAN != nil {
		n.vlans[*endpoint.VLAN] = struct{}{}
	}

	log.Debugf("Configured %s address %s on %s of %s", family, cidr, bindingName(endpoint), n.handle.NetNSName)
	return nil
}

func (b *netlinkBackend) SetLinkStatus(ctx context.Context, network *Network, switchA string, switchB string, status LinkStatus) error {
	if status != LinkUp && status != LinkDown {
		return newError("set link status", backendOrigin, errors.Errorf("unknown link status '%s'", status))
	}

	b.linkLock.Lock()
	defer b.linkLock.Unlock()

	links := network.linksBetween(switchA, switchB)
	if len(links) == 0 {
		return newError("set link status", backendOrigin,
			errors.Errorf("no link between %s and %s", switchA, switchB))
	}

	var portNames []string
	for _, link := range links {
		portNames = append(portNames,
			switchPortName(link.SwitchA, link.PortA),
			switchPortName(link.SwitchB, link.PortB))
	}

	for _, portName := range portNames {
		link, err := b.netLink.LinkByName(portName)
		if err != nil {
			return newError("set link status", backendOrigin,
				errors.Wrapf(err, "unable to get link for device '%s'", portName))
		}
		if status == LinkUp {
			err = b.netLink.LinkSetUp(link)
		} else {
			err = b.netLink.LinkSetDown(link)
		}
		if err != nil {
			return newError("set link status", backendOrigin,
				errors.Wrapf(err, "unable to set device '%s' %s", portName, status))
		}
	}

	// Confirm the kernel reports the requested state
	for _, portName := range portNames {
		link, err := b.netLink.LinkByName(portName)
		if err != nil {
			return newError("set link status", backendOrigin,
				errors.Wrapf(err, "unable to get link for device '%s'", portName))
		}
		isUp := link.Attrs().Flags&net.FlagUp != 0
		if isUp != (status == LinkUp) {
			return newError("set link status", backendOrigin,
				errors.Errorf("device '%s' did not go %s", portName, status))
		}
	}

	log.Infof("Link between %s and %s is %s", switchA, switchB, status)
	return nil
}

func (b *netlinkBackend) Probe(ctx context.Context, network *Network, src normalize.Endpoint, dst net.IP, family Family) (ProbeResult, error) {
	n, err := network.node(src.ID)
	if err != nil {
		return ProbeResult{}, newError("probe", backendOrigin, err)
	}

	argv := append([]string{pingExecutableName}, pingArgs(bindingName(src), b.options.PingCount, dst, family)...)
	execCtx := newExecContext(b.exec, ctx, argv)
	if err := b.ns.WithNetNSPath(n.handle.NetNSPath, execCtx.run); err != nil {
		return ProbeResult{}, newError("probe", backendOrigin, err)
	}

	switch ctx.Err() {
	case context.DeadlineExceeded:
		log.Warnf("Probe from %s to %s timed out", src, dst)
		return ProbeResult{
			Sent:     b.options.PingCount,
			Received: 0,
			Anomaly:  "probe timed out",
		}, nil
	case context.Canceled:
		return ProbeResult{}, newError("probe", backendOrigin, ctx.Err())
	}

	if execCtx.err != nil {
		// ping exits non zero when nothing was received
		if _, ok := execCtx.err.(*exec.ExitError); !ok {
			return ProbeResult{}, newError("probe", backendOrigin,
				errors.Wrapf(execCtx.err, "unable to run %s %v", pingExecutableName, argv[1:]))
		}
	}

	log.Debugf("Probe %v from %s: %s", argv, n.handle.NetNSName, string(execCtx.output))
	result := parsePing(string(execCtx.output))
	if result.Anomaly != "" {
		log.Warnf("Probe from %s to %s: %s", src, dst, result.Anomaly)
	}

	return result, nil
}

func (b *netlinkBackend) ResolveEndpointHandle(network *Network, endpointID int) (NodeHandle, error) {
	n, err := network.node(endpointID)
	if err != nil {
		return NodeHandle{}, newError("resolve endpoint", backendOrigin, err)
	}
	return n.handle, nil
}

func (b *netlinkBackend) Exec(ctx context.Context, network *Network, endpointID int, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("exec: empty command")
	}
	n, err := network.node(endpointID)
	if err != nil {
		return nil, newError("exec", backendOrigin, err)
	}

	execCtx := newExecContext(b.exec, ctx, argv)
	if err := b.ns.WithNetNSPath(n.handle.NetNSPath, execCtx.run); err != nil {
		return nil, newError("exec", backendOrigin, err)
	}

	return execCtx.output, execCtx.err
}
