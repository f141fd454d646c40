//go:build !integration && !e2e
// +build !integration,!e2e

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
	"errors"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/topotester/topotester/pkg/execwrapper/mocks"
	"github.com/topotester/topotester/pkg/netlinkwrapper/mocks"
	"github.com/topotester/topotester/pkg/utils"
	"github.com/topotester/topotester/topotester/topology"
	"github.com/vishvananda/netlink"
)

func newSwitchInstance(name string, dpid *uint64, index int) *switchInstance {
	return &switchInstance{
		descriptor: topology.SwitchDescriptor{
			Name:       name,
			DatapathID: dpid,
		},
		index:       index,
		driverIndex: index,
		ports:       make(map[int]string),
	}
}

func TestBridgeCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sysfsPath := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sysfsPath, "s1", "bridge"), 0755))

	mockNetLink := mock_netlinkwrapper.NewMockNetLink(ctrl)
	gomock.InOrder(
		mockNetLink.EXPECT().LinkByName("s1").Return(nil, netlink.LinkNotFoundError{}),
		mockNetLink.EXPECT().LinkAdd(gomock.Any()).Do(func(link netlink.Link) {
			bridge, ok := link.(*netlink.Bridge)
			require.True(t, ok)
			assert.Equal(t, "s1", bridge.Attrs().Name)
		}).Return(nil),
	)

	driver := &bridgeDriver{netLink: mockNetLink, sysfsPath: sysfsPath}
	err := driver.Create(context.TODO(), newSwitchInstance("s1", nil, 0))
	require.NoError(t, err)

	stpState, err := os.ReadFile(filepath.Join(sysfsPath, "s1", "bridge", "stp_state"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(stpState))
	forwardDelay, err := os.ReadFile(filepath.Join(sysfsPath, "s1", "bridge", "forward_delay"))
	require.NoError(t, err)
	assert.Equal(t, bridgeForwardDelay, string(forwardDelay))
}

func TestBridgeCreateFailsWhenNameIsNotABridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNetLink := mock_netlinkwrapper.NewMockNetLink(ctrl)
	mockNetLink.EXPECT().LinkByName("s1").Return(&netlink.Dummy{}, nil)

	driver := &bridgeDriver{netLink: mockNetLink, sysfsPath: t.TempDir()}
	err := driver.Create(context.TODO(), newSwitchInstance("s1", nil, 0))
	assert.Error(t, err)
}

func TestBridgeAttachPort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bridge := &netlink.Bridge{}
	port := &netlink.Veth{}
	mockNetLink := mock_netlinkwrapper.NewMockNetLink(ctrl)
	gomock.InOrder(
		mockNetLink.EXPECT().LinkByName("s1").Return(bridge, nil),
		mockNetLink.EXPECT().LinkByName("s1-eth1").Return(port, nil),
		mockNetLink.EXPECT().LinkSetMaster(port, bridge).Return(nil),
	)

	driver := &bridgeDriver{netLink: mockNetLink}
	err := driver.AttachPort(context.TODO(), newSwitchInstance("s1", nil, 0), 1, "s1-eth1")
	assert.NoError(t, err)
}

func TestBridgeStopSkipsMissingBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNetLink := mock_netlinkwrapper.NewMockNetLink(ctrl)
	mockNetLink.EXPECT().LinkByName("s1").Return(nil, netlink.LinkNotFoundError{})

	driver := &bridgeDriver{netLink: mockNetLink}
	assert.NoError(t, driver.Stop(context.TODO(), newSwitchInstance("s1", nil, 0)))
}

func TestOVSCreateUsesDatapathID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mock_execwrapper.NewMockExec(ctrl)
	mockCmd := mock_execwrapper.NewMockCmd(ctrl)
	dpid := uint64(0xa)
	gomock.InOrder(
		mockExec.EXPECT().CommandContext(gomock.Any(), ovsVsctlExecutableName,
			"--may-exist", "add-br", "s1",
			"--", "set", "bridge", "s1",
			"other-config:datapath-id=000000000000000a",
			"fail-mode=secure",
			"protocols=OpenFlow13").Return(mockCmd),
		mockCmd.EXPECT().CombinedOutput().Return(nil, nil),
	)

	driver := newOVSDriver(mockExec, DefaultController)
	assert.NoError(t, driver.Create(context.TODO(), newSwitchInstance("s1", &dpid, 0)))
}

func TestOVSDatapathIDFallsBackToPosition(t *testing.T) {
	assert.Equal(t, uint64(3), datapathID(newSwitchInstance("s3", nil, 2)))
}

func TestOVSAttachPortRequestsOpenflowPort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mock_execwrapper.NewMockExec(ctrl)
	mockCmd := mock_execwrapper.NewMockCmd(ctrl)
	gomock.InOrder(
		mockExec.EXPECT().CommandContext(gomock.Any(), ovsVsctlExecutableName,
			"--may-exist", "add-port", "s1", "s1-eth2",
			"--", "set", "interface", "s1-eth2", "ofport_request=2").Return(mockCmd),
		mockCmd.EXPECT().CombinedOutput().Return(nil, nil),
	)

	driver := newOVSDriver(mockExec, DefaultController)
	assert.NoError(t, driver.AttachPort(context.TODO(), newSwitchInstance("s1", nil, 0), 2, "s1-eth2"))
}

func TestOVSCommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mock_execwrapper.NewMockExec(ctrl)
	mockCmd := mock_execwrapper.NewMockCmd(ctrl)
	gomock.InOrder(
		mockExec.EXPECT().CommandContext(gomock.Any(), ovsVsctlExecutableName,
			"set-controller", "s1", "tcp:10.0.0.1:6653").Return(mockCmd),
		mockCmd.EXPECT().CombinedOutput().Return([]byte("ovs-vsctl: no bridge named s1"), errors.New("exit status 1")),
	)

	driver := newOVSDriver(mockExec, "tcp:10.0.0.1:6653")
	err := driver.Start(context.TODO(), newSwitchInstance("s1", nil, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bridge named s1")
}

func TestP4CreateRequiresJSON(t *testing.T) {
	driver := newP4Driver(nil, "", DefaultThriftPortBase, t.TempDir())
	assert.Error(t, driver.Create(context.TODO(), newSwitchInstance("p1", nil, 0)))
}

func TestP4CreateRequiresSimpleSwitch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mock_execwrapper.NewMockExec(ctrl)
	mockExec.EXPECT().LookPath(simpleSwitchExecutableName).Return("", errors.New("not found"))

	driver := newP4Driver(mockExec, "/tmp/switch.json", DefaultThriftPortBase, t.TempDir())
	assert.Error(t, driver.Create(context.TODO(), newSwitchInstance("p1", nil, 0)))
}

func TestP4SwitchArgs(t *testing.T) {
	sw := newSwitchInstance("p2", nil, 1)
	sw.ports[3] = "p2-eth3"
	sw.ports[1] = "p2-eth1"

	driver := newP4Driver(nil, "/tmp/switch.json", DefaultThriftPortBase, t.TempDir())
	args := p4SwitchArgs(sw, driver.thriftPort(sw), driver.jsonPath)
	assert.Equal(t, []string{
		"--device-id", "1",
		"--thrift-port", "9191",
		"-i", "1@p2-eth1",
		"-i", "3@p2-eth3",
		"/tmp/switch.json",
	}, args)
}

func newTestP4Driver(dial func(context.Context, string, string) (net.Conn, error)) *p4Driver {
	driver := newP4Driver(nil, "/tmp/switch.json", DefaultThriftPortBase, os.TempDir())
	driver.dial = dial
	driver.newBackoff = func() utils.Backoff {
		return utils.NewSimpleBackoff(time.Millisecond, time.Millisecond, 0, 1)
	}
	driver.readinessTimeout = time.Second
	return driver
}

func TestWaitForThriftServerRetriesUntilReady(t *testing.T) {
	attempts := 0
	driver := newTestP4Driver(func(ctx context.Context, network string, address string) (net.Conn, error) {
		assert.Equal(t, "127.0.0.1:9190", address)
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		client, server := net.Pipe()
		server.Close()
		return client, nil
	})

	proc := &switchProcess{pid: 1, done: make(chan struct{})}
	assert.NoError(t, driver.waitForThriftServer(context.TODO(), "p1", proc, 9190))
	assert.Equal(t, 3, attempts)
}

func TestWaitForThriftServerFailsWhenProcessExits(t *testing.T) {
	driver := newTestP4Driver(func(ctx context.Context, network string, address string) (net.Conn, error) {
		return nil, errors.New("connection refused")
	})

	proc := &switchProcess{pid: 1, done: make(chan struct{}), err: errors.New("exit status 1")}
	close(proc.done)
	err := driver.waitForThriftServer(context.TODO(), "p1", proc, 9190)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "process exited")
}

func TestStopProcessTerminates(t *testing.T) {
	proc := &switchProcess{pid: 1, done: make(chan struct{})}
	var signals []os.Signal
	proc.signal = func(signal os.Signal) error {
		signals = append(signals, signal)
		close(proc.done)
		return nil
	}

	assert.NoError(t, stopProcess(proc, time.Second))
	assert.Equal(t, []os.Signal{syscall.SIGTERM}, signals)
}

func TestStopProcessKillsAfterTimeout(t *testing.T) {
	proc := &switchProcess{pid: 1, done: make(chan struct{})}
	var signals []os.Signal
	proc.signal = func(signal os.Signal) error {
		signals = append(signals, signal)
		return nil
	}

	assert.NoError(t, stopProcess(proc, 10*time.Millisecond))
	assert.Equal(t, []os.Signal{syscall.SIGTERM, syscall.SIGKILL}, signals)
}

func TestStopProcessIgnoresFinishedProcess(t *testing.T) {
	proc := &switchProcess{pid: 1, done: make(chan struct{})}
	close(proc.done)
	proc.signal = func(signal os.Signal) error {
		return os.ErrProcessDone
	}

	assert.NoError(t, stopProcess(proc, time.Second))
}

func TestP4StopWithoutProcess(t *testing.T) {
	driver := newP4Driver(nil, "/tmp/switch.json", DefaultThriftPortBase, t.TempDir())
	assert.NoError(t, driver.Stop(context.TODO(), newSwitchInstance("p1", nil, 0)))
}
