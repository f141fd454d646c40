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
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"syscall"
	"time"

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"
	"github.com/topotester/topotester/pkg/execwrapper"
	"github.com/topotester/topotester/pkg/utils"
)

const (
	simpleSwitchExecutableName = "simple_switch"
	// DefaultThriftPortBase is the thrift port of the first p4 switch
	DefaultThriftPortBase = 9190

	defaultReadinessTimeout           = 10 * time.Second
	defaultMaxProcessStopWaitDuration = 5 * time.Second
	thriftDialTimeout                 = 500 * time.Millisecond
	readinessBackoffMin               = 50 * time.Millisecond
	readinessBackoffMax               = time.Second
	readinessBackoffJitter            = 0.2
	readinessBackoffMultiple          = 2
)

// switchProcess is a running software switch
type switchProcess struct {
	pid    int
	signal func(os.Signal) error
	// done is closed once the process has been reaped
	done chan struct{}
	err  error
}

// p4Driver runs one simple_switch process per alternate switch. The n-th
// p4 switch serves thrift on thriftPortBase+n
type p4Driver struct {
	exec           execwrapper.Exec
	jsonPath       string
	thriftPortBase int
	logDir         string

	dial                       func(ctx context.Context, network string, address string) (net.Conn, error)
	newBackoff                 func() utils.Backoff
	readinessTimeout           time.Duration
	maxProcessStopWaitDuration time.Duration

	lock      sync.Mutex
	processes map[string]*switchProcess
}

func newP4Driver(exec execwrapper.Exec, jsonPath string, thriftPortBase int, logDir string) *p4Driver {
	dialer := &net.Dialer{Timeout: thriftDialTimeout}
	return &p4Driver{
		exec:           exec,
		jsonPath:       jsonPath,
		thriftPortBase: thriftPortBase,
		logDir:         logDir,
		dial:           dialer.DialContext,
		newBackoff: func() utils.Backoff {
			return utils.NewSimpleBackoff(readinessBackoffMin, readinessBackoffMax,
				readinessBackoffJitter, readinessBackoffMultiple)
		},
		readinessTimeout:           defaultReadinessTimeout,
		maxProcessStopWaitDuration: defaultMaxProcessStopWaitDuration,
		processes:                  make(map[string]*switchProcess),
	}
}

func (*p4Driver) Name() string {
	return P4Driver
}

func (driver *p4Driver) thriftPort(sw *switchInstance) int {
	return driver.thriftPortBase + sw.driverIndex
}

func (driver *p4Driver) Create(ctx context.Context, sw *switchInstance) error {
	if driver.jsonPath == "" {
		return errors.Errorf("p4 create: switch %s is a p4 switch but no p4 json config was given", sw.descriptor.Name)
	}
	if _, err := driver.exec.LookPath(simpleSwitchExecutableName); err != nil {
		return errors.Wrapf(err, "p4 create: %s not found for switch %s", simpleSwitchExecutableName, sw.descriptor.Name)
	}

	return nil
}

// AttachPort is a no-op, ports are handed to the switch process on start
func (*p4Driver) AttachPort(ctx context.Context, sw *switchInstance, port int, portName string) error {
	return nil
}

// p4SwitchArgs builds the simple_switch arguments, ports in ascending order
func p4SwitchArgs(sw *switchInstance, thriftPort int, jsonPath string) []string {
	args := []string{
		"--device-id", strconv.Itoa(sw.driverIndex),
		"--thrift-port", strconv.Itoa(thriftPort),
	}

	ports := make([]int, 0, len(sw.ports))
	for port := range sw.ports {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	for _, port := range ports {
		args = append(args, "-i", fmt.Sprintf("%d@%s", port, sw.ports[port]))
	}

	return append(args, jsonPath)
}

func (driver *p4Driver) Start(ctx context.Context, sw *switchInstance) error {
	name := sw.descriptor.Name
	thriftPort := driver.thriftPort(sw)
	args := p4SwitchArgs(sw, thriftPort, driver.jsonPath)

	logFilePath := filepath.Join(driver.logDir, "p4s."+name+".log")
	logFile, err := os.Create(logFilePath)
	if err != nil {
		return errors.Wrapf(err, "p4 start: unable to create log file %s", logFilePath)
	}

	// The switch outlives ctx; it is stopped explicitly
	cmd := driver.exec.CommandContext(context.Background(), simpleSwitchExecutableName, args...)
	cmd.SetOutput(logFile, logFile)
	log.Infof("Starting p4 switch %s: %s %v", name, simpleSwitchExecutableName, args)
	if err := cmd.Start(); err != nil {
		logFile.Close()
		return errors.Wrapf(err, "p4 start: unable to start %s for switch %s", simpleSwitchExecutableName, name)
	}

	process := cmd.Process()
	proc := &switchProcess{
		pid:    process.Pid,
		signal: process.Signal,
		done:   make(chan struct{}),
	}
	go func() {
		proc.err = cmd.Wait()
		logFile.Close()
		close(proc.done)
	}()

	driver.lock.Lock()
	driver.processes[name] = proc
	driver.lock.Unlock()

	return driver.waitForThriftServer(ctx, name, proc, thriftPort)
}

func (driver *p4Driver) waitForThriftServer(ctx context.Context, name string, proc *switchProcess, thriftPort int) error {
	ctx, cancel := context.WithTimeout(ctx, driver.readinessTimeout)
	defer cancel()

	address := net.JoinHostPort("127.0.0.1", strconv.Itoa(thriftPort))
	err := utils.RetryWithBackoffCtx(ctx, driver.newBackoff(), func() error {
		select {
		case <-proc.done:
			return utils.NewRetriableError(false,
				errors.Errorf("process exited before its thrift server came up: %v", proc.err))
		default:
		}

		conn, err := driver.dial(ctx, "tcp", address)
		if err != nil {
			return utils.NewRetriableError(true, err)
		}
		conn.Close()
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "p4 start: switch %s not ready on thrift port %d", name, thriftPort)
	}

	log.Infof("p4 switch %s is serving thrift on %s", name, address)
	return nil
}

func (driver *p4Driver) Stop(ctx context.Context, sw *switchInstance) error {
	driver.lock.Lock()
	proc, ok := driver.processes[sw.descriptor.Name]
	delete(driver.processes, sw.descriptor.Name)
	driver.lock.Unlock()
	if !ok {
		return nil
	}

	err := stopProcess(proc, driver.maxProcessStopWaitDuration)
	if err != nil {
		return errors.Wrapf(err, "p4 stop: error stopping switch %s, pid: '%d'", sw.descriptor.Name, proc.pid)
	}

	return nil
}

// stopProcess sends SIGTERM and falls back to SIGKILL when the process has
// not exited after maxProcessStopWaitDuration
func stopProcess(proc *switchProcess, maxProcessStopWaitDuration time.Duration) error {
	err := sendSignalToProcess(proc, syscall.SIGTERM)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxProcessStopWaitDuration)
	defer cancel()
	err = waitForProcessToFinish(ctx, proc)
	if err != nil {
		log.Warnf("Error terminating the p4 switch process, pid: '%d': %v", proc.pid, err)
		return sendSignalToProcess(proc, syscall.SIGKILL)
	}

	return nil
}

func sendSignalToProcess(proc *switchProcess, signal syscall.Signal) error {
	err := proc.signal(signal)
	if err == os.ErrProcessDone {
		return nil
	}
	return err
}

func waitForProcessToFinish(ctx context.Context, proc *switchProcess) error {
	select {
	case <-proc.done:
		return nil
	case <-ctx.Done():
		return errors.Errorf("p4 stop: timed out waiting for process to finish, pid: '%d'", proc.pid)
	}
}
