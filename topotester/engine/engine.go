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

package engine

//go:generate mockgen -destination=mocks/engine_mocks.go -copyright_file=../../scripts/copyright_file github.com/topotester/topotester/topotester/engine Engine

import (
	"context"
	"fmt"
	"io"
	"time"

	log "github.com/cihub/seelog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/topotester/topotester/topotester/backend"
	"github.com/topotester/topotester/topotester/normalize"
	"github.com/topotester/topotester/topotester/topology"
)

const (
	// DefaultProbeTimeout bounds a single probe
	DefaultProbeTimeout = 5 * time.Second
	// DefaultSettle is the wait after a link change and before the first
	// ipv6 phase
	DefaultSettle = time.Second

	noRedundancyReason = "no redundancy requested"
)

// Options configures a test run
type Options struct {
	// NoRedundancy skips the link sweep
	NoRedundancy bool
	// ProbeTimeout bounds every probe, 0 disables the bound
	ProbeTimeout time.Duration
	// Settle is waited after each link change and before the first ipv6
	// phase, 0 disables the wait
	Settle time.Duration
}

// Engine provisions an emulated network and runs the reachability tests
// against it
type Engine interface {
	// Provision assigns every interface address of n through the backend
	Provision(ctx context.Context, network *backend.Network, n *normalize.Normalized) error
	// Run executes the baseline and, unless skipped, the link sweep. On a
	// backend error the report of the phases completed so far is returned
	// together with the error
	Run(ctx context.Context, network *backend.Network, groups []normalize.VlanGroup, links []topology.SwitchLinkSpec, switches []topology.SwitchDescriptor) (*Report, error)
}

type engine struct {
	backend backend.Backend
	// trace receives the live reachability output
	trace    io.Writer
	options  Options
	newRunID func() string
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewEngine creates a new Engine object
func NewEngine(b backend.Backend, trace io.Writer, options Options) Engine {
	return &engine{
		backend:  b,
		trace:    trace,
		options:  options,
		newRunID: uuid.NewString,
		sleep:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SweepSkipReason returns why the link sweep must not run, empty when it
// may. The sweep is skipped when redundancy is disabled or an endpoint
// sits on a switch without controlled failover support
func SweepSkipReason(noRedundancy bool, groups []normalize.VlanGroup, switches []topology.SwitchDescriptor) string {
	if noRedundancy {
		return noRedundancyReason
	}

	failover := make(map[string]bool, len(switches))
	for _, sw := range switches {
		failover[sw.Name] = sw.SupportsControlledFailover
	}
	for _, group := range groups {
		for _, member := range group.Members {
			if !failover[member.Switch] {
				return fmt.Sprintf("switch %s of %s does not support controlled failover",
					member.Switch, member.HostName)
			}
		}
	}

	return ""
}

func (engine *engine) Run(ctx context.Context,
	network *backend.Network,
	groups []normalize.VlanGroup,
	links []topology.SwitchLinkSpec,
	switches []topology.SwitchDescriptor) (*Report, error) {
	report := &Report{RunID: engine.newRunID()}
	log.Infof("Starting test run %s", report.RunID)

	if err := engine.verify(ctx, network, groups, report, PhaseBaselineV4, PhaseBaselineV6, nil, ""); err != nil {
		return report, err
	}

	report.SweepSkipped = SweepSkipReason(engine.options.NoRedundancy, groups, switches)
	if report.SweepSkipped != "" {
		log.Infof("Skipping the link sweep: %s", report.SweepSkipped)
		return report, nil
	}

	for i := range links {
		if err := engine.sweepLink(ctx, network, groups, &links[i], report); err != nil {
			return report, err
		}
	}

	log.Infof("Test run %s done", report.RunID)
	return report, nil
}

// sweepLink takes link down, verifies both families, brings it back up and
// verifies again. A link taken down is always brought back up, even when
// verification fails
func (engine *engine) sweepLink(ctx context.Context,
	network *backend.Network,
	groups []normalize.VlanGroup,
	link *topology.SwitchLinkSpec,
	report *Report) error {
	if err := engine.setLinkStatus(ctx, network, link, backend.LinkDown); err != nil {
		return err
	}

	err := engine.verify(ctx, network, groups, report, PhaseVerifyV4, PhaseVerifyV6, link, backend.LinkDown)
	upErr := engine.setLinkStatus(ctx, network, link, backend.LinkUp)
	if err != nil {
		if upErr != nil {
			log.Errorf("Unable to restore link between %s and %s: %v", link.SwitchA, link.SwitchB, upErr)
		}
		return err
	}
	if upErr != nil {
		return upErr
	}

	return engine.verify(ctx, network, groups, report, PhaseVerifyV4, PhaseVerifyV6, link, backend.LinkUp)
}

func (engine *engine) setLinkStatus(ctx context.Context, network *backend.Network, link *topology.SwitchLinkSpec, status backend.LinkStatus) error {
	log.Infof("Setting link between %s and %s %s", link.SwitchA, link.SwitchB, status)
	err := engine.backend.SetLinkStatus(ctx, network, link.SwitchA, link.SwitchB, status)
	if err != nil {
		return errors.Wrapf(err, "sweep engine: unable to set link %s %s", link, status)
	}

	return engine.sleep(ctx, engine.options.Settle)
}

// verify runs the ipv4 phase then the ipv6 phase. The settle delay before
// the baseline ipv6 phase gives ipv6 addressing time to come up
func (engine *engine) verify(ctx context.Context,
	network *backend.Network,
	groups []normalize.VlanGroup,
	report *Report,
	phaseV4 Phase,
	phaseV6 Phase,
	link *topology.SwitchLinkSpec,
	status backend.LinkStatus) error {
	phase, err := engine.runPhase(ctx, network, groups, phaseV4, backend.IPv4, link, status)
	if err != nil {
		return err
	}
	report.Phases = append(report.Phases, *phase)

	if phaseV6 == PhaseBaselineV6 {
		if err := engine.sleep(ctx, engine.options.Settle); err != nil {
			return err
		}
	}

	phase, err = engine.runPhase(ctx, network, groups, phaseV6, backend.IPv6, link, status)
	if err != nil {
		return err
	}
	report.Phases = append(report.Phases, *phase)

	return nil
}

// runPhase probes the full mesh of every group for one family and writes
// the trace. Rows and tokens follow group then member order
func (engine *engine) runPhase(ctx context.Context,
	network *backend.Network,
	groups []normalize.VlanGroup,
	phase Phase,
	family backend.Family,
	link *topology.SwitchLinkSpec,
	status backend.LinkStatus) (*PhaseReport, error) {
	report := &PhaseReport{
		Phase:      phase,
		Family:     family,
		Link:       link,
		LinkStatus: status,
	}

	fmt.Fprintf(engine.trace, "*** Ping: testing ping%d reachability\n", int(family))
	for _, group := range groups {
		fmt.Fprintf(engine.trace, "Testing reachability for hosts with vlan: %s\n", group.Key)
		for _, src := range group.Members {
			fmt.Fprintf(engine.trace, "%s -> ", src.HostName)
			for _, dst := range group.Members {
				if dst.ID == src.ID {
					continue
				}

				result, probed, err := Probe(ctx, engine.backend, network, src, dst, family, engine.options.ProbeTimeout)
				if err != nil {
					fmt.Fprintln(engine.trace)
					return nil, errors.Wrapf(err, "sweep engine: %s probe from %s to %s failed", phase, src, dst)
				}
				if !probed {
					continue
				}

				pair := PairResult{
					Group:       group.Key,
					Source:      src.HostName,
					SourceID:    src.ID,
					Destination: dst.HostName,
					DestID:      dst.ID,
					Sent:        result.Sent,
					Received:    result.Received,
					Anomaly:     result.Anomaly,
				}
				report.add(pair)

				token := "X"
				if pair.Reachable() {
					token = dst.HostName
				}
				fmt.Fprintf(engine.trace, "%s ", token)
			}
			fmt.Fprintln(engine.trace)
		}
	}

	if loss, ok := report.LossPercent(); ok {
		fmt.Fprintf(engine.trace, "*** Results: %d%% dropped (%d/%d received)\n",
			int(loss), report.TotalReceived(), report.TotalSent)
	}
	log.Debugf("Phase %s %s: %d sent, %d lost", phase, family, report.TotalSent, report.TotalLost)

	return report, nil
}
