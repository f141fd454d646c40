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

import (
	"github.com/topotester/topotester/topotester/backend"
	"github.com/topotester/topotester/topotester/normalize"
	"github.com/topotester/topotester/topotester/topology"
)

// Phase names a step of a test run
type Phase string

const (
	// PhaseBaselineV4 is the ipv4 full mesh on the untouched network
	PhaseBaselineV4 Phase = "BASELINE_V4"
	// PhaseBaselineV6 is the ipv6 full mesh on the untouched network
	PhaseBaselineV6 Phase = "BASELINE_V6"
	// PhaseVerifyV4 is the ipv4 full mesh after a link changed state
	PhaseVerifyV4 Phase = "VERIFY_V4"
	// PhaseVerifyV6 is the ipv6 full mesh after a link changed state
	PhaseVerifyV6 Phase = "VERIFY_V6"
)

// PairResult is the outcome of probing one ordered endpoint pair
type PairResult struct {
	Group       normalize.VlanKey `json:"group"`
	Source      string            `json:"source"`
	SourceID    int               `json:"source_id"`
	Destination string            `json:"destination"`
	DestID      int               `json:"destination_id"`
	Sent        int               `json:"sent"`
	Received    int               `json:"received"`
	Anomaly     string            `json:"anomaly,omitempty"`
}

// Reachable reports whether at least one echo came back
func (pair PairResult) Reachable() bool {
	return pair.Received > 0
}

// PhaseReport aggregates the probes of one phase across every vlan group
type PhaseReport struct {
	Phase  Phase          `json:"phase"`
	Family backend.Family `json:"family"`
	// Link and LinkStatus are set for verification phases
	Link       *topology.SwitchLinkSpec `json:"link,omitempty"`
	LinkStatus backend.LinkStatus       `json:"link_status,omitempty"`
	TotalSent  int                      `json:"total_sent"`
	TotalLost  int                      `json:"total_lost"`
	Pairs      []PairResult             `json:"pairs"`
}

// LossPercent returns 100*lost/sent. The second value is false when no
// probe was sent and the loss is undefined
func (report *PhaseReport) LossPercent() (float64, bool) {
	if report.TotalSent == 0 {
		return 0, false
	}
	return 100 * float64(report.TotalLost) / float64(report.TotalSent), true
}

// TotalReceived returns the number of echo replies of the phase
func (report *PhaseReport) TotalReceived() int {
	return report.TotalSent - report.TotalLost
}

func (report *PhaseReport) add(pair PairResult) {
	report.Pairs = append(report.Pairs, pair)
	report.TotalSent += pair.Sent
	report.TotalLost += pair.Sent - pair.Received
}

// Report is the result of a test run. A run aborted by a backend error
// holds the phases completed before the error
type Report struct {
	RunID  string        `json:"run_id"`
	Phases []PhaseReport `json:"phases"`
	// SweepSkipped is the reason the link sweep did not run, empty when
	// it ran
	SweepSkipped string `json:"sweep_skipped,omitempty"`
}

// Lossless reports whether every phase that sent probes lost none
func (report *Report) Lossless() bool {
	for _, phase := range report.Phases {
		if phase.TotalLost > 0 {
			return false
		}
	}
	return true
}
