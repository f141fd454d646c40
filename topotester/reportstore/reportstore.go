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

package reportstore

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/cihub/seelog"
	"github.com/docker/libkv/store"
	"github.com/docker/libkv/store/boltdb"
	"github.com/pkg/errors"
	"github.com/topotester/topotester/topotester/engine"
)

const (
	// DefaultBucket is the bolt bucket reports are kept in
	DefaultBucket = "reports"
	// DefaultConnectionTimeout bounds waiting for the db file lock
	DefaultConnectionTimeout = 5 * time.Second

	summaryKey = "summary"
)

// Config represents the configuration of the boltdb file reports are
// stored in
type Config struct {
	DB                string
	PersistConnection bool
	Bucket            string
	ConnectionTimeout time.Duration
}

// ReportStore persists the reports of test runs
type ReportStore interface {
	Save(report *engine.Report) error
	Load(runID string) (*engine.Report, error)
	Exists(runID string) (bool, error)
	Close()
}

// summary holds the run level fields of a report
type summary struct {
	RunID        string    `json:"run_id"`
	SweepSkipped string    `json:"sweep_skipped,omitempty"`
	Phases       int       `json:"phases"`
	SavedAt      time.Time `json:"saved_at"`
}

// BoltReportStore keeps one key per phase, "<run id>/<seq>-<phase>", and a
// summary key per run
type BoltReportStore struct {
	client     store.Store
	updateLock sync.RWMutex
	now        func() time.Time
}

// New creates a report store from the db configuration
func New(options *Config) (ReportStore, error) {
	bucket := options.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}
	timeout := options.ConnectionTimeout
	if timeout == 0 {
		timeout = DefaultConnectionTimeout
	}

	config := &store.Config{
		PersistConnection: options.PersistConnection,
		ConnectionTimeout: timeout,
		Bucket:            bucket,
	}
	client, err := boltdb.New([]string{options.DB}, config)
	if err != nil {
		return nil, errors.Wrapf(err, "new reportstore: unable to open %s", options.DB)
	}

	return &BoltReportStore{
		client: client,
		now:    time.Now,
	}, nil
}

func phaseKey(runID string, seq int, phase engine.Phase) string {
	return fmt.Sprintf("%s/%04d-%s", runID, seq, phase)
}

func runSummaryKey(runID string) string {
	return runID + "/" + summaryKey
}

// Save writes every phase of the report, then its summary
func (reportStore *BoltReportStore) Save(report *engine.Report) error {
	if report.RunID == "" || strings.Contains(report.RunID, "/") {
		return errors.Errorf("save reportstore: invalid run id '%s'", report.RunID)
	}

	reportStore.updateLock.Lock()
	defer reportStore.updateLock.Unlock()

	for seq, phase := range report.Phases {
		value, err := json.Marshal(phase)
		if err != nil {
			return errors.Wrapf(err, "save reportstore: unable to encode phase %d of run %s", seq, report.RunID)
		}
		key := phaseKey(report.RunID, seq, phase.Phase)
		if err := reportStore.client.Put(key, value, nil); err != nil {
			return errors.Wrapf(err, "save reportstore: failed to put the key into the db: %s", key)
		}
	}

	value, err := json.Marshal(summary{
		RunID:        report.RunID,
		SweepSkipped: report.SweepSkipped,
		Phases:       len(report.Phases),
		SavedAt:      reportStore.now().UTC(),
	})
	if err != nil {
		return errors.Wrapf(err, "save reportstore: unable to encode summary of run %s", report.RunID)
	}
	if err := reportStore.client.Put(runSummaryKey(report.RunID), value, nil); err != nil {
		return errors.Wrapf(err, "save reportstore: failed to put the summary of run %s", report.RunID)
	}

	log.Infof("Saved report of run %s, %d phases", report.RunID, len(report.Phases))
	return nil
}

// Load reads back the report of a run, phases in the order they ran
func (reportStore *BoltReportStore) Load(runID string) (*engine.Report, error) {
	reportStore.updateLock.RLock()
	defer reportStore.updateLock.RUnlock()

	kvPairs, err := reportStore.client.List(runID + "/")
	if err != nil {
		if err == store.ErrKeyNotFound {
			return nil, errors.Errorf("load reportstore: no report for run %s", runID)
		}
		return nil, errors.Wrapf(err, "load reportstore: failed to list run %s", runID)
	}

	report := &engine.Report{RunID: runID}
	var runSummary *summary
	for _, kvPair := range kvPairs {
		if kvPair.Key == runSummaryKey(runID) {
			runSummary = &summary{}
			if err := json.Unmarshal(kvPair.Value, runSummary); err != nil {
				return nil, errors.Wrapf(err, "load reportstore: corrupt summary of run %s", runID)
			}
			continue
		}

		var phase engine.PhaseReport
		if err := json.Unmarshal(kvPair.Value, &phase); err != nil {
			return nil, errors.Wrapf(err, "load reportstore: corrupt phase %s", kvPair.Key)
		}
		report.Phases = append(report.Phases, phase)
	}

	if runSummary == nil {
		return nil, errors.Errorf("load reportstore: run %s has no summary, it was not completely saved", runID)
	}
	if runSummary.Phases != len(report.Phases) {
		return nil, errors.Errorf("load reportstore: run %s has %d phases, expected %d",
			runID, len(report.Phases), runSummary.Phases)
	}
	report.SweepSkipped = runSummary.SweepSkipped

	return report, nil
}

// Exists checks whether a run was saved
func (reportStore *BoltReportStore) Exists(runID string) (bool, error) {
	reportStore.updateLock.RLock()
	defer reportStore.updateLock.RUnlock()

	exist, err := reportStore.client.Exists(runSummaryKey(runID))
	if err == store.ErrKeyNotFound {
		return false, nil
	}

	return exist, err
}

// Close will close the connection to the db
func (reportStore *BoltReportStore) Close() {
	reportStore.client.Close()
}
