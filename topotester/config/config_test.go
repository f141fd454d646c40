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

package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (*Config, error) {
	flags := pflag.NewFlagSet("topotester", pflag.ContinueOnError)
	v := NewViper()
	require.NoError(t, BindFlags(flags, v))
	require.NoError(t, flags.Parse(args))
	return Load(v)
}

func TestLoadDefaults(t *testing.T) {
	config, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		TopologyFile: DefaultTopologyFile,
		PingCount:    1,
		ProbeTimeout: 5 * time.Second,
		Settle:       time.Second,
		SwitchDriver: "bridge",
		Controller:   "tcp:127.0.0.1:6653",
		ThriftPort:   9190,
		LogLevel:     "info",
		LogFile:      DefaultLogFile,
	}, config)
}

func TestLoadFlags(t *testing.T) {
	config, err := load(t,
		"-t", "/tmp/topology.yaml",
		"-p", "3",
		"-n",
		"--probe-timeout", "2s",
		"--settle", "0",
		"--switch-driver", "ovs",
		"--results-db", "/tmp/results.db",
		"-s", "/tmp/start.sh")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/topology.yaml", config.TopologyFile)
	assert.Equal(t, 3, config.PingCount)
	assert.True(t, config.NoRedundancy)
	assert.False(t, config.CLI)
	assert.Equal(t, 2*time.Second, config.ProbeTimeout)
	assert.Zero(t, config.Settle)
	assert.Equal(t, "ovs", config.SwitchDriver)
	assert.Equal(t, "/tmp/results.db", config.ResultsDB)
	assert.Equal(t, "/tmp/start.sh", config.Script)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TOPOTESTER_PING", "4")
	t.Setenv("TOPOTESTER_NO_REDUNDANCY", "true")
	t.Setenv("TOPOTESTER_PROBE_TIMEOUT", "750ms")

	config, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, 4, config.PingCount)
	assert.True(t, config.NoRedundancy)
	assert.Equal(t, 750*time.Millisecond, config.ProbeTimeout)
}

func TestLoadFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("TOPOTESTER_PING", "4")

	config, err := load(t, "--ping", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, config.PingCount)
}

func TestLoadInlineTopology(t *testing.T) {
	config, err := load(t, "-j", "{}")
	require.NoError(t, err)
	assert.Empty(t, config.TopologyFile)
	assert.Equal(t, "{}", config.JSONTopology)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	for _, args := range [][]string{
		{"-t", "/tmp/topology.json", "-j", "{}"},
		{"-p", "0"},
		{"--probe-timeout", "0s"},
		{"--settle", "-1s"},
		{"--switch-driver", "hub"},
		{"--thrift-port", "70000"},
	} {
		_, err := load(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}
