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
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/topotester/topotester/pkg/logger"
	"github.com/topotester/topotester/topotester/backend"
	"github.com/topotester/topotester/topotester/engine"
)

const (
	// EnvPrefix prefixes the environment variable of every setting
	EnvPrefix = "TOPOTESTER"

	// DefaultTopologyFile is read when no topology source is given
	DefaultTopologyFile = "/etc/topotester/topology.json"
	// DefaultLogFile is the default log file location
	DefaultLogFile = "/var/log/topotester/topotester.log"

	TopologyFileKey = "topology-file"
	JSONTopologyKey = "json-topology"
	PingKey         = "ping"
	NoRedundancyKey = "no-redundancy"
	CLIKey          = "cli"
	ProbeTimeoutKey = "probe-timeout"
	SettleKey       = "settle"
	SwitchDriverKey = "switch-driver"
	ControllerKey   = "controller"
	P4JSONKey       = "p4-json"
	ThriftPortKey   = "thrift-port"
	ScriptKey       = "script"
	ResultsDBKey    = "results-db"
	LogLevelKey     = "log-level"
	LogFileKey      = "log-file"

	maxPort = 65535
)

// Config holds the settings of one topotester run
type Config struct {
	TopologyFile string
	JSONTopology string
	PingCount    int
	NoRedundancy bool
	CLI          bool
	ProbeTimeout time.Duration
	Settle       time.Duration
	SwitchDriver string
	Controller   string
	P4JSON       string
	ThriftPort   int
	Script       string
	ResultsDB    string
	LogLevel     string
	LogFile      string
}

// NewViper returns a viper instance that also reads every setting from
// TOPOTESTER_<SETTING> environment variables
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags defines the command line flags on flags and binds them to v
func BindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	flags.StringP(TopologyFileKey, "t", "", "topology file, "+DefaultTopologyFile+" when no topology is given")
	flags.StringP(JSONTopologyKey, "j", "", "topology document given inline")
	flags.IntP(PingKey, "p", 1, "echo requests sent per probe")
	flags.BoolP(NoRedundancyKey, "n", false, "skip the link failure sweep")
	flags.BoolP(CLIKey, "c", false, "open an interactive shell instead of running the tests")
	flags.Duration(ProbeTimeoutKey, engine.DefaultProbeTimeout, "upper bound of a single probe")
	flags.Duration(SettleKey, engine.DefaultSettle, "wait after link changes and before the first ipv6 test, 0 disables it")
	flags.String(SwitchDriverKey, backend.BridgeDriver, "driver of standard switches: "+strings.Join(backend.SwitchDrivers, ", "))
	flags.String(ControllerKey, backend.DefaultController, "openflow controller of ovs switches")
	flags.String(P4JSONKey, "", "compiled program loaded by p4 switches")
	flags.Int(ThriftPortKey, backend.DefaultThriftPortBase, "thrift port of the first p4 switch")
	flags.StringP(ScriptKey, "s", "", "script run once the network has started")
	flags.String(ResultsDBKey, "", "boltdb file the run report is saved to")
	flags.StringP(LogLevelKey, "l", logger.DefaultLogLevel, "log level")
	flags.String(LogFileKey, DefaultLogFile, "log file")

	return v.BindPFlags(flags)
}

// Load materializes and validates the settings bound to v
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{
		TopologyFile: v.GetString(TopologyFileKey),
		JSONTopology: v.GetString(JSONTopologyKey),
		PingCount:    v.GetInt(PingKey),
		NoRedundancy: v.GetBool(NoRedundancyKey),
		CLI:          v.GetBool(CLIKey),
		ProbeTimeout: v.GetDuration(ProbeTimeoutKey),
		Settle:       v.GetDuration(SettleKey),
		SwitchDriver: v.GetString(SwitchDriverKey),
		Controller:   v.GetString(ControllerKey),
		P4JSON:       v.GetString(P4JSONKey),
		ThriftPort:   v.GetInt(ThriftPortKey),
		Script:       v.GetString(ScriptKey),
		ResultsDB:    v.GetString(ResultsDBKey),
		LogLevel:     v.GetString(LogLevelKey),
		LogFile:      v.GetString(LogFileKey),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings and fills in the default topology file
func (config *Config) Validate() error {
	if config.TopologyFile != "" && config.JSONTopology != "" {
		return errors.Errorf("validate config: --%s and --%s are mutually exclusive", TopologyFileKey, JSONTopologyKey)
	}
	if config.TopologyFile == "" && config.JSONTopology == "" {
		config.TopologyFile = DefaultTopologyFile
	}
	if config.PingCount < 1 {
		return errors.Errorf("validate config: ping count must be at least 1, got %d", config.PingCount)
	}
	if config.ProbeTimeout <= 0 {
		return errors.Errorf("validate config: probe timeout must be positive, got %s", config.ProbeTimeout)
	}
	if config.Settle < 0 {
		return errors.Errorf("validate config: settle delay must not be negative, got %s", config.Settle)
	}

	knownDriver := false
	for _, driver := range backend.SwitchDrivers {
		if config.SwitchDriver == driver {
			knownDriver = true
		}
	}
	if !knownDriver {
		return errors.Errorf("validate config: unknown switch driver '%s', expected one of %s",
			config.SwitchDriver, strings.Join(backend.SwitchDrivers, ", "))
	}
	if config.ThriftPort < 1 || config.ThriftPort > maxPort {
		return errors.Errorf("validate config: thrift port %d is out of range", config.ThriftPort)
	}

	return nil
}
