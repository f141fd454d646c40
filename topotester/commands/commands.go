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

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/topotester/topotester/pkg/capabilities"
	"github.com/topotester/topotester/pkg/execwrapper"
	"github.com/topotester/topotester/pkg/logger"
	"github.com/topotester/topotester/pkg/version"
	"github.com/topotester/topotester/topotester/backend"
	"github.com/topotester/topotester/topotester/config"
	"github.com/topotester/topotester/topotester/engine"
	"github.com/topotester/topotester/topotester/normalize"
	"github.com/topotester/topotester/topotester/reportstore"
	"github.com/topotester/topotester/topotester/shell"
	"github.com/topotester/topotester/topotester/topology"
)

const (
	// CommandName is the name of the root command
	CommandName = "topotester"

	versionFlag      = "version"
	startScriptShell = "sh"
)

// dependencies are the collaborators of a run, replaced in tests
type dependencies struct {
	newBackend  func(options backend.Options) (backend.Backend, error)
	newEngine   func(b backend.Backend, trace io.Writer, options engine.Options) engine.Engine
	newStore    func(options *reportstore.Config) (reportstore.ReportStore, error)
	runShell    func(s *shell.Shell, ctx context.Context) error
	setupLogger func(logFilePath string, level string)
	exec        execwrapper.Exec
	out         io.Writer
}

func defaultDependencies() *dependencies {
	return &dependencies{
		newBackend:  backend.New,
		newEngine:   engine.NewEngine,
		newStore:    reportstore.New,
		runShell:    (*shell.Shell).Run,
		setupLogger: logger.SetupLogger,
		exec:        execwrapper.NewExec(),
		out:         os.Stdout,
	}
}

// NewRootCommand creates the topotester command
func NewRootCommand() (*cobra.Command, error) {
	return newRootCommand(config.NewViper(), defaultDependencies())
}

func newRootCommand(v *viper.Viper, deps *dependencies) (*cobra.Command, error) {
	var printVersion bool
	cmd := &cobra.Command{
		Use:   CommandName,
		Short: "Build an emulated switched network and test its reachability",
		Long: `topotester builds the network described by a topology document, checks
that every host reaches every other host of its vlan over ipv4 and ipv6,
then takes each switch to switch link down and up again and checks that
reachability survives.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				return printVersionInfo(cmd.OutOrStdout())
			}

			conf, err := config.Load(v)
			if err != nil {
				log.Errorf("Error loading configuration: %v", err)
				return err
			}
			deps.setupLogger(conf.LogFile, conf.LogLevel)

			return run(cmd.Context(), conf, deps)
		},
	}

	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		return nil, errors.Wrap(err, "root command: unable to bind flags")
	}
	cmd.Flags().BoolVar(&printVersion, versionFlag, false, "prints version and exits")
	cmd.AddCommand(newCapabilitiesCommand())

	return cmd, nil
}

func newCapabilitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   capabilities.Command,
		Short: "Print the capabilities of this build as json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return capabilities.New(
				capabilities.LinkFaultInjectionCapability,
				capabilities.VlanPartitionCapability,
				capabilities.IPv6Capability).
				WithSwitchDrivers(backend.SwitchDrivers...).
				WithSwitchDrivers(backend.P4Driver).
				Print(cmd.OutOrStdout())
		},
	}
}

func printVersionInfo(w io.Writer) error {
	versionInfo, err := version.String()
	if err != nil {
		return errors.Wrap(err, "version: unable to get version string")
	}
	fmt.Fprintln(w, versionInfo)
	return nil
}

func loadDocument(conf *config.Config) (topology.Document, error) {
	if conf.JSONTopology != "" {
		return topology.Decode([]byte(conf.JSONTopology))
	}
	return topology.Load(conf.TopologyFile)
}

// run executes one test run. Once the network is built it is always
// stopped, whatever happens afterwards
func run(ctx context.Context, conf *config.Config, deps *dependencies) (err error) {
	doc, err := loadDocument(conf)
	if err != nil {
		log.Errorf("Error loading topology: %v", err)
		return err
	}
	topo, _, err := topology.Validate(doc)
	if err != nil {
		log.Errorf("Invalid topology: %v", err)
		return err
	}

	n := normalize.Normalize(topo.Hosts, normalize.NewIDAllocator())
	groups := normalize.Partition(n)
	log.Infof("Normalized %d interfaces into %d nodes and %d vlan groups",
		len(n.Interfaces), len(n.NodeIDs()), len(groups))

	b, err := deps.newBackend(backend.Options{
		SwitchDriver:   conf.SwitchDriver,
		Controller:     conf.Controller,
		P4JSONPath:     conf.P4JSON,
		ThriftPortBase: conf.ThriftPort,
		PingCount:      conf.PingCount,
	})
	if err != nil {
		log.Errorf("Error creating network backend: %v", err)
		return err
	}

	network, err := b.BuildTopology(ctx, n.Nodes, topo.Links, topo.Switches)
	if err != nil {
		log.Errorf("Error building network: %v", err)
		return err
	}
	defer func() {
		// Cleanup runs even when ctx is done
		stopErr := b.Stop(context.Background(), network)
		if stopErr == nil {
			return
		}
		log.Errorf("Error stopping network: %v", stopErr)
		if err == nil {
			err = stopErr
		}
	}()

	if err := b.Start(ctx, network); err != nil {
		log.Errorf("Error starting network: %v", err)
		return err
	}
	if conf.Script != "" {
		runStartScript(ctx, deps.exec, conf.Script)
	}

	options := engine.Options{
		NoRedundancy: conf.NoRedundancy,
		ProbeTimeout: conf.ProbeTimeout,
		Settle:       conf.Settle,
	}
	if conf.CLI {
		// pingall in the shell only runs the baseline
		options.NoRedundancy = true
	}
	testEngine := deps.newEngine(b, deps.out, options)
	if err := testEngine.Provision(ctx, network, n); err != nil {
		log.Errorf("Error assigning addresses: %v", err)
		return err
	}

	if conf.CLI {
		return deps.runShell(shell.New(b, network, testEngine, groups, topo.Links, topo.Switches, deps.out), ctx)
	}

	report, runErr := testEngine.Run(ctx, network, groups, topo.Links, topo.Switches)
	if report != nil {
		summarize(report)
		if conf.ResultsDB != "" {
			if err := saveReport(deps, conf.ResultsDB, report); err != nil && runErr == nil {
				return err
			}
		}
	}
	if runErr != nil {
		log.Errorf("Test run aborted: %v", runErr)
		return runErr
	}

	return nil
}

// runStartScript runs script on the host. A failing script is logged and
// the run carries on
func runStartScript(ctx context.Context, exec execwrapper.Exec, script string) {
	log.Infof("Running start script: %s", script)
	output, err := exec.CommandContext(ctx, startScriptShell, "-c", script).CombinedOutput()
	if len(output) > 0 {
		log.Debugf("Start script output: %s", output)
	}
	if err != nil {
		log.Warnf("Start script '%s' failed: %v", script, err)
	}
}

func summarize(report *engine.Report) {
	if !report.Lossless() {
		log.Warnf("Test run %s completed %d phases with loss", report.RunID, len(report.Phases))
		return
	}
	log.Infof("Test run %s completed %d phases without loss", report.RunID, len(report.Phases))
}

func saveReport(deps *dependencies, path string, report *engine.Report) error {
	store, err := deps.newStore(&reportstore.Config{DB: path})
	if err != nil {
		log.Errorf("Error opening results db: %v", err)
		return err
	}
	defer store.Close()

	if err := store.Save(report); err != nil {
		log.Errorf("Error saving report of run %s: %v", report.RunID, err)
		return err
	}

	return nil
}
