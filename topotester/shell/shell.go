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

package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/cihub/seelog"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/topotester/topotester/topotester/backend"
	"github.com/topotester/topotester/topotester/engine"
	"github.com/topotester/topotester/topotester/normalize"
	"github.com/topotester/topotester/topotester/topology"
)

const (
	prompt          = "topotester> "
	historyFileName = ".topotester_history"

	helpText = `Available commands:
  nodes                      - list the emulated nodes
  links                      - list the switch to switch links
  link <switch> <switch> up|down
                             - change the state of the links between two switches
  pingall                    - run the baseline reachability test
  <node> <command> [args]    - run a command inside a node, by host name, id or namespace
  help                       - show this help message
  exit                       - leave the shell
`
)

// lineReader is the part of liner.State the shell uses
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Shell is an interactive prompt into a running network
type Shell struct {
	backend  backend.Backend
	network  *backend.Network
	engine   engine.Engine
	groups   []normalize.VlanGroup
	links    []topology.SwitchLinkSpec
	switches []topology.SwitchDescriptor
	out      io.Writer
}

// New creates a Shell. The engine is used by pingall
func New(b backend.Backend,
	network *backend.Network,
	e engine.Engine,
	groups []normalize.VlanGroup,
	links []topology.SwitchLinkSpec,
	switches []topology.SwitchDescriptor,
	out io.Writer) *Shell {
	return &Shell{
		backend:  b,
		network:  network,
		engine:   e,
		groups:   groups,
		links:    links,
		switches: switches,
		out:      out,
	}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

// Run reads commands until exit, end of input or ctx is done
func (shell *Shell) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := historyFilePath()
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintf(shell.out, "Type 'help' for available commands or 'exit' to quit.\n")
	err := shell.loop(ctx, line)

	if historyFile != "" {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}

	return err
}

func (shell *Shell) loop(ctx context.Context, line lineReader) error {
	for ctx.Err() == nil {
		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(shell.out, "Use 'exit' to quit")
				continue
			}
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "shell: unable to read input")
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if shell.execute(ctx, strings.Fields(input)) {
			return nil
		}
	}

	return ctx.Err()
}

// execute runs one command and reports whether the shell should exit.
// Command errors are printed, they never end the shell
func (shell *Shell) execute(ctx context.Context, args []string) bool {
	var err error
	switch args[0] {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprint(shell.out, helpText)
	case "nodes":
		shell.printNodes()
	case "links":
		shell.printLinks()
	case "link":
		err = shell.setLink(ctx, args[1:])
	case "pingall":
		err = shell.pingAll(ctx)
	default:
		err = shell.exec(ctx, args)
	}

	if err != nil {
		log.Debugf("Shell command %v failed: %v", args, err)
		fmt.Fprintf(shell.out, "Error: %v\n", err)
	}
	return false
}

func (shell *Shell) printNodes() {
	for _, node := range shell.network.Nodes() {
		fmt.Fprintf(shell.out, "%-4d %-16s %s\n", node.ID, node.HostName, node.NetNSName)
	}
}

func (shell *Shell) printLinks() {
	for _, link := range shell.links {
		fmt.Fprintln(shell.out, link)
	}
}

func (shell *Shell) setLink(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: link <switch> <switch> up|down")
	}
	status := backend.LinkStatus(args[2])
	if status != backend.LinkUp && status != backend.LinkDown {
		return errors.Errorf("unknown link state '%s', expected up or down", args[2])
	}

	return shell.backend.SetLinkStatus(ctx, shell.network, args[0], args[1], status)
}

func (shell *Shell) pingAll(ctx context.Context) error {
	report, err := shell.engine.Run(ctx, shell.network, shell.groups, shell.links, shell.switches)
	if err != nil {
		return err
	}
	log.Debugf("pingall run %s: %d phases", report.RunID, len(report.Phases))
	return nil
}

// resolveNode finds a node by namespace name, endpoint id or host name. A
// host name picks the host's first node
func (shell *Shell) resolveNode(name string) (backend.NodeHandle, error) {
	nodes := shell.network.Nodes()
	for _, node := range nodes {
		if node.NetNSName == name {
			return node, nil
		}
	}
	if id, err := strconv.Atoi(name); err == nil {
		return shell.backend.ResolveEndpointHandle(shell.network, id)
	}
	for _, node := range nodes {
		if node.HostName == name {
			return node, nil
		}
	}

	return backend.NodeHandle{}, errors.Errorf("unknown command or node '%s', try 'help'", name)
}

func (shell *Shell) exec(ctx context.Context, args []string) error {
	node, err := shell.resolveNode(args[0])
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.Errorf("usage: %s <command> [args]", args[0])
	}

	output, err := shell.backend.Exec(ctx, shell.network, node.ID, args[1:])
	shell.out.Write(output)
	return err
}
