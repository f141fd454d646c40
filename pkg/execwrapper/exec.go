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

package execwrapper

//go:generate mockgen -destination=mocks/execwrapper_mocks.go -copyright_file=../../scripts/copyright_file github.com/topotester/topotester/pkg/execwrapper Exec,Cmd

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Exec wraps methods used from the os/exec package
type Exec interface {
	// CommandContext returns a Cmd that runs name with args, killed when
	// ctx is done
	CommandContext(ctx context.Context, name string, arg ...string) Cmd
	// LookPath searches for an executable named file in the PATH
	LookPath(file string) (string, error)
}

// Cmd wraps methods used from the exec.Cmd type
type Cmd interface {
	CombinedOutput() ([]byte, error)
	Start() error
	Wait() error
	SetOutput(stdout io.Writer, stderr io.Writer)
	// Process returns the started process, nil before Start
	Process() *os.Process
}

type _exec struct {
}

// NewExec creates a new Exec object
func NewExec() Exec {
	return &_exec{}
}

func (*_exec) CommandContext(ctx context.Context, name string, arg ...string) Cmd {
	return &cmd{Cmd: exec.CommandContext(ctx, name, arg...)}
}

func (*_exec) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

type cmd struct {
	*exec.Cmd
}

func (c *cmd) SetOutput(stdout io.Writer, stderr io.Writer) {
	c.Cmd.Stdout = stdout
	c.Cmd.Stderr = stderr
}

func (c *cmd) Process() *os.Process {
	return c.Cmd.Process
}
