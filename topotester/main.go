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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	log "github.com/cihub/seelog"
	"github.com/topotester/topotester/pkg/logger"
	"github.com/topotester/topotester/topotester/commands"
	"github.com/topotester/topotester/topotester/config"
)

func init() {
	// This is to ensure that all the namespace operations are performed for
	// a single thread
	runtime.LockOSThread()
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

func execute() error {
	defer log.Flush()
	logger.SetupLogger(logger.GetLogFileLocation(config.DefaultLogFile), "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := commands.NewRootCommand()
	if err != nil {
		log.Errorf("Error creating command: %v", err)
		return err
	}
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(fmt.Sprintf("Error: %s\n", err.Error()))
		return err
	}

	return nil
}
