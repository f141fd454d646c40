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

package logger

import (
	"fmt"
	"os"
	"strings"

	log "github.com/cihub/seelog"
)

const (
	// LogFileEnvVar overrides the log file location
	LogFileEnvVar = "TOPOTESTER_LOG_FILE"
	// LogLevelEnvVar overrides the log level
	LogLevelEnvVar = "TOPOTESTER_LOG_LEVEL"

	// DefaultLogLevel is used when no level, or an unknown level, is set
	DefaultLogLevel = "info"
)

var validLevels = map[string]struct{}{
	"trace":    {},
	"debug":    {},
	"info":     {},
	"warn":     {},
	"error":    {},
	"critical": {},
	"off":      {},
}

// GetLogFileLocation returns the log file path. The environment variable
// takes precedence over the default
func GetLogFileLocation(defaultLogFilePath string) string {
	logFilePath := os.Getenv(LogFileEnvVar)
	if logFilePath == "" {
		logFilePath = defaultLogFilePath
	}

	return logFilePath
}

// GetLogLevel normalizes the requested level, falling back to the
// environment and then to the default
func GetLogLevel(level string) string {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	if _, ok := validLevels[level]; !ok {
		return DefaultLogLevel
	}

	return level
}

// SetupLogger replaces the seelog logger with one that writes to both the
// console and a rolling log file. The logger is synchronous so that log
// lines stay ordered with the reachability trace written to stdout
func SetupLogger(logFilePath string, level string) {
	logger, err := log.LoggerFromConfigAsString(loggerConfig(logFilePath, GetLogLevel(level)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logger: %v\n", err)
		return
	}

	log.ReplaceLogger(logger)
}

func loggerConfig(logFilePath string, level string) string {
	config := `
<seelog type="sync" minlevel="` + level + `">
	<outputs formatid="main">
		<console />`
	if logFilePath != "" {
		config += `
		<rollingfile filename="` + logFilePath + `" type="date"
			datepattern="2006-01-02-15" archivetype="none" maxrolls="24" />`
	}
	config += `
	</outputs>
	<formats>
		<format id="main" format="%UTCDate(2006-01-02T15:04:05Z07:00) [%LEVEL] %Msg%n" />
	</formats>
</seelog>`

	return config
}
