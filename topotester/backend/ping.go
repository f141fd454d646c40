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

package backend

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

const (
	pingExecutableName = "ping"
	pingInterval       = "0.01"
)

var pingSummaryRegexp = regexp.MustCompile(`(\d+) packets transmitted, (\d+)( packets)? received`)

// pingArgs builds the arguments of a probe bound to binding
func pingArgs(binding string, count int, dst net.IP, family Family) []string {
	args := []string{
		"-I", binding,
		"-c" + strconv.Itoa(count),
		"-i", pingInterval,
	}
	if family == IPv6 {
		args = append(args, "-6")
	}

	return append(args, dst.String())
}

// parsePing extracts the packet counts from ping output. Output without a
// summary line yields one lost packet and an anomaly
func parsePing(output string) ProbeResult {
	matches := pingSummaryRegexp.FindStringSubmatch(output)
	if matches == nil {
		return ProbeResult{
			Sent:     1,
			Received: 0,
			Anomaly:  fmt.Sprintf("could not parse ping output: %q", strings.TrimSpace(output)),
		}
	}

	sent, _ := strconv.Atoi(matches[1])
	received, _ := strconv.Atoi(matches[2])
	return ProbeResult{Sent: sent, Received: received}
}
