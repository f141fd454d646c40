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

package backend

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	iputilsOutput = `PING 10.0.0.2 (10.0.0.2) from 10.0.0.1 eth0: 56(84) bytes of data.
64 bytes from 10.0.0.2: icmp_seq=1 ttl=64 time=0.061 ms

--- 10.0.0.2 ping statistics ---
1 packets transmitted, 1 received, 0% packet loss, time 0ms
rtt min/avg/max/mdev = 0.061/0.061/0.061/0.000 ms
`
	lossOutput = `PING fc00::2(fc00::2) from fc00::1 eth0.100: 56 data bytes

--- fc00::2 ping statistics ---
3 packets transmitted, 0 received, 100% packet loss, time 2041ms
`
	busyboxOutput = `--- 10.0.0.2 ping statistics ---
2 packets transmitted, 2 packets received, 0% packet loss
`
)

func TestParsePingReceived(t *testing.T) {
	assert.Equal(t, ProbeResult{Sent: 1, Received: 1}, parsePing(iputilsOutput))
}

func TestParsePingLoss(t *testing.T) {
	assert.Equal(t, ProbeResult{Sent: 3, Received: 0}, parsePing(lossOutput))
}

func TestParsePingBusybox(t *testing.T) {
	assert.Equal(t, ProbeResult{Sent: 2, Received: 2}, parsePing(busyboxOutput))
}

func TestParsePingUnparseableOutputCountsAsLoss(t *testing.T) {
	result := parsePing("connect: Network is unreachable\n")
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 0, result.Received)
	assert.Contains(t, result.Anomaly, "Network is unreachable")
}

func TestPingArgsIPv4(t *testing.T) {
	args := pingArgs("eth0", 1, net.ParseIP("10.0.0.2"), IPv4)
	assert.Equal(t, []string{"-I", "eth0", "-c1", "-i", "0.01", "10.0.0.2"}, args)
}

func TestPingArgsIPv6(t *testing.T) {
	args := pingArgs("eth0.100", 3, net.ParseIP("fc00::2"), IPv6)
	assert.Equal(t, []string{"-I", "eth0.100", "-c3", "-i", "0.01", "-6", "fc00::2"}, args)
}
