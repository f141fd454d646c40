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

package engine

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/topotester/topotester/topotester/backend"
	"github.com/topotester/topotester/topotester/backend/mocks"
	"github.com/topotester/topotester/topotester/normalize"
)

func TestProbeSkipsMissingFamily(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBackend := mock_backend.NewMockBackend(ctrl)
	src := normalize.Endpoint{ID: 1, HostName: "a", IPv4: "10.0.0.1/24", IPv6: "fc00::1/64"}
	dst := normalize.Endpoint{ID: 2, HostName: "b", IPv4: "10.0.0.2/24"}

	_, probed, err := Probe(context.TODO(), mockBackend, &backend.Network{}, src, dst, backend.IPv6, time.Second)
	require.NoError(t, err)
	assert.False(t, probed)

	_, probed, err = Probe(context.TODO(), mockBackend, &backend.Network{}, dst, src, backend.IPv6, time.Second)
	require.NoError(t, err)
	assert.False(t, probed)
}

func TestProbeStripsPrefixAndBoundsTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBackend := mock_backend.NewMockBackend(ctrl)
	network := &backend.Network{}
	src := normalize.Endpoint{ID: 1, HostName: "a", IPv6: "fc00::1/64", VLAN: vlan(20)}
	dst := normalize.Endpoint{ID: 2, HostName: "b", IPv6: "fc00::2/64", VLAN: vlan(20)}
	mockBackend.EXPECT().Probe(gomock.Any(), network, src, net.ParseIP("fc00::2"), backend.IPv6).DoAndReturn(
		func(ctx context.Context, network *backend.Network, src normalize.Endpoint, dst net.IP, family backend.Family) (backend.ProbeResult, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
			return backend.ProbeResult{Sent: 1, Received: 1}, nil
		})

	result, probed, err := Probe(context.TODO(), mockBackend, network, src, dst, backend.IPv6, time.Second)
	require.NoError(t, err)
	assert.True(t, probed)
	assert.Equal(t, 1, result.Received)
}

func TestProbeInvalidDestination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := normalize.Endpoint{ID: 1, IPv4: "10.0.0.1/24"}
	dst := normalize.Endpoint{ID: 2, IPv4: "fc00::2/64"}
	_, _, err := Probe(context.TODO(), mock_backend.NewMockBackend(ctrl), &backend.Network{}, src, dst, backend.IPv4, 0)
	assert.Error(t, err)
}
