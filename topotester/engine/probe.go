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
	"time"

	"github.com/pkg/errors"
	"github.com/topotester/topotester/pkg/utils"
	"github.com/topotester/topotester/topotester/backend"
	"github.com/topotester/topotester/topotester/normalize"
)

// addressOf returns the endpoint's cidr of the given family, empty when it
// has none
func addressOf(endpoint normalize.Endpoint, family backend.Family) string {
	if family == backend.IPv6 {
		return endpoint.IPv6
	}
	return endpoint.IPv4
}

// Probe sends one probe from src to dst through the backend. The second
// return value is false when the pair was skipped because either side has
// no address of the family; nothing is sent then. A zero timeout leaves
// the probe bounded by ctx only
func Probe(ctx context.Context,
	b backend.Backend,
	network *backend.Network,
	src normalize.Endpoint,
	dst normalize.Endpoint,
	family backend.Family,
	timeout time.Duration) (backend.ProbeResult, bool, error) {
	if addressOf(src, family) == "" || addressOf(dst, family) == "" {
		return backend.ProbeResult{}, false, nil
	}

	dstAddress, err := utils.HostAddressFromCIDR(addressOf(dst, family), family == backend.IPv6)
	if err != nil {
		return backend.ProbeResult{}, false, errors.Wrapf(err, "probe engine: invalid destination %s", dst)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := b.Probe(ctx, network, src, dstAddress, family)
	if err != nil {
		return backend.ProbeResult{}, false, err
	}

	return result, true, nil
}
