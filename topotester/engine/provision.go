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

	log "github.com/cihub/seelog"
	"github.com/topotester/topotester/topotester/backend"
	"github.com/topotester/topotester/topotester/normalize"
)

var families = []backend.Family{backend.IPv4, backend.IPv6}

// Provision applies every interface address, ipv4 before ipv6, in
// interface order. Tagged interfaces get their vlan sub-interface from the
// backend on the way
func (engine *engine) Provision(ctx context.Context, network *backend.Network, n *normalize.Normalized) error {
	for _, endpoint := range n.Interfaces {
		for _, family := range families {
			cidr := addressOf(endpoint, family)
			if cidr == "" {
				continue
			}
			err := engine.backend.ConfigureEndpointAddress(ctx, network, endpoint, family, cidr)
			if err != nil {
				return err
			}
		}
	}

	log.Infof("Provisioned %d interfaces", len(n.Interfaces))
	return nil
}
