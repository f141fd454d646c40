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

package capabilities

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	// Command is the subcommand that prints the capabilities
	Command = "capabilities"
	// LinkFaultInjectionCapability is the single-link failure/recovery sweep
	LinkFaultInjectionCapability = "link-fault-injection"
	// VlanPartitionCapability is per-vlan reachability testing
	VlanPartitionCapability = "vlan-partition"
	// IPv6Capability is reachability testing over ipv6
	IPv6Capability = "ipv6"
	// SwitchDriverPrefix prefixes every supported switch driver name
	SwitchDriverPrefix = "switch-driver-"
)

// Capability lists what this build of topotester can do
type Capability struct {
	Capabilities []string `json:"capabilities,omitempty"`
}

// New returns a Capability object with specified capabilities
func New(capabilities ...string) *Capability {
	return &Capability{
		Capabilities: capabilities,
	}
}

// WithSwitchDrivers appends one capability per switch driver
func (cap *Capability) WithSwitchDrivers(drivers ...string) *Capability {
	for _, driver := range drivers {
		cap.Capabilities = append(cap.Capabilities, SwitchDriverPrefix+driver)
	}

	return cap
}

// String returns the JSON string of the Capability struct
func (cap *Capability) String() (string, error) {
	data, err := json.Marshal(cap)
	if err != nil {
		return "", errors.Wrapf(err, "capabilities: failed to marshal capabilities info: %v", cap.Capabilities)
	}

	return string(data), nil
}

// Print writes the supported capabilities info into w
func (cap *Capability) Print(w io.Writer) error {
	info, err := cap.String()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, info)
	return err
}
