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

package utils

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// ParseCIDRAddressError is returned when a CIDR string does not carry an
// address of the expected family
type ParseCIDRAddressError struct {
	operation string
	origin    string
	message   string
}

func (err *ParseCIDRAddressError) Error() string {
	return err.operation + " " + err.origin + ": " + err.message
}

func newParseCIDRAddressError(operation string, origin string, message string) error {
	return &ParseCIDRAddressError{
		operation: operation,
		origin:    origin,
		message:   message,
	}
}

// HostAddressFromCIDR returns the host address of an "address/prefix"
// string, i.e. the part a probe should target. ipv6 selects the family the
// address must belong to
func HostAddressFromCIDR(cidr string, ipv6 bool) (net.IP, error) {
	ip, _, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, errors.Wrapf(err,
			"host address: unable to parse cidr: '%s'", cidr)
	}

	isIPv4 := ip.To4() != nil
	if ipv6 == isIPv4 {
		family := "ipv4"
		if ipv6 {
			family = "ipv6"
		}
		return nil, newParseCIDRAddressError("host address", "utils",
			fmt.Sprintf("cidr '%s' is not an %s address", cidr, family))
	}
	if isIPv4 {
		return ip.To4(), nil
	}

	return ip, nil
}
