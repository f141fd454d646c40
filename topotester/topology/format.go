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

package topology

import (
	"encoding/json"
	"math"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MinVLANID is the lowest vlan id accepted. 0 is the 802.1Q priority
	// tag and is rejected
	MinVLANID = 1
	// MaxVLANID is the highest vlan id accepted
	MaxVLANID = 4095
	// MaxSwitchPort is the highest switch port number accepted
	MaxSwitchPort = 255
)

// ValidIPv4CIDR returns true if s is an ipv4 address in "address/prefix" form
func ValidIPv4CIDR(s string) bool {
	if !strings.Contains(s, ".") || !strings.Contains(s, "/") {
		return false
	}
	ip, _, err := net.ParseCIDR(s)
	return err == nil && ip.To4() != nil
}

// ValidIPv6CIDR returns true if s is an ipv6 address in "address/prefix" form
func ValidIPv6CIDR(s string) bool {
	if !strings.Contains(s, ":") || !strings.Contains(s, "/") {
		return false
	}
	ip, _, err := net.ParseCIDR(s)
	return err == nil && ip.To4() == nil
}

// ValidMAC returns true if s is a colon separated 48-bit mac address
func ValidMAC(s string) bool {
	if !strings.Contains(s, ":") {
		return false
	}
	hwAddr, err := net.ParseMAC(s)
	return err == nil && len(hwAddr) == 6
}

// CanonicalMAC returns the lower case colon separated form of a valid mac
func CanonicalMAC(s string) string {
	hwAddr, err := net.ParseMAC(s)
	if err != nil {
		return s
	}
	return hwAddr.String()
}

// ValidVLAN returns true if vid is a usable 802.1Q vlan id
func ValidVLAN(vid int) bool {
	return vid >= MinVLANID && vid <= MaxVLANID
}

// ValidPort returns true if port is a usable switch port number
func ValidPort(port int) bool {
	return port >= 0 && port <= MaxSwitchPort
}

// asInt converts a decoded document value into an int. Integer numbers and
// numeric strings are accepted
func asInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return 0, errors.Errorf("value %d out of range", v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.Errorf("value %v is not an integer", v)
		}
		return int(v), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, errors.Errorf("value %s is not an integer", v.String())
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errors.Errorf("value '%s' is not an integer", v)
		}
		return i, nil
	}

	return 0, errors.Errorf("value of type %T is not an integer", value)
}

// ParseDatapathID converts a decoded dp_ids value into a datapath id
func ParseDatapathID(value interface{}) (uint64, error) {
	var str string
	switch v := value.(type) {
	case int:
		if v < 0 {
			return 0, errors.Errorf("datapath id %d is negative", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, errors.Errorf("datapath id %d is negative", v)
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return 0, errors.Errorf("datapath id %v is not a non-negative integer", v)
		}
		return uint64(v), nil
	case json.Number:
		str = v.String()
	case string:
		str = strings.TrimSpace(v)
	default:
		return 0, errors.Errorf("datapath id of type %T is not numeric", value)
	}

	dpid, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, errors.Errorf("datapath id '%s' is not numeric", str)
	}
	return dpid, nil
}
