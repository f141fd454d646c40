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

package topology

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const happyPathTopology = `{
	"hosts_matrix": [
		{"name": "h1", "interfaces": [
			{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01",
			 "ipv4": "10.0.0.1/24", "ipv6": "fc00::1:1/64"}
		]},
		{"name": "h2", "interfaces": [
			{"switch": "s1", "swport": 2, "mac": "00:00:00:00:00:02",
			 "ipv4": "10.0.0.2/24", "ipv6": "fc00::1:2/64"}
		]}
	],
	"switch_matrix": {
		"links": [],
		"dp_ids": {"s1": "1"}
	}
}`

func decode(t *testing.T, doc string) Document {
	parsed, err := Decode([]byte(doc))
	require.NoError(t, err)
	return parsed
}

// singleInterface builds a one host document around the given interface
func singleInterface(iface string) string {
	return fmt.Sprintf(`{
		"hosts_matrix": [{"name": "h1", "interfaces": [%s]}],
		"switch_matrix": {"links": [], "dp_ids": {"s1": 1}}
	}`, iface)
}

func configError(t *testing.T, err error) *ConfigError {
	require.Error(t, err)
	configErr, ok := err.(*ConfigError)
	require.True(t, ok, "expected *ConfigError, got %T", err)
	return configErr
}

func TestValidateHappyPath(t *testing.T) {
	topo, warnings, err := Validate(decode(t, happyPathTopology))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, topo.Hosts, 2)
	assert.Equal(t, "h1", topo.Hosts[0].Name)
	assert.Equal(t, InterfaceSpec{
		Switch: "s1",
		SwPort: 1,
		IPv4:   "10.0.0.1/24",
		IPv6:   "fc00::1:1/64",
		MAC:    "00:00:00:00:00:01",
	}, topo.Hosts[0].Interfaces[0])

	require.Len(t, topo.Switches, 1)
	sw := topo.Switches[0]
	assert.Equal(t, "s1", sw.Name)
	require.NotNil(t, sw.DatapathID)
	assert.Equal(t, uint64(1), *sw.DatapathID)
	assert.True(t, sw.SupportsControlledFailover)
	assert.False(t, sw.Alternate)
}

func TestValidateInheritsMACFromSibling(t *testing.T) {
	topo, _, err := Validate(decode(t, singleInterface(`
		{"switch": "s1", "swport": 3, "mac": "0A:00:00:00:00:03", "ipv4": "10.0.0.3/24"},
		{"switch": "s1", "swport": 3, "vlan": 10, "ipv6": "fc00::10:3/64"}`)))
	require.NoError(t, err)

	ifaces := topo.Hosts[0].Interfaces
	require.Len(t, ifaces, 2)
	assert.Equal(t, "0a:00:00:00:00:03", ifaces[0].MAC)
	assert.Equal(t, "0a:00:00:00:00:03", ifaces[1].MAC)
	require.NotNil(t, ifaces[1].VLAN)
	assert.Equal(t, 10, *ifaces[1].VLAN)
}

func TestValidateInheritsMACFromLaterSibling(t *testing.T) {
	topo, _, err := Validate(decode(t, singleInterface(`
		{"switch": "s1", "swport": 3, "vlan": 10, "ipv4": "10.0.10.3/24"},
		{"switch": "s1", "swport": 3, "mac": "00:00:00:00:00:03", "ipv4": "10.0.0.3/24"}`)))
	require.NoError(t, err)
	assert.Equal(t, "00:00:00:00:00:03", topo.Hosts[0].Interfaces[0].MAC)
}

func TestValidateMissingMACUnresolvableNamesHost(t *testing.T) {
	_, _, err := Validate(decode(t, `{
		"hosts_matrix": [
			{"name": "a", "interfaces": [
				{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}
			]},
			{"name": "b", "interfaces": [
				{"switch": "s1", "swport": 2, "ipv4": "10.0.0.2/24"}
			]}
		],
		"switch_matrix": {"links": [], "dp_ids": {"s1": 1}}
	}`))

	configErr := configError(t, err)
	require.Len(t, configErr.Defects, 1)
	defect := configErr.Defects[0]
	assert.Equal(t, "host[1] 'b' interface[0]", defect.Location)
	assert.Equal(t, "mac", defect.Field)
	assert.Contains(t, err.Error(), "'b'")
}

func TestValidateMACOnOtherPortIsNotInherited(t *testing.T) {
	_, _, err := Validate(decode(t, singleInterface(`
		{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"},
		{"switch": "s1", "swport": 2, "ipv4": "10.0.1.1/24"}`)))

	configErr := configError(t, err)
	require.Len(t, configErr.Defects, 1)
	assert.Equal(t, "host[0] 'h1' interface[1]", configErr.Defects[0].Location)
}

func TestValidateAmbiguousMAC(t *testing.T) {
	_, _, err := Validate(decode(t, singleInterface(`
		{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"},
		{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:02", "ipv4": "10.0.1.1/24", "vlan": 20},
		{"switch": "s1", "swport": 1, "ipv6": "fc00::1/64", "vlan": 30}`)))

	configErr := configError(t, err)
	require.Len(t, configErr.Defects, 1)
	assert.Equal(t, "host[0] 'h1' interface[2]", configErr.Defects[0].Location)
	assert.Contains(t, configErr.Defects[0].Rule, "conflicting")
}

func TestValidateMACFormat(t *testing.T) {
	_, _, err := Validate(decode(t, singleInterface(
		`{"switch": "s1", "swport": 1, "mac": "00-00-00-00-00-01", "ipv4": "10.0.0.1/24"}`)))

	configErr := configError(t, err)
	require.Len(t, configErr.Defects, 1)
	assert.Equal(t, "mac", configErr.Defects[0].Field)
}

func TestValidateVLANBoundaries(t *testing.T) {
	for _, testCase := range []struct {
		vlan  string
		valid bool
	}{
		{"0", false},
		{"1", true},
		{"4095", true},
		{"4096", false},
		{"-1", false},
		{`"100"`, true},
		{`"ten"`, false},
	} {
		t.Run(testCase.vlan, func(t *testing.T) {
			topo, _, err := Validate(decode(t, singleInterface(fmt.Sprintf(
				`{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24", "vlan": %s}`,
				testCase.vlan))))
			if !testCase.valid {
				configErr := configError(t, err)
				assert.Equal(t, "vlan", configErr.Defects[0].Field)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, topo.Hosts[0].Interfaces[0].VLAN)
		})
	}
}

func TestValidateAddresses(t *testing.T) {
	for _, testCase := range []struct {
		name  string
		iface string
		field string
	}{
		{"no address", `{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01"}`, ""},
		{"ipv4 without prefix", `{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1"}`, "ipv4"},
		{"ipv4 unparseable", `{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0/24.1"}`, "ipv4"},
		{"ipv6 in ipv4 field", `{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "fc00::1/64"}`, "ipv4"},
		{"ipv6 without prefix", `{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv6": "fc00::1"}`, "ipv6"},
		{"empty ipv6", `{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv6": ""}`, "ipv6"},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			_, _, err := Validate(decode(t, singleInterface(testCase.iface)))
			configErr := configError(t, err)
			require.Len(t, configErr.Defects, 1)
			assert.Equal(t, testCase.field, configErr.Defects[0].Field)
		})
	}
}

func TestValidateSwitchPort(t *testing.T) {
	for _, testCase := range []struct {
		name  string
		iface string
		field string
	}{
		{"missing switch", `{"swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}`, "switch"},
		{"missing swport", `{"switch": "s1", "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}`, "swport"},
		{"port out of range", `{"switch": "s1", "swport": 256, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}`, "swport"},
		{"port not a number", `{"switch": "s1", "swport": "one", "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}`, "swport"},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			_, _, err := Validate(decode(t, singleInterface(testCase.iface)))
			configErr := configError(t, err)
			require.Len(t, configErr.Defects, 1)
			assert.Equal(t, testCase.field, configErr.Defects[0].Field)
		})
	}
}

func TestValidateNumericStringPort(t *testing.T) {
	topo, _, err := Validate(decode(t, singleInterface(
		`{"switch": "s1", "swport": "7", "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}`)))
	require.NoError(t, err)
	assert.Equal(t, 7, topo.Hosts[0].Interfaces[0].SwPort)
}

func TestValidateTopLevelSections(t *testing.T) {
	_, _, err := Validate(Document{})
	configErr := configError(t, err)
	require.Len(t, configErr.Defects, 2)
	assert.Equal(t, hostsMatrixKey, configErr.Defects[0].Location)
	assert.Equal(t, switchMatrixKey, configErr.Defects[1].Location)

	_, _, err = Validate(decode(t, `{"hosts_matrix": [], "switch_matrix": {}}`))
	configErr = configError(t, err)
	require.Len(t, configErr.Defects, 2)

	_, _, err = Validate(decode(t, `{"hosts_matrix": [{"name": "h1", "interfaces": [
		{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}]}],
		"switch_matrix": {"dp_ids": {"s1": 1}}}`))
	configErr = configError(t, err)
	require.Len(t, configErr.Defects, 1)
	assert.Equal(t, linksKey, configErr.Defects[0].Field)
}

func TestValidateHostEntries(t *testing.T) {
	_, _, err := Validate(decode(t, `{
		"hosts_matrix": [
			{"interfaces": [{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}]},
			{"name": "h2"},
			{"name": "h3", "interfaces": []},
			{"name": "h4", "interfaces": [{"switch": "s1", "swport": 4, "mac": "00:00:00:00:00:04", "ipv4": "10.0.0.4/24"}]},
			{"name": "h4", "interfaces": [{"switch": "s1", "swport": 5, "mac": "00:00:00:00:00:05", "ipv4": "10.0.0.5/24"}]}
		],
		"switch_matrix": {"links": [], "dp_ids": {"s1": 1}}
	}`))

	configErr := configError(t, err)
	require.Len(t, configErr.Defects, 4)
	assert.Equal(t, Defect{Location: "host[0]", Field: "name", Rule: "entry detected without a name"}, configErr.Defects[0])
	assert.Equal(t, "host[1] 'h2'", configErr.Defects[1].Location)
	assert.Equal(t, "interfaces", configErr.Defects[1].Field)
	assert.Equal(t, "host[2] 'h3'", configErr.Defects[2].Location)
	assert.Equal(t, "host[4] 'h4'", configErr.Defects[3].Location)
	assert.Contains(t, configErr.Defects[3].Rule, "duplicate host name")
}

func TestValidateLinks(t *testing.T) {
	_, _, err := Validate(decode(t, `{
		"hosts_matrix": [{"name": "h1", "interfaces": [
			{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}]}],
		"switch_matrix": {
			"links": [
				["s1", 10, "s2"],
				["s1", 256, "s2", 10],
				["s1", 11, "", 11],
				["s1", 12, "s2", "x"],
				"s1-s2",
				["s1", 13, "s2", 13]
			],
			"dp_ids": {"s1": 1, "s2": 2}
		}
	}`))

	configErr := configError(t, err)
	locations := []string{}
	for _, defect := range configErr.Defects {
		locations = append(locations, defect.Location+"/"+defect.Field)
	}
	assert.Equal(t, []string{
		"link[0]/",
		"link[1]/portA",
		"link[2]/switchB",
		"link[3]/portB",
		"link[4]/",
	}, locations)
}

func TestValidateSwitchPortClaimedTwice(t *testing.T) {
	_, _, err := Validate(decode(t, `{
		"hosts_matrix": [
			{"name": "h1", "interfaces": [{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}]},
			{"name": "h2", "interfaces": [{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:02", "ipv4": "10.0.0.2/24"}]}
		],
		"switch_matrix": {"links": [["s1", 1, "s2", 1]], "dp_ids": {"s1": 1, "s2": 2}}
	}`))

	configErr := configError(t, err)
	require.Len(t, configErr.Defects, 2)
	assert.Equal(t, "host 'h1'", configErr.Defects[0].Location)
	assert.Contains(t, configErr.Defects[0].Rule, "link[0]")
	assert.Equal(t, "host 'h2'", configErr.Defects[1].Location)
}

func TestValidateDatapathIDs(t *testing.T) {
	_, warnings, err := Validate(decode(t, `{
		"hosts_matrix": [{"name": "h1", "interfaces": [
			{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}]}],
		"switch_matrix": {"links": [["s1", 2, "s2", 2]]}
	}`))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "dp_ids")

	_, _, err = Validate(decode(t, `{
		"hosts_matrix": [{"name": "h1", "interfaces": [
			{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}]}],
		"switch_matrix": {"links": [["s1", 2, "s2", 2], ["s2", 3, "s3", 3]], "dp_ids": {"s1": "one", "s2": 2}}
	}`))
	configErr := configError(t, err)
	require.Len(t, configErr.Defects, 3)
	assert.Equal(t, Defect{Location: dpIDsLocation, Field: "s1", Rule: "datapath id 'one' is not numeric; please ensure that dp_ids are valid numbers"}, configErr.Defects[0])
	assert.Equal(t, "s1", configErr.Defects[1].Field)
	assert.Equal(t, "no datapath id for referenced switch", configErr.Defects[1].Rule)
	assert.Equal(t, "s3", configErr.Defects[2].Field)
}

func TestValidateDatapathIDPairs(t *testing.T) {
	topo, _, err := Validate(decode(t, `{
		"hosts_matrix": [{"name": "h1", "interfaces": [
			{"switch": "s1", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}]}],
		"switch_matrix": {"links": [["s1", 2, "s2", 2]], "dp_ids": [["s1", "1"], ["s2", 2]]}
	}`))
	require.NoError(t, err)
	require.Len(t, topo.Switches, 2)
	assert.Equal(t, uint64(2), *topo.Switches[1].DatapathID)
}

func TestValidateAlternateSwitches(t *testing.T) {
	topo, warnings, err := Validate(decode(t, `{
		"hosts_matrix": [{"name": "h1", "interfaces": [
			{"switch": "s3", "swport": 1, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"}]}],
		"switch_matrix": {
			"links": [["s1", 2, "s2", 2]],
			"dp_ids": {"s1": 1, "s3": 3},
			"p4": ["s2", "s9"]
		}
	}`))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "s9")

	names := []string{}
	for _, sw := range topo.Switches {
		names = append(names, sw.Name)
	}
	assert.Equal(t, []string{"s1", "s2", "s3"}, names)

	s2, ok := topo.Switch("s2")
	require.True(t, ok)
	assert.True(t, s2.Alternate)
	assert.False(t, s2.SupportsControlledFailover)
	assert.Nil(t, s2.DatapathID)

	s3, ok := topo.Switch("s3")
	require.True(t, ok)
	assert.True(t, s3.SupportsControlledFailover)

	_, ok = topo.Switch("s9")
	assert.False(t, ok)
}

func TestValidateAccumulatesDefects(t *testing.T) {
	_, _, err := Validate(decode(t, `{
		"hosts_matrix": [
			{"name": "a", "interfaces": [
				{"switch": "s1", "swport": 300, "mac": "00:00:00:00:00:01", "ipv4": "10.0.0.1/24"},
				{"switch": "s1", "swport": 2, "ipv4": "10.0.0.2", "vlan": 0}
			]},
			{"name": "b", "interfaces": [
				{"switch": "s1", "swport": 3, "mac": "00.00.00.00.00.03", "ipv6": "fc00::3/64"}
			]}
		],
		"switch_matrix": {"links": [["s1", 1, "s2"]], "dp_ids": {"s1": 1}}
	}`))

	configErr := configError(t, err)
	assert.Len(t, configErr.Defects, 6)
	message := err.Error()
	assert.True(t, strings.HasPrefix(message, "validate topology: malformed config detected, 6 defect(s) found"))
	for _, fragment := range []string{"swport", "ipv4", "vlan", "'b'", "link[0]"} {
		assert.Contains(t, message, fragment)
	}
}
