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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlTopology = `
hosts_matrix:
  - name: h1
    interfaces:
      - switch: s1
        swport: 1
        mac: "00:00:00:00:00:01"
        ipv4: 10.0.0.1/24
switch_matrix:
  links: []
  dp_ids:
    s1: 1
`

func TestDecodeJSONKeepsNumbers(t *testing.T) {
	doc, err := Decode([]byte(` {"hosts_matrix": [{"name": "h1", "interfaces": [{"swport": 1}]}]}`))
	require.NoError(t, err)

	hosts := doc[hostsMatrixKey].([]interface{})
	iface := hosts[0].(map[string]interface{})["interfaces"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, json.Number("1"), iface["swport"])
}

func TestDecodeYAML(t *testing.T) {
	doc, err := Decode([]byte(yamlTopology))
	require.NoError(t, err)

	topo, warnings, err := Validate(doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, topo.Hosts, 1)
	assert.Equal(t, 1, topo.Hosts[0].Interfaces[0].SwPort)
}

const yamlTwoSwitchTopology = `
hosts_matrix:
  - name: h1
    interfaces:
      - switch: s1
        swport: 1
        mac: "00:00:00:00:00:01"
        ipv4: 10.0.0.1/24
        ipv6: fc00::1/64
      - switch: s1
        swport: 1
        vlan: 10
        ipv4: 10.0.10.1/24
  - name: h2
    interfaces:
      - switch: s2
        swport: 1
        mac: "00:00:00:00:00:02"
        ipv4: 10.0.0.2/24
switch_matrix:
  links:
    - [s1, 2, s2, 2]
  dp_ids:
    s1: 1
    s2: "2"
  p4: [s2]
`

func TestDecodeYAMLNestedMappings(t *testing.T) {
	doc, err := Decode([]byte(yamlTwoSwitchTopology))
	require.NoError(t, err)

	hosts := doc[hostsMatrixKey].([]interface{})
	assert.IsType(t, map[string]interface{}{}, hosts[0])
	assert.IsType(t, map[string]interface{}{}, doc[switchMatrixKey])

	topo, _, err := Validate(doc)
	require.NoError(t, err)
	require.Len(t, topo.Hosts, 2)
	require.Len(t, topo.Hosts[0].Interfaces, 2)
	require.NotNil(t, topo.Hosts[0].Interfaces[1].VLAN)
	assert.Equal(t, 10, *topo.Hosts[0].Interfaces[1].VLAN)
	assert.Equal(t, "00:00:00:00:00:01", topo.Hosts[0].Interfaces[1].MAC)
	assert.Equal(t, []SwitchLinkSpec{{SwitchA: "s1", PortA: 2, SwitchB: "s2", PortB: 2}}, topo.Links)

	s2, ok := topo.Switch("s2")
	require.True(t, ok)
	assert.True(t, s2.Alternate)
	require.NotNil(t, s2.DatapathID)
	assert.Equal(t, uint64(2), *s2.DatapathID)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("   "))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"hosts_matrix": [`))
	assert.Error(t, err)

	_, err = Decode([]byte("- just\n- a list\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlTopology), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Contains(t, doc, switchMatrixKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topology file not found")
}
