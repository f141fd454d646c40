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
	"bytes"
	"encoding/json"
	"os"

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads and decodes the topology description at path
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err,
				"load topology: topology file not found: %s; specify one with --topology-file", path)
		}
		return nil, errors.Wrapf(err, "load topology: unable to read file %s", path)
	}

	log.Debugf("Loaded topology file %s (%d bytes)", path, len(data))
	doc, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load topology: error in the file %s", path)
	}

	return doc, nil
}

// Decode decodes an inline topology description. A document starting with
// '{' is decoded as JSON, anything else as YAML
func Decode(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("decode topology: topology document is empty")
	}

	if trimmed[0] == '{' {
		doc := Document{}
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		decoder.UseNumber()
		if err := decoder.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decode topology: invalid json document")
		}
		return doc, nil
	}

	// Nested mappings take the type of the target map, so decode into a
	// plain map for the validator to see map[string]interface{} throughout
	mapping := map[string]interface{}{}
	if err := yaml.Unmarshal(trimmed, &mapping); err != nil {
		return nil, errors.Wrap(err, "decode topology: invalid yaml document")
	}
	if len(mapping) == 0 {
		return nil, errors.New("decode topology: document is not a mapping")
	}

	return Document(mapping), nil
}
