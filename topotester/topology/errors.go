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
)

// Defect is a single structural problem found in a topology description
type Defect struct {
	// Location names the offending host, interface or link, e.g.
	// "host[1] 'b' interface[0]"
	Location string
	Field    string
	Rule     string
}

func (defect Defect) String() string {
	if defect.Field == "" {
		return defect.Location + ": " + defect.Rule
	}
	return defect.Location + ": field '" + defect.Field + "': " + defect.Rule
}

// ConfigError is returned when a topology description cannot be used. It
// carries every defect found, not only the first
type ConfigError struct {
	Defects []Defect
}

func (err *ConfigError) Error() string {
	lines := make([]string, 0, len(err.Defects)+1)
	lines = append(lines, fmt.Sprintf(
		"validate topology: malformed config detected, %d defect(s) found", len(err.Defects)))
	for _, defect := range err.Defects {
		lines = append(lines, "  "+defect.String())
	}

	return strings.Join(lines, "\n")
}
