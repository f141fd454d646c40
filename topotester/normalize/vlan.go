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

package normalize

// Partition groups the interfaces of n by vlan. The untagged group always
// comes first, even when empty; tagged groups follow in order of first
// appearance
func Partition(n *Normalized) []VlanGroup {
	groups := []VlanGroup{{Key: Untagged}}
	index := map[VlanKey]int{Untagged: 0}

	for _, endpoint := range n.Interfaces {
		key := endpoint.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, VlanGroup{Key: key})
		}
		groups[i].Members = append(groups[i].Members, endpoint)
	}

	return groups
}
