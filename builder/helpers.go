/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package builder

import (
	"maps"
	"slices"

	"dirpx.dev/errconf/apis"
)

// freeze detaches the scratch table from the builder and orders its keys.
// An empty table freezes to a Configuration with nil maps.
func freeze(src map[apis.Key]slot) *Configuration {
	if len(src) == 0 {
		return &Configuration{}
	}
	dst := make(map[apis.Key]slot, len(src))
	maps.Copy(dst, src)
	return &Configuration{
		slots: dst,
		keys:  slices.SortedFunc(maps.Keys(dst), compareKeys),
	}
}

// compareKeys adapts apis.Key.Less to the slices.SortFunc contract.
func compareKeys(a, b apis.Key) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
