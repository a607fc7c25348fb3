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

// Package adapter converts a resolved configuration into flat, portable
// descriptors.
//
// Descriptors are intended for structured logging, for display in
// diagnostics tools, and for collaborators that cache a configuration in
// their own format. They carry the same information as apis.Rule plus the key.
package adapter

import (
	"slices"

	"dirpx.dev/errconf/apis"
	"dirpx.dev/errconf/category"
)

// ToDescriptor converts one (key, rule) pair into an apis.Descriptor.
// Slices are copied, so the descriptor can be modified freely.
func ToDescriptor(k apis.Key, r apis.Rule) apis.Descriptor {
	d := apis.Descriptor{
		Major:           k.Major(),
		Category:        r.Category.String(),
		RecoveryMessage: r.RecoveryMessage,
		RecoveryOptions: slices.Clone(r.RecoveryOptions),
	}
	if minor, ok := k.Minor(); ok {
		d.Minor = &minor
	}
	return d
}

// Snapshot returns one descriptor per key of cfg, in cfg.Keys() order.
// A nil configuration yields nil.
func Snapshot(cfg apis.Configuration) []apis.Descriptor {
	if cfg == nil {
		return nil
	}
	keys := cfg.Keys()
	out := make([]apis.Descriptor, 0, len(keys))
	for _, k := range keys {
		r, ok := cfg.Rule(k)
		if !ok {
			continue
		}
		out = append(out, ToDescriptor(k, r))
	}
	return out
}

// FromDescriptor is the inverse of ToDescriptor. The category is not
// validated; callers that read descriptors from an untrusted source should
// call category.Validate on the result.
func FromDescriptor(d apis.Descriptor) (apis.Key, apis.Rule) {
	return apis.KeyOf(d.Major, d.Minor), apis.Rule{
		Category:        category.Category(d.Category),
		RecoveryMessage: d.RecoveryMessage,
		RecoveryOptions: slices.Clone(d.RecoveryOptions),
	}
}
