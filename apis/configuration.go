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

package apis

import (
	"dirpx.dev/errconf/category"
)

// Configuration is an immutable, concurrency-safe view of a resolved error
// configuration. It maps a Key to the Rule that applies to it.
//
// Lookups are exact: Lookup(190, 463) never falls back to Lookup(190).
// Callers that want "specific, else general" semantics issue both lookups and
// take the first hit, or use Resolve which does exactly that. When both miss,
// the caller applies its own default (usually category.Other).
type Configuration interface {
	// Lookup returns the category stored for (major, minor). Passing no minor
	// queries the major-level key. Only the first minor value is used.
	Lookup(major int, minor ...int) (category.Category, bool)

	// Rule returns the full rule stored for k.
	Rule(k Key) (Rule, bool)

	// Len returns the number of keys in the configuration.
	Len() int

	// Keys returns all keys ordered by Key.Less.
	Keys() []Key

	// Explain returns a human-readable description of how k was resolved.
	// Intended for diagnostics, not for machine parsing.
	Explain(k Key) string
}

// Rule is the value stored for one key.
type Rule struct {
	// Category is the classification of errors matching the key.
	Category category.Category

	// RecoveryMessage and RecoveryOptions are copied verbatim from the entry
	// that wrote the key. Both may be empty.
	RecoveryMessage string
	RecoveryOptions []string
}

// Resolve performs the caller-side two-step lookup: first (major, minor) when
// minor is present, then the major-level key. It returns the first hit and
// the key that matched.
func Resolve(cfg Configuration, major int, minor *int) (Key, Rule, bool) {
	if cfg == nil {
		return Key{}, Rule{}, false
	}
	if minor != nil {
		k := MinorKey(major, *minor)
		if r, ok := cfg.Rule(k); ok {
			return k, r, true
		}
	}
	k := MajorKey(major)
	if r, ok := cfg.Rule(k); ok {
		return k, r, true
	}
	return Key{}, Rule{}, false
}

// CategorizedError is implemented by errors that were classified against a
// Configuration at a transport boundary.
type CategorizedError interface {
	error

	// ErrorKey returns the key the error was classified under.
	ErrorKey() Key

	// ErrorCategory returns the resolved category.
	ErrorCategory() category.Category
}
