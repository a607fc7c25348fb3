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

// Package builder folds an ordered list of remote error configuration
// entries (dirpx.dev/errconf/entry) into an immutable, queryable
// Configuration (dirpx.dev/errconf/apis).
//
// # Overview
//
// Each entry names a category and a set of code patterns. A pattern is either
// major-only (a code with no subcodes) or minor-specific (a code restricted to
// a set of subcodes). Build walks the entries in input order and writes one
// row per (major, minor?) key:
//
//  1. a major-only pattern always writes the major-level key;
//  2. a minor-specific pattern always writes each (major, minor) key, and
//     writes the major-level key only if nothing has written it yet
//     (a "fallback" default).
//
// From this follows the precedence contract:
//
//   - an explicit major-only pattern wins at the major-level key over any
//     fallback, in whatever order they appear;
//   - between two major-only patterns for the same code, the later one wins;
//   - between two minor-specific patterns for the same pair, the later one wins;
//   - a minor-specific pattern never replaces an established major-level key.
//
// # Validation
//
// A list that contains an entry with no code groups is rejected as a whole
// with an error matching errconf.ErrInvalidEntryList. No partial
// configuration is ever returned. An empty list is valid and yields an empty
// configuration.
//
// # Lookups
//
// Lookups are exact. Configuration.Lookup(190, 463) does not consult the
// major-level key 190; callers wanting that use apis.Resolve.
//
// # Diagnostics
//
// Configuration.Explain returns a human-readable trace of which entry wrote a
// key and through which tier (major, fallback, minor). With WithLogger, the
// build also logs every replacement of a key by a different category.
//
// # Immutability
//
// All inputs are copied during Build. After construction a Configuration does
// not observe changes to the caller's slices and is safe to share across
// goroutines without locking.
package builder
