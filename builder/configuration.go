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
	"fmt"
	"slices"
	"strings"

	"dirpx.dev/errconf/apis"
	"dirpx.dev/errconf/category"
)

// Ensure Configuration implements apis.Configuration.
var _ apis.Configuration = (*Configuration)(nil)

// Configuration is the immutable result of Build. Lookups are O(1) and safe
// for concurrent use. The zero value is an empty configuration.
type Configuration struct {
	// slots holds every row written during Build together with its provenance.
	slots map[apis.Key]slot

	// keys are the keys of slots ordered by apis.Key.Less.
	keys []apis.Key
}

// Lookup returns the category stored for the exact key (major, minor).
// Passing no minor queries the major-level key; extra minors are ignored.
//
// There is no fallback from a minor-specific key to the major-level key.
func (c *Configuration) Lookup(major int, minor ...int) (category.Category, bool) {
	k := apis.MajorKey(major)
	if len(minor) > 0 {
		k = apis.MinorKey(major, minor[0])
	}
	s, ok := c.slot(k)
	if !ok {
		return category.Empty, false
	}
	return s.rule.Category, true
}

// Rule returns the rule stored for k. The returned RecoveryOptions slice is a copy.
func (c *Configuration) Rule(k apis.Key) (apis.Rule, bool) {
	s, ok := c.slot(k)
	if !ok {
		return apis.Rule{}, false
	}
	r := s.rule
	r.RecoveryOptions = slices.Clone(r.RecoveryOptions)
	return r, true
}

// Len returns the number of keys.
func (c *Configuration) Len() int {
	if c == nil {
		return 0
	}
	return len(c.slots)
}

// Keys returns all keys ordered by major code, major-level first, then minor code.
func (c *Configuration) Keys() []apis.Key {
	if c == nil {
		return nil
	}
	return slices.Clone(c.keys)
}

// Explain describes how k was resolved.
//
// Example output:
//
//	key="190/463"
//	exact:  source=minor entry=2 -> login
//	parent: source=fallback entry=0 -> transient
//
// source is one of major, fallback, minor or none; entry is the index of the
// input entry that last wrote the row. The parent line is only printed for
// minor-specific keys, as a hint for callers using apis.Resolve.
func (c *Configuration) Explain(k apis.Key) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "key=%q\n", k.String())
	_, _ = fmt.Fprintf(&b, "exact:  %s\n", c.explainSlot(k))
	if !k.IsMajorOnly() {
		_, _ = fmt.Fprintf(&b, "parent: %s\n", c.explainSlot(k.Parent()))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (c *Configuration) explainSlot(k apis.Key) string {
	s, ok := c.slot(k)
	if !ok {
		return "source=none"
	}
	return fmt.Sprintf("source=%s entry=%d -> %s", s.src, s.entry, s.rule.Category)
}

func (c *Configuration) slot(k apis.Key) (slot, bool) {
	if c == nil {
		return slot{}, false
	}
	s, ok := c.slots[k]
	return s, ok
}
