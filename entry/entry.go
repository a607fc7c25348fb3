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

// Package entry holds the model of one remote error configuration entry.
//
// An Entry pairs a category.Category with one or more CodeGroup patterns.
// A CodeGroup without subcodes applies to the major code as a whole; a
// CodeGroup with subcodes applies only to those (major, minor) pairs.
//
// Values in this package are plain data. Whether a list of entries is usable
// is decided by the builder, not here: an Entry with no groups can be
// constructed, it just cannot be built.
package entry

import (
	"slices"

	"dirpx.dev/errconf/category"
)

// CodeGroup is one major error code plus an optional set of minor codes.
//
// Subcodes is logically a set. Duplicates are allowed in the slice but carry
// no meaning; UniqueSubcodes returns the collapsed view.
type CodeGroup struct {
	// Code is the major error code reported by the remote system.
	Code int `json:"code" yaml:"code"`

	// Subcodes are the minor codes this group is restricted to.
	// Empty means the group applies to Code as a whole.
	Subcodes []int `json:"subcodes,omitempty" yaml:"subcodes,omitempty"`
}

// Group is a convenience constructor for CodeGroup.
func Group(code int, subcodes ...int) CodeGroup {
	return CodeGroup{Code: code, Subcodes: slices.Clone(subcodes)}
}

// MajorOnly reports whether the group carries no subcodes.
func (g CodeGroup) MajorOnly() bool {
	return len(g.Subcodes) == 0
}

// UniqueSubcodes returns the subcodes with duplicates removed, in first-seen
// order. It returns nil for a major-only group.
func (g CodeGroup) UniqueSubcodes() []int {
	if len(g.Subcodes) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(g.Subcodes))
	out := make([]int, 0, len(g.Subcodes))
	for _, s := range g.Subcodes {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Equal reports whether two groups have the same code and the same subcode set.
func (g CodeGroup) Equal(o CodeGroup) bool {
	if g.Code != o.Code {
		return false
	}
	a, b := g.UniqueSubcodes(), o.UniqueSubcodes()
	if len(a) != len(b) {
		return false
	}
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Entry is a single remote error configuration entry.
type Entry struct {
	// Category is the classification applied to every code matched by Groups.
	Category category.Category `json:"name" yaml:"name"`

	// Groups are the code patterns this entry applies to.
	Groups []CodeGroup `json:"items" yaml:"items"`

	// RecoveryMessage is remote-supplied text that a caller may show when
	// presenting the error. It is carried verbatim and never interpreted.
	RecoveryMessage string `json:"recovery_message,omitempty" yaml:"recovery_message,omitempty"`

	// RecoveryOptions are remote-supplied button labels or similar choices
	// that accompany RecoveryMessage.
	RecoveryOptions []string `json:"recovery_options,omitempty" yaml:"recovery_options,omitempty"`
}

// New constructs an Entry. Zero groups are accepted here; see package doc.
func New(c category.Category, groups ...CodeGroup) Entry {
	e := Entry{Category: c}
	if len(groups) > 0 {
		e.Groups = make([]CodeGroup, len(groups))
		for i, g := range groups {
			e.Groups[i] = g.clone()
		}
	}
	return e
}

// WithRecovery returns a copy of e carrying the given recovery message and options.
func (e Entry) WithRecovery(msg string, options ...string) Entry {
	cp := e.Clone()
	cp.RecoveryMessage = msg
	cp.RecoveryOptions = slices.Clone(options)
	return cp
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	cp := e
	if e.Groups != nil {
		cp.Groups = make([]CodeGroup, len(e.Groups))
		for i, g := range e.Groups {
			cp.Groups[i] = g.clone()
		}
	}
	cp.RecoveryOptions = slices.Clone(e.RecoveryOptions)
	return cp
}

// Equal reports whether two entries are equivalent: same category, same
// recovery text, and the same groups in the same order (subcodes compared as sets).
func (e Entry) Equal(o Entry) bool {
	if e.Category != o.Category || e.RecoveryMessage != o.RecoveryMessage {
		return false
	}
	if !slices.Equal(e.RecoveryOptions, o.RecoveryOptions) {
		return false
	}
	return slices.EqualFunc(e.Groups, o.Groups, CodeGroup.Equal)
}

func (g CodeGroup) clone() CodeGroup {
	return CodeGroup{Code: g.Code, Subcodes: slices.Clone(g.Subcodes)}
}
