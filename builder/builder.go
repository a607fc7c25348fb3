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
	"log/slog"
	"slices"

	"dirpx.dev/errconf"
	"dirpx.dev/errconf/apis"
	"dirpx.dev/errconf/entry"
)

// source records which tier of the merge algorithm wrote a key.
type source uint8

const (
	sourceNone source = iota
	// sourceMajor: an explicit major-only pattern.
	sourceMajor
	// sourceFallback: major-level key established by a minor-specific pattern.
	sourceFallback
	// sourceMinor: a minor-specific pattern.
	sourceMinor
)

func (s source) String() string {
	switch s {
	case sourceMajor:
		return "major"
	case sourceFallback:
		return "fallback"
	case sourceMinor:
		return "minor"
	default:
		return "none"
	}
}

// slot is one row of the table together with its provenance.
type slot struct {
	rule apis.Rule
	src  source
	// entry is the index of the input entry that last wrote this row.
	entry int
}

// builder is the scratch state of a single Build call. It is never shared.
type builder struct {
	slots  map[apis.Key]slot
	logger *slog.Logger

	// replaced counts writes that changed the category of an existing key.
	replaced int
}

func newBuilder() *builder {
	return &builder{
		slots:  make(map[apis.Key]slot),
		logger: slog.New(slog.DiscardHandler),
	}
}

// Build validates entries and folds them, in order, into an immutable
// Configuration.
//
// Build fails only when some entry has no code groups; the returned error then
// matches errconf.ErrInvalidEntryList and carries the offending index under
// the "index" detail.
func Build(entries []entry.Entry, opts ...Option) (*Configuration, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	if err := validate(entries); err != nil {
		b.logger.Warn("errconf: rejected entry list", "entries", len(entries), "error", err)
		return nil, fmt.Errorf("builder: %w", err)
	}

	for i, e := range entries {
		b.apply(i, e)
	}

	c := freeze(b.slots)
	b.logger.Info("errconf: configuration built",
		"entries", len(entries),
		"keys", c.Len(),
		"replaced", b.replaced,
	)
	return c, nil
}

// MustBuild is the panic-on-error variant of Build. It is meant for static,
// compiled-in configurations.
func MustBuild(entries []entry.Entry, opts ...Option) *Configuration {
	c, err := Build(entries, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// validate rejects the whole list if any entry has no code groups.
func validate(entries []entry.Entry) error {
	for i, e := range entries {
		if len(e.Groups) > 0 {
			continue
		}
		return errconf.E(errconf.InvalidEntryList,
			fmt.Sprintf("entry %d (%q) has no code groups", i, e.Category),
			errconf.WithDetailOption("index", i),
			errconf.WithDetailOption("category", e.Category.String()),
		)
	}
	return nil
}

// apply folds a single entry into the table.
func (b *builder) apply(idx int, e entry.Entry) {
	rule := apis.Rule{
		Category:        e.Category,
		RecoveryMessage: e.RecoveryMessage,
		RecoveryOptions: slices.Clone(e.RecoveryOptions),
	}

	for _, g := range e.Groups {
		parent := apis.MajorKey(g.Code)

		subs := g.UniqueSubcodes()
		if len(subs) == 0 {
			b.set(parent, slot{rule: rule, src: sourceMajor, entry: idx})
			continue
		}

		for _, s := range subs {
			b.set(apis.MinorKey(g.Code, s), slot{rule: rule, src: sourceMinor, entry: idx})
			if _, ok := b.slots[parent]; !ok {
				b.slots[parent] = slot{rule: rule, src: sourceFallback, entry: idx}
			}
		}
	}
}

// set writes a row unconditionally, logging when a different category is replaced.
func (b *builder) set(k apis.Key, s slot) {
	if prev, ok := b.slots[k]; ok && prev.rule.Category != s.rule.Category {
		b.replaced++
		b.logger.Debug("errconf: rule replaced",
			"key", k.String(),
			"from", prev.rule.Category.String(),
			"to", s.rule.Category.String(),
			"previous_source", prev.src.String(),
			"source", s.src.String(),
			"previous_entry", prev.entry,
			"entry", s.entry,
		)
	}
	b.slots[k] = s
}
