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

// Package remote decodes the remote error configuration payload into
// entry.Entry values.
//
// The accepted shape is a JSON array of entries, optionally wrapped in an
// object under "data":
//
//	[
//	  {
//	    "name": "transient",
//	    "items": [{"code": 1, "subcodes": [2, 3]}, {"code": 4}],
//	    "recovery_message": "Try again later.",
//	    "recovery_options": ["OK"]
//	  }
//	]
//
// Codes and subcodes must be JSON integers that fit in an int; fractions,
// exponents and out-of-range values are rejected.
//
// Entries whose "name" is not a known category are skipped, so that a newer
// server can introduce categories without breaking older clients. Skipped
// entries are still checked for shape, and a skipped entry without code groups
// fails the whole list with errconf.ErrInvalidEntryList, as it would in the
// builder. Everything else that does not match the shape is rejected with an
// error matching errconf.ErrInvalidPayload. A known entry without "items"
// decodes to an entry with no groups; the builder decides what to do with it.
//
// Fetching the payload is up to the caller.
package remote

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"dirpx.dev/errconf"
	"dirpx.dev/errconf/builder"
	"dirpx.dev/errconf/category"
	"dirpx.dev/errconf/entry"
	"github.com/tidwall/gjson"
)

// Option configures Decode and Build.
type Option func(*decoder)

// WithLogger sets the structured logger. Skipped entries are logged at warn
// level. Build passes the same logger on to the builder.
func WithLogger(l *slog.Logger) Option {
	return func(d *decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

type decoder struct {
	logger *slog.Logger
}

func newDecoder(opts []Option) *decoder {
	d := &decoder{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses data into entries, preserving input order.
func Decode(data []byte, opts ...Option) ([]entry.Entry, error) {
	return newDecoder(opts).decode(data)
}

// Build decodes data and folds the entries into a configuration.
func Build(data []byte, opts ...Option) (*builder.Configuration, error) {
	d := newDecoder(opts)
	entries, err := d.decode(data)
	if err != nil {
		return nil, err
	}
	return builder.Build(entries, builder.WithLogger(d.logger))
}

func (d *decoder) decode(data []byte) ([]entry.Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, invalid("payload is not valid JSON")
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("data")
	}
	if !list.IsArray() {
		return nil, invalid(`expected an array of entries or {"data": [...]}`)
	}

	items := list.Array()
	out := make([]entry.Entry, 0, len(items))
	for i, item := range items {
		e, ok, err := d.decodeEntry(i, item)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// decodeEntry returns ok=false for entries that are skipped.
func (d *decoder) decodeEntry(i int, v gjson.Result) (entry.Entry, bool, error) {
	if !v.IsObject() {
		return entry.Entry{}, false, invalid(fmt.Sprintf("entry %d is not an object", i), "index", i)
	}

	groups, err := decodeGroups(i, v.Get("items"))
	if err != nil {
		return entry.Entry{}, false, err
	}

	name := v.Get("name").String()
	c, err := category.Parse(name)
	if err != nil {
		if len(groups) == 0 {
			return entry.Entry{}, false, errconf.E(errconf.InvalidEntryList,
				fmt.Sprintf("entry %d (%q) has no code groups", i, name),
				errconf.WithDetailOption("index", i),
				errconf.WithDetailOption("category", name),
			)
		}
		d.logger.Warn("errconf: skipping entry with unknown category", "index", i, "name", name)
		return entry.Entry{}, false, nil
	}

	e := entry.Entry{
		Category:        c,
		Groups:          groups,
		RecoveryMessage: v.Get("recovery_message").String(),
	}
	if opts := v.Get("recovery_options"); opts.IsArray() {
		for _, o := range opts.Array() {
			e.RecoveryOptions = append(e.RecoveryOptions, o.String())
		}
	}
	return e, true, nil
}

func decodeGroups(i int, items gjson.Result) ([]entry.CodeGroup, error) {
	if !items.Exists() || items.Type == gjson.Null {
		return nil, nil
	}
	if !items.IsArray() {
		return nil, invalid(fmt.Sprintf("entry %d: items is not an array", i), "index", i)
	}
	var groups []entry.CodeGroup
	for j, g := range items.Array() {
		group, err := decodeGroup(g)
		if err != nil {
			return nil, invalid(fmt.Sprintf("entry %d, group %d", i, j), "index", i).WithCause(err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

var (
	errCodeMissing = errors.New("code is missing")
	errNotInteger  = errors.New("not an integer")
)

func decodeGroup(g gjson.Result) (entry.CodeGroup, error) {
	code := g.Get("code")
	if !code.Exists() {
		return entry.CodeGroup{}, errCodeMissing
	}
	major, err := integer(code)
	if err != nil {
		return entry.CodeGroup{}, fmt.Errorf("code: %w", err)
	}
	group := entry.CodeGroup{Code: major}

	subs := g.Get("subcodes")
	if !subs.Exists() || subs.Type == gjson.Null {
		return group, nil
	}
	if !subs.IsArray() {
		return entry.CodeGroup{}, errors.New("subcodes is not an array")
	}
	for _, s := range subs.Array() {
		minor, err := integer(s)
		if err != nil {
			return entry.CodeGroup{}, fmt.Errorf("subcode: %w", err)
		}
		group.Subcodes = append(group.Subcodes, minor)
	}
	return group, nil
}

// integer parses r as a JSON integer that fits in an int.
func integer(r gjson.Result) (int, error) {
	if r.Type != gjson.Number {
		return 0, fmt.Errorf("%s: %w", r.Raw, errNotInteger)
	}
	n, err := strconv.ParseInt(r.Raw, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", r.Raw, errNotInteger)
	}
	return int(n), nil
}

func invalid(msg string, kv ...any) *errconf.Error {
	e := errconf.E(errconf.InvalidPayload, msg)
	for i := 0; i+1 < len(kv); i += 2 {
		k, _ := kv[i].(string)
		e = e.WithDetail(k, kv[i+1])
	}
	return e
}
