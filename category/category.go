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

package category

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
	"unicode"
)

// Category is the canonical, validated representation of an error category.
//
// It is a separate type (not just string) so that raw remote input is never
// mixed with values that already passed Parse.
//
// IMPORTANT: the empty category ("") is NOT a valid category.
type Category string

const (
	// Other is the catch-all category. Callers usually apply it themselves
	// when neither the specific nor the major-level lookup finds a rule.
	Other Category = "other"

	// Transient marks errors that are expected to go away on their own
	// (throttling, temporary outages). Retrying later is reasonable.
	Transient Category = "transient"

	// Login marks errors that are recoverable only by logging in again
	// (expired or revoked sessions, changed passwords).
	Login Category = "login"

	// AppNotInstalled marks errors caused by a missing companion application.
	AppNotInstalled Category = "app_not_installed"
)

var (
	// ErrCategoryInvalid is returned when a value cannot be parsed as one of
	// the known categories.
	ErrCategoryInvalid = errors.New("errconf: invalid category")
)

var (
	_ encoding.TextMarshaler   = (*Category)(nil)
	_ encoding.TextUnmarshaler = (*Category)(nil)
)

// Empty is the zero-value category. It means "not provided" and never
// passes Validate.
var Empty Category = ""

// known lists every valid category in declaration order.
var known = []Category{Other, Transient, Login, AppNotInstalled}

// All returns every known category in a stable order.
// The returned slice is a copy and may be modified by the caller.
func All() []Category {
	out := make([]Category, len(known))
	copy(out, known)
	return out
}

// Parse normalizes s and checks it against the known set.
// On success it returns the canonical Category value.
func Parse(s string) (Category, error) {
	c := Category(Normalize(s))
	if err := Validate(c); err != nil {
		return Empty, err
	}
	return c, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Category {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize brings an arbitrary string closer to the canonical form.
//
// It only performs non-lossy transformations:
//
//   - trims surrounding spaces;
//   - splits camelCase words with '_' ("appNotInstalled" -> "app_not_installed");
//   - lowercases the value;
//   - replaces '-' with '_'.
//
// The result is not guaranteed to be a known category.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	prev := rune(0)
	for _, r := range s {
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return strings.ReplaceAll(b.String(), "-", "_")
}

// Validate reports whether c is one of the known categories.
func Validate(c Category) error {
	for _, k := range known {
		if c == k {
			return nil
		}
	}
	return ErrCategoryInvalid
}

// Valid is a boolean shorthand for Validate(c) == nil.
func (c Category) Valid() bool {
	return Validate(c) == nil
}

// String returns the canonical string representation of the category.
func (c Category) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
