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

// Package errconf turns an ordered list of remote error configuration
// entries into an immutable lookup table that classifies (major, minor)
// error codes into actionable categories.
//
// The building blocks live in subpackages:
//
//   - category: the closed set of classification labels;
//   - entry:    the model of one remote configuration entry;
//   - builder:  the merge algorithm and the resolved configuration;
//   - apis:     the query contracts collaborators depend on.
//
// This package only holds the error taxonomy shared by all of them.
package errconf

import (
	"fmt"
	"maps"
)

// Kind is the machine-readable class of an errconf failure.
type Kind string

const (
	// InvalidEntryList means at least one entry in a list has no code groups.
	// The whole list is rejected; nothing is built from it.
	InvalidEntryList Kind = "invalid_entry_list"

	// InvalidPayload means a remote payload could not be decoded into entries.
	InvalidPayload Kind = "invalid_payload"
)

// Sentinel errors for use with errors.Is. Any *Error with the same Kind
// matches, regardless of message, details or cause.
var (
	ErrInvalidEntryList = &Error{Kind: InvalidEntryList, Message: "entry has no code groups"}
	ErrInvalidPayload   = &Error{Kind: InvalidPayload, Message: "malformed error configuration payload"}
)

// Error is the rich error type returned by errconf packages.
//
// All mutation helpers (WithX) return a shallow copy, so Error values can be
// shared freely.
type Error struct {
	// Kind is the primary classification of the failure.
	Kind Kind

	// Message is a human-readable explanation.
	Message string

	// Details is an optional, shallow map of extra fields such as the index of
	// the offending entry. Treated as immutable: WithDetail always copies it.
	Details map[string]any

	// Cause holds the wrapped underlying error, if any.
	Cause error
}

// E is a convenience constructor for Error.
//
//	return errconf.E(errconf.InvalidEntryList, "entry has no code groups",
//	    errconf.WithDetailOption("index", i),
//	)
func E(k Kind, msg string, opts ...Option) *Error {
	e := &Error{Kind: k, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is "errconf: <kind>: <message>", followed by ": <cause>" when a
// cause is attached.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("errconf: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("errconf: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Detail returns a single detail value.
func (e *Error) Detail(k string) (any, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e.Details[k]
	return v, ok
}

// WithDetail returns a shallow copy of e with one extra key/value in Details.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	m := make(map[string]any, len(cp.Details)+1)
	maps.Copy(m, cp.Details)
	m[k] = v
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of e with the given cause attached.
// If err is nil, e is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
