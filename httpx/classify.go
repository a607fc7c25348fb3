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

// Package httpx classifies JSON error bodies returned over HTTP against a
// resolved error configuration, and writes classified errors back out.
//
// The expected error body shape is:
//
//	{"error": {"code": 190, "error_subcode": 463, "message": "..."}}
//
// error_subcode is optional. Reading the body from the network is up to the
// caller; this package only looks at bytes.
package httpx

import (
	"strconv"

	"dirpx.dev/errconf/apis"
	"dirpx.dev/errconf/category"
	"github.com/tidwall/gjson"
)

// ParseCodes extracts the major code and optional minor code from a JSON
// error body. ok is false when error.code is missing or is not an integer
// that fits in an int, or when error.error_subcode is present, non-null and
// not such an integer.
func ParseCodes(body []byte) (major int, minor *int, ok bool) {
	if !gjson.ValidBytes(body) {
		return 0, nil, false
	}
	res := gjson.GetManyBytes(body, "error.code", "error.error_subcode")
	major, ok = integer(res[0])
	if !ok {
		return 0, nil, false
	}
	if !res[1].Exists() || res[1].Type == gjson.Null {
		return major, nil, true
	}
	s, ok := integer(res[1])
	if !ok {
		return 0, nil, false
	}
	return major, &s, true
}

func integer(r gjson.Result) (int, bool) {
	if r.Type != gjson.Number {
		return 0, false
	}
	n, err := strconv.ParseInt(r.Raw, 10, 0)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// Classification is the outcome of classifying one error body.
type Classification struct {
	// Key is the key that matched, or the most specific key that was
	// looked up when nothing matched.
	Key apis.Key

	// Category is the resolved category, or the classifier's default when
	// Found is false.
	Category category.Category

	// Rule is the matched rule. Zero when Found is false.
	Rule apis.Rule

	// Found reports whether the configuration had a rule for the error.
	Found bool
}

// Classifier classifies error bodies against Config using the two-step
// lookup convention (specific key first, then the major-level key).
type Classifier struct {
	// Config is the resolved configuration. A nil Config classifies every
	// error as Default.
	Config apis.Configuration

	// Default is the category used when neither lookup hits.
	// The zero value means category.Other.
	Default category.Category
}

// Classify parses body and resolves its category. ok is false when the body
// is not a recognizable error body.
func (c Classifier) Classify(body []byte) (Classification, bool) {
	major, minor, ok := ParseCodes(body)
	if !ok {
		return Classification{}, false
	}
	return c.ClassifyCodes(major, minor), true
}

// ClassifyCodes resolves the category for already extracted codes.
func (c Classifier) ClassifyCodes(major int, minor *int) Classification {
	if k, r, ok := apis.Resolve(c.Config, major, minor); ok {
		return Classification{Key: k, Category: r.Category, Rule: r, Found: true}
	}
	def := c.Default
	if def == category.Empty {
		def = category.Other
	}
	return Classification{Key: apis.KeyOf(major, minor), Category: def}
}
