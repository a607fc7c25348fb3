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

package httpx

import (
	"net/http"

	"dirpx.dev/errconf/category"
	"github.com/tidwall/sjson"
)

// defaultHTTP defines the built-in HTTP statuses used when a classified error
// is exposed again to downstream clients (e.g. by a gateway).
var defaultHTTP = map[category.Category]int{
	category.Transient:       http.StatusServiceUnavailable, // Upstream asked us to come back later.
	category.Login:           http.StatusUnauthorized,       // Caller must re-authenticate.
	category.AppNotInstalled: http.StatusFailedDependency,   // A companion app is required on the caller side.
	category.Other:           http.StatusBadGateway,         // Upstream failed in a way we cannot act on.
}

// StatusFor returns the default HTTP status for a category.
// Unknown categories map to 500.
func StatusFor(c category.Category) int {
	if v, ok := defaultHTTP[c]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Writer writes classified errors as JSON responses in the same shape that
// ParseCodes reads, extended with the resolved category and recovery text.
type Writer struct {
	// Overrides replaces the default status for individual categories.
	Overrides map[category.Category]int
}

// Status resolves the HTTP status for c, honoring Overrides.
func (w Writer) Status(c category.Category) int {
	if v, ok := w.Overrides[c]; ok {
		return v
	}
	return StatusFor(c)
}

// Write serializes cl and writes it to rw with the resolved status.
//
// No redaction is performed: recovery text from the configuration is
// exposed as-is.
func (w Writer) Write(rw http.ResponseWriter, cl Classification, message string) {
	body, err := Body(cl, message)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(w.Status(cl.Category))
	_, _ = rw.Write(body)
}

// Body renders the JSON error body for cl.
func Body(cl Classification, message string) ([]byte, error) {
	body := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		body, err = sjson.SetBytes(body, path, v)
	}

	set("error.code", cl.Key.Major())
	if minor, ok := cl.Key.Minor(); ok {
		set("error.error_subcode", minor)
	}
	set("error.category", cl.Category.String())
	if message != "" {
		set("error.message", message)
	}
	if cl.Rule.RecoveryMessage != "" {
		set("error.recovery_message", cl.Rule.RecoveryMessage)
	}
	if len(cl.Rule.RecoveryOptions) > 0 {
		set("error.recovery_options", cl.Rule.RecoveryOptions)
	}
	return body, err
}
