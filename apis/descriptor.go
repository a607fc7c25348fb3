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

// Descriptor is a flat, serialization-friendly description of one row of a
// resolved configuration.
//
// It uses plain types (not Key) so that it can be written to logs, JSON or
// YAML by collaborators that cache or display a configuration.
type Descriptor struct {
	// Major is the major error code.
	Major int `json:"code" yaml:"code"`

	// Minor is the minor code, or nil for a major-level row.
	Minor *int `json:"subcode,omitempty" yaml:"subcode,omitempty"`

	// Category is the canonical category name.
	Category string `json:"category" yaml:"category"`

	// RecoveryMessage is the remote-supplied recovery text, if any.
	RecoveryMessage string `json:"recovery_message,omitempty" yaml:"recovery_message,omitempty"`

	// RecoveryOptions are the remote-supplied recovery choices, if any.
	RecoveryOptions []string `json:"recovery_options,omitempty" yaml:"recovery_options,omitempty"`
}
