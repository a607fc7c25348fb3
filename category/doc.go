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

// Package category defines the closed set of labels that a remote error
// configuration can assign to an error code.
//
// A category tells the caller what to do about an error it observed:
//
//   - "transient"          — the operation may succeed if retried later;
//   - "login"              — the caller must re-authenticate first;
//   - "app_not_installed"  — a companion application is required;
//   - "other"              — anything else; not actionable on its own.
//
// The set is closed on purpose: callers switch on Category and expect the
// compiler-visible constants in this package to be exhaustive. Remote input is
// normalized with Normalize and checked with Parse before it enters the model.
package category
