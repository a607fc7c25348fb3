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

import (
	"strconv"
)

// Key identifies one row of a resolved configuration: a major code and an
// optional minor code.
//
// Absence of the minor code is explicit; there is no sentinel value, so every
// int is a legal minor code. Key is comparable and can be used as a map key.
// Two keys are equal iff both the major code and the (optional) minor code match.
type Key struct {
	major    int
	minor    int
	hasMinor bool
}

// MajorKey returns the major-level key for the given code (minor code absent).
func MajorKey(major int) Key {
	return Key{major: major}
}

// MinorKey returns the key for a specific (major, minor) pair.
func MinorKey(major, minor int) Key {
	return Key{major: major, minor: minor, hasMinor: true}
}

// KeyOf builds a key from an optional minor pointer. A nil minor yields MajorKey.
func KeyOf(major int, minor *int) Key {
	if minor == nil {
		return MajorKey(major)
	}
	return MinorKey(major, *minor)
}

// Major returns the major code.
func (k Key) Major() int { return k.major }

// Minor returns the minor code and whether it is present.
func (k Key) Minor() (int, bool) { return k.minor, k.hasMinor }

// IsMajorOnly reports whether the minor code is absent.
func (k Key) IsMajorOnly() bool { return !k.hasMinor }

// Parent returns the major-level key sharing k's major code.
func (k Key) Parent() Key { return MajorKey(k.major) }

// Less orders keys by major code, then major-level before minor-specific,
// then by minor code.
func (k Key) Less(o Key) bool {
	if k.major != o.major {
		return k.major < o.major
	}
	if k.hasMinor != o.hasMinor {
		return !k.hasMinor
	}
	return k.minor < o.minor
}

// String renders "190" for a major-level key and "190/463" otherwise.
func (k Key) String() string {
	if !k.hasMinor {
		return strconv.Itoa(k.major)
	}
	return strconv.Itoa(k.major) + "/" + strconv.Itoa(k.minor)
}
