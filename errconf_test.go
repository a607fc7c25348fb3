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

package errconf

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Basics(t *testing.T) {
	e := E(InvalidEntryList, "entry has no code groups",
		WithDetailOption("index", 3),
	)

	assert.Equal(t, InvalidEntryList, e.Kind)
	v, ok := e.Detail("index")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, "errconf: invalid_entry_list: entry has no code groups", e.Error())
}

func TestError_Is_MatchesByKind(t *testing.T) {
	e := E(InvalidEntryList, "custom message").WithDetail("index", 0)
	assert.ErrorIs(t, e, ErrInvalidEntryList)
	assert.NotErrorIs(t, e, ErrInvalidPayload)

	wrapped := fmt.Errorf("builder: %w", e)
	assert.ErrorIs(t, wrapped, ErrInvalidEntryList)

	var target *Error
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, InvalidEntryList, target.Kind)
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := E(InvalidPayload, "x").WithCause(root)
	assert.ErrorIs(t, e, root)
	assert.Equal(t, root, errors.Unwrap(e))
	assert.Contains(t, e.Error(), "root")

	same := e.WithCause(nil)
	assert.Same(t, e, same)

	viaOption := E(InvalidPayload, "x", WithCauseOption(root))
	assert.ErrorIs(t, viaOption, root)
}

func TestError_Immutability_CopyOnWrite(t *testing.T) {
	e1 := E(InvalidPayload, "bad").WithDetail("k1", 1)
	e2 := e1.WithDetail("k2", 2)

	assert.Len(t, e1.Details, 1)
	assert.Len(t, e2.Details, 2)
	_, ok := e1.Detail("k2")
	assert.False(t, ok, "original mutated")
}

func TestError_Nil(t *testing.T) {
	var e *Error
	assert.Equal(t, "<nil>", e.Error())
	_, ok := e.Detail("index")
	assert.False(t, ok)
	assert.False(t, e.Is(ErrInvalidEntryList))
}
