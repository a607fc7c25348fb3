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

package entry

import (
	"testing"

	"dirpx.dev/errconf/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGroup_UniqueSubcodes(t *testing.T) {
	tests := []struct {
		name string
		in   CodeGroup
		want []int
	}{
		{"major only", Group(1), nil},
		{"single", Group(1, 2), []int{2}},
		{"duplicates collapse", Group(1, 2, 2), []int{2}},
		{"first seen order", Group(1, 3, 1, 3, 2), []int{3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.UniqueSubcodes())
		})
	}
}

func TestCodeGroup_MajorOnly(t *testing.T) {
	assert.True(t, Group(190).MajorOnly())
	assert.True(t, CodeGroup{Code: 190, Subcodes: []int{}}.MajorOnly())
	assert.False(t, Group(190, 463).MajorOnly())
}

func TestCodeGroup_Equal(t *testing.T) {
	assert.True(t, Group(1, 2, 2).Equal(Group(1, 2)))
	assert.True(t, Group(1, 3, 2).Equal(Group(1, 2, 3)))
	assert.False(t, Group(1, 2).Equal(Group(2, 2)))
	assert.False(t, Group(1).Equal(Group(1, 2)))
}

func TestNew_AllowsNoGroups(t *testing.T) {
	e := New(category.Other)
	assert.Equal(t, category.Other, e.Category)
	assert.Empty(t, e.Groups)
}

func TestNew_CopiesInput(t *testing.T) {
	subs := []int{1, 2}
	g := CodeGroup{Code: 1, Subcodes: subs}
	e := New(category.Transient, g)
	subs[0] = 99
	assert.Equal(t, []int{1, 2}, e.Groups[0].Subcodes)
}

func TestEntry_CloneIsDeep(t *testing.T) {
	e := New(category.Login, Group(190, 463)).WithRecovery("Log in again", "OK", "Cancel")
	cp := e.Clone()
	cp.Groups[0].Subcodes[0] = 1
	cp.RecoveryOptions[0] = "changed"

	assert.Equal(t, []int{463}, e.Groups[0].Subcodes)
	assert.Equal(t, []string{"OK", "Cancel"}, e.RecoveryOptions)
	assert.False(t, e.Equal(cp))
}

func TestEntry_Equal(t *testing.T) {
	a := New(category.Transient, Group(1, 2, 2), Group(4))
	b := New(category.Transient, Group(1, 2), Group(4))
	require.True(t, a.Equal(b))

	assert.False(t, a.Equal(New(category.Other, Group(1, 2), Group(4))))
	assert.False(t, a.Equal(New(category.Transient, Group(4), Group(1, 2))))
	assert.False(t, a.Equal(a.WithRecovery("try later")))
}
