// Copyright 2020 ConsenSys AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package word

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordString(t *testing.T) {
	assert := require.New(t)

	assert.Equal("[]", Word{}.String())
	assert.Equal("[0, 1, 12]", New(0, 1, 12).String())
}

func TestWordKey(t *testing.T) {
	assert := require.New(t)

	assert.Equal(New(1, 2).Key(), New(1, 2).Key())
	assert.NotEqual(New(1, 2).Key(), New(2, 1).Key())
	assert.NotEqual(New(0).Key(), Word{}.Key())
	// letters spanning several bytes must not collide
	assert.NotEqual(New(256).Key(), New(1, 0).Key())
}

func TestConcat(t *testing.T) {
	assert := require.New(t)

	u := make(Word, 2, 8)
	u[0], u[1] = 1, 2
	w := Concat(u, New(3))
	assert.True(Equal(w, New(1, 2, 3)))

	// the result must not share storage with u
	w[0] = 9
	assert.Equal(Letter(1), u[0])
}

func TestMaxAndLess(t *testing.T) {
	assert := require.New(t)

	_, ok := Word{}.Max()
	assert.False(ok)
	m, ok := New(3, 7, 2).Max()
	assert.True(ok)
	assert.Equal(Letter(7), m)

	assert.True(Less(New(5), New(0, 0)))
	assert.True(Less(New(0, 1), New(1, 0)))
	assert.False(Less(New(1, 0), New(1, 0)))
}
