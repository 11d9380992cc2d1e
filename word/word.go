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

// Package word defines words over a finite alphabet of generators.
//
// A letter is the index of a generator; a word is a finite sequence of
// letters, read left to right as a product of generators.
package word

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Letter is the index of a generator.
type Letter uint32

// Word is a sequence of letters.
type Word []Letter

// New returns a word made of the given letters.
func New(letters ...Letter) Word {
	return Word(letters)
}

// Equal reports whether u and v are the same sequence of letters.
func Equal(u, v Word) bool {
	return slices.Equal(u, v)
}

// Concat returns the product uv as a new word.
func Concat(u, v Word) Word {
	w := make(Word, 0, len(u)+len(v))
	w = append(w, u...)
	return append(w, v...)
}

// Clone returns a copy of w that does not alias it.
func (w Word) Clone() Word {
	if w == nil {
		return nil
	}
	return slices.Clone(w)
}

// Max returns the largest letter of w, and false if w is empty.
func (w Word) Max() (Letter, bool) {
	if len(w) == 0 {
		return 0, false
	}
	m := w[0]
	for _, l := range w[1:] {
		if l > m {
			m = l
		}
	}
	return m, true
}

// Key returns a string uniquely identifying w, suitable as a map key.
func (w Word) Key() string {
	var sbb strings.Builder
	sbb.Grow(4 * len(w))
	for _, l := range w {
		sbb.WriteByte(byte(l >> 24))
		sbb.WriteByte(byte(l >> 16))
		sbb.WriteByte(byte(l >> 8))
		sbb.WriteByte(byte(l))
	}
	return sbb.String()
}

// String formats w as [a, b, c].
func (w Word) String() string {
	var sbb strings.Builder
	sbb.WriteByte('[')
	for i, l := range w {
		if i > 0 {
			sbb.WriteString(", ")
		}
		sbb.WriteString(strconv.FormatUint(uint64(l), 10))
	}
	sbb.WriteByte(']')
	return sbb.String()
}

// Less orders words by length, then lexicographically.
func Less(u, v Word) bool {
	if len(u) != len(v) {
		return len(u) < len(v)
	}
	for i := range u {
		if u[i] != v[i] {
			return u[i] < v[i]
		}
	}
	return false
}
