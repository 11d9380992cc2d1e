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

package congruence

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/consensys/semigroups/test"
	"github.com/consensys/semigroups/word"
)

func toWord(letters []uint32) word.Word {
	w := make(word.Word, len(letters))
	for i, l := range letters {
		w[i] = word.Letter(l)
	}
	return w
}

func genLetters() gopter.Gen {
	return gen.SliceOf(gen.UInt32Range(0, 15))
}

func TestProperties(t *testing.T) {
	assert := test.NewAssert(t)
	properties := test.Properties()

	properties.Property("setting the same generator count twice is a no-op", prop.ForAll(
		func(n, m int) bool {
			c := newLengthMod(TwoSided, 2)
			if c.SetGeneratorCount(n) != nil || c.SetGeneratorCount(n) != nil {
				return false
			}
			if len(c.gensSet) != 1 {
				return false
			}
			err := c.SetGeneratorCount(m)
			if m == n {
				return err == nil
			}
			return errors.Is(err, ErrInvalidState)
		},
		gen.IntRange(1, 32),
		gen.IntRange(1, 32),
	))

	properties.Property("a zero generator count is an invalid argument", prop.ForAll(
		func(n int) bool {
			c := newLengthMod(TwoSided, 2)
			if n > 0 {
				_ = c.SetGeneratorCount(n)
			}
			return errors.Is(c.SetGeneratorCount(0), ErrInvalidArgument)
		},
		gen.IntRange(0, 32),
	))

	properties.Property("trivial pairs are never added", prop.ForAll(
		func(letters []uint32) bool {
			c := newLengthMod(TwoSided, 2)
			_ = c.SetGeneratorCount(16)
			u := toWord(letters)
			if err := c.AddGeneratingPair(u, u.Clone()); err != nil {
				return false
			}
			return c.NbGeneratingPairs() == 0 && len(c.pairsSeen) == 0
		},
		genLetters(),
	))

	properties.Property("a word is valid iff its letters are generators", prop.ForAll(
		func(n int, letters []uint32) bool {
			c := newLengthMod(TwoSided, 2)
			_ = c.SetGeneratorCount(n)
			w := toWord(letters)
			err := c.ValidateWord(w)
			if m, ok := w.Max(); ok && int(m) >= n {
				return errors.Is(err, ErrInvalidArgument)
			}
			return err == nil
		},
		gen.IntRange(1, 16),
		genLetters(),
	))

	properties.Property("a word is always in the class of itself", prop.ForAll(
		func(letters []uint32) bool {
			c := newLengthMod(TwoSided, 5)
			_ = c.SetGeneratorCount(16)
			w := toWord(letters)
			r, err := c.ConstContains(w, w.Clone())
			return err == nil && r == True
		},
		genLetters(),
	))

	properties.Property("one-sided congruences have no quotient", prop.ForAll(
		func(right bool, letters []uint32, run bool) bool {
			kind := Left
			if right {
				kind = Right
			}
			c := newLengthMod(kind, 3)
			_ = c.SetGeneratorCount(16)
			_ = c.AddGeneratingPair(toWord(letters), word.New(0))
			if run {
				_ = c.Run()
			}
			_, err := c.Quotient()
			return errors.Is(err, ErrInvalidState) && c.quotients == 0
		},
		gen.Bool(),
		genLetters(),
		gen.Bool(),
	))

	properties.Property("unknown kinds have no name", prop.ForAll(
		func(k uint8) bool {
			_, err := KindName(Kind(k))
			return errors.Is(err, ErrInvalidArgument)
		},
		gen.UInt8Range(3, 255),
	))

	assert.CheckProperties(properties)
}
