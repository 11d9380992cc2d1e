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
	"bytes"
	"testing"

	"github.com/consensys/semigroups/test"
	"github.com/consensys/semigroups/word"
)

func TestPresentationSerialization(t *testing.T) {
	assert := test.NewAssert(t)

	c := newLengthMod(Right, 2)
	assert.NoError(c.SetGeneratorCount(3))
	assert.NoError(c.AddGeneratingPair(word.New(0, 0), word.New(1)))
	assert.NoError(c.AddGeneratingPair(word.New(2, 1, 0), word.Word{}))

	p := c.Presentation()
	var buf bytes.Buffer
	written, err := p.WriteTo(&buf)
	assert.NoError(err)
	assert.EqualValues(buf.Len(), written)

	var read Presentation
	n, err := read.ReadFrom(&buf)
	assert.NoError(err)
	assert.Equal(written, n)
	assert.Equal(Right, read.Kind)
	assert.Equal(3, read.NbGenerators)
	assert.Len(read.Pairs, 2)
	assert.True(word.Equal(word.New(2, 1, 0), read.Pairs[1].U))
	assert.Empty(read.Pairs[1].V)

	d := newLengthMod(Right, 2)
	assert.NoError(d.Apply(read))
	assert.Equal(2, d.NbGeneratingPairs())
	assert.Len(d.pairsSeen, 2)

	assert.ErrorKind(newLengthMod(Left, 2).Apply(read), ErrInvalidArgument)
}

func TestPresentationValidate(t *testing.T) {
	assert := test.NewAssert(t)

	assert.NoError((&Presentation{Kind: Left, NbGenerators: 1}).Validate())
	assert.ErrorKind((&Presentation{Kind: 7, NbGenerators: 1}).Validate(), ErrInvalidArgument)
	assert.ErrorKind((&Presentation{NbGenerators: 0}).Validate(), ErrInvalidArgument)
	bad := Presentation{
		NbGenerators: 2,
		Pairs:        []Pair{{U: word.New(0), V: word.New(1, 2)}},
	}
	assert.ErrorKind(bad.Validate(), ErrInvalidArgument)

	var buf bytes.Buffer
	_, err := bad.WriteTo(&buf)
	assert.NoError(err)
	var read Presentation
	_, err = read.ReadFrom(&buf)
	assert.ErrorKind(err, ErrInvalidArgument)
}
