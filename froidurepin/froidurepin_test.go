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

package froidurepin

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/consensys/semigroups/word"
)

func mustTransfs(t *testing.T, images ...[]uint32) []Transf {
	t.Helper()
	r := make([]Transf, len(images))
	for i, im := range images {
		x, err := NewTransf(im...)
		require.NoError(t, err)
		r[i] = x
	}
	return r
}

// fullTransformationMonoid3 generates the 27 transformations of {0, 1, 2}.
func fullTransformationMonoid3(t *testing.T, opts ...Option) *FroidurePin[Transf] {
	fp, err := New(mustTransfs(t,
		[]uint32{1, 2, 0},
		[]uint32{1, 0, 2},
		[]uint32{0, 0, 2},
	), opts...)
	require.NoError(t, err)
	return fp
}

func TestNewTransf(t *testing.T) {
	assert := require.New(t)

	_, err := NewTransf(0, 3, 1)
	assert.Error(err)

	x, err := NewTransf(1, 2, 0)
	assert.NoError(err)
	assert.Equal(Transf{2, 0, 1}, x.Product(x))
	assert.Equal(x, Identity(3).Product(x))
}

func TestSize(t *testing.T) {
	assert := require.New(t)

	fp := fullTransformationMonoid3(t)
	assert.False(fp.Finished())
	assert.Equal(3, fp.NbGenerators())
	assert.Equal(27, fp.Size())
	assert.True(fp.Finished())
	assert.Equal(27, fp.CurrentSize())
}

func TestFactorisationAndCayleyGraphs(t *testing.T) {
	assert := require.New(t)

	fp := fullTransformationMonoid3(t)
	n := fp.Size()
	for p := 0; p < n; p++ {
		w := fp.Factorisation(p)
		assert.Equal(fp.Length(p), len(w))
		x, err := fp.Evaluate(w)
		assert.NoError(err)
		assert.Equal(fp.At(p), x, "factorisation %v of element %d", w, p)

		for g := 0; g < fp.NbGenerators(); g++ {
			l := word.Letter(g)
			assert.Equal(fp.At(p).Product(fp.Generator(g)), fp.At(fp.Right(p, l)))
			assert.Equal(fp.Generator(g).Product(fp.At(p)), fp.At(fp.Left(p, l)))
		}
	}
}

func TestEqualToAndPosition(t *testing.T) {
	assert := require.New(t)

	fp := fullTransformationMonoid3(t)

	// (1 2 0) has order 3
	eq, err := fp.EqualTo(word.New(0, 0, 0, 0), word.New(0))
	assert.NoError(err)
	assert.True(eq)
	assert.False(fp.Finished(), "EqualTo must not enumerate")

	eq, err = fp.EqualTo(word.New(0, 1), word.New(1, 0))
	assert.NoError(err)
	assert.False(eq)

	_, err = fp.EqualTo(word.Word{}, word.New(0))
	assert.Error(err)
	_, err = fp.EqualTo(word.New(3), word.New(0))
	assert.Error(err)

	p, err := fp.Position(word.New(2, 0, 2, 1))
	assert.NoError(err)
	q, err := fp.Position(fp.Factorisation(p))
	assert.NoError(err)
	assert.Equal(p, q)
}

func TestDuplicateGenerators(t *testing.T) {
	assert := require.New(t)

	fp, err := New(mustTransfs(t, []uint32{1, 0}, []uint32{1, 0}))
	assert.NoError(err)
	assert.Equal(2, fp.Size())
	assert.Equal(fp.Right(0, 0), fp.Right(0, 1))
}

func TestImmutable(t *testing.T) {
	assert := require.New(t)

	fp := fullTransformationMonoid3(t)
	fp.SetImmutable(true)
	err := fp.AddGenerator(Identity(3))
	assert.True(errors.Is(err, ErrImmutable))

	fp.SetImmutable(false)
	assert.NoError(fp.AddGenerator(Identity(3)))
	assert.Error(fp.AddGenerator(Identity(2)), "degree mismatch")

	assert.Equal(27, fp.Size())
	assert.Error(fp.AddGenerator(Identity(3)), "enumeration started")
}

func TestResumeEnumeration(t *testing.T) {
	assert := require.New(t)

	fp := fullTransformationMonoid3(t, WithBatchSize(1))
	assert.NoError(fp.RunUntil(func() bool { return fp.CurrentSize() >= 10 }, fp.Run))
	assert.False(fp.Finished())
	assert.GreaterOrEqual(fp.CurrentSize(), 10)
	assert.Less(fp.CurrentSize(), 27)

	assert.Panics(func() { fp.Right(0, 0) })

	assert.Equal(27, fp.Size())
}

func TestNewErrors(t *testing.T) {
	assert := require.New(t)

	_, err := New[Transf](nil)
	assert.Error(err)
	_, err = New(mustTransfs(t, []uint32{0}), WithBatchSize(0))
	assert.Error(err)
}
