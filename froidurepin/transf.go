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
	"strings"

	"github.com/cockroachdb/errors"
)

// Transf is a full transformation of {0, ..., n-1}, stored as its list of
// images. Transformations compose left to right: (x.Product(y))[i] = y[x[i]].
type Transf []uint32

// NewTransf returns the transformation with the given images.
func NewTransf(images ...uint32) (Transf, error) {
	n := uint32(len(images))
	for i, im := range images {
		if im >= n {
			return nil, errors.Newf("image %d of point %d out of range, expected a value in [0, %d)", im, i, n)
		}
	}
	return Transf(images), nil
}

// Identity returns the identity transformation of degree n.
func Identity(n int) Transf {
	t := make(Transf, n)
	for i := range t {
		t[i] = uint32(i)
	}
	return t
}

// Degree returns the number of points t acts on.
func (t Transf) Degree() int {
	return len(t)
}

// Product returns the composite of t followed by u.
func (t Transf) Product(u Transf) Transf {
	if len(t) != len(u) {
		panic("transformations of different degrees")
	}
	r := make(Transf, len(t))
	for i, im := range t {
		r[i] = u[im]
	}
	return r
}

// Key identifies t among transformations of the same degree.
func (t Transf) Key() string {
	var sbb strings.Builder
	sbb.Grow(4 * len(t))
	for _, im := range t {
		sbb.WriteByte(byte(im >> 24))
		sbb.WriteByte(byte(im >> 16))
		sbb.WriteByte(byte(im >> 8))
		sbb.WriteByte(byte(im))
	}
	return sbb.String()
}
