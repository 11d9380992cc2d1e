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
	"math"
	"strconv"
)

// ClassIndex identifies a class of a congruence. Indices are stable only
// once the congruence has finished.
type ClassIndex uint32

// Undefined is the index backends return when they cannot determine a
// class. Public queries never return it.
const Undefined ClassIndex = math.MaxUint32

type countKind uint8

const (
	countUndefined countKind = iota
	countFinite
	countInfinite
)

// Count is a number of classes: undefined, finite or positive infinity.
// The zero value is undefined.
type Count struct {
	kind countKind
	n    uint64
}

// UndefinedCount is the count of a congruence that cannot be sized yet.
func UndefinedCount() Count {
	return Count{}
}

// Finite returns the count n.
func Finite(n uint64) Count {
	return Count{kind: countFinite, n: n}
}

// Infinite returns the count of an infinite quotient.
func Infinite() Count {
	return Count{kind: countInfinite}
}

// IsUndefined reports whether the count is not known.
func (c Count) IsUndefined() bool {
	return c.kind == countUndefined
}

// IsInfinite reports whether the count is positive infinity.
func (c Count) IsInfinite() bool {
	return c.kind == countInfinite
}

// Value returns the count and true if it is finite.
func (c Count) Value() (uint64, bool) {
	return c.n, c.kind == countFinite
}

func (c Count) String() string {
	switch c.kind {
	case countFinite:
		return strconv.FormatUint(c.n, 10)
	case countInfinite:
		return "+∞"
	}
	return "undefined"
}
