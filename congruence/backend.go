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
	"github.com/consensys/semigroups/froidurepin"
	"github.com/consensys/semigroups/word"
)

// Backend is implemented by the algorithms computing a congruence.
//
// The hooks are called by Congruence with validated inputs only: words
// whose letters are valid generators, class indices within bounds. A
// backend typically embeds *Congruence, to query its configuration and
// lifecycle, and Defaults, for the hooks it does not need.
type Backend interface {
	// SetGeneratorCountImpl is called once the number of generators is fixed.
	SetGeneratorCountImpl(n int)
	// AddPairImpl is called for every generating pair that is not trivially
	// satisfied.
	AddPairImpl(u, v word.Word)

	// ConstWordToClassIndex returns the class of w if it is known without
	// further computation, and Undefined otherwise. It must not run the
	// computation nor change the state of the backend.
	ConstWordToClassIndex(w word.Word) (ClassIndex, error)
	// WordToClassIndexImpl returns the class of w, running the computation
	// as far as needed. Undefined means no answer could be produced.
	WordToClassIndexImpl(w word.Word) (ClassIndex, error)
	// ClassIndexToWordImpl returns a word in the class i.
	ClassIndexToWordImpl(i ClassIndex) (word.Word, error)
	// ClassCountImpl returns the number of classes, running the computation
	// as far as needed.
	ClassCountImpl() (Count, error)
	// QuotientImpl returns the quotient semigroup. It is called for
	// two-sided congruences only.
	QuotientImpl() (froidurepin.Semigroup, error)

	// RunImpl runs the computation until it finishes, in which case it must
	// call SetFinished(true), or until the runner is stopped.
	RunImpl() error

	// IsQuotientObviouslyInfiniteImpl returns true only if the quotient is
	// certainly infinite.
	IsQuotientObviouslyInfiniteImpl() bool
	// IsQuotientObviouslyFiniteImpl returns true only if the quotient is
	// certainly finite.
	IsQuotientObviouslyFiniteImpl() bool
}

// Defaults provides the default bodies of the optional Backend hooks.
type Defaults struct{}

// SetGeneratorCountImpl does nothing.
func (Defaults) SetGeneratorCountImpl(int) {}

// AddPairImpl does nothing.
func (Defaults) AddPairImpl(word.Word, word.Word) {}

// ConstWordToClassIndex always returns Undefined.
func (Defaults) ConstWordToClassIndex(word.Word) (ClassIndex, error) {
	return Undefined, nil
}

// IsQuotientObviouslyInfiniteImpl always returns false.
func (Defaults) IsQuotientObviouslyInfiniteImpl() bool {
	return false
}

// IsQuotientObviouslyFiniteImpl always returns false.
func (Defaults) IsQuotientObviouslyFiniteImpl() bool {
	return false
}
