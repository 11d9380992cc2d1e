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

// Package congruence represents congruences on finitely generated
// semigroups and monoids.
//
// A Congruence holds the configuration shared by every algorithm: the number
// of generators, the generating pairs and an optional finite parent
// semigroup. It validates inputs, tracks the lifecycle of the computation
// through an embedded runner.Runner, caches derived results (quotient,
// non-trivial classes, finiteness) and delegates the actual computation to a
// Backend.
//
// Configuration is only possible before the computation has started; every
// change invalidates the cached results. Queries run the computation on
// demand.
//
// A Congruence is not safe for concurrent use, except for Kill.
package congruence

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/consensys/semigroups/debug"
	"github.com/consensys/semigroups/froidurepin"
	"github.com/consensys/semigroups/profile"
	"github.com/consensys/semigroups/runner"
	"github.com/consensys/semigroups/word"
)

// Pair is a generating pair: two words the congruence identifies.
type Pair struct {
	U word.Word `cbor:"u"`
	V word.Word `cbor:"v"`
}

// Congruence is the state shared by every congruence algorithm.
type Congruence struct {
	runner.Runner

	backend Backend
	kind    Kind

	nbGens int // 0 until defined
	pairs  []Pair
	parent froidurepin.Semigroup

	// cleared by reset
	quotient          froidurepin.Semigroup
	ntc               [][]word.Word
	ntcDone           bool
	obviouslyFinite   bool
	obviouslyInfinite bool
}

// New returns a congruence of the given kind computed by b, with no
// generators, no generating pairs and no parent.
func New(kind Kind, b Backend, opts ...runner.Option) *Congruence {
	c := &Congruence{
		backend: b,
		kind:    kind,
	}
	c.Configure(opts...)
	c.reset()
	return c
}

func (c *Congruence) log() zerolog.Logger {
	return c.Logger().With().Str("component", "congruence").Str("kind", c.kind.String()).Logger()
}

// reset invalidates every derived result. Called after each change of the
// configuration.
func (c *Congruence) reset() {
	c.SetFinished(false)
	c.ntc = nil
	c.ntcDone = false
	c.quotient = nil
	c.obviouslyFinite = false
	c.obviouslyInfinite = false
}

// Kind returns the kind of the congruence.
func (c *Congruence) Kind() Kind {
	return c.kind
}

// GeneratorCount returns the number of generators and whether it is defined.
func (c *Congruence) GeneratorCount() (int, bool) {
	return c.nbGens, c.nbGens != 0
}

// SetGeneratorCount fixes the number of generators. It may be called again
// with the same value, which does nothing.
func (c *Congruence) SetGeneratorCount(n int) error {
	if n <= 0 {
		return invalidArgument("the number of generators must be positive, found %d", n)
	}
	if c.nbGens != 0 {
		if c.nbGens != n {
			return invalidState("cannot change the number of generators from %d to %d", c.nbGens, n)
		}
		return nil
	}
	if c.Started() {
		return invalidState("cannot set the number of generators at this stage")
	}
	c.nbGens = n
	c.backend.SetGeneratorCountImpl(n)
	c.reset()
	return nil
}

// GeneratingPairs returns the generating pairs added so far. It may contain
// distinct pairs identified by the parent semigroup.
func (c *Congruence) GeneratingPairs() []Pair {
	r := make([]Pair, len(c.pairs))
	for i, p := range c.pairs {
		r[i] = Pair{U: p.U.Clone(), V: p.V.Clone()}
	}
	return r
}

// NbGeneratingPairs returns the number of generating pairs.
func (c *Congruence) NbGeneratingPairs() int {
	return len(c.pairs)
}

// AddGeneratingPair requires the congruence to identify u and v. Pairs
// that are already identified, because u and v are equal or because the
// parent semigroup says so, are ignored.
func (c *Congruence) AddGeneratingPair(u, v word.Word) error {
	if c.Started() {
		return invalidState("cannot add further generating pairs at this stage")
	}
	if err := c.ValidateWord(u); err != nil {
		return err
	}
	if err := c.ValidateWord(v); err != nil {
		return err
	}
	if word.Equal(u, v) {
		return nil
	}
	if c.parent != nil {
		eq, err := c.parent.EqualTo(u, v)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "parent semigroup"), ErrInvalidArgument)
		}
		if eq {
			return nil
		}
	}
	u, v = u.Clone(), v.Clone()
	c.pairs = append(c.pairs, Pair{U: u, V: v})
	c.backend.AddPairImpl(u, v)
	profile.RecordPair()
	c.reset()
	return nil
}

// SetParent defines the congruence on the finite semigroup p. If the number
// of generators is not yet defined it is taken from p.
//
// It panics if a parent is already set, if the computation has started, or
// if p does not have the same number of generators as the congruence.
func (c *Congruence) SetParent(p froidurepin.Semigroup) {
	if c.parent != nil {
		panic("the parent semigroup is already set")
	}
	if c.Started() || c.Finished() {
		panic("cannot set the parent semigroup at this stage")
	}
	if c.nbGens != 0 && p.NbGenerators() != c.nbGens {
		panic("the parent semigroup has the wrong number of generators")
	}
	if c.nbGens == 0 {
		if err := c.SetGeneratorCount(p.NbGenerators()); err != nil {
			panic(err)
		}
	}
	c.parent = p
	c.reset()
}

// Parent returns the parent semigroup, if any.
func (c *Congruence) Parent() (froidurepin.Semigroup, bool) {
	return c.parent, c.parent != nil
}

// HasParent reports whether a parent semigroup is set.
func (c *Congruence) HasParent() bool {
	return c.parent != nil
}

// HasQuotient reports whether the quotient semigroup was computed since the
// last change of configuration.
func (c *Congruence) HasQuotient() bool {
	return c.quotient != nil
}

// Run runs the computation until it finishes or is stopped. A congruence
// that finished is not run again; a previous stoppage is cleared.
func (c *Congruence) Run() error {
	if c.nbGens == 0 {
		return invalidState("no generators have been defined")
	}
	if c.Finished() {
		return nil
	}
	return c.Runner.Run(c.backend.RunImpl)
}

// RunFor runs the computation for at most d.
func (c *Congruence) RunFor(d time.Duration) error {
	if c.nbGens == 0 {
		return invalidState("no generators have been defined")
	}
	return c.Runner.RunFor(d, c.backend.RunImpl)
}

// RunUntil runs the computation until it finishes or pred holds.
func (c *Congruence) RunUntil(pred func() bool) error {
	if c.nbGens == 0 {
		return invalidState("no generators have been defined")
	}
	return c.Runner.RunUntil(pred, c.backend.RunImpl)
}

// RunContext runs the computation until it finishes or ctx is done.
func (c *Congruence) RunContext(ctx context.Context) error {
	if c.nbGens == 0 {
		return invalidState("no generators have been defined")
	}
	return c.Runner.RunContext(ctx, c.backend.RunImpl)
}

// ValidateLetter reports whether l is a generator.
func (c *Congruence) ValidateLetter(l word.Letter) (bool, error) {
	if c.nbGens == 0 {
		return false, invalidState("no generators have been defined")
	}
	return int(l) < c.nbGens, nil
}

// ValidateWord returns an error if a letter of w is not a generator, or if
// the generators are not defined.
func (c *Congruence) ValidateWord(w word.Word) error {
	if c.nbGens == 0 {
		return invalidState("no generators have been defined")
	}
	for i, l := range w {
		ok, err := c.ValidateLetter(l)
		if err != nil {
			return err
		}
		if !ok {
			err := invalidArgument("letter index out of bounds in word %v, expected a value in [0, %d), got %d at position %d", w, c.nbGens, l, i)
			return errors.WithHintf(err, "the congruence has %d generators", c.nbGens)
		}
	}
	return nil
}

// ConstContains reports whether u and v are known to be in the same class,
// without running the computation. False is only returned once the
// computation finished; otherwise the answer is Unknown.
func (c *Congruence) ConstContains(u, v word.Word) (Tril, error) {
	if err := c.ValidateWord(u); err != nil {
		return Unknown, err
	}
	if err := c.ValidateWord(v); err != nil {
		return Unknown, err
	}
	if word.Equal(u, v) {
		return True, nil
	}
	uu, err := c.backend.ConstWordToClassIndex(u)
	var vv ClassIndex
	if err == nil {
		vv, err = c.backend.ConstWordToClassIndex(v)
	}
	if err != nil {
		log := c.log()
		log.Debug().Err(err).Msg("ignoring error")
		return Unknown, nil
	}
	switch {
	case uu == Undefined || vv == Undefined:
		return Unknown, nil
	case uu == vv:
		return True, nil
	case c.Finished():
		return False, nil
	}
	return Unknown, nil
}

// Contains reports whether u and v are in the same class, running the
// computation as far as needed.
func (c *Congruence) Contains(u, v word.Word) (bool, error) {
	t, err := c.ConstContains(u, v)
	if err != nil {
		return false, err
	}
	if t != Unknown {
		return t == True, nil
	}
	uu, err := c.WordToClassIndex(u)
	if err != nil {
		return false, err
	}
	vv, err := c.WordToClassIndex(v)
	if err != nil {
		return false, err
	}
	return uu == vv, nil
}

// WordToClassIndex returns the index of the class containing w, running
// the computation as far as needed.
func (c *Congruence) WordToClassIndex(w word.Word) (ClassIndex, error) {
	if err := c.ValidateWord(w); err != nil {
		return Undefined, err
	}
	i, err := c.backend.WordToClassIndexImpl(w)
	if err != nil {
		return Undefined, err
	}
	if i == Undefined {
		err := errors.Wrapf(ErrUndefinedClass, "word %v", w)
		return Undefined, errors.Mark(err, ErrInvalidState)
	}
	return i, nil
}

// ClassIndexToWord returns a word in the class i.
func (c *Congruence) ClassIndexToWord(i ClassIndex) (word.Word, error) {
	if c.nbGens == 0 {
		return nil, invalidState("no generators have been defined")
	}
	n, err := c.ClassCount()
	if err != nil {
		return nil, err
	}
	if v, ok := n.Value(); ok && uint64(i) >= v {
		return nil, invalidArgument("invalid class index, expected a value in the range [0, %d), found %d", v, i)
	}
	return c.backend.ClassIndexToWordImpl(i)
}

// ClassCount returns the number of classes. It is undefined while the
// generators are not, and infinite without running the computation when
// the quotient is obviously infinite.
func (c *Congruence) ClassCount() (Count, error) {
	if c.nbGens == 0 {
		return UndefinedCount(), nil
	}
	if !c.Finished() && c.IsQuotientObviouslyInfinite() {
		return Infinite(), nil
	}
	return c.backend.ClassCountImpl()
}

// Quotient returns the quotient of the parent semigroup, or of the free
// semigroup, by the congruence. Only two-sided congruences with a finite
// quotient have one. The result is immutable and shared by every caller.
//
// If the backend fails, the congruence keeps no quotient; the finiteness
// flags may have been updated.
func (c *Congruence) Quotient() (froidurepin.Semigroup, error) {
	if c.quotient != nil {
		if debug.Debug && c.kind != TwoSided {
			panic("quotient cached for a one-sided congruence")
		}
		return c.quotient, nil
	}
	if c.kind != TwoSided {
		return nil, invalidState("the congruence must be two-sided, found %s", c.kind)
	}
	if c.IsQuotientObviouslyInfinite() {
		return nil, invalidState("cannot find the quotient semigroup, it is infinite")
	}
	q, err := c.backend.QuotientImpl()
	if err != nil {
		return nil, err
	}
	q.SetImmutable(true)
	c.quotient = q
	return q, nil
}

// IsQuotientObviouslyInfinite returns true if the quotient is certainly
// infinite. False means finite or not decided.
func (c *Congruence) IsQuotientObviouslyInfinite() bool {
	log := c.log()
	switch {
	case c.nbGens == 0:
		log.Trace().Msg("not obviously infinite (no generators yet defined)")
		return false
	case c.quotient != nil && c.quotient.Finished():
		log.Trace().Msg("not obviously infinite (finite)")
		return false
	case c.parent != nil && c.parent.Finished():
		log.Trace().Msg("not obviously infinite (parent finite)")
		return false
	case c.obviouslyInfinite:
		return true
	case c.backend.IsQuotientObviouslyInfiniteImpl():
		c.obviouslyInfinite = true
		return true
	}
	log.Trace().Msg("the quotient is not obviously infinite")
	return false
}

// IsQuotientObviouslyFinite returns true if the quotient is certainly
// finite. False means infinite or not decided.
func (c *Congruence) IsQuotientObviouslyFinite() bool {
	switch {
	case c.quotient != nil && c.quotient.Finished(),
		c.parent != nil && c.parent.Finished(),
		c.obviouslyFinite:
		return true
	case c.backend.IsQuotientObviouslyFiniteImpl():
		c.obviouslyFinite = true
		return true
	}
	return false
}

// NonTrivialClasses returns the classes of the congruence with more than
// one element of the parent semigroup, each given by the factorisations of
// its elements. The result is cached and must not be modified.
func (c *Congruence) NonTrivialClasses() ([][]word.Word, error) {
	if !c.ntcDone {
		ntc, err := c.nonTrivialClasses()
		if err != nil {
			return nil, err
		}
		c.ntc = ntc
		c.ntcDone = true
	}
	return c.ntc, nil
}

// NbNonTrivialClasses returns the number of non-trivial classes.
func (c *Congruence) NbNonTrivialClasses() (int, error) {
	ntc, err := c.NonTrivialClasses()
	if err != nil {
		return 0, err
	}
	return len(ntc), nil
}

func (c *Congruence) nonTrivialClasses() ([][]word.Word, error) {
	if c.parent == nil {
		return nil, invalidState("there's no parent semigroup in which to find the non-trivial classes")
	}
	count, err := c.ClassCount()
	if err != nil {
		return nil, err
	}
	n, ok := count.Value()
	if !ok {
		return nil, invalidState("the number of classes is %s", count)
	}
	classes := make([][]word.Word, n)
	size := c.parent.Size()
	for pos := 0; pos < size; pos++ {
		w := c.parent.Factorisation(pos)
		i, err := c.WordToClassIndex(w)
		if err != nil {
			return nil, err
		}
		if uint64(i) >= n {
			return nil, errors.AssertionFailedf("class index %d out of range [0, %d)", i, n)
		}
		classes[i] = append(classes[i], w)
	}
	ntc := classes[:0]
	for _, class := range classes {
		if len(class) > 1 {
			ntc = append(ntc, class)
		}
	}
	return ntc, nil
}
