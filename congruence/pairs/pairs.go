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

// Package pairs computes congruences on finite semigroups from their
// generating pairs.
//
// The congruence generated by a set of pairs is the smallest equivalence
// containing them and closed under multiplication by the generators, on the
// right for right congruences, on the left for left congruences, and on both
// sides for two-sided ones. It is found by merging the elements of the
// parent semigroup in a union-find structure until no pending pair remains.
// The run can be stopped and resumed at any pending pair.
package pairs

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"

	"github.com/consensys/semigroups/congruence"
	"github.com/consensys/semigroups/froidurepin"
	"github.com/consensys/semigroups/runner"
	"github.com/consensys/semigroups/word"
)

// Congruence is a congruence generated by pairs.
type Congruence struct {
	*congruence.Congruence
	congruence.Defaults

	letters bitset.BitSet // generators occurring in some generating pair

	initialised bool
	uf          []int
	pending     [][2]int
	lookup      []congruence.ClassIndex // position to class, once finished
	reps        []int                   // class to position, once finished
}

var _ congruence.Backend = &Congruence{}

// New returns a congruence of the given kind with no parent semigroup. It
// cannot be run until a parent is set, but can already tell whether its
// quotient is obviously infinite.
func New(kind congruence.Kind, opts ...runner.Option) *Congruence {
	c := &Congruence{}
	c.Congruence = congruence.New(kind, c, opts...)
	return c
}

// NewWithParent returns a congruence of the given kind on parent.
func NewWithParent(kind congruence.Kind, parent froidurepin.Semigroup, opts ...runner.Option) *Congruence {
	c := New(kind, opts...)
	c.SetParent(parent)
	return c
}

// AddPairImpl records the letters of u and v.
func (c *Congruence) AddPairImpl(u, v word.Word) {
	for _, w := range []word.Word{u, v} {
		for _, l := range w {
			c.letters.Set(uint(l))
		}
	}
}

func (c *Congruence) initialise(parent froidurepin.Semigroup) error {
	n := parent.Size()
	c.uf = make([]int, n)
	for i := range c.uf {
		c.uf[i] = i
	}
	for _, p := range c.GeneratingPairs() {
		x, err := parent.Position(p.U)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "word %v", p.U), congruence.ErrInvalidArgument)
		}
		y, err := parent.Position(p.V)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "word %v", p.V), congruence.ErrInvalidArgument)
		}
		c.pending = append(c.pending, [2]int{x, y})
	}
	c.initialised = true
	return nil
}

// find returns the representative of x, without compressing paths.
func (c *Congruence) find(x int) int {
	for c.uf[x] != x {
		x = c.uf[x]
	}
	return x
}

func (c *Congruence) union(x, y int) bool {
	x, y = c.find(x), c.find(y)
	if x == y {
		return false
	}
	if y < x {
		x, y = y, x
	}
	c.uf[y] = x
	return true
}

// RunImpl merges pending pairs until none remains or the runner stops.
func (c *Congruence) RunImpl() error {
	parent, ok := c.Parent()
	if !ok {
		return errors.Mark(errors.New("cannot run a congruence by pairs without a parent semigroup"), congruence.ErrInvalidState)
	}
	if !parent.Finished() {
		if err := parent.Run(); err != nil {
			return errors.Wrap(err, "parent semigroup")
		}
		if !parent.Finished() {
			return errors.Mark(errors.New("the enumeration of the parent semigroup did not finish"), congruence.ErrInvalidState)
		}
	}
	if !c.initialised {
		if err := c.initialise(parent); err != nil {
			return err
		}
	}

	log := c.Logger().With().Str("component", "pairs").Logger()
	nbGens := parent.NbGenerators()
	kind := c.Kind()
	merged := 0
	for len(c.pending) > 0 {
		if c.Stopped() {
			log.Debug().Int("pending", len(c.pending)).Int("merged", merged).Msg("stopped")
			return nil
		}
		last := len(c.pending) - 1
		p := c.pending[last]
		c.pending = c.pending[:last]
		if !c.union(p[0], p[1]) {
			continue
		}
		merged++
		for g := 0; g < nbGens; g++ {
			l := word.Letter(g)
			if kind != congruence.Left {
				c.pending = append(c.pending, [2]int{parent.Right(p[0], l), parent.Right(p[1], l)})
			}
			if kind != congruence.Right {
				c.pending = append(c.pending, [2]int{parent.Left(p[0], l), parent.Left(p[1], l)})
			}
		}
		if c.Report() {
			log.Info().Int("pending", len(c.pending)).Int("merged", merged).Msg("merging pairs")
		}
	}

	c.lookup = make([]congruence.ClassIndex, len(c.uf))
	c.reps = c.reps[:0]
	index := make(map[int]congruence.ClassIndex)
	for pos := range c.uf {
		root := c.find(pos)
		i, ok := index[root]
		if !ok {
			i = congruence.ClassIndex(len(c.reps))
			index[root] = i
			c.reps = append(c.reps, pos)
		}
		c.lookup[pos] = i
	}
	c.SetFinished(true)
	log.Debug().Int("classes", len(c.reps)).Msg("finished")
	return nil
}

// ConstWordToClassIndex returns the class of w once finished. Before that,
// it returns the current representative of w in the union-find, which is
// enough to tell two words are identified.
func (c *Congruence) ConstWordToClassIndex(w word.Word) (congruence.ClassIndex, error) {
	parent, ok := c.Parent()
	if !ok || !c.initialised {
		return congruence.Undefined, nil
	}
	pos, err := parent.CurrentPosition(w)
	if err != nil {
		return congruence.Undefined, err
	}
	if pos < 0 || pos >= len(c.uf) {
		return congruence.Undefined, nil
	}
	if c.Finished() {
		return c.lookup[pos], nil
	}
	return congruence.ClassIndex(c.find(pos)), nil
}

// WordToClassIndexImpl runs the congruence and returns the class of w.
func (c *Congruence) WordToClassIndexImpl(w word.Word) (congruence.ClassIndex, error) {
	if err := c.Run(); err != nil {
		return congruence.Undefined, err
	}
	if !c.Finished() {
		return congruence.Undefined, nil
	}
	parent, _ := c.Parent()
	pos, err := parent.Position(w)
	if err != nil {
		return congruence.Undefined, errors.Mark(err, congruence.ErrInvalidArgument)
	}
	return c.lookup[pos], nil
}

// ClassIndexToWordImpl returns the shortest word in the class i.
func (c *Congruence) ClassIndexToWordImpl(i congruence.ClassIndex) (word.Word, error) {
	if err := c.Run(); err != nil {
		return nil, err
	}
	if !c.Finished() {
		return nil, errors.Wrapf(congruence.ErrUndefinedClass, "class %d", i)
	}
	parent, _ := c.Parent()
	return parent.Factorisation(c.reps[i]), nil
}

// ClassCountImpl runs the congruence and returns its number of classes.
func (c *Congruence) ClassCountImpl() (congruence.Count, error) {
	if err := c.Run(); err != nil {
		return congruence.UndefinedCount(), err
	}
	if !c.Finished() {
		return congruence.UndefinedCount(), nil
	}
	return congruence.Finite(uint64(len(c.reps))), nil
}

// QuotientImpl returns the quotient semigroup as transformations of the
// classes, plus one point standing for an adjoined identity: generator g
// maps the class of x to the class of xg, and the extra point to the class
// of g. The image of the extra point identifies each element.
func (c *Congruence) QuotientImpl() (froidurepin.Semigroup, error) {
	if err := c.Run(); err != nil {
		return nil, err
	}
	if !c.Finished() {
		return nil, errors.Mark(errors.New("the congruence did not finish"), congruence.ErrInvalidState)
	}
	parent, _ := c.Parent()
	n := len(c.reps)
	gens := make([]froidurepin.Transf, parent.NbGenerators())
	for g := range gens {
		l := word.Letter(g)
		t := make(froidurepin.Transf, n+1)
		for i, rep := range c.reps {
			t[i] = uint32(c.lookup[parent.Right(rep, l)])
		}
		pos, err := parent.Position(word.New(l))
		if err != nil {
			return nil, err
		}
		t[n] = uint32(c.lookup[pos])
		gens[g] = t
	}
	q, err := froidurepin.New(gens)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// IsQuotientObviouslyInfiniteImpl returns true for a congruence with no
// parent when some generator occurs in no generating pair: the number of
// occurrences of that generator is invariant, so its powers are pairwise
// distinct in the quotient.
func (c *Congruence) IsQuotientObviouslyInfiniteImpl() bool {
	if c.HasParent() {
		return false
	}
	n, ok := c.GeneratorCount()
	return ok && c.letters.Count() < uint(n)
}

// IsQuotientObviouslyFiniteImpl returns true when a parent is set, since
// parents are finite.
func (c *Congruence) IsQuotientObviouslyFiniteImpl() bool {
	return c.HasParent()
}

// Classes returns every class of the congruence, each sorted in short-lex
// order, the classes ordered by index.
func (c *Congruence) Classes() ([][]word.Word, error) {
	count, err := c.ClassCount()
	if err != nil {
		return nil, err
	}
	n, ok := count.Value()
	if !ok {
		return nil, errors.Mark(errors.Newf("the number of classes is %s", count), congruence.ErrInvalidState)
	}
	parent, _ := c.Parent()
	classes := make([][]word.Word, n)
	for pos, i := range c.lookup {
		classes[i] = append(classes[i], parent.Factorisation(pos))
	}
	for _, class := range classes {
		slices.SortFunc(class, word.Less)
	}
	return classes, nil
}
