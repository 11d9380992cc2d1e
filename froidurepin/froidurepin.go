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

// Package froidurepin enumerates finite semigroups given by generators.
//
// A FroidurePin stores every element of the semigroup together with a
// shortest factorisation over the generators and the left and right Cayley
// graphs. Enumeration is incremental: it embeds a runner.Runner and may be
// stopped and resumed.
package froidurepin

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"

	"github.com/consensys/semigroups/runner"
	"github.com/consensys/semigroups/word"
)

// ErrImmutable is returned when modifying a semigroup marked immutable.
var ErrImmutable = errors.New("the semigroup is immutable")

// Semigroup is a finite semigroup whose elements are indexed by position,
// as seen from a congruence defined on it or computed from it.
type Semigroup interface {
	// NbGenerators returns the number of generators.
	NbGenerators() int
	// Size enumerates the semigroup fully and returns its number of elements.
	Size() int
	// CurrentSize returns the number of elements found so far.
	CurrentSize() int
	// Finished reports whether the semigroup is fully enumerated.
	Finished() bool
	// Run enumerates the semigroup.
	Run() error
	// EqualTo reports whether u and v represent the same element.
	EqualTo(u, v word.Word) (bool, error)
	// Factorisation returns a shortest word representing the element at pos.
	Factorisation(pos int) word.Word
	// Position returns the position of the element represented by w,
	// enumerating as far as needed.
	Position(w word.Word) (int, error)
	// CurrentPosition is like Position but never enumerates; it returns -1
	// if the element was not found yet.
	CurrentPosition(w word.Word) (int, error)
	// Right returns the position of the element at pos times generator g.
	// It panics if the semigroup is not fully enumerated.
	Right(pos int, g word.Letter) int
	// Left returns the position of generator g times the element at pos.
	// It panics if the semigroup is not fully enumerated.
	Left(pos int, g word.Letter) int
	// Immutable reports whether the semigroup may still be modified.
	Immutable() bool
	// SetImmutable freezes, or unfreezes, the semigroup.
	SetImmutable(bool)
}

// Element is implemented by the elements a FroidurePin can enumerate.
type Element[E any] interface {
	Product(E) E
	Key() string
}

// DefaultBatchSize is the number of elements multiplied by the generators
// between two checks of the runner stopping conditions.
const DefaultBatchSize = 1024

// FroidurePin is the semigroup generated by a list of elements.
type FroidurePin[E Element[E]] struct {
	runner.Runner

	gens   []E
	genPos []int
	batch  int
	frozen bool

	elems  []E
	index  map[string]int
	prefix []int
	final  []word.Letter
	length []int
	right  [][]int
	left   [][]int
	pos    int // next element to multiply by the generators
}

var _ Semigroup = &FroidurePin[Transf]{}

// Option configures a FroidurePin.
type Option func(*config)

type config struct {
	batch      int
	runnerOpts []runner.Option
}

// WithBatchSize sets how many elements are processed between two checks of
// the stopping conditions.
func WithBatchSize(n int) Option {
	return func(c *config) {
		c.batch = n
	}
}

// WithRunnerOptions configures the embedded runner.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(c *config) {
		c.runnerOpts = append(c.runnerOpts, opts...)
	}
}

type degreed interface {
	Degree() int
}

// New returns the semigroup generated by gens, not yet enumerated.
func New[E Element[E]](gens []E, opts ...Option) (*FroidurePin[E], error) {
	if len(gens) == 0 {
		return nil, errors.New("a semigroup needs at least one generator")
	}
	cfg := config{batch: DefaultBatchSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.batch <= 0 {
		return nil, errors.Newf("invalid batch size %d", cfg.batch)
	}
	fp := &FroidurePin[E]{
		batch: cfg.batch,
		index: make(map[string]int),
	}
	fp.Configure(cfg.runnerOpts...)
	for _, g := range gens {
		if err := fp.AddGenerator(g); err != nil {
			return nil, err
		}
	}
	return fp, nil
}

// AddGenerator appends a generator. It fails once the semigroup is
// immutable or its enumeration has started.
func (fp *FroidurePin[E]) AddGenerator(g E) error {
	if fp.frozen {
		return ErrImmutable
	}
	if fp.Started() {
		return errors.New("cannot add generators once the enumeration has started")
	}
	if len(fp.gens) > 0 {
		if d, ok := any(fp.gens[0]).(degreed); ok && d.Degree() != any(g).(degreed).Degree() {
			return errors.Newf("generator of degree %d, expected degree %d", any(g).(degreed).Degree(), d.Degree())
		}
	}
	letter := word.Letter(len(fp.gens))
	fp.gens = append(fp.gens, g)
	if p, ok := fp.index[g.Key()]; ok {
		fp.genPos = append(fp.genPos, p)
		return nil
	}
	fp.genPos = append(fp.genPos, fp.push(g, -1, letter))
	return nil
}

func (fp *FroidurePin[E]) push(e E, prefix int, final word.Letter) int {
	p := len(fp.elems)
	fp.elems = append(fp.elems, e)
	fp.index[e.Key()] = p
	fp.prefix = append(fp.prefix, prefix)
	fp.final = append(fp.final, final)
	l := 1
	if prefix >= 0 {
		l = fp.length[prefix] + 1
	}
	fp.length = append(fp.length, l)
	return p
}

// NbGenerators returns the number of generators.
func (fp *FroidurePin[E]) NbGenerators() int {
	return len(fp.gens)
}

// Generator returns the i-th generator.
func (fp *FroidurePin[E]) Generator(i int) E {
	return fp.gens[i]
}

// Immutable reports whether the semigroup is frozen.
func (fp *FroidurePin[E]) Immutable() bool {
	return fp.frozen
}

// SetImmutable freezes or unfreezes the semigroup.
func (fp *FroidurePin[E]) SetImmutable(v bool) {
	fp.frozen = v
}

// Run enumerates the semigroup until it is complete or the runner stops.
func (fp *FroidurePin[E]) Run() error {
	return fp.Runner.Run(fp.enumerate)
}

func (fp *FroidurePin[E]) enumerate() error {
	log := fp.Logger().With().Str("component", "froidurepin").Logger()
	for fp.pos < len(fp.elems) {
		end := fp.pos + fp.batch
		for ; fp.pos < end && fp.pos < len(fp.elems); fp.pos++ {
			row := make([]int, len(fp.gens))
			for g, gen := range fp.gens {
				x := fp.elems[fp.pos].Product(gen)
				p, ok := fp.index[x.Key()]
				if !ok {
					p = fp.push(x, fp.pos, word.Letter(g))
				}
				row[g] = p
			}
			fp.right = append(fp.right, row)
		}
		if fp.Report() {
			log.Info().Int("found", len(fp.elems)).Int("processed", fp.pos).Msg("enumerating")
		}
		if fp.pos < len(fp.elems) && fp.Stopped() {
			return nil
		}
	}
	fp.buildLeft()
	fp.SetFinished(true)
	log.Debug().Int("size", len(fp.elems)).Msg("enumeration complete")
	return nil
}

// buildLeft fills the left Cayley graph from the right one: if the element
// at pos is prefix·a then g·pos = (g·prefix)·a. Elements are stored in
// short-lex order so prefixes are always filled before they are needed.
func (fp *FroidurePin[E]) buildLeft() {
	n := len(fp.gens)
	fp.left = make([][]int, len(fp.elems))
	for p := range fp.elems {
		fp.left[p] = make([]int, n)
	}
	done := bitset.New(uint(len(fp.elems)))
	for p := range fp.elems {
		if fp.prefix[p] >= 0 {
			continue
		}
		for g := 0; g < n; g++ {
			fp.left[p][g] = fp.right[fp.genPos[g]][fp.final[p]]
		}
		done.Set(uint(p))
	}
	for p := range fp.elems {
		if done.Test(uint(p)) {
			continue
		}
		q := fp.prefix[p]
		for g := 0; g < n; g++ {
			fp.left[p][g] = fp.right[fp.left[q][g]][fp.final[p]]
		}
		done.Set(uint(p))
	}
}

// Size enumerates the semigroup and returns its number of elements.
func (fp *FroidurePin[E]) Size() int {
	_ = fp.Run()
	return len(fp.elems)
}

// CurrentSize returns the number of elements found so far.
func (fp *FroidurePin[E]) CurrentSize() int {
	return len(fp.elems)
}

// At returns the element at pos.
func (fp *FroidurePin[E]) At(pos int) E {
	return fp.elems[pos]
}

// Factorisation returns a shortest word over the generators equal to the
// element at pos.
func (fp *FroidurePin[E]) Factorisation(pos int) word.Word {
	w := make(word.Word, fp.length[pos])
	for i := len(w) - 1; pos >= 0; i-- {
		w[i] = fp.final[pos]
		pos = fp.prefix[pos]
	}
	return w
}

// Length returns the length of the factorisation of the element at pos.
func (fp *FroidurePin[E]) Length(pos int) int {
	return fp.length[pos]
}

// Evaluate returns the product of the generators spelled by w.
func (fp *FroidurePin[E]) Evaluate(w word.Word) (E, error) {
	var e E
	if len(w) == 0 {
		return e, errors.New("cannot evaluate the empty word in a semigroup")
	}
	for i, l := range w {
		if int(l) >= len(fp.gens) {
			return e, errors.Newf("letter %d at index %d out of range, expected a value in [0, %d)", l, i, len(fp.gens))
		}
	}
	e = fp.gens[w[0]]
	for _, l := range w[1:] {
		e = e.Product(fp.gens[l])
	}
	return e, nil
}

// EqualTo reports whether u and v represent the same element. It never
// enumerates the semigroup.
func (fp *FroidurePin[E]) EqualTo(u, v word.Word) (bool, error) {
	if word.Equal(u, v) {
		if _, err := fp.Evaluate(u); err != nil {
			return false, err
		}
		return true, nil
	}
	x, err := fp.Evaluate(u)
	if err != nil {
		return false, err
	}
	y, err := fp.Evaluate(v)
	if err != nil {
		return false, err
	}
	return x.Key() == y.Key(), nil
}

// CurrentPosition returns the position of the element w represents, or -1
// if it was not found yet.
func (fp *FroidurePin[E]) CurrentPosition(w word.Word) (int, error) {
	x, err := fp.Evaluate(w)
	if err != nil {
		return -1, err
	}
	if p, ok := fp.index[x.Key()]; ok {
		return p, nil
	}
	return -1, nil
}

// Position returns the position of the element w represents.
func (fp *FroidurePin[E]) Position(w word.Word) (int, error) {
	p, err := fp.CurrentPosition(w)
	if err != nil || p >= 0 {
		return p, err
	}
	if err := fp.Run(); err != nil {
		return -1, err
	}
	if !fp.Finished() {
		return -1, errors.New("enumeration stopped before the element was found")
	}
	return fp.CurrentPosition(w)
}

// Right returns the position of the element at pos times generator g.
func (fp *FroidurePin[E]) Right(pos int, g word.Letter) int {
	if !fp.Finished() {
		panic("right Cayley graph requested before the enumeration finished")
	}
	return fp.right[pos][g]
}

// Left returns the position of generator g times the element at pos.
func (fp *FroidurePin[E]) Left(pos int, g word.Letter) int {
	if !fp.Finished() {
		panic("left Cayley graph requested before the enumeration finished")
	}
	return fp.left[pos][g]
}
