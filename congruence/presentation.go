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
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"

	"github.com/consensys/semigroups/word"
)

// Presentation is the configuration of a congruence: its kind, number of
// generators and generating pairs.
type Presentation struct {
	Kind         Kind   `cbor:"kind"`
	NbGenerators int    `cbor:"nb_generators"`
	Pairs        []Pair `cbor:"pairs"`
}

// Presentation returns the current configuration of c.
func (c *Congruence) Presentation() Presentation {
	return Presentation{
		Kind:         c.kind,
		NbGenerators: c.nbGens,
		Pairs:        c.GeneratingPairs(),
	}
}

// Apply sets the number of generators of c and adds the generating pairs
// of p, through SetGeneratorCount and AddGeneratingPair.
func (c *Congruence) Apply(p Presentation) error {
	if p.Kind != c.kind {
		return invalidArgument("cannot apply a %s presentation to a %s congruence", p.Kind, c.kind)
	}
	if err := c.SetGeneratorCount(p.NbGenerators); err != nil {
		return err
	}
	for i, pair := range p.Pairs {
		if err := c.AddGeneratingPair(pair.U, pair.V); err != nil {
			return errors.Wrapf(err, "pair %d", i)
		}
	}
	return nil
}

// Validate checks the presentation is well formed.
func (p *Presentation) Validate() error {
	if _, err := KindName(p.Kind); err != nil {
		return err
	}
	if p.NbGenerators <= 0 {
		return invalidArgument("the number of generators must be positive, found %d", p.NbGenerators)
	}
	for i, pair := range p.Pairs {
		for _, w := range []word.Word{pair.U, pair.V} {
			if m, ok := w.Max(); ok && int(m) >= p.NbGenerators {
				return invalidArgument("letter %d in pair %d out of bounds, expected a value in [0, %d)", m, i, p.NbGenerators)
			}
		}
	}
	return nil
}

type writerCounter struct {
	w io.Writer
	n int64
}

func (wc *writerCounter) Write(p []byte) (int, error) {
	n, err := wc.w.Write(p)
	wc.n += int64(n)
	return n, err
}

// WriteTo encodes p in CBOR (core deterministic encoding) to w.
func (p *Presentation) WriteTo(w io.Writer) (int64, error) {
	_w := &writerCounter{w: w}
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	if err := enc.NewEncoder(_w).Encode(p); err != nil {
		return _w.n, err
	}
	return _w.n, nil
}

// ReadFrom decodes a CBOR encoded presentation from r and validates it.
func (p *Presentation) ReadFrom(r io.Reader) (int64, error) {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 134217728,
		MaxMapPairs:      134217728,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	decoder := dm.NewDecoder(r)
	if err := decoder.Decode(p); err != nil {
		return int64(decoder.NumBytesRead()), err
	}
	return int64(decoder.NumBytesRead()), p.Validate()
}
