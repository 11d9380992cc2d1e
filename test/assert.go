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

// Package test provides helpers to test the semigroups packages.
package test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/stretchr/testify/require"
)

// Assert is a helper to test congruences and the structures they use.
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs fn in a subtest with its own Assert.
func (assert *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := "test"
	if len(descs) > 0 {
		desc = descs[0]
	}
	assert.t.Run(desc, func(t *testing.T) {
		fn(NewAssert(t))
	})
}

// ErrorKind checks err is, or is marked as, kind.
func (assert *Assert) ErrorKind(err, kind error, msgAndArgs ...interface{}) {
	assert.t.Helper()
	assert.Error(err, msgAndArgs...)
	if !errors.Is(err, kind) {
		assert.Fail("unexpected error kind", "expected %q, got %+v", kind, err)
	}
}

// Diff fails the test if want and got differ, printing the difference.
func (assert *Assert) Diff(want, got interface{}, opts ...cmp.Option) {
	assert.t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		assert.Fail("mismatch (-want +got)", d)
	}
}

const (
	nbFuzzShort = 20
	nbFuzz      = 200
)

// Properties returns gopter properties sized for the current test mode.
func Properties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	if testing.Short() {
		parameters.MinSuccessfulTests = nbFuzzShort
	} else {
		parameters.MinSuccessfulTests = nbFuzz
	}
	return gopter.NewProperties(parameters)
}

// CheckProperties runs properties and fails the test if one fails.
func (assert *Assert) CheckProperties(properties *gopter.Properties) {
	assert.t.Helper()
	properties.TestingRun(assert.t, gopter.ConsoleReporter(false))
}
