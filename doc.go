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

// Package semigroups computes congruences on finitely generated semigroups
// and monoids.
//
// The congruence package holds the state and queries shared by every
// algorithm; congruence/pairs implements one of them on finite semigroups
// enumerated by froidurepin. Computations are incremental and may be run
// for a while, stopped and resumed (see runner).
package semigroups

import "github.com/blang/semver/v4"

// Version of the library.
var Version = semver.MustParse("0.1.0")
