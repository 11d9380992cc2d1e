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
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidArgument marks errors caused by caller supplied data that
	// violates a precondition checkable from the inputs alone.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState marks errors caused by an operation that is not
	// allowed in the current lifecycle phase or configuration.
	ErrInvalidState = errors.New("invalid state")

	// ErrUndefinedClass is returned when a backend cannot determine the class
	// of a word, for instance because its run was stopped early. It is also
	// marked as ErrInvalidState.
	ErrUndefinedClass = errors.New("undefined class index")
)

func invalidArgument(format string, args ...interface{}) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrInvalidArgument)
}

func invalidState(format string, args ...interface{}) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrInvalidState)
}
