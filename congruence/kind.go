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

// Kind tells which side a congruence is compatible with multiplication on.
type Kind uint8

const (
	TwoSided Kind = iota
	Left
	Right
)

// KindName returns "two-sided", "left" or "right".
func KindName(k Kind) (string, error) {
	switch k {
	case TwoSided:
		return "two-sided", nil
	case Left:
		return "left", nil
	case Right:
		return "right", nil
	}
	return "", invalidArgument("incorrect congruence kind %d, expected a value in [0, 3)", uint8(k))
}

func (k Kind) String() string {
	name, err := KindName(k)
	if err != nil {
		return "unknown"
	}
	return name
}
