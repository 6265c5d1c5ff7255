// Copyright 2025 The cppx Authors. All rights reserved.
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

package collections

import (
	"slices"
	"testing"
)

func TestMapSlice(t *testing.T) {
	input := []int{1, 2, 3}
	expected := []string{"1", "2", "3"}

	result := MapSlice(input, func(i int) string {
		return string(rune('0' + i))
	})

	if !slices.Equal(result, expected) {
		t.Errorf("MapSlice: expected %v, got %v", expected, result)
	}
}

func TestFilterSlice(t *testing.T) {
	input := []int{1, 2, 3, 4}
	expected := []int{2, 4}

	result := FilterSlice(input, func(i int) bool { return i%2 == 0 })

	if !slices.Equal(result, expected) {
		t.Errorf("FilterSlice: expected %v, got %v", expected, result)
	}
}

func TestFilterMapSlice(t *testing.T) {
	input := []int{1, -1, 2}
	expected := []int{2, 4}

	result := FilterMapSlice(input, func(i int) (int, bool) {
		if i < 0 {
			return 0, false
		}
		return i * 2, true
	})

	if !slices.Equal(result, expected) {
		t.Errorf("FilterMapSlice: expected %v, got %v", expected, result)
	}
}

func TestSet(t *testing.T) {
	s := SetOf("a", "b")
	s.Add("c")

	for _, elem := range []string{"a", "b", "c"} {
		if !s.Contains(elem) {
			t.Errorf("Set should contain %q", elem)
		}
	}
	if s.Contains("d") {
		t.Error("Set should not contain \"d\"")
	}

	values := s.Values()
	slices.Sort(values)
	if !slices.Equal(values, []string{"a", "b", "c"}) {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestToSetEliminatesDuplicates(t *testing.T) {
	s := ToSet([]int{1, 1, 2, 2, 3})
	if len(s) != 3 {
		t.Errorf("expected 3 elements, got %d", len(s))
	}
}
