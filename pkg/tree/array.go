// Copyright © 2023 Alibaba Group Holding Ltd.
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

package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DataType is the CGNS data type of a node value.
type DataType string

const (
	C1 DataType = "C1"
	I4 DataType = "I4"
	I8 DataType = "I8"
	R4 DataType = "R4"
	R8 DataType = "R8"
	MT DataType = "MT"
)

var dataTypes = []DataType{C1, I4, I8, R4, R8, MT}

// ParseDataType returns the DataType named by s.
func ParseDataType(s string) (DataType, bool) {
	for _, dt := range dataTypes {
		if string(dt) == s {
			return dt, true
		}
	}
	return "", false
}

// Array is a typed node value. Integer data is kept as int64, real data as
// float64 and character data as a single string, whatever the declared width.
type Array struct {
	DataType DataType
	Shape    []int

	ints  []int64
	reals []float64
	text  string
}

// Ints builds an integer array, I4 unless a value does not fit in 32 bits.
func Ints(v ...int64) *Array {
	dt := I4
	for _, i := range v {
		if i > math.MaxInt32 || i < math.MinInt32 {
			dt = I8
			break
		}
	}
	return &Array{DataType: dt, Shape: []int{len(v)}, ints: v}
}

// Reals builds a R8 array.
func Reals(v ...float64) *Array {
	return &Array{DataType: R8, Shape: []int{len(v)}, reals: v}
}

// Chars builds a C1 array holding s.
func Chars(s string) *Array {
	return &Array{DataType: C1, Shape: []int{len(s)}, text: s}
}

// NewArray builds an array of the given data type from a flat data slice.
// data must be []int64 for I4/I8, []float64 for R4/R8 and string for C1.
// A nil shape means a one dimensional array.
func NewArray(dt DataType, shape []int, data interface{}) (*Array, error) {
	a := &Array{DataType: dt}
	var size int
	switch dt {
	case I4, I8:
		v, ok := data.([]int64)
		if !ok {
			return nil, errors.Errorf("%s array needs integer data, got %T", dt, data)
		}
		a.ints, size = v, len(v)
	case R4, R8:
		switch v := data.(type) {
		case []float64:
			a.reals, size = v, len(v)
		case []int64:
			a.reals = make([]float64, len(v))
			for i, x := range v {
				a.reals[i] = float64(x)
			}
			size = len(v)
		default:
			return nil, errors.Errorf("%s array needs real data, got %T", dt, data)
		}
	case C1:
		v, ok := data.(string)
		if !ok {
			return nil, errors.Errorf("C1 array needs string data, got %T", data)
		}
		a.text, size = v, len(v)
	default:
		return nil, errors.Errorf("data type %q cannot hold data", dt)
	}

	if shape == nil {
		shape = []int{size}
	}
	product := 1
	for _, d := range shape {
		if d < 0 {
			return nil, errors.Errorf("negative dimension in shape %v", shape)
		}
		product *= d
	}
	if product != size {
		return nil, errors.Errorf("shape %v does not match %d values", shape, size)
	}
	a.Shape = shape
	return a, nil
}

// Len returns the number of values in the array.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	switch a.DataType {
	case I4, I8:
		return len(a.ints)
	case R4, R8:
		return len(a.reals)
	case C1:
		return len(a.text)
	}
	return 0
}

func (a *Array) IsInteger() bool {
	return a != nil && (a.DataType == I4 || a.DataType == I8)
}

func (a *Array) IsReal() bool {
	return a != nil && (a.DataType == R4 || a.DataType == R8)
}

func (a *Array) IsText() bool {
	return a != nil && a.DataType == C1
}

// Ints returns the integer values, false if the array is not an integer array.
func (a *Array) Ints() ([]int64, bool) {
	if !a.IsInteger() {
		return nil, false
	}
	return a.ints, true
}

// Reals returns the values of a numeric array as float64.
func (a *Array) Reals() ([]float64, bool) {
	switch {
	case a.IsReal():
		return a.reals, true
	case a.IsInteger():
		r := make([]float64, len(a.ints))
		for i, v := range a.ints {
			r[i] = float64(v)
		}
		return r, true
	}
	return nil, false
}

// Text returns the character data of a C1 array.
func (a *Array) Text() (string, bool) {
	if !a.IsText() {
		return "", false
	}
	return a.text, true
}

// String renders the value the way diagnostics quote it.
func (a *Array) String() string {
	if a == nil {
		return "None"
	}
	switch a.DataType {
	case C1:
		return a.text
	case I4, I8:
		s := make([]string, len(a.ints))
		for i, v := range a.ints {
			s[i] = strconv.FormatInt(v, 10)
		}
		return strings.Join(s, " ")
	case R4, R8:
		s := make([]string, len(a.reals))
		for i, v := range a.reals {
			s[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strings.Join(s, " ")
	}
	return fmt.Sprintf("%s%v", a.DataType, a.Shape)
}
