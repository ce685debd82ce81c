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
	"strconv"

	"github.com/pkg/errors"
)

// ErrMalformedTree is returned when the root of a raw tree cannot be used at
// all: absent, not a sequence, or without a children sequence.
var ErrMalformedTree = errors.New("malformed tree")

// FromRaw builds a Node tree from its raw form, a sequence of four items
// [name, value, children, type] as decoded from YAML or JSON. Problems below
// the root are recorded as node faults and the children that can be recovered
// are kept; only an unusable root is an error.
func FromRaw(raw interface{}) (*Node, error) {
	if raw == nil {
		return nil, errors.Wrap(ErrMalformedTree, "root node is absent")
	}
	seq, ok := raw.([]interface{})
	if !ok {
		return nil, errors.Wrapf(ErrMalformedTree, "root node is not a sequence but %s", describe(raw))
	}
	if len(seq) < 3 {
		return nil, errors.Wrapf(ErrMalformedTree, "root node has %d items, children are missing", len(seq))
	}
	if _, ok := seq[2].([]interface{}); !ok {
		return nil, errors.Wrapf(ErrMalformedTree, "root children is not a sequence but %s", describe(seq[2]))
	}
	return build(raw, 0), nil
}

func build(raw interface{}, index int) *Node {
	n := &Node{Name: placeholder(index)}
	if raw == nil {
		n.Faults = append(n.Faults, Fault{Kind: FaultEmpty, Detail: "None"})
		return n
	}
	seq, ok := raw.([]interface{})
	if !ok {
		n.Faults = append(n.Faults, Fault{Kind: FaultNotSequence, Detail: describe(raw)})
		return n
	}
	if len(seq) == 0 {
		n.Faults = append(n.Faults, Fault{Kind: FaultEmpty, Detail: "[]"})
		return n
	}
	if len(seq) != 4 {
		n.Faults = append(n.Faults, Fault{Kind: FaultArity, Detail: strconv.Itoa(len(seq))})
	}

	if name, ok := seq[0].(string); ok {
		n.Name = name
	} else {
		n.Faults = append(n.Faults, Fault{Kind: FaultName, Detail: describe(seq[0])})
	}

	if len(seq) > 1 {
		v, fault := decodeValue(seq[1])
		if fault != nil {
			n.Faults = append(n.Faults, *fault)
		}
		n.Value = v
	}

	if len(seq) > 2 {
		if kids, ok := seq[2].([]interface{}); ok {
			for i, k := range kids {
				n.Children = append(n.Children, build(k, i))
			}
		} else {
			n.Faults = append(n.Faults, Fault{Kind: FaultChildren, Detail: describe(seq[2])})
		}
	}

	if len(seq) > 3 {
		if typ, ok := seq[3].(string); ok && typ != "" {
			n.Type = typ
		} else {
			n.Faults = append(n.Faults, Fault{Kind: FaultType, Detail: describe(seq[3])})
		}
	}
	return n
}

func placeholder(index int) string {
	return "#" + strconv.Itoa(index)
}

// decodeValue turns a raw value into an Array. A nil Array with a nil fault
// means the value is absent.
func decodeValue(raw interface{}) (*Array, *Fault) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return Chars(v), nil
	case map[string]interface{}:
		return decodeTyped(v)
	case []interface{}:
		ints, reals, shape, ok := flatten(v)
		if !ok {
			return nil, &Fault{Kind: FaultValue, Detail: describe(raw)}
		}
		return numeric(ints, reals, shape), nil
	}
	if i, ok := asInt(raw); ok {
		return Ints(i), nil
	}
	if f, ok := asReal(raw); ok {
		return Reals(f), nil
	}
	return nil, &Fault{Kind: FaultValue, Detail: describe(raw)}
}

// decodeTyped reads the explicit form {dtype: R8, data: [...], shape: [...]}.
func decodeTyped(m map[string]interface{}) (*Array, *Fault) {
	name, ok := m["dtype"].(string)
	if !ok {
		return nil, &Fault{Kind: FaultValue, Detail: describe(m)}
	}
	dt, ok := ParseDataType(name)
	if !ok {
		return nil, &Fault{Kind: FaultDataType, Detail: name}
	}
	if dt == MT {
		return nil, nil
	}

	var shape []int
	if rawShape, found := m["shape"]; found {
		dims, ok := rawShape.([]interface{})
		if !ok {
			return nil, &Fault{Kind: FaultValue, Detail: describe(m)}
		}
		for _, d := range dims {
			i, ok := asInt(d)
			if !ok {
				return nil, &Fault{Kind: FaultValue, Detail: describe(m)}
			}
			shape = append(shape, int(i))
		}
	}

	var data interface{}
	switch dt {
	case C1:
		s, ok := m["data"].(string)
		if !ok {
			return nil, &Fault{Kind: FaultValue, Detail: describe(m)}
		}
		data = s
	default:
		var items []interface{}
		switch d := m["data"].(type) {
		case []interface{}:
			items = d
		default:
			items = []interface{}{d}
		}
		ints, reals, natural, ok := flatten(items)
		if !ok {
			return nil, &Fault{Kind: FaultValue, Detail: describe(m)}
		}
		if shape == nil {
			shape = natural
		}
		if dt == I4 || dt == I8 {
			if reals != nil {
				return nil, &Fault{Kind: FaultValue, Detail: describe(m)}
			}
			data = ints
		} else if reals != nil {
			data = reals
		} else {
			data = ints
		}
	}

	a, err := NewArray(dt, shape, data)
	if err != nil {
		return nil, &Fault{Kind: FaultValue, Detail: err.Error()}
	}
	return a, nil
}

// flatten reads a rectangular nested list of numbers in row-major order.
// reals is non nil as soon as one value is real, ints holds every value
// otherwise.
func flatten(items []interface{}) (ints []int64, reals []float64, shape []int, ok bool) {
	var values []interface{}
	shape, ok = walkList(items, &values)
	if !ok {
		return nil, nil, nil, false
	}
	isReal := false
	for _, v := range values {
		if _, isInt := asInt(v); isInt {
			continue
		}
		if _, isFloat := asReal(v); !isFloat {
			return nil, nil, nil, false
		}
		isReal = true
	}
	if isReal {
		reals = make([]float64, 0, len(values))
		for _, v := range values {
			if i, isInt := asInt(v); isInt {
				reals = append(reals, float64(i))
			} else {
				f, _ := asReal(v)
				reals = append(reals, f)
			}
		}
		return nil, reals, shape, true
	}
	ints = make([]int64, 0, len(values))
	for _, v := range values {
		i, _ := asInt(v)
		ints = append(ints, i)
	}
	return ints, nil, shape, true
}

func walkList(items []interface{}, out *[]interface{}) ([]int, bool) {
	if len(items) == 0 {
		return []int{0}, true
	}
	var inner []int
	for i, it := range items {
		sub, nested := it.([]interface{})
		if !nested {
			if i > 0 && inner != nil {
				return nil, false
			}
			*out = append(*out, it)
			continue
		}
		if i > 0 && inner == nil {
			return nil, false
		}
		s, ok := walkList(sub, out)
		if !ok {
			return nil, false
		}
		if inner != nil && !sameShape(inner, s) {
			return nil, false
		}
		inner = s
	}
	return append([]int{len(items)}, inner...), true
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func numeric(ints []int64, reals []float64, shape []int) *Array {
	if reals != nil {
		a := Reals(reals...)
		a.Shape = shape
		return a
	}
	a := Ints(ints...)
	a.Shape = shape
	return a
}

func asInt(v interface{}) (int64, bool) {
	switch i := v.(type) {
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int64:
		return i, true
	}
	return 0, false
}

func asReal(v interface{}) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

func describe(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return strconv.Quote(x)
	case []interface{}:
		return fmt.Sprintf("sequence of %d items", len(x))
	case map[string]interface{}:
		return fmt.Sprintf("mapping of %d keys", len(x))
	}
	return fmt.Sprintf("%T(%v)", v, v)
}
