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

package sids

import (
	"strconv"
	"strings"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/scope"
	"github.com/sealerio/cgnsval/pkg/tree"
)

const (
	structured   = "Structured"
	unstructured = "Unstructured"
)

func good() diagnostic.Status {
	return diagnostic.StatusGood
}

// childText is the C1 value of the first child of type tag.
func childText(n *tree.Node, tag string) (string, bool) {
	kids := n.ChildrenByType(tag)
	if len(kids) == 0 {
		return "", false
	}
	return kids[0].Value.Text()
}

// typedChild is the child named name if it has type tag.
func typedChild(n *tree.Node, name, tag string) *tree.Node {
	ch := n.ChildByName(name)
	if ch == nil || ch.Type != tag {
		return nil
	}
	return ch
}

func join(vals []int64) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(s, " ")
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func undefined(v *grammar.Visit, what string, key scope.Key) diagnostic.Status {
	return v.Push("S008", what, key)
}

func checkBase(v *grammar.Visit) diagnostic.Status {
	st := good()
	n := v.Node
	v.Context.Set(scope.BasePath, v.Path)

	if text, _ := childText(n, "SimulationType_t"); text == "TimeAccurate" && !n.HasChildType("BaseIterativeData_t") {
		st = st.Worst(v.Push("S111"))
	}

	vals, ok := n.Value.Ints()
	if !ok {
		return st
	}
	if len(vals) != 2 {
		return st.Worst(v.Push("S101", n.Value))
	}
	cell, phys := vals[0], vals[1]
	valid := true
	if cell < 1 || cell > 3 {
		st = st.Worst(v.Push("S102", cell))
		valid = false
	}
	if phys < 1 || phys > 3 {
		st = st.Worst(v.Push("S103", phys))
		valid = false
	}
	if valid && cell > phys {
		st = st.Worst(v.Push("S104", cell, phys))
		valid = false
	}
	if valid {
		v.Context.Set(scope.CellDimension, int(cell))
		v.Context.Set(scope.PhysicalDimension, int(phys))
	}
	return st
}

func checkZone(v *grammar.Visit) diagnostic.Status {
	st := good()
	n := v.Node
	if !n.HasChildType("GridCoordinates_t") {
		st = st.Worst(v.Push("S110"))
	}

	zoneType, ok := childText(n, "ZoneType_t")
	if !ok {
		return st
	}
	v.Context.Set(scope.ZoneType, zoneType)

	var index int
	switch zoneType {
	case structured:
		cell, ok := v.Context.Int(scope.CellDimension)
		if !ok {
			return st.Worst(undefined(v, "Zone size", scope.CellDimension))
		}
		index = cell
	case unstructured:
		index = 1
	default:
		return st
	}
	v.Context.Set(scope.IndexDimension, index)

	vals, ok := n.Value.Ints()
	if !ok {
		return st
	}
	if len(vals) != 3*index {
		return st.Worst(v.Push("S105", n.Value, index))
	}

	vertices, cells := int64(1), int64(1)
	positive := true
	for i := 0; i < index; i++ {
		vertex, cell := vals[3*i], vals[3*i+1]
		if vertex <= 0 || cell <= 0 {
			positive = false
			continue
		}
		if zoneType == structured && cell != vertex-1 {
			st = st.Worst(v.Push("S106", cell, vertex-1))
		}
		vertices *= vertex
		cells *= cell
	}
	if !positive {
		return st.Worst(v.Push("S107", n.Value))
	}
	v.Context.Set(scope.VertexCount, int(vertices))
	v.Context.Set(scope.CellCount, int(cells))
	return st
}

func checkGridCoordinates(v *grammar.Visit) diagnostic.Status {
	phys, ok := v.Context.Int(scope.PhysicalDimension)
	if !ok {
		return undefined(v, "GridCoordinates", scope.PhysicalDimension)
	}
	if arrays := len(v.Node.ChildrenByType("DataArray_t")); arrays != phys {
		return v.Push("S108", arrays, phys)
	}
	return good()
}

func checkFlowSolution(v *grammar.Visit) diagnostic.Status {
	location, ok := childText(v.Node, "GridLocation_t")
	if !ok {
		location = "Vertex"
	}
	v.Context.Set(scope.GridLocation, location)
	return good()
}

// checkDataArray checks the size of field arrays against the zone size.
func checkDataArray(v *grammar.Visit) diagnostic.Status {
	if v.Parent == nil || v.Parent.HasChildType("Rind_t") || v.Node.Value == nil {
		return good()
	}
	var key scope.Key
	switch v.Parent.Type {
	case "GridCoordinates_t":
		key = scope.VertexCount
	case "FlowSolution_t":
		location, _ := v.Context.String(scope.GridLocation)
		switch location {
		case "Vertex":
			key = scope.VertexCount
		case "CellCenter":
			key = scope.CellCount
		default:
			return good()
		}
	default:
		return good()
	}
	expected, ok := v.Context.Int(key)
	if !ok {
		return undefined(v, v.Node.Name, key)
	}
	if size := v.Node.Value.Len(); size != expected {
		return v.Push("S109", size, expected)
	}
	return good()
}

func checkElements(v *grammar.Visit) diagnostic.Status {
	st := good()
	n := v.Node
	vals, ok := n.Value.Ints()
	if !ok {
		return st
	}
	if len(vals) != 2 {
		return st.Worst(v.Push("S201", n.Value))
	}

	et, known := LookupElementType(vals[0])
	if known {
		v.Context.Set(scope.ElementType, et.Name)
	} else {
		st = st.Worst(v.Push("S201", vals[0]))
	}
	v.Context.Set(scope.ElementSizeBoundary, int(vals[1]))

	count := int64(-1)
	if rng := typedChild(n, "ElementRange", "IndexRange_t"); rng != nil {
		r, ok := rng.Value.Ints()
		if !ok || len(r) != 2 || r[0] < 1 || r[1] < r[0] {
			st = st.Worst(v.PushAt(tree.Join(v.Path, rng.Name), "S202", rng.Value))
		} else {
			count = r[1] - r[0] + 1
			v.Context.Set(scope.ElementCount, int(count))
		}
	}
	if count >= 0 && vals[1] > count {
		st = st.Worst(v.Push("S205", vals[1], count))
	}

	if known && et.Dim >= 0 {
		cell, ok := v.Context.Int(scope.CellDimension)
		if !ok {
			st = st.Worst(undefined(v, "ElementType", scope.CellDimension))
		} else if et.Dim > cell {
			st = st.Worst(v.Push("S206", et.Name, cell))
		}
	}

	conn := typedChild(n, "ElementConnectivity", "DataArray_t")
	if conn == nil || conn.Value == nil || !known || count < 0 {
		return st
	}
	connPath := tree.Join(v.Path, conn.Name)
	indices, ok := conn.Value.Ints()
	if !ok {
		return st.Worst(v.PushAt(connPath, "S004", conn.Value.DataType, "ElementConnectivity"))
	}
	if et.Nodes == 0 {
		return st
	}
	if int64(len(indices)) != count*int64(et.Nodes) {
		st = st.Worst(v.PushAt(connPath, "S204", len(indices), count, et.Name))
	}
	vertices, ok := v.Context.Int(scope.VertexCount)
	if !ok {
		return st.Worst(v.PushAt(connPath, "S008", "ElementConnectivity", scope.VertexCount))
	}
	for _, i := range indices {
		if i < 1 || i > int64(vertices) {
			st = st.Worst(v.PushAt(connPath, "S207", i, vertices))
			break
		}
	}
	return st
}

// checkIndexRange checks point ranges against the zone index dimension.
// Element ranges are checked by their Elements_t parent.
func checkIndexRange(v *grammar.Visit) diagnostic.Status {
	if v.Parent != nil && v.Parent.Type == "Elements_t" {
		return good()
	}
	index, ok := v.Context.Int(scope.IndexDimension)
	if !ok {
		return undefined(v, v.Node.Name, scope.IndexDimension)
	}
	vals, ok := v.Node.Value.Ints()
	if !ok {
		return good()
	}
	if len(vals) != 2*index {
		return v.Push("S203", v.Node.Value, index)
	}
	return good()
}

// checkConnectivity1to1 checks the orientation of an abutting interface: the
// transform is a signed permutation of the index axes and maps the extent of
// each axis of PointRange onto the same extent of PointRangeDonor.
func checkConnectivity1to1(v *grammar.Visit) diagnostic.Status {
	n := v.Node
	index, ok := v.Context.Int(scope.IndexDimension)
	if !ok {
		return undefined(v, "Transform", scope.IndexDimension)
	}

	transform := make([]int64, index)
	for i := range transform {
		transform[i] = int64(i + 1)
	}
	if tr := typedChild(n, "Transform", TransformType); tr != nil {
		vals, ok := tr.Value.Ints()
		if !ok {
			return good()
		}
		if len(vals) != index {
			return v.Push("S301", len(vals), index)
		}
		if !validTransform(vals) {
			return v.Push("S302", join(vals))
		}
		transform = vals
	}

	pr := typedChild(n, "PointRange", "IndexRange_t")
	prd := typedChild(n, "PointRangeDonor", "IndexRange_t")
	if pr == nil || prd == nil {
		return good()
	}
	rng, ok1 := pr.Value.Ints()
	donor, ok2 := prd.Value.Ints()
	if !ok1 || !ok2 || len(rng) != 2*index || len(donor) != 2*index {
		return good()
	}

	want := make([]int64, index)
	got := make([]int64, index)
	for i := 0; i < index; i++ {
		j := abs(transform[i]) - 1
		want[j] = abs(rng[2*i+1] - rng[2*i])
		got[j] = abs(donor[2*j+1] - donor[2*j])
	}
	for j := range want {
		if want[j] != got[j] {
			return v.Push("S303", join(got), join(want))
		}
	}
	return good()
}

func validTransform(t []int64) bool {
	seen := make([]bool, len(t)+1)
	for _, v := range t {
		a := abs(v)
		if a < 1 || a > int64(len(t)) || seen[a] {
			return false
		}
		seen[a] = true
	}
	return true
}

func checkReferenceState(v *grammar.Visit) diagnostic.Status {
	st := good()
	for _, ch := range v.Node.Children {
		path := tree.Join(v.Path, ch.Name)
		if ch.Name == "ReferenceStateDescription" {
			if ch.Type != "Descriptor_t" {
				st = st.Worst(v.PushAt(path, "S401", ch.Name, "Descriptor_t"))
			}
			continue
		}
		if ch.Type == "DataArray_t" && ch.Value != nil && !ch.Value.IsReal() {
			st = st.Worst(v.PushAt(path, "S402", ch.Name))
		}
	}
	return st
}

func checkFamilyName(v *grammar.Visit) diagnostic.Status {
	family, ok := v.Node.Value.Text()
	if !ok {
		return good()
	}
	basePath, ok := v.Context.String(scope.BasePath)
	if !ok {
		return undefined(v, "FamilyName", scope.BasePath)
	}
	if base := tree.Find(v.Tree, basePath); base != nil {
		for _, f := range base.ChildrenByType("Family_t") {
			if f.Name == family {
				return good()
			}
		}
	}
	return v.Push("S501", family, tree.Leaf(basePath))
}

func checkBC(v *grammar.Visit) diagnostic.Status {
	if bcType, _ := v.Node.Value.Text(); bcType == "FamilySpecified" && !v.Node.HasChildType("FamilyName_t") {
		return v.Push("S502", v.Node.Name)
	}
	return good()
}

func checkUnits(v *grammar.Visit) diagnostic.Status {
	text, ok := v.Node.Value.Text()
	if !ok {
		return good()
	}
	units := strings.Fields(text)
	if len(units) != len(Units) {
		return v.Push("S602", len(units))
	}
	st := good()
	for i, u := range units {
		if !contains(Units[i].Names, u) {
			st = st.Worst(v.Push("S601", u, Units[i].Kind))
		}
	}
	return st
}
