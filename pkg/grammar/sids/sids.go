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

// Package sids is the domain standard grammar "S". It checks each node
// against the type table of the standard and adds the checks that need the
// dimensions of the enclosing base and zone, threaded through the context.
package sids

import (
	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/tree"
)

const ID = "S"

// Catalog is the S series.
var Catalog = diagnostic.MustCatalog(
	diagnostic.Error("S001", "Type [%s] is not allowed as child of [%s]"),
	diagnostic.Error("S002", "Mandatory child [%s] of type [%s] is missing"),
	diagnostic.Error("S003", "Too many children of type [%s] (at most one allowed)"),
	diagnostic.Error("S004", "Data type [%s] is not allowed for type [%s]"),
	diagnostic.Error("S005", "Value [%s] is not a valid enumerate for [%s]"),
	diagnostic.Error("S006", "Node value is missing"),
	diagnostic.Warning("S007", "Node of type [%s] should be named [%s]"),
	diagnostic.Warning("S008", "Cannot check [%s]: context value [%s] is undefined"),

	diagnostic.Error("S101", "Base dimensions [%s] should be two integers"),
	diagnostic.Error("S102", "CellDimension [%s] should be 1, 2 or 3"),
	diagnostic.Error("S103", "PhysicalDimension [%s] should be 1, 2 or 3"),
	diagnostic.Error("S104", "CellDimension [%s] is greater than PhysicalDimension [%s]"),
	diagnostic.Error("S105", "Zone size [%s] does not match IndexDimension [%s]"),
	diagnostic.Error("S106", "Structured zone cell size [%s] should be vertex size minus one [%s]"),
	diagnostic.Error("S107", "Zone size [%s] should be positive"),
	diagnostic.Warning("S108", "GridCoordinates has [%s] coordinate arrays, PhysicalDimension is [%s]"),
	diagnostic.Error("S109", "Array size [%s] does not match expected size [%s]"),
	diagnostic.Warning("S110", "Zone has no GridCoordinates"),
	diagnostic.Warning("S111", "TimeAccurate simulation has no BaseIterativeData"),

	diagnostic.Error("S201", "Element type [%s] is not valid"),
	diagnostic.Error("S202", "ElementRange [%s] is invalid"),
	diagnostic.Error("S203", "Range [%s] does not match IndexDimension [%s]"),
	diagnostic.Error("S204", "ElementConnectivity size [%s] does not match [%s] elements of type [%s]"),
	diagnostic.Error("S205", "ElementSizeBoundary [%s] exceeds element count [%s]"),
	diagnostic.Warning("S206", "Element type [%s] is of higher dimension than CellDimension [%s]"),
	diagnostic.Error("S207", "Connectivity index [%s] is out of vertex range [%s]"),

	diagnostic.Error("S301", "Transform size [%s] does not match IndexDimension [%s]"),
	diagnostic.Error("S302", "Transform [%s] is not a valid orientation"),
	diagnostic.Error("S303", "PointRangeDonor extent [%s] does not match PointRange extent [%s] under Transform"),

	diagnostic.Error("S401", "Node [%s] should be of type [%s]"),
	diagnostic.Error("S402", "Reference quantity [%s] should be real"),

	diagnostic.Warning("S501", "Family [%s] is not defined in base [%s]"),
	diagnostic.Error("S502", "FamilySpecified boundary condition [%s] has no FamilyName"),

	diagnostic.Error("S601", "Unit [%s] is not valid for [%s]"),
	diagnostic.Error("S602", "DimensionalUnits should have 5 units, found [%s]"),
)

// checks holds the type specific checks run after the table checks.
var checks = map[string]grammar.Handler{
	"CGNSBase_t":             checkBase,
	"Zone_t":                 checkZone,
	"GridCoordinates_t":      checkGridCoordinates,
	"FlowSolution_t":         checkFlowSolution,
	"DataArray_t":            checkDataArray,
	"Elements_t":             checkElements,
	"IndexRange_t":           checkIndexRange,
	"GridConnectivity1to1_t": checkConnectivity1to1,
	"ReferenceState_t":       checkReferenceState,
	"FamilyName_t":           checkFamilyName,
	"BC_t":                   checkBC,
	"DimensionalUnits_t":     checkUnits,
}

// New returns the S grammar with one handler per type of the table.
func New() *grammar.Grammar {
	g := grammar.New(ID, Catalog)
	for tag, t := range Types {
		t, extra := t, checks[tag]
		g.Handle(tag, func(v *grammar.Visit) diagnostic.Status {
			st := structure(v, t)
			if extra != nil {
				st = st.Worst(extra(v))
			}
			return st
		})
	}
	return g
}

// structure checks a node against its table entry: value, name and children.
func structure(v *grammar.Visit, t *Type) diagnostic.Status {
	st := diagnostic.StatusGood
	n := v.Node

	_, badValue := n.Fault(tree.FaultValue)
	_, badType := n.Fault(tree.FaultDataType)
	switch {
	case len(t.DataTypes) == 0 || badValue || badType:
	case n.Value == nil:
		if !t.ValueOptional {
			st = st.Worst(v.Push("S006"))
		}
	case !t.allows(n.Value.DataType):
		st = st.Worst(v.Push("S004", n.Value.DataType, t.Tag))
	case len(t.Enum) > 0:
		if s, _ := n.Value.Text(); !contains(t.Enum, s) {
			st = st.Worst(v.Push("S005", s, t.Tag))
		}
	}

	if t.Name != "" && n.Name != t.Name {
		st = st.Worst(v.Push("S007", t.Tag, t.Name))
	}

	for _, ch := range n.Children {
		if ch.Type == "" {
			continue
		}
		if !t.allowsChild(ch.Type) {
			st = st.Worst(v.PushAt(tree.Join(v.Path, ch.Name), "S001", ch.Type, t.Tag))
		}
	}
	for _, c := range t.Children {
		count := 0
		for _, ch := range n.Children {
			if ch.Type == c.Type && (c.Name == "" || ch.Name == c.Name) {
				count++
			}
		}
		if c.Card.mandatory() && count == 0 {
			name := c.Name
			if name == "" {
				name = "*"
			}
			st = st.Worst(v.Push("S002", name, c.Type))
		}
		if c.Card.single() && count > 1 {
			st = st.Worst(v.Push("S003", c.Type))
		}
	}
	return st
}
