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

import "github.com/sealerio/cgnsval/pkg/tree"

// Cardinality is how many children of a kind a node may hold.
type Cardinality int

const (
	Optional Cardinality = iota // 0..1
	Many                        // 0..N
	One                         // 1
	OneOrMore                   // 1..N
)

func (c Cardinality) String() string {
	switch c {
	case Optional:
		return "0..1"
	case Many:
		return "0..N"
	case One:
		return "1"
	case OneOrMore:
		return "1..N"
	}
	return "?"
}

func (c Cardinality) mandatory() bool {
	return c == One || c == OneOrMore
}

func (c Cardinality) single() bool {
	return c == Optional || c == One
}

// Child describes an allowed child. An empty Name matches any name.
type Child struct {
	Type string
	Name string
	Card Cardinality
}

// Type describes one type tag of the standard.
type Type struct {
	Tag string
	// DataTypes lists the allowed value data types, none meaning no value.
	DataTypes []tree.DataType
	// ValueOptional allows an absent value for a type with DataTypes.
	ValueOptional bool
	// Enum restricts a C1 value to a set of names.
	Enum []string
	// Name is the name nodes of this type should have, if fixed.
	Name     string
	Children []Child
}

func (t *Type) allows(dt tree.DataType) bool {
	for _, d := range t.DataTypes {
		if d == dt {
			return true
		}
	}
	return false
}

func (t *Type) allowsChild(tag string) bool {
	for _, c := range t.Children {
		if c.Type == tag {
			return true
		}
	}
	return false
}

var (
	c1      = []tree.DataType{tree.C1}
	ints    = []tree.DataType{tree.I4, tree.I8}
	reals   = []tree.DataType{tree.R4, tree.R8}
	anyData = []tree.DataType{tree.C1, tree.I4, tree.I8, tree.R4, tree.R8}
)

func opt(tag string, name ...string) Child  { return child(tag, Optional, name) }
func many(tag string, name ...string) Child { return child(tag, Many, name) }
func one(tag string, name ...string) Child  { return child(tag, One, name) }

func child(tag string, card Cardinality, name []string) Child {
	c := Child{Type: tag, Card: card}
	if len(name) > 0 {
		c.Name = name[0]
	}
	return c
}

// common children of most data holding types
func annotated(children ...Child) []Child {
	return append(children,
		opt("DataClass_t", "DataClass"),
		opt("DimensionalUnits_t", "DimensionalUnits"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	)
}

// Types is the type table, keyed by tag.
var Types = index(
	&Type{Tag: "CGNSLibraryVersion_t", DataTypes: reals, Name: "CGNSLibraryVersion"},
	&Type{Tag: "CGNSBase_t", DataTypes: ints, Children: annotated(
		many("Zone_t"),
		opt("SimulationType_t", "SimulationType"),
		opt("BaseIterativeData_t"),
		many("Family_t"),
		opt("ReferenceState_t", "ReferenceState"),
		opt("FlowEquationSet_t", "FlowEquationSet"),
		opt("ConvergenceHistory_t", "GlobalConvergenceHistory"),
		many("IntegralData_t"),
		opt("Gravity_t", "Gravity"),
		opt("Axisymmetry_t", "Axisymmetry"),
		opt("RotatingCoordinates_t", "RotatingCoordinates"),
	)},
	&Type{Tag: "Zone_t", DataTypes: ints, Children: annotated(
		one("ZoneType_t", "ZoneType"),
		many("GridCoordinates_t"),
		many("Elements_t"),
		many("FlowSolution_t"),
		many("DiscreteData_t"),
		many("IntegralData_t"),
		opt("ZoneBC_t", "ZoneBC"),
		many("ZoneGridConnectivity_t"),
		opt("FamilyName_t", "FamilyName"),
		opt("ReferenceState_t", "ReferenceState"),
		opt("FlowEquationSet_t", "FlowEquationSet"),
		opt("ConvergenceHistory_t", "ZoneConvergenceHistory"),
		opt("ZoneIterativeData_t"),
		many("RigidGridMotion_t"),
		many("ArbitraryGridMotion_t"),
		opt("RotatingCoordinates_t", "RotatingCoordinates"),
		opt("Ordinal_t", "Ordinal"),
	)},
	&Type{Tag: "ZoneType_t", DataTypes: c1, Enum: ZoneTypes, Name: "ZoneType"},
	&Type{Tag: "SimulationType_t", DataTypes: c1, Enum: SimulationTypes, Name: "SimulationType"},
	&Type{Tag: "GridCoordinates_t", Children: annotated(
		many("DataArray_t"),
		opt("Rind_t", "Rind"),
	)},
	&Type{Tag: "DataArray_t", DataTypes: anyData, Children: []Child{
		opt("DataClass_t", "DataClass"),
		opt("DimensionalUnits_t", "DimensionalUnits"),
		opt("DimensionalExponents_t", "DimensionalExponents"),
		opt("DataConversion_t", "DataConversion"),
		many("Descriptor_t"),
	}},
	&Type{Tag: "Elements_t", DataTypes: ints, Children: []Child{
		one("IndexRange_t", "ElementRange"),
		one("DataArray_t", "ElementConnectivity"),
		opt("DataArray_t", "ElementStartOffset"),
		opt("DataArray_t", "ParentElements"),
		opt("DataArray_t", "ParentElementsPosition"),
		opt("Rind_t", "Rind"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: "IndexRange_t", DataTypes: ints},
	&Type{Tag: "IndexArray_t", DataTypes: ints},
	&Type{Tag: "Rind_t", DataTypes: ints, Name: "Rind"},
	&Type{Tag: "Ordinal_t", DataTypes: ints, Name: "Ordinal"},
	&Type{Tag: "FlowSolution_t", Children: annotated(
		opt("GridLocation_t", "GridLocation"),
		opt("IndexRange_t", "PointRange"),
		opt("IndexArray_t", "PointList"),
		opt("Rind_t", "Rind"),
		many("DataArray_t"),
	)},
	&Type{Tag: "DiscreteData_t", Children: annotated(
		opt("GridLocation_t", "GridLocation"),
		opt("IndexRange_t", "PointRange"),
		opt("IndexArray_t", "PointList"),
		opt("Rind_t", "Rind"),
		many("DataArray_t"),
	)},
	&Type{Tag: "IntegralData_t", Children: annotated(many("DataArray_t"))},
	&Type{Tag: "GridLocation_t", DataTypes: c1, Enum: GridLocations, Name: "GridLocation"},
	&Type{Tag: "ZoneBC_t", Name: "ZoneBC", Children: annotated(
		many("BC_t"),
		opt("ReferenceState_t", "ReferenceState"),
	)},
	&Type{Tag: "BC_t", DataTypes: c1, Enum: BCTypes, Children: annotated(
		opt("IndexRange_t", "PointRange"),
		opt("IndexArray_t", "PointList"),
		opt("IndexArray_t", "InwardNormalIndex"),
		opt("GridLocation_t", "GridLocation"),
		opt("FamilyName_t", "FamilyName"),
		many("BCDataSet_t"),
		opt("ReferenceState_t", "ReferenceState"),
		opt("Ordinal_t", "Ordinal"),
	)},
	&Type{Tag: "BCDataSet_t", DataTypes: c1, Enum: BCTypes, Children: annotated(
		opt("GridLocation_t", "GridLocation"),
		opt("IndexRange_t", "PointRange"),
		opt("IndexArray_t", "PointList"),
		opt("BCData_t", "DirichletData"),
		opt("BCData_t", "NeumannData"),
		opt("ReferenceState_t", "ReferenceState"),
	)},
	&Type{Tag: "BCData_t", Children: annotated(many("DataArray_t"))},
	&Type{Tag: "ZoneGridConnectivity_t", Children: []Child{
		many("GridConnectivity1to1_t"),
		many("GridConnectivity_t"),
		many("OversetHoles_t"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: "GridConnectivity1to1_t", DataTypes: c1, Children: []Child{
		opt(TransformType, "Transform"),
		one("IndexRange_t", "PointRange"),
		one("IndexRange_t", "PointRangeDonor"),
		opt("GridConnectivityProperty_t", "GridConnectivityProperty"),
		opt("Ordinal_t", "Ordinal"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: TransformType, DataTypes: ints, Name: "Transform"},
	&Type{Tag: "GridConnectivity_t", DataTypes: c1, Children: []Child{
		opt("GridConnectivityType_t", "GridConnectivityType"),
		opt("GridLocation_t", "GridLocation"),
		opt("IndexRange_t", "PointRange"),
		opt("IndexArray_t", "PointList"),
		opt("IndexArray_t", "PointListDonor"),
		opt("IndexArray_t", "CellListDonor"),
		opt("DataArray_t", "InterpolantsDonor"),
		opt("GridConnectivityProperty_t", "GridConnectivityProperty"),
		opt("Ordinal_t", "Ordinal"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: "GridConnectivityType_t", DataTypes: c1, Enum: GridConnectivityTypes, Name: "GridConnectivityType"},
	&Type{Tag: "GridConnectivityProperty_t", Name: "GridConnectivityProperty", Children: []Child{
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: "OversetHoles_t", Children: []Child{
		opt("GridLocation_t", "GridLocation"),
		many("IndexRange_t"),
		opt("IndexArray_t", "PointList"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: "Family_t", Children: []Child{
		opt("FamilyBC_t", "FamilyBC"),
		many("FamilyName_t"),
		many("GeometryReference_t"),
		opt("RotatingCoordinates_t", "RotatingCoordinates"),
		opt("Ordinal_t", "Ordinal"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: "FamilyBC_t", DataTypes: c1, Enum: BCTypes, Name: "FamilyBC", Children: []Child{
		many("BCDataSet_t"),
	}},
	&Type{Tag: "FamilyName_t", DataTypes: c1},
	&Type{Tag: "GeometryReference_t", Children: []Child{
		one("GeometryFile_t", "GeometryFile"),
		one("GeometryFormat_t", "GeometryFormat"),
		many("GeometryEntity_t"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: "GeometryFile_t", DataTypes: c1, Name: "GeometryFile"},
	&Type{Tag: "GeometryFormat_t", DataTypes: c1, Name: "GeometryFormat"},
	&Type{Tag: "GeometryEntity_t"},
	&Type{Tag: "ReferenceState_t", Name: "ReferenceState", Children: annotated(
		opt("Descriptor_t", "ReferenceStateDescription"),
		many("DataArray_t"),
	)},
	&Type{Tag: "Descriptor_t", DataTypes: c1},
	&Type{Tag: "DataClass_t", DataTypes: c1, Enum: DataClasses, Name: "DataClass"},
	&Type{Tag: "DimensionalUnits_t", DataTypes: c1, Name: "DimensionalUnits", Children: []Child{
		opt("AdditionalUnits_t", "AdditionalUnits"),
	}},
	&Type{Tag: "AdditionalUnits_t", DataTypes: c1, Name: "AdditionalUnits"},
	&Type{Tag: "DimensionalExponents_t", DataTypes: reals, Name: "DimensionalExponents"},
	&Type{Tag: "DataConversion_t", DataTypes: reals, Name: "DataConversion"},
	&Type{Tag: "BaseIterativeData_t", DataTypes: ints, Children: annotated(many("DataArray_t"))},
	&Type{Tag: "ZoneIterativeData_t", Children: annotated(many("DataArray_t"))},
	&Type{Tag: "ConvergenceHistory_t", DataTypes: ints, Children: annotated(many("DataArray_t"))},
	&Type{Tag: "FlowEquationSet_t", Name: "FlowEquationSet", Children: annotated(
		opt(EquationDimensionType, "EquationDimension"),
		opt("GoverningEquations_t", "GoverningEquations"),
		opt("GasModel_t", "GasModel"),
	)},
	&Type{Tag: EquationDimensionType, DataTypes: ints, Name: "EquationDimension"},
	&Type{Tag: "GoverningEquations_t", DataTypes: c1, Enum: GoverningEquations, Name: "GoverningEquations", Children: []Child{
		opt(DiffusionModelType, "DiffusionModel"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
	&Type{Tag: DiffusionModelType, DataTypes: ints, Name: "DiffusionModel"},
	&Type{Tag: "GasModel_t", DataTypes: c1, Enum: GasModels, Name: "GasModel", Children: annotated(
		many("DataArray_t"),
	)},
	&Type{Tag: "Gravity_t", Name: "Gravity", Children: annotated(
		one("DataArray_t", "GravityVector"),
	)},
	&Type{Tag: "Axisymmetry_t", Name: "Axisymmetry", Children: annotated(
		one("DataArray_t", "AxisymmetryReferencePoint"),
		one("DataArray_t", "AxisymmetryAxisVector"),
		opt("DataArray_t", "AxisymmetryAngle"),
		opt("DataArray_t", "CoordinateNames"),
	)},
	&Type{Tag: "RotatingCoordinates_t", Name: "RotatingCoordinates", Children: annotated(
		one("DataArray_t", "RotationCenter"),
		one("DataArray_t", "RotationRateVector"),
	)},
	&Type{Tag: "RigidGridMotion_t", DataTypes: c1, Enum: RigidGridMotionTypes, Children: annotated(
		one("DataArray_t", "OriginLocation"),
		many("DataArray_t"),
	)},
	&Type{Tag: "ArbitraryGridMotion_t", DataTypes: c1, Enum: ArbitraryGridMotionTypes, Children: annotated(
		opt("GridLocation_t", "GridLocation"),
		opt("Rind_t", "Rind"),
		many("DataArray_t"),
	)},
	&Type{Tag: "UserDefinedData_t", Children: []Child{
		opt("GridLocation_t", "GridLocation"),
		opt("IndexRange_t", "PointRange"),
		opt("IndexArray_t", "PointList"),
		opt("FamilyName_t", "FamilyName"),
		opt("DataClass_t", "DataClass"),
		opt("DimensionalUnits_t", "DimensionalUnits"),
		opt("Ordinal_t", "Ordinal"),
		many("DataArray_t"),
		many("Descriptor_t"),
		many("UserDefinedData_t"),
	}},
)

// Weird tags of the standard, checked like the others.
const (
	TransformType         = "int[IndexDimension]"
	EquationDimensionType = "int"
	DiffusionModelType    = "int[1+...+IndexDimension]"
)

func index(types ...*Type) map[string]*Type {
	m := make(map[string]*Type, len(types))
	for _, t := range types {
		m[t.Tag] = t
	}
	return m
}
