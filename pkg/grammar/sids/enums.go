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

// Enumerations of the standard, stored as C1 values.
var (
	ZoneTypes       = []string{"Null", "UserDefined", "Structured", "Unstructured"}
	SimulationTypes = []string{"Null", "UserDefined", "TimeAccurate", "NonTimeAccurate"}
	GridLocations   = []string{
		"Null", "UserDefined", "Vertex", "CellCenter", "FaceCenter",
		"IFaceCenter", "JFaceCenter", "KFaceCenter", "EdgeCenter",
	}
	BCTypes = []string{
		"Null", "UserDefined", "BCAxisymmetricWedge", "BCDegenerateLine", "BCDegeneratePoint",
		"BCDirichlet", "BCExtrapolate", "BCFarfield", "BCGeneral", "BCInflow",
		"BCInflowSubsonic", "BCInflowSupersonic", "BCNeumann", "BCOutflow", "BCOutflowSubsonic",
		"BCOutflowSupersonic", "BCSymmetryPlane", "BCSymmetryPolar", "BCTunnelInflow", "BCTunnelOutflow",
		"BCWall", "BCWallInviscid", "BCWallViscous", "BCWallViscousHeatFlux", "BCWallViscousIsothermal",
		"FamilySpecified",
	}
	GridConnectivityTypes = []string{"Null", "UserDefined", "Overset", "Abutting", "Abutting1to1"}
	DataClasses           = []string{
		"Null", "UserDefined", "Dimensional", "NormalizedByDimensional",
		"NormalizedByUnknownDimensional", "NondimensionalParameter", "DimensionlessConstant",
	}
	GoverningEquations = []string{
		"Null", "UserDefined", "FullPotential", "Euler", "NSLaminar", "NSTurbulent",
		"NSLaminarIncompressible", "NSTurbulentIncompressible",
	}
	GasModels = []string{
		"Null", "UserDefined", "Ideal", "VanderWaals", "CaloricallyPerfect",
		"ThermallyPerfect", "ConstantDensity", "RedlichKwong",
	}
	RigidGridMotionTypes     = []string{"Null", "UserDefined", "ConstantRate", "VariableRate"}
	ArbitraryGridMotionTypes = []string{"Null", "UserDefined", "NonDeformingGrid", "DeformingGrid"}
)

// Units lists the valid names of each of the five DimensionalUnits, in the
// order they appear in the value.
var Units = []struct {
	Kind  string
	Names []string
}{
	{"MassUnits", []string{"Null", "UserDefined", "Kilogram", "Gram", "Slug", "PoundMass"}},
	{"LengthUnits", []string{"Null", "UserDefined", "Meter", "Centimeter", "Millimeter", "Foot", "Inch"}},
	{"TimeUnits", []string{"Null", "UserDefined", "Second"}},
	{"TemperatureUnits", []string{"Null", "UserDefined", "Kelvin", "Celsius", "Rankine", "Fahrenheit"}},
	{"AngleUnits", []string{"Null", "UserDefined", "Degree", "Radian"}},
}

// ElementType is an entry of the element type enumeration, stored as an
// integer code in the Elements_t value.
type ElementType struct {
	Code  int
	Name  string
	Nodes int // nodes per element, 0 when variable
	Dim   int // topological dimension, -1 when variable
}

var ElementTypes = []ElementType{
	{0, "ElementTypeNull", 0, -1},
	{1, "ElementTypeUserDefined", 0, -1},
	{2, "NODE", 1, 0},
	{3, "BAR_2", 2, 1},
	{4, "BAR_3", 3, 1},
	{5, "TRI_3", 3, 2},
	{6, "TRI_6", 6, 2},
	{7, "QUAD_4", 4, 2},
	{8, "QUAD_8", 8, 2},
	{9, "QUAD_9", 9, 2},
	{10, "TETRA_4", 4, 3},
	{11, "TETRA_10", 10, 3},
	{12, "PYRA_5", 5, 3},
	{13, "PYRA_14", 14, 3},
	{14, "PENTA_6", 6, 3},
	{15, "PENTA_15", 15, 3},
	{16, "PENTA_18", 18, 3},
	{17, "HEXA_8", 8, 3},
	{18, "HEXA_20", 20, 3},
	{19, "HEXA_27", 27, 3},
	{20, "MIXED", 0, -1},
	{21, "PYRA_13", 13, 3},
	{22, "NGON_n", 0, 2},
	{23, "NFACE_n", 0, 3},
}

// LookupElementType returns the element type of code. Null and UserDefined
// are not usable in a file and are not found.
func LookupElementType(code int64) (ElementType, bool) {
	if code < 2 || code >= int64(len(ElementTypes)) {
		return ElementType{}, false
	}
	return ElementTypes[code], true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
