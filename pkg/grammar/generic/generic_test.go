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

package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/tree"
	"github.com/sealerio/cgnsval/pkg/walker"
)

func check(t *testing.T, opts Options, doc string) []string {
	r := grammar.NewRegistry()
	require.NoError(t, r.Add(New(opts)))
	raw, err := tree.Decode([]byte(doc))
	require.NoError(t, err)
	res, err := walker.New(r).Run(raw)
	require.NoError(t, err)
	var got []string
	for _, d := range res.Log.Diagnostics() {
		got = append(got, d.Key+" "+d.Path+" "+d.Message)
	}
	return got
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		safe  bool
	}{
		{"Zone1", true, true},
		{"Flow Solution", true, true},
		{"", false, false},
		{"   ", false, false},
		{".", false, false},
		{"..", false, false},
		{"a/b", false, false},
		{"abcdefghijklmnopqrstuvwxyz0123456", false, false},
		{"abcdefghijklmnopqrstuvwxyz012345", true, true},
		{"tab\there", false, false},
		{"é", false, false},
		{" lead", true, false},
		{"trail ", true, false},
		{"two  spaces", true, false},
		{"quo'te", true, false},
		{"back\\slash", true, false},
		{"back`quote", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidName(tt.name))
			if tt.valid {
				assert.Equal(t, tt.safe, SafeName(tt.name))
			}
		})
	}
}

func TestGeneric_CleanTree(t *testing.T) {
	doc := `[CGNSTree, null, [[CGNSLibraryVersion, 3.4, [], CGNSLibraryVersion_t],
  [Base, [3, 3], [[Zone, [[8, 1, 0]], [], Zone_t], [Transform, [1, 2, 3], [], "int[IndexDimension]"]], CGNSBase_t]], CGNSTree_t]`
	assert.Empty(t, check(t, DefaultOptions(), doc))
}

func TestGeneric_Faults(t *testing.T) {
	doc := `
- CGNSTree
- null
- - null
  - [Base, null, [], CGNSBase_t, extra]
  - [42, null, [], CGNSBase_t]
  - [Bad, true, [], CGNSBase_t]
  - [Kids, null, notalist, CGNSBase_t]
  - [Typed, {dtype: X9, data: [1]}, [], CGNSBase_t]
  - [Tagless, null, [], ""]
  - [Weird, null, [], "zone t"]
- CGNSTree_t
`
	assert.Equal(t, []string{
		"G012 / Root child [Weird] should be CGNSLibraryVersion_t or CGNSBase_t",
		"G010 /#0 Node is empty or absent (child of [CGNSTree])",
		"G009 /Base Node is not a sequence of 4 items (child of [CGNSTree])",
		"G008 /#2 Node name is not a string (child of [CGNSTree])",
		"G006 /Bad Node value is not an array or absent (child of [CGNSTree])",
		"G007 /Kids Node children is not a sequence (child of [CGNSTree])",
		"G014 /Typed Node value data type [X9] is not supported",
		"G005 /Tagless Node type [\"\"] is not a valid type tag",
		"G005 /Weird Node type [zone t] is not a valid type tag",
	}, check(t, DefaultOptions(), doc))
}

func TestGeneric_Root(t *testing.T) {
	doc := `[CGNSTree, null, [
  [CGNSLibraryVersion, 3.4, [], CGNSLibraryVersion_t],
  [CGNSLibraryVersion, 3.4, [], CGNSLibraryVersion_t],
  [Zone, null, [], Zone_t]], Tree_t]`
	assert.Equal(t, []string{
		"G004 / Name [CGNSLibraryVersion] is a duplicated child name",
		"G015 / Root node type [Tree_t] is not CGNSTree_t",
		"G013 / More than one CGNSLibraryVersion node at root",
		"G012 / Root child [Zone] should be CGNSLibraryVersion_t or CGNSBase_t",
	}, check(t, DefaultOptions(), doc))
}

func TestGeneric_Version(t *testing.T) {
	tests := []struct {
		name  string
		value string
		opts  Options
		want  []string
	}{
		{"current", "3.4", DefaultOptions(), nil},
		{"too old", "2.1", DefaultOptions(), []string{"G001 /CGNSLibraryVersion CGNSLibraryVersion [2.1] is too old for current check level"}},
		{"raised level", "3.4", Options{MinimumVersion: 4}, []string{"G001 /CGNSLibraryVersion CGNSLibraryVersion [3.4] is too old for current check level"}},
		{"integer", "3", DefaultOptions(), []string{"G002 /CGNSLibraryVersion CGNSLibraryVersion is incorrect"}},
		{"absent", "null", DefaultOptions(), []string{"G002 /CGNSLibraryVersion CGNSLibraryVersion is incorrect"}},
		{"two values", "[3.1, 3.2]", DefaultOptions(), []string{"G002 /CGNSLibraryVersion CGNSLibraryVersion is incorrect"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "[CGNSTree, null, [[CGNSLibraryVersion, " + tt.value + ", [], CGNSLibraryVersion_t]], CGNSTree_t]"
			assert.Equal(t, tt.want, check(t, tt.opts, doc))
		})
	}
}

func TestGeneric_StrictNames(t *testing.T) {
	doc := `[CGNSTree, null, [[" Base", [3, 3], [], CGNSBase_t], ["a/b", [3, 3], [], CGNSBase_t]], CGNSTree_t]`
	assert.Equal(t, []string{
		"G003 /a/b Name [a/b] is not valid",
	}, check(t, DefaultOptions(), doc))
	assert.Equal(t, []string{
		"G011 / Base Name [ Base] is not safe",
		"G003 /a/b Name [a/b] is not valid",
	}, check(t, Options{StrictNames: true}, doc))
}
