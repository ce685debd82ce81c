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


package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/tree"
	"github.com/sealerio/cgnsval/pkg/walker"
)

var catalog = diagnostic.MustCatalog(
	diagnostic.Error("T001", "Zone [%s] is empty"),
	diagnostic.Warning("T002", "Zone [%s] has a long name"),
)

func result(t *testing.T) *walker.Result {
	g := grammar.New("T", catalog).Handle("Zone_t", func(v *grammar.Visit) diagnostic.Status {
		st := diagnostic.StatusGood
		if len(v.Node.Children) == 0 {
			st = st.Worst(v.Push("T001", v.Node.Name))
		}
		if len(v.Node.Name) > 4 {
			st = st.Worst(v.Push("T002", v.Node.Name))
		}
		return st
	})
	r := grammar.NewRegistry()
	require.NoError(t, r.Add(g))

	root := tree.New("CGNSTree", "CGNSTree_t", nil,
		tree.New("Base", "CGNSBase_t", tree.Ints(3, 3),
			tree.New("Inlet", "Zone_t", nil),
			tree.New("Core", "Zone_t", nil, tree.New("ZoneType", "ZoneType_t", tree.Chars("Structured"))),
		),
	)
	res, err := walker.New(r).RunTree(root)
	require.NoError(t, err)
	return res
}

func TestNew(t *testing.T) {
	res := result(t)
	f := New("mesh.yaml", res, nil)
	assert.Equal(t, res.RunID.String(), f.RunID)
	assert.Equal(t, diagnostic.StatusFail, f.Status)
	assert.Equal(t, 1, f.Errors)
	assert.Equal(t, 1, f.Warnings)
	require.Len(t, f.Diagnoses, 1)
	assert.Equal(t, "/Base/Inlet", f.Diagnoses[0].Path)
	assert.Len(t, f.Diagnoses[0].Diagnostics, 2)

	broken := New("broken.yaml", nil, errors.New("malformed tree"))
	assert.Equal(t, diagnostic.StatusFail, broken.Status)
	assert.Equal(t, "malformed tree", broken.Error)

	assert.True(t, Failed([]File{f}))
	assert.True(t, Failed([]File{broken}))
	assert.False(t, Failed([]File{{File: "ok.yaml", Status: diagnostic.StatusWarning, Warnings: 2}}))
}

func TestNew_RepeatedDiagnostics(t *testing.T) {
	g := grammar.New("T", catalog).Handle("Zone_t", func(v *grammar.Visit) diagnostic.Status {
		v.Push("T001", v.Node.Name)
		v.Push("T001", v.Node.Name)
		v.Push("T002", v.Node.Name)
		return v.Push("T002", v.Node.Name+"s")
	})
	r := grammar.NewRegistry()
	require.NoError(t, r.Add(g))
	root := tree.New("CGNSTree", "CGNSTree_t", nil,
		tree.New("Base", "CGNSBase_t", tree.Ints(3, 3), tree.New("Inlet", "Zone_t", nil)),
	)
	res, err := walker.New(r).RunTree(root)
	require.NoError(t, err)
	require.Equal(t, 4, res.Log.Len())

	f := New("mesh.yaml", res, nil)
	assert.Equal(t, 1, f.Errors)
	assert.Equal(t, 2, f.Warnings)
	require.Len(t, f.Diagnoses, 1)
	require.Len(t, f.Diagnoses[0].Diagnostics, 3)
	assert.Equal(t, "T001", f.Diagnoses[0].Diagnostics[0].Key)
	assert.Equal(t, "Zone [Inlets] has a long name", f.Diagnoses[0].Diagnostics[2].Message)
	assert.Equal(t, 4, res.Log.Len(), "the log keeps every push")

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, []File{f}, Options{}))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Zone [Inlet] is empty")))
}

func TestTable(t *testing.T) {
	files := []File{New("mesh.yaml", result(t), nil)}

	tests := []struct {
		name        string
		opts        Options
		contains    []string
		notContains []string
	}{
		{
			name:     "all",
			contains: []string{"T001", "T002", "Zone [Inlet] is empty", "mesh.yaml: Fail (1 errors, 1 warnings)"},
		},
		{
			name:        "hide warnings",
			opts:        Options{HideWarnings: true},
			contains:    []string{"T001", "mesh.yaml: Fail (1 errors, 1 warnings)"},
			notContains: []string{"T002"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Table(&buf, files, tt.opts))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestTable_Clean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, []File{{File: "ok.yaml", Status: diagnostic.StatusGood}}, Options{}))
	assert.Equal(t, "ok.yaml: Good (0 errors, 0 warnings)\n", buf.String())
}

func TestStructured(t *testing.T) {
	files := []File{New("mesh.yaml", result(t), nil)}

	var js bytes.Buffer
	require.NoError(t, Write(&js, common.OutputJSON, files, Options{HideWarnings: true}))
	var ys bytes.Buffer
	require.NoError(t, Write(&ys, common.OutputYAML, files, Options{}))
	fromYAML, err := yaml.YAMLToJSON(ys.Bytes())
	require.NoError(t, err)

	for name, data := range map[string][]byte{"json": js.Bytes(), "yaml": fromYAML} {
		t.Run(name, func(t *testing.T) {
			var back []map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &back))
			require.Len(t, back, 1)
			assert.Equal(t, "mesh.yaml", back[0]["file"])
			assert.Equal(t, "Fail", back[0]["status"])

			groups := back[0]["diagnoses"].([]interface{})
			require.Len(t, groups, 1)
			group := groups[0].(map[string]interface{})
			assert.Equal(t, "/Base/Inlet", group["path"])
			diags := group["diagnostics"].([]interface{})
			require.Len(t, diags, 2)
			assert.Equal(t, "Warning", diags[1].(map[string]interface{})["severity"])
		})
	}

	assert.Error(t, Write(&js, "xml", files, Options{}))
}

func TestCatalog(t *testing.T) {
	var buf bytes.Buffer
	Catalog(&buf, "T", catalog.Entries())
	out := buf.String()
	assert.Contains(t, out, "Zone [%s] is empty")
	assert.Contains(t, out, "Warning")
	assert.Contains(t, out, "grammar T, 2 diagnostics")
}
