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

package walker

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/scope"
	"github.com/sealerio/cgnsval/pkg/tree"
)

const sample = `
- CGNSTree
- null
- - [CGNSLibraryVersion, 3.4, [], CGNSLibraryVersion_t]
  - - BaseA
    - [3, 3]
    - - [Zone1, null, [[Flow, null, [], FlowSolution_t]], Zone_t]
      - [Zone2, null, [], Zone_t]
    - CGNSBase_t
  - - BaseB
    - null
    - - [Zone1, null, [], Zone_t]
    - CGNSBase_t
- CGNSTree_t
`

const scopeKey scope.Key = "Owner"

// first sets the owner of a base and reports nodes that see another owner.
func first() *grammar.Grammar {
	cat := diagnostic.MustCatalog(
		diagnostic.Error("A001", "base [%s] sees owner [%s]"),
		diagnostic.Warning("A002", "zone [%s] owned by [%s]"),
	)
	g := grammar.New("A", cat)
	g.Handle("CGNSBase_t", func(v *grammar.Visit) diagnostic.Status {
		st := diagnostic.StatusGood
		if !scope.IsUndefined(v.Context.Get(scopeKey)) {
			st = v.Push("A001", v.Node.Name, v.Context.Describe(scopeKey))
		}
		v.Context.Set(scopeKey, v.Node.Name)
		return st
	})
	g.Handle("Zone_t", func(v *grammar.Visit) diagnostic.Status {
		return v.Push("A002", v.Node.Name, v.Context.Describe(scopeKey))
	})
	return g
}

func second() *grammar.Grammar {
	cat := diagnostic.MustCatalog(diagnostic.Error("B001", "zone [%s] second grammar"))
	g := grammar.New("B", cat)
	g.Handle("Zone_t", func(v *grammar.Visit) diagnostic.Status {
		if v.Node.Name == "Zone2" {
			return v.Push("B001", v.Node.Name)
		}
		return diagnostic.StatusGood
	})
	return g
}

func newRegistry(t *testing.T, gs ...grammar.Interface) *grammar.Registry {
	r := grammar.NewRegistry()
	for _, g := range gs {
		require.NoError(t, r.Add(g))
	}
	return r
}

func decode(t *testing.T, doc string) interface{} {
	raw, err := tree.Decode([]byte(doc))
	require.NoError(t, err)
	return raw
}

func TestRun_Order(t *testing.T) {
	res, err := New(newRegistry(t, first(), second())).Run(decode(t, sample))
	require.NoError(t, err)

	var paths []string
	for _, n := range res.Nodes {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{
		"/", "/CGNSLibraryVersion", "/BaseA", "/BaseA/Zone1", "/BaseA/Zone1/Flow",
		"/BaseA/Zone2", "/BaseB", "/BaseB/Zone1",
	}, paths)

	var got []string
	for _, d := range res.Log.Diagnostics() {
		got = append(got, d.Key+" "+d.Path)
	}
	// grammars run in registry order on each node
	assert.Equal(t, []string{
		"A002 /BaseA/Zone1",
		"A002 /BaseA/Zone2",
		"B001 /BaseA/Zone2",
		"A002 /BaseB/Zone1",
	}, got)
}

func TestRun_ContextIsolation(t *testing.T) {
	res, err := New(newRegistry(t, first())).Run(decode(t, sample))
	require.NoError(t, err)

	assert.Zero(t, res.Log.Count(diagnostic.SeverityError), "a base saw its sibling's owner")
	ds := res.Log.Diagnostics()
	require.Len(t, ds, 3)
	assert.Equal(t, "zone [Zone1] owned by [BaseA]", ds[0].Message)
	assert.Equal(t, "zone [Zone2] owned by [BaseA]", ds[1].Message)
	assert.Equal(t, "zone [Zone1] owned by [BaseB]", ds[2].Message)
}

func TestRun_Deterministic(t *testing.T) {
	w := New(newRegistry(t, first(), second()))
	a, err := w.Run(decode(t, sample))
	require.NoError(t, err)
	b, err := w.Run(decode(t, sample))
	require.NoError(t, err)

	assert.Equal(t, a.Log.Diagnostics(), b.Log.Diagnostics())
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_Rollup(t *testing.T) {
	res, err := New(newRegistry(t, first(), second())).Run(decode(t, sample))
	require.NoError(t, err)

	want := map[string]diagnostic.Status{
		"/":                   diagnostic.StatusFail,
		"/CGNSLibraryVersion": diagnostic.StatusOk,
		"/BaseA":              diagnostic.StatusFail,
		"/BaseA/Zone1":        diagnostic.StatusWarning,
		"/BaseA/Zone1/Flow":   diagnostic.StatusOk,
		"/BaseA/Zone2":        diagnostic.StatusFail,
		"/BaseB":              diagnostic.StatusWarning,
		"/BaseB/Zone1":        diagnostic.StatusWarning,
	}
	for path, st := range want {
		got, ok := res.StatusOf(path)
		assert.True(t, ok, path)
		assert.Equal(t, st, got, path)
	}
	base, _ := res.StatusOf("/BaseB")
	assert.Equal(t, diagnostic.StatusWarning, base)
	assert.Equal(t, diagnostic.StatusGood, res.Nodes[6].Local)
	assert.Equal(t, diagnostic.StatusFail, res.Worst())
	assert.True(t, res.HasErrors())

	// a node never rolls up below any of its children
	byPath := map[string]diagnostic.Status{}
	for _, n := range res.Nodes {
		byPath[n.Path] = n.Status
	}
	for _, n := range res.Nodes {
		if n.Parent != "" {
			assert.GreaterOrEqual(t, int(byPath[n.Parent]), int(n.Status), n.Path)
		}
	}
}

func TestRun_DuplicateSiblingNames(t *testing.T) {
	cat := diagnostic.MustCatalog(diagnostic.Error("E001", "base [%s] has children"))
	g := grammar.New("E", cat).Handle("CGNSBase_t", func(v *grammar.Visit) diagnostic.Status {
		if len(v.Node.Children) > 0 {
			return v.Push("E001", v.Node.Name)
		}
		return diagnostic.StatusGood
	})
	doc := `[CGNSTree, null, [[Base, null, [], CGNSBase_t], [Base, null, [[Zone2, null, [], Zone_t]], CGNSBase_t]], CGNSTree_t]`
	res, err := New(newRegistry(t, g)).Run(decode(t, doc))
	require.NoError(t, err)
	require.Len(t, res.Nodes, 4)
	require.Equal(t, 1, res.Log.Len())

	empty, full := res.Nodes[1], res.Nodes[2]
	assert.Equal(t, "/Base", empty.Path)
	assert.Equal(t, diagnostic.StatusGood, empty.Local)
	assert.Equal(t, diagnostic.StatusGood, empty.Status)
	assert.Equal(t, "/Base", full.Path)
	assert.Equal(t, diagnostic.StatusFail, full.Local)
	assert.Equal(t, diagnostic.StatusFail, full.Status)
	assert.Equal(t, diagnostic.StatusOk, res.Nodes[3].Status)
	assert.Equal(t, diagnostic.StatusFail, res.Nodes[0].Status)
}

func TestRun_DiagnosticOnDescendant(t *testing.T) {
	cat := diagnostic.MustCatalog(diagnostic.Error("F001", "zone [%s] flagged from the root"))
	g := grammar.New("F", cat).Handle("CGNSTree_t", func(v *grammar.Visit) diagnostic.Status {
		return v.PushAt("/BaseA/Zone2", "F001", "Zone2")
	})
	res, err := New(newRegistry(t, g)).Run(decode(t, sample))
	require.NoError(t, err)

	for _, n := range res.Nodes {
		switch n.Path {
		case "/", "/BaseA", "/BaseA/Zone2":
			assert.Equal(t, diagnostic.StatusFail, n.Status, n.Path)
		default:
			assert.Equal(t, diagnostic.StatusOk, n.Status, n.Path)
		}
	}
	assert.Equal(t, diagnostic.StatusFail, res.Nodes[5].Local)
	assert.Equal(t, "/BaseA/Zone2", res.Nodes[5].Path)
}

func TestRun_NoAbortOnFail(t *testing.T) {
	cat := diagnostic.MustCatalog(diagnostic.Error("C001", "fail [%s]"))
	g := grammar.New("C", cat).HandleDefault(func(v *grammar.Visit) diagnostic.Status {
		return v.Push("C001", v.Node.Name)
	})
	res, err := New(newRegistry(t, g)).Run(decode(t, sample))
	require.NoError(t, err)
	assert.Equal(t, len(res.Nodes), res.Log.Len())
	for _, n := range res.Nodes {
		assert.Equal(t, diagnostic.StatusFail, n.Status)
	}
}

func TestRun_MalformedRoot(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"absent", "null"},
		{"not a sequence", "CGNSTree"},
		{"children not a sequence", "[CGNSTree, null, Base, CGNSTree_t]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(newRegistry(t, first())).Run(decode(t, tt.doc))
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tree.ErrMalformedTree), "got %v", err)
		})
	}
	_, err := New(newRegistry(t)).RunTree(nil)
	assert.True(t, errors.Is(err, tree.ErrMalformedTree))
}

func TestRun_RecoversChildrenOfMalformedNode(t *testing.T) {
	doc := `[CGNSTree, null, [[Base, true, [[Zone, null, [], Zone_t]], CGNSBase_t]], CGNSTree_t]`
	res, err := New(newRegistry(t, first())).Run(decode(t, doc))
	require.NoError(t, err)
	require.Len(t, res.Nodes, 3)
	assert.Equal(t, "/Base/Zone", res.Nodes[2].Path)
}

func TestRun_ContractViolation(t *testing.T) {
	cat := diagnostic.MustCatalog(diagnostic.Error("D001", "two [%s] [%s]"))
	tests := []struct {
		name string
		push func(v *grammar.Visit) diagnostic.Status
		want error
	}{
		{"unknown key", func(v *grammar.Visit) diagnostic.Status { return v.Push("D999") }, diagnostic.ErrUnknownDiagnosticKey},
		{"bad args", func(v *grammar.Visit) diagnostic.Status { return v.Push("D001", "one") }, diagnostic.ErrMalformedDiagnosticArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grammar.New("D", cat).Handle("Zone_t", tt.push)
			res, err := New(newRegistry(t, g)).Run(decode(t, sample))
			assert.Nil(t, res)
			var ce *diagnostic.ContractError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, "/BaseA/Zone1", ce.Path)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestRun_OtherPanicsPropagate(t *testing.T) {
	g := grammar.New("P", nil).Handle("Zone_t", func(v *grammar.Visit) diagnostic.Status {
		panic("boom")
	})
	assert.PanicsWithValue(t, "boom", func() {
		_, _ = New(newRegistry(t, g)).Run(decode(t, sample))
	})
}
