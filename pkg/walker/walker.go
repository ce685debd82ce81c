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

// Package walker runs the grammars of a registry over a tree.
package walker

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/scope"
	"github.com/sealerio/cgnsval/pkg/tree"
)

type Option func(*Walker)

// WithFields adds fields to the walker log entries, typically the file name.
func WithFields(fields logrus.Fields) Option {
	return func(w *Walker) {
		for k, v := range fields {
			w.fields[k] = v
		}
	}
}

// Walker visits a tree in pre-order and dispatches every node to the
// registered grammars. A Walker may run several trees, one at a time.
type Walker struct {
	registry *grammar.Registry
	fields   logrus.Fields
}

func New(registry *grammar.Registry, opts ...Option) *Walker {
	w := &Walker{registry: registry, fields: logrus.Fields{}}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run builds the tree from its raw form and walks it. A root that cannot be
// used fails with tree.ErrMalformedTree and no result.
func (w *Walker) Run(raw interface{}) (*Result, error) {
	root, err := tree.FromRaw(raw)
	if err != nil {
		return nil, err
	}
	return w.RunTree(root)
}

// RunTree walks root. Data problems end up in the result log; the error is
// reserved for runs that could not complete, such as a grammar pushing an
// undeclared diagnostic.
func (w *Walker) RunTree(root *tree.Node) (res *Result, err error) {
	if root == nil {
		return nil, errors.Wrap(tree.ErrMalformedTree, "root node is absent")
	}
	id := uuid.New()
	entry := logrus.WithFields(w.fields).WithFields(logrus.Fields{
		"run":      id.String(),
		"grammars": w.registry.IDs(),
	})
	entry.Debug("start tree walk")

	res = &Result{RunID: id, Log: diagnostic.NewLog(w.registry)}
	r := &run{
		grammars: w.registry.Grammars(),
		result:   res,
		pending:  map[*tree.Node]diagnostic.Status{},
	}

	defer func() {
		if p := recover(); p != nil {
			ce, ok := p.(*diagnostic.ContractError)
			if !ok {
				panic(p)
			}
			entry.Debugf("grammar contract violation: %v", ce)
			res, err = nil, ce
		}
	}()

	r.visit(&grammar.Visit{
		Path:    tree.RootPath,
		Node:    root,
		Tree:    root,
		Context: scope.New(),
		Log:     res.Log,
	}, -1)
	res.rollup()

	entry.WithFields(logrus.Fields{
		"nodes":    len(res.Nodes),
		"errors":   res.Log.Count(diagnostic.SeverityError),
		"warnings": res.Log.Count(diagnostic.SeverityWarning),
	}).Debug("tree walk done")
	return res, nil
}

type run struct {
	grammars []grammar.Interface
	result   *Result
	// pending holds the statuses of diagnostics pushed on descendants that
	// are not visited yet.
	pending map[*tree.Node]diagnostic.Status
}

func (r *run) visit(v *grammar.Visit, parent int) {
	index := len(r.result.Nodes)
	ns := NodeStatus{
		Path:   v.Path,
		Type:   v.Node.Type,
		Depth:  v.Depth,
		parent: parent,
	}
	if parent >= 0 {
		ns.Parent = r.result.Nodes[parent].Path
	}

	local := r.pending[v.Node]
	delete(r.pending, v.Node)
	mark := v.Log.Len()
	for _, g := range r.grammars {
		if h, ok := g.Handler(v.Node.Type); ok {
			local = local.Worst(h(v))
		}
	}
	for _, d := range v.Log.Since(mark) {
		local = r.attribute(v, d, local)
	}
	ns.Local = local
	r.result.Nodes = append(r.result.Nodes, ns)

	for _, child := range v.Node.Children {
		token := v.Context.Snapshot()
		r.visit(v.Child(child), index)
		v.Context.Restore(token)
	}
}

// attribute charges the status of d to the node it was pushed on and returns
// the updated local status of the visited node. Diagnostics are bound to
// nodes while the pushing node is visited, so siblings sharing a name never
// share a status.
func (r *run) attribute(v *grammar.Visit, d diagnostic.Diagnostic, local diagnostic.Status) diagnostic.Status {
	st := d.Severity.Status()
	if d.Path == v.Path {
		return local.Worst(st)
	}
	prefix := v.Path
	if prefix != tree.RootPath {
		prefix += "/"
	}
	if strings.HasPrefix(d.Path, prefix) {
		if n := tree.Find(v.Node, strings.TrimPrefix(d.Path, prefix)); n != nil {
			r.pending[n] = r.pending[n].Worst(st)
			return local
		}
	}
	for i := len(r.result.Nodes) - 1; i >= 0; i-- {
		if n := &r.result.Nodes[i]; n.Path == d.Path {
			n.Local = n.Local.Worst(st)
			return local
		}
	}
	return local.Worst(st)
}
