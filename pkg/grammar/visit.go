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

package grammar

import (
	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/scope"
	"github.com/sealerio/cgnsval/pkg/tree"
)

// Visit is what a handler sees of the node being checked.
type Visit struct {
	Path    string
	Node    *tree.Node
	Parent  *tree.Node
	Tree    *tree.Node
	Depth   int
	Context *scope.Store
	Log     *diagnostic.Log
}

// Push records a diagnostic at the visited path.
func (v *Visit) Push(key string, args ...interface{}) diagnostic.Status {
	return v.Log.Push(v.Path, key, args...)
}

// PushAt records a diagnostic at another path, typically a child the handler
// inspected without visiting it.
func (v *Visit) PushAt(path, key string, args ...interface{}) diagnostic.Status {
	return v.Log.Push(path, key, args...)
}

// Child returns the visit of a child of the visited node.
func (v *Visit) Child(n *tree.Node) *Visit {
	return &Visit{
		Path:    tree.Join(v.Path, n.Name),
		Node:    n,
		Parent:  v.Node,
		Tree:    v.Tree,
		Depth:   v.Depth + 1,
		Context: v.Context,
		Log:     v.Log,
	}
}

// IsRoot reports whether the visited node is the tree root.
func (v *Visit) IsRoot() bool {
	return v.Parent == nil
}

// ParentName is the name of the parent node, the root path for the root.
func (v *Visit) ParentName() string {
	if v.Parent == nil {
		return tree.RootPath
	}
	return v.Parent.Name
}
