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
	"strings"
)

// RootPath is the path of the tree root node.
const RootPath = "/"

// FaultKind names a structural problem found while building a node from its
// raw form.
type FaultKind int

const (
	FaultEmpty FaultKind = iota + 1
	FaultNotSequence
	FaultArity
	FaultName
	FaultValue
	FaultDataType
	FaultChildren
	FaultType
)

func (k FaultKind) String() string {
	switch k {
	case FaultEmpty:
		return "empty"
	case FaultNotSequence:
		return "not-sequence"
	case FaultArity:
		return "arity"
	case FaultName:
		return "name"
	case FaultValue:
		return "value"
	case FaultDataType:
		return "data-type"
	case FaultChildren:
		return "children"
	case FaultType:
		return "type"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Fault is a structural problem of a single node. Detail quotes the offending
// raw item.
type Fault struct {
	Kind   FaultKind
	Detail string
}

// Node is a CGNS tree node: name, value, ordered children and type tag.
// Nodes built by FromRaw carry the structural faults of their raw form.
type Node struct {
	Name     string
	Value    *Array
	Children []*Node
	Type     string
	Faults   []Fault
}

// New builds a well-formed node.
func New(name, typ string, value *Array, children ...*Node) *Node {
	return &Node{Name: name, Type: typ, Value: value, Children: children}
}

// AddChild appends c to the children of n and returns c.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// Fault returns the fault of the given kind, if any.
func (n *Node) Fault(kind FaultKind) (Fault, bool) {
	for _, f := range n.Faults {
		if f.Kind == kind {
			return f, true
		}
	}
	return Fault{}, false
}

// Malformed is true when the raw form of the node had any structural fault.
func (n *Node) Malformed() bool {
	return len(n.Faults) > 0
}

// ChildrenByType returns the children with the given type tag, in order.
func (n *Node) ChildrenByType(typ string) []*Node {
	if n == nil {
		return nil
	}
	var r []*Node
	for _, c := range n.Children {
		if c.Type == typ {
			r = append(r, c)
		}
	}
	return r
}

// ChildByName returns the first child named name.
func (n *Node) ChildByName(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasChildType reports whether one of the children has the given type tag.
func (n *Node) HasChildType(typ string) bool {
	return len(n.ChildrenByType(typ)) > 0
}

// Join returns the path of a child named name below parent.
func Join(parent, name string) string {
	if parent == RootPath || parent == "" {
		return RootPath + name
	}
	return parent + "/" + name
}

// Split returns the names along path, root excluded.
func Split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Ancestor returns the path of the ancestor at the given depth, depth 1 being
// a child of the root. The path itself is returned when it is not that deep.
func Ancestor(path string, depth int) string {
	names := Split(path)
	if depth >= len(names) {
		return path
	}
	if depth <= 0 {
		return RootPath
	}
	return RootPath + strings.Join(names[:depth], "/")
}

// Leaf returns the last name of path.
func Leaf(path string) string {
	names := Split(path)
	if len(names) == 0 {
		return ""
	}
	return names[len(names)-1]
}

// Find resolves path from root. The first child with a matching name is taken
// at each level.
func Find(root *Node, path string) *Node {
	n := root
	for _, name := range Split(path) {
		n = n.ChildByName(name)
		if n == nil {
			return nil
		}
	}
	return n
}
