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

// Package generic is the structural grammar "G": node shape, names, type tags
// and the root node layout. It applies to every node whatever its type.
package generic

import (
	"regexp"
	"strconv"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/tree"
)

const ID = "G"

const (
	LibraryVersionName = "CGNSLibraryVersion"
	LibraryVersionType = "CGNSLibraryVersion_t"
	BaseType           = "CGNSBase_t"
	TreeType           = "CGNSTree_t"

	DefaultMinimumVersion = 2.4
)

// Catalog is the G series.
var Catalog = diagnostic.MustCatalog(
	diagnostic.Warning("G001", "CGNSLibraryVersion [%s] is too old for current check level"),
	diagnostic.Error("G002", "CGNSLibraryVersion is incorrect"),
	diagnostic.Error("G003", "Name [%s] is not valid"),
	diagnostic.Error("G004", "Name [%s] is a duplicated child name"),
	diagnostic.Error("G005", "Node type [%s] is not a valid type tag"),
	diagnostic.Error("G006", "Node value is not an array or absent (child of [%s])"),
	diagnostic.Error("G007", "Node children is not a sequence (child of [%s])"),
	diagnostic.Error("G008", "Node name is not a string (child of [%s])"),
	diagnostic.Error("G009", "Node is not a sequence of 4 items (child of [%s])"),
	diagnostic.Error("G010", "Node is empty or absent (child of [%s])"),
	diagnostic.Warning("G011", "Name [%s] is not safe"),
	diagnostic.Error("G012", "Root child [%s] should be CGNSLibraryVersion_t or CGNSBase_t"),
	diagnostic.Error("G013", "More than one CGNSLibraryVersion node at root"),
	diagnostic.Error("G014", "Node value data type [%s] is not supported"),
	diagnostic.Warning("G015", "Root node type [%s] is not CGNSTree_t"),
)

// Options tune the structural checks.
type Options struct {
	// StrictNames adds the G011 warning for names that are valid but unsafe.
	StrictNames bool
	// MinimumVersion is the oldest CGNSLibraryVersion accepted without G001.
	MinimumVersion float64
}

func DefaultOptions() Options {
	return Options{MinimumVersion: DefaultMinimumVersion}
}

var typeTag = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\[[^\]/ ]+\])?$`)

type checker struct {
	opts Options
}

// New returns the G grammar. A zero MinimumVersion takes the default.
func New(opts Options) *grammar.Grammar {
	if opts.MinimumVersion == 0 {
		opts.MinimumVersion = DefaultMinimumVersion
	}
	c := &checker{opts: opts}
	return grammar.New(ID, Catalog).HandleDefault(c.check)
}

func (c *checker) check(v *grammar.Visit) diagnostic.Status {
	st := diagnostic.StatusGood
	n := v.Node
	parent := v.ParentName()

	if n.Malformed() {
		st = st.Worst(c.faults(v, parent))
		if _, ok := n.Fault(tree.FaultEmpty); ok {
			return st
		}
		if _, ok := n.Fault(tree.FaultNotSequence); ok {
			return st
		}
	}

	if !v.IsRoot() {
		if _, bad := n.Fault(tree.FaultName); !bad {
			st = st.Worst(c.name(v))
		}
	}
	if _, bad := n.Fault(tree.FaultType); !bad && !typeTag.MatchString(n.Type) {
		st = st.Worst(v.Push("G005", n.Type))
	}
	st = st.Worst(duplicates(v))

	if v.IsRoot() {
		st = st.Worst(c.root(v))
	}
	if n.Type == LibraryVersionType {
		st = st.Worst(c.version(v))
	}
	return st
}

func (c *checker) faults(v *grammar.Visit, parent string) diagnostic.Status {
	st := diagnostic.StatusOk
	for _, f := range v.Node.Faults {
		switch f.Kind {
		case tree.FaultEmpty:
			st = st.Worst(v.Push("G010", parent))
		case tree.FaultNotSequence, tree.FaultArity:
			st = st.Worst(v.Push("G009", parent))
		case tree.FaultName:
			st = st.Worst(v.Push("G008", parent))
		case tree.FaultValue:
			st = st.Worst(v.Push("G006", parent))
		case tree.FaultChildren:
			st = st.Worst(v.Push("G007", parent))
		case tree.FaultDataType:
			st = st.Worst(v.Push("G014", f.Detail))
		case tree.FaultType:
			st = st.Worst(v.Push("G005", f.Detail))
		}
	}
	return st
}

func (c *checker) name(v *grammar.Visit) diagnostic.Status {
	name := v.Node.Name
	if !ValidName(name) {
		return v.Push("G003", name)
	}
	if c.opts.StrictNames && !SafeName(name) {
		return v.Push("G011", name)
	}
	return diagnostic.StatusGood
}

// duplicates reports children sharing a name, once per name.
func duplicates(v *grammar.Visit) diagnostic.Status {
	st := diagnostic.StatusOk
	seen := map[string]int{}
	for _, ch := range v.Node.Children {
		if _, bad := ch.Fault(tree.FaultName); bad {
			continue
		}
		seen[ch.Name]++
		if seen[ch.Name] == 2 {
			st = st.Worst(v.Push("G004", ch.Name))
		}
	}
	return st
}

func (c *checker) root(v *grammar.Visit) diagnostic.Status {
	st := diagnostic.StatusOk
	n := v.Node
	if n.Type != TreeType {
		st = st.Worst(v.Push("G015", n.Type))
	}
	versions := 0
	for _, ch := range n.Children {
		if ch.Malformed() && ch.Type == "" {
			continue
		}
		switch {
		case ch.Name == LibraryVersionName && ch.Type == LibraryVersionType:
			versions++
			if versions == 2 {
				st = st.Worst(v.Push("G013"))
			}
		case ch.Type != BaseType:
			st = st.Worst(v.Push("G012", ch.Name))
		}
	}
	return st
}

func (c *checker) version(v *grammar.Visit) diagnostic.Status {
	reals, ok := v.Node.Value.Reals()
	if !ok || !v.Node.Value.IsReal() || len(reals) != 1 {
		return v.Push("G002")
	}
	if reals[0] < c.opts.MinimumVersion {
		return v.Push("G001", strconv.FormatFloat(reals[0], 'g', -1, 64))
	}
	return diagnostic.StatusGood
}
