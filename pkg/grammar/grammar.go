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

// Package grammar defines rule sets checked against a tree and the registry
// that orders them for a walk.
package grammar

import (
	"sort"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
)

// Handler checks one node. It may read and write the visit context and push
// diagnostics; it never changes the tree.
type Handler func(v *Visit) diagnostic.Status

// Interface is a grammar as seen by the registry and the walker.
type Interface interface {
	ID() string
	Catalog() *diagnostic.Catalog
	// Handler returns the handler for a node type tag.
	Handler(tag string) (Handler, bool)
}

// Grammar is the usual Interface implementation: a catalog plus a handler
// table keyed by type tag, with an optional fallback for other tags.
type Grammar struct {
	id       string
	catalog  *diagnostic.Catalog
	handlers map[string]Handler
	fallback Handler
}

func New(id string, catalog *diagnostic.Catalog) *Grammar {
	return &Grammar{id: id, catalog: catalog, handlers: map[string]Handler{}}
}

func (g *Grammar) ID() string {
	return g.id
}

func (g *Grammar) Catalog() *diagnostic.Catalog {
	return g.catalog
}

// Handle sets the handler for tag, replacing any previous one.
func (g *Grammar) Handle(tag string, h Handler) *Grammar {
	g.handlers[tag] = h
	return g
}

// HandleDefault sets the handler used for tags without their own handler.
func (g *Grammar) HandleDefault(h Handler) *Grammar {
	g.fallback = h
	return g
}

func (g *Grammar) Handler(tag string) (Handler, bool) {
	if h, ok := g.handlers[tag]; ok {
		return h, true
	}
	if g.fallback != nil {
		return g.fallback, true
	}
	return nil, false
}

// Tags returns the tags with a dedicated handler, sorted.
func (g *Grammar) Tags() []string {
	tags := make([]string, 0, len(g.handlers))
	for t := range g.handlers {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Delegate runs the handler g has for the visited node type and returns its
// status, Ok when g has none. A handler composes with another grammar by
// calling Delegate explicitly.
func Delegate(g Interface, v *Visit) diagnostic.Status {
	if g == nil {
		return diagnostic.StatusOk
	}
	h, ok := g.Handler(v.Node.Type)
	if !ok {
		return diagnostic.StatusOk
	}
	return h(v)
}
