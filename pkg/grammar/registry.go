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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
)

var (
	ErrDuplicateGrammarID      = errors.New("duplicate grammar id")
	ErrInvalidGrammarID        = errors.New("invalid grammar id")
	ErrDuplicateDiagnosticKey  = errors.New("duplicate diagnostic key")
	ErrUnknownGrammar          = errors.New("unknown grammar")
	ErrInvalidGrammarExtension = errors.New("invalid grammar extension")
)

// Registry is the ordered set of grammars applied in one run. It is built
// before a walk and only read during it.
type Registry struct {
	grammars []Interface
	byID     map[string]Interface
	keys     map[string]*diagnostic.Catalog
}

func NewRegistry() *Registry {
	return &Registry{
		byID: map[string]Interface{},
		keys: map[string]*diagnostic.Catalog{},
	}
}

// Add appends g to the evaluation order. The id must be new and none of the
// catalog keys may already belong to a registered grammar.
func (r *Registry) Add(g Interface) error {
	id := g.ID()
	if id == "" {
		return errors.Wrap(ErrInvalidGrammarID, "grammar id is empty")
	}
	if _, ok := r.byID[id]; ok {
		return errors.Wrapf(ErrDuplicateGrammarID, "grammar %s is already registered", id)
	}
	cat := g.Catalog()
	if cat != nil {
		for _, e := range cat.Entries() {
			if _, ok := r.keys[e.Key]; ok {
				return errors.Wrapf(ErrDuplicateDiagnosticKey, "key %s of grammar %s is already registered", e.Key, id)
			}
		}
		for _, e := range cat.Entries() {
			r.keys[e.Key] = cat
		}
	}
	r.grammars = append(r.grammars, g)
	r.byID[id] = g
	logrus.Debugf("registered grammar %s", id)
	return nil
}

func (r *Registry) Get(id string) (Interface, bool) {
	g, ok := r.byID[id]
	return g, ok
}

// Grammars returns the grammars in evaluation order.
func (r *Registry) Grammars() []Interface {
	gs := make([]Interface, len(r.grammars))
	copy(gs, r.grammars)
	return gs
}

func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.grammars))
	for _, g := range r.grammars {
		ids = append(ids, g.ID())
	}
	return ids
}

// Resolve implements diagnostic.Resolver across every registered catalog.
func (r *Registry) Resolve(path, key string, args ...interface{}) (diagnostic.Diagnostic, error) {
	cat, ok := r.keys[key]
	if !ok {
		return diagnostic.Diagnostic{}, errors.Wrapf(diagnostic.ErrUnknownDiagnosticKey, "key %s", key)
	}
	return cat.Resolve(path, key, args...)
}

// List returns the catalog entries of grammar id in declaration order.
func (r *Registry) List(id string) ([]diagnostic.Entry, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGrammar, "grammar %s is not registered", id)
	}
	if g.Catalog() == nil {
		return nil, nil
	}
	return g.Catalog().Entries(), nil
}
