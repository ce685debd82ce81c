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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Factory builds a user grammar. It gets the registry holding the grammars
// registered so far so the new grammar can delegate to them.
type Factory func(r *Registry) (Interface, error)

// FileLoader builds a grammar from an extension file.
type FileLoader func(file string, r *Registry) (Interface, error)

var (
	factories = make(map[string]Factory)
	loaders   = make(map[string]FileLoader)
)

// candidates is the lookup order of extension files in a search directory.
var candidates = []string{".yaml", ".yml", ".toml", ".so"}

// RegisterFactory makes an in-process grammar available under id.
func RegisterFactory(id string, factory Factory) {
	if factory == nil {
		panic("Must not provide nil grammar factory")
	}
	if _, registered := factories[id]; registered {
		panic(fmt.Sprintf("grammar factory named %s already registered", id))
	}
	factories[id] = factory
}

// RegisterFileLoader installs the loader for files with extension ext.
func RegisterFileLoader(ext string, loader FileLoader) {
	if loader == nil {
		panic("Must not provide nil grammar file loader")
	}
	known := false
	for _, c := range candidates {
		if c == ext {
			known = true
		}
	}
	if !known {
		panic(fmt.Sprintf("grammar file extension %s is not supported", ext))
	}
	if _, registered := loaders[ext]; registered {
		panic(fmt.Sprintf("grammar file loader for %s already registered", ext))
	}
	loaders[ext] = loader
}

// Load finds and builds the user grammar id. In-process factories are tried
// first, then <dir>/<id>.yaml, .yml, .toml and .so in each search directory.
func Load(id string, searchPath []string, r *Registry) (Interface, error) {
	if f, ok := factories[id]; ok {
		logrus.Debugf("building grammar %s from registered factory", id)
		return build(id, "factory", func() (Interface, error) { return f(r) })
	}
	for _, dir := range searchPath {
		for _, ext := range candidates {
			loader, ok := loaders[ext]
			if !ok {
				continue
			}
			file := filepath.Join(dir, id+ext)
			if fi, err := os.Stat(file); err != nil || fi.IsDir() {
				continue
			}
			logrus.Debugf("loading grammar %s from %s", id, file)
			return build(id, file, func() (Interface, error) { return loader(file, r) })
		}
	}
	return nil, errors.Wrapf(ErrUnknownGrammar, "grammar %s not found in %s", id, strings.Join(searchPath, ":"))
}

func build(id, source string, fn func() (Interface, error)) (Interface, error) {
	g, err := fn()
	if err != nil {
		if errors.Is(err, ErrInvalidGrammarExtension) {
			return nil, errors.Wrapf(err, "grammar %s from %s", id, source)
		}
		return nil, errors.Wrapf(ErrInvalidGrammarExtension, "grammar %s from %s: %v", id, source, err)
	}
	if g == nil {
		return nil, errors.Wrapf(ErrInvalidGrammarExtension, "grammar %s from %s is nil", id, source)
	}
	if g.ID() != id {
		return nil, errors.Wrapf(ErrInvalidGrammarExtension, "grammar from %s has id %q, want %q", source, g.ID(), id)
	}
	return g, nil
}

// Discoverable lists the ids Load can find: registered factories plus
// extension files in the search path, sorted and without duplicates.
func Discoverable(searchPath []string) []string {
	seen := map[string]bool{}
	for id := range factories {
		seen[id] = true
	}
	for _, dir := range searchPath {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := filepath.Ext(e.Name())
			if _, ok := loaders[ext]; !ok {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ext)] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
