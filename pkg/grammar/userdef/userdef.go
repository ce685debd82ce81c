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

// Package userdef builds user grammars from declarative rule files written
// in YAML or TOML. Importing it makes Load find <id>.yaml, <id>.yml and
// <id>.toml files in the grammar search path.
package userdef

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
)

func init() {
	grammar.RegisterFileLoader(".yaml", Load)
	grammar.RegisterFileLoader(".yml", Load)
	grammar.RegisterFileLoader(".toml", Load)
}

// File is the content of a rule file.
type File struct {
	ID          string  `yaml:"id" toml:"id"`
	Description string  `yaml:"description" toml:"description"`
	Extends     string  `yaml:"extends" toml:"extends"`
	Diagnostics []Entry `yaml:"diagnostics" toml:"diagnostics"`
	Rules       []Rule  `yaml:"rules" toml:"rules"`
}

type Entry struct {
	Key      string `yaml:"key" toml:"key"`
	Severity string `yaml:"severity" toml:"severity"`
	Message  string `yaml:"message" toml:"message"`
}

// Rule applies one check to the nodes of a type that match its conditions.
type Rule struct {
	Type        string                 `yaml:"type" toml:"type"`
	Name        string                 `yaml:"name" toml:"name"`
	NamePattern string                 `yaml:"namePattern" toml:"namePattern"`
	When        map[string]interface{} `yaml:"when" toml:"when"`

	RequireChildren []string      `yaml:"requireChildren" toml:"requireChildren"`
	ForbidChildren  []string      `yaml:"forbidChildren" toml:"forbidChildren"`
	AllowedValues   []interface{} `yaml:"allowedValues" toml:"allowedValues"`
	ValueRange      *Range        `yaml:"valueRange" toml:"valueRange"`

	Diagnostic string `yaml:"diagnostic" toml:"diagnostic"`
}

type Range struct {
	Min *float64 `yaml:"min" toml:"min"`
	Max *float64 `yaml:"max" toml:"max"`
}

// Grammar is a grammar built from a rule file.
type Grammar struct {
	*grammar.Grammar
	Description string
}

// Load reads a rule file and builds its grammar. The grammar named by
// extends must already be in r.
func Load(file string, r *grammar.Registry) (grammar.Interface, error) {
	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, err
	}
	var f *File
	switch ext := filepath.Ext(file); ext {
	case ".yaml", ".yml":
		f, err = DecodeYAML(data)
	case ".toml":
		f, err = DecodeTOML(data)
	default:
		return nil, errors.Wrapf(grammar.ErrInvalidGrammarExtension, "unsupported rule file extension %s", ext)
	}
	if err != nil {
		return nil, err
	}
	return Build(f, r)
}

// DecodeYAML decodes a YAML rule file. Unknown fields are errors.
func DecodeYAML(data []byte) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		return nil, errors.Wrapf(grammar.ErrInvalidGrammarExtension, "decode rule file: %v", err)
	}
	return f, nil
}

// DecodeTOML decodes a TOML rule file. Unknown keys are errors.
func DecodeTOML(data []byte) (*File, error) {
	f := &File{}
	md, err := toml.Decode(string(data), f)
	if err != nil {
		return nil, errors.Wrapf(grammar.ErrInvalidGrammarExtension, "decode rule file: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Wrapf(grammar.ErrInvalidGrammarExtension, "unknown keys in rule file: %s", strings.Join(keys, ", "))
	}
	return f, nil
}

// Build checks a decoded rule file and builds its grammar. Every problem
// found is reported, wrapped in grammar.ErrInvalidGrammarExtension.
func Build(f *File, r *grammar.Registry) (*Grammar, error) {
	var result *multierror.Error
	fail := func(format string, args ...interface{}) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if f.ID == "" {
		fail("grammar id is empty")
	}

	entries := make([]diagnostic.Entry, 0, len(f.Diagnostics))
	for _, e := range f.Diagnostics {
		sev, err := diagnostic.ParseSeverity(e.Severity)
		if err != nil {
			fail("diagnostic %s: %v", e.Key, err)
			continue
		}
		entries = append(entries, diagnostic.Entry{Key: e.Key, Severity: sev, Template: e.Message})
	}
	catalog, err := diagnostic.NewCatalog(entries...)
	if err != nil {
		fail("%v", err)
	}

	var base grammar.Interface
	if f.Extends != "" {
		g, ok := r.Get(f.Extends)
		if !ok {
			fail("extended grammar %s is not registered", f.Extends)
		}
		base = g
	}

	used := map[string]bool{}
	compiled := make([]*rule, 0, len(f.Rules))
	for i, def := range f.Rules {
		c, err := compile(def, catalog)
		if err != nil {
			fail("rule %d (%s): %v", i+1, def.Type, err)
			continue
		}
		used[def.Diagnostic] = true
		compiled = append(compiled, c)
	}
	for _, e := range f.Diagnostics {
		if !used[e.Key] {
			fail("diagnostic %s is not used by any rule", e.Key)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Wrapf(grammar.ErrInvalidGrammarExtension, "grammar %s: %v", f.ID, err)
	}

	g := &Grammar{Grammar: grammar.New(f.ID, catalog), Description: f.Description}
	byType := map[string][]*rule{}
	var tags []string
	for _, c := range compiled {
		if _, ok := byType[c.Type]; !ok {
			tags = append(tags, c.Type)
		}
		byType[c.Type] = append(byType[c.Type], c)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		rules := byType[tag]
		g.Handle(tag, func(v *grammar.Visit) diagnostic.Status {
			st := diagnostic.StatusGood
			if base != nil {
				st = st.Worst(grammar.Delegate(base, v))
			}
			for _, c := range rules {
				if c.matches(v) {
					st = st.Worst(c.check(v))
				}
			}
			return st
		})
	}
	return g, nil
}

// compile checks a rule against the catalog.
func compile(def Rule, catalog *diagnostic.Catalog) (*rule, error) {
	c := &rule{Rule: def}
	if def.Type == "" {
		return nil, errors.New("type is empty")
	}
	kinds := 0
	if len(def.RequireChildren) > 0 {
		kinds++
		c.check = c.requireChildren
	}
	if len(def.ForbidChildren) > 0 {
		kinds++
		c.check = c.forbidChildren
	}
	if len(def.AllowedValues) > 0 {
		kinds++
		c.check = c.allowedValues
	}
	if def.ValueRange != nil {
		kinds++
		c.check = c.valueRange
		if def.ValueRange.Min == nil && def.ValueRange.Max == nil {
			return nil, errors.New("valueRange needs min or max")
		}
		if def.ValueRange.Min != nil && def.ValueRange.Max != nil && *def.ValueRange.Min > *def.ValueRange.Max {
			return nil, errors.Errorf("valueRange min %g is greater than max %g", *def.ValueRange.Min, *def.ValueRange.Max)
		}
	}
	if kinds != 1 {
		return nil, errors.Errorf("rule has %d checks, exactly one is required", kinds)
	}

	if catalog == nil {
		return nil, errors.New("no valid diagnostics")
	}
	e, ok := catalog.Entry(def.Diagnostic)
	if !ok {
		return nil, errors.Errorf("diagnostic %q is not declared", def.Diagnostic)
	}
	if e.Arity() != checkArity {
		return nil, errors.Errorf("diagnostic %s takes %d arguments, the check gives %d", e.Key, e.Arity(), checkArity)
	}

	if def.NamePattern != "" {
		re, err := regexp.Compile(def.NamePattern)
		if err != nil {
			return nil, errors.Wrap(err, "namePattern")
		}
		c.pattern = re
	}
	return c, nil
}
