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

package diagnostic

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var keyPattern = regexp.MustCompile(`^[A-Z][0-9]{3}$`)

// Entry is one catalog line: a stable key, its severity and an unsubstituted
// message template using %s placeholders.
type Entry struct {
	Key      string   `json:"key" yaml:"key"`
	Severity Severity `json:"severity" yaml:"severity"`
	Template string   `json:"message" yaml:"message"`
}

// Error and Warning are shorthands for catalog declarations.
func Error(key, template string) Entry {
	return Entry{Key: key, Severity: SeverityError, Template: template}
}

func Warning(key, template string) Entry {
	return Entry{Key: key, Severity: SeverityWarning, Template: template}
}

// String returns the documented form of the key, e.g. S205:E.
func (e Entry) String() string {
	return e.Key + ":" + e.Severity.String()
}

// Arity is the number of %s placeholders in the template.
func (e Entry) Arity() int {
	n, _ := countVerbs(e.Template)
	return n
}

// Catalog maps the diagnostic keys of one grammar to severity and template.
// Entries keep their declaration order.
type Catalog struct {
	series  string
	entries []Entry
	index   map[string]int
}

// NewCatalog validates entries: keys are one uppercase series letter and three
// digits, unique, all of the same series; templates only use %s.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(entries))}
	var result *multierror.Error
	for _, e := range entries {
		if !keyPattern.MatchString(e.Key) {
			result = multierror.Append(result, errors.Errorf("key %q does not match series letter and three digits", e.Key))
			continue
		}
		if c.series == "" {
			c.series = e.Key[:1]
		} else if e.Key[:1] != c.series {
			result = multierror.Append(result, errors.Errorf("key %s is not in series %s", e.Key, c.series))
		}
		if _, dup := c.index[e.Key]; dup {
			result = multierror.Append(result, errors.Errorf("key %s is declared twice", e.Key))
			continue
		}
		if e.Severity != SeverityError && e.Severity != SeverityWarning {
			result = multierror.Append(result, errors.Errorf("key %s has unknown severity %d", e.Key, int(e.Severity)))
		}
		if _, err := countVerbs(e.Template); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "key %s", e.Key))
		}
		c.index[e.Key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(ErrInvalidCatalog, err.Error())
	}
	return c, nil
}

// MustCatalog is NewCatalog for built-in grammars; it panics on a bad definition.
func MustCatalog(entries ...Entry) *Catalog {
	c, err := NewCatalog(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// Series returns the key letter shared by all entries, empty for an empty catalog.
func (c *Catalog) Series() string {
	return c.series
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in declaration order.
func (c *Catalog) Entries() []Entry {
	r := make([]Entry, len(c.entries))
	copy(r, c.entries)
	return r
}

func (c *Catalog) Entry(key string) (Entry, bool) {
	i, ok := c.index[key]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Resolve builds the diagnostic for key at path. Arguments are rendered with
// fmt.Sprint before substitution.
func (c *Catalog) Resolve(path, key string, args ...interface{}) (Diagnostic, error) {
	e, ok := c.Entry(key)
	if !ok {
		return Diagnostic{}, errors.Wrapf(ErrUnknownDiagnosticKey, "key %s is not in catalog %s", key, c.series)
	}
	return e.resolve(path, args)
}

func (e Entry) resolve(path string, args []interface{}) (Diagnostic, error) {
	n, err := countVerbs(e.Template)
	if err != nil {
		return Diagnostic{}, errors.Wrapf(ErrMalformedDiagnosticArgs, "key %s: %v", e.Key, err)
	}
	if n != len(args) {
		return Diagnostic{}, errors.Wrapf(ErrMalformedDiagnosticArgs, "key %s expects %d arguments, got %d", e.Key, n, len(args))
	}
	strs := make([]interface{}, len(args))
	for i, a := range args {
		strs[i] = fmt.Sprint(a)
	}
	return Diagnostic{
		Path:     path,
		Key:      e.Key,
		Severity: e.Severity,
		Message:  fmt.Sprintf(e.Template, strs...),
	}, nil
}

func countVerbs(template string) (int, error) {
	n := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if i+1 >= len(template) {
			return 0, errors.Errorf("template %q ends with a lone %%", template)
		}
		switch template[i+1] {
		case '%':
		case 's':
			n++
		default:
			return 0, errors.Errorf("template %q uses %%%c, only %%s is supported", template, template[i+1])
		}
		i++
	}
	return n, nil
}
