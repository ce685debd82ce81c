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
	"strings"
)

// Diagnostic is one validation finding at a node path.
type Diagnostic struct {
	Path     string   `json:"path" yaml:"path"`
	Key      string   `json:"key" yaml:"key"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s:%s] %s: %s", d.Key, d.Severity, d.Path, d.Message)
}

// Resolver turns a key and its arguments into a diagnostic. A Catalog is a
// Resolver for its own keys; the grammar registry resolves across catalogs.
type Resolver interface {
	Resolve(path, key string, args ...interface{}) (Diagnostic, error)
}

// Log is the ordered, append-only record of a validation run.
type Log struct {
	resolver Resolver
	entries  []Diagnostic
}

func NewLog(r Resolver) *Log {
	return &Log{resolver: r}
}

// Push resolves key and appends the diagnostic. It returns the status implied
// by the diagnostic severity so handlers can fold it. An unknown key or a bad
// argument count is a grammar bug: Push panics with a *ContractError.
func (l *Log) Push(path, key string, args ...interface{}) Status {
	d, err := l.resolver.Resolve(path, key, args...)
	if err != nil {
		panic(&ContractError{Path: path, Key: key, Err: err})
	}
	l.entries = append(l.entries, d)
	return d.Severity.Status()
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Diagnostics returns a copy of all diagnostics in push order.
func (l *Log) Diagnostics() []Diagnostic {
	r := make([]Diagnostic, len(l.entries))
	copy(r, l.entries)
	return r
}

// Since returns a copy of the diagnostics pushed after the log had mark
// entries.
func (l *Log) Since(mark int) []Diagnostic {
	if mark < 0 {
		mark = 0
	}
	if mark >= len(l.entries) {
		return nil
	}
	r := make([]Diagnostic, len(l.entries)-mark)
	copy(r, l.entries[mark:])
	return r
}

// Count returns the number of diagnostics with the given severity.
func (l *Log) Count(s Severity) int {
	n := 0
	for _, d := range l.entries {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// StatusOf is the worst status of the diagnostics pushed exactly at path.
func (l *Log) StatusOf(path string) Status {
	st := StatusOk
	for _, d := range l.entries {
		if d.Path == path {
			st = st.Worst(d.Severity.Status())
		}
	}
	return st
}

// Rollup is the worst status of the diagnostics at path or below it.
func (l *Log) Rollup(path string) Status {
	st := StatusOk
	prefix := strings.TrimSuffix(path, "/") + "/"
	for _, d := range l.entries {
		if d.Path == path || strings.HasPrefix(d.Path, prefix) {
			st = st.Worst(d.Severity.Status())
		}
	}
	return st
}

// Group is the diagnostics of one path.
type Group struct {
	Path        string       `json:"path" yaml:"path"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// Groups returns diagnostics grouped by path, paths in order of first push.
func (l *Log) Groups() []Group {
	var groups []Group
	index := map[string]int{}
	for _, d := range l.entries {
		i, ok := index[d.Path]
		if !ok {
			i = len(groups)
			index[d.Path] = i
			groups = append(groups, Group{Path: d.Path})
		}
		groups[i].Diagnostics = append(groups[i].Diagnostics, d)
	}
	return groups
}
