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

// Package scope holds the context store threaded through a tree walk. Values
// set while a node is visited are seen by that node and its descendants only:
// the walker snapshots the store before each child and restores it after.
package scope

import (
	"fmt"
	"sort"
	"strconv"
)

// Key names a context attribute.
type Key string

// Standard keys set and read by the built-in grammars. User grammars may use
// their own keys.
const (
	CellDimension       Key = "CellDimension"
	PhysicalDimension   Key = "PhysicalDimension"
	IndexDimension      Key = "IndexDimension"
	ZoneType            Key = "ZoneType"
	VertexCount         Key = "VertexCount"
	CellCount           Key = "CellCount"
	ElementType         Key = "ElementType"
	ElementSizeBoundary Key = "ElementSizeBoundary"
	ElementCount        Key = "ElementCount"
	GridLocation        Key = "GridLocation"
	BasePath            Key = "BasePath"
)

// StandardKeys lists the standard keys in a stable order.
var StandardKeys = []Key{
	CellDimension, PhysicalDimension, IndexDimension, ZoneType, VertexCount, CellCount,
	ElementType, ElementSizeBoundary, ElementCount, GridLocation, BasePath,
}

type undefined struct{}

func (undefined) String() string { return "Undefined" }

// Undefined is returned by Get for a key that is not set in the current scope.
var Undefined interface{} = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v interface{}) bool {
	_, ok := v.(undefined)
	return ok
}

type change struct {
	key     Key
	prev    interface{}
	defined bool
}

// Store is the context store. It is owned by one walker and is not safe for
// concurrent use.
type Store struct {
	values  map[Key]interface{}
	journal []change
}

func New() *Store {
	return &Store{values: map[Key]interface{}{}}
}

// Token identifies a snapshot.
type Token int

// Set binds key to value in the current scope.
func (s *Store) Set(key Key, value interface{}) {
	prev, defined := s.values[key]
	s.journal = append(s.journal, change{key: key, prev: prev, defined: defined})
	s.values[key] = value
}

// Get returns the value bound to key, Undefined when unset.
func (s *Store) Get(key Key) interface{} {
	v, ok := s.values[key]
	if !ok {
		return Undefined
	}
	return v
}

func (s *Store) Lookup(key Key) (interface{}, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Int returns an integer value; false when unset or not an integer.
func (s *Store) Int(key Key) (int, bool) {
	switch v := s.Get(key).(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	}
	return 0, false
}

// String returns a string value; false when unset or not a string.
func (s *Store) String(key Key) (string, bool) {
	v, ok := s.Get(key).(string)
	return v, ok
}

// Describe renders a value for diagnostics, including Undefined.
func (s *Store) Describe(key Key) string {
	switch v := s.Get(key).(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// Snapshot returns a token for the current state.
func (s *Store) Snapshot() Token {
	return Token(len(s.journal))
}

// Restore undoes every Set made since the snapshot was taken. Restoring a
// token newer than the current state is a walker bug and panics.
func (s *Store) Restore(t Token) {
	if int(t) > len(s.journal) || t < 0 {
		panic(fmt.Sprintf("scope: restore to token %d, journal has %d changes", t, len(s.journal)))
	}
	for i := len(s.journal) - 1; i >= int(t); i-- {
		c := s.journal[i]
		if c.defined {
			s.values[c.key] = c.prev
		} else {
			delete(s.values, c.key)
		}
	}
	s.journal = s.journal[:t]
}

// Reset clears the store for a new run.
func (s *Store) Reset() {
	s.values = map[Key]interface{}{}
	s.journal = nil
}

// Keys returns the keys currently set, standard keys first in their order.
func (s *Store) Keys() []Key {
	var keys []Key
	seen := map[Key]bool{}
	for _, k := range StandardKeys {
		if _, ok := s.values[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var extra []Key
	for k := range s.values {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(keys, extra...)
}
