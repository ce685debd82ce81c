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

package userdef

import (
	"fmt"
	"regexp"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/scope"
)

// Every check pushes two arguments: (name, type) for the children checks and
// (value, name) for the value checks.
const checkArity = 2

type rule struct {
	Rule
	pattern *regexp.Regexp
	check   func(v *grammar.Visit) diagnostic.Status
}

func (c *rule) matches(v *grammar.Visit) bool {
	n := v.Node
	if c.Name != "" && n.Name != c.Name {
		return false
	}
	if c.pattern != nil && !c.pattern.MatchString(n.Name) {
		return false
	}
	for key, want := range c.When {
		got, ok := v.Context.Lookup(scope.Key(key))
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func (c *rule) requireChildren(v *grammar.Visit) diagnostic.Status {
	st := diagnostic.StatusGood
	for _, tag := range c.RequireChildren {
		if !v.Node.HasChildType(tag) {
			st = st.Worst(v.Push(c.Diagnostic, v.Node.Name, tag))
		}
	}
	return st
}

func (c *rule) forbidChildren(v *grammar.Visit) diagnostic.Status {
	st := diagnostic.StatusGood
	for _, ch := range v.Node.Children {
		for _, tag := range c.ForbidChildren {
			if ch.Type == tag {
				st = st.Worst(v.Push(c.Diagnostic, ch.Name, tag))
			}
		}
	}
	return st
}

func (c *rule) allowedValues(v *grammar.Visit) diagnostic.Status {
	value := v.Node.Value.String()
	for _, allowed := range c.AllowedValues {
		if fmt.Sprint(allowed) == value {
			return diagnostic.StatusGood
		}
	}
	return v.Push(c.Diagnostic, value, v.Node.Name)
}

func (c *rule) valueRange(v *grammar.Visit) diagnostic.Status {
	values, ok := v.Node.Value.Reals()
	if !ok {
		return v.Push(c.Diagnostic, v.Node.Value, v.Node.Name)
	}
	r := c.ValueRange
	for _, x := range values {
		if (r.Min != nil && x < *r.Min) || (r.Max != nil && x > *r.Max) {
			return v.Push(c.Diagnostic, x, v.Node.Name)
		}
	}
	return diagnostic.StatusGood
}
