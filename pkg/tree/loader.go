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
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML or JSON tree document and returns its raw form, ready
// for FromRaw.
func LoadFile(file string) (interface{}, error) {
	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tree file %s", file)
	}
	raw, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode tree file %s", file)
	}
	return raw, nil
}

// Decode parses a YAML or JSON document. Integer and real scalars keep their
// lexical kind so that 1.0 stays a real value.
func Decode(data []byte) (interface{}, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	d := &decoder{expanding: map[*yaml.Node]bool{}}
	return d.convert(&doc)
}

// maxAliasedNodes bounds the nodes produced through alias expansion.
const maxAliasedNodes = 1 << 16

type decoder struct {
	expanding map[*yaml.Node]bool
	aliased   int
}

func (d *decoder) convert(n *yaml.Node) (interface{}, error) {
	if len(d.expanding) > 0 {
		d.aliased++
		if d.aliased > maxAliasedNodes {
			return nil, errors.Errorf("line %d: document contains excessive aliasing", n.Line)
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, errors.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
		}
		if d.expanding[n.Alias] {
			return nil, errors.Errorf("line %d: anchor %q value contains itself", n.Line, n.Value)
		}
		d.expanding[n.Alias] = true
		v, err := d.convert(n.Alias)
		delete(d.expanding, n.Alias)
		return v, err
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.convert(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := d.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, errors.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}

func scalar(n *yaml.Node) (interface{}, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return i, nil
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return math.Inf(1), nil
		case "-.inf":
			return math.Inf(-1), nil
		case ".nan":
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return f, nil
	}
	return n.Value, nil
}
