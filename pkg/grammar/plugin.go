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
	"plugin"

	"github.com/pkg/errors"
)

// Symbol is the name a grammar plugin exports its Factory under.
const Symbol = "Grammar"

func init() {
	RegisterFileLoader(".so", loadOutOfTree)
}

func loadOutOfTree(soFile string, r *Registry) (Interface, error) {
	plug, err := plugin.Open(soFile)
	if err != nil {
		return nil, err
	}
	//look up the exposed variable named `Grammar`
	symbol, err := plug.Lookup(Symbol)
	if err != nil {
		return nil, err
	}

	var f Factory
	switch s := symbol.(type) {
	case func(*Registry) (Interface, error):
		f = s
	case *Factory:
		f = *s
	case *func(*Registry) (Interface, error):
		f = *s
	default:
		return nil, errors.Wrapf(ErrInvalidGrammarExtension, "symbol %s has type %T", Symbol, symbol)
	}
	if f == nil {
		return nil, errors.Wrapf(ErrInvalidGrammarExtension, "symbol %s is nil", Symbol)
	}
	return f(r)
}
