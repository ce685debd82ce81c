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


// Package checker wires the built-in grammars, the configured user grammars
// and the tree walker into file level validation.
package checker

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/grammar"
	"github.com/sealerio/cgnsval/pkg/grammar/generic"
	"github.com/sealerio/cgnsval/pkg/grammar/sids"
	_ "github.com/sealerio/cgnsval/pkg/grammar/userdef"
	"github.com/sealerio/cgnsval/pkg/tree"
	"github.com/sealerio/cgnsval/pkg/walker"
)

// BuiltIn are the grammar ids every run starts with, in evaluation order.
var BuiltIn = []string{generic.ID, sids.ID}

// NewRegistry registers G and S, then every grammar of opts.Grammars found
// by grammar.Load. Failing user grammars are skipped with a warning when
// opts.IgnoreExtensionErrors is set, otherwise they are all reported.
func NewRegistry(opts Options) (*grammar.Registry, error) {
	r := grammar.NewRegistry()
	if err := r.Add(generic.New(generic.Options{
		StrictNames:    opts.StrictNames,
		MinimumVersion: opts.MinimumVersion,
	})); err != nil {
		return nil, err
	}
	if err := r.Add(sids.New()); err != nil {
		return nil, err
	}

	var result *multierror.Error
	for _, id := range opts.Grammars {
		if _, ok := r.Get(id); ok {
			logrus.Debugf("grammar %s is already registered", id)
			continue
		}
		g, err := grammar.Load(id, opts.SearchPath, r)
		if err == nil {
			err = r.Add(g)
		}
		if err == nil {
			continue
		}
		if opts.IgnoreExtensionErrors {
			logrus.Warnf("skip grammar %s: %v", id, err)
			continue
		}
		result = multierror.Append(result, err)
	}
	return r, result.ErrorOrNil()
}

type Checker struct {
	opts     Options
	registry *grammar.Registry
}

// New completes opts and builds the registry shared by every check.
func New(opts Options) (*Checker, error) {
	opts, err := opts.Complete()
	if err != nil {
		return nil, err
	}
	r, err := NewRegistry(opts)
	if err != nil {
		return nil, err
	}
	return &Checker{opts: opts, registry: r}, nil
}

func (c *Checker) Options() Options {
	return c.opts
}

func (c *Checker) Registry() *grammar.Registry {
	return c.registry
}

// Check loads file and walks it with every registered grammar.
func (c *Checker) Check(file string) (*walker.Result, error) {
	raw, err := tree.LoadFile(file)
	if err != nil {
		return nil, err
	}
	res, err := walker.New(c.registry, walker.WithFields(logrus.Fields{"file": file})).Run(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check %s", file)
	}
	return res, nil
}

// FileResult is the outcome of one file of CheckFiles. Err holds the run
// error of that file only.
type FileResult struct {
	File   string
	Result *walker.Result
	Err    error
}

// CheckFiles checks files concurrently, at most Options.Jobs at a time.
// Results keep the order of files. done, when not nil, is called once per
// finished file, never concurrently. The returned error is only set when
// ctx ends before every file is checked.
func (c *Checker) CheckFiles(ctx context.Context, files []string, done func(FileResult)) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	if c.opts.Jobs > 0 {
		eg.SetLimit(c.opts.Jobs)
	}
	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.Check(file)
			results[i] = FileResult{File: file, Result: res, Err: err}
			if done != nil {
				mu.Lock()
				done(results[i])
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ListCatalog returns the diagnostics grammar id can push, in declaration
// order. User grammars are loaded from opts the way a check would.
func ListCatalog(id string, opts Options) ([]diagnostic.Entry, error) {
	opts, err := opts.Complete()
	if err != nil {
		return nil, err
	}
	opts.Grammars = nil
	r, err := NewRegistry(opts)
	if err != nil {
		return nil, err
	}
	if _, ok := r.Get(id); !ok {
		g, err := grammar.Load(id, opts.SearchPath, r)
		if err != nil {
			return nil, err
		}
		if err := r.Add(g); err != nil {
			return nil, err
		}
	}
	return r.List(id)
}

// Grammars groups the grammar ids known to a configuration.
type Grammars struct {
	BuiltIn      []string `json:"builtIn" yaml:"builtIn"`
	Discoverable []string `json:"discoverable,omitempty" yaml:"discoverable,omitempty"`
}

// AvailableGrammars lists the built-in ids and the user grammars that can be
// found through registered factories or in the search path.
func AvailableGrammars(opts Options) (Grammars, error) {
	opts, err := opts.Complete()
	if err != nil {
		return Grammars{}, err
	}
	return Grammars{
		BuiltIn:      append([]string(nil), BuiltIn...),
		Discoverable: grammar.Discoverable(opts.SearchPath),
	}, nil
}
