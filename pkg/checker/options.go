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


package checker

import (
	"runtime"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/grammar/generic"
)

// Options select the grammars of a run and how results are shown. Bool
// fields default to false; every other zero value is replaced by the
// matching field of DefaultOptions.
type Options struct {
	// Grammars are user grammar ids, applied after G and S in this order.
	Grammars []string `json:"grammars,omitempty" yaml:"grammars,omitempty" mapstructure:"grammars"`
	// SearchPath is where user grammar files are looked up, "~" is expanded.
	SearchPath            []string `json:"searchPath,omitempty" yaml:"searchPath,omitempty" mapstructure:"searchPath"`
	StrictNames           bool     `json:"strictNames,omitempty" yaml:"strictNames,omitempty" mapstructure:"strictNames"`
	MinimumVersion        float64  `json:"minimumVersion,omitempty" yaml:"minimumVersion,omitempty" mapstructure:"minimumVersion"`
	IgnoreExtensionErrors bool     `json:"ignoreExtensionErrors,omitempty" yaml:"ignoreExtensionErrors,omitempty" mapstructure:"ignoreExtensionErrors"`
	Output                string   `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
	HideWarnings          bool     `json:"hideWarnings,omitempty" yaml:"hideWarnings,omitempty" mapstructure:"hideWarnings"`
	// Jobs bounds the files checked concurrently by CheckFiles.
	Jobs int `json:"jobs,omitempty" yaml:"jobs,omitempty" mapstructure:"jobs"`
}

func DefaultOptions() Options {
	return Options{
		SearchPath:     []string{common.DefaultGrammarDir()},
		MinimumVersion: generic.DefaultMinimumVersion,
		Output:         common.OutputTable,
		Jobs:           runtime.NumCPU(),
	}
}

// Complete fills unset fields from DefaultOptions, expands the search path
// and validates the result.
func (o Options) Complete() (Options, error) {
	if err := mergo.Merge(&o, DefaultOptions()); err != nil {
		return o, errors.Wrap(err, "failed to merge default options")
	}
	paths, err := common.ExpandPaths(o.SearchPath)
	if err != nil {
		return o, errors.Wrap(err, "failed to expand grammar search path")
	}
	o.SearchPath = paths
	return o, o.Validate()
}

func (o Options) Validate() error {
	switch o.Output {
	case common.OutputTable, common.OutputYAML, common.OutputJSON:
	default:
		return errors.Errorf("output format must be one of %s, %s or %s, got %q",
			common.OutputTable, common.OutputYAML, common.OutputJSON, o.Output)
	}
	if o.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", o.Jobs)
	}
	if o.MinimumVersion < 0 {
		return errors.Errorf("minimum version must not be negative, got %g", o.MinimumVersion)
	}
	return nil
}
