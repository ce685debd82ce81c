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


package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/checker"
	"github.com/sealerio/cgnsval/pkg/grammar/generic"
	"github.com/sealerio/cgnsval/pkg/grammar/sids"
	"github.com/sealerio/cgnsval/pkg/version"
)

var (
	shortPrint    bool
	versionOutput string
)

func NewVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print version info",
		Args:    cobra.NoArgs,
		Example: `cgnsval version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionOutput != common.OutputYAML && versionOutput != common.OutputJSON {
				return fmt.Errorf("output format must be yaml or json")
			}
			if shortPrint {
				fmt.Fprintln(common.StdOut, version.Get().String())
				return nil
			}
			return printStructured(versionOutput, versionInfo())
		},
	}
	versionCmd.Flags().BoolVar(&shortPrint, "short", false, "If true, print just the version number.")
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", common.OutputYAML, "choose `yaml` or `json` format to print version info")
	return versionCmd
}

func versionInfo() *version.Output {
	out := &version.Output{CgnsvalVersion: version.Get()}
	r, err := checker.NewRegistry(checker.Options{MinimumVersion: generic.DefaultMinimumVersion})
	if err != nil {
		return out
	}
	for _, id := range []string{generic.ID, sids.ID} {
		entries, err := r.List(id)
		if err != nil {
			continue
		}
		out.Grammars = append(out.Grammars, version.GrammarVersion{ID: id, Diagnostics: len(entries)})
	}
	return out
}

// printStructured prints v as yaml or json.
func printStructured(format string, v interface{}) error {
	var (
		marshalled []byte
		err        error
	)
	switch format {
	case common.OutputYAML:
		marshalled, err = yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("fail to marshal yaml: %w", err)
		}
	case common.OutputJSON:
		marshalled, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("fail to marshal json: %w", err)
		}
		marshalled = append(marshalled, '\n')
	default:
		return fmt.Errorf("output format must be one of %s, %s or %s, got %q",
			common.OutputTable, common.OutputYAML, common.OutputJSON, format)
	}
	_, err = common.StdOut.Write(marshalled)
	return err
}
