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
	"github.com/spf13/cobra"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/checker"
	"github.com/sealerio/cgnsval/pkg/report"
)

var listOutput string

var exampleForListCmd = `
list the diagnostics of the SIDS grammar:
  cgnsval list S

list a user grammar as yaml:
  cgnsval list U --search-path ./grammars -o yaml
`

// NewListCmd prints the diagnostic catalog of one grammar.
func NewListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:     "list GRAMMAR",
		Short:   "list the diagnostics a grammar can report",
		Example: exampleForListCmd,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			entries, err := checker.ListCatalog(args[0], opts)
			if err != nil {
				return err
			}
			if listOutput == common.OutputTable {
				report.Catalog(common.StdOut, args[0], entries)
				return nil
			}
			return printStructured(listOutput, entries)
		},
	}
	listCmd.Flags().StringVarP(&listOutput, "output", "o", common.OutputTable, "output format, one of table, yaml or json")
	return listCmd
}
