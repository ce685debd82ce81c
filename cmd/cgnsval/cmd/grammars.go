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
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/checker"
)

var grammarsOutput string

// NewGrammarsCmd lists the built-in grammars and the user grammars that
// --grammar can name.
func NewGrammarsCmd() *cobra.Command {
	grammarsCmd := &cobra.Command{
		Use:   "grammars",
		Short: "list the available grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			gs, err := checker.AvailableGrammars(opts)
			if err != nil {
				return err
			}
			if grammarsOutput != common.OutputTable {
				return printStructured(grammarsOutput, gs)
			}

			table := tablewriter.NewWriter(common.StdOut)
			table.SetHeader([]string{"grammar", "kind"})
			for _, id := range gs.BuiltIn {
				table.Append([]string{id, "built-in"})
			}
			for _, id := range gs.Discoverable {
				table.Append([]string{id, "user"})
			}
			table.Render()
			return nil
		},
	}
	grammarsCmd.Flags().StringVarP(&grammarsOutput, "output", "o", common.OutputTable, "output format, one of table, yaml or json")
	return grammarsCmd
}
