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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/checker"
	"github.com/sealerio/cgnsval/pkg/report"
	"github.com/sealerio/cgnsval/utils/progressbar"
)

var outputFile string

var longCheckCmdDescription = `Check one or more CGNS trees stored as YAML or JSON documents.
Each node is a sequence [name, value, children, type]. The grammars G and S always
run first, user grammars given with --grammar run after them in order.
A user grammar extending S runs S once more on the nodes it checks; the
report lists each repeated diagnostic once.
The command fails when any file has an error diagnostic or cannot be checked.`

var exampleForCheckCmd = `
check a tree with the built-in grammars:
  cgnsval check mesh.yaml

add the user grammar U found in ./grammars, hide warnings:
  cgnsval check -u U --search-path ./grammars --hide-warnings mesh.yaml

save the diagnoses grouped by path:
  cgnsval check -o yaml --output-file diagnoses.yaml meshes/*.json
`

func NewCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:     "check FILE...",
		Short:   "check CGNS tree files",
		Long:    longCheckCmdDescription,
		Example: exampleForCheckCmd,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			c, err := checker.New(opts)
			if err != nil {
				return err
			}
			files, err := runCheck(cmd.Context(), c, args)
			if err != nil {
				return err
			}
			if err := writeReport(files, opts); err != nil {
				return err
			}
			if report.Failed(files) {
				return errors.New("validation failed")
			}
			return nil
		},
	}

	flags := checkCmd.Flags()
	flags.Bool("strict-names", false, "warn about node names that are valid but unsafe")
	flags.Float64("minimum-version", 0, "oldest CGNSLibraryVersion accepted (default 2.4)")
	flags.StringP("output", "o", common.OutputTable, "output format, one of table, yaml or json")
	flags.Bool("hide-warnings", false, "hide warnings in the table output")
	flags.IntP("jobs", "j", 0, "number of files checked at the same time (default is the number of CPUs)")
	flags.StringVar(&outputFile, "output-file", "", "write the report to this file instead of stdout")
	bindFlags(flags, map[string]string{
		"strictNames":    "strict-names",
		"minimumVersion": "minimum-version",
		"output":         "output",
		"hideWarnings":   "hide-warnings",
		"jobs":           "jobs",
	})
	return checkCmd
}

func runCheck(ctx context.Context, c *checker.Checker, files []string) ([]report.File, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var done func(checker.FileResult)
	if len(files) > 1 && common.IsTerminal(common.StdErr) {
		bar := progressbar.NewFileProgress(common.StdErr, len(files), common.TerminalWidth(common.StdErr))
		defer bar.Finish()
		done = func(r checker.FileResult) {
			bar.Done(r.File, r.Err)
		}
	}

	results, err := c.CheckFiles(ctx, files, done)
	if err != nil {
		return nil, err
	}
	reports := make([]report.File, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			logrus.Debugf("failed to check %s: %v", r.File, r.Err)
		}
		reports = append(reports, report.New(r.File, r.Result, r.Err))
	}
	return reports, nil
}

func writeReport(files []report.File, opts checker.Options) (err error) {
	var w io.Writer = common.StdOut
	if outputFile != "" {
		if err := os.MkdirAll(filepath.Dir(outputFile), common.FileMode0755); err != nil {
			return errors.Wrapf(err, "failed to create directory of %s", outputFile)
		}
		f, err := os.Create(filepath.Clean(outputFile))
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", outputFile)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if err := report.Write(w, opts.Output, files, report.Options{HideWarnings: opts.HideWarnings}); err != nil {
		return err
	}
	if outputFile != "" {
		fmt.Fprintf(common.StdErr, "report of %d files written to %s\n", len(files), outputFile)
	}
	return nil
}
