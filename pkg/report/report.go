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


// Package report renders validation results as a table, YAML or JSON. The
// structured forms group diagnostics by node path, one document per run.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/walker"
)

// File is the report of one checked file.
type File struct {
	File      string             `json:"file"`
	RunID     string             `json:"runID,omitempty"`
	Status    diagnostic.Status  `json:"status"`
	Errors    int                `json:"errors"`
	Warnings  int                `json:"warnings"`
	Diagnoses []diagnostic.Group `json:"diagnoses,omitempty"`
	// Error is the run error, set when the file could not be checked.
	Error string `json:"error,omitempty"`
}

// New summarizes the outcome of checking file. A run error gives a Fail
// report without diagnoses. A diagnostic pushed twice on the same path with
// the same message, as happens when a grammar delegates to another one that
// also runs on its own, is reported once.
func New(file string, res *walker.Result, err error) File {
	if err != nil {
		return File{File: file, Status: diagnostic.StatusFail, Error: err.Error()}
	}
	f := File{
		File:      file,
		RunID:     res.RunID.String(),
		Status:    res.Worst(),
		Diagnoses: distinct(res.Log.Groups()),
	}
	for _, g := range f.Diagnoses {
		for _, d := range g.Diagnostics {
			switch d.Severity {
			case diagnostic.SeverityError:
				f.Errors++
			case diagnostic.SeverityWarning:
				f.Warnings++
			}
		}
	}
	return f
}

func distinct(groups []diagnostic.Group) []diagnostic.Group {
	for i := range groups {
		seen := map[diagnostic.Diagnostic]bool{}
		kept := groups[i].Diagnostics[:0]
		for _, d := range groups[i].Diagnostics {
			if !seen[d] {
				seen[d] = true
				kept = append(kept, d)
			}
		}
		groups[i].Diagnostics = kept
	}
	return groups
}

// Failed reports whether any file has errors or could not be checked.
func Failed(files []File) bool {
	for _, f := range files {
		if f.Error != "" || f.Errors > 0 {
			return true
		}
	}
	return false
}

// Options tune the table view only; YAML and JSON always carry every
// diagnostic.
type Options struct {
	HideWarnings bool
}

// Write renders files in format, one of common.OutputTable, OutputYAML or OutputJSON.
func Write(w io.Writer, format string, files []File, opts Options) error {
	switch format {
	case common.OutputTable, "":
		return Table(w, files, opts)
	case common.OutputYAML:
		return YAML(w, files)
	case common.OutputJSON:
		return JSON(w, files)
	}
	return errors.Errorf("unknown output format %q", format)
}

func Table(w io.Writer, files []File, opts Options) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"file", "path", "key", "severity", "message"})
	table.SetAutoWrapText(false)
	table.SetAutoMergeCellsByColumnIndex([]int{0, 1})
	table.SetRowLine(false)
	rows := 0
	for _, f := range files {
		if f.Error != "" {
			table.Append([]string{f.File, "", "", diagnostic.StatusFail.String(), f.Error})
			rows++
			continue
		}
		for _, g := range f.Diagnoses {
			for _, d := range g.Diagnostics {
				if opts.HideWarnings && d.Severity == diagnostic.SeverityWarning {
					continue
				}
				table.Append([]string{f.File, d.Path, d.Key, d.Severity.Name(), d.Message})
				rows++
			}
		}
	}
	if rows > 0 {
		table.Render()
	}
	for _, f := range files {
		if _, err := fmt.Fprintf(w, "%s: %s (%d errors, %d warnings)\n", f.File, f.Status, f.Errors, f.Warnings); err != nil {
			return err
		}
	}
	return nil
}

func YAML(w io.Writer, files []File) error {
	data, err := yaml.Marshal(files)
	if err != nil {
		return errors.Wrap(err, "failed to marshal report to yaml")
	}
	_, err = w.Write(data)
	return err
}

func JSON(w io.Writer, files []File) error {
	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal report to json")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Catalog prints the entries of grammar id with their templates unsubstituted.
func Catalog(w io.Writer, id string, entries []diagnostic.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"key", "severity", "message"})
	table.SetAutoWrapText(false)
	table.SetCaption(true, fmt.Sprintf("grammar %s, %d diagnostics", id, len(entries)))
	for _, e := range entries {
		table.Append([]string{e.Key, e.Severity.Name(), e.Template})
	}
	table.Render()
}
