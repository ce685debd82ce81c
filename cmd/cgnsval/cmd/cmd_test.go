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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/diagnostic"
	"github.com/sealerio/cgnsval/pkg/report"
)

var (
	trees    = filepath.Join("..", "..", "..", "pkg", "checker", "testdata", "trees")
	grammars = filepath.Join("..", "..", "..", "pkg", "checker", "testdata", "grammars")
)

func execute(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	stdout := common.StdOut
	common.StdOut = &buf
	defer func() { common.StdOut = stdout }()

	rootCmd.SetArgs(append([]string{"--color", "never", "--hide-time"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCheckCmd(t *testing.T) {
	out, err := execute(t, "check", "-o", "json", filepath.Join(trees, "tet.yaml"))
	require.NoError(t, err)
	var files []report.File
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, 0, files[0].Errors)

	out, err = execute(t, "check", "-o", "json", filepath.Join(trees, "no-zonetype.yaml"), filepath.Join(trees, "tet.yaml"))
	assert.EqualError(t, err, "validation failed")
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 2)
	assert.Equal(t, 1, files[0].Errors)
	assert.Equal(t, "/Base/Zone", files[0].Diagnoses[0].Path)
}

func TestCheckCmd_DelegatingGrammar(t *testing.T) {
	defer func() {
		f := rootCmd.PersistentFlags().Lookup("grammar")
		require.NoError(t, f.Value.(pflag.SliceValue).Replace(nil))
		f.Changed = false
	}()
	out, err := execute(t, "check", "-o", "json", "-u", "U", "--search-path", grammars, filepath.Join(trees, "no-zonetype.yaml"))
	assert.EqualError(t, err, "validation failed")
	var files []report.File
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, 1, files[0].Errors)
	var keys []string
	for _, g := range files[0].Diagnoses {
		for _, d := range g.Diagnostics {
			if d.Severity == diagnostic.SeverityError {
				keys = append(keys, d.Key+" "+d.Path)
			}
		}
	}
	assert.Equal(t, []string{"S002 /Base/Zone"}, keys)
}

func TestCheckCmd_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "diagnoses.yaml")
	outputFile = target
	defer func() { outputFile = "" }()

	_, err := execute(t, "check", "-o", "yaml", "-u", "M", "--search-path", grammars, filepath.Join(trees, "mach.json"))
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "M101")
	assert.Contains(t, string(data), "/Mesh/Tet/ReferenceState/Mach")
}

func TestListCmd(t *testing.T) {
	out, err := execute(t, "list", "U", "--search-path", grammars, "-o", "json")
	require.NoError(t, err)
	var entries []diagnostic.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []diagnostic.Entry{
		diagnostic.Error("U101", "Zone [%s] has no child of type [%s]"),
		diagnostic.Warning("U102", "Value [%s] of [%s] is out of range"),
		diagnostic.Error("U103", "Node [%s] of type [%s] is not allowed here"),
	}, entries)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "cgnsvalVersion:")
	assert.Contains(t, out, "id: S")

	_, err = execute(t, "version", "-o", "xml")
	assert.Error(t, err)
}

func TestPrintStructured(t *testing.T) {
	assert.Error(t, printStructured(common.OutputTable, nil))
}
