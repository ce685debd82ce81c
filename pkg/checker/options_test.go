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
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/grammar/generic"
)

func TestOptions_Complete(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{
			name: "defaults",
			in:   Options{},
			want: Options{
				SearchPath:     []string{common.DefaultGrammarDir()},
				MinimumVersion: generic.DefaultMinimumVersion,
				Output:         common.OutputTable,
				Jobs:           runtime.NumCPU(),
			},
		},
		{
			name: "user values win",
			in: Options{
				Grammars:     []string{"U"},
				SearchPath:   []string{"~/cgns/grammars"},
				StrictNames:  true,
				Output:       common.OutputJSON,
				HideWarnings: true,
				Jobs:         1,
			},
			want: Options{
				Grammars:       []string{"U"},
				SearchPath:     []string{filepath.Join(home, "cgns", "grammars")},
				StrictNames:    true,
				MinimumVersion: generic.DefaultMinimumVersion,
				Output:         common.OutputJSON,
				HideWarnings:   true,
				Jobs:           1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Complete()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"table", Options{Output: common.OutputTable}, false},
		{"yaml", Options{Output: common.OutputYAML, Jobs: 4}, false},
		{"unknown output", Options{Output: "xml"}, true},
		{"negative jobs", Options{Output: common.OutputJSON, Jobs: -1}, true},
		{"negative version", Options{Output: common.OutputJSON, MinimumVersion: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
