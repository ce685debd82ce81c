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


package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const (
	AppName         = "cgnsval"
	EnvPrefix       = "CGNSVAL"
	ConfigFileName  = ".cgnsval.yaml"
	DefaultHomeDir  = "/root"
	GrammarDirName  = "grammars"
	LogDirName      = "log"
	DefaultWorkRoot = ".cgnsval"
)

const (
	FileMode0755 = 0755
	FileMode0644 = 0644
)

// Output formats understood by pkg/report.
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
	OutputJSON  = "json"
)

func GetHomeDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return DefaultHomeDir
	}
	return home
}

// GetWorkDir is $HOME/.cgnsval.
func GetWorkDir() string {
	return filepath.Join(GetHomeDir(), DefaultWorkRoot)
}

func DefaultLogDir() string {
	return filepath.Join(GetWorkDir(), LogDirName)
}

// DefaultGrammarDir is searched for user grammars when no search path is configured.
func DefaultGrammarDir() string {
	return filepath.Join(GetWorkDir(), GrammarDirName)
}

func DefaultConfigFile() string {
	return filepath.Join(GetHomeDir(), ConfigFileName)
}

// ExpandPaths expands a leading "~" and drops empty entries.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, err
		}
		out = append(out, filepath.Clean(expanded))
	}
	return out, nil
}

func IsFileExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
