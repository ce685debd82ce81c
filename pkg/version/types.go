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


package version

import (
	"encoding/json"
	"fmt"
)

// Info contains versioning information.
type Info struct {
	Major        string `json:"major,omitempty" yaml:"major,omitempty"`
	Minor        string `json:"minor,omitempty" yaml:"minor,omitempty"`
	GitVersion   string `json:"gitVersion" yaml:"gitVersion"`
	GitCommit    string `json:"gitCommit,omitempty" yaml:"gitCommit,omitempty"`
	GitTreeState string `json:"gitTreeState" yaml:"gitTreeState"`
	BuildDate    string `json:"buildDate" yaml:"buildDate"`
	GoVersion    string `json:"goVersion" yaml:"goVersion"`
	Compiler     string `json:"compiler" yaml:"compiler"`
	Platform     string `json:"platform" yaml:"platform"`
}

// Output is what `cgnsval version` prints: the binary version plus the
// built-in grammars compiled into it.
type Output struct {
	CgnsvalVersion Info             `json:"cgnsvalVersion" yaml:"cgnsvalVersion"`
	Grammars       []GrammarVersion `json:"grammars,omitempty" yaml:"grammars,omitempty"`
}

type GrammarVersion struct {
	ID          string `json:"id" yaml:"id"`
	Diagnostics int    `json:"diagnostics" yaml:"diagnostics"`
}

// String returns info as a human-friendly version string.
func (info Info) String() string {
	if info.GitCommit == "" {
		return info.GitVersion
	}
	return fmt.Sprintf("%s-%s", info.GitVersion, info.GitCommit)
}

// Text renders info as indented json.
func (info Info) Text() ([]byte, error) {
	return json.MarshalIndent(info, "", "  ")
}
