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
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, GetSingleVersion(), info.GitVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfo_String(t *testing.T) {
	assert.Equal(t, "v1.0.0", Info{GitVersion: "v1.0.0"}.String())
	assert.Equal(t, "v1.0.0-abc", Info{GitVersion: "v1.0.0", GitCommit: "abc"}.String())

	text, err := Info{GitVersion: "v1.0.0"}.Text()
	require.NoError(t, err)
	var back Info
	require.NoError(t, json.Unmarshal(text, &back))
	assert.Equal(t, "v1.0.0", back.GitVersion)
}
