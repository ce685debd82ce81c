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


package progressbar

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewFileProgress(&buf, 3, 80)
	p.Done("a.yaml", nil)
	p.Done("b.yaml", errors.New("malformed tree"))
	p.Done("c.yaml", nil)
	p.Finish()

	assert.Equal(t, 1, p.failed)
	assert.Equal(t, 1.0, p.bar.State().CurrentPercent)
	assert.Contains(t, buf.String(), "1 failed")
}
