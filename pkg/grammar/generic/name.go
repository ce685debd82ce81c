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

package generic

import "strings"

const maxNameLength = 32

// ValidName reports whether name is a compliant node name: at most 32
// printable ASCII characters, not blank, no slash, and neither "." nor "..".
func ValidName(name string) bool {
	if name == "" || len(name) > maxNameLength {
		return false
	}
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return false
	}
	for i := 0; i < len(name); i++ {
		b := name[i]
		if b == '/' || b < ' ' || b > '~' {
			return false
		}
	}
	return true
}

// SafeName reports whether a valid name also passes the strict checks: no
// leading or trailing space, no double space, and none of the characters
// that break quoting in tools.
func SafeName(name string) bool {
	if strings.TrimSpace(name) != name {
		return false
	}
	if strings.Contains(name, "  ") {
		return false
	}
	return !strings.ContainsAny(name, "\"'`\\")
}
