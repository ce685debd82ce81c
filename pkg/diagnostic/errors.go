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

package diagnostic

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownDiagnosticKey means a grammar pushed a key its catalog does not define.
	ErrUnknownDiagnosticKey = errors.New("unknown diagnostic key")
	// ErrMalformedDiagnosticArgs means the argument count does not match the template.
	ErrMalformedDiagnosticArgs = errors.New("malformed diagnostic arguments")
	// ErrInvalidCatalog means a catalog definition is inconsistent.
	ErrInvalidCatalog = errors.New("invalid diagnostic catalog")
)

// ContractError reports a grammar definition bug found while pushing a
// diagnostic. Log.Push panics with it; the walker turns it back into an error.
type ContractError struct {
	Path string
	Key  string
	Err  error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("grammar contract violated by %s at %s: %v", e.Key, e.Path, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
