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

package walker

import (
	"github.com/google/uuid"

	"github.com/sealerio/cgnsval/pkg/diagnostic"
)

// NodeStatus is the outcome of one visited node.
type NodeStatus struct {
	Path   string            `json:"path" yaml:"path"`
	Type   string            `json:"type" yaml:"type"`
	Depth  int               `json:"depth" yaml:"depth"`
	Parent string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Local  diagnostic.Status `json:"local" yaml:"local"`
	// Status is the worst of Local and the status of every descendant.
	Status diagnostic.Status `json:"status" yaml:"status"`

	parent int
}

// Result is the outcome of one run: the diagnostics in push order and the
// visited nodes in pre-order.
type Result struct {
	RunID uuid.UUID
	Log   *diagnostic.Log
	Nodes []NodeStatus
}

// rollup propagates the local statuses bottom-up. Children follow their
// parent in pre-order, so one reverse pass sees every child before its parent.
func (r *Result) rollup() {
	for i := range r.Nodes {
		r.Nodes[i].Status = r.Nodes[i].Local
	}
	for i := len(r.Nodes) - 1; i >= 0; i-- {
		n := r.Nodes[i]
		if n.parent >= 0 {
			p := &r.Nodes[n.parent]
			p.Status = p.Status.Worst(n.Status)
		}
	}
}

// StatusOf returns the rolled up status of the first node at path.
func (r *Result) StatusOf(path string) (diagnostic.Status, bool) {
	for _, n := range r.Nodes {
		if n.Path == path {
			return n.Status, true
		}
	}
	return diagnostic.StatusOk, false
}

// Worst is the status of the whole tree.
func (r *Result) Worst() diagnostic.Status {
	if len(r.Nodes) == 0 {
		return diagnostic.StatusOk
	}
	return r.Nodes[0].Status
}

func (r *Result) HasErrors() bool {
	return r.Log.Count(diagnostic.SeverityError) > 0
}
