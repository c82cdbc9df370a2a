// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package costing

import (
	"github.com/NVIDIA/craftcost/pkg/batch"
	"github.com/NVIDIA/craftcost/pkg/header"
	"github.com/NVIDIA/craftcost/pkg/item"
	"github.com/NVIDIA/craftcost/pkg/resolver"
)

// Entry is one evaluated name.
type Entry struct {
	Name   string          `json:"name" yaml:"name"`
	Item   item.Key        `json:"item" yaml:"item"`
	Result resolver.Result `json:"result" yaml:"result"`
}

// CostReport lists the results of a batch of names, in query order.
type CostReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Evaluation batch.Kind `json:"evaluation" yaml:"evaluation"`
	Entries    []Entry    `json:"entries" yaml:"entries"`
}

// TableHeader implements serializer.Tabular.
func (r *CostReport) TableHeader() []string {
	return []string{"NAME", "STATUS", "COST", "SOURCE"}
}

// TableRows implements serializer.Tabular.
func (r *CostReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		cost, source := "-", "-"
		if c, ok := e.Result.Cost(); ok {
			cost = resolver.FormatCost(c)
			source = string(e.Result.Origin())
		}
		rows = append(rows, []string{e.Name, e.Result.Status().String(), cost, source})
	}
	return rows
}
