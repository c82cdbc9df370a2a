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

package resolver

import (
	"github.com/NVIDIA/craftcost/pkg/header"
	"github.com/NVIDIA/craftcost/pkg/item"
)

// ProfitReport compares the market sell price of an item with its strict
// craft cost.
type ProfitReport struct {
	Item item.Key `json:"item" yaml:"item"`
	// Sell is the sell listing price, or the buy price when no sell price is
	// recorded. Zero means the item has no market price.
	Sell      float64 `json:"sell" yaml:"sell"`
	CraftCost Result  `json:"craftCost" yaml:"craftCost"`
	// Profit and Margin are set only when both sides are known.
	Profit *float64 `json:"profit,omitempty" yaml:"profit,omitempty"`
	Margin *float64 `json:"marginPercent,omitempty" yaml:"marginPercent,omitempty"`
}

// Profit computes the craft-and-sell margin of key.
func (r *Resolver) Profit(key item.Key) ProfitReport {
	rep := ProfitReport{Item: key, CraftCost: r.StrictCraftCost(key)}

	if p, ok := r.snap.Price(key); ok {
		rep.Sell = p.Sell
		if rep.Sell <= 0 {
			rep.Sell = p.Buy
		}
	}

	cost, ok := rep.CraftCost.Cost()
	if !ok || rep.Sell <= 0 {
		return rep
	}
	profit := rep.Sell - cost
	rep.Profit = &profit
	if cost > 0 {
		margin := profit / cost * 100
		rep.Margin = &margin
	}
	return rep
}

// ProfitSheet is a set of profit reports, in query order.
type ProfitSheet struct {
	header.Header `json:",inline" yaml:",inline"`

	Reports []ProfitReport `json:"reports" yaml:"reports"`
}

// ProfitSheet computes Profit for each key.
func (r *Resolver) ProfitSheet(keys []item.Key) *ProfitSheet {
	s := &ProfitSheet{
		Header:  *header.New(header.WithKind(header.KindProfitReport), header.WithAPIVersion(header.APIVersion)),
		Reports: make([]ProfitReport, 0, len(keys)),
	}
	for _, k := range keys {
		s.Reports = append(s.Reports, r.Profit(k))
	}
	return s
}

// TableHeader implements serializer.Tabular.
func (s *ProfitSheet) TableHeader() []string {
	return []string{"ITEM", "SELL", "CRAFT", "PROFIT", "MARGIN%"}
}

// TableRows implements serializer.Tabular.
func (s *ProfitSheet) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Reports))
	for _, rep := range s.Reports {
		profit, margin := "-", "-"
		if rep.Profit != nil {
			profit = FormatCost(*rep.Profit)
		}
		if rep.Margin != nil {
			margin = FormatCost(*rep.Margin)
		}
		sell := "-"
		if rep.Sell > 0 {
			sell = FormatCost(rep.Sell)
		}
		rows = append(rows, []string{rep.Item.String(), sell, rep.CraftCost.String(), profit, margin})
	}
	return rows
}
