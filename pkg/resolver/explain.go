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
	"strconv"

	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/NVIDIA/craftcost/pkg/header"
	"github.com/NVIDIA/craftcost/pkg/item"
)

// Line is one ingredient of a Breakdown.
type Line struct {
	Item     item.Key `json:"item" yaml:"item"`
	Quantity float64  `json:"quantity" yaml:"quantity"`
	// Unit is the effective cost of one unit of the ingredient.
	Unit Result `json:"unit" yaml:"unit"`
	// Subtotal is Unit times Quantity, absent when Unit is not priced.
	Subtotal *float64 `json:"subtotal,omitempty" yaml:"subtotal,omitempty"`
}

// Breakdown explains a single result one recipe level deep.
type Breakdown struct {
	header.Header `json:",inline" yaml:",inline"`

	Item       item.Key     `json:"item" yaml:"item"`
	Strict     bool         `json:"strict" yaml:"strict"`
	Result     Result       `json:"result" yaml:"result"`
	Mode       catalog.Mode `json:"mode" yaml:"mode"`
	ManualCost *float64     `json:"manualCost,omitempty" yaml:"manualCost,omitempty"`
	Market     float64      `json:"market" yaml:"market"`
	// CraftCost is what the recipe costs at current ingredient prices, or
	// NotApplicable when there is no recipe.
	CraftCost      Result `json:"craftCost" yaml:"craftCost"`
	OutputQuantity int    `json:"outputQuantity,omitempty" yaml:"outputQuantity,omitempty"`
	Ingredients    []Line `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
}

// Explain evaluates key and reports the inputs that produced the result.
// With strict set the result is StrictCraftCost, otherwise EffectiveCost.
func (r *Resolver) Explain(key item.Key, strict bool) *Breakdown {
	b := &Breakdown{
		Header: *header.New(header.WithKind(header.KindBreakdown), header.WithAPIVersion(header.APIVersion)),
		Item:   key,
		Strict: strict,
		Market: r.snap.BuyPrice(key),
	}

	if strict {
		b.Result = r.StrictCraftCost(key)
	} else {
		b.Result = r.EffectiveCost(key)
	}

	policy, _ := r.snap.Policy(key)
	b.Mode = policy.Mode
	b.ManualCost = policy.ManualCost

	b.CraftCost = NotApplicable()
	recipe, ok := r.snap.Recipe(key)
	if !ok || key.IsEmpty() {
		return b
	}
	b.OutputQuantity = recipe.OutputQuantity

	// same visiting set the root evaluation used, so memo hits line up
	visiting := path{key: {}}
	total, priced := 0.0, true
	for _, ing := range recipe.Ingredients {
		unit := r.effectiveCost(ing.Item, visiting)
		l := Line{Item: ing.Item, Quantity: ing.Quantity, Unit: unit}
		if c, ok := unit.Cost(); ok {
			sub := c * ing.Quantity
			l.Subtotal = &sub
			total += sub
		} else {
			priced = false
		}
		b.Ingredients = append(b.Ingredients, l)
	}
	if priced {
		b.CraftCost = Priced(total/float64(recipe.OutputQuantity), OriginCraft)
	} else {
		b.CraftCost = Unpriceable()
	}
	return b
}

// TableHeader implements serializer.Tabular.
func (b *Breakdown) TableHeader() []string {
	return []string{"INGREDIENT", "QTY", "UNIT", "SUBTOTAL"}
}

// TableRows implements serializer.Tabular. The last row is the item itself.
func (b *Breakdown) TableRows() [][]string {
	rows := make([][]string, 0, len(b.Ingredients)+1)
	for _, l := range b.Ingredients {
		sub := "-"
		if l.Subtotal != nil {
			sub = FormatCost(*l.Subtotal)
		}
		rows = append(rows, []string{l.Item.String(), FormatCost(l.Quantity), l.Unit.String(), sub})
	}
	label := b.Item.String() + " (" + b.Mode.String() + ")"
	qty := "1"
	if b.OutputQuantity > 0 {
		qty = strconv.Itoa(b.OutputQuantity)
	}
	rows = append(rows, []string{label, qty, b.Result.String(), b.CraftCost.String()})
	return rows
}

// FormatCost renders a price with the shortest exact representation.
func FormatCost(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
