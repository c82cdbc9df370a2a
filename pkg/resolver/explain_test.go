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
	"encoding/json"
	"testing"

	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/NVIDIA/craftcost/pkg/header"
	"github.com/NVIDIA/craftcost/pkg/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain(t *testing.T) {
	r := newFixture().
		recipe("X", 2, "Y", 3, "Z", 1).
		price("Y", 2).price("Z", 5).price("X", 4).
		resolver(t)

	b := r.Explain("x", false)
	assert.Equal(t, header.KindBreakdown, b.Kind)
	assertPriced(t, 4, b.Result)
	assertPriced(t, 5.5, b.CraftCost)
	assert.Equal(t, catalog.ModeNormal, b.Mode)
	assert.Equal(t, 4.0, b.Market)
	assert.Equal(t, 2, b.OutputQuantity)
	require.Len(t, b.Ingredients, 2)

	y := b.Ingredients[0]
	assert.Equal(t, item.Key("y"), y.Item)
	assert.Equal(t, 3.0, y.Quantity)
	assertPriced(t, 2, y.Unit)
	require.NotNil(t, y.Subtotal)
	assert.Equal(t, 6.0, *y.Subtotal)

	strict := r.Explain("x", true)
	assertPriced(t, 5.5, strict.Result)
	assert.True(t, strict.Strict)

	rows := b.TableRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"y", "3", "2", "6"}, rows[0])
	assert.Equal(t, []string{"x (NORMAL)", "2", "4", "5.5"}, rows[2])
}

func TestExplain_NoRecipeAndUnpriceable(t *testing.T) {
	r := newFixture().
		item("Thread", "VENDOR", 0.1).
		recipe("Gear", 1, "Missing", 2).
		price("Ore", 3).
		resolver(t)

	b := r.Explain("ore", true)
	assert.True(t, b.Result.IsNotApplicable())
	assert.True(t, b.CraftCost.IsNotApplicable())
	assert.Empty(t, b.Ingredients)

	b = r.Explain("gear", false)
	assert.True(t, b.Result.IsUnpriceable())
	assert.True(t, b.CraftCost.IsUnpriceable())
	require.Len(t, b.Ingredients, 1)
	assert.Nil(t, b.Ingredients[0].Subtotal)

	b = r.Explain("thread", false)
	assert.Equal(t, catalog.ModeVendor, b.Mode)
	require.NotNil(t, b.ManualCost)
	assert.Equal(t, 0.1, *b.ManualCost)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"VENDOR"`)
	assert.Contains(t, string(data), `"kind":"Breakdown"`)
}

func TestProfit(t *testing.T) {
	r := newFixture().
		recipe("Plank", 1, "Log", 2).
		recipe("Board", 1, "Log", 4).
		recipe("Stuck", 1, "Missing", 1).
		price("Log", 0.5).
		price("Plank", 1.2, 1.5).
		price("Board", 3).
		price("Stuck", 10, 12).
		resolver(t)

	p := r.Profit("plank")
	assert.Equal(t, 1.5, p.Sell, "sell column preferred")
	require.NotNil(t, p.Profit)
	assert.InDelta(t, 0.5, *p.Profit, 1e-9)
	require.NotNil(t, p.Margin)
	assert.InDelta(t, 50, *p.Margin, 1e-9)

	p = r.Profit("board")
	assert.Equal(t, 3.0, p.Sell, "falls back to buy column")
	assert.InDelta(t, 1.0, *p.Profit, 1e-9)

	p = r.Profit("stuck")
	assert.True(t, p.CraftCost.IsUnpriceable())
	assert.Nil(t, p.Profit)

	p = r.Profit("log")
	assert.True(t, p.CraftCost.IsNotApplicable())
	assert.Nil(t, p.Profit)

	sheet := r.ProfitSheet([]item.Key{"plank", "log"})
	assert.Equal(t, header.KindProfitReport, sheet.Kind)
	require.Len(t, sheet.Reports, 2)
	rows := sheet.TableRows()
	assert.Equal(t, []string{"log", "0.5", "not_applicable", "-", "-"}, rows[1])
}

func TestProfit_FreeCraftHasNoMargin(t *testing.T) {
	r := newFixture().
		item("Gift", "ALT", "").
		recipe("Box", 1, "Gift", 1).
		price("Box", 5).
		resolver(t)

	p := r.Profit("box")
	require.NotNil(t, p.Profit)
	assert.Equal(t, 5.0, *p.Profit)
	assert.Nil(t, p.Margin)
}
