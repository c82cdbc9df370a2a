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

package catalog

import (
	"testing"

	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	itemsHeader   = []any{"Name", "ID", "Mode", "Manual"}
	recipesHeader = []any{"Output", "OutQty", "Ingredient", "Qty"}
	pricesHeader  = []any{"Name", "Buy", "Sell"}
)

func mustBuild(t *testing.T, items, recipes, prices Rows) *Snapshot {
	t.Helper()
	snap, err := Build(items, recipes, prices)
	require.NoError(t, err)
	return snap
}

func TestBuild_MissingTable(t *testing.T) {
	tests := []struct {
		name                   string
		items, recipes, prices Rows
		table                  string
	}{
		{"items", nil, Rows{}, Rows{}, TableItems},
		{"recipes", Rows{}, nil, Rows{}, TableRecipes},
		{"prices", Rows{}, Rows{}, nil, TablePrices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.items, tt.recipes, tt.prices)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeConfiguration, errors.CodeOf(err))

			var se *errors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.table, se.Context["table"])
		})
	}
}

func TestBuild_EmptyTables(t *testing.T) {
	snap := mustBuild(t, Rows{}, Rows{itemsHeader}, Rows{})
	assert.Equal(t, Stats{}, snap.Stats())
	assert.NotEmpty(t, snap.Fingerprint())
	assert.False(t, snap.BuiltAt().IsZero())
}

func TestBuild_SkipsHeaderRow(t *testing.T) {
	// a header that looks like data must still be ignored
	snap := mustBuild(t,
		Rows{{"Iron Ore", 1, "", ""}},
		Rows{},
		Rows{{"Iron Ore", 5}, {"Copper Ore", 2}},
	)
	assert.Equal(t, 0, snap.Stats().Items)
	_, ok := snap.Price("iron ore")
	assert.False(t, ok)
	assert.Equal(t, 2.0, snap.BuyPrice("copper ore"))
}

func TestBuild_Prices(t *testing.T) {
	snap := mustBuild(t, Rows{}, Rows{}, Rows{
		pricesHeader,
		{"Iron Ore", "1.5", 2.0},
		{"  ", 9},
		{"Bad", "n/a", -1},
		{"Short"},
	})

	p, ok := snap.Price(item.Normalize("iron ore"))
	require.True(t, ok)
	assert.Equal(t, Price{Buy: 1.5, Sell: 2}, p)

	p, ok = snap.Price("bad")
	require.True(t, ok)
	assert.Equal(t, Price{}, p, "invalid and negative numbers are zero")

	assert.Equal(t, 0.0, snap.BuyPrice("short"))
	assert.Equal(t, 3, snap.Stats().Prices)
}

func TestBuild_Items(t *testing.T) {
	snap := mustBuild(t, Rows{
		itemsHeader,
		{"Plank", 19710, "alt", ""},
		{"Cloth", "", "VENDOR", "0.08"},
		{"Ore", "abc", "sometimes", -4},
		{"", 1, "BLOCK", 1},
		{"Plank", "", "craft", 3},
	}, Rows{}, Rows{})

	p, ok := snap.Policy("plank")
	require.True(t, ok)
	assert.Equal(t, ModeCraft, p.Mode, "later row wins")
	m, ok := p.Manual()
	require.True(t, ok)
	assert.Equal(t, 3.0, m)
	_, ok = snap.ItemID("plank")
	assert.False(t, ok, "later row without id clears it")

	p, _ = snap.Policy("cloth")
	assert.Equal(t, ModeVendor, p.Mode)
	m, _ = p.Manual()
	assert.Equal(t, 0.08, m)

	p, _ = snap.Policy("ore")
	assert.Equal(t, ModeNormal, p.Mode, "unknown mode reads as NORMAL")
	_, ok = p.Manual()
	assert.False(t, ok, "negative manual cost is absent")

	assert.Equal(t, []item.Key{"cloth", "ore", "plank"}, snap.Items())
}

func TestBuild_ItemIDs(t *testing.T) {
	snap := mustBuild(t, Rows{
		itemsHeader,
		{"Iron Ore", 19699},
		{"Copper Ore", "19697"},
		{"Gem", 1.5},
	}, Rows{}, Rows{})

	id, ok := snap.ItemID("iron ore")
	require.True(t, ok)
	assert.Equal(t, 19699, id)
	id, _ = snap.ItemID("copper ore")
	assert.Equal(t, 19697, id)
	_, ok = snap.ItemID("gem")
	assert.False(t, ok)
}

func TestBuild_Recipes(t *testing.T) {
	snap := mustBuild(t, Rows{}, Rows{
		recipesHeader,
		{"Bronze Ingot", 5, "Copper Ore", 10},
		{"Bronze Ingot", 9, "Tin", "1"},
		{"Steel Ingot", "x", "Iron Ore", "bad"},
		{"Gear", 0, "Steel Ingot", -2},
		{"Orphan", 1, "", 3},
		{"", 1, "Iron Ore", 3},
	}, Rows{})

	r, ok := snap.Recipe("bronze ingot")
	require.True(t, ok)
	assert.Equal(t, 5, r.OutputQuantity, "first output quantity wins")
	assert.Equal(t, []Ingredient{
		{Item: "copper ore", Quantity: 10},
		{Item: "tin", Quantity: 1},
	}, r.Ingredients, "ingredients accumulate in row order")

	r, _ = snap.Recipe("steel ingot")
	assert.Equal(t, 1, r.OutputQuantity)
	assert.Equal(t, []Ingredient{{Item: "iron ore", Quantity: 0}}, r.Ingredients)

	r, _ = snap.Recipe("gear")
	assert.Equal(t, 1, r.OutputQuantity)
	assert.Equal(t, 0.0, r.Ingredients[0].Quantity)

	_, ok = snap.Recipe("orphan")
	assert.False(t, ok, "rows with a blank ingredient are skipped")
	assert.Equal(t, []item.Key{"bronze ingot", "gear", "steel ingot"}, snap.Craftable())
}

func TestBuild_FingerprintIsContentHash(t *testing.T) {
	items := Rows{itemsHeader, {"A", 1, "", ""}}
	a := mustBuild(t, items, Rows{}, Rows{pricesHeader, {"A", 1}})
	b := mustBuild(t, items, Rows{}, Rows{pricesHeader, {"a", "1"}})
	c := mustBuild(t, items, Rows{}, Rows{pricesHeader, {"A", 2}})

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
