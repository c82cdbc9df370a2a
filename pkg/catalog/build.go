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
	"log/slog"
	"time"

	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/item"
)

// Column positions within each table.
const (
	ItemColName   = 0
	ItemColID     = 1
	ItemColMode   = 2
	ItemColManual = 3

	RecipeColOutput    = 0
	RecipeColOutputQty = 1
	RecipeColInput     = 2
	RecipeColInputQty  = 3

	PriceColName = 0
	PriceColBuy  = 1
	PriceColSell = 2
)

// buildReport counts rows that were tolerated rather than used.
type buildReport struct {
	skippedItems   int
	skippedRecipes int
	skippedPrices  int
	unknownModes   map[string]int
}

// Build normalizes raw item, recipe and price rows into a Snapshot.
//
// Row 0 of every table is a header and is ignored. Malformed rows never fail
// the build: blank keys are skipped and bad numbers fall back to defaults.
// A nil table is reported as a CONFIGURATION error.
func Build(items, recipes, prices Rows) (*Snapshot, error) {
	for _, t := range []struct {
		name string
		rows Rows
	}{
		{TableItems, items},
		{TableRecipes, recipes},
		{TablePrices, prices},
	} {
		if t.rows == nil {
			return nil, errors.NewWithContext(errors.ErrCodeConfiguration,
				"required catalog table is missing", map[string]any{"table": t.name})
		}
	}

	rep := buildReport{unknownModes: make(map[string]int)}
	c := content{
		Prices:   buildPrices(prices, &rep),
		Policies: make(map[item.Key]Policy),
		IDs:      make(map[item.Key]int),
	}
	buildItems(items, c.Policies, c.IDs, &rep)
	c.Recipes = buildRecipes(recipes, &rep)

	for raw, n := range rep.unknownModes {
		slog.Warn("unknown item mode treated as NORMAL", "mode", raw, "rows", n)
	}

	snap := &Snapshot{
		prices:      c.Prices,
		policies:    c.Policies,
		recipes:     c.Recipes,
		ids:         c.IDs,
		builtAt:     time.Now().UTC(),
		fingerprint: fingerprint(c),
	}

	st := snap.Stats()
	slog.Debug("catalog snapshot built",
		"items", st.Items,
		"recipes", st.Recipes,
		"prices", st.Prices,
		"ids", st.IDs,
		"skipped_items", rep.skippedItems,
		"skipped_recipes", rep.skippedRecipes,
		"skipped_prices", rep.skippedPrices)

	return snap, nil
}

func buildPrices(rows Rows, rep *buildReport) map[item.Key]Price {
	out := make(map[item.Key]Price)
	for _, row := range body(rows) {
		key := item.NormalizeValue(Cell(row, PriceColName))
		if key.IsEmpty() {
			rep.skippedPrices++
			continue
		}
		buy, _ := nonNegative(Cell(row, PriceColBuy))
		sell, _ := nonNegative(Cell(row, PriceColSell))
		out[key] = Price{Buy: buy, Sell: sell}
	}
	return out
}

func buildItems(rows Rows, policies map[item.Key]Policy, ids map[item.Key]int, rep *buildReport) {
	for _, row := range body(rows) {
		key := item.NormalizeValue(Cell(row, ItemColName))
		if key.IsEmpty() {
			rep.skippedItems++
			continue
		}

		rawMode := CellText(Cell(row, ItemColMode))
		mode, ok := ParseMode(rawMode)
		if !ok {
			rep.unknownModes[rawMode]++
		}

		p := Policy{Mode: mode}
		if m, ok := nonNegative(Cell(row, ItemColManual)); ok {
			p.ManualCost = &m
		}
		policies[key] = p

		// the id column is rewritten by the market updater, so a later row
		// without an id clears an earlier one like every other column
		if id, ok := positiveInt(Cell(row, ItemColID)); ok {
			ids[key] = id
		} else {
			delete(ids, key)
		}
	}
}

func buildRecipes(rows Rows, rep *buildReport) map[item.Key]Recipe {
	out := make(map[item.Key]Recipe)
	for _, row := range body(rows) {
		output := item.NormalizeValue(Cell(row, RecipeColOutput))
		input := item.NormalizeValue(Cell(row, RecipeColInput))
		if output.IsEmpty() || input.IsEmpty() {
			rep.skippedRecipes++
			continue
		}

		r, seen := out[output]
		if !seen {
			r.OutputQuantity = 1
			if q, ok := positiveInt(Cell(row, RecipeColOutputQty)); ok {
				r.OutputQuantity = q
			}
		}

		qty, _ := nonNegative(Cell(row, RecipeColInputQty))
		r.Ingredients = append(r.Ingredients, Ingredient{Item: input, Quantity: qty})
		out[output] = r
	}
	return out
}

// body returns rows without the header row.
func body(rows Rows) Rows {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}
