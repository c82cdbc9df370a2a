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

package market

import (
	"context"
	"log/slog"
	"sort"

	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/header"
	"github.com/NVIDIA/craftcost/pkg/item"
	"github.com/shopspring/decimal"
)

// notFoundCell marks an item whose id lookup failed.
const notFoundCell = "NOT FOUND"

// PriceUpdateReport summarizes an UpdatePrices run.
type PriceUpdateReport struct {
	header.Header `json:",inline" yaml:",inline"`

	// Rows is the number of price rows examined.
	Rows int `json:"rows" yaml:"rows"`
	// Requested is the number of distinct ids sent to the market.
	Requested int `json:"requested" yaml:"requested"`
	// Updated counts rows whose buy and sell were replaced by market data.
	Updated int `json:"updated" yaml:"updated"`
	// Vendor counts vendor rows filled from their manual cost.
	Vendor int `json:"vendor" yaml:"vendor"`
	// VendorWithoutCost lists vendor items that have no manual cost.
	VendorWithoutCost []string `json:"vendorWithoutCost,omitempty" yaml:"vendorWithoutCost,omitempty"`
	// WithoutID lists priced items that have no market id.
	WithoutID []string `json:"withoutId,omitempty" yaml:"withoutId,omitempty"`
	// NotReturned lists ids the market did not answer for.
	NotReturned []int `json:"notReturned,omitempty" yaml:"notReturned,omitempty"`
	// FailedChunks counts skipped market requests.
	FailedChunks int `json:"failedChunks" yaml:"failedChunks"`
}

// UpdatePrices refreshes the buy and sell columns of the prices table in rw.
//
// Vendor items take their manual cost for both columns and are not fetched.
// Items without a market id are left unchanged. Rows the market answered for
// get the quoted prices, with a blank cell where a side has no orders. The
// prices table is written back once, after all quotes are in.
func UpdatePrices(ctx context.Context, rw catalog.ReadWriter, fetcher PriceFetcher) (*PriceUpdateReport, error) {
	items, err := readTable(ctx, rw, catalog.TableItems)
	if err != nil {
		return nil, err
	}
	prices, err := readTable(ctx, rw, catalog.TablePrices)
	if err != nil {
		return nil, err
	}

	// only the items table matters for ids and policies
	snap, err := catalog.Build(items, catalog.Rows{}, catalog.Rows{})
	if err != nil {
		return nil, err
	}

	rep := &PriceUpdateReport{}
	rep.Init(header.KindPriceUpdate, "")

	pending := make(map[int][]int) // id -> row indexes
	for i := 1; i < len(prices); i++ {
		key := item.NormalizeValue(catalog.Cell(prices[i], catalog.PriceColName))
		if key.IsEmpty() {
			continue
		}
		rep.Rows++

		if p, ok := snap.Policy(key); ok && p.Mode == catalog.ModeVendor {
			manual, has := p.Manual()
			if !has {
				rep.VendorWithoutCost = append(rep.VendorWithoutCost, key.String())
				slog.Warn("vendor item has no manual cost", "item", key.String())
				continue
			}
			prices[i] = setCell(prices[i], catalog.PriceColBuy, manual)
			prices[i] = setCell(prices[i], catalog.PriceColSell, manual)
			rep.Vendor++
			continue
		}

		id, ok := snap.ItemID(key)
		if !ok {
			rep.WithoutID = append(rep.WithoutID, key.String())
			continue
		}
		pending[id] = append(pending[id], i)
	}

	ids := make([]int, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	rep.Requested = len(ids)

	if len(rep.WithoutID) > 0 {
		slog.Info("price rows without a market id left unchanged", "count", len(rep.WithoutID))
	}

	if len(ids) > 0 {
		res, err := fetcher.Prices(ctx, ids)
		if err != nil {
			return nil, err
		}
		rep.NotReturned = res.Missing
		rep.FailedChunks = res.FailedChunks

		for id, q := range res.Quotes {
			for _, i := range pending[id] {
				prices[i] = setCell(prices[i], catalog.PriceColBuy, priceCell(q.Buy))
				prices[i] = setCell(prices[i], catalog.PriceColSell, priceCell(q.Sell))
				rep.Updated++
			}
		}
	}

	if err := rw.WriteTable(ctx, catalog.TablePrices, prices); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable,
			"failed to write prices table", err, map[string]any{"table": catalog.TablePrices})
	}

	slog.Info("prices updated",
		"rows", rep.Rows,
		"requested", rep.Requested,
		"updated", rep.Updated,
		"vendor", rep.Vendor,
		"not_returned", len(rep.NotReturned),
		"failed_chunks", rep.FailedChunks)
	return rep, nil
}

// IDFillReport summarizes a FillMissingIDs run.
type IDFillReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Checked  int      `json:"checked" yaml:"checked"`
	Filled   int      `json:"filled" yaml:"filled"`
	NotFound []string `json:"notFound,omitempty" yaml:"notFound,omitempty"`
}

// FillMissingIDs looks up every item whose id cell is blank in the names
// index and writes the ids it finds back to the items table. Names that are
// not in the index get a NOT FOUND marker so later runs skip them; the
// marker is not a valid id and is ignored when building snapshots.
func FillMissingIDs(ctx context.Context, rw catalog.ReadWriter, names NameFetcher) (*IDFillReport, error) {
	items, err := readTable(ctx, rw, catalog.TableItems)
	if err != nil {
		return nil, err
	}

	rep := &IDFillReport{}
	rep.Init(header.KindIDFill, "")

	var missing []int
	for i := 1; i < len(items); i++ {
		key := item.NormalizeValue(catalog.Cell(items[i], catalog.ItemColName))
		if key.IsEmpty() {
			continue
		}
		if catalog.CellText(catalog.Cell(items[i], catalog.ItemColID)) != "" {
			continue
		}
		missing = append(missing, i)
	}
	rep.Checked = len(missing)
	if len(missing) == 0 {
		slog.Info("no missing item ids")
		return rep, nil
	}

	idx, err := names.NameIndex(ctx)
	if err != nil {
		return nil, err
	}

	for _, i := range missing {
		key := item.NormalizeValue(catalog.Cell(items[i], catalog.ItemColName))
		id, ok := idx[key]
		if !ok {
			items[i] = setCell(items[i], catalog.ItemColID, notFoundCell)
			rep.NotFound = append(rep.NotFound, key.String())
			continue
		}
		items[i] = setCell(items[i], catalog.ItemColID, id)
		rep.Filled++
	}

	if err := rw.WriteTable(ctx, catalog.TableItems, items); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable,
			"failed to write items table", err, map[string]any{"table": catalog.TableItems})
	}

	slog.Info("item ids filled", "checked", rep.Checked, "filled", rep.Filled, "not_found", len(rep.NotFound))
	return rep, nil
}

func readTable(ctx context.Context, src catalog.Source, name string) (catalog.Rows, error) {
	rows, err := src.ReadTable(ctx, name)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.WrapWithContext(errors.ErrCodeConfiguration,
				"required catalog table is missing", err, map[string]any{"table": name})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable,
			"failed to read catalog table", err, map[string]any{"table": name})
	}
	if rows == nil {
		rows = catalog.Rows{}
	}
	return rows, nil
}

// priceCell renders a missing price as a blank cell. Two-place amounts
// convert to the nearest float64, which formats back to the same digits.
func priceCell(v decimal.Decimal) any {
	if !v.IsPositive() {
		return ""
	}
	return v.InexactFloat64()
}

func setCell(row []any, i int, v any) []any {
	for len(row) <= i {
		row = append(row, "")
	}
	row[i] = v
	return row
}
