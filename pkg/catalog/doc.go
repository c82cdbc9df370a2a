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

// Package catalog turns raw item, recipe and price tables into an immutable
// Snapshot for cost resolution.
//
// # Tables
//
// Every table is a list of rows whose first row is a header:
//
//	Items:   [name, id, mode, manualCost]
//	Recipes: [outputName, outputQty, ingredientName, ingredientQty]
//	Prices:  [name, buyPrice, sellPrice]
//
// Build is deliberately lenient: rows with a blank name are skipped, invalid
// numbers fall back to defaults (price 0, output quantity 1, ingredient
// quantity 0, no manual cost) and an unknown mode is read as NORMAL. Only a
// missing table is an error.
//
// Duplicate item rows overwrite earlier ones. Duplicate recipe rows for the
// same output append their ingredient and keep the first output quantity.
//
// # Sources
//
// A Source supplies tables. Implementations cover an in-memory map, a
// directory of CSV files, a single YAML/JSON workbook and a SQL database
// (SQLite through modernc.org/sqlite, PostgreSQL through lib/pq). OpenSource
// picks one from a URI and Load reads all three tables:
//
//	src, closer, err := catalog.OpenSource("sqlite://catalog.db")
//	if err != nil {
//		return err
//	}
//	defer closer.Close()
//	snap, err := catalog.Load(ctx, src)
//
// # Serialization
//
// Snapshot implements json.Marshaler through Document, which carries a
// CatalogSnapshot header and a content fingerprint. The snapshot cache
// stores this form.
package catalog
