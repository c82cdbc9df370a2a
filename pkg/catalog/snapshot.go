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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/NVIDIA/craftcost/pkg/item"
)

// Table names read from a Source.
const (
	TableItems   = "Items"
	TableRecipes = "Recipes"
	TablePrices  = "Prices"
)

// RequiredTables lists the tables every catalog must provide.
func RequiredTables() []string {
	return []string{TableItems, TableRecipes, TablePrices}
}

// Rows is a raw table: row 0 is a header, each row is a list of cells.
// A nil Rows means the table does not exist.
type Rows [][]any

// Price holds the market observations for one item.
type Price struct {
	// Buy is the buy-order price; zero means no market price.
	Buy float64 `json:"buy" yaml:"buy"`
	// Sell is the sell-listing price; zero means unknown.
	Sell float64 `json:"sell,omitempty" yaml:"sell,omitempty"`
}

// Policy is the sourcing policy of one item.
type Policy struct {
	Mode Mode `json:"mode" yaml:"mode"`
	// ManualCost, when set, overrides market and recipe for every mode
	// except ModeBlock.
	ManualCost *float64 `json:"manualCost,omitempty" yaml:"manualCost,omitempty"`
}

// Manual returns the manual cost and whether one is set.
func (p Policy) Manual() (float64, bool) {
	if p.ManualCost == nil {
		return 0, false
	}
	return *p.ManualCost, true
}

// Ingredient is one input of a recipe.
type Ingredient struct {
	Item     item.Key `json:"item" yaml:"item"`
	Quantity float64  `json:"quantity" yaml:"quantity"`
}

// Recipe produces OutputQuantity units of its output from Ingredients.
type Recipe struct {
	OutputQuantity int          `json:"outputQuantity" yaml:"outputQuantity"`
	Ingredients    []Ingredient `json:"ingredients" yaml:"ingredients"`
}

// Stats summarizes the size of a snapshot.
type Stats struct {
	Items   int `json:"items" yaml:"items"`
	Recipes int `json:"recipes" yaml:"recipes"`
	Prices  int `json:"prices" yaml:"prices"`
	IDs     int `json:"ids" yaml:"ids"`
}

// Snapshot is an immutable, normalized view of a catalog. All accessors are
// safe for concurrent use; values returned must not be modified.
type Snapshot struct {
	prices      map[item.Key]Price
	policies    map[item.Key]Policy
	recipes     map[item.Key]Recipe
	ids         map[item.Key]int
	builtAt     time.Time
	fingerprint string
}

// Price returns the market observation for k.
func (s *Snapshot) Price(k item.Key) (Price, bool) {
	p, ok := s.prices[k]
	return p, ok
}

// BuyPrice returns the buy-order price of k, or zero when absent.
func (s *Snapshot) BuyPrice(k item.Key) float64 {
	return s.prices[k].Buy
}

// Policy returns the sourcing policy of k.
func (s *Snapshot) Policy(k item.Key) (Policy, bool) {
	p, ok := s.policies[k]
	return p, ok
}

// Recipe returns the recipe producing k.
func (s *Snapshot) Recipe(k item.Key) (Recipe, bool) {
	r, ok := s.recipes[k]
	return r, ok
}

// ItemID returns the external market id recorded for k.
func (s *Snapshot) ItemID(k item.Key) (int, bool) {
	id, ok := s.ids[k]
	return id, ok
}

// Items returns every key that has a policy row, sorted.
func (s *Snapshot) Items() []item.Key {
	return sortedKeys(s.policies)
}

// Craftable returns every key that has a recipe, sorted.
func (s *Snapshot) Craftable() []item.Key {
	return sortedKeys(s.recipes)
}

// BuiltAt returns when the snapshot was built from source rows.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// Fingerprint returns a content hash of the snapshot, stable across
// serialization round trips.
func (s *Snapshot) Fingerprint() string {
	return s.fingerprint
}

// Stats returns table sizes.
func (s *Snapshot) Stats() Stats {
	return Stats{
		Items:   len(s.policies),
		Recipes: len(s.recipes),
		Prices:  len(s.prices),
		IDs:     len(s.ids),
	}
}

func sortedKeys[V any](m map[item.Key]V) []item.Key {
	keys := make([]item.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// content is the hashed part of a snapshot; maps marshal with sorted keys.
type content struct {
	Prices   map[item.Key]Price  `json:"prices"`
	Policies map[item.Key]Policy `json:"policies"`
	Recipes  map[item.Key]Recipe `json:"recipes"`
	IDs      map[item.Key]int    `json:"ids"`
}

func fingerprint(c content) string {
	data, err := json.Marshal(c)
	if err != nil {
		// only reachable with a Mode outside the enumeration
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
