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
	"log/slog"

	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/NVIDIA/craftcost/pkg/item"
)

// path is the set of items being resolved on the current call chain.
type path map[item.Key]struct{}

func (p path) has(k item.Key) bool {
	_, ok := p[k]
	return ok
}

// Resolver evaluates costs against one snapshot. Memo tables live for the
// lifetime of the Resolver; create a new one per snapshot and do not share it
// between goroutines.
type Resolver struct {
	snap *catalog.Snapshot

	effective map[item.Key]Result
	strict    map[item.Key]Result

	// strictPath is the strict evaluation's own visiting set.
	strictPath path

	cycles int
}

// New returns a Resolver bound to snap.
func New(snap *catalog.Snapshot) *Resolver {
	return &Resolver{
		snap:       snap,
		effective:  make(map[item.Key]Result),
		strict:     make(map[item.Key]Result),
		strictPath: make(path),
	}
}

// Snapshot returns the snapshot the resolver reads.
func (r *Resolver) Snapshot() *catalog.Snapshot {
	return r.snap
}

// EffectiveCost returns the cheapest way to obtain one unit of key subject to
// its policy.
func (r *Resolver) EffectiveCost(key item.Key) Result {
	res := r.effectiveCost(key, make(path))
	evaluations.WithLabelValues(kindEffective, res.Status().String()).Inc()
	return res
}

// EffectiveCostOf normalizes name and calls EffectiveCost.
func (r *Resolver) EffectiveCostOf(name string) Result {
	return r.EffectiveCost(item.Normalize(name))
}

// StrictCraftCost returns the cost of crafting one unit of key from its
// recipe, ignoring the option to buy key itself.
func (r *Resolver) StrictCraftCost(key item.Key) Result {
	res := r.strictCraftCost(key)
	evaluations.WithLabelValues(kindStrict, res.Status().String()).Inc()
	return res
}

// StrictCraftCostOf normalizes name and calls StrictCraftCost.
func (r *Resolver) StrictCraftCostOf(name string) Result {
	return r.StrictCraftCost(item.Normalize(name))
}

func (r *Resolver) effectiveCost(key item.Key, visiting path) Result {
	if key.IsEmpty() {
		return Unpriceable()
	}
	if res, ok := r.effective[key]; ok {
		return res
	}
	if visiting.has(key) {
		// The cycle result is memoized for key regardless of which path
		// reached it. Another path that could price key sees this too.
		r.breakCycle(key, kindEffective)
		r.effective[key] = Unpriceable()
		return Unpriceable()
	}

	res := r.evaluate(key, visiting)
	r.effective[key] = res
	return res
}

func (r *Resolver) evaluate(key item.Key, visiting path) Result {
	policy, _ := r.snap.Policy(key)

	switch policy.Mode {
	case catalog.ModeBlock:
		return Unpriceable()
	case catalog.ModeVendor:
		return manualOr(policy, Unpriceable())
	case catalog.ModeNormal, catalog.ModeAlt, catalog.ModeCraft:
	}

	if m, ok := policy.Manual(); ok {
		return Priced(m, OriginManual)
	}

	craft := r.craftCost(key, visiting)

	switch policy.Mode {
	case catalog.ModeAlt:
		if craft.IsPriced() {
			return craft
		}
		return Priced(0, OriginFree)
	case catalog.ModeCraft:
		if craft.IsPriced() {
			return craft
		}
		return Unpriceable()
	case catalog.ModeNormal:
		return cheaper(craft, r.snap.BuyPrice(key))
	case catalog.ModeBlock, catalog.ModeVendor:
		// handled above
		return Unpriceable()
	default:
		return Unpriceable()
	}
}

// cheaper picks between a craft result and a market price. A market price of
// zero means the item is not on the market. Ties go to craft.
func cheaper(craft Result, market float64) Result {
	hasMarket := market > 0
	c, hasCraft := craft.Cost()
	switch {
	case hasCraft && hasMarket:
		if market < c {
			return Priced(market, OriginMarket)
		}
		return craft
	case hasCraft:
		return craft
	case hasMarket:
		return Priced(market, OriginMarket)
	default:
		return Unpriceable()
	}
}

// craftCost sums the effective cost of each ingredient with key added to the
// visiting set. It returns NotApplicable without a recipe and Unpriceable when
// any ingredient is unpriceable.
func (r *Resolver) craftCost(key item.Key, visiting path) Result {
	recipe, ok := r.snap.Recipe(key)
	if !ok {
		return NotApplicable()
	}

	visiting[key] = struct{}{}
	defer delete(visiting, key)

	total := 0.0
	for _, ing := range recipe.Ingredients {
		c, ok := r.effectiveCost(ing.Item, visiting).Cost()
		if !ok {
			return Unpriceable()
		}
		total += c * ing.Quantity
	}
	return Priced(total/float64(recipe.OutputQuantity), OriginCraft)
}

func (r *Resolver) strictCraftCost(key item.Key) Result {
	if key.IsEmpty() {
		return Unpriceable()
	}
	if res, ok := r.strict[key]; ok {
		return res
	}
	if r.strictPath.has(key) {
		r.breakCycle(key, kindStrict)
		r.strict[key] = Unpriceable()
		return Unpriceable()
	}
	r.strictPath[key] = struct{}{}
	defer delete(r.strictPath, key)

	res := r.evaluateStrict(key)
	r.strict[key] = res
	return res
}

func (r *Resolver) evaluateStrict(key item.Key) Result {
	policy, _ := r.snap.Policy(key)

	switch policy.Mode {
	case catalog.ModeBlock:
		return Unpriceable()
	case catalog.ModeVendor:
		return manualOr(policy, Unpriceable())
	case catalog.ModeNormal, catalog.ModeAlt, catalog.ModeCraft:
	}

	// ingredients resolve with effective cost from a fresh visiting set
	// holding only the queried item
	return r.craftCost(key, make(path))
}

func manualOr(p catalog.Policy, fallback Result) Result {
	if m, ok := p.Manual(); ok {
		return Priced(m, OriginManual)
	}
	return fallback
}

func (r *Resolver) breakCycle(key item.Key, kind string) {
	r.cycles++
	cycleBreaks.WithLabelValues(kind).Inc()
	slog.Debug("recipe cycle broken", "item", key.String(), "kind", kind)
}

// Stats reports memo sizes and cycle breaks for this resolver.
type Stats struct {
	EffectiveMemo int `json:"effectiveMemo" yaml:"effectiveMemo"`
	StrictMemo    int `json:"strictMemo" yaml:"strictMemo"`
	CycleBreaks   int `json:"cycleBreaks" yaml:"cycleBreaks"`
}

// Stats returns the current memo sizes and cycle-break count.
func (r *Resolver) Stats() Stats {
	return Stats{
		EffectiveMemo: len(r.effective),
		StrictMemo:    len(r.strict),
		CycleBreaks:   r.cycles,
	}
}
