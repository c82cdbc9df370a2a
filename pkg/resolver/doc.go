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

// Package resolver computes crafting costs over a catalog snapshot.
//
// Two queries are supported:
//
//   - EffectiveCost: the cheapest way to obtain one unit, choosing between
//     the market buy price and crafting from the recipe, subject to the
//     item's mode and manual cost.
//   - StrictCraftCost: the cost of crafting one unit from its recipe. Only
//     the queried item is strict; its ingredients use effective cost. An
//     item without a recipe is NotApplicable.
//
// Mode rules for effective cost, in order:
//
//	BLOCK   unpriceable
//	VENDOR  manual cost, else unpriceable
//	any     manual cost when set
//	ALT     craft cost, else 0
//	CRAFT   craft cost, else unpriceable
//	NORMAL  min(craft, market) of whichever are available
//
// A recipe is unpriceable when any ingredient is. Market prices of zero are
// treated as absent.
//
// Evaluation is recursive and memoized per Resolver. An item reached again
// while it is still being resolved is a cycle: it resolves as unpriceable and
// that result is memoized for the item, whichever path reached it first.
// Recursion depth follows the depth of the recipe graph.
//
// A Resolver is not safe for concurrent use. Snapshots are; create one
// Resolver per request over a shared snapshot:
//
//	r := resolver.New(snap)
//	res := r.EffectiveCostOf("Mithril Ingot")
//	if cost, ok := res.Cost(); ok {
//		fmt.Println(cost)
//	}
package resolver
