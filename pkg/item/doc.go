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

// Package item canonicalizes item names into lookup keys.
//
// Two names refer to the same item iff they normalize to the same Key:
//
//	item.Normalize("  Mithril Ingot ") == item.Normalize("mithril ingot") // true
//
// Normalization replaces non-breaking spaces, collapses runs of whitespace,
// trims, and lower-cases. It is idempotent and total; blank input yields the
// empty Key, which every consumer treats as "no item".
package item
