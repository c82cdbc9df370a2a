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

// Package market fetches trading post data and writes it back into catalog
// tables.
//
// Client requests prices in chunks of item ids, paced by a token bucket so
// the public API is not hammered. Unit prices arrive in copper and are
// converted to catalog units with exact decimal arithmetic. A chunk that
// fails is skipped and its ids are reported as missing.
//
// UpdatePrices and FillMissingIDs operate on any catalog.ReadWriter, so the
// same maintenance runs against a CSV directory, a workbook file or a SQL
// database:
//
//	src, closer, err := catalog.OpenSource("sqlite:///var/lib/craftcost/catalog.db")
//	if err != nil {
//		return err
//	}
//	defer closer.Close()
//	report, err := market.UpdatePrices(ctx, src, market.NewClient())
package market
