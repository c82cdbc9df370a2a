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

// Package cli implements the craftcost command-line interface.
//
// # Commands
//
// cost - Evaluate item costs:
//
//	craftcost cost [--kind effective|strict] NAME...
//
// Evaluates each name against the catalog. The effective cost applies the
// item's sourcing mode; the strict cost only crafts.
//
// explain - Show how a cost is derived:
//
//	craftcost explain [--kind effective|strict] NAME
//
// profit - Compare sell prices with craft costs:
//
//	craftcost profit NAME...
//
// prices update - Refresh the prices table from the trading post:
//
//	craftcost prices update
//
// ids fetch - Fill missing item ids from the name index:
//
//	craftcost ids fetch
//
// cache invalidate - Drop the shared catalog snapshot:
//
//	craftcost cache invalidate
//
// # Global Flags
//
//	--config, -c   YAML configuration file
//	--catalog      Catalog source (directory, workbook, sqlite://, postgres://)
//	--log-level    Log level (debug, info, warn, error)
//	--format, -t   Output format: json, yaml, table
//	--output, -o   Output file path (default: stdout)
//
// Flags override the configuration file and CRAFTCOST_* environment
// variables; see package config.
//
// # Usage Examples
//
//	craftcost --catalog ./catalog --format table cost "Mithril Ingot" "Orichalcum Ingot"
//	craftcost --catalog sqlite://gw2.db explain --kind strict "Gift of Metal"
//	CRAFTCOST_REDIS_ADDR=localhost:6379 craftcost --catalog ./catalog prices update
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Interrupted
package cli
