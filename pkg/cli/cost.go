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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func costCmd() *cli.Command {
	return &cli.Command{
		Name:                  "cost",
		EnableShellCompletion: true,
		Usage:                 "Evaluate the cost of one or more items",
		ArgsUsage:             "NAME...",
		Description: `Evaluate each named item against the catalog.

The effective cost applies the item's sourcing mode (NORMAL, VENDOR, ALT,
BLOCK, CRAFT) and picks the cheaper of buying and crafting. The strict cost
only crafts and reports not_applicable for items without a recipe.

Names are matched case-insensitively with whitespace collapsed.`,
		Flags: []cli.Flag{kindFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			names, err := requireArgs(cmd, 1, "item name")
			if err != nil {
				return err
			}
			kind, err := parseKind(cmd)
			if err != nil {
				return err
			}
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			rt, err := openRuntime(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			rep, err := rt.Costs(ctx, kind, names)
			if err != nil {
				return err
			}
			return writeResult(ctx, cmd, cfg, rep)
		},
	}
}

func explainCmd() *cli.Command {
	return &cli.Command{
		Name:                  "explain",
		EnableShellCompletion: true,
		Usage:                 "Show how the cost of an item is derived",
		ArgsUsage:             "NAME",
		Description: `Report the item's mode, manual and market prices, and its recipe one level
deep with the unit cost and subtotal of every ingredient.`,
		Flags: []cli.Flag{kindFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, 1, "item name")
			if err != nil {
				return err
			}
			kind, err := parseKind(cmd)
			if err != nil {
				return err
			}
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			rt, err := openRuntime(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			b, err := rt.Explain(ctx, kind, args[0])
			if err != nil {
				return err
			}
			return writeResult(ctx, cmd, cfg, b)
		},
	}
}

func profitCmd() *cli.Command {
	return &cli.Command{
		Name:                  "profit",
		EnableShellCompletion: true,
		Usage:                 "Compare sell prices with craft costs",
		ArgsUsage:             "NAME...",
		Description: `For each item report the market sell price, the strict craft cost and,
when both are known, the profit and margin of crafting to sell.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			names, err := requireArgs(cmd, 1, "item name")
			if err != nil {
				return err
			}
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			rt, err := openRuntime(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			sheet, err := rt.Profit(ctx, names)
			if err != nil {
				return err
			}
			return writeResult(ctx, cmd, cfg, sheet)
		},
	}
}
