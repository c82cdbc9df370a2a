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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftcost/pkg/config"
	"github.com/NVIDIA/craftcost/pkg/market"
)

func pricesCmd() *cli.Command {
	return &cli.Command{
		Name:  "prices",
		Usage: "Manage catalog prices",
		Commands: []*cli.Command{
			{
				Name:                  "update",
				EnableShellCompletion: true,
				Usage:                 "Refresh the prices table from the trading post",
				Description: `Request buy and sell quotes for every item with an id and rewrite the
prices table. VENDOR items are not requested; their manual cost is written
as both prices. Quotes are requested in chunks at a fixed pace; a failed
chunk is skipped with a warning and its items keep their old prices.

The cached snapshot is invalidated after a successful update.`,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := setup(cmd)
					if err != nil {
						return err
					}
					rt, err := openRuntime(ctx, cfg)
					if err != nil {
						return err
					}
					defer closeRuntime(rt)

					rep, err := market.UpdatePrices(ctx, rt.Source, newMarketClient(cfg))
					if err != nil {
						return err
					}
					if err := rt.Invalidate(ctx); err != nil {
						slog.Warn("failed to invalidate snapshot cache", "error", err)
					}
					return writeResult(ctx, cmd, cfg, rep)
				},
			},
		},
	}
}

func idsCmd() *cli.Command {
	return &cli.Command{
		Name:  "ids",
		Usage: "Manage catalog item ids",
		Commands: []*cli.Command{
			{
				Name:                  "fetch",
				EnableShellCompletion: true,
				Usage:                 "Fill missing item ids from the trading post name index",
				Description: `Download the bulk name index and write the id of every item whose id cell
is blank. Names the index does not know are marked NOT FOUND so later runs
skip them, and are listed in the report.`,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := setup(cmd)
					if err != nil {
						return err
					}
					rt, err := openRuntime(ctx, cfg)
					if err != nil {
						return err
					}
					defer closeRuntime(rt)

					rep, err := market.FillMissingIDs(ctx, rt.Source, newMarketClient(cfg))
					if err != nil {
						return err
					}
					return writeResult(ctx, cmd, cfg, rep)
				},
			},
		},
	}
}

func newMarketClient(cfg *config.Config) *market.Client {
	return market.NewClient(
		market.WithPricesURL(cfg.Market.PricesURL),
		market.WithNamesURL(cfg.Market.NamesURL),
		market.WithChunkSize(cfg.Market.ChunkSize),
		market.WithInterval(cfg.Market.Interval),
	)
}
