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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftcost/pkg/config"
	"github.com/NVIDIA/craftcost/pkg/costing"
	"github.com/NVIDIA/craftcost/pkg/logging"
	"github.com/NVIDIA/craftcost/pkg/serializer"
	"github.com/NVIDIA/craftcost/pkg/version"
)

const name = "craftcost"

// Execute runs the CLI with os.Args and exits non-zero on failure.
// SIGINT and SIGTERM cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if ctx.Err() != nil {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	info := version.Get()
	return &cli.Command{
		Name:                  name,
		Usage:                 "Guild Wars 2 crafting cost calculator",
		Version:               info.String(),
		EnableShellCompletion: true,
		Description: `craftcost computes what an item effectively costs to obtain, given market
prices, crafting recipes and per-item sourcing policies, and keeps the
catalog's prices and item ids up to date from the trading post.

The catalog is a directory of CSV files, a YAML/JSON workbook, a sqlite://
database or a postgres:// database.`,
		Flags: []cli.Flag{
			configFlag(),
			catalogFlag(),
			logLevelFlag(),
			formatFlag(),
			outputFlag(),
		},
		Commands: []*cli.Command{
			costCmd(),
			explainCmd(),
			profitCmd(),
			pricesCmd(),
			idsCmd(),
			cacheCmd(),
		},
	}
}

// setup loads the configuration, applies flag overrides and configures
// logging. Every action calls it first.
func setup(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("catalog") {
		cfg.Catalog = cmd.String("catalog")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	info := version.Get()
	logging.SetDefaultStructuredLoggerWithLevel(name, info.Version, cfg.LogLevel)
	slog.Debug("starting",
		"name", name,
		"version", info.Version,
		"commit", info.Commit,
		"date", info.Date,
		"catalog", cfg.Catalog)
	return cfg, nil
}

// openRuntime opens the configured catalog and snapshot store.
func openRuntime(ctx context.Context, cfg *config.Config) (*costing.Runtime, error) {
	return costing.Open(ctx, cfg, costing.WithVersion(version.Get().Version))
}

func closeRuntime(rt *costing.Runtime) {
	if err := rt.Close(); err != nil {
		slog.Warn("failed to release catalog resources", "error", err)
	}
}

// writeResult serializes v in the configured format to --output, or to the
// command's writer when no output path is given.
func writeResult(ctx context.Context, cmd *cli.Command, cfg *config.Config, v any) error {
	format, err := serializer.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var ser *serializer.Writer
	if path := cmd.String("output"); path != "" {
		ser = serializer.NewFileWriterOrStdout(format, path)
	} else {
		ser = serializer.NewWriter(format, cmd.Root().Writer)
	}
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, v)
}
