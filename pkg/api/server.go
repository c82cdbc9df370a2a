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

package api

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/craftcost/pkg/cache"
	"github.com/NVIDIA/craftcost/pkg/config"
	"github.com/NVIDIA/craftcost/pkg/costing"
	"github.com/NVIDIA/craftcost/pkg/logging"
	"github.com/NVIDIA/craftcost/pkg/server"
	"github.com/NVIDIA/craftcost/pkg/version"
)

const name = "craftcostd"

// pinger is implemented by stores that hold a remote connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// Serve starts the API server and blocks until shutdown.
// It configures logging, opens the catalog source and snapshot store,
// registers routes and handles graceful shutdown.
func Serve(ctx context.Context, cfg *config.Config) error {
	info := version.Get()
	logging.SetDefaultStructuredLoggerWithLevel(name, info.Version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", info.Version,
		"commit", info.Commit,
		"date", info.Date,
		"catalog", cfg.Catalog,
	)

	rt, err := costing.Open(ctx, cfg, costing.WithVersion(info.Version))
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			slog.Warn("failed to release catalog resources", "error", err)
		}
	}()

	s := server.New(newServerOptions(cfg, rt.Service, rt.Store)...)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// newServerOptions maps the runtime configuration onto server options.
func newServerOptions(cfg *config.Config, svc *costing.Service, store cache.Store) []server.Option {
	sc := server.NewConfig()
	sc.Name = name
	sc.Version = version.Get().Version
	if cfg.Server.Address != "" {
		sc.Address = cfg.Server.Address
	}
	if cfg.Server.Port > 0 {
		sc.Port = cfg.Server.Port
	}
	if cfg.Server.RateLimit > 0 {
		sc.RateLimit = rate.Limit(cfg.Server.RateLimit)
	}
	if cfg.Server.RateLimitBurst > 0 {
		sc.RateLimitBurst = cfg.Server.RateLimitBurst
	}
	if cfg.Server.ShutdownTimeout > 0 {
		sc.ShutdownTimeout = cfg.Server.ShutdownTimeout
	}

	h := NewHandler(svc, WithMaxNames(sc.MaxBulkRequests))
	opts := []server.Option{
		server.WithConfig(sc),
		server.WithHandler(h.Routes()),
		server.WithReadinessCheck(func(ctx context.Context) error {
			if _, err := svc.Snapshot(ctx); err != nil {
				return fmt.Errorf("catalog not loadable: %w", err)
			}
			return nil
		}),
	}
	if p, ok := store.(pinger); ok {
		opts = append(opts, server.WithReadinessCheck(func(ctx context.Context) error {
			if err := p.Ping(ctx); err != nil {
				return fmt.Errorf("snapshot store unreachable: %w", err)
			}
			return nil
		}))
	}
	return opts
}
