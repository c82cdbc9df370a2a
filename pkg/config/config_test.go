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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NVIDIA/craftcost/pkg/defaults"
	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mapLookup(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaults.SnapshotCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, defaults.MarketChunkSize, cfg.Market.ChunkSize)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Cache.Redis.Addr)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "craftcost.yaml", `
catalog: sqlite:///tmp/catalog.db
logLevel: debug
format: yaml
cache:
  ttl: 10m
  redis:
    addr: localhost:6379
    db: 2
market:
  chunkSize: 100
  interval: 1s
server:
  port: 9090
`)

	cfg, err := Load(path, writeFile(t, "empty.env", ""))
	require.NoError(t, err)

	assert.Equal(t, "sqlite:///tmp/catalog.db", cfg.Catalog)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, 100, cfg.Market.ChunkSize)
	assert.Equal(t, time.Second, cfg.Market.Interval)
	assert.Equal(t, 9090, cfg.Server.Port)
	// untouched keys keep defaults
	assert.Equal(t, defaults.SnapshotCacheKey, cfg.Cache.Key)
}

func TestLoad_FileErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfiguration, errors.CodeOf(err))
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yaml", "catalgo: typo\n"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfiguration, errors.CodeOf(err))
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "empty.yaml", ""), writeFile(t, "empty.env", ""))
		require.NoError(t, err)
		assert.Equal(t, Default().Catalog, cfg.Catalog)
	})
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := writeFile(t, "test.env", "CRAFTCOST_CATALOG=/srv/catalog\nCRAFTCOST_CACHE_TTL=90s\n")

	// unset after the test so godotenv's writes do not leak
	t.Setenv("CRAFTCOST_CATALOG", "")
	require.NoError(t, os.Unsetenv("CRAFTCOST_CATALOG"))
	t.Setenv("CRAFTCOST_CACHE_TTL", "2m")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "/srv/catalog", cfg.Catalog)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL, "process environment wins over env file")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(mapLookup(map[string]string{
		"CRAFTCOST_CATALOG":           "postgres://user@db/catalog",
		"CRAFTCOST_REDIS_ADDR":        "redis:6379",
		"CRAFTCOST_REDIS_DB":          "3",
		"CRAFTCOST_MARKET_CHUNK_SIZE": "50",
		"CRAFTCOST_MARKET_INTERVAL":   "500ms",
		"CRAFTCOST_RATE_LIMIT":        "12.5",
		"PORT":                        "7070",
		"SHUTDOWN_TIMEOUT_SECONDS":    "5",
		"LOG_LEVEL":                   "warn",
		"CRAFTCOST_FORMAT":            "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://user@db/catalog", cfg.Catalog)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 3, cfg.Cache.Redis.DB)
	assert.Equal(t, 50, cfg.Market.ChunkSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Market.Interval)
	assert.Equal(t, 12.5, cfg.Server.RateLimit)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format, "blank values are ignored")
}

func TestApplyEnv_PrefixedLogLevelWins(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.applyEnv(mapLookup(map[string]string{
		"LOG_LEVEL":           "warn",
		"CRAFTCOST_LOG_LEVEL": "debug",
	})))
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(mapLookup(map[string]string{
		"CRAFTCOST_CACHE_TTL": "soon",
		"PORT":                "eighty",
	}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "CRAFTCOST_CACHE_TTL")
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty catalog", func(c *Config) { c.Catalog = " " }},
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
		{"empty key", func(c *Config) { c.Cache.Key = "" }},
		{"negative redis db", func(c *Config) { c.Cache.Redis.DB = -1 }},
		{"zero chunk size", func(c *Config) { c.Market.ChunkSize = 0 }},
		{"negative interval", func(c *Config) { c.Market.Interval = -time.Millisecond }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"zero rate limit", func(c *Config) { c.Server.RateLimit = 0 }},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}

	t.Run("zero interval allowed", func(t *testing.T) {
		cfg := Default()
		cfg.Market.Interval = 0
		assert.NoError(t, cfg.Validate())
	})
}
