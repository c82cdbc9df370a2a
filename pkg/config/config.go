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
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/craftcost/pkg/defaults"
	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/serializer"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every craftcost environment variable.
const EnvPrefix = "CRAFTCOST_"

// DefaultEnvFile is loaded when present and no other env file is given.
const DefaultEnvFile = ".env"

// Config is the runtime configuration shared by the CLI and the server.
type Config struct {
	// Catalog is the source URI of the items, recipes and prices tables.
	Catalog  string `json:"catalog" yaml:"catalog"`
	LogLevel string `json:"logLevel" yaml:"logLevel"`
	Format   string `json:"format" yaml:"format"`

	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	Market MarketConfig `json:"market" yaml:"market"`
	Server ServerConfig `json:"server" yaml:"server"`
}

// CacheConfig configures the snapshot cache.
type CacheConfig struct {
	TTL   time.Duration `json:"ttl" yaml:"ttl"`
	Key   string        `json:"key" yaml:"key"`
	Redis RedisConfig   `json:"redis" yaml:"redis"`
}

// RedisConfig selects the external snapshot store. An empty Addr keeps the
// store in process.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"-" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	Prefix   string `json:"prefix" yaml:"prefix"`
}

// MarketConfig configures the trading post client.
type MarketConfig struct {
	PricesURL string        `json:"pricesURL" yaml:"pricesURL"`
	NamesURL  string        `json:"namesURL" yaml:"namesURL"`
	ChunkSize int           `json:"chunkSize" yaml:"chunkSize"`
	Interval  time.Duration `json:"interval" yaml:"interval"`
}

// ServerConfig holds the craftcostd listener settings.
type ServerConfig struct {
	Address         string        `json:"address" yaml:"address"`
	Port            int           `json:"port" yaml:"port"`
	RateLimit       float64       `json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst  int           `json:"rateLimitBurst" yaml:"rateLimitBurst"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Catalog:  ".",
		LogLevel: "info",
		Format:   string(serializer.FormatJSON),
		Cache: CacheConfig{
			TTL: defaults.SnapshotCacheTTL,
			Key: defaults.SnapshotCacheKey,
		},
		Market: MarketConfig{
			PricesURL: defaults.MarketPricesURL,
			NamesURL:  defaults.MarketNamesURL,
			ChunkSize: defaults.MarketChunkSize,
			Interval:  defaults.MarketRequestInterval,
		},
		Server: ServerConfig{
			Port:            8080,
			RateLimit:       100,
			RateLimitBurst:  200,
			ShutdownTimeout: defaults.ServerShutdownTimeout,
		},
	}
}

// Load builds a Config from defaults, then the YAML file at path (optional),
// then env files, then the process environment. With no env files the
// DefaultEnvFile is read if it exists. Variables already set in the process
// environment win over env file entries.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeConfiguration, "failed to read config file", err,
			map[string]any{"path": path})
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty file decodes to io.EOF and leaves the defaults in place
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.WrapWithContext(errors.ErrCodeConfiguration, "invalid config file", err,
			map[string]any{"path": path})
	}
	slog.Debug("config file loaded", "path", path)
	return nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return errors.Wrap(errors.ErrCodeConfiguration, "failed to stat env file", err)
		}
		files = []string{DefaultEnvFile}
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.WrapWithContext(errors.ErrCodeConfiguration, "failed to load env file", err,
			map[string]any{"files": files})
	}
	slog.Debug("env files loaded", "files", files)
	return nil
}

// lookupFunc matches os.LookupEnv.
type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(name string, dst *int) {
		if v, ok := lookup(name); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := lookup(name); ok && v != "" {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = f
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := lookup(name); ok && v != "" {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = d
		}
	}

	str("LOG_LEVEL", &c.LogLevel)
	str(EnvPrefix+"CATALOG", &c.Catalog)
	str(EnvPrefix+"LOG_LEVEL", &c.LogLevel)
	str(EnvPrefix+"FORMAT", &c.Format)

	duration(EnvPrefix+"CACHE_TTL", &c.Cache.TTL)
	str(EnvPrefix+"CACHE_KEY", &c.Cache.Key)
	str(EnvPrefix+"REDIS_ADDR", &c.Cache.Redis.Addr)
	str(EnvPrefix+"REDIS_PASSWORD", &c.Cache.Redis.Password)
	integer(EnvPrefix+"REDIS_DB", &c.Cache.Redis.DB)
	str(EnvPrefix+"REDIS_PREFIX", &c.Cache.Redis.Prefix)

	str(EnvPrefix+"MARKET_PRICES_URL", &c.Market.PricesURL)
	str(EnvPrefix+"MARKET_NAMES_URL", &c.Market.NamesURL)
	integer(EnvPrefix+"MARKET_CHUNK_SIZE", &c.Market.ChunkSize)
	duration(EnvPrefix+"MARKET_INTERVAL", &c.Market.Interval)

	str(EnvPrefix+"SERVER_ADDRESS", &c.Server.Address)
	integer("PORT", &c.Server.Port)
	float(EnvPrefix+"RATE_LIMIT", &c.Server.RateLimit)
	integer(EnvPrefix+"RATE_LIMIT_BURST", &c.Server.RateLimitBurst)

	var seconds int
	integer("SHUTDOWN_TIMEOUT_SECONDS", &seconds)
	if seconds > 0 {
		c.Server.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	if len(errs) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid environment variable", stderrors.Join(errs...))
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Catalog) == "" {
		problems = append(problems, "catalog source must not be empty")
	}
	if _, err := serializer.ParseFormat(c.Format); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Cache.TTL <= 0 {
		problems = append(problems, "cache ttl must be positive")
	}
	if c.Cache.Key == "" {
		problems = append(problems, "cache key must not be empty")
	}
	if c.Cache.Redis.DB < 0 {
		problems = append(problems, "redis db must not be negative")
	}
	if c.Market.ChunkSize <= 0 {
		problems = append(problems, "market chunk size must be positive")
	}
	if c.Market.Interval < 0 {
		problems = append(problems, "market interval must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server port %d out of range", c.Server.Port))
	}
	if c.Server.RateLimit <= 0 || c.Server.RateLimitBurst <= 0 {
		problems = append(problems, "rate limit and burst must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "shutdown timeout must be positive")
	}

	if len(problems) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid configuration",
			map[string]any{"problems": problems})
	}
	return nil
}
