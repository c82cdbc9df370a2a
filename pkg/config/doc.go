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

// Package config loads craftcost runtime settings.
//
// Sources are layered, later ones winning:
//
//  1. built-in defaults (see pkg/defaults)
//  2. an optional YAML file passed with --config
//  3. .env files loaded with godotenv (never overriding the real environment)
//  4. environment variables: CRAFTCOST_CATALOG, CRAFTCOST_LOG_LEVEL,
//     CRAFTCOST_FORMAT, CRAFTCOST_CACHE_TTL, CRAFTCOST_CACHE_KEY,
//     CRAFTCOST_REDIS_ADDR, CRAFTCOST_REDIS_PASSWORD, CRAFTCOST_REDIS_DB,
//     CRAFTCOST_REDIS_PREFIX, CRAFTCOST_MARKET_PRICES_URL,
//     CRAFTCOST_MARKET_NAMES_URL, CRAFTCOST_MARKET_CHUNK_SIZE,
//     CRAFTCOST_MARKET_INTERVAL, CRAFTCOST_SERVER_ADDRESS,
//     CRAFTCOST_RATE_LIMIT, CRAFTCOST_RATE_LIMIT_BURST, plus the
//     conventional LOG_LEVEL, PORT and SHUTDOWN_TIMEOUT_SECONDS
//
// Example file:
//
//	catalog: sqlite:///var/lib/craftcost/catalog.db
//	logLevel: debug
//	cache:
//	  ttl: 10m
//	  redis:
//	    addr: localhost:6379
//	market:
//	  chunkSize: 100
//	server:
//	  port: 9090
package config
