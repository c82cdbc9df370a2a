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

package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/craftcost/pkg/defaults"
	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/serializer"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// Quote is the market observation for one item id in catalog units. API
// prices are integer copper; one catalog unit is 100 copper, so a quote
// holds at most two exact decimal places.
type Quote struct {
	ID int `json:"id"`
	// Buy is the highest buy order, zero when there are none.
	Buy decimal.Decimal `json:"buy"`
	// Sell is the lowest sell listing, zero when there are none.
	Sell decimal.Decimal `json:"sell"`
}

// fromCopper converts an API unit price to catalog units.
func fromCopper(copper int64) decimal.Decimal {
	if copper <= 0 {
		return decimal.Zero
	}
	return decimal.New(copper, -2)
}

// PriceResult is the outcome of a Prices call.
type PriceResult struct {
	Quotes map[int]Quote
	// Missing lists requested ids the API did not return, sorted.
	Missing []int
	// FailedChunks counts requests that were skipped after an error.
	FailedChunks int
}

// PriceFetcher looks up market quotes by id.
type PriceFetcher interface {
	Prices(ctx context.Context, ids []int) (*PriceResult, error)
}

// NameFetcher downloads the bulk name index.
type NameFetcher interface {
	NameIndex(ctx context.Context) (NameIndex, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithPricesURL sets the commerce prices endpoint.
func WithPricesURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.pricesURL = u
		}
	}
}

// WithNamesURL sets the bulk name index endpoint.
func WithNamesURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.namesURL = u
		}
	}
}

// WithChunkSize sets how many ids go into one prices request.
func WithChunkSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithInterval sets the minimum spacing between prices requests. Zero
// disables pacing.
func WithInterval(d time.Duration) Option {
	return func(c *Client) {
		c.interval = d
	}
}

// Client talks to the market data endpoints.
type Client struct {
	http      *http.Client
	pricesURL string
	namesURL  string
	chunkSize int
	interval  time.Duration
}

// NewClient returns a Client with production endpoints and pacing.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      serializer.NewHTTPClient(),
		pricesURL: defaults.MarketPricesURL,
		namesURL:  defaults.MarketNamesURL,
		chunkSize: defaults.MarketChunkSize,
		interval:  defaults.MarketRequestInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type priceEntry struct {
	ID   int `json:"id"`
	Buys *struct {
		UnitPrice int64 `json:"unit_price"`
	} `json:"buys"`
	Sells *struct {
		UnitPrice int64 `json:"unit_price"`
	} `json:"sells"`
}

// Prices fetches quotes for ids in chunks, one request per interval. A chunk
// that fails is logged and skipped; its ids end up in Missing. Only context
// cancellation aborts the call.
func (c *Client) Prices(ctx context.Context, ids []int) (*PriceResult, error) {
	res := &PriceResult{Quotes: make(map[int]Quote, len(ids))}
	ids = dedupe(ids)

	limit := rate.Inf
	if c.interval > 0 {
		limit = rate.Every(c.interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	for start := 0; start < len(ids); start += c.chunkSize {
		end := min(start+c.chunkSize, len(ids))
		chunk := ids[start:end]

		if err := limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "market price update canceled", err)
		}

		entries, err := c.fetchChunk(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrap(errors.ErrCodeTimeout, "market price update canceled", ctx.Err())
			}
			marketRequests.WithLabelValues(outcomeFailed).Inc()
			res.FailedChunks++
			slog.Warn("market prices chunk failed, skipping", "offset", start, "size", len(chunk), "error", err)
			continue
		}
		marketRequests.WithLabelValues(outcomeOK).Inc()

		for _, e := range entries {
			q := Quote{ID: e.ID}
			if e.Buys != nil {
				q.Buy = fromCopper(e.Buys.UnitPrice)
			}
			if e.Sells != nil {
				q.Sell = fromCopper(e.Sells.UnitPrice)
			}
			res.Quotes[e.ID] = q
		}
	}

	for _, id := range ids {
		if _, ok := res.Quotes[id]; !ok {
			res.Missing = append(res.Missing, id)
		}
	}
	if len(res.Missing) > 0 {
		slog.Info("ids not returned by prices endpoint, likely not tradable",
			"count", len(res.Missing), "example", head(res.Missing, 10))
	}
	return res, nil
}

func (c *Client) fetchChunk(ctx context.Context, chunk []int) ([]priceEntry, error) {
	parts := make([]string, len(chunk))
	for i, id := range chunk {
		parts[i] = strconv.Itoa(id)
	}
	u := c.pricesURL + "?ids=" + url.QueryEscape(strings.Join(parts, ","))

	// 206 is returned when some ids in the chunk are unknown
	body, _, err := serializer.Fetch(ctx, c.http, u, http.StatusOK, http.StatusPartialContent)
	if err != nil {
		return nil, err
	}
	var entries []priceEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prices response: %w", err)
	}
	return entries, nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func head(ids []int, n int) []int {
	if len(ids) <= n {
		return ids
	}
	return ids[:n]
}
