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

package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/NVIDIA/craftcost/pkg/defaults"
)

// UserAgent is sent on every outbound request.
const UserAgent = "craftcost/1.0"

// maxResponseBytes bounds a single fetched body.
const maxResponseBytes = 64 << 20

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// connection is gone, nothing left to do
		slog.Warn("response write failed", "error", err)
	}
}

// ClientOption configures NewHTTPClient.
type ClientOption func(*http.Client, *http.Transport)

// WithTimeout sets the total request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client, _ *http.Transport) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithTransport replaces the transport, for tests.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *http.Client, _ *http.Transport) {
		c.Transport = rt
	}
}

// NewHTTPClient returns a client with pooled connections and the timeouts
// from pkg/defaults.
func NewHTTPClient(opts ...ClientOption) *http.Client {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
	c := &http.Client{
		Timeout:   defaults.HTTPClientTimeout,
		Transport: t,
	}
	for _, opt := range opts {
		opt(c, t)
	}
	return c
}

// StatusError is returned by Fetch for an unaccepted response status.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

// Fetch GETs url and returns the body and status code. Only the accepted
// statuses succeed; with none given, only 200 is accepted.
func Fetch(ctx context.Context, client *http.Client, url string, accept ...int) ([]byte, int, error) {
	if url == "" {
		return nil, 0, fmt.Errorf("url is empty")
	}
	if client == nil {
		return nil, 0, fmt.Errorf("http client is nil")
	}
	if len(accept) == 0 {
		accept = []int{http.StatusOK}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	if !slices.Contains(accept, resp.StatusCode) {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, &StatusError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return data, resp.StatusCode, nil
}
