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

	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/item"
	"github.com/NVIDIA/craftcost/pkg/serializer"
)

// NameIndex maps normalized item names to market ids. When several ids share
// a name the first listed wins.
type NameIndex map[item.Key]int

// Lookup returns the id for a raw name.
func (n NameIndex) Lookup(name string) (int, bool) {
	id, ok := n[item.Normalize(name)]
	return id, ok
}

type namesPayload struct {
	Items [][]json.RawMessage `json:"items"`
}

// ParseNameIndex decodes a bulk names document: {"items": [[id, "Name"], ...]}.
// Entries without a positive id or a name are ignored.
func ParseNameIndex(data []byte) (NameIndex, error) {
	var p namesPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse name index: %w", err)
	}

	idx := make(NameIndex, len(p.Items))
	for _, entry := range p.Items {
		if len(entry) < 2 {
			continue
		}
		var id int
		var name string
		if err := json.Unmarshal(entry[0], &id); err != nil || id <= 0 {
			continue
		}
		if err := json.Unmarshal(entry[1], &name); err != nil {
			continue
		}
		key := item.Normalize(name)
		if key.IsEmpty() {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = id
		}
	}
	return idx, nil
}

// NameIndex downloads and parses the bulk name index.
func (c *Client) NameIndex(ctx context.Context) (NameIndex, error) {
	body, _, err := serializer.Fetch(ctx, c.http, c.namesURL)
	if err != nil {
		marketRequests.WithLabelValues(outcomeFailed).Inc()
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to download item name index", err)
	}
	marketRequests.WithLabelValues(outcomeOK).Inc()

	idx, err := ParseNameIndex(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "invalid item name index", err)
	}
	slog.Debug("item name index loaded", "names", len(idx))
	return idx, nil
}
