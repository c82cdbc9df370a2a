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

package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/NVIDIA/craftcost/pkg/header"
	"github.com/NVIDIA/craftcost/pkg/item"
)

// Document is the serialized form of a Snapshot.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	BuiltAt     time.Time           `json:"builtAt" yaml:"builtAt"`
	Fingerprint string              `json:"fingerprint" yaml:"fingerprint"`
	Stats       Stats               `json:"stats" yaml:"stats"`
	Prices      map[item.Key]Price  `json:"prices" yaml:"prices"`
	Policies    map[item.Key]Policy `json:"policies" yaml:"policies"`
	Recipes     map[item.Key]Recipe `json:"recipes" yaml:"recipes"`
	IDs         map[item.Key]int    `json:"ids,omitempty" yaml:"ids,omitempty"`
}

// Document returns the serializable form of the snapshot. The maps are shared
// with the snapshot and must not be modified.
func (s *Snapshot) Document() *Document {
	d := &Document{
		BuiltAt:     s.builtAt,
		Fingerprint: s.fingerprint,
		Stats:       s.Stats(),
		Prices:      s.prices,
		Policies:    s.policies,
		Recipes:     s.recipes,
		IDs:         s.ids,
	}
	d.Init(header.KindCatalogSnapshot, "")
	return d
}

// Snapshot validates the document and converts it back into a Snapshot. The
// fingerprint is recomputed from content; a mismatch is an error.
func (d *Document) Snapshot() (*Snapshot, error) {
	if err := d.Expect(header.KindCatalogSnapshot); err != nil {
		return nil, err
	}

	c := content{
		Prices:   orEmpty(d.Prices),
		Policies: orEmpty(d.Policies),
		Recipes:  orEmpty(d.Recipes),
		IDs:      orEmpty(d.IDs),
	}
	for k, r := range c.Recipes {
		if r.OutputQuantity < 1 {
			return nil, fmt.Errorf("recipe %q has output quantity %d", k, r.OutputQuantity)
		}
	}

	fp := fingerprint(c)
	if d.Fingerprint != "" && d.Fingerprint != fp {
		return nil, fmt.Errorf("snapshot fingerprint mismatch: document %s, content %s", d.Fingerprint, fp)
	}

	return &Snapshot{
		prices:      c.Prices,
		policies:    c.Policies,
		recipes:     c.Recipes,
		ids:         c.IDs,
		builtAt:     d.BuiltAt,
		fingerprint: fp,
	}, nil
}

// MarshalJSON implements json.Marshaler.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Document())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	snap, err := d.Snapshot()
	if err != nil {
		return err
	}
	*s = *snap
	return nil
}

// Encode serializes a snapshot for an external store.
func Encode(s *Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses bytes produced by Encode.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

func orEmpty[V any](m map[item.Key]V) map[item.Key]V {
	if m == nil {
		return make(map[item.Key]V)
	}
	return m
}
