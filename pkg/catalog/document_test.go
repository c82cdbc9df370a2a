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
	"testing"

	"github.com/NVIDIA/craftcost/pkg/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	return mustBuild(t,
		Rows{itemsHeader, {"Plank", 19710, "ALT", ""}, {"Thread", "", "VENDOR", 0.08}},
		Rows{recipesHeader, {"Plank", 2, "Log", 3}, {"Plank", 2, "Thread", 1}},
		Rows{pricesHeader, {"Log", 0.5, 0.7}, {"Plank", 4}},
	)
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	snap := sampleSnapshot(t)

	data, err := Encode(snap)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, snap.Fingerprint(), got.Fingerprint())
	assert.Equal(t, snap.Stats(), got.Stats())
	assert.True(t, snap.BuiltAt().Equal(got.BuiltAt()))

	r, ok := got.Recipe("plank")
	require.True(t, ok)
	assert.Equal(t, 2, r.OutputQuantity)
	assert.Equal(t, "log", r.Ingredients[0].Item.String())
	assert.Equal(t, "thread", r.Ingredients[1].Item.String())

	p, _ := got.Policy("thread")
	m, ok := p.Manual()
	require.True(t, ok)
	assert.Equal(t, 0.08, m)

	id, _ := got.ItemID("plank")
	assert.Equal(t, 19710, id)
	price, _ := got.Price("log")
	assert.Equal(t, Price{Buy: 0.5, Sell: 0.7}, price)
}

func TestDocument_Header(t *testing.T) {
	data, err := json.Marshal(sampleSnapshot(t))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, string(header.KindCatalogSnapshot), raw["kind"])
	assert.Equal(t, header.APIVersion, raw["apiVersion"])
	assert.Contains(t, raw, "fingerprint")
}

func TestDecode_Rejects(t *testing.T) {
	good, err := Encode(sampleSnapshot(t))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(good, &doc))

	mutate := func(f func(map[string]any)) []byte {
		cp := make(map[string]any, len(doc))
		for k, v := range doc {
			cp[k] = v
		}
		f(cp)
		data, err := json.Marshal(cp)
		require.NoError(t, err)
		return data
	}

	tests := map[string][]byte{
		"garbage":     []byte("not json"),
		"wrong kind":  mutate(func(m map[string]any) { m["kind"] = "CostReport" }),
		"bad version": mutate(func(m map[string]any) { m["apiVersion"] = "v0" }),
		"tampered":    mutate(func(m map[string]any) { m["fingerprint"] = "abc" }),
		"bad mode": mutate(func(m map[string]any) {
			m["policies"] = map[string]any{"x": map[string]any{"mode": "SOMETIMES"}}
		}),
		"bad outqty": mutate(func(m map[string]any) {
			m["fingerprint"] = ""
			m["recipes"] = map[string]any{"x": map[string]any{"outputQuantity": 0, "ingredients": []any{}}}
		}),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			assert.Error(t, err)
		})
	}
}
