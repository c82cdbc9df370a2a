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

package resolver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResult_ZeroValueIsUnpriceable(t *testing.T) {
	var r Result
	assert.True(t, r.IsUnpriceable())
	_, ok := r.Cost()
	assert.False(t, ok)
}

func TestResult_Distinct(t *testing.T) {
	results := []Result{Priced(0, OriginFree), Unpriceable(), NotApplicable()}
	for i, a := range results {
		for j, b := range results {
			assert.Equal(t, i == j, a.Equal(b), "%s vs %s", a, b)
		}
	}
	assert.True(t, Priced(1, OriginMarket).Equal(Priced(1, OriginCraft)), "origin does not affect equality")
	assert.False(t, Priced(1, OriginMarket).Equal(Priced(2, OriginMarket)))
}

func TestResult_JSON(t *testing.T) {
	tests := []struct {
		in   Result
		want string
	}{
		{Priced(5.5, OriginCraft), `{"status":"priced","cost":5.5,"source":"craft"}`},
		{Priced(0, OriginFree), `{"status":"priced","cost":0,"source":"free"}`},
		{Unpriceable(), `{"status":"unpriceable"}`},
		{NotApplicable(), `{"status":"not_applicable"}`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var back Result
			require.NoError(t, json.Unmarshal(data, &back))
			assert.True(t, tt.in.Equal(back))
			assert.Equal(t, tt.in.Origin(), back.Origin())
		})
	}
}

func TestResult_UnmarshalRejects(t *testing.T) {
	var r Result
	assert.Error(t, json.Unmarshal([]byte(`{"status":"priced"}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"status":"maybe"}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`[]`), &r))
}

func TestResult_YAML(t *testing.T) {
	data, err := yaml.Marshal(map[string]Result{"x": Priced(2, OriginMarket)})
	require.NoError(t, err)
	assert.Contains(t, string(data), "status: priced")
	assert.Contains(t, string(data), "cost: 2")
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "5.5", Priced(5.5, OriginCraft).String())
	assert.Equal(t, "unpriceable", Unpriceable().String())
	assert.Equal(t, "not_applicable", NotApplicable().String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
