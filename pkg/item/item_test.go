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

package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Key
	}{
		{"empty", "", ""},
		{"blank", "   \t ", ""},
		{"lowercases", "Mithril Ingot", "mithril ingot"},
		{"trims", "  Iron Ore  ", "iron ore"},
		{"non-breaking space", "Glob\u00a0of\u00a0Ectoplasm\u00a0", "glob of ectoplasm"},
		{"nbsp only", "\u00a0\u00a0", ""},
		{"collapses runs", "Pile  of\t\tLucent   Crystal", "pile of lucent crystal"},
		{"unicode", "ÉLIXIR", "élixir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Mithril Ingot",
		"  Orichalcum Ore ",
		"Vial of   Powerful Blood",
		"ÆTHER SHARD",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(string(once)), "input %q", in)
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Key
	}{
		{"nil", nil, ""},
		{"string", " Iron Ore", "iron ore"},
		{"bytes", []byte("Iron Ore"), "iron ore"},
		{"key", Key("Iron  Ore"), "iron ore"},
		{"float whole", float64(19697), "19697"},
		{"float fraction", 2.5, "2.5"},
		{"int", 42, "42"},
		{"int64", int64(7), "7"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeValue(tt.in))
		})
	}
}

func TestKey_IsEmpty(t *testing.T) {
	assert.True(t, Key("").IsEmpty())
	assert.False(t, Key("a").IsEmpty())
	assert.Equal(t, "a", Key("a").String())
}
