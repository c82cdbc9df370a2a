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

package header

import (
	"testing"
	"time"
)

func TestNew_Options(t *testing.T) {
	h := New(
		WithKind(KindCostReport),
		WithAPIVersion(APIVersion),
		WithMetadata("catalog", "items.csv"),
	)

	if h.Kind != KindCostReport {
		t.Errorf("Kind = %q, want %q", h.Kind, KindCostReport)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %q, want %q", h.APIVersion, APIVersion)
	}
	if h.Metadata["catalog"] != "items.csv" {
		t.Errorf("metadata catalog = %q", h.Metadata["catalog"])
	}
}

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindCatalogSnapshot, "v1.0.0")

	if h.Kind != KindCatalogSnapshot || h.APIVersion != APIVersion {
		t.Fatalf("unexpected header %+v", h)
	}
	if h.Metadata["version"] != "v1.0.0" {
		t.Errorf("version = %q", h.Metadata["version"])
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata["timestamp"]); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}

	var noVersion Header
	noVersion.Init(KindBreakdown, "")
	if _, ok := noVersion.Metadata["version"]; ok {
		t.Error("empty version should not be recorded")
	}
}

func TestExpect(t *testing.T) {
	tests := []struct {
		name    string
		h       Header
		kind    Kind
		wantErr bool
	}{
		{"match", Header{Kind: KindCatalogSnapshot, APIVersion: APIVersion}, KindCatalogSnapshot, false},
		{"wrong kind", Header{Kind: KindCostReport, APIVersion: APIVersion}, KindCatalogSnapshot, true},
		{"wrong version", Header{Kind: KindCatalogSnapshot, APIVersion: "v0"}, KindCatalogSnapshot, true},
		{"empty", Header{}, KindCatalogSnapshot, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.h.Expect(tt.kind)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expect() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKind_IsValid(t *testing.T) {
	for _, k := range []Kind{KindCatalogSnapshot, KindCostReport, KindBreakdown, KindProfitReport, KindPriceUpdate, KindIDFill} {
		if !k.IsValid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if Kind("Recipe").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
