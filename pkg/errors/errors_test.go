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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "table not found")

	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "table not found" {
		t.Errorf("expected message 'table not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("no such table")
	ctx := map[string]any{"table": "Prices"}

	err := WrapWithContext(ErrCodeConfiguration, "missing table", cause, ctx)

	if err.Code != ErrCodeConfiguration {
		t.Errorf("expected code %s, got %s", ErrCodeConfiguration, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
	if err.Context["table"] != "Prices" {
		t.Errorf("expected table context to be Prices")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeInvalidRequest, "bad kind"),
			expected: "[INVALID_REQUEST] bad kind",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeConfiguration, "missing table", errors.New("Items")),
			expected: "[CONFIGURATION] missing table: Items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"structured", New(ErrCodeNotFound, "x"), ErrCodeNotFound},
		{"wrapped by fmt", fmt.Errorf("load: %w", New(ErrCodeConfiguration, "x")), ErrCodeConfiguration},
		{"outermost wins", Wrap(ErrCodeUnavailable, "outer", New(ErrCodeNotFound, "inner")), ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", Wrap(ErrCodeConfiguration, "outer", New(ErrCodeNotFound, "inner")))

	if !HasCode(err, ErrCodeConfiguration) {
		t.Error("expected CONFIGURATION in chain")
	}
	if !HasCode(err, ErrCodeNotFound) {
		t.Error("expected NOT_FOUND in chain")
	}
	if HasCode(err, ErrCodeTimeout) {
		t.Error("did not expect TIMEOUT in chain")
	}
	if HasCode(errors.New("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
}
