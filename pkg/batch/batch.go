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

package batch

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/item"
	"github.com/NVIDIA/craftcost/pkg/resolver"
)

// Kind selects which cost a batch evaluates.
type Kind string

const (
	KindEffective Kind = "effective"
	KindStrict    Kind = "strict"
)

// ParseKind parses a kind parameter; blank means KindEffective.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindEffective, nil
	case KindEffective, KindStrict:
		return k, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown cost kind",
			map[string]any{"kind": s, "supported": []string{string(KindEffective), string(KindStrict)}})
	}
}

// Func evaluates one normalized key.
type Func func(item.Key) resolver.Result

// For returns the evaluation function of kind bound to r.
func For(r *resolver.Resolver, kind Kind) Func {
	if kind == KindStrict {
		return r.StrictCraftCost
	}
	return r.EffectiveCost
}

// Scalar evaluates a single name. Blank names are unpriceable.
func Scalar(name string, fn Func) resolver.Result {
	return fn(item.Normalize(name))
}

// Column evaluates names in order; the result has the same length.
func Column(names []string, fn Func) []resolver.Result {
	out := make([]resolver.Result, len(names))
	for i, n := range names {
		out[i] = Scalar(n, fn)
	}
	return out
}

// Evaluate maps input through fn preserving its shape:
//
//	scalar              -> Result
//	[scalar, ...]       -> []any of Result
//	[[scalar], ...]     -> []any of []Result, one element each
//
// A wrapped element only reads its first cell; an empty wrapper is
// unpriceable. Maps and other composite values are rejected.
func Evaluate(input any, fn Func) (any, error) {
	switch v := input.(type) {
	case []string:
		out := make([]any, len(v))
		for i, r := range Column(v, fn) {
			out[i] = r
		}
		return out, nil
	case [][]string:
		out := make([]any, len(v))
		for i, row := range v {
			var first any
			if len(row) > 0 {
				first = row[0]
			}
			out[i] = []resolver.Result{fn(item.NormalizeValue(first))}
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			res, err := element(el, fn)
			if err != nil {
				return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
					"unsupported batch element", err, map[string]any{"index": i})
			}
			out[i] = res
		}
		return out, nil
	default:
		if !isScalar(input) {
			return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unsupported batch input %T", input))
		}
		return fn(item.NormalizeValue(input)), nil
	}
}

func element(el any, fn Func) (any, error) {
	switch v := el.(type) {
	case []any:
		var first any
		if len(v) > 0 {
			first = v[0]
		}
		if !isScalar(first) {
			return nil, fmt.Errorf("nested value %T", first)
		}
		return []resolver.Result{fn(item.NormalizeValue(first))}, nil
	case []string:
		var first any
		if len(v) > 0 {
			first = v[0]
		}
		return []resolver.Result{fn(item.NormalizeValue(first))}, nil
	default:
		if !isScalar(el) {
			return nil, fmt.Errorf("value %T", el)
		}
		return fn(item.NormalizeValue(el)), nil
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, item.Key, bool,
		float64, float32, int, int64, int32, uint, uint64:
		return true
	default:
		return false
	}
}
