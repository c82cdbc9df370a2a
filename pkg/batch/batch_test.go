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
	"testing"

	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/item"
	"github.com/NVIDIA/craftcost/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T) *resolver.Resolver {
	t.Helper()
	snap, err := catalog.Build(
		catalog.Rows{{"name", "id", "mode", "manual"}},
		catalog.Rows{{"out", "qty", "in", "qty"}, {"Plank", 1, "Log", 2}},
		catalog.Rows{{"name", "buy"}, {"Log", 1}, {"Plank", 5}, {"42", 3}},
	)
	require.NoError(t, err)
	return resolver.New(snap)
}

func priced(t *testing.T, want float64, v any) {
	t.Helper()
	res, ok := v.(resolver.Result)
	require.True(t, ok, "expected Result, got %T", v)
	c, ok := res.Cost()
	require.True(t, ok, "expected priced, got %s", res)
	assert.Equal(t, want, c)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindEffective, k)

	k, err = ParseKind(" STRICT ")
	require.NoError(t, err)
	assert.Equal(t, KindStrict, k)

	_, err = ParseKind("cheapest")
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestFor(t *testing.T) {
	r := testResolver(t)
	priced(t, 2, For(r, KindEffective)("plank"))
	priced(t, 2, For(r, KindStrict)("plank"))
	assert.True(t, For(r, KindStrict)("log").IsNotApplicable())
	priced(t, 1, For(r, KindEffective)("log"))
}

func TestEvaluate_Scalar(t *testing.T) {
	fn := For(testResolver(t), KindEffective)

	out, err := Evaluate("Plank", fn)
	require.NoError(t, err)
	priced(t, 2, out)

	out, err = Evaluate(nil, fn)
	require.NoError(t, err)
	assert.True(t, out.(resolver.Result).IsUnpriceable())

	out, err = Evaluate(42.0, fn)
	require.NoError(t, err)
	priced(t, 3, out)
}

func TestEvaluate_BlankPositionPreserved(t *testing.T) {
	fn := For(testResolver(t), KindEffective)

	out, err := Evaluate([]any{"Log", "  ", "Plank"}, fn)
	require.NoError(t, err)
	list := out.([]any)
	require.Len(t, list, 3)
	priced(t, 1, list[0])
	assert.True(t, list[1].(resolver.Result).IsUnpriceable())
	priced(t, 2, list[2])
}

func TestEvaluate_WrappedRows(t *testing.T) {
	fn := For(testResolver(t), KindStrict)

	out, err := Evaluate([]any{[]any{"Plank"}, []any{}, []any{"Log", "ignored"}, "plank"}, fn)
	require.NoError(t, err)
	list := out.([]any)
	require.Len(t, list, 4)

	first := list[0].([]resolver.Result)
	require.Len(t, first, 1)
	c, _ := first[0].Cost()
	assert.Equal(t, 2.0, c)

	assert.True(t, list[1].([]resolver.Result)[0].IsUnpriceable())
	assert.True(t, list[2].([]resolver.Result)[0].IsNotApplicable())
	priced(t, 2, list[3])
}

func TestEvaluate_TypedSlices(t *testing.T) {
	fn := For(testResolver(t), KindEffective)

	out, err := Evaluate([]string{"log", ""}, fn)
	require.NoError(t, err)
	assert.Len(t, out.([]any), 2)

	out, err = Evaluate([][]string{{"plank"}, {}}, fn)
	require.NoError(t, err)
	rows := out.([]any)
	require.Len(t, rows, 2)
	assert.True(t, rows[1].([]resolver.Result)[0].IsUnpriceable())
}

func TestEvaluate_Rejects(t *testing.T) {
	fn := For(testResolver(t), KindEffective)

	for name, in := range map[string]any{
		"map":          map[string]any{"a": 1},
		"map element":  []any{"a", map[string]any{}},
		"deep nesting": []any{[]any{[]any{"a"}}},
		"struct":       struct{}{},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Evaluate(in, fn)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}

func TestColumnAndScalar(t *testing.T) {
	fn := For(testResolver(t), KindEffective)

	res := Column([]string{"Plank", "", "nope"}, fn)
	require.Len(t, res, 3)
	assert.True(t, res[1].IsUnpriceable())
	assert.True(t, res[2].IsUnpriceable())

	assert.True(t, Scalar("log", fn).Equal(fn(item.Key("log"))))
}
