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
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const nbsp = "\u00a0"

// Key is the normalized identity of an item.
type Key string

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// IsEmpty reports whether k names no item.
func (k Key) IsEmpty() bool {
	return k == ""
}

// Normalize converts a raw item name to its Key.
func Normalize(raw string) Key {
	if raw == "" {
		return ""
	}
	s := strings.ReplaceAll(raw, nbsp, " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	// Casers are stateful; one per call keeps Normalize goroutine-safe.
	return Key(cases.Lower(language.Und).String(s))
}

// NormalizeValue normalizes an arbitrary table cell. Nil yields the empty
// Key; numbers are formatted in their shortest decimal form.
func NormalizeValue(v any) Key {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return Normalize(t)
	case Key:
		return Normalize(string(t))
	case []byte:
		return Normalize(string(t))
	case float64:
		return Normalize(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return Normalize(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case int:
		return Normalize(strconv.Itoa(t))
	case int64:
		return Normalize(strconv.FormatInt(t, 10))
	case bool:
		return Normalize(strconv.FormatBool(t))
	case fmt.Stringer:
		return Normalize(t.String())
	default:
		return Normalize(fmt.Sprint(t))
	}
}
