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
	"fmt"
	"strings"
)

// Mode is the sourcing policy of an item.
type Mode int

const (
	// ModeNormal picks the cheaper of market purchase and crafting.
	ModeNormal Mode = iota
	// ModeVendor uses the manual cost only; market and recipe are ignored.
	ModeVendor
	// ModeAlt uses the craft cost, or zero when it cannot be crafted.
	ModeAlt
	// ModeBlock makes the item unpriceable.
	ModeBlock
	// ModeCraft uses the craft cost only; the item is never bought.
	ModeCraft
)

var modeNames = map[Mode]string{
	ModeNormal: "NORMAL",
	ModeVendor: "VENDOR",
	ModeAlt:    "ALT",
	ModeBlock:  "BLOCK",
	ModeCraft:  "CRAFT",
}

// String returns the upper-case mode name.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// IsValid reports whether m is one of the defined modes.
func (m Mode) IsValid() bool {
	_, ok := modeNames[m]
	return ok
}

// SupportedModes returns the mode names in declaration order.
func SupportedModes() []string {
	return []string{
		ModeNormal.String(),
		ModeVendor.String(),
		ModeAlt.String(),
		ModeBlock.String(),
		ModeCraft.String(),
	}
}

// ParseMode parses a mode cell. Matching is case-insensitive and ignores
// surrounding whitespace; blank means ModeNormal. The boolean is false for
// unrecognised text, in which case ModeNormal is returned.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NORMAL":
		return ModeNormal, true
	case "VENDOR":
		return ModeVendor, true
	case "ALT":
		return ModeAlt, true
	case "BLOCK":
		return ModeBlock, true
	case "CRAFT":
		return ModeCraft, true
	default:
		return ModeNormal, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ParseMode it
// rejects unknown names, since serialized snapshots are machine written.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, ok := ParseMode(string(text))
	if !ok {
		return fmt.Errorf("unknown mode %q", string(text))
	}
	*m = parsed
	return nil
}
