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
	"fmt"
	"strconv"
)

// Status classifies a Result.
type Status int

const (
	// StatusUnpriceable means no cost could be determined. It is the zero
	// value so an unset Result is never mistaken for a price.
	StatusUnpriceable Status = iota
	// StatusPriced means Cost holds a finite non-negative number.
	StatusPriced
	// StatusNotApplicable means a strict craft cost was asked for an item
	// without a recipe.
	StatusNotApplicable
)

var statusNames = map[Status]string{
	StatusUnpriceable:   "unpriceable",
	StatusPriced:        "priced",
	StatusNotApplicable: "not_applicable",
}

// String returns the wire name of the status.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Origin records which rule produced a priced result.
type Origin string

const (
	// OriginMarket is a buy-order price taken from the catalog.
	OriginMarket Origin = "market"
	// OriginCraft is the recipe cost per unit of output.
	OriginCraft Origin = "craft"
	// OriginManual is a manual cost, including every VENDOR cost.
	OriginManual Origin = "manual"
	// OriginFree marks the zero assigned to an ALT item that cannot be crafted.
	OriginFree Origin = "free"
)

// Result is the outcome of a cost query: Priced, Unpriceable or
// NotApplicable. Compare results with Equal; the origin is informational.
type Result struct {
	status Status
	cost   float64
	origin Origin
}

// Priced returns a priced result.
func Priced(cost float64, origin Origin) Result {
	return Result{status: StatusPriced, cost: cost, origin: origin}
}

// Unpriceable returns the unpriceable result.
func Unpriceable() Result {
	return Result{status: StatusUnpriceable}
}

// NotApplicable returns the not-applicable result.
func NotApplicable() Result {
	return Result{status: StatusNotApplicable}
}

// Status returns the result classification.
func (r Result) Status() Status { return r.status }

// Cost returns the cost and true when the result is priced.
func (r Result) Cost() (float64, bool) {
	if r.status != StatusPriced {
		return 0, false
	}
	return r.cost, true
}

// Origin returns the pricing rule of a priced result, or "".
func (r Result) Origin() Origin {
	if r.status != StatusPriced {
		return ""
	}
	return r.origin
}

// IsPriced reports whether the result carries a cost.
func (r Result) IsPriced() bool { return r.status == StatusPriced }

// IsUnpriceable reports whether no cost could be determined.
func (r Result) IsUnpriceable() bool { return r.status == StatusUnpriceable }

// IsNotApplicable reports whether a strict query hit an item with no recipe.
func (r Result) IsNotApplicable() bool { return r.status == StatusNotApplicable }

// Equal reports whether two results have the same status and cost.
func (r Result) Equal(o Result) bool {
	if r.status != o.status {
		return false
	}
	return r.status != StatusPriced || r.cost == o.cost
}

// String renders the cost, or the status name when not priced.
func (r Result) String() string {
	if r.status == StatusPriced {
		return strconv.FormatFloat(r.cost, 'f', -1, 64)
	}
	return r.status.String()
}

type resultJSON struct {
	Status string   `json:"status" yaml:"status"`
	Cost   *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
	Source Origin   `json:"source,omitempty" yaml:"source,omitempty"`
}

func (r Result) wire() resultJSON {
	out := resultJSON{Status: r.status.String()}
	if r.status == StatusPriced {
		c := r.cost
		out.Cost = &c
		out.Source = r.origin
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (r Result) MarshalYAML() (any, error) {
	return r.wire(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var w resultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Status {
	case StatusPriced.String():
		if w.Cost == nil {
			return fmt.Errorf("priced result without cost")
		}
		*r = Priced(*w.Cost, w.Source)
	case StatusUnpriceable.String():
		*r = Unpriceable()
	case StatusNotApplicable.String():
		*r = NotApplicable()
	default:
		return fmt.Errorf("unknown result status %q", w.Status)
	}
	return nil
}
