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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindEffective = "effective"
	kindStrict    = "strict"
)

var (
	evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craftcost_resolver_evaluations_total",
			Help: "Top-level cost evaluations by kind and result status",
		},
		[]string{"kind", "status"},
	)

	cycleBreaks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craftcost_resolver_cycle_breaks_total",
			Help: "Recipe cycles broken during evaluation",
		},
		[]string{"kind"},
	)
)
