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

// Package errors provides structured error types used across craftcost.
//
// Only a few conditions are errors at all: a missing catalog table
// (ErrCodeConfiguration), an unreadable source, or a bad request. Cost
// anomalies such as cycles or unknown items are results, not errors.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeConfiguration,
//	    "required catalog table is missing",
//	    cause,
//	    map[string]any{
//	        "table": "Recipes",
//	    },
//	)
//
//	if errors.CodeOf(err) == errors.ErrCodeConfiguration {
//	    // abort the evaluation
//	}
package errors
