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

// Package header provides the common Kind/APIVersion/Metadata header carried
// by every serialized craftcost document: cached catalog snapshots, cost
// reports and explanations.
//
//	h := header.New(
//	    header.WithKind(header.KindCatalogSnapshot),
//	    header.WithAPIVersion(header.APIVersion),
//	)
//
// Serialized form:
//
//	{
//	  "kind": "CatalogSnapshot",
//	  "apiVersion": "craftcost.nvidia.com/v1",
//	  "metadata": {
//	    "timestamp": "2025-12-30T10:30:00Z",
//	    "version": "v1.0.0"
//	  }
//	}
//
// Readers check Kind before trusting the payload; the snapshot cache treats
// a mismatched kind as a decode failure and rebuilds.
package header
