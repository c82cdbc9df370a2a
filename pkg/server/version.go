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

package server

import (
	"net/http"
	"strings"

	"github.com/NVIDIA/craftcost/pkg/version"
)

const (
	// DefaultAPIVersion is the default API version if none is negotiated
	DefaultAPIVersion = "v1"

	vendorMediaPrefix = "application/vnd.nvidia.craftcost."
)

var defaultAPIVersion = version.MustParseVersion(DefaultAPIVersion)

// negotiateAPIVersion extracts the API version from a vendor media type in
// the Accept header, e.g. application/vnd.nvidia.craftcost.v1+json.
// Unknown or absent versions fall back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		part = strings.TrimSpace(part)
		rest, ok := strings.CutPrefix(part, vendorMediaPrefix)
		if !ok {
			continue
		}
		requested, _, _ := strings.Cut(rest, "+")
		requested, _, _ = strings.Cut(requested, ";")
		if v, ok := servedAPIVersion(requested); ok {
			return v
		}
	}
	return DefaultAPIVersion
}

// servedAPIVersion maps a requested version such as "v1" or "v1.2" onto
// the served version with the same major number.
func servedAPIVersion(requested string) (string, bool) {
	if !strings.HasPrefix(requested, "v") {
		return "", false
	}
	v, err := version.ParseVersion(requested)
	if err != nil || v.Extras != "" {
		return "", false
	}
	if v.Compatible(defaultAPIVersion) {
		return DefaultAPIVersion, true
	}
	return "", false
}

// SetAPIVersionHeader sets the API version header in the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
