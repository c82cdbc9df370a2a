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

// Package serializer encodes reports and decodes documents in JSON, YAML and
// table form, and carries the small HTTP helpers shared by the API server and
// the market client.
//
// Writing:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// The table format renders values implementing Tabular as columns and
// flattens everything else into sorted FIELD/VALUE pairs keyed by json tag
// names. Table output cannot be read back.
//
// Reading:
//
//	wb, err := serializer.FromFile[Workbook]("catalog.yaml")
//
// HTTP:
//
//	serializer.RespondJSON(w, http.StatusOK, result)
//	body, status, err := serializer.Fetch(ctx, client, url, http.StatusOK, http.StatusPartialContent)
//
// RespondJSON encodes into a buffer before writing headers so an encoding
// failure produces a clean 500 instead of a truncated body.
package serializer
