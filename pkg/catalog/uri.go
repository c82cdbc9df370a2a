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
	"io"
	"strings"

	"github.com/NVIDIA/craftcost/pkg/errors"
)

// URI schemes understood by OpenSource.
const (
	SchemeSQLite     = "sqlite://"
	SchemePostgres   = "postgres://"
	SchemePostgreSQL = "postgresql://"
	schemeFile       = "file://"
)

// noopCloser is returned for sources that hold no resources.
type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// OpenSource resolves a catalog URI:
//   - sqlite://<path>          SQLite database file
//   - postgres://... or postgresql://...  PostgreSQL DSN
//   - <file>.yaml|.yml|.json   workbook file
//   - anything else            directory of CSV files
//
// The returned Closer must be closed when the source is no longer needed.
func OpenSource(uri string) (ReadWriter, io.Closer, error) {
	u := strings.TrimSpace(uri)
	if u == "" {
		return nil, nil, errors.New(errors.ErrCodeConfiguration, "catalog location is not set")
	}

	switch {
	case strings.HasPrefix(u, SchemeSQLite):
		src, err := OpenSQLSource(DialectSQLite, strings.TrimPrefix(u, SchemeSQLite))
		if err != nil {
			return nil, nil, err
		}
		return src, src, nil
	case strings.HasPrefix(u, SchemePostgres), strings.HasPrefix(u, SchemePostgreSQL):
		src, err := OpenSQLSource(DialectPostgres, u)
		if err != nil {
			return nil, nil, err
		}
		return src, src, nil
	}

	path := strings.TrimPrefix(u, schemeFile)
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json") {
		return NewWorkbookSource(path), noopCloser{}, nil
	}
	return NewDirSource(path), noopCloser{}, nil
}
