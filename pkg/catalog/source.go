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
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/NVIDIA/craftcost/pkg/errors"
)

// Source reads named tables from tabular storage.
type Source interface {
	// ReadTable returns all rows of the named table, header included. A table
	// that does not exist is reported with errors.ErrCodeNotFound.
	ReadTable(ctx context.Context, name string) (Rows, error)
}

// Writer replaces the contents of a named table.
type Writer interface {
	WriteTable(ctx context.Context, name string, rows Rows) error
}

// ReadWriter is a Source that can also be written back.
type ReadWriter interface {
	Source
	Writer
}

// Load reads the items, recipes and prices tables from src and builds a
// snapshot. A missing table aborts with a CONFIGURATION error.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	tables := make(map[string]Rows, 3)
	for _, name := range RequiredTables() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "catalog load canceled", err)
		}
		rows, err := src.ReadTable(ctx, name)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeNotFound) {
				return nil, errors.WrapWithContext(errors.ErrCodeConfiguration,
					"required catalog table is missing", err, map[string]any{"table": name})
			}
			return nil, errors.WrapWithContext(errors.ErrCodeUnavailable,
				"failed to read catalog table", err, map[string]any{"table": name})
		}
		if rows == nil {
			rows = Rows{}
		}
		slog.Debug("catalog table read", "table", name, "rows", len(rows))
		tables[name] = rows
	}
	return Build(tables[TableItems], tables[TableRecipes], tables[TablePrices])
}

// MemorySource is an in-memory ReadWriter, safe for concurrent use.
type MemorySource struct {
	mu     sync.RWMutex
	tables map[string]Rows
}

// NewMemorySource returns a source holding the given tables.
func NewMemorySource(tables map[string]Rows) *MemorySource {
	m := &MemorySource{tables: make(map[string]Rows, len(tables))}
	for name, rows := range tables {
		m.tables[name] = copyRows(rows)
	}
	return m
}

// ReadTable implements Source.
func (m *MemorySource) ReadTable(_ context.Context, name string) (Rows, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.tables[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("table %q not found", name))
	}
	return copyRows(rows), nil
}

// WriteTable implements Writer.
func (m *MemorySource) WriteTable(_ context.Context, name string, rows Rows) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = copyRows(rows)
	return nil
}

func copyRows(rows Rows) Rows {
	if rows == nil {
		return Rows{}
	}
	out := make(Rows, len(rows))
	for i, row := range rows {
		out[i] = append([]any(nil), row...)
	}
	return out
}
