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
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/serializer"
)

// Workbook is a single YAML or JSON file holding every table:
//
//	tables:
//	  Items:
//	    - [name, id, mode, manualCost]
//	    - [Iron Ingot, 19683, NORMAL, ""]
type Workbook struct {
	Tables map[string]Rows `json:"tables" yaml:"tables"`
}

// WorkbookSource reads and writes a Workbook file. The format follows the
// file extension.
type WorkbookSource struct {
	Path string

	mu sync.Mutex
}

// NewWorkbookSource returns a source backed by the workbook at path.
func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{Path: path}
}

func (w *WorkbookSource) load() (*Workbook, error) {
	if _, err := os.Stat(w.Path); err != nil {
		if os.IsNotExist(err) {
			return &Workbook{Tables: map[string]Rows{}}, nil
		}
		return nil, fmt.Errorf("failed to stat workbook %s: %w", w.Path, err)
	}
	wb, err := serializer.FromFile[Workbook](w.Path)
	if err != nil {
		return nil, err
	}
	if wb.Tables == nil {
		wb.Tables = map[string]Rows{}
	}
	return wb, nil
}

// ReadTable implements Source. Table names match case-insensitively.
func (w *WorkbookSource) ReadTable(ctx context.Context, name string) (Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	wb, err := w.load()
	if err != nil {
		return nil, err
	}
	if key, ok := lookupTable(wb.Tables, name); ok {
		rows := wb.Tables[key]
		if rows == nil {
			rows = Rows{}
		}
		return rows, nil
	}
	return nil, errors.NewWithContext(errors.ErrCodeNotFound, "table not found in workbook",
		map[string]any{"table": name, "path": w.Path})
}

// WriteTable implements Writer by rewriting the whole workbook.
func (w *WorkbookSource) WriteTable(ctx context.Context, name string, rows Rows) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	wb, err := w.load()
	if err != nil {
		return err
	}
	if key, ok := lookupTable(wb.Tables, name); ok {
		name = key
	}
	wb.Tables[name] = normalizeCells(rows)

	var buf bytes.Buffer
	if err := serializer.NewWriter(serializer.FormatFromPath(w.Path), &buf).Serialize(ctx, wb); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return serializer.WriteToFile(w.Path, buf.Bytes())
}

func lookupTable(tables map[string]Rows, name string) (string, bool) {
	if _, ok := tables[name]; ok {
		return name, true
	}
	for k := range tables {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

// normalizeCells keeps numbers as numbers and renders everything else as
// text so the workbook stays readable.
func normalizeCells(rows Rows) Rows {
	out := make(Rows, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			if f, ok := v.(float64); ok {
				cells[j] = f
				continue
			}
			if n, ok := v.(int); ok {
				cells[j] = n
				continue
			}
			cells[j] = CellText(v)
		}
		out[i] = cells
	}
	return out
}
