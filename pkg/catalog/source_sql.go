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
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/lib/pq"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder syntax and error classification.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// pqUndefinedTable is the SQLSTATE for a missing relation.
const pqUndefinedTable = "42P01"

// sqlSchema lists the data columns of every table in order. Each table also
// has a leading row_no column that preserves sheet order.
var sqlSchema = map[string][]string{
	TableItems:   {"name", "id", "mode", "manual_cost"},
	TableRecipes: {"output", "output_qty", "ingredient", "ingredient_qty"},
	TablePrices:  {"name", "buy", "sell"},
}

// SQLSource stores tables in a SQL database, one relation per table named
// after the lower-cased table name. Cells are stored as text and go through
// the same lenient coercion as any other source.
type SQLSource struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLSource wraps an open database.
func NewSQLSource(db *sql.DB, dialect Dialect) *SQLSource {
	return &SQLSource{db: db, dialect: dialect}
}

// OpenSQLSource opens a database with the driver matching dialect.
func OpenSQLSource(dialect Dialect, dsn string) (*SQLSource, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
	case DialectPostgres:
		driver = "postgres"
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unsupported sql dialect %q", dialect))
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to open catalog database", err)
	}
	return NewSQLSource(db, dialect), nil
}

// Close closes the underlying database.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

// DB returns the underlying database handle.
func (s *SQLSource) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates any missing tables.
func (s *SQLSource) EnsureSchema(ctx context.Context) error {
	for _, name := range RequiredTables() {
		cols := sqlSchema[name]
		defs := make([]string, 0, len(cols)+1)
		defs = append(defs, "row_no INTEGER PRIMARY KEY")
		for _, c := range cols {
			defs = append(defs, c+" TEXT")
		}
		stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", relation(name), strings.Join(defs, ", "))
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", relation(name), err)
		}
	}
	return nil
}

// ReadTable implements Source. The header row is built from column names.
func (s *SQLSource) ReadTable(ctx context.Context, name string) (Rows, error) {
	cols, ok := schemaFor(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("table %q has no sql schema", name))
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY row_no", strings.Join(cols, ", "), relation(name))
	rs, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if s.isMissingTable(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("table %s does not exist", relation(name)), err)
		}
		return nil, fmt.Errorf("failed to query %s: %w", relation(name), err)
	}
	defer rs.Close()

	head := make([]any, len(cols))
	for i, c := range cols {
		head[i] = c
	}
	rows := Rows{head}

	for rs.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", relation(name), err)
		}
		row := make([]any, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			}
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", relation(name), err)
	}
	return rows, nil
}

// WriteTable implements Writer. Row 0 of rows is taken as a header and not
// stored; the rest replace the table inside one transaction.
func (s *SQLSource) WriteTable(ctx context.Context, name string, rows Rows) error {
	cols, ok := schemaFor(name)
	if !ok {
		return errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("table %q has no sql schema", name))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+relation(name)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", relation(name), err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (row_no, %s) VALUES (%s)",
		relation(name), strings.Join(cols, ", "), s.placeholders(len(cols)+1)))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range body(rows) {
		args := make([]any, 0, len(cols)+1)
		args = append(args, i+1)
		for j := range cols {
			v := Cell(row, j)
			if v == nil {
				args = append(args, nil)
				continue
			}
			args = append(args, CellText(v))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i+1, relation(name), err)
		}
	}
	return tx.Commit()
}

func (s *SQLSource) placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		if s.dialect == DialectPostgres {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return strings.Join(ph, ", ")
}

func (s *SQLSource) isMissingTable(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == pqUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}

func schemaFor(name string) ([]string, bool) {
	for table, cols := range sqlSchema {
		if strings.EqualFold(table, name) {
			return cols, true
		}
	}
	return nil, false
}

func relation(name string) string {
	return strings.ToLower(name)
}
