package output

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Register the pure Go SQLite driver
	_ "modernc.org/sqlite"
)

// SQLiteWriter stores records in a table of a SQLite database.
//
// Columns are named by the header row when there is one, and column1,
// column2, ... otherwise. Every column is TEXT. The table is created if it
// does not exist and records are appended in one transaction.
type SQLiteWriter struct {
	db     *sql.DB
	table  string
	header bool
	owned  bool
}

// NewSQLiteWriter writes into table of an open database
func NewSQLiteWriter(db *sql.DB, table string) *SQLiteWriter {
	return &SQLiteWriter{db: db, table: table}
}

// OpenSQLite opens (or creates) the database file at path
func OpenSQLite(path, table string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteWriter{db: db, table: table, owned: true}, nil
}

// SetHeaderRow marks the first record as the header
func (s *SQLiteWriter) SetHeaderRow(on bool) {
	s.header = on
}

// Format inserts records into the table
func (s *SQLiteWriter) Format(records [][]string) error {
	return s.FormatContext(context.Background(), records)
}

// FormatContext inserts records into the table
func (s *SQLiteWriter) FormatContext(ctx context.Context, records [][]string) error {
	if s.table == "" {
		return errors.New("sqlite table name is empty")
	}
	if len(records) == 0 {
		return nil
	}

	var columns []string
	if s.header {
		columns, records = records[0], records[1:]
	} else {
		columns = make([]string, len(records[0]))
		for i := range columns {
			columns[i] = fmt.Sprintf("column%d", i+1)
		}
	}
	if len(columns) == 0 {
		return errors.New("sqlite table needs at least one column")
	}

	defs := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col) + " TEXT"
		placeholders[i] = "?"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s)`, quoteIdent(s.table), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}

	insert := fmt.Sprintf(`INSERT INTO %s VALUES (%s)`, quoteIdent(s.table), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	values := make([]any, len(columns))
	for _, record := range records {
		for i := range values {
			values[i] = ""
			if i < len(record) {
				values[i] = record[i]
			}
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return tx.Commit()
}

// Close closes the database when it was opened by OpenSQLite
func (s *SQLiteWriter) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
