package output

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryAll(t *testing.T, db *sql.DB, stmt string) [][]string {
	t.Helper()

	rows, err := db.Query(stmt)
	require.NoError(t, err)
	defer rows.Close()

	cols, err := rows.Columns()
	require.NoError(t, err)

	var out [][]string
	for rows.Next() {
		record := make([]string, len(cols))
		ptrs := make([]any, len(cols))
		for i := range record {
			ptrs[i] = &record[i]
		}
		require.NoError(t, rows.Scan(ptrs...))
		out = append(out, record)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestSQLiteWriter_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")

	w, err := OpenSQLite(path, "people")
	require.NoError(t, err)
	w.SetHeaderRow(true)
	require.NoError(t, w.Format([][]string{{"id", "full name"}, {"1", "alice"}, {"2", "bob"}}))
	require.NoError(t, w.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	got := queryAll(t, db, `SELECT id, "full name" FROM people ORDER BY id`)
	assert.Equal(t, [][]string{{"1", "alice"}, {"2", "bob"}}, got)
}

func TestSQLiteWriter_GeneratedColumnsAndAppend(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	w := NewSQLiteWriter(db, "t")
	require.NoError(t, w.Format([][]string{{"a", "b"}}))
	require.NoError(t, w.Format([][]string{{"c", "d"}}))
	require.NoError(t, w.Close())

	got := queryAll(t, db, `SELECT column1, column2 FROM t ORDER BY column1`)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, got)
}

func TestSQLiteWriter_Errors(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	assert.Error(t, NewSQLiteWriter(db, "").Format([][]string{{"a"}}))

	w := NewSQLiteWriter(db, "dup")
	w.SetHeaderRow(true)
	assert.Error(t, w.Format([][]string{{"x", "x"}, {"1", "2"}}), "duplicate column names")

	assert.NoError(t, NewSQLiteWriter(db, "empty").Format(nil))
}
