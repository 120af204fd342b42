package reader

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vegasq/tabq/table"
)

// createTestXLSX writes rows into Sheet1 of a new in-memory workbook
func createTestXLSX(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, file.SetCellValue("Sheet1", cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return &buf
}

func TestReadXLSX(t *testing.T) {
	buf := createTestXLSX(t, [][]any{
		{"id", "name", "note"},
		{1, "alice", "first"},
		{2, "bob"},
	})

	tbl, err := ReadXLSX(buf, Options{Types: []table.Type{table.TypeInteger}})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "note"}, tbl.Headers())
	assert.Equal(t, [][]string{
		{"1", "alice", "first"},
		{"2", "bob", ""},
	}, tbl.Records())
}

func TestReadXLSX_NamedSheet(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()
	_, err := file.NewSheet("people")
	require.NoError(t, err)
	require.NoError(t, file.SetSheetRow("people", "A1", &[]any{"name"}))
	require.NoError(t, file.SetSheetRow("people", "A2", &[]any{"carol"}))

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	tbl, err := ReadXLSX(bytes.NewReader(buf.Bytes()), Options{Sheet: "people"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"carol"}}, tbl.Records())

	_, err = ReadXLSX(bytes.NewReader(buf.Bytes()), Options{Sheet: "missing"})
	assert.ErrorIs(t, err, table.ErrTableInputInvalid)
}

func TestReadXLSX_Invalid(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("not a workbook")), Options{})
	assert.ErrorIs(t, err, table.ErrTableInputInvalid)

	empty := createTestXLSX(t, nil)
	_, err = ReadXLSX(empty, Options{})
	assert.ErrorIs(t, err, table.ErrTableInputInvalid)
}
