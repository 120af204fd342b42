package reader

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vegasq/tabq/table"
)

// ReadXLSX reads one sheet of an Excel workbook into a table.
//
// opts.Sheet selects the sheet, the first sheet is used otherwise. Excel
// drops trailing empty cells, so every row is padded or cut to the header width.
func ReadXLSX(r io.Reader, opts Options) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %w", table.ErrTableInputInvalid, err)
	}
	defer func() { _ = f.Close() }()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: no sheets found in workbook", table.ErrTableInputInvalid)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %s: %w", table.ErrTableInputInvalid, sheet, err)
	}
	if len(rows) == 0 && len(opts.Headers) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", table.ErrTableInputInvalid, sheet)
	}

	var width int
	switch {
	case len(opts.Headers) > 0:
		width = len(opts.Headers)
	case opts.NoHeader:
		for _, row := range rows {
			width = max(width, len(row))
		}
	default:
		width = len(rows[0])
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		record := make([]string, width)
		copy(record, row)
		padded[i] = record
	}

	return opts.build(padded)
}
