package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/vegasq/tabq/table"
)

// ReadCSV reads delimited text into a table.
//
// Quoted fields follow RFC 4180. Rows must all have as many fields as the
// header; a ragged row fails with table.ErrTableInputInvalid.
func ReadCSV(r io.Reader, opts Options) (*table.Table, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", table.ErrTableInputInvalid, err)
		}
		records = append(records, record)
	}

	return opts.build(records)
}
