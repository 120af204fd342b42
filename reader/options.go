package reader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vegasq/tabq/table"
)

// Options controls how source data becomes a table
type Options struct {
	// Delimiter separates fields of delimited text. Zero means ',' or, for
	// .tsv files, '\t'.
	Delimiter rune

	// NoHeader treats the first record as data. Columns are then named by
	// Headers, or column1, column2, ... when Headers is empty.
	NoHeader bool

	// Headers names the columns of input without a header row. Setting it
	// implies NoHeader.
	Headers []string

	// Types declares column types by position. Missing types are Text.
	Types []table.Type

	// TrimSpace removes leading and trailing white space from every field.
	TrimSpace bool

	// KeepEmptyRows keeps records whose fields are all empty.
	KeepEmptyRows bool

	// Sheet selects the XLSX sheet. The first sheet is used when empty.
	Sheet string
}

// build turns raw records into a table according to opts
func (opts Options) build(records [][]string) (*table.Table, error) {
	var headers []string
	switch {
	case len(opts.Headers) > 0:
		headers = slices.Clone(opts.Headers)
	case opts.NoHeader:
		if len(records) > 0 {
			headers = make([]string, len(records[0]))
			for i := range headers {
				headers[i] = fmt.Sprintf("column%d", i+1)
			}
		}
	default:
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: missing header row", table.ErrTableInputInvalid)
		}
		headers, records = records[0], records[1:]
	}

	if opts.TrimSpace {
		headers = trimAll(headers)
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if opts.TrimSpace {
			record = trimAll(record)
		}
		if !opts.KeepEmptyRows && isEmpty(record) {
			continue
		}
		rows = append(rows, record)
	}

	return table.New(headers, opts.Types, rows)
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func isEmpty(record []string) bool {
	for _, f := range record {
		if f != "" {
			return false
		}
	}
	return true
}
