package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders records as an aligned text table
type TableFormatter struct {
	writer io.Writer
	header bool
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// SetHeaderRow marks the first record as the header
func (t *TableFormatter) SetHeaderRow(on bool) {
	t.header = on
}

// Format writes records as a table
func (t *TableFormatter) Format(records [][]string) error {
	tw := tablewriter.NewWriter(t.writer)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	if t.header && len(records) > 0 {
		tw.SetHeader(records[0])
		records = records[1:]
	}
	tw.AppendBulk(records)
	tw.Render()
	return nil
}
