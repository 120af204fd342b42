package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strings"
)

// CSVFormatter outputs records as comma-separated lines.
//
// Cells are joined with "," as they are. SetQuoting switches to RFC 4180
// output, which quotes cells containing commas, quotes or line breaks.
// Lines end with "\r\n" on Windows and "\n" elsewhere unless
// AlwaysUseUnixNewline is set.
type CSVFormatter struct {
	writer      io.Writer
	unixNewline bool
	quote       bool
	sanitize    bool
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// AlwaysUseUnixNewline forces "\n" line endings
func (c *CSVFormatter) AlwaysUseUnixNewline(on bool) {
	c.unixNewline = on
}

// SetQuoting enables RFC 4180 quoting of cells
func (c *CSVFormatter) SetQuoting(on bool) {
	c.quote = on
}

// SetSanitize enables prefixing cells that spreadsheet applications would
// run as formulas with a single quote
func (c *CSVFormatter) SetSanitize(on bool) {
	c.sanitize = on
}

func (c *CSVFormatter) crlf() bool {
	return !c.unixNewline && runtime.GOOS == "windows"
}

// Format writes records as CSV
func (c *CSVFormatter) Format(records [][]string) error {
	if c.quote {
		return c.formatQuoted(records)
	}

	newline := "\n"
	if c.crlf() {
		newline = "\r\n"
	}

	w := bufio.NewWriter(c.writer)
	for _, record := range records {
		if c.sanitize {
			record = sanitizeRecord(record)
		}
		if _, err := w.WriteString(strings.Join(record, ",") + newline); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

func (c *CSVFormatter) formatQuoted(records [][]string) error {
	csvWriter := csv.NewWriter(c.writer)
	csvWriter.UseCRLF = c.crlf()

	for _, record := range records {
		if c.sanitize {
			record = sanitizeRecord(record)
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

func sanitizeRecord(record []string) []string {
	out := make([]string, len(record))
	for i, cell := range record {
		out[i] = sanitizeCell(cell)
	}
	return out
}

// sanitizeCell guards against CSV injection by prefixing characters
// that could trigger formula execution in spreadsheet applications
func sanitizeCell(val string) string {
	if len(val) == 0 {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		// Escape existing single quotes and prefix with quote to prevent formula injection
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}
