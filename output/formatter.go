// Package output writes query results.
//
// Supported formats:
//   - CSV: comma-separated lines, the default
//   - JSON Lines: one JSON object per row when a header row is present,
//     one JSON array per row otherwise
//   - Table: an aligned text table for terminals
//   - SQLite: rows inserted into a table of a SQLite database
//
// Example usage:
//
//	formatter := output.NewCSVFormatter(output.Terminal())
//	if err := formatter.Format(records); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"
	"os"

	"github.com/vegasq/tabq/internal/compress"
)

// Formatter defines the interface for output formatters.
//
// Format receives the projected records of one query. When the query printed
// a header, it is the first record.
type Formatter interface {
	Format(records [][]string) error
}

// HeaderAware is implemented by formatters that render a header row
// differently from data rows. SetHeaderRow(true) tells the formatter that
// the first record passed to Format is a header.
type HeaderAware interface {
	SetHeaderRow(bool)
}

// NewlineSetter is implemented by formatters that terminate lines with the
// platform line ending. AlwaysUseUnixNewline(true) forces "\n".
type NewlineSetter interface {
	AlwaysUseUnixNewline(bool)
}

// Terminal returns the standard output stream
func Terminal() io.Writer {
	return os.Stdout
}

// CreateFile creates path for writing results. A compression suffix
// (.gz, .xz, .zst) compresses the written data.
func CreateFile(path string) (io.WriteCloser, error) {
	return compress.Create(path)
}
