package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vegasq/tabq/internal/compress"
	"github.com/vegasq/tabq/table"
)

// Format is a supported source file format
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatTSV
	FormatParquet
	FormatXLSX
)

// DetectFormat returns the format implied by the extension of path,
// ignoring a compression suffix such as .gz
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(compress.Strip(path))) {
	case ".csv", ".txt":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	case ".parquet":
		return FormatParquet
	case ".xlsx":
		return FormatXLSX
	}
	return FormatUnknown
}

// TableName derives a table name from a file path: its base name without
// extensions, so "data/users.csv.gz" becomes "users"
func TableName(path string) string {
	base := filepath.Base(compress.Strip(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads the file at path into a table, choosing the reader by extension.
//
// Delimited text and workbooks may be compressed (.gz, .bz2, .xz, .zst).
// A parquet path containing glob characters loads every matching file.
func Load(path string, opts Options) (*table.Table, error) {
	format := DetectFormat(path)
	if format == FormatParquet {
		if compress.Detect(path) != compress.None {
			return nil, fmt.Errorf("%w: compressed parquet files are not supported: %s", table.ErrTableInputInvalid, path)
		}
		if strings.ContainsAny(path, "*?[") {
			return ReadParquetGlob(path, opts)
		}
		return ReadParquet(path, opts)
	}
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: unsupported file type: %s", table.ErrTableInputInvalid, path)
	}

	r, err := compress.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	switch format {
	case FormatTSV:
		if opts.Delimiter == 0 {
			opts.Delimiter = '\t'
		}
		return ReadCSV(r, opts)
	case FormatXLSX:
		return ReadXLSX(r, opts)
	default:
		return ReadCSV(r, opts)
	}
}
