package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/tabq/table"
)

// ParquetReader reads parquet files into tables.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type ParquetReader struct {
	file    *os.File
	pqFile  *parquet.File
	columns []parquet.LeafColumn
}

// NewParquetReader opens the parquet file at path.
//
// Example:
//
//	r, err := reader.NewParquetReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewParquetReader(path string) (*ParquetReader, error) {
	file, err := os.Open(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: failed to open parquet file: %w", table.ErrTableInputInvalid, err)
	}

	schema := pqFile.Schema()
	var columns []parquet.LeafColumn
	for _, path := range schema.Columns() {
		leaf, ok := schema.Lookup(path...)
		if !ok {
			_ = file.Close()
			return nil, fmt.Errorf("%w: column %s not found in schema", table.ErrTableInputInvalid, strings.Join(path, "."))
		}
		columns = append(columns, leaf)
	}

	return &ParquetReader{
		file:    file,
		pqFile:  pqFile,
		columns: columns,
	}, nil
}

// Headers returns the leaf column names. Nested fields use dot notation
// (e.g. "address.street").
func (r *ParquetReader) Headers() []string {
	headers := make([]string, len(r.columns))
	for i, c := range r.columns {
		headers[i] = strings.Join(c.Path, ".")
	}
	return headers
}

// Types infers the column types from the schema.
//
// Required integer columns are Integer and required floating point columns
// are Float. Optional and repeated columns may hold nulls, so they are Text
// like every other physical type.
func (r *ParquetReader) Types() []table.Type {
	types := make([]table.Type, len(r.columns))
	for i, c := range r.columns {
		types[i] = columnType(c)
	}
	return types
}

func columnType(c parquet.LeafColumn) table.Type {
	if c.MaxDefinitionLevel > 0 || c.MaxRepetitionLevel > 0 || c.Node.Type() == nil {
		return table.TypeText
	}
	switch c.Node.Type().Kind() {
	case parquet.Int32, parquet.Int64:
		return table.TypeInteger
	case parquet.Float, parquet.Double:
		return table.TypeFloat
	default:
		return table.TypeText
	}
}

// ReadAll reads every row as raw strings in column order.
//
// Nulls become empty strings and repeated values are joined with ';'.
// The entire file is loaded into memory.
func (r *ParquetReader) ReadAll() ([][]string, error) {
	records := make([][]string, 0, r.pqFile.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	buf := make([]parquet.Row, 128)
	for {
		n, err := reader.ReadRows(buf)
		for _, row := range buf[:n] {
			records = append(records, r.record(row))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return records, nil
}

func (r *ParquetReader) record(row parquet.Row) []string {
	cells := make([]string, len(r.columns))
	seen := make([]bool, len(r.columns))
	for _, v := range row {
		c := v.Column()
		if c < 0 || c >= len(cells) {
			continue
		}
		s := formatValue(v)
		if seen[c] {
			cells[c] += ";" + s
		} else {
			cells[c] = s
			seen[c] = true
		}
	}
	return cells
}

func formatValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return fmt.Sprint(v.Int96())
	}
}

// Table reads the whole file into a table.
// opts.Headers and opts.Types replace the names and types from the schema.
func (r *ParquetReader) Table(opts Options) (*table.Table, error) {
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	headers := r.Headers()
	if len(opts.Headers) > 0 {
		headers = opts.Headers
	}
	types := r.Types()
	if len(opts.Types) > 0 {
		types = opts.Types
	}
	return table.New(headers, types, records)
}

// Close closes the underlying file. It is safe to call Close multiple times.
func (r *ParquetReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadParquet loads one parquet file into a table
func ReadParquet(path string, opts Options) (*table.Table, error) {
	r, err := NewParquetReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.Table(opts)
}

// maxGlobFiles limits the number of files matched by ReadParquetGlob
const maxGlobFiles = 1000

// ReadParquetGlob loads every parquet file matching pattern into one table.
//
// All files must share the column layout of the first match. Each row is
// tagged with a trailing "_file" column holding its source path.
func ReadParquetGlob(pattern string, opts Options) (*table.Table, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxGlobFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxGlobFiles)
	}

	var (
		headers []string
		types   []table.Type
		records [][]string
	)
	for _, path := range matches {
		r, err := NewParquetReader(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		rows, readErr := r.ReadAll()
		if headers == nil {
			headers = append(r.Headers(), "_file")
			types = r.Types()
		} else if got := strings.Join(r.Headers(), ","); got != strings.Join(headers[:len(headers)-1], ",") {
			readErr = fmt.Errorf("%w: columns %s differ from %s", table.ErrTableInputInvalid, got, strings.Join(headers[:len(headers)-1], ","))
		}
		closeErr := r.Close()

		if readErr != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", path, readErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
		}

		for _, row := range rows {
			records = append(records, append(row, path))
		}
	}

	if len(opts.Types) > 0 {
		types = opts.Types
	}
	return table.New(headers, types, records)
}
