package tabq

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vegasq/tabq/output"
	"github.com/vegasq/tabq/query"
	"github.com/vegasq/tabq/reader"
	"github.com/vegasq/tabq/table"
)

// Indexer keeps named tables in memory and runs statements against them.
//
// An Indexer is safe for concurrent use. Adding or dropping tables blocks
// queries only while the table map is updated; a table that is replaced
// while a query runs stays valid for that query.
type Indexer struct {
	mu          sync.RWMutex
	tables      map[string]*table.Table
	unixNewline bool

	logger     *slog.Logger
	scanner    table.Scanner
	statements *lru.Cache[string, *query.Query]
}

// New creates an empty Indexer
func New(opts ...Option) *Indexer {
	cfg := config{
		logger:    slog.New(slog.DiscardHandler),
		scanner:   table.Sequential(),
		cacheSize: DefaultStatementCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	idx := &Indexer{
		tables:  make(map[string]*table.Table),
		logger:  cfg.logger,
		scanner: cfg.scanner,
	}
	if cfg.cacheSize > 0 {
		// lru.New only fails for a non-positive size
		idx.statements, _ = lru.New[string, *query.Query](cfg.cacheSize)
	}
	return idx
}

// AlwaysUseUnixNewline makes formatters end lines with "\n" on every platform
func (idx *Indexer) AlwaysUseUnixNewline(on bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.unixNewline = on
}

// AddTable reads CSV with a header row into a table of Text columns.
// A table with the same name is replaced.
func (idx *Indexer) AddTable(name string, r io.Reader) error {
	return idx.AddTableWithOptions(name, r, reader.Options{})
}

// AddTableWithOptions reads delimited text into a table.
// A table with the same name is replaced.
func (idx *Indexer) AddTableWithOptions(name string, r io.Reader, opts reader.Options) error {
	if err := validateName(name); err != nil {
		return err
	}
	t, err := reader.ReadCSV(r, opts)
	if err != nil {
		return classify(fmt.Errorf("table %s: %w", name, err))
	}
	idx.put(name, t)
	return nil
}

// AddTableFromFile loads a CSV, TSV, Parquet or XLSX file, optionally
// compressed. An empty name uses the file name without extensions.
func (idx *Indexer) AddTableFromFile(name, path string, opts reader.Options) error {
	if name == "" {
		name = reader.TableName(path)
	}
	if err := validateName(name); err != nil {
		return err
	}
	t, err := reader.Load(path, opts)
	if err != nil {
		return classify(fmt.Errorf("table %s: %w", name, err))
	}
	idx.put(name, t)
	return nil
}

// AddTableData registers an already built table
func (idx *Indexer) AddTableData(name string, t *table.Table) error {
	if err := validateName(name); err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: table %s is nil", ErrTableInputInvalid, name)
	}
	idx.put(name, t)
	return nil
}

func (idx *Indexer) put(name string, t *table.Table) {
	idx.mu.Lock()
	idx.tables[name] = t
	idx.mu.Unlock()

	idx.logger.Debug("table loaded",
		slog.String("table", name),
		slog.Int("columns", len(t.Headers())),
		slog.Int("rows", t.Len()))
}

// ContainsTable reports whether a table named name is loaded
func (idx *Indexer) ContainsTable(name string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.tables[name]
	return ok
}

// DropTable removes a table. Dropping an unknown table does nothing.
func (idx *Indexer) DropTable(name string) {
	idx.mu.Lock()
	delete(idx.tables, name)
	idx.mu.Unlock()
}

// Tables returns the loaded table names in sorted order
func (idx *Indexer) Tables() []string {
	idx.mu.RLock()
	names := make([]string, 0, len(idx.tables))
	for name := range idx.tables {
		names = append(names, name)
	}
	idx.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Table returns a loaded table
func (idx *Indexer) Table(name string) (*table.Table, error) {
	idx.mu.RLock()
	t, ok := idx.tables[name]
	idx.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: table %q doesn't exist", ErrTableNameInvalid, name)
	}
	return t, nil
}

// Parse parses a raw statement. Results are memoized, and every call
// returns its own copy, so callers may modify it.
func (idx *Indexer) Parse(statement string) (*query.Query, error) {
	if idx.statements != nil {
		if q, ok := idx.statements.Get(statement); ok {
			return q.Clone(), nil
		}
	}
	q, err := query.Parse(statement)
	if err != nil {
		return nil, err
	}
	if idx.statements != nil {
		idx.statements.Add(statement, q.Clone())
	}
	return q, nil
}

// Records runs q and returns the output records, header first when q
// prints one.
func (idx *Indexer) Records(q *query.Query) ([][]string, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: nil query", ErrQueryStatementInvalid)
	}
	t, err := idx.Table(q.TableName)
	if err != nil {
		return nil, err
	}

	plan, err := t.Plan(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := t.Query(q, table.WithScanner(idx.scanner), table.WithLogger(idx.logger))
	if err != nil {
		return nil, err
	}
	records := plan.Records(rows)

	idx.logger.Debug("query executed",
		slog.String("table", q.TableName),
		slog.Int("scanned", t.Len()),
		slog.Int("matched", len(rows)),
		slog.Duration("elapsed", time.Since(start)))
	return records, nil
}

// RecordsRaw parses statement and returns its output records
func (idx *Indexer) RecordsRaw(statement string) ([][]string, error) {
	q, err := idx.Parse(statement)
	if err != nil {
		return nil, err
	}
	return idx.Records(q)
}

// Index runs q and writes the result through f.
//
// Every error is detected before f receives any record, so a failing query
// produces no output.
func (idx *Indexer) Index(q *query.Query, f output.Formatter) error {
	if f == nil {
		return errors.New("nil formatter")
	}
	records, err := idx.Records(q)
	if err != nil {
		return err
	}

	idx.mu.RLock()
	unix := idx.unixNewline
	idx.mu.RUnlock()

	if n, ok := f.(output.NewlineSetter); ok {
		n.AlwaysUseUnixNewline(unix)
	}
	if h, ok := f.(output.HeaderAware); ok {
		h.SetHeaderRow(q.Flags.Has(query.FlagPrintHeader) && !q.Flags.Has(query.FlagTranspose))
	}

	if err := f.Format(records); err != nil {
		return fmt.Errorf("%w: writing results: %w", ErrIO, err)
	}
	return nil
}

// IndexRaw parses statement and writes its result through f
func (idx *Indexer) IndexRaw(statement string, f output.Formatter) error {
	q, err := idx.Parse(statement)
	if err != nil {
		return err
	}
	return idx.Index(q, f)
}

func validateName(name string) error {
	if err := query.ValidateTableName(name); err != nil {
		return fmt.Errorf("%w: %w", ErrTableNameInvalid, err)
	}
	return nil
}

// classify marks file system failures as ErrIO. Errors that already carry
// a table error kind are returned unchanged.
func classify(err error) error {
	if errors.Is(err, ErrTableInputInvalid) || errors.Is(err, ErrDataTypeInvalid) {
		return err
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return err
}
