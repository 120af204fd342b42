package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/vegasq/tabq"
	"github.com/vegasq/tabq/output"
	"github.com/vegasq/tabq/query"
	"github.com/vegasq/tabq/reader"
	"github.com/vegasq/tabq/table"
)

// tableSource is a table requested with -t or as a positional argument
type tableSource struct {
	name string
	path string
}

// sourceList collects repeated -t name=path flags
type sourceList []tableSource

func (s *sourceList) String() string {
	parts := make([]string, len(*s))
	for i, src := range *s {
		parts[i] = src.name + "=" + src.path
	}
	return strings.Join(parts, ",")
}

func (s *sourceList) Set(value string) error {
	name, path, ok := strings.Cut(value, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("expected name=path, got %q", value)
	}
	*s = append(*s, tableSource{name: name, path: path})
	return nil
}

// typeMap collects repeated -types name=t1,t2 flags
type typeMap map[string][]table.Type

func (m typeMap) String() string {
	parts := make([]string, 0, len(m))
	for name, types := range m {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		parts = append(parts, name+"="+strings.Join(names, ","))
	}
	return strings.Join(parts, " ")
}

func (m typeMap) Set(value string) error {
	name, list, ok := strings.Cut(value, "=")
	if !ok || name == "" || list == "" {
		return fmt.Errorf("expected name=type,type,..., got %q", value)
	}
	types, err := table.ParseTypes(strings.Split(list, ","))
	if err != nil {
		return err
	}
	m[name] = types
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	var (
		sources sourceList
		types   = typeMap{}
	)

	fs := flag.NewFlagSet("tabq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	queryFlag := fs.String("q", "", "Statement (e.g., \"SELECT * FROM users WHERE age > 30 FLAG PHD\")")
	fs.Var(&sources, "t", "Load a table as name=path (repeatable)")
	fs.Var(types, "types", "Column types of a table as name=type,type,... (repeatable)")
	delimFlag := fs.String("d", "", "Field delimiter of delimited text (default ',' or tab for .tsv)")
	noHeaderFlag := fs.Bool("no-header", false, "Treat the first line of delimited text as data")
	trimFlag := fs.Bool("trim", false, "Trim white space around fields")
	sheetFlag := fs.String("sheet", "", "XLSX sheet to load (default first sheet)")
	formatFlag := fs.String("f", "csv", "Output format: csv, json, table, sqlite")
	outFlag := fs.String("o", "", "Write results to a file (.gz, .xz, .zst compress); the database path for -f sqlite")
	sqliteTableFlag := fs.String("sqlite-table", "results", "Table written by -f sqlite")
	unixFlag := fs.Bool("unix-newline", false, "End lines with \\n on every platform")
	quoteFlag := fs.Bool("quote", false, "Quote CSV cells containing commas, quotes or line breaks (RFC 4180)")
	sanitizeFlag := fs.Bool("sanitize", false, "Prefix CSV cells starting with =, +, -, @ and similar with ' to block spreadsheet formulas")
	parallelFlag := fs.Int("parallel", 0, "Filter rows with N workers (0 = sequential, -1 = one per CPU)")
	tablesFlag := fs.Bool("tables", false, "List loaded tables instead of running a statement")
	schemaFlag := fs.Bool("schema", false, "Show columns and types of loaded tables instead of running a statement")
	verboseFlag := fs.Bool("v", false, "Log diagnostics to stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tabq [options] [file ...]\n\n")
		fmt.Fprintf(stderr, "Query CSV, TSV, Parquet and XLSX files held in memory.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  tabq users.csv\n")
		fmt.Fprintf(stderr, "  tabq -q \"SELECT name,age FROM users WHERE age > 30 ORDER BY age DESC FLAG PHD\" -types users=text,integer users.csv\n")
		fmt.Fprintf(stderr, "  tabq -t events='logs/*.parquet' -q \"SELECT * FROM events LIMIT 10\" -f table\n")
		fmt.Fprintf(stderr, "  tabq -q \"SELECT * FROM users FLAG PHD\" -f sqlite -o out.db users.csv\n")
		fmt.Fprintf(stderr, "  tabq -schema users.csv\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	// Validate flag values
	if *parallelFlag < -1 {
		fmt.Fprintf(stderr, "Error: -parallel must be -1 or more, got %d\n", *parallelFlag)
		return 1
	}
	if *tablesFlag && *schemaFlag {
		fmt.Fprintf(stderr, "Error: -tables and -schema cannot be used together\n")
		return 1
	}
	if *queryFlag != "" && (*tablesFlag || *schemaFlag) {
		fmt.Fprintf(stderr, "Error: -q cannot be used with -tables or -schema\n")
		return 1
	}
	var delimiter rune
	if *delimFlag != "" {
		if *delimFlag == `\t` {
			*delimFlag = "\t"
		}
		if utf8.RuneCountInString(*delimFlag) != 1 {
			fmt.Fprintf(stderr, "Error: -d must be a single character, got %q\n", *delimFlag)
			return 1
		}
		delimiter, _ = utf8.DecodeRuneInString(*delimFlag)
	}

	for _, path := range fs.Args() {
		sources = append(sources, tableSource{name: reader.TableName(path), path: path})
	}
	if len(sources) == 0 {
		fmt.Fprintf(stderr, "Error: no tables to load\n\n")
		fs.Usage()
		return 1
	}

	logger := slog.New(slog.DiscardHandler)
	if *verboseFlag {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	opts := []tabq.Option{tabq.WithLogger(logger)}
	switch {
	case *parallelFlag == -1:
		opts = append(opts, tabq.WithScanner(table.Parallel(0)))
	case *parallelFlag > 0:
		opts = append(opts, tabq.WithScanner(table.Parallel(*parallelFlag)))
	}

	idx := tabq.New(opts...)
	idx.AlwaysUseUnixNewline(*unixFlag)

	for _, src := range sources {
		err := idx.AddTableFromFile(src.name, src.path, reader.Options{
			Delimiter: delimiter,
			NoHeader:  *noHeaderFlag,
			Types:     types[src.name],
			TrimSpace: *trimFlag,
			Sheet:     *sheetFlag,
		})
		if err != nil {
			reportLoadError(stderr, src, err)
			return 1
		}
	}
	for name := range types {
		if !idx.ContainsTable(name) {
			fmt.Fprintf(stderr, "Error: -types names table %q which is not loaded\n", name)
			return 1
		}
	}

	if *tablesFlag {
		for _, name := range idx.Tables() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	formatter, closeOutput, err := newFormatter(*formatFlag, *outFlag, *sqliteTableFlag, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if csvFormatter, ok := formatter.(*output.CSVFormatter); ok {
		csvFormatter.SetQuoting(*quoteFlag)
		csvFormatter.SetSanitize(*sanitizeFlag)
	}

	if *schemaFlag {
		err = writeSchema(idx, formatter, *unixFlag)
	} else {
		err = runStatement(idx, formatter, *queryFlag)
	}
	if cerr := closeOutput(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", tabq.ErrIO, cerr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, tabq.ErrQueryStatementInvalid) {
			fmt.Fprintf(stderr, "\nStatement format: SELECT <columns> FROM <table> [WHERE ...] [ORDER BY <column> [ASC|DESC]] [LIMIT n] [OFFSET n] [HMAP labels] [FLAG PHD|SUP|TP]\n")
		}
		return 1
	}
	return 0
}

// runStatement executes statement, or prints the only loaded table whole
// when no statement is given
func runStatement(idx *tabq.Indexer, f output.Formatter, statement string) error {
	if statement != "" {
		return idx.IndexRaw(statement, f)
	}

	names := idx.Tables()
	if len(names) != 1 {
		return fmt.Errorf("%w: -q is required when more than one table is loaded", tabq.ErrQueryStatementInvalid)
	}
	q, err := query.NewBuilder().
		Table(names[0]).
		Columns("*").
		Flags(query.FlagPrintHeader).
		Build()
	if err != nil {
		return err
	}
	return idx.Index(q, f)
}

// writeSchema prints one record per column of every loaded table
func writeSchema(idx *tabq.Indexer, f output.Formatter, unix bool) error {
	records := [][]string{{"table", "column", "type"}}
	for _, name := range idx.Tables() {
		t, err := idx.Table(name)
		if err != nil {
			return err
		}
		types := t.Types()
		for i, header := range t.Headers() {
			records = append(records, []string{name, header, types[i].String()})
		}
	}

	if n, ok := f.(output.NewlineSetter); ok {
		n.AlwaysUseUnixNewline(unix)
	}
	if h, ok := f.(output.HeaderAware); ok {
		h.SetHeaderRow(true)
	}
	if err := f.Format(records); err != nil {
		return fmt.Errorf("%w: writing schema: %w", tabq.ErrIO, err)
	}
	return nil
}

// newFormatter builds the formatter for format. The returned func releases
// the output file or database.
func newFormatter(format, path, sqliteTable string, stdout io.Writer) (output.Formatter, func() error, error) {
	switch format {
	case "csv", "json", "jsonl", "table":
	case "sqlite":
		if path == "" {
			return nil, nil, errors.New("-f sqlite requires -o <database path>")
		}
		w, err := output.OpenSQLite(path, sqliteTable)
		if err != nil {
			return nil, nil, err
		}
		return w, w.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported format '%s' (supported: csv, json, table, sqlite)", format)
	}

	w := stdout
	closeOutput := func() error { return nil }
	if path != "" {
		file, err := output.CreateFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", tabq.ErrIO, err)
		}
		w = file
		closeOutput = file.Close
	}

	switch format {
	case "json", "jsonl":
		return output.NewJSONFormatter(w), closeOutput, nil
	case "table":
		return output.NewTableFormatter(w), closeOutput, nil
	}
	return output.NewCSVFormatter(w), closeOutput, nil
}

func reportLoadError(stderr io.Writer, src tableSource, err error) {
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: file '%s' not found\n", src.path)
		fmt.Fprintf(stderr, "Please check the file path and try again.\n")
		return
	}
	fmt.Fprintf(stderr, "Error loading %s: %v\n", src.name, err)
}
