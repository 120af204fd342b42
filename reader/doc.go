// Package reader loads source files into tables.
//
// Delimited text (CSV, TSV), Apache Parquet files and Excel workbooks are
// supported. Delimited text and workbooks may be compressed with gzip,
// bzip2, xz or zstd.
//
// # Basic Usage
//
//	t, err := reader.Load("users.csv.gz", reader.Options{
//	    Types: []table.Type{table.TypeInteger},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reading from an open stream:
//
//	t, err := reader.ReadCSV(os.Stdin, reader.Options{Delimiter: ';'})
//
// Reading a parquet file with its inferred column types:
//
//	r, err := reader.NewParquetReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	t, err := r.Table(reader.Options{})
//
// # Multi-file Operations
//
// Parquet paths may be glob patterns. Every matching file is appended to
// one table with a trailing "_file" column naming the source file:
//
//	t, err := reader.Load("data/2024-*.parquet", reader.Options{})
package reader
