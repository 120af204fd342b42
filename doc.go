// Package tabq runs small SQL-like statements against tables held in memory.
//
// Tables are loaded from CSV, TSV, Parquet or XLSX sources and registered
// under a name. Statements select, filter, order, paginate, relabel and
// transpose the rows of one table:
//
//	idx := tabq.New()
//	if err := idx.AddTable("t1", strings.NewReader("a,b,c\n1,2,3\n")); err != nil {
//	    log.Fatal(err)
//	}
//
//	err := idx.IndexRaw("SELECT a,b,d FROM t1 WHERE a = 1 FLAG PHD SUP",
//	    output.NewCSVFormatter(output.Terminal()))
//
// Records returns the result instead of writing it:
//
//	records, err := idx.RecordsRaw("SELECT * FROM t1 ORDER BY a DESC LIMIT 10")
//
// See package query for the statement grammar.
//
// # Errors
//
// Failures wrap one of the error kinds declared here and can be tested with
// errors.Is: ErrTableInputInvalid, ErrTableNameInvalid, ErrDataTypeInvalid,
// ErrTypeDiscord, ErrColumnInvalid, ErrQueryStatementInvalid and ErrIO.
package tabq
