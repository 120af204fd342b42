// Package table holds loaded tabular data and evaluates queries against it.
//
// A Table is built once from headers, declared column types and raw records,
// and is read-only afterwards. Cells keep their raw text and are compared
// through typed Variants, so an Integer column orders 9 before 10.
//
// Evaluating a query has three steps:
//
//	plan, err := tbl.Plan(q)     // resolve columns and header labels
//	rows, err := tbl.Query(q)    // filter, order, paginate
//	records := plan.Records(rows) // cells, header, transpose
//
// Plan runs before any row is scanned, so column errors are reported first.
//
// Rows whose value cannot be coerced to the column type while filtering are
// dropped and reported to the logger given with WithLogger.
package table
