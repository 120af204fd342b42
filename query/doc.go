// Package query provides the statement language of tabq: a tokenizer, a
// keyword-driven statement parser and the Query / Predicate model it builds.
//
// The grammar is SQL-like but deliberately small:
//
//	SELECT <col,col,...|*> FROM <table>
//	  [HMAP <label,label,...>]
//	  [WHERE <col> <op> <arg...> [AND|OR <col> <op> <arg...>]...]
//	  [ORDER BY <col> [ASEC|DESC]]
//	  [OFFSET <n>] [LIMIT <n>]
//	  [FLAG <PHD|SUP|TP>...]
//
// # Basic Usage
//
//	q, err := query.Parse("SELECT a,b FROM t1 WHERE a = 1 ORDER BY b DESC FLAG PHD")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The same query with the builder:
//
//	q, err := query.NewBuilder().
//	    Table("t1").
//	    Columns("a", "b").
//	    Predicate("a", query.OpEqual, "1").
//	    OrderBy("b", query.OrderDesc).
//	    Flags(query.FlagPrintHeader).
//	    Build()
//
// # Tokens
//
// Words are separated by whitespace. A single quote or a backslash toggles a
// quoted region in which whitespace is kept, so 'John Doe' is one word.
// Quoted words are never keywords. Surrounding double quotes are stripped
// from clause content.
//
// Keywords are case-insensitive. A keyword only switches clauses when it
// differs from the current clause, and BY is only a keyword right after
// ORDER.
//
// # Operators
//
//   - Comparison: =, !=, <, >, <=, >=
//   - LIKE <regexp> (Go RE2 syntax, not SQL wildcards)
//   - BETWEEN <lo> <hi> (inclusive)
//   - IN <v1> <v2> ...
//
// Predicates are separated by the literal words AND or OR. The separator is
// recorded on each Predicate, but a row must satisfy every predicate.
//
// # Flags
//
//   - PHD (PRINT-HEADER): emit a header row
//   - SUP (SUPPLEMENT): allow selecting absent columns, which are blank
//   - TP (TRANSPOSE): transpose the result
//
// # Error Handling
//
// Every malformed statement wraps ErrQueryStatementInvalid.
package query
