package table

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// KeepFunc reports whether the row at position i survives the filter.
// It must be safe to call from several goroutines.
type KeepFunc func(i int, row *Row) bool

// Scanner walks rows through a KeepFunc and returns the kept rows in their
// original order
type Scanner interface {
	Scan(rows []*Row, keep KeepFunc) []*Row
}

type sequential struct{}

// Sequential returns a scanner that checks rows one by one
func Sequential() Scanner { return sequential{} }

func (sequential) Scan(rows []*Row, keep KeepFunc) []*Row {
	kept := make([]*Row, 0, len(rows))
	for i, r := range rows {
		if keep(i, r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// minChunk is the smallest number of rows handed to one worker
const minChunk = 1024

type parallel struct {
	workers int
}

// Parallel returns a scanner that splits rows into chunks checked by up to
// workers goroutines. A value below 1 uses GOMAXPROCS.
func Parallel(workers int) Scanner {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return parallel{workers: workers}
}

func (p parallel) Scan(rows []*Row, keep KeepFunc) []*Row {
	if p.workers == 1 || len(rows) <= minChunk {
		return sequential{}.Scan(rows, keep)
	}

	size := max((len(rows)+p.workers-1)/p.workers, minChunk)
	chunks := make([][]*Row, (len(rows)+size-1)/size)

	var g errgroup.Group
	g.SetLimit(p.workers)
	for c := range chunks {
		start := c * size
		end := min(start+size, len(rows))
		g.Go(func() error {
			kept := make([]*Row, 0, end-start)
			for i := start; i < end; i++ {
				if keep(i, rows[i]) {
					kept = append(kept, rows[i])
				}
			}
			chunks[c] = kept
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	kept := make([]*Row, 0, n)
	for _, c := range chunks {
		kept = append(kept, c...)
	}
	return kept
}
