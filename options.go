package tabq

import (
	"log/slog"

	"github.com/vegasq/tabq/table"
)

// DefaultStatementCacheSize is the number of parsed statements kept by New
const DefaultStatementCacheSize = 128

type config struct {
	logger    *slog.Logger
	scanner   table.Scanner
	cacheSize int
}

// Option configures an Indexer
type Option func(*config)

// WithLogger sets the logger for diagnostics, including rows dropped while
// filtering. Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScanner sets the row filtering strategy, e.g. table.Parallel(4)
func WithScanner(s table.Scanner) Option {
	return func(c *config) {
		if s != nil {
			c.scanner = s
		}
	}
}

// WithStatementCache sets how many parsed raw statements are kept.
// Zero or less disables the cache.
func WithStatementCache(size int) Option {
	return func(c *config) {
		c.cacheSize = size
	}
}
