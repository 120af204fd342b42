package tabq

import (
	"errors"

	"github.com/vegasq/tabq/query"
	"github.com/vegasq/tabq/table"
)

var (
	// ErrTableNameInvalid reports a query or call naming a table that is not
	// loaded, or an unusable table name.
	ErrTableNameInvalid = errors.New("invalid table name")

	// ErrIO reports a failure reading a source or writing results.
	ErrIO = errors.New("i/o failure")

	ErrTableInputInvalid     = table.ErrTableInputInvalid
	ErrDataTypeInvalid       = table.ErrDataTypeInvalid
	ErrTypeDiscord           = table.ErrTypeDiscord
	ErrColumnInvalid         = table.ErrColumnInvalid
	ErrQueryStatementInvalid = query.ErrQueryStatementInvalid
)
