package table

import "errors"

var (
	// ErrTableInputInvalid reports malformed source data: ragged rows,
	// duplicate or empty headers, unreadable input.
	ErrTableInputInvalid = errors.New("invalid table input")

	// ErrDataTypeInvalid reports a cell that violates its declared type
	// while a table is built, or an unknown type name.
	ErrDataTypeInvalid = errors.New("invalid data type")

	// ErrTypeDiscord reports a value that could not be coerced to the
	// declared type of the column it is compared against.
	ErrTypeDiscord = errors.New("type discord")

	// ErrColumnInvalid reports a column that does not exist in the table.
	ErrColumnInvalid = errors.New("invalid column")
)
