package query

import (
	"errors"
	"fmt"
)

// Validation limits to keep a single statement from exhausting memory
const (
	// MaxQueryLength is the maximum allowed statement length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxTokens is the maximum number of tokens in a statement
	MaxTokens = 10000

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256

	// MaxTableNameLength is the maximum length for a table name
	MaxTableNameLength = 4096
)

var (
	// ErrQueryStatementInvalid is returned for any malformed statement or query
	ErrQueryStatementInvalid = errors.New("invalid query statement")

	// ErrQueryTooLong is returned when a statement exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyTokens is returned when a statement has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in query")

	// ErrColumnNameTooLong is returned when a column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")

	// ErrTableNameTooLong is returned when a table name is too long
	ErrTableNameTooLong = errors.New("table name too long")

	// ErrEmptyTableName is returned when a table name is empty
	ErrEmptyTableName = errors.New("table name cannot be empty")
)

// ValidateQuery checks the raw statement length
func ValidateQuery(statement string) error {
	if len(statement) > MaxQueryLength {
		return fmt.Errorf("%w: %w: %d bytes (max %d)", ErrQueryStatementInvalid, ErrQueryTooLong, len(statement), MaxQueryLength)
	}
	return nil
}

// ValidateTableName validates table name length and content
func ValidateTableName(name string) error {
	if name == "" {
		return ErrEmptyTableName
	}
	if len(name) > MaxTableNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrTableNameTooLong, len(name), MaxTableNameLength)
	}
	return nil
}

// ValidateColumnName validates column name length
func ValidateColumnName(name string) error {
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %w: %d chars (max %d)", ErrQueryStatementInvalid, ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}

// ValidateTokens validates token count
func ValidateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return fmt.Errorf("%w: %w: %d tokens (max %d)", ErrQueryStatementInvalid, ErrTooManyTokens, len(tokens), MaxTokens)
	}
	return nil
}
