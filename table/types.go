package table

import (
	"fmt"
	"strings"
)

// Type is the declared type of a column
type Type int

const (
	TypeText Type = iota
	TypeNull
	TypeInteger
	TypeFloat
	TypeBlob
)

// String returns the type name as accepted by ParseType
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBlob:
		return "blob"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType resolves a type name, case-insensitively
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "null":
		return TypeNull, nil
	case "text", "string":
		return TypeText, nil
	case "integer", "int":
		return TypeInteger, nil
	case "float", "double":
		return TypeFloat, nil
	case "blob":
		return TypeBlob, nil
	}
	return TypeText, fmt.Errorf("%w: unknown type %q", ErrDataTypeInvalid, name)
}

// ParseTypes resolves a list of type names
func ParseTypes(names []string) ([]Type, error) {
	types := make([]Type, 0, len(names))
	for _, name := range names {
		t, err := ParseType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
