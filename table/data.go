package table

import (
	"bytes"
	"cmp"
	"fmt"
	"strconv"
)

// Data is a single cell: a declared type and the raw text it was loaded from
type Data struct {
	typ   Type
	value string
}

// NewData creates a cell and checks that value satisfies typ.
//
// Integer and Float values must parse and Null values must be empty. Text and
// Blob are not checked.
func NewData(typ Type, value string) (Data, error) {
	if err := checkValue(typ, value); err != nil {
		return Data{}, fmt.Errorf("%w: %w", ErrDataTypeInvalid, err)
	}
	return Data{typ: typ, value: value}, nil
}

// Type returns the declared type of the cell
func (d Data) Type() Type { return d.typ }

// Value returns the raw cell text
func (d Data) Value() string { return d.value }

// String returns the raw cell text
func (d Data) String() string { return d.value }

// Variant returns the typed value of the cell
func (d Data) Variant() (Variant, error) {
	return NewVariant(d.typ, d.value)
}

func checkValue(typ Type, value string) error {
	switch typ {
	case TypeNull:
		if value != "" {
			return fmt.Errorf("value %q is not NULL", value)
		}
	case TypeInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("value %q is not an integer", value)
		}
	case TypeFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("value %q is not a floating point number", value)
		}
	case TypeText, TypeBlob:
	default:
		return fmt.Errorf("unsupported type %s", typ)
	}
	return nil
}

// Variant is a typed value used to compare cells. It is derived from a cell or
// a query argument for one comparison and never stored in a table.
type Variant struct {
	kind    Type
	text    string
	integer int64
	float   float64
}

// NewVariant coerces raw into a value of kind typ.
// A value that does not fit typ yields ErrTypeDiscord.
func NewVariant(typ Type, raw string) (Variant, error) {
	v := Variant{kind: typ}
	switch typ {
	case TypeNull:
		if raw != "" {
			return Variant{}, fmt.Errorf("%w: %q is not NULL", ErrTypeDiscord, raw)
		}
	case TypeText, TypeBlob:
		v.text = raw
	case TypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Variant{}, fmt.Errorf("%w: %q is not an integer", ErrTypeDiscord, raw)
		}
		v.integer = n
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Variant{}, fmt.Errorf("%w: %q is not a floating point number", ErrTypeDiscord, raw)
		}
		v.float = f
	default:
		return Variant{}, fmt.Errorf("%w: unsupported type %s", ErrTypeDiscord, typ)
	}
	return v, nil
}

// Kind returns the type the value was coerced to
func (v Variant) Kind() Type { return v.kind }

// Compare returns -1, 0 or +1 as v is less than, equal to or greater than o.
// Values of different kinds cannot be compared and yield ErrTypeDiscord.
func (v Variant) Compare(o Variant) (int, error) {
	if v.kind != o.kind {
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrTypeDiscord, v.kind, o.kind)
	}
	switch v.kind {
	case TypeNull:
		return 0, nil
	case TypeInteger:
		return cmp.Compare(v.integer, o.integer), nil
	case TypeFloat:
		return cmp.Compare(v.float, o.float), nil
	case TypeBlob:
		return bytes.Compare([]byte(v.text), []byte(o.text)), nil
	default:
		return cmp.Compare(v.text, o.text), nil
	}
}

// String formats the typed value
func (v Variant) String() string {
	switch v.kind {
	case TypeNull:
		return ""
	case TypeInteger:
		return strconv.FormatInt(v.integer, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	default:
		return v.text
	}
}
