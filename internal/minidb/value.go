package minidb

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ColumnKind enumerates the value/column types supported by the engine.
// Null is deliberately the lowest tag so that ordering values of mismatched
// kinds by tag keeps NULL sorting before everything else.
type ColumnKind int

const (
	Null ColumnKind = iota
	Integer
	Text
	Real
	Blob
)

func (k ColumnKind) String() string {
	switch k {
	case Integer:
		return "INTEGER"
	case Text:
		return "TEXT"
	case Real:
		return "REAL"
	case Blob:
		return "BLOB"
	case Null:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// ColumnKindFromString parses a SQL column type name.
func ColumnKindFromString(s string) (ColumnKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INTEGER", "INT":
		return Integer, true
	case "TEXT", "VARCHAR":
		return Text, true
	case "REAL", "DOUBLE":
		return Real, true
	case "BLOB":
		return Blob, true
	case "NULL":
		return Null, true
	default:
		return 0, false
	}
}

// Value is a tagged union over the engine's storable types. Data holds
// int64, string, float64 or []byte depending on Kind, nil for NULL.
type Value struct {
	Kind ColumnKind
	Data any
}

func NewInteger(n int64) Value {
	return Value{Kind: Integer, Data: n}
}

func NewText(s string) Value {
	return Value{Kind: Text, Data: s}
}

func NewReal(f float64) Value {
	return Value{Kind: Real, Data: f}
}

func NewBlob(b []byte) Value {
	return Value{Kind: Blob, Data: b}
}

func NewNull() Value {
	return Value{Kind: Null}
}

func (v Value) IsNull() bool {
	return v.Kind == Null
}

func (v Value) Int() (int64, bool) {
	n, ok := v.Data.(int64)
	return n, ok
}

func (v Value) Text() (string, bool) {
	s, ok := v.Data.(string)
	return s, ok
}

func (v Value) Real() (float64, bool) {
	f, ok := v.Data.(float64)
	return f, ok
}

func (v Value) Bytes() ([]byte, bool) {
	b, ok := v.Data.([]byte)
	return b, ok
}

// Compare orders two values. NULL sorts before any non-NULL value,
// values of mismatched kinds are ordered by their type tag and values
// of the same kind are ordered natively.
func (v Value) Compare(other Value) int {
	if v.IsNull() && other.IsNull() {
		return 0
	}
	if v.IsNull() {
		return -1
	}
	if other.IsNull() {
		return 1
	}

	if v.Kind != other.Kind {
		return int(v.Kind) - int(other.Kind)
	}

	switch v.Kind {
	case Integer:
		a, b := v.Data.(int64), other.Data.(int64)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case Text:
		return strings.Compare(v.Data.(string), other.Data.(string))
	case Real:
		a, b := v.Data.(float64), other.Data.(float64)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case Blob:
		return bytes.Compare(v.Data.([]byte), other.Data.([]byte))
	}

	return 0
}

func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

func (v Value) String() string {
	switch v.Kind {
	case Integer:
		return strconv.FormatInt(v.Data.(int64), 10)
	case Text:
		return v.Data.(string)
	case Real:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case Blob:
		return fmt.Sprintf("x'%x'", v.Data.([]byte))
	case Null:
		return "NULL"
	default:
		return ""
	}
}
