package spreadsheet

import (
	"errors"
	"strconv"
	"strings"
)

// ValueType represents numeric constants for value kinds
type ValueType uint8

const (
	ValueTypeEmpty   ValueType = 0
	ValueTypeInteger ValueType = 1
	ValueTypeFloat   ValueType = 2
	ValueTypeText    ValueType = 3
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeEmpty:
		return "empty"
	case ValueTypeInteger:
		return "integer"
	case ValueTypeFloat:
		return "float"
	case ValueTypeText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a storable cell result. only the field matching Type is
// meaningful; the zero Value is Empty. values are comparable with ==.
type Value struct {
	Type  ValueType
	Int   int64
	Float float64
	Text  string
}

func Empty() Value            { return Value{} }
func Integer(v int64) Value   { return Value{Type: ValueTypeInteger, Int: v} }
func Float(v float64) Value   { return Value{Type: ValueTypeFloat, Float: v} }
func Text(v string) Value     { return Value{Type: ValueTypeText, Text: v} }
func (v Value) IsEmpty() bool { return v.Type == ValueTypeEmpty }

// IsNumeric reports whether the value is an Integer or a Float
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeInteger || v.Type == ValueTypeFloat
}

// String renders the value for display. floats use the shortest
// representation that round-trips, so 2.0 renders as "2".
func (v Value) String() string {
	switch v.Type {
	case ValueTypeInteger:
		return strconv.FormatInt(v.Int, 10)
	case ValueTypeFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case ValueTypeText:
		return v.Text
	default:
		return ""
	}
}

// ParseValue parses literal (non-formula) cell text. it never fails:
// text that is neither blank nor numeric is kept as Text.
func ParseValue(text string) Value {
	if strings.TrimSpace(text) == "" {
		return Empty()
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Integer(i)
	}
	if !isDecimalFloat(text) {
		return Text(text)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		// overflow keeps the ±Inf ParseFloat returns
		return Float(f)
	}
	return Text(text)
}

// isDecimalFloat rejects the Go literal forms ParseFloat accepts beyond plain
// decimal notation: digit separators and hexadecimal mantissas
func isDecimalFloat(text string) bool {
	if strings.Contains(text, "_") {
		return false
	}
	unsigned := text
	if strings.HasPrefix(text, "+") || strings.HasPrefix(text, "-") {
		unsigned = text[1:]
	}
	return !strings.HasPrefix(unsigned, "0x") && !strings.HasPrefix(unsigned, "0X")
}
