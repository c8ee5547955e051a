package spreadsheet

import (
	"strconv"

	"gridsheet/cellerror"
)

// ValueKind tags which alternative a CellValue currently holds.
type ValueKind int

const (
	NumberValue ValueKind = iota
	StringValue
	ErrorValue
)

// CellValue is the tagged union a Cell's GetValue returns: a number, a
// string, or a FormulaError. Exactly one of Number/Str/Err is meaningful,
// selected by Kind.
type CellValue struct {
	Kind   ValueKind
	Number float64
	Str    string
	Err    *cellerror.FormulaError
}

func numberValue(v float64) CellValue { return CellValue{Kind: NumberValue, Number: v} }
func stringValue(s string) CellValue  { return CellValue{Kind: StringValue, Str: s} }
func errorValue(e *cellerror.FormulaError) CellValue {
	return CellValue{Kind: ErrorValue, Err: e}
}

// String renders the value the way PrintValues emits it: the number via
// Go's shortest round-trip decimal format, the string verbatim, or the
// FormulaError's short token (e.g. "#DIV/0!").
func (v CellValue) String() string {
	switch v.Kind {
	case NumberValue:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case StringValue:
		return v.Str
	case ErrorValue:
		return v.Err.Kind.Token()
	default:
		return ""
	}
}
