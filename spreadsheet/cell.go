package spreadsheet

import (
	"strconv"
	"strings"

	"gridsheet/cellerror"
	"gridsheet/formula"
	"gridsheet/position"
)

// FormulaSigil marks a cell's text as a formula; EscapeSigil marks a text
// literal that should not be interpreted numerically.
const (
	FormulaSigil = '='
	EscapeSigil  = '\''
)

// Kind tags which of the three content alternatives a Cell currently holds.
type Kind int

const (
	Empty Kind = iota
	Text
	Formula
)

// Cell is a single grid location: empty, a text literal, or a formula. It
// owns its evaluation cache and its set of inbound dependents; the Sheet
// owns everything else about the graph (registration, invalidation,
// cycle detection) per spec.
type Cell struct {
	sheet *Sheet

	kind    Kind
	text    string
	formula *formula.Formula
	cache   *CellValue

	dependents map[position.Position]struct{}
}

func newCell(sheet *Sheet) *Cell {
	return &Cell{sheet: sheet, kind: Empty, dependents: make(map[position.Position]struct{})}
}

// Set installs new content. On formula-syntax failure the cell is left
// completely unchanged, per spec.
func (c *Cell) Set(text string) error {
	if text == "" {
		c.kind = Empty
		c.text = ""
		c.formula = nil
		c.cache = nil
		return nil
	}
	if text[0] == FormulaSigil && len(text) > 1 {
		f, err := formula.Parse(text[1:])
		if err != nil {
			return err
		}
		c.kind = Formula
		c.text = text
		c.formula = f
		c.cache = nil
		return nil
	}
	c.kind = Text
	c.text = text
	c.formula = nil
	c.cache = nil
	return nil
}

// GetValue evaluates the cell. It never returns a Go error: evaluation
// failures surface as an ErrorValue-kind CellValue instead.
func (c *Cell) GetValue() CellValue {
	switch c.kind {
	case Empty:
		return numberValue(0)
	case Text:
		if c.text == "" {
			return numberValue(0)
		}
		if c.text[0] == EscapeSigil {
			return stringValue(c.text[1:])
		}
		return stringValue(c.text)
	case Formula:
		if c.cache != nil {
			return *c.cache
		}
		v, ferr := c.formula.Execute(c.resolve)
		var result CellValue
		if ferr != nil {
			result = errorValue(ferr)
		} else {
			result = numberValue(v)
		}
		c.cache = &result
		return result
	default:
		return numberValue(0)
	}
}

// resolve is the Resolver handed to the formula AST: it validates the
// position, treats an absent cell as 0, and coerces a string cell to a
// number for arithmetic, raising Value on failure.
func (c *Cell) resolve(p position.Position) (float64, *cellerror.FormulaError) {
	if !p.IsValid() {
		return 0, cellerror.NewFormulaError(cellerror.Ref)
	}
	other := c.sheet.cells[p]
	if other == nil {
		return 0, nil
	}
	v := other.GetValue()
	switch v.Kind {
	case NumberValue:
		return v.Number, nil
	case ErrorValue:
		return 0, v.Err
	case StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, cellerror.NewFormulaError(cellerror.Value)
		}
		return f, nil
	default:
		return 0, nil
	}
}

// GetText returns the cell's textual representation: the raw literal for
// Text, "=" + the canonical reprint for Formula, or "" for Empty.
func (c *Cell) GetText() string {
	switch c.kind {
	case Text:
		return c.text
	case Formula:
		return string(FormulaSigil) + c.formula.PrintCanonical()
	default:
		return ""
	}
}

// GetReferencedCells returns the positions this cell's formula reads, or
// nil for Empty/Text cells.
func (c *Cell) GetReferencedCells() []position.Position {
	if c.kind != Formula {
		return nil
	}
	return c.formula.ReferencedPositions()
}

// InvalidateCache clears a Formula cell's cached value. Empty/Text cells
// ignore it, since they never cache.
func (c *Cell) InvalidateCache() {
	c.cache = nil
}

func (c *Cell) hasCache() bool {
	return c.kind == Formula && c.cache != nil
}

// IsReferenced reports whether any other cell currently depends on this
// one. Surfaced from original_source's Cell::IsReferenced; used internally
// by ClearCell's dangling-dependents policy (see spreadsheet/sheet.go).
func (c *Cell) IsReferenced() bool {
	return len(c.dependents) > 0
}

// Kind reports which of the three content alternatives this cell holds.
func (c *Cell) Kind() Kind { return c.kind }

func (c *Cell) addDependent(p position.Position)    { c.dependents[p] = struct{}{} }
func (c *Cell) removeDependent(p position.Position) { delete(c.dependents, p) }
