package spreadsheet

import (
	"strings"

	"gridsheet/position"
)

// PrintValues renders the sheet's full printable rectangle as evaluated
// values, one row per line, cells tab-separated. Every column within
// GetPrintableSize is rendered uniformly, including empty ones, rather
// than trimming trailing blanks per row — spec.md's Open Question on
// ragged-row rendering resolves in favor of a rectangular grid, since a
// reader diffing two renders should see column N line up across rows.
func (s *Sheet) PrintValues() string {
	return s.render(func(c *Cell) string {
		if c == nil || c.Kind() == Empty {
			return ""
		}
		return c.GetValue().String()
	})
}

// PrintTexts renders the sheet's raw/canonical cell text instead of
// evaluated values, otherwise identical to PrintValues.
func (s *Sheet) PrintTexts() string {
	return s.render(func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetText()
	})
}

func (s *Sheet) render(cellText func(*Cell) string) string {
	size := s.printableSize
	if size.IsEmpty() {
		return ""
	}

	var b strings.Builder
	for row := 0; row < size.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(cellText(s.cells[position.Position{Row: row, Col: col}]))
		}
	}
	return b.String()
}
