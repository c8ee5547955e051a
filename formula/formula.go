// Package formula is the external collaborator spec.md component 4.B
// describes: it parses formula expression text into an evaluable handle
// and reports the positions it references, without the Cell/Sheet layers
// ever needing to know the grammar. It is grounded on original_source's
// formula.cpp Formula class, which plays exactly this role (wrapping a
// FormulaAST behind Evaluate/GetExpression/GetReferencedCells), adapted to
// sit on top of this module's own token/lexer/ast/parser stack rather than
// the original's external FormulaAST dependency.
package formula

import (
	"sort"

	"gridsheet/ast"
	"gridsheet/cellerror"
	"gridsheet/lexer"
	"gridsheet/parser"
	"gridsheet/position"
)

// Formula is a parsed formula expression, owning its AST and the set of
// positions it references.
type Formula struct {
	source     string
	expr       ast.Expr
	referenced []position.Position
}

// Parse parses expr (the formula text with the leading "=" already
// stripped) into a Formula, or returns a *cellerror.FormulaSyntaxError.
func Parse(expr string) (*Formula, error) {
	l := lexer.New(expr)
	p := parser.New(l)
	tree := p.ParseExpression()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &cellerror.FormulaSyntaxError{
			Text:   expr,
			Detail: parser.FormatParseErrors(errs, expr),
		}
	}

	var refs []position.Position
	tree.Collect(&refs)
	refs = dedupeSorted(refs)

	return &Formula{source: expr, expr: tree, referenced: refs}, nil
}

// Execute evaluates the formula, calling resolve for every cell reference
// it contains. The first FormulaError encountered anywhere in the tree
// short-circuits the rest of the evaluation.
func (f *Formula) Execute(resolve ast.Resolver) (float64, *cellerror.FormulaError) {
	return f.expr.Eval(resolve)
}

// PrintCanonical renders the formula with normalized whitespace and no
// redundant parentheses. It does not reparse — the AST built at Parse time
// is printed directly.
func (f *Formula) PrintCanonical() string {
	return f.expr.Print(0)
}

// ReferencedPositions returns the positions this formula reads, ascending
// and deduplicated — matching original_source's Formula::GetReferencedCells,
// which collects into a std::set before returning.
func (f *Formula) ReferencedPositions() []position.Position {
	return f.referenced
}

func dedupeSorted(positions []position.Position) []position.Position {
	if len(positions) == 0 {
		return nil
	}
	sorted := make([]position.Position, len(positions))
	copy(sorted, positions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
