package ast

import (
	"testing"

	"gridsheet/cellerror"
	"gridsheet/position"
)

func num(v float64, text string) *NumberLiteral { return &NumberLiteral{Value: v, Text: text} }
func ref(a1 string) *CellRef                    { return &CellRef{Pos: position.Parse(a1)} }

func constResolver(values map[string]float64) Resolver {
	return func(p position.Position) (float64, *cellerror.FormulaError) {
		if v, ok := values[p.String()]; ok {
			return v, nil
		}
		return 0, nil
	}
}

func TestBinaryEval(t *testing.T) {
	expr := &BinaryExpr{Op: '+', Left: ref("A1"), Right: num(2, "2")}
	v, err := expr.Eval(constResolver(map[string]float64{"A1": 3}))
	if err != nil || v != 5 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestDivisionByZero(t *testing.T) {
	expr := &BinaryExpr{Op: '/', Left: num(1, "1"), Right: num(0, "0")}
	_, err := expr.Eval(nil)
	if err == nil || err.Kind != cellerror.Div0 {
		t.Fatalf("expected Div0, got %v", err)
	}
}

func TestPrintNormalizesRedundantParens(t *testing.T) {
	// "(A1+B1)+C1" parses with Left = (A1+B1), associative add: no parens needed.
	expr := &BinaryExpr{
		Op:   '+',
		Left: &BinaryExpr{Op: '+', Left: ref("A1"), Right: ref("B1")},
		Right: ref("C1"),
	}
	if got := expr.Print(0); got != "A1+B1+C1" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintKeepsNecessaryParens(t *testing.T) {
	// "A1-(B1-C1)" is not equal to "A1-B1-C1", so parens must survive.
	expr := &BinaryExpr{
		Op:   '-',
		Left: ref("A1"),
		Right: &BinaryExpr{Op: '-', Left: ref("B1"), Right: ref("C1")},
	}
	if got := expr.Print(0); got != "A1-(B1-C1)" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintUnaryOverBinaryNeedsParens(t *testing.T) {
	expr := &UnaryExpr{Op: '-', Operand: &BinaryExpr{Op: '+', Left: ref("A1"), Right: ref("B1")}}
	if got := expr.Print(0); got != "-(A1+B1)" {
		t.Fatalf("got %q", got)
	}
}

func TestCollectOrderAndDuplicates(t *testing.T) {
	expr := &BinaryExpr{Op: '+', Left: ref("A1"), Right: ref("A1")}
	var out []position.Position
	expr.Collect(&out)
	if len(out) != 2 || out[0] != out[1] {
		t.Fatalf("expected two duplicate positions, got %v", out)
	}
}
