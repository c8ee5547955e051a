package parser

import (
	"testing"

	"gridsheet/lexer"
)

func parse(t *testing.T, src string) (string, []ParseError) {
	t.Helper()
	p := New(lexer.New(src))
	expr := p.ParseExpression()
	if len(p.Errors()) > 0 {
		return "", p.Errors()
	}
	return expr.Print(0), nil
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1+2*3", "1+2*3"},
		{"(1+2)*3", "(1+2)*3"},
		{"1-2-3", "1-2-3"},
		{"1-(2-3)", "1-(2-3)"},
		{"A1+B1", "A1+B1"},
		{"-A1*2", "-A1*2"},
		{"-(A1+B1)", "-(A1+B1)"},
		{"1/2/3", "1/2/3"},
		{"1/(2/3)", "1/(2/3)"},
		{"((A1))", "A1"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, errs := parse(t, tt.src)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got != tt.want {
				t.Fatalf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	for _, src := range []string{"", "1+", "(1+2", "1 2", "A1 B1", "1+*2"} {
		t.Run(src, func(t *testing.T) {
			_, errs := parse(t, src)
			if len(errs) == 0 {
				t.Fatalf("expected a syntax error for %q", src)
			}
		})
	}
}

func TestInvalidCellReference(t *testing.T) {
	// A column/row pair beyond MaxRows is lexically a CELLREF but not a
	// valid Position.
	_, errs := parse(t, "A99999999")
	if len(errs) == 0 {
		t.Fatal("expected an error for an out-of-range cell reference")
	}
}
