package formula

import (
	"testing"

	"gridsheet/cellerror"
	"gridsheet/position"
)

func TestParseAndExecute(t *testing.T) {
	f, err := Parse("A1+2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ferr := f.Execute(func(p position.Position) (float64, *cellerror.FormulaError) {
		if p == position.Parse("A1") {
			return 3, nil
		}
		return 0, nil
	})
	if ferr != nil || v != 5 {
		t.Fatalf("got %v, %v", v, ferr)
	}
}

func TestReferencedPositionsDeduped(t *testing.T) {
	f, err := Parse("A1+A1+B2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := f.ReferencedPositions()
	want := []position.Position{position.Parse("A1"), position.Parse("B2")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("1+")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(*cellerror.FormulaSyntaxError); !ok {
		t.Fatalf("expected *cellerror.FormulaSyntaxError, got %T", err)
	}
}

func TestExecutePropagatesRefError(t *testing.T) {
	f, err := Parse("A1+1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, ferr := f.Execute(func(position.Position) (float64, *cellerror.FormulaError) {
		return 0, cellerror.NewFormulaError(cellerror.Ref)
	})
	if ferr == nil || ferr.Kind != cellerror.Ref {
		t.Fatalf("expected Ref error, got %v", ferr)
	}
}

func TestPrintCanonical(t *testing.T) {
	f, err := Parse("(A1+B1)*2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.PrintCanonical(); got != "(A1+B1)*2" {
		t.Fatalf("got %q", got)
	}
}
