package parser

import (
	"fmt"
	"strings"

	"gridsheet/token"
)

type ParseError struct {
	Message string
	Token   token.Token
}

// FormatParseErrors renders a caret-annotated error report, adapted from
// the teacher's karl/parser.FormatParseErrors.
func FormatParseErrors(errs []ParseError, source string) string {
	if len(errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, formatParseError(err, source))
	}
	return strings.Join(parts, "\n")
}

func formatParseError(err ParseError, source string) string {
	if err.Token.Line == 0 || source == "" {
		return "parse error: " + err.Message
	}
	col := err.Token.Column
	if col < 1 {
		col = 1
	}
	if col > len(source)+1 {
		col = len(source) + 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf(
		"parse error: %s\n  at column %d\n  %s\n  %s",
		err.Message,
		col,
		source,
		caret,
	)
}
