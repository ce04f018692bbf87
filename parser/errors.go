package parser

import (
	"fmt"

	"github.com/hydrogen-lang/hydrogen-compiler/lexer"
)

// ErrorKind categorizes the type of error
type ErrorKind int

const (
	ErrorUnexpectedToken ErrorKind = iota
	ErrorUnexpectedEOF
	ErrorBadStatement
	ErrorMissingMain
)

// Error represents a parse error with source line information
type Error struct {
	Line    int
	Message string
	Kind    ErrorKind
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

// NewError creates a new parser error
func NewError(line int, kind ErrorKind, message string) *Error {
	return &Error{
		Line:    line,
		Message: message,
		Kind:    kind,
	}
}

// newExpectError reports a missing or mismatched token
func newExpectError(expected lexer.TokenType, found *lexer.Token) *Error {
	if found == nil {
		return &Error{
			Kind:    ErrorUnexpectedEOF,
			Message: fmt.Sprintf("expected %s, found end of input", expected),
		}
	}
	return &Error{
		Line:    found.Line,
		Kind:    ErrorUnexpectedToken,
		Message: fmt.Sprintf("expected %s, found %s", expected, found.Type),
	}
}
