// Package diag defines the structured diagnostics shared by every phase of
// the pipeline (lexer, parser, type inferencer, evaluator). Each phase wraps
// diag.Error in a phase-specific type so callers can distinguish failure
// origin with a type switch, while still sharing one wire format.
package diag

import (
	"fmt"

	"github.com/sin4auto/typelang-hm/token"
)

// Error is a tagged (code, message, span) diagnostic. It never aggregates:
// a phase stops at the first Error it produces.
type Error struct {
	Code    string
	Message string
	Span    *token.Span // nil when no source position is available
}

func (e *Error) Error() string {
	if e.Span == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s @%d:%d", e.Code, e.Message, e.Span.Line, e.Span.Col)
}

// New builds an Error with no span information.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// At builds an Error anchored to a source span.
func At(code, message string, span token.Span) *Error {
	return &Error{Code: code, Message: message, Span: &span}
}
