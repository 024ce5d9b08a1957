package diag

import (
	"errors"
	"fmt"

	"jlite/internal/source"
)

// Error carries a single fail-fast diagnostic through ordinary error returns.
type Error struct {
	Diag Diagnostic
}

// Errorf builds an *Error with SevError severity.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diag: NewError(code, primary, fmt.Sprintf(format, args...))}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Diag.Code.ID(), e.Diag.Message)
}

// Code returns the diagnostic code of the wrapped record.
func (e *Error) Code() Code {
	if e == nil {
		return UnknownCode
	}
	return e.Diag.Code
}

// AsDiagnostic extracts the diagnostic from err if it wraps an *Error.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var de *Error
	if errors.As(err, &de) && de != nil {
		return de.Diag, true
	}
	return Diagnostic{}, false
}

// CodeOf returns the code carried by err or UnknownCode.
func CodeOf(err error) Code {
	if d, ok := AsDiagnostic(err); ok {
		return d.Code
	}
	return UnknownCode
}
