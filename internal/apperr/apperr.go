// Package apperr defines the error taxonomy shared by services and the HTTP
// layer: services return these sentinels (possibly wrapped), handlers map them
// to status codes without inspecting message text.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
	ErrInvalid         = errors.New("invalid")
	ErrIO              = errors.New("io error")
)

type Field struct {
	Name string `json:"field"`
	Msg  string `json:"msg"`
}

type Fields []Field

func (f Fields) Error() string {
	var b strings.Builder
	for i, ef := range f {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Name + ": " + ef.Msg)
	}
	return b.String()
}

// Invalid wraps the field list in ErrInvalid so callers can match with
// errors.Is and still recover the details with errors.As.
func (f Fields) Invalid() error {
	return fmt.Errorf("%w: %w", ErrInvalid, f)
}
