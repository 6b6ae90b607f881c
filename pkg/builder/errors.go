package builder

import (
	"errors"
	"fmt"
)

// ErrSetupDeclined is returned when the user chooses not to replace a
// template that is already set up.
var ErrSetupDeclined = errors.New("not creating new template")

// WriteError is returned when a generated file cannot be written. The
// target file is left untouched.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
