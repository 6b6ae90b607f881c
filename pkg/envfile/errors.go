package envfile

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSeparator is returned for a data line without "=".
	ErrMissingSeparator = errors.New("missing '=' separator")
	// ErrInvalidKey is returned when the text before "=" is not an identifier.
	ErrInvalidKey = errors.New("invalid variable name")
	// ErrUnterminatedQuote is returned when a quoted value never closes.
	ErrUnterminatedQuote = errors.New("unterminated quoted value")
	// ErrTrailingCharacters is returned for text after a closing quote.
	ErrTrailingCharacters = errors.New("unexpected characters after quoted value")
)

// ParseError reports a malformed line in key/value text.
type ParseError struct {
	Line int    // 1-based line number
	Text string // the offending line
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Shift returns a copy of e with the line number moved by offset.
// Used when the parsed text was cut out of a larger file.
func (e *ParseError) Shift(offset int) *ParseError {
	shifted := *e
	shifted.Line += offset
	return &shifted
}
