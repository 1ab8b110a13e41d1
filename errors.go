package numfmt

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern indicates a pattern string was rejected by the compiler.
var ErrInvalidPattern = errors.New("numfmt: invalid pattern")

// ErrParse indicates no subpattern matched the input at the cursor.
var ErrParse = errors.New("numfmt: parse failure")

// ErrOverflow indicates the parsed magnitude does not fit the requested integer type.
var ErrOverflow = errors.New("numfmt: integer overflow")

var ErrUnknownAttribute = errors.New("numfmt: unknown attribute")

var ErrUnknownSymbol = errors.New("numfmt: unknown symbol")

// ErrInvalidCurrency indicates a currency code that is not ISO 4217.
var ErrInvalidCurrency = errors.New("numfmt: invalid currency code")

// ErrInvalidNumber indicates malformed decimal text passed to FormatDecimal.
var ErrInvalidNumber = errors.New("numfmt: invalid number")

// ErrLocaleNotFound is returned by providers that have no data for a locale.
var ErrLocaleNotFound = errors.New("numfmt: locale not found")

// PatternError describes where and why a pattern was rejected.
type PatternError struct {
	Pattern string
	Offset  int
	Reason  string
}

func (e *PatternError) Error() string {
	if e == nil {
		return ErrInvalidPattern.Error()
	}
	return fmt.Sprintf("%s %q at offset %d: %s", ErrInvalidPattern, e.Pattern, e.Offset, e.Reason)
}

func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}
