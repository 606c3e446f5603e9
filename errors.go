package slippi

import "fmt"

// A ParseError is returned for any fatal condition encountered while
// decoding a replay. It carries the byte offset into the input at which
// the error was detected, for localization.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("slippi: parse error at offset 0x%x: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(offset int64, format string, args ...interface{}) error {
	return &ParseError{Offset: offset, Err: fmt.Errorf(format, args...)}
}
