package study

import (
	"errors"
	"fmt"
)

// ErrInvalidLimit means the requested session size is out of range.
var ErrInvalidLimit = errors.New("study: invalid session limit")

// AbortError ends a session part way through. Studied holds the cards whose
// schedules were already committed; they are not rolled back.
type AbortError struct {
	CardID  string
	Studied []string
	Err     error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("study: session aborted at card %s after %d updated card(s): %v", e.CardID, len(e.Studied), e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}
