package schedule

import (
	"fmt"
	"strconv"
)

// Score is the operator's self-reported recall confidence for a card.
type Score int

const (
	Forgot   Score = iota // Couldn't recall the target at all.
	Hesitant              // Recalled the target after thinking a bit.
	Instant               // Recalled the target immediately.
)

var (
	scoreNames = [...]string{Forgot: "Forgot", Hesitant: "Hesitant", Instant: "Instant"}

	scoreDescriptions = [...]string{
		Forgot:   "I couldn't recall it at all.",
		Hesitant: "I recalled it after thinking a bit.",
		Instant:  "I recalled it immediately!",
	}
)

// Scores lists every valid score in ordinal order.
func Scores() []Score {
	return []Score{Forgot, Hesitant, Instant}
}

// IsValid reports whether s is one of Forgot, Hesitant or Instant.
func (s Score) IsValid() bool {
	return s >= Forgot && s <= Instant
}

// String returns the name of the score. For invalid values it returns "Score(n)".
func (s Score) String() string {
	if s.IsValid() {
		return scoreNames[s]
	}
	return fmt.Sprintf("Score(%d)", int(s))
}

// Description is the sentence shown to the operator when choosing a score.
func (s Score) Description() string {
	if s.IsValid() {
		return scoreDescriptions[s]
	}
	return s.String()
}

// ParseScore accepts either the ordinal ("0".."2") or the name of a score.
func ParseScore(text string) (Score, error) {
	if n, err := strconv.Atoi(text); err == nil {
		s := Score(n)
		if !s.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidScore, n)
		}
		return s, nil
	}
	for i, name := range scoreNames {
		if name == text {
			return Score(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidScore, text)
}
