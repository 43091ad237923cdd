package prompt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func newTerminal(input string) (*Terminal, *strings.Builder) {
	out := &strings.Builder{}
	return New(strings.NewReader(input), out), out
}

func TestConfirm(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		def      bool
		expected bool
	}{
		{"empty picks default true", "\n", true, true},
		{"empty picks default false", "\n", false, false},
		{"yes", "yes\n", false, true},
		{"n", "n\n", true, false},
		{"retries on nonsense", "maybe\ny\n", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			term, _ := newTerminal(tc.input)
			got, err := term.Confirm("Continue?", tc.def)
			if err != nil {
				t.Fatalf("Confirm() returned an unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %v, but got %v", tc.expected, got)
			}
		})
	}
}

func TestConfirmAtEOF(t *testing.T) {
	term, _ := newTerminal("")
	if _, err := term.Confirm("Continue?", true); !errors.Is(err, ErrExit) {
		t.Errorf("Expected ErrExit at end of input, but got %v", err)
	}
}

func TestInput(t *testing.T) {
	t.Run("default on empty", func(t *testing.T) {
		term, _ := newTerminal("\n")
		got, err := term.Input("Name", "deck", nil)
		if err != nil || got != "deck" {
			t.Errorf("Expected 'deck', but got '%s' (%v)", got, err)
		}
	})

	t.Run("re-prompts until valid", func(t *testing.T) {
		term, out := newTerminal("bad:name\ngood\n")
		got, err := term.Input("Name", "", func(s string) error {
			if strings.Contains(s, ":") {
				return fmt.Errorf("no colons")
			}
			return nil
		})
		if err != nil || got != "good" {
			t.Errorf("Expected 'good', but got '%s' (%v)", got, err)
		}
		if !strings.Contains(out.String(), "no colons") {
			t.Error("Expected the validation message to be shown")
		}
	})
}

func TestInputInt(t *testing.T) {
	term, _ := newTerminal("ten\n40\n\n")
	got, err := term.InputInt("How many?", 15, func(n int) error {
		if n > 20 {
			return fmt.Errorf("too many")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InputInt() returned an unexpected error: %v", err)
	}
	if got != 15 {
		t.Errorf("Expected the default 15, but got %d", got)
	}
}

func TestSelect(t *testing.T) {
	choices := []string{"Spanish: verbs", "Go: trivia", "German"}

	testCases := []struct {
		name     string
		input    string
		expected int
		err      error
	}{
		{"by number", "2\n", 1, nil},
		{"filter then number", "grm\n1\n", 2, nil},
		{"filter to one then enter", "span\n\n", 0, nil},
		{"out of range then valid", "9\n3\n", 2, nil},
		{"exit", "q\n", -1, ErrExit},
		{"end of input", "", -1, ErrExit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			term, _ := newTerminal(tc.input)
			got, err := term.Select("Which deck?", choices)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Expected error %v, but got %v", tc.err, err)
			}
			if got != tc.expected {
				t.Errorf("Expected %d, but got %d", tc.expected, got)
			}
		})
	}
}

func TestSelectWithoutChoices(t *testing.T) {
	term, _ := newTerminal("1\n")
	if _, err := term.Select("Which?", nil); !errors.Is(err, ErrNoChoices) {
		t.Errorf("Expected ErrNoChoices, but got %v", err)
	}
}

func TestMultiSelect(t *testing.T) {
	choices := []string{"a", "b", "c"}

	term, _ := newTerminal("3, 1 3\n")
	got, err := term.MultiSelect("Which?", choices)
	if err != nil {
		t.Fatalf("MultiSelect() returned an unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("Expected [2 0], but got %v", got)
	}

	term, _ = newTerminal("\n")
	got, err = term.MultiSelect("Which?", choices)
	if err != nil || got != nil {
		t.Errorf("Expected no selection, but got %v (%v)", got, err)
	}
}

func TestFilter(t *testing.T) {
	choices := []string{"Spanish verbs", "Go trivia", "German nouns", "sp"}

	testCases := []struct {
		pattern  string
		expected []int
	}{
		{"", []int{0, 1, 2, 3}},
		{"SP", []int{3, 0}},
		{"gn", []int{2}},
		{"xyz", []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			got := Filter(tc.pattern, choices)
			if len(got) != len(tc.expected) {
				t.Fatalf("Expected %v, but got %v", tc.expected, got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Expected %v, but got %v", tc.expected, got)
				}
			}
		})
	}
}
