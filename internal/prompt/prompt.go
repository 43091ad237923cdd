// Package prompt asks the operator questions on a line-oriented terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const exitChoice = "** exit **"

var (
	// ErrExit is returned when the operator chooses to exit or input ends.
	ErrExit = errors.New("prompt: exit")
	// ErrNoChoices is returned by Select when there is nothing to choose.
	ErrNoChoices = errors.New("prompt: nothing to choose from")
)

// Terminal reads answers line by line.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Terminal over the given streams.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Printf writes formatted text to the terminal.
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// Println writes a line to the terminal.
func (t *Terminal) Println(args ...any) {
	fmt.Fprintln(t.out, args...)
}

// Writer exposes the output stream, for progress from other packages.
func (t *Terminal) Writer() io.Writer {
	return t.out
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrExit
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Wait shows msg and blocks until the operator presses enter.
func (t *Terminal) Wait(msg string) error {
	t.Printf("%s ", msg)
	_, err := t.readLine()
	return err
}

// Confirm asks a yes/no question; an empty answer picks def.
func (t *Terminal) Confirm(msg string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		t.Printf("%s (%s) ", msg, hint)
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		t.Println("Please answer yes or no.")
	}
}

// Input asks for free text. An empty answer picks def. When validate is
// set, the question repeats until it accepts the answer.
func (t *Terminal) Input(msg, def string, validate func(string) error) (string, error) {
	for {
		if def != "" {
			t.Printf("%s (%s): ", msg, def)
		} else {
			t.Printf("%s: ", msg)
		}
		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			line = def
		}
		if validate != nil {
			if verr := validate(line); verr != nil {
				t.Printf("  %v\n", verr)
				continue
			}
		}
		return line, nil
	}
}

// InputInt asks for an integer, repeating until it parses and validate
// accepts it.
func (t *Terminal) InputInt(msg string, def int, validate func(int) error) (int, error) {
	var n int
	_, err := t.Input(msg, strconv.Itoa(def), func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", s)
		}
		if validate != nil {
			if err := validate(v); err != nil {
				return err
			}
		}
		n = v
		return nil
	})
	return n, err
}

// Select lists choices and returns the index of the one picked. The
// operator answers with a number, or types text to narrow the list with
// Filter. "q" exits.
func (t *Terminal) Select(msg string, choices []string) (int, error) {
	if len(choices) == 0 {
		return -1, ErrNoChoices
	}
	visible := Filter("", choices)
	for {
		t.list(msg, choices, visible)
		t.Printf("> ")
		line, err := t.readLine()
		if err != nil {
			return -1, err
		}
		switch {
		case line == "q":
			return -1, ErrExit
		case line == "":
			if len(visible) == 1 {
				return visible[0], nil
			}
			visible = Filter("", choices)
			continue
		}
		if n, err := strconv.Atoi(line); err == nil {
			if n >= 1 && n <= len(visible) {
				return visible[n-1], nil
			}
			t.Printf("Choose a number between 1 and %d.\n", len(visible))
			continue
		}
		visible = t.narrow(line, choices)
	}
}

// MultiSelect is like Select but accepts several numbers separated by
// commas or spaces. An empty answer selects nothing.
func (t *Terminal) MultiSelect(msg string, choices []string) ([]int, error) {
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}
	visible := Filter("", choices)
	for {
		t.list(msg+" (numbers separated by commas)", choices, visible)
		t.Printf("> ")
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		switch line {
		case "q":
			return nil, ErrExit
		case "":
			return nil, nil
		}

		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		picked, ok := parseNumbers(fields, len(visible))
		if !ok {
			if len(fields) > 0 {
				if _, err := strconv.Atoi(fields[0]); err == nil {
					t.Printf("Choose numbers between 1 and %d.\n", len(visible))
					continue
				}
			}
			visible = t.narrow(line, choices)
			continue
		}
		out := make([]int, 0, len(picked))
		for _, n := range picked {
			out = append(out, visible[n-1])
		}
		return out, nil
	}
}

func (t *Terminal) narrow(pattern string, choices []string) []int {
	visible := Filter(pattern, choices)
	if len(visible) == 0 {
		t.Printf("No matches for %q.\n", pattern)
		return Filter("", choices)
	}
	return visible
}

func (t *Terminal) list(msg string, choices []string, visible []int) {
	t.Println(msg)
	for i, idx := range visible {
		t.Printf("  %d) %s\n", i+1, choices[idx])
	}
	t.Printf("  q) %s\n", exitChoice)
}

// parseNumbers reads a list of distinct 1-based positions no larger than n.
func parseNumbers(fields []string, n int) ([]int, bool) {
	seen := make(map[int]bool, len(fields))
	var out []int
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 1 || v > n {
			return nil, false
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, len(out) > 0
}
