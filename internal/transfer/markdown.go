package transfer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/neverforget/internal/domain"
)

const (
	promptPrefix        = "Q:"
	promptExamplePrefix = "QE:"
	targetPrefix        = "A:"
	targetExamplePrefix = "AE:"
	separator           = "---"
)

type state int

const (
	seeking state = iota
	readingPrompt
	readingPromptExample
	readingTarget
	readingTargetExample
)

var prefixes = []struct {
	prefix string
	state  state
}{
	{promptPrefix, readingPrompt},
	{promptExamplePrefix, readingPromptExample},
	{targetPrefix, readingTarget},
	{targetExamplePrefix, readingTargetExample},
}

// ParseMarkdownFile reads a file from the given path and extracts all cards.
func ParseMarkdownFile(path string) ([]domain.CardContent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseMarkdown(file)
}

// ParseMarkdown extracts cards written as "Q:" / "QE:" / "A:" / "AE:"
// blocks. A new "Q:" line or a "---" line ends the current card, and a
// value continues over following lines until the next prefix.
func ParseMarkdown(r io.Reader) ([]domain.CardContent, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.CardContent
	var current domain.CardContent
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch currentState {
		case readingPrompt:
			current.Prompt = content
		case readingPromptExample:
			current.PromptExample = content
		case readingTarget:
			current.Target = content
		case readingTargetExample:
			current.TargetExample = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Prompt != "" {
			cards = append(cards, current.Trimmed())
		}
		current = domain.CardContent{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == separator {
			finishCard()
			continue
		}

		next, rest, ok := matchPrefix(line)
		if !ok {
			if currentState != seeking {
				block = append(block, line)
			}
			continue
		}

		if next == readingPrompt && currentState != seeking {
			finishCard()
		} else {
			flushBlock()
		}
		currentState = next
		block = append(block, rest)
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

func matchPrefix(line string) (state, string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p.prefix) {
			return p.state, strings.TrimPrefix(line[len(p.prefix):], " "), true
		}
	}
	return seeking, "", false
}

// WriteMarkdown renders cards in the format ParseMarkdown reads.
func WriteMarkdown(w io.Writer, cards []domain.CardContent) error {
	bw := bufio.NewWriter(w)
	for i, c := range cards {
		if i > 0 {
			fmt.Fprintln(bw, separator)
		}
		fmt.Fprintf(bw, "%s %s\n", promptPrefix, c.Prompt)
		if c.PromptExample != "" {
			fmt.Fprintf(bw, "%s %s\n", promptExamplePrefix, c.PromptExample)
		}
		fmt.Fprintf(bw, "%s %s\n", targetPrefix, c.Target)
		if c.TargetExample != "" {
			fmt.Fprintf(bw, "%s %s\n", targetExamplePrefix, c.TargetExample)
		}
	}
	return bw.Flush()
}
