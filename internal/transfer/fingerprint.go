package transfer

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/neverforget/internal/domain"
)

// Normalize cleans a prompt for duplicate detection: it trims whitespace,
// lowercases, and normalizes line endings.
func Normalize(prompt string) string {
	p := strings.ToLower(prompt)
	p = strings.ReplaceAll(p, "\r\n", "\n")
	return strings.TrimSpace(p)
}

// Fingerprint identifies a card by its normalized prompt, since prompts are
// unique within a deck.
func Fingerprint(c domain.CardContent) string {
	sum := sha256.Sum256([]byte(Normalize(c.Prompt)))
	return fmt.Sprintf("%x", sum)
}
