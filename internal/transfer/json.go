package transfer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/conorfennell/neverforget/internal/domain"
)

// DecodeJSON reads an array of {prompt, promptExample, target, targetExample}.
func DecodeJSON(r io.Reader) ([]domain.CardContent, error) {
	var cards []domain.CardContent
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	return cards, nil
}

// EncodeJSON writes cards as an indented JSON array.
func EncodeJSON(w io.Writer, cards []domain.CardContent) error {
	if cards == nil {
		cards = []domain.CardContent{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cards)
}
