package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ChoiceSeparator splits a deck name from its description when a deck is
// flattened to a single line, so it may not appear in names.
const ChoiceSeparator = ":"

// Deck groups cards under a unique name.
type Deck struct {
	ID          string `db:"id"`
	Name        string `db:"name" validate:"required,max=50,excludes=:"`
	Description string `db:"description"`
}

// NewDeck builds a deck with a fresh id.
func NewDeck(name, description string) (Deck, error) {
	d := Deck{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if err := Validate(d); err != nil {
		return Deck{}, err
	}
	return d, nil
}

// Choice formats the deck as "name: description", or just the name.
func (d Deck) Choice() string {
	if d.Description == "" {
		return d.Name
	}
	return d.Name + ChoiceSeparator + " " + d.Description
}
