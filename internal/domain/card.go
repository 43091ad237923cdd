package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Card is a two-sided flashcard owned by a deck. Times are hour indexes.
type Card struct {
	ID               string `db:"id"`
	DeckID           string `db:"deck_id" validate:"required"`
	Prompt           string `db:"prompt" validate:"required"`
	PromptExample    string `db:"prompt_example"`
	Target           string `db:"target" validate:"required"`
	TargetExample    string `db:"target_example"`
	TimeAdded        int64  `db:"time_added"`
	NextReview       int64  `db:"next_review"`
	IntervalProgress int    `db:"interval_progress" validate:"gte=0"`
}

// ScheduleUpdate is the part of a card written after a review.
type ScheduleUpdate struct {
	NextReview       int64
	IntervalProgress int
}

// CardContent holds the editable faces of a card.
type CardContent struct {
	Prompt        string `json:"prompt"`
	PromptExample string `json:"promptExample,omitempty"`
	Target        string `json:"target"`
	TargetExample string `json:"targetExample,omitempty"`
}

// Trimmed returns the content with surrounding whitespace removed from
// every field.
func (c CardContent) Trimmed() CardContent {
	return CardContent{
		Prompt:        strings.TrimSpace(c.Prompt),
		PromptExample: strings.TrimSpace(c.PromptExample),
		Target:        strings.TrimSpace(c.Target),
		TargetExample: strings.TrimSpace(c.TargetExample),
	}
}

// NewCard builds a card that is due immediately.
func NewCard(deckID string, content CardContent, now int64) (Card, error) {
	content = content.Trimmed()
	card := Card{
		ID:               uuid.NewString(),
		DeckID:           deckID,
		Prompt:           content.Prompt,
		PromptExample:    content.PromptExample,
		Target:           content.Target,
		TargetExample:    content.TargetExample,
		TimeAdded:        now,
		NextReview:       now,
		IntervalProgress: 0,
	}
	if err := Validate(card); err != nil {
		return Card{}, err
	}
	return card, nil
}

// Content returns the editable faces of the card.
func (c Card) Content() CardContent {
	return CardContent{
		Prompt:        c.Prompt,
		PromptExample: c.PromptExample,
		Target:        c.Target,
		TargetExample: c.TargetExample,
	}
}

// IsDue reports whether the card should be reviewed at hour index now.
func (c Card) IsDue(now int64) bool {
	return c.NextReview <= now
}

// Choice is the single-line form of the card used in selection lists.
func (c Card) Choice() string {
	return c.Prompt + " --> " + c.Target
}
