// Package study drives an interactive review session over the due cards of
// a deck: it orders the queue, collects a score for each card from the
// operator, and commits the new schedule one card at a time.
package study

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/conorfennell/neverforget/internal/domain"
	"github.com/conorfennell/neverforget/internal/logger"
	"github.com/conorfennell/neverforget/internal/schedule"
)

// DefaultLimit caps the suggested session size.
const DefaultLimit = 15

// Gateway is the storage the controller reads due cards from and writes
// schedules to.
type Gateway interface {
	FindDue(ctx context.Context, deckID string, now int64) ([]domain.Card, error)
	UpdateSchedule(ctx context.Context, cardID string, u domain.ScheduleUpdate) (domain.Card, error)
}

// Decision is the operator's answer at a branching point of the session.
type Decision int

const (
	Continue Decision = iota
	Retry
	Cancel
)

// Prompter is the human side of a session. Every method blocks until the
// operator answers.
type Prompter interface {
	// SelectDeck returns the deck to study, or Cancel. now is the session's
	// hour index, for showing due counts.
	SelectDeck(ctx context.Context, now int64) (string, Decision, error)
	// EmptyDeck asks whether to pick another deck (Retry) or stop.
	EmptyDeck(ctx context.Context, deckID string) (Decision, error)
	// ChooseLimit asks how many of the due cards to study.
	ChooseLimit(ctx context.Context, due, suggested int) (int, error)
	ShowFront(card domain.Card)
	// Flip waits for the operator before the target is revealed.
	Flip(ctx context.Context) error
	ShowBack(card domain.Card)
	Score(ctx context.Context, card domain.Card) (schedule.Score, error)
	// Reviewed confirms a committed update; now is the session's hour index.
	Reviewed(card domain.Card, now int64)
}

// Status is the terminal state a session reached.
type Status int

const (
	StatusCompleted Status = iota // studied the whole limited queue
	StatusCancelled               // operator cancelled deck selection
	StatusDeclined                // nothing due and the operator stopped
	StatusRetry                   // nothing due and the operator wants another deck
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusDeclined:
		return "declined"
	case StatusRetry:
		return "retry"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome summarises a session.
type Outcome struct {
	Status  Status
	DeckID  string
	Due     int
	Studied []string // card ids committed, in presentation order
}

// Session is one operator-driven pass over a deck's due cards.
type Session struct {
	gateway      Gateway
	prompter     Prompter
	clock        func() time.Time
	log          *logger.Logger
	defaultLimit int
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock used to compute the session's hour index.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithDefaultLimit changes the cap on the suggested session size.
func WithDefaultLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// New creates a session controller.
func New(g Gateway, p Prompter, opts ...Option) *Session {
	s := &Session{
		gateway:      g,
		prompter:     p,
		clock:        time.Now,
		log:          logger.Nop(),
		defaultLimit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run asks the operator for a deck and studies it, returning to deck
// selection whenever the chosen deck has nothing due and the operator asks
// for another one.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	now := schedule.HourIndex(s.clock())
	for {
		deckID, decision, err := s.prompter.SelectDeck(ctx, now)
		if err != nil {
			return Outcome{}, err
		}
		if decision == Cancel {
			s.log.Debug("session cancelled at deck selection")
			return Outcome{Status: StatusCancelled}, nil
		}

		out, err := s.study(ctx, deckID, now)
		if err != nil || out.Status != StatusRetry {
			return out, err
		}
		s.log.Debug("no due cards, selecting another deck", "deck_id", deckID)
	}
}

// Study runs a session over a single deck.
func (s *Session) Study(ctx context.Context, deckID string) (Outcome, error) {
	return s.study(ctx, deckID, schedule.HourIndex(s.clock()))
}

func (s *Session) study(ctx context.Context, deckID string, now int64) (Outcome, error) {
	out := Outcome{DeckID: deckID}

	due, err := s.gateway.FindDue(ctx, deckID, now)
	if err != nil {
		return out, fmt.Errorf("failed to load due cards: %w", err)
	}
	out.Due = len(due)
	s.log.Debug("due set computed", "deck_id", deckID, "now", now, "due", len(due))

	if len(due) == 0 {
		decision, err := s.prompter.EmptyDeck(ctx, deckID)
		if err != nil {
			return out, err
		}
		if decision == Retry {
			out.Status = StatusRetry
		} else {
			out.Status = StatusDeclined
		}
		return out, nil
	}

	limit, err := s.prompter.ChooseLimit(ctx, len(due), SuggestedLimit(len(due), s.defaultLimit))
	if err != nil {
		return out, err
	}
	if err := ValidateLimit(limit, len(due)); err != nil {
		return out, err
	}

	for _, card := range Queue(due, limit) {
		if err := s.review(ctx, card, now); err != nil {
			s.log.Error("session aborted", "deck_id", deckID, "card_id", card.ID, "studied", len(out.Studied), "error", err)
			return out, &AbortError{CardID: card.ID, Studied: out.Studied, Err: err}
		}
		out.Studied = append(out.Studied, card.ID)
	}

	out.Status = StatusCompleted
	s.log.Info("session complete", "deck_id", deckID, "studied", len(out.Studied))
	return out, nil
}

// review presents one card and commits its new schedule.
func (s *Session) review(ctx context.Context, card domain.Card, now int64) error {
	s.prompter.ShowFront(card)
	if err := s.prompter.Flip(ctx); err != nil {
		return err
	}
	s.prompter.ShowBack(card)

	score, err := s.prompter.Score(ctx, card)
	if err != nil {
		return err
	}

	p, err := schedule.ComputeProgress(score, card.IntervalProgress, now)
	if err != nil {
		return err
	}
	update := domain.ScheduleUpdate{NextReview: p.NextReview, IntervalProgress: p.IntervalProgress}

	updated, err := s.gateway.UpdateSchedule(ctx, card.ID, update)
	if err != nil {
		return err
	}
	s.log.Debug("card rescheduled", "card_id", card.ID, "score", score.String(),
		"next_review", update.NextReview, "interval_progress", update.IntervalProgress)
	s.prompter.Reviewed(updated, now)
	return nil
}

// Queue orders due cards oldest-added first and keeps the first limit.
func Queue(due []domain.Card, limit int) []domain.Card {
	q := slices.Clone(due)
	slices.SortStableFunc(q, func(a, b domain.Card) int {
		return cmp.Compare(a.TimeAdded, b.TimeAdded)
	})
	if limit < len(q) {
		q = q[:limit]
	}
	return q
}

// SuggestedLimit is the default session size for a due count.
func SuggestedLimit(due, ceiling int) int {
	if ceiling <= 0 {
		ceiling = DefaultLimit
	}
	return min(due, ceiling)
}

// ValidateLimit checks that a session size is between 1 and the due count.
func ValidateLimit(limit, due int) error {
	if limit < 1 || limit > due {
		return fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidLimit, limit, due)
	}
	return nil
}
