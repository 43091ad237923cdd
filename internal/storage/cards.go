package storage

import (
	"context"
	"fmt"

	"github.com/conorfennell/neverforget/internal/domain"
)

const cardColumns = `id, deck_id, prompt, prompt_example, target, target_example, time_added, next_review, interval_progress`

// CreateCard inserts a new card.
func (db *DB) CreateCard(ctx context.Context, c domain.Card) error {
	_, err := db.conn.NamedExecContext(ctx, `
		INSERT INTO cards (`+cardColumns+`)
		VALUES (:id, :deck_id, :prompt, :prompt_example, :target, :target_example, :time_added, :next_review, :interval_progress)
	`, c)
	if err != nil {
		return writeErr("insert card "+c.ID, err)
	}
	return nil
}

// ListCards returns every card in a deck, oldest first.
func (db *DB) ListCards(ctx context.Context, deckID string) ([]domain.Card, error) {
	var cards []domain.Card
	err := db.conn.SelectContext(ctx, &cards, db.q(`
		SELECT `+cardColumns+`
		FROM cards WHERE deck_id = ?
		ORDER BY time_added, prompt
	`), deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards for deck %s: %w", deckID, err)
	}
	return cards, nil
}

// FindCard retrieves a card by id.
func (db *DB) FindCard(ctx context.Context, id string) (domain.Card, error) {
	var c domain.Card
	err := db.conn.GetContext(ctx, &c, db.q(`SELECT `+cardColumns+` FROM cards WHERE id = ?`), id)
	if err != nil {
		if notFound(err) {
			return domain.Card{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
		}
		return domain.Card{}, fmt.Errorf("failed to find card %s: %w", id, err)
	}
	return c, nil
}

// UpdateCardContent rewrites the faces of a card. The schedule is left alone.
func (db *DB) UpdateCardContent(ctx context.Context, id string, content domain.CardContent) error {
	res, err := db.conn.ExecContext(ctx, db.q(`
		UPDATE cards
		SET prompt = ?, prompt_example = ?, target = ?, target_example = ?
		WHERE id = ?
	`), content.Prompt, content.PromptExample, content.Target, content.TargetExample, id)
	if err != nil {
		return writeErr("update card "+id, err)
	}
	return expectRow(res, "card "+id)
}

// DeleteCard removes a card by id.
func (db *DB) DeleteCard(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, db.q(`DELETE FROM cards WHERE id = ?`), id)
	if err != nil {
		return writeErr("delete card "+id, err)
	}
	return expectRow(res, "card "+id)
}

// FindDue returns every card in the deck whose next review is at or before now.
func (db *DB) FindDue(ctx context.Context, deckID string, now int64) ([]domain.Card, error) {
	var cards []domain.Card
	err := db.conn.SelectContext(ctx, &cards, db.q(`
		SELECT `+cardColumns+`
		FROM cards WHERE deck_id = ? AND next_review <= ?
	`), deckID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find due cards for deck %s: %w", deckID, err)
	}
	return cards, nil
}

// CountDue returns the number of due cards per deck id. Decks with nothing
// due are absent from the map.
func (db *DB) CountDue(ctx context.Context, now int64) (map[string]int, error) {
	var rows []struct {
		DeckID string `db:"deck_id"`
		Due    int    `db:"due"`
	}
	err := db.conn.SelectContext(ctx, &rows, db.q(`
		SELECT deck_id, COUNT(*) AS due
		FROM cards WHERE next_review <= ?
		GROUP BY deck_id
	`), now)
	if err != nil {
		return nil, fmt.Errorf("failed to count due cards: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.DeckID] = r.Due
	}
	return counts, nil
}

// UpdateSchedule overwrites a card's next review and interval progress and
// returns the updated row. The write and the read back are one statement,
// so an error always means the schedule was not stored.
func (db *DB) UpdateSchedule(ctx context.Context, id string, u domain.ScheduleUpdate) (domain.Card, error) {
	var c domain.Card
	err := db.conn.GetContext(ctx, &c, db.q(`
		UPDATE cards
		SET next_review = ?, interval_progress = ?
		WHERE id = ?
		RETURNING `+cardColumns), u.NextReview, u.IntervalProgress, id)
	if err != nil {
		if notFound(err) {
			return domain.Card{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
		}
		return domain.Card{}, writeErr("update schedule for card "+id, err)
	}
	return c, nil
}
