package storage

import (
	"context"
	"fmt"

	"github.com/conorfennell/neverforget/internal/domain"
)

const deckColumns = `id, name, description`

// CreateDeck inserts a new deck.
func (db *DB) CreateDeck(ctx context.Context, d domain.Deck) error {
	_, err := db.conn.NamedExecContext(ctx, `
		INSERT INTO decks (id, name, description)
		VALUES (:id, :name, :description)
	`, d)
	if err != nil {
		return writeErr("insert deck "+d.Name, err)
	}
	return nil
}

// ListDecks returns every deck ordered by name.
func (db *DB) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	var decks []domain.Deck
	err := db.conn.SelectContext(ctx, &decks, `SELECT `+deckColumns+` FROM decks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	return decks, nil
}

// FindDeck retrieves a deck by id.
func (db *DB) FindDeck(ctx context.Context, id string) (domain.Deck, error) {
	var d domain.Deck
	err := db.conn.GetContext(ctx, &d, db.q(`SELECT `+deckColumns+` FROM decks WHERE id = ?`), id)
	if err != nil {
		if notFound(err) {
			return domain.Deck{}, fmt.Errorf("deck %s: %w", id, ErrNotFound)
		}
		return domain.Deck{}, fmt.Errorf("failed to find deck %s: %w", id, err)
	}
	return d, nil
}

// FindDeckByName retrieves a deck by its unique name.
func (db *DB) FindDeckByName(ctx context.Context, name string) (domain.Deck, error) {
	var d domain.Deck
	err := db.conn.GetContext(ctx, &d, db.q(`SELECT `+deckColumns+` FROM decks WHERE name = ?`), name)
	if err != nil {
		if notFound(err) {
			return domain.Deck{}, fmt.Errorf("deck %q: %w", name, ErrNotFound)
		}
		return domain.Deck{}, fmt.Errorf("failed to find deck %q: %w", name, err)
	}
	return d, nil
}

// UpdateDeck changes a deck's name and description.
func (db *DB) UpdateDeck(ctx context.Context, d domain.Deck) error {
	res, err := db.conn.NamedExecContext(ctx, `
		UPDATE decks
		SET name = :name, description = :description
		WHERE id = :id
	`, d)
	if err != nil {
		return writeErr("update deck "+d.ID, err)
	}
	return expectRow(res, "deck "+d.ID)
}

// DeleteDeck removes a deck and all of its cards.
func (db *DB) DeleteDeck(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return writeErr("begin deck delete", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM cards WHERE deck_id = ?`), id); err != nil {
		return writeErr("delete cards of deck "+id, err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM decks WHERE id = ?`), id)
	if err != nil {
		return writeErr("delete deck "+id, err)
	}
	if err := expectRow(res, "deck "+id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return writeErr("commit deck delete", err)
	}
	return nil
}
