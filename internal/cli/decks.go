package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conorfennell/neverforget/internal/domain"
	"github.com/conorfennell/neverforget/internal/storage"
)

func createDeck(ctx context.Context, app *App) error {
	name, err := app.Term.Input("What would you like to name the deck?", "", app.uniqueDeckName(ctx, ""))
	if err != nil {
		return err
	}
	description, err := app.Term.Input("Describe the deck (optional)", "", nil)
	if err != nil {
		return err
	}

	deck, err := domain.NewDeck(name, description)
	if err != nil {
		return err
	}
	if err := app.DB.CreateDeck(ctx, deck); err != nil {
		return err
	}
	app.Log.Info("deck created", "deck_id", deck.ID, "name", deck.Name)
	app.Term.Printf("Deck %q created.\n", deck.Name)
	return nil
}

func deleteDecks(ctx context.Context, app *App) error {
	decks, err := app.DB.ListDecks(ctx)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		return errNoDecks
	}
	choices := make([]string, len(decks))
	for i, d := range decks {
		choices[i] = d.Choice()
	}
	picked, err := app.Term.MultiSelect(delDeckWhichDeck, choices)
	if err != nil {
		return err
	}
	if len(picked) == 0 {
		app.Term.Println("No decks selected.")
		return nil
	}

	ok, err := app.Term.Confirm(fmt.Sprintf("Delete %s and all of their cards?", plural(len(picked), "deck")), false)
	if err != nil || !ok {
		return err
	}
	for _, i := range picked {
		if err := app.DB.DeleteDeck(ctx, decks[i].ID); err != nil {
			return fmt.Errorf("failed to delete deck %q: %w", decks[i].Name, err)
		}
		app.Log.Info("deck deleted", "deck_id", decks[i].ID, "name", decks[i].Name)
	}
	app.Term.Printf("Deleted %s.\n", plural(len(picked), "deck"))
	return nil
}

func editDeck(ctx context.Context, app *App) error {
	deck, err := app.chooseDeck(ctx, editDeckWhichDeck)
	if err != nil {
		return err
	}
	name, err := app.Term.Input("Deck name", deck.Name, app.uniqueDeckName(ctx, deck.ID))
	if err != nil {
		return err
	}
	description, err := app.Term.Input("Deck description", deck.Description, nil)
	if err != nil {
		return err
	}

	deck.Name, deck.Description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := domain.Validate(deck); err != nil {
		return err
	}
	if err := app.DB.UpdateDeck(ctx, deck); err != nil {
		return err
	}
	app.Term.Printf("Deck %q updated.\n", deck.Name)
	return nil
}

func listDecks(ctx context.Context, app *App) error {
	decks, err := app.DB.ListDecks(ctx)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		return errNoDecks
	}
	due, err := app.DB.CountDue(ctx, app.now())
	if err != nil {
		return err
	}
	for _, d := range decks {
		app.Term.Printf("%s (%d due)\n", d.Choice(), due[d.ID])
	}
	return nil
}

// uniqueDeckName validates a deck name and rejects names already used by a
// deck other than self.
func (a *App) uniqueDeckName(ctx context.Context, self string) func(string) error {
	return func(name string) error {
		if err := domain.ValidateDeckName(name); err != nil {
			return err
		}
		existing, err := a.DB.FindDeckByName(ctx, strings.TrimSpace(name))
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil
		case err != nil:
			return err
		case existing.ID != self:
			return fmt.Errorf("A deck named %q already exists.", name)
		}
		return nil
	}
}
