package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/conorfennell/neverforget/internal/domain"
	"github.com/conorfennell/neverforget/internal/schedule"
	"github.com/conorfennell/neverforget/internal/transfer"
)

func addCards(ctx context.Context, app *App) error {
	deck, err := app.chooseDeck(ctx, addCardsWhichDeck)
	if err != nil {
		return err
	}
	for {
		content, err := app.askContent(ctx, deck, domain.CardContent{}, "")
		if err != nil {
			return err
		}
		card, err := domain.NewCard(deck.ID, content, app.now())
		if err != nil {
			return err
		}
		if err := app.DB.CreateCard(ctx, card); err != nil {
			return err
		}
		app.Log.Info("card created", "card_id", card.ID, "deck_id", deck.ID)
		app.Term.Printf("Card added to %q.\n", deck.Name)

		again, err := app.Term.Confirm("Would you like to add another card?", true)
		if err != nil || !again {
			return err
		}
	}
}

func deleteCards(ctx context.Context, app *App) error {
	deck, err := app.chooseDeck(ctx, delCardsWhichDeck)
	if err != nil {
		return err
	}
	cards, err := app.DB.ListCards(ctx, deck.ID)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return fmt.Errorf("deck %q has no cards", deck.Name)
	}
	picked, err := app.Term.MultiSelect(delCardsWhichCard, cardChoices(cards))
	if err != nil {
		return err
	}
	if len(picked) == 0 {
		app.Term.Println("No cards selected.")
		return nil
	}

	ok, err := app.Term.Confirm(fmt.Sprintf("Delete %s?", plural(len(picked), "card")), false)
	if err != nil || !ok {
		return err
	}
	for _, i := range picked {
		if err := app.DB.DeleteCard(ctx, cards[i].ID); err != nil {
			return fmt.Errorf("failed to delete card %q: %w", cards[i].Prompt, err)
		}
	}
	app.Term.Printf("Deleted %s.\n", plural(len(picked), "card"))
	return nil
}

func editCard(ctx context.Context, app *App) error {
	deck, err := app.chooseDeck(ctx, editCardWhichDeck)
	if err != nil {
		return err
	}
	card, err := app.chooseCard(ctx, deck, editCardWhichCard)
	if err != nil {
		return err
	}
	content, err := app.askContent(ctx, deck, card.Content(), card.ID)
	if err != nil {
		return err
	}
	if err := app.DB.UpdateCardContent(ctx, card.ID, content); err != nil {
		return err
	}
	app.Term.Println("Card updated.")
	return nil
}

func browseCards(ctx context.Context, app *App) error {
	deck, err := app.chooseDeck(ctx, browseCardsWhichDeck)
	if err != nil {
		return err
	}
	for {
		card, err := app.chooseCard(ctx, deck, browseCardsWhichCard)
		if err != nil {
			return err
		}
		app.showCard(card)
		again, err := app.Term.Confirm("Would you like to view another card?", true)
		if err != nil || !again {
			return err
		}
	}
}

func (a *App) showCard(c domain.Card) {
	a.Term.Printf("\nPrompt:         %s\n", c.Prompt)
	if c.PromptExample != "" {
		a.Term.Printf("Prompt example: %s\n", c.PromptExample)
	}
	a.Term.Printf("Target:         %s\n", c.Target)
	if c.TargetExample != "" {
		a.Term.Printf("Target example: %s\n", c.TargetExample)
	}
	now := a.now()
	if c.IsDue(now) {
		a.Term.Println("Next review:    due now")
	} else {
		a.Term.Printf("Next review:    in %s\n", schedule.Describe(c.NextReview-now))
	}
	a.Term.Printf("Progress:       %d\n\n", c.IntervalProgress)
}

// askContent prompts for every face of a card, offering cur as defaults.
// The prompt must not repeat another card's prompt in the deck; self is
// the card being edited, if any.
func (a *App) askContent(ctx context.Context, deck domain.Deck, cur domain.CardContent, self string) (domain.CardContent, error) {
	cards, err := a.DB.ListCards(ctx, deck.ID)
	if err != nil {
		return domain.CardContent{}, err
	}
	taken := make(map[string]bool, len(cards))
	for _, c := range cards {
		if c.ID != self {
			taken[transfer.Fingerprint(c.Content())] = true
		}
	}

	var out domain.CardContent
	out.Prompt, err = a.Term.Input("Card prompt", cur.Prompt, func(s string) error {
		if err := required("prompt")(strings.TrimSpace(s)); err != nil {
			return err
		}
		if taken[transfer.Fingerprint(domain.CardContent{Prompt: s})] {
			return fmt.Errorf("A card with this prompt already exists in %q.", deck.Name)
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	if out.PromptExample, err = a.Term.Input("Prompt example (optional)", cur.PromptExample, nil); err != nil {
		return out, err
	}
	if out.Target, err = a.Term.Input("Card target", cur.Target, func(s string) error {
		return required("target")(strings.TrimSpace(s))
	}); err != nil {
		return out, err
	}
	if out.TargetExample, err = a.Term.Input("Target example (optional)", cur.TargetExample, nil); err != nil {
		return out, err
	}
	return out.Trimmed(), nil
}
