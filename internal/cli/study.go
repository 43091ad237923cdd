package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conorfennell/neverforget/internal/domain"
	"github.com/conorfennell/neverforget/internal/prompt"
	"github.com/conorfennell/neverforget/internal/schedule"
	"github.com/conorfennell/neverforget/internal/study"
)

func studyCards(ctx context.Context, app *App) error {
	session := study.New(app.DB, &terminalPrompter{app: app},
		study.WithClock(app.Clock),
		study.WithLogger(app.Log),
		study.WithDefaultLimit(app.Config.Study.DefaultLimit),
	)

	out, err := session.Run(ctx)
	var abort *study.AbortError
	if errors.As(err, &abort) {
		if errors.Is(abort.Err, prompt.ErrExit) {
			app.Term.Printf("\nSession stopped after %s.\n", plural(len(abort.Studied), "card"))
			return prompt.ErrExit
		}
		app.Term.Printf("\nError encountered while updating card progress: %v\n", abort.Err)
		if len(abort.Studied) > 0 {
			app.Term.Printf("These cards were already updated: %s\n", strings.Join(abort.Studied, ", "))
		} else {
			app.Term.Println("No cards were updated.")
		}
		return err
	}
	if err != nil {
		return err
	}

	switch out.Status {
	case study.StatusCompleted:
		app.Term.Printf("\nYou studied %s. Nice work!\n", plural(len(out.Studied), "card"))
	default:
		app.Term.Println("Exiting...")
	}
	return nil
}

// terminalPrompter runs the human side of a study session on the terminal.
type terminalPrompter struct {
	app *App
}

func (p *terminalPrompter) SelectDeck(ctx context.Context, now int64) (string, study.Decision, error) {
	decks, err := p.app.DB.ListDecks(ctx)
	if err != nil {
		return "", study.Cancel, err
	}
	if len(decks) == 0 {
		return "", study.Cancel, errNoDecks
	}
	due, err := p.app.DB.CountDue(ctx, now)
	if err != nil {
		return "", study.Cancel, err
	}

	choices := make([]string, len(decks))
	for i, d := range decks {
		choices[i] = fmt.Sprintf("%s (%d due)", d.Choice(), due[d.ID])
	}
	idx, err := p.app.Term.Select(studyCardsWhichDeck, choices)
	if errors.Is(err, prompt.ErrExit) {
		return "", study.Cancel, nil
	}
	if err != nil {
		return "", study.Cancel, err
	}
	return decks[idx].ID, study.Continue, nil
}

func (p *terminalPrompter) EmptyDeck(_ context.Context, _ string) (study.Decision, error) {
	again, err := p.app.Term.Confirm(studyEmptyDeck, true)
	if errors.Is(err, prompt.ErrExit) {
		return study.Cancel, nil
	}
	if err != nil {
		return study.Cancel, err
	}
	if again {
		return study.Retry, nil
	}
	return study.Cancel, nil
}

func (p *terminalPrompter) ChooseLimit(_ context.Context, due, suggested int) (int, error) {
	return p.app.Term.InputInt(fmt.Sprintf(studyHowMany, due), suggested, func(n int) error {
		if err := study.ValidateLimit(n, due); err != nil {
			return fmt.Errorf("Please enter a number between 1 and %d.", due)
		}
		return nil
	})
}

func (p *terminalPrompter) ShowFront(c domain.Card) {
	p.app.Term.Printf("\n%s\n", c.Prompt)
	if c.PromptExample != "" {
		p.app.Term.Printf("  e.g. %s\n", c.PromptExample)
	}
}

func (p *terminalPrompter) Flip(_ context.Context) error {
	return p.app.Term.Wait(studyFlip)
}

func (p *terminalPrompter) ShowBack(c domain.Card) {
	p.app.Term.Printf("\n%s\n", c.Target)
	if c.TargetExample != "" {
		p.app.Term.Printf("  e.g. %s\n", c.TargetExample)
	}
}

func (p *terminalPrompter) Score(_ context.Context, _ domain.Card) (schedule.Score, error) {
	scores := schedule.Scores()
	choices := make([]string, len(scores))
	for i, s := range scores {
		choices[i] = s.Description()
	}
	idx, err := p.app.Term.Select(studyScore, choices)
	if err != nil {
		return 0, err
	}
	return scores[idx], nil
}

func (p *terminalPrompter) Reviewed(c domain.Card, now int64) {
	p.app.Term.Printf("Card progress updated. This card is scheduled for another review in %s.\n",
		schedule.Describe(c.NextReview-now))
}
