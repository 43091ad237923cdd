// Package cli implements the neverforget commands on top of the terminal
// prompts, the storage layer and the study session controller.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/neverforget/internal/config"
	"github.com/conorfennell/neverforget/internal/domain"
	"github.com/conorfennell/neverforget/internal/logger"
	"github.com/conorfennell/neverforget/internal/prompt"
	"github.com/conorfennell/neverforget/internal/schedule"
	"github.com/conorfennell/neverforget/internal/storage"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/pflag"
)

// App carries what every command needs.
type App struct {
	DB     *storage.DB // nil for commands that don't open the database
	Term   *prompt.Terminal
	Log    *logger.Logger
	Config *config.Config
	Flags  *pflag.FlagSet
	Clock  func() time.Time
}

// Command is a single neverforget subcommand.
type Command struct {
	Name        string
	Alias       string
	Description string
	NeedsDB     bool
	Run         func(ctx context.Context, app *App) error
}

// Commands returns every command in help order.
func Commands() []Command {
	return []Command{
		{Name: "configure", Alias: "c", Description: "configure a new database", Run: configure},
		{Name: "createdeck", Alias: "cd", Description: "create a new deck", NeedsDB: true, Run: createDeck},
		{Name: "deldecks", Alias: "dd", Description: "delete one or more decks", NeedsDB: true, Run: deleteDecks},
		{Name: "editdeck", Alias: "ed", Description: "edit deck details (name / description)", NeedsDB: true, Run: editDeck},
		{Name: "decks", Alias: "ls", Description: "list decks and how many cards are due", NeedsDB: true, Run: listDecks},
		{Name: "addcard", Alias: "a", Description: "add a card", NeedsDB: true, Run: addCards},
		{Name: "delcards", Alias: "dc", Description: "delete one or more cards", NeedsDB: true, Run: deleteCards},
		{Name: "editcard", Alias: "ec", Description: "edit card details (prompt, target, etc.)", NeedsDB: true, Run: editCard},
		{Name: "browse", Alias: "b", Description: "browse cards", NeedsDB: true, Run: browseCards},
		{Name: "import", Alias: "i", Description: "import cards (.json, .xlsx, .md) into a deck", NeedsDB: true, Run: importCards},
		{Name: "export", Alias: "ex", Description: "export a deck of cards", NeedsDB: true, Run: exportCards},
		{Name: "study", Alias: "s", Description: "study cards scheduled for review", NeedsDB: true, Run: studyCards},
	}
}

// Lookup finds a command by name or alias.
func Lookup(name string) (Command, bool) {
	for _, c := range Commands() {
		if c.Name == name || c.Alias == name {
			return c, true
		}
	}
	return Command{}, false
}

// RegisterFlags adds the flags used by individual commands.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("git", "", "import: git repository URL to fetch card files from")
	flags.String("path", "", "import: file or directory to read (relative to the repository with --git)")
	flags.String("out", "", "export: file or directory to write (.json, .xlsx or .md)")
}

func (a *App) now() int64 {
	return schedule.HourIndex(a.Clock())
}

var errNoDecks = errors.New("there are no decks yet; create one with 'neverforget createdeck'")

// chooseDeck asks the operator to pick a deck.
func (a *App) chooseDeck(ctx context.Context, msg string) (domain.Deck, error) {
	decks, err := a.DB.ListDecks(ctx)
	if err != nil {
		return domain.Deck{}, err
	}
	if len(decks) == 0 {
		return domain.Deck{}, errNoDecks
	}
	choices := make([]string, len(decks))
	for i, d := range decks {
		choices[i] = d.Choice()
	}
	idx, err := a.Term.Select(msg, choices)
	if err != nil {
		return domain.Deck{}, err
	}
	return decks[idx], nil
}

// chooseCard asks the operator to pick a card from a deck.
func (a *App) chooseCard(ctx context.Context, deck domain.Deck, msg string) (domain.Card, error) {
	cards, err := a.DB.ListCards(ctx, deck.ID)
	if err != nil {
		return domain.Card{}, err
	}
	if len(cards) == 0 {
		return domain.Card{}, fmt.Errorf("deck %q has no cards", deck.Name)
	}
	idx, err := a.Term.Select(msg, cardChoices(cards))
	if err != nil {
		return domain.Card{}, err
	}
	return cards[idx], nil
}

func cardChoices(cards []domain.Card) []string {
	choices := make([]string, len(cards))
	for i, c := range cards {
		choices[i] = c.Choice()
	}
	return choices
}

// required rejects blank answers.
func required(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("You need to enter something for the %s.", what)
		}
		return nil
	}
}

func plural(n int, noun string) string {
	return english.Plural(n, noun, "")
}
