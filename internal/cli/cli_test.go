package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/conorfennell/neverforget/internal/config"
	"github.com/conorfennell/neverforget/internal/domain"
	"github.com/conorfennell/neverforget/internal/logger"
	"github.com/conorfennell/neverforget/internal/prompt"
	"github.com/conorfennell/neverforget/internal/schedule"
	"github.com/conorfennell/neverforget/internal/storage"
	"github.com/conorfennell/neverforget/internal/study"
	"github.com/conorfennell/neverforget/internal/transfer"
	"github.com/spf13/pflag"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "cards.db"))
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	out := &bytes.Buffer{}
	return &App{
		DB:   db,
		Term: prompt.New(strings.NewReader(input), out),
		Log:  logger.Nop(),
		Config: &config.Config{
			File:     filepath.Join(dir, "config.yaml"),
			Database: config.DatabaseConfig{URL: filepath.Join(dir, "cards.db")},
			Study:    config.StudyConfig{DefaultLimit: config.DefaultStudyLimit},
			Import:   config.ImportConfig{ReposDir: filepath.Join(dir, "repos")},
		},
		Flags: flags,
		Clock: func() time.Time { return fixedNow },
	}, out
}

func mustDeck(t *testing.T, app *App, name, description string) domain.Deck {
	t.Helper()
	d, err := domain.NewDeck(name, description)
	if err != nil {
		t.Fatalf("NewDeck() returned an unexpected error: %v", err)
	}
	if err := app.DB.CreateDeck(context.Background(), d); err != nil {
		t.Fatalf("CreateDeck() returned an unexpected error: %v", err)
	}
	return d
}

func mustCard(t *testing.T, app *App, deckID, prompt, target string) domain.Card {
	t.Helper()
	c, err := domain.NewCard(deckID, domain.CardContent{Prompt: prompt, Target: target}, app.now())
	if err != nil {
		t.Fatalf("NewCard() returned an unexpected error: %v", err)
	}
	if err := app.DB.CreateCard(context.Background(), c); err != nil {
		t.Fatalf("CreateCard() returned an unexpected error: %v", err)
	}
	return c
}

func TestLookup(t *testing.T) {
	testCases := []struct {
		name         string
		expectedName string
		expectedOK   bool
	}{
		{"study", "study", true},
		{"s", "study", true},
		{"ex", "export", true},
		{"cd", "createdeck", true},
		{"ls", "decks", true},
		{"frobnicate", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, ok := Lookup(tc.name)
			if ok != tc.expectedOK || cmd.Name != tc.expectedName {
				t.Errorf("Expected (%q, %v), but got (%q, %v)", tc.expectedName, tc.expectedOK, cmd.Name, ok)
			}
		})
	}
}

func TestCommandNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Commands() {
		for _, n := range []string{c.Name, c.Alias} {
			if seen[n] {
				t.Errorf("Expected %q to name a single command", n)
			}
			seen[n] = true
		}
	}
}

func TestExportPath(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name        string
		out         string
		deck        string
		expected    string
		expectError bool
	}{
		{"default", "", "Spanish verbs", "Spanish-verbs-export.json", false},
		{"directory", dir, "French", filepath.Join(dir, "French-export.json"), false},
		{"explicit file", "cards.xlsx", "French", "cards.xlsx", false},
		{"unsupported extension", "cards.csv", "French", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExportPath(tc.out, tc.deck)
			if (err != nil) != tc.expectError {
				t.Fatalf("Expected error: %v, but got: %v", tc.expectError, err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, but got %q", tc.expected, got)
			}
		})
	}
}

func TestRepoPath(t *testing.T) {
	repo := filepath.Join("repos", "github.com", "me", "cards")
	testCases := []struct {
		name        string
		path        string
		expected    string
		expectError bool
	}{
		{"repository root", "", repo, false},
		{"nested file", "spanish/verbs.md", filepath.Join(repo, "spanish", "verbs.md"), false},
		{"double dots in a name", "notes..md", filepath.Join(repo, "notes..md"), false},
		{"parent directory", "../other/cards.md", "", true},
		{"absolute path", "/etc/passwd", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repoPath(repo, tc.path)
			if (err != nil) != tc.expectError {
				t.Fatalf("Expected error: %v, but got: %v", tc.expectError, err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, but got %q", tc.expected, got)
			}
		})
	}
}

func TestCreateDeckRejectsDuplicateName(t *testing.T) {
	app, out := newTestApp(t, "Spanish\nFrench\nverbs and nouns\n")
	mustDeck(t, app, "Spanish", "")

	if err := createDeck(context.Background(), app); err != nil {
		t.Fatalf("createDeck() returned an unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `A deck named "Spanish" already exists.`) {
		t.Errorf("Expected a duplicate name message, but got:\n%s", out.String())
	}

	d, err := app.DB.FindDeckByName(context.Background(), "French")
	if err != nil {
		t.Fatalf("FindDeckByName() returned an unexpected error: %v", err)
	}
	if d.Description != "verbs and nouns" {
		t.Errorf("Expected description %q, but got %q", "verbs and nouns", d.Description)
	}
}

func TestListDecksShowsDueCounts(t *testing.T) {
	app, out := newTestApp(t, "")
	spanish := mustDeck(t, app, "Spanish", "verbs")
	mustDeck(t, app, "French", "")
	mustCard(t, app, spanish.ID, "hablar", "to speak")
	mustCard(t, app, spanish.ID, "comer", "to eat")

	if err := listDecks(context.Background(), app); err != nil {
		t.Fatalf("listDecks() returned an unexpected error: %v", err)
	}
	expected := "French (0 due)\nSpanish: verbs (2 due)\n"
	if out.String() != expected {
		t.Errorf("Expected %q, but got %q", expected, out.String())
	}
}

func TestAddCardRejectsDuplicatePrompt(t *testing.T) {
	// deck 1, duplicate prompt, new prompt, no example, target, no example, stop
	app, out := newTestApp(t, "1\nHablar\ncomer\n\nto eat\n\nn\n")
	deck := mustDeck(t, app, "Spanish", "")
	mustCard(t, app, deck.ID, "hablar", "to speak")

	if err := addCards(context.Background(), app); err != nil {
		t.Fatalf("addCards() returned an unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "A card with this prompt already exists") {
		t.Errorf("Expected a duplicate prompt message, but got:\n%s", out.String())
	}

	cards, err := app.DB.ListCards(context.Background(), deck.ID)
	if err != nil {
		t.Fatalf("ListCards() returned an unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, but got %d", len(cards))
	}
}

func TestEditCardKeepsSchedule(t *testing.T) {
	// deck 1, card 1, keep prompt, add example, new target, keep example
	app, _ := newTestApp(t, "1\n1\n\nhablo español\nto talk\n\n")
	deck := mustDeck(t, app, "Spanish", "")
	card := mustCard(t, app, deck.ID, "hablar", "to speak")
	if _, err := app.DB.UpdateSchedule(context.Background(), card.ID, domain.ScheduleUpdate{NextReview: card.NextReview + 6, IntervalProgress: 2}); err != nil {
		t.Fatalf("UpdateSchedule() returned an unexpected error: %v", err)
	}

	if err := editCard(context.Background(), app); err != nil {
		t.Fatalf("editCard() returned an unexpected error: %v", err)
	}
	got, err := app.DB.FindCard(context.Background(), card.ID)
	if err != nil {
		t.Fatalf("FindCard() returned an unexpected error: %v", err)
	}
	if got.Prompt != "hablar" || got.PromptExample != "hablo español" || got.Target != "to talk" {
		t.Errorf("Unexpected content after edit: %+v", got)
	}
	if got.IntervalProgress != 2 || got.NextReview != card.NextReview+6 {
		t.Errorf("Expected the schedule to be untouched, but got %+v", got)
	}
}

func TestStudyCards(t *testing.T) {
	// deck 1, default limit, flip, Instant, flip, Hesitant
	app, out := newTestApp(t, "1\n\n\n3\n\n2\n")
	deck := mustDeck(t, app, "Spanish", "")
	first := mustCard(t, app, deck.ID, "hablar", "to speak")
	second := mustCard(t, app, deck.ID, "comer", "to eat")

	if err := studyCards(context.Background(), app); err != nil {
		t.Fatalf("studyCards() returned an unexpected error: %v", err)
	}

	now := schedule.HourIndex(fixedNow)
	got := map[string]domain.Card{}
	for _, id := range []string{first.ID, second.ID} {
		c, err := app.DB.FindCard(context.Background(), id)
		if err != nil {
			t.Fatalf("FindCard() returned an unexpected error: %v", err)
		}
		got[c.Prompt] = c
	}
	// Both cards were added in the same hour, so either may come first.
	progress := got["hablar"].IntervalProgress + got["comer"].IntervalProgress
	if progress != 1 {
		t.Errorf("Expected one card to advance, but got %+v", got)
	}
	for _, c := range got {
		if c.NextReview != now+2 {
			t.Errorf("Expected next review %d, but got %d", now+2, c.NextReview)
		}
	}

	text := out.String()
	if strings.Count(text, "Card progress updated. This card is scheduled for another review in 2 hours.") != 2 {
		t.Errorf("Expected two confirmations, but got:\n%s", text)
	}
	if !strings.Contains(text, "You studied 2 cards. Nice work!") {
		t.Errorf("Expected a summary, but got:\n%s", text)
	}
}

func TestSelectDeckCountsDueAtSessionHour(t *testing.T) {
	app, out := newTestApp(t, "1\n")
	deck := mustDeck(t, app, "Spanish", "")
	c := mustCard(t, app, deck.ID, "hablar", "to speak")
	session := schedule.HourIndex(fixedNow)
	if _, err := app.DB.UpdateSchedule(context.Background(), c.ID, domain.ScheduleUpdate{NextReview: session + 1}); err != nil {
		t.Fatalf("UpdateSchedule() returned an unexpected error: %v", err)
	}
	// The wall clock has moved past the card's review hour since the session began.
	app.Clock = func() time.Time { return fixedNow.Add(2 * time.Hour) }

	p := &terminalPrompter{app: app}
	id, decision, err := p.SelectDeck(context.Background(), session)
	if err != nil {
		t.Fatalf("SelectDeck() returned an unexpected error: %v", err)
	}
	if id != deck.ID || decision != study.Continue {
		t.Errorf("Expected (%s, Continue), but got (%s, %v)", deck.ID, id, decision)
	}
	if !strings.Contains(out.String(), "Spanish (0 due)") {
		t.Errorf("Expected the due count at the session hour, but got:\n%s", out.String())
	}
}

func TestStudyCardsEmptyDeckDeclined(t *testing.T) {
	app, out := newTestApp(t, "1\nn\n")
	mustDeck(t, app, "Spanish", "")

	if err := studyCards(context.Background(), app); err != nil {
		t.Fatalf("studyCards() returned an unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), studyEmptyDeck) || !strings.Contains(out.String(), "Exiting...") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestStudyCardsStoppedMidSession(t *testing.T) {
	// deck 1, default limit, flip, Instant, then input ends at the next flip
	app, out := newTestApp(t, "1\n\n\n3\n")
	deck := mustDeck(t, app, "Spanish", "")
	mustCard(t, app, deck.ID, "hablar", "to speak")
	mustCard(t, app, deck.ID, "comer", "to eat")

	err := studyCards(context.Background(), app)
	if !errors.Is(err, prompt.ErrExit) {
		t.Fatalf("Expected ErrExit, but got %v", err)
	}
	if !strings.Contains(out.String(), "Session stopped after 1 card.") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestImportThenExport(t *testing.T) {
	app, out := newTestApp(t, "1\n1\n")
	deck := mustDeck(t, app, "Spanish", "")
	mustCard(t, app, deck.ID, "hablar", "to speak")

	dir := t.TempDir()
	src := filepath.Join(dir, "cards.md")
	md := "Q: hablar\nA: to speak\n---\nQ: comer\nQE: como pan\nA: to eat\n"
	if err := os.WriteFile(src, []byte(md), 0o644); err != nil {
		t.Fatalf("WriteFile() returned an unexpected error: %v", err)
	}
	if err := app.Flags.Set("path", src); err != nil {
		t.Fatalf("Set() returned an unexpected error: %v", err)
	}
	if err := importCards(context.Background(), app); err != nil {
		t.Fatalf("importCards() returned an unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 1 card into \"Spanish\" (1 duplicates skipped, 0 invalid).") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}

	if err := app.Flags.Set("out", dir); err != nil {
		t.Fatalf("Set() returned an unexpected error: %v", err)
	}
	if err := exportCards(context.Background(), app); err != nil {
		t.Fatalf("exportCards() returned an unexpected error: %v", err)
	}
	exported, err := transfer.ReadFile(filepath.Join(dir, "Spanish-export.json"))
	if err != nil {
		t.Fatalf("ReadFile() returned an unexpected error: %v", err)
	}
	if len(exported) != 2 {
		t.Fatalf("Expected 2 exported cards, but got %d", len(exported))
	}
}

func TestConfigureSavesOnlyDatabaseURL(t *testing.T) {
	target := filepath.Join(t.TempDir(), "other.db")
	app, out := newTestApp(t, target+"\n\n")
	app.Config.Log.Level = "debug"
	app.Config.Study.DefaultLimit = 7

	if err := configure(context.Background(), app); err != nil {
		t.Fatalf("configure() returned an unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Configuration saved to") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}

	b, err := os.ReadFile(app.Config.File)
	if err != nil {
		t.Fatalf("ReadFile() returned an unexpected error: %v", err)
	}
	saved := string(b)
	if !strings.Contains(saved, target) {
		t.Errorf("Expected %s in the config file, but got:\n%s", target, saved)
	}
	if strings.Contains(saved, "debug") || strings.Contains(saved, "default_limit") {
		t.Errorf("Expected only the database URL in the config file, but got:\n%s", saved)
	}
}

func TestImportNeedsSource(t *testing.T) {
	app, _ := newTestApp(t, "")
	if err := importCards(context.Background(), app); !errors.Is(err, errNoSource) {
		t.Errorf("Expected errNoSource, but got %v", err)
	}
}
