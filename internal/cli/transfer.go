package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/neverforget/internal/gitsource"
	"github.com/conorfennell/neverforget/internal/transfer"
)

var errNoSource = errors.New("import needs --path or --git")

func importCards(ctx context.Context, app *App) error {
	source, err := app.importSource(ctx)
	if err != nil {
		return err
	}
	entries, fileErrs, err := transfer.Read(source)
	if err != nil {
		return err
	}
	for _, ferr := range fileErrs {
		app.Log.Warn("skipping unreadable file", "error", ferr)
		app.Term.Printf("Skipped: %v\n", ferr)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no cards found in %s", source)
	}

	deck, err := app.chooseDeck(ctx, importCardsWhichDeck)
	if err != nil {
		return err
	}
	result, err := transfer.Import(ctx, app.DB, deck.ID, entries, app.now(), app.Log)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		app.Term.Printf("Invalid %s\n", msg)
	}
	app.Term.Printf("Imported %s into %q (%d duplicates skipped, %d invalid).\n",
		plural(result.Created, "card"), deck.Name, result.Skipped, len(result.Errors))
	return nil
}

// importSource resolves --git and --path to a local file or directory,
// fetching the repository first when --git is set.
func (a *App) importSource(ctx context.Context) (string, error) {
	repoURL, _ := a.Flags.GetString("git")
	path, _ := a.Flags.GetString("path")

	if repoURL == "" {
		if path == "" {
			return "", errNoSource
		}
		return path, nil
	}
	if !gitsource.IsRemote(repoURL) {
		return "", fmt.Errorf("%q does not look like a git repository URL", repoURL)
	}

	localPath, err := gitsource.LocalPath(a.Config.Import.ReposDir, repoURL)
	if err != nil {
		return "", err
	}
	source, err := repoPath(localPath, path)
	if err != nil {
		return "", err
	}
	if err := gitsource.Sync(ctx, repoURL, localPath, a.Term.Writer(), a.Log); err != nil {
		return "", err
	}
	return source, nil
}

// repoPath joins a --path value onto a repository checkout. An empty path
// is the repository root; anything escaping the checkout is rejected.
func repoPath(repo, path string) (string, error) {
	if path != "" && !filepath.IsLocal(path) {
		return "", fmt.Errorf("--path %q must stay inside the repository", path)
	}
	return filepath.Join(repo, path), nil
}

func exportCards(ctx context.Context, app *App) error {
	deck, err := app.chooseDeck(ctx, exportCardsWhichDeck)
	if err != nil {
		return err
	}
	cards, err := app.DB.ListCards(ctx, deck.ID)
	if err != nil {
		return err
	}

	out, _ := app.Flags.GetString("out")
	path, err := ExportPath(out, deck.Name)
	if err != nil {
		return err
	}
	if err := transfer.WriteFile(path, transfer.Contents(cards)); err != nil {
		return err
	}
	app.Log.Info("deck exported", "deck_id", deck.ID, "path", path, "cards", len(cards))
	app.Term.Printf("Exported %s to %s\n", plural(len(cards), "card"), path)
	return nil
}

// ExportPath decides where a deck is exported. An empty out, or an existing
// directory, gets the default file name "<deck-name>-export.json".
func ExportPath(out, deckName string) (string, error) {
	name := strings.Join(strings.Fields(deckName), "-") + "-export.json"
	if out == "" {
		return name, nil
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, name), nil
	}
	if _, err := transfer.FormatFor(out); err != nil {
		return "", err
	}
	return out, nil
}
