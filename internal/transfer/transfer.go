// Package transfer moves cards in and out of a deck as JSON, Excel or
// markdown files.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/neverforget/internal/domain"
	"github.com/conorfennell/neverforget/internal/logger"
)

// Format is a card file encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("transfer: unsupported file format")

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ReadFile decodes the cards in a single file.
func ReadFile(path string) ([]domain.CardContent, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if format == FormatMarkdown {
		return ParseMarkdownFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if format == FormatXLSX {
		return DecodeXLSX(f)
	}
	return DecodeJSON(f)
}

// Read decodes a file, or every supported file below a directory. Errors
// for individual files in a directory are collected rather than fatal.
func Read(path string) ([]domain.CardContent, []error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		cards, err := ReadFile(path)
		return cards, nil, err
	}

	var cards []domain.CardContent
	var fileErrors []error
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ferr := FormatFor(p); ferr != nil {
			return nil
		}
		fileCards, readErr := ReadFile(p)
		if readErr != nil {
			fileErrors = append(fileErrors, fmt.Errorf("reading %s: %w", p, readErr))
		}
		cards = append(cards, fileCards...)
		return nil
	})
	if walkErr != nil {
		return nil, fileErrors, fmt.Errorf("error walking directory %s: %w", path, walkErr)
	}
	return cards, fileErrors, nil
}

// WriteFile encodes cards to path in the format its extension names.
func WriteFile(path string, cards []domain.CardContent) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		err = EncodeXLSX(f, cards)
	case FormatMarkdown:
		err = WriteMarkdown(f, cards)
	default:
		err = EncodeJSON(f, cards)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Store is the part of storage an import needs.
type Store interface {
	ListCards(ctx context.Context, deckID string) ([]domain.Card, error)
	CreateCard(ctx context.Context, c domain.Card) error
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	Processed int
	Created   int
	Skipped   int
	Errors    []string
}

// Import adds entries to a deck as new cards due at now. Entries whose
// prompt duplicates a card already in the deck, or an earlier entry, are
// skipped. Invalid entries are recorded in the result and skipped.
func Import(ctx context.Context, store Store, deckID string, entries []domain.CardContent, now int64, log *logger.Logger) (*ImportResult, error) {
	existing, err := store.ListCards(ctx, deckID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing)+len(entries))
	for _, c := range existing {
		seen[Fingerprint(c.Content())] = true
	}

	result := &ImportResult{}
	for i, entry := range entries {
		result.Processed++

		fp := Fingerprint(entry)
		if seen[fp] {
			log.Debug("duplicate card skipped", "prompt", entry.Prompt)
			result.Skipped++
			continue
		}

		card, err := domain.NewCard(deckID, entry, now)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("card %d: %v", i+1, err))
			continue
		}
		if err := store.CreateCard(ctx, card); err != nil {
			return result, err
		}
		seen[fp] = true
		result.Created++
	}

	log.Info("import complete",
		"deck_id", deckID,
		"processed", result.Processed,
		"created", result.Created,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return result, nil
}

// Contents strips cards down to the fields that are exported.
func Contents(cards []domain.Card) []domain.CardContent {
	out := make([]domain.CardContent, len(cards))
	for i, c := range cards {
		out[i] = c.Content()
	}
	return out
}
