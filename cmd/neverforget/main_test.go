package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	testCases := []struct {
		name           string
		args           []string
		input          string
		expectedCode   int
		expectedStdout string
		expectedStderr string
	}{
		{
			name:           "no command prints usage",
			args:           nil,
			expectedCode:   exitOK,
			expectedStdout: "study|s",
		},
		{
			name:           "unknown command",
			args:           []string{"frobnicate"},
			expectedCode:   exitUsage,
			expectedStderr: `Invalid command "frobnicate".`,
		},
		{
			name:           "unknown flag",
			args:           []string{"--nope", "study"},
			expectedCode:   exitUsage,
			expectedStderr: "unknown flag",
		},
		{
			name:           "invalid configuration",
			args:           []string{"--log.level", "loud", "decks"},
			expectedCode:   exitError,
			expectedStderr: "Error loading configuration",
		},
		{
			name:           "create and list a deck",
			args:           []string{"createdeck"},
			input:          "Spanish\nverbs\n",
			expectedCode:   exitOK,
			expectedStdout: `Deck "Spanish" created.`,
		},
		{
			name:           "study without decks",
			args:           []string{"study"},
			input:          "q\n",
			expectedCode:   exitError,
			expectedStderr: "there are no decks yet",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("NEVERFORGET_IMPORT__REPOS_DIR", filepath.Join(dir, "repos"))
			args := append([]string{
				"--config", filepath.Join(dir, "config.yaml"),
				"--database.url", filepath.Join(dir, "cards.db"),
			}, tc.args...)

			var stdout, stderr bytes.Buffer
			code := run(args, strings.NewReader(tc.input), &stdout, &stderr)
			if code != tc.expectedCode {
				t.Errorf("Expected exit code %d, but got %d (stderr: %s)", tc.expectedCode, code, stderr.String())
			}
			if !strings.Contains(stdout.String(), tc.expectedStdout) {
				t.Errorf("Expected stdout to contain %q, but got:\n%s", tc.expectedStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tc.expectedStderr) {
				t.Errorf("Expected stderr to contain %q, but got:\n%s", tc.expectedStderr, stderr.String())
			}
		})
	}
}
