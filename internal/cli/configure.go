package cli

import (
	"context"
	"fmt"

	"github.com/conorfennell/neverforget/internal/config"
	"github.com/conorfennell/neverforget/internal/storage"
)

// configure asks for a database URL, checks that it connects, and saves it
// to the config file.
func configure(ctx context.Context, app *App) error {
	current := app.Config.Database.URL
	if current == "" {
		current = config.DefaultDatabaseURL()
	}

	for {
		url, err := app.Term.Input("Enter the database URL (postgres:// URL or SQLite file path)", current, required("database URL"))
		if err != nil {
			return err
		}

		app.Term.Println("Testing the connection...")
		if err := checkDatabase(ctx, url); err != nil {
			app.Term.Printf("Could not connect: %v\n", err)
			retry, err := app.Term.Confirm("Would you like to try another URL?", true)
			if err != nil {
				return err
			}
			if !retry {
				return nil
			}
			current = url
			continue
		}

		ok, err := app.Term.Confirm(fmt.Sprintf("Connected. Save %q as your database?", url), true)
		if err != nil || !ok {
			return err
		}

		path := app.Config.File
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.SaveDatabaseURL(path, url); err != nil {
			return err
		}
		app.Log.Info("configuration saved", "path", path)
		app.Term.Printf("Configuration saved to %s\n", path)
		return nil
	}
}

func checkDatabase(ctx context.Context, url string) error {
	db, err := storage.Open(url)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping(ctx)
}
