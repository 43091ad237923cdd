package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/conorfennell/neverforget/internal/cli"
	"github.com/conorfennell/neverforget/internal/config"
	"github.com/conorfennell/neverforget/internal/logger"
	"github.com/conorfennell/neverforget/internal/prompt"
	"github.com/conorfennell/neverforget/internal/storage"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("neverforget", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	config.RegisterFlags(flags)
	cli.RegisterFlags(flags)
	flags.Usage = func() { usage(stderr, flags) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if flags.NArg() == 0 {
		fmt.Fprintln(stdout, "Welcome to Never Forget, a spaced repetition flashcard program for the terminal.")
		usage(stdout, flags)
		return exitOK
	}
	if flags.NArg() > 1 {
		fmt.Fprintf(stderr, "Too many commands: %v\n", flags.Args())
		usage(stderr, flags)
		return exitUsage
	}
	cmd, ok := cli.Lookup(flags.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "Invalid command %q.\n", flags.Arg(0))
		usage(stderr, flags)
		return exitUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return exitError
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return exitError
	}
	defer log.Sync()

	app := &cli.App{
		Term:   prompt.New(stdin, stdout),
		Log:    log.With("command", cmd.Name),
		Config: cfg,
		Flags:  flags,
		Clock:  time.Now,
	}

	if cmd.NeedsDB {
		db, err := storage.Open(cfg.Database.URL)
		if err != nil {
			fmt.Fprintf(stderr, "Error connecting to the database: %v\nRun 'neverforget configure' to set a database URL.\n", err)
			return exitError
		}
		defer db.Close()
		app.DB = db
		log.Debug("database opened", "driver", db.DriverName())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = cmd.Run(ctx, app)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, prompt.ErrExit):
		fmt.Fprintln(stdout, "Exiting...")
		return exitOK
	default:
		log.Debug("command failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

func usage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "\nUsage: neverforget [flags] <command>\n\nCommands:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range cli.Commands() {
		fmt.Fprintf(tw, "  %s|%s\t%s\n", c.Name, c.Alias, c.Description)
	}
	tw.Flush()
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, flags.FlagUsages())
}
