// Command orthotest translates between steno and text with the configured
// orthography.
//
// Usage:
//
//	orthotest / STENO...   print the text of each stroke sequence
//	orthotest TEXT...      print the strokes that write each text
//	orthotest -i           read lines from stdin; lines starting with "/" are steno
//
// Flags:
//
//	-i        interactive mode
//	-spacing  after or before (default: orthography.space_placement)
//	-watch    in interactive mode, reload the fragment file when it changes
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/heartmarshall/melani-orthography/internal/app"
	"github.com/heartmarshall/melani-orthography/internal/config"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

func main() {
	interactiveFlag := flag.Bool("i", false, "read lines from stdin")
	spacingFlag := flag.String("spacing", "", "space placement: after or before (default from config)")
	watchFlag := flag.Bool("watch", false, "reload the fragment file when it changes (interactive mode)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, "orthotest")

	placement := cfg.Orthography.SpacePlacement
	if *spacingFlag != "" {
		placement = *spacingFlag
	}
	spacing, err := theory.ParseSpacing(placement)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if !*interactiveFlag && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: orthotest [-i] [-spacing after|before] [/ STENO... | TEXT...]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, spacing, *interactiveFlag, *watchFlag || cfg.Orthography.Watch, flag.Args()); err != nil {
		logger.Error("orthotest failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, spacing theory.Spacing, interactive, watch bool, args []string) error {
	d, cleanup, err := app.OpenDictionary(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	t := &tester{dict: d, spacing: spacing, out: os.Stdout}

	if !interactive {
		t.run(args)
		return nil
	}

	if watch {
		if path, ok := app.WatchPath(d); ok {
			go func() {
				if err := d.Watch(ctx, path); err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("watch fragments", slog.String("path", path), slog.String("error", err.Error()))
				}
			}()
		} else {
			slog.Warn("watch requested but fragments do not come from a file",
				slog.String("source", d.Source().String()),
			)
		}
	}

	return t.interactive(ctx, os.Stdin)
}
