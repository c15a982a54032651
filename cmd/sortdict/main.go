// Command sortdict rewrites steno JSON dictionaries in canonical form:
// keys respelled through the key layout, entries sorted by stroke sequence,
// one entry per line.
//
// Usage:
//
//	sortdict [-s] DICTIONARY...
//
// With -s, single-stroke entries the orthography already translates to the
// same text are removed. Files are processed concurrently.
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/melani-orthography/internal/app"
	"github.com/heartmarshall/melani-orthography/internal/config"
	"github.com/heartmarshall/melani-orthography/internal/dictfile"
	"github.com/heartmarshall/melani-orthography/internal/steno"
	"github.com/heartmarshall/melani-orthography/internal/system"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

func main() {
	stripFlag := flag.Bool("s", false, "remove entries the orthography already produces")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: sortdict [-s] DICTIONARY...")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, "sortdict")

	if err := run(context.Background(), logger, cfg, *stripFlag, flag.Args()); err != nil {
		logger.Error("sortdict failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, strip bool, paths []string) error {
	var (
		layout *steno.Layout
		th     *theory.Theory
	)
	if strip {
		d, cleanup, err := app.OpenDictionary(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		th = d.Theory()
		layout = th.Layout()
	} else {
		var err error
		if layout, err = system.Load(cfg.Orthography.LayoutPath); err != nil {
			return err
		}
	}

	return rewriteAll(ctx, logger, layout, th, paths)
}

// rewriteAll rewrites every file concurrently. The first failure cancels
// files not yet started; files already rewritten stay rewritten.
func rewriteAll(ctx context.Context, logger *slog.Logger, layout *steno.Layout, th *theory.Theory, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			kept, removed, err := dictfile.Rewrite(path, layout, th)
			if err != nil {
				return err
			}
			logger.Info("dictionary sorted",
				slog.String("path", path),
				slog.Int("kept", kept),
				slog.Int("removed", removed),
			)
			return nil
		})
	}

	return g.Wait()
}
