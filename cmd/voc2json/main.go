// Command voc2json converts a legacy vocabulary export (CSV) into the
// fragment and briefs dictionaries.
//
// Usage:
//
//	voc2json [-model 1|2] [-keep-numbers] [-out DIR] [DATABASE]
//
// DATABASE defaults to voc-it.csv. melani_fragments.json and
// melani_briefs.json are written to -out (default: current directory).
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/melani-orthography/internal/app"
	"github.com/heartmarshall/melani-orthography/internal/config"
	"github.com/heartmarshall/melani-orthography/internal/dictfile"
	"github.com/heartmarshall/melani-orthography/internal/importer"
	"github.com/heartmarshall/melani-orthography/internal/steno"
	"github.com/heartmarshall/melani-orthography/internal/system"
	"github.com/heartmarshall/melani-orthography/pkg/ctxutil"
)

const defaultDatabase = "voc-it.csv"

func main() {
	modelFlag := flag.Int("model", int(importer.ModelReadonly), "import model: 1 (readonly column) or 2 (prefixes)")
	keepNumbersFlag := flag.Bool("keep-numbers", false, "keep single number strokes")
	outFlag := flag.String("out", ".", "output directory")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: voc2json [-model 1|2] [-keep-numbers] [-out DIR] [DATABASE]")
		os.Exit(2)
	}
	database := defaultDatabase
	if flag.NArg() == 1 {
		database = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, _ := ctxutil.NewRun(context.Background())
	logger := ctxutil.Logger(ctx, app.NewLogger(cfg.Log, "voc2json"))
	logger.Info("import started",
		slog.String("database", database),
		slog.String("version", app.BuildVersion()),
	)

	layout, err := system.Load(cfg.Orthography.LayoutPath)
	if err != nil {
		logger.Error("load layout", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts := importer.Options{
		Model:             importer.Model(*modelFlag),
		KeepNumberStrokes: *keepNumbersFlag,
		Logger:            logger,
	}
	if err := convert(database, *outFlag, layout, opts); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func convert(database, outDir string, layout *steno.Layout, opts importer.Options) error {
	f, err := os.Open(database)
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := importer.Load(f, layout, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", database, err)
	}

	res, err := importer.Build(db, layout)
	if err != nil {
		return err
	}

	opts.Logger.Info("import done",
		slog.Int("fragments", len(res.Fragments)),
		slog.Int("prefixes", res.Prefixes),
		slog.Int("suffixes", res.Suffixes),
	)

	if err := dictfile.WriteFile(filepath.Join(outDir, importer.FragmentsFile), res.Fragments); err != nil {
		return err
	}
	return dictfile.WriteFile(filepath.Join(outDir, importer.BriefsFile), res.Briefs)
}
