package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/heartmarshall/melani-orthography/internal/adapter/postgres"
	"github.com/heartmarshall/melani-orthography/internal/adapter/postgres/fragment"
	"github.com/heartmarshall/melani-orthography/internal/config"
	"github.com/heartmarshall/melani-orthography/internal/plugin"
	"github.com/heartmarshall/melani-orthography/internal/source"
	"github.com/heartmarshall/melani-orthography/internal/system"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

// OpenDictionary builds the dictionary cfg describes: key layout, fragment
// source and theory options. When fragments live in postgres a pool is
// opened; the returned cleanup closes it and must be called once the
// dictionary is no longer used.
func OpenDictionary(ctx context.Context, cfg *config.Config) (*plugin.Dictionary, func(), error) {
	layout, err := system.Load(cfg.Orthography.LayoutPath)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var loader source.SetLoader
	if cfg.Orthography.Source == config.SourcePostgres {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		cleanup = pool.Close
		loader = fragment.New(pool)
	}

	src, err := source.Resolve(cfg.Orthography, loader)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	d, err := plugin.Open(ctx, src, layout, theory.WithWordEndVowels(cfg.Orthography.WordEndVowels))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	th := d.Theory()
	slog.Info("orthography loaded",
		slog.String("source", src.String()),
		slog.Int("fragments", th.Len()),
		slog.Int("max_combo_len", th.MaxComboLen()),
	)

	return d, cleanup, nil
}

// WatchPath returns the fragment file d reads, if it reads one.
func WatchPath(d *plugin.Dictionary) (string, bool) {
	f, ok := d.Source().(source.File)
	if !ok {
		return "", false
	}
	return f.Path, true
}

// DefaultDictionary builds the process-wide dictionary from config.Load on
// first use. The dictionary, and any pool behind it, lives until exit.
var DefaultDictionary = sync.OnceValues(func() (*plugin.Dictionary, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	d, _, err := OpenDictionary(context.Background(), cfg)
	return d, err
})
