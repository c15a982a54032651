// Package plugin exposes a theory through the interface steno hosts expect
// from a programmatic dictionary: single-stroke lookup, reverse lookup, and
// reloading when the fragment source changes.
package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/source"
	"github.com/heartmarshall/melani-orthography/internal/steno"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

// LongestKey is the longest stroke sequence Lookup accepts.
const LongestKey = 1

// Dictionary serves lookups from the current theory snapshot. Reload swaps
// the snapshot atomically; lookups in flight keep the one they started with.
type Dictionary struct {
	current atomic.Pointer[theory.Theory]
	src     source.Source
	layout  *steno.Layout
	opts    []theory.Option
}

// New serves a fixed theory. Reload on such a dictionary is a no-op.
func New(th *theory.Theory) *Dictionary {
	d := &Dictionary{layout: th.Layout()}
	d.current.Store(th)
	return d
}

// Open builds the theory from src and keeps src for reloading.
func Open(ctx context.Context, src source.Source, layout *steno.Layout, opts ...theory.Option) (*Dictionary, error) {
	th, err := source.Build(ctx, src, layout, opts...)
	if err != nil {
		return nil, err
	}
	d := &Dictionary{src: src, layout: layout, opts: opts}
	d.current.Store(th)
	return d, nil
}

// Theory returns the current snapshot.
func (d *Dictionary) Theory() *theory.Theory { return d.current.Load() }

// Source returns where the fragments come from, or nil for a fixed theory.
func (d *Dictionary) Source() source.Source { return d.src }

// Lookup translates a stroke sequence of at most LongestKey strokes. Every
// failure wraps domain.ErrNotFound so hosts can fall through to the next
// dictionary.
func (d *Dictionary) Lookup(keys []string) (string, error) {
	if len(keys) == 0 || len(keys) > LongestKey {
		return "", fmt.Errorf("lookup %q: %d strokes: %w", strings.Join(keys, "/"), len(keys), domain.ErrNotFound)
	}

	th := d.current.Load()
	var text strings.Builder
	for _, k := range keys {
		s, err := d.layout.Parse(k)
		if err != nil {
			return "", fmt.Errorf("lookup %q: %w: %w", k, domain.ErrNotFound, err)
		}
		part, err := th.TranslateStroke(s)
		if err != nil {
			return "", fmt.Errorf("lookup %q: %w: %w", k, domain.ErrNotFound, err)
		}
		text.WriteString(part)
	}
	return text.String(), nil
}

// ReverseLookup returns the stroke sequences that produce text: none, or
// the single sequence found by the theory, in canonical spelling.
func (d *Dictionary) ReverseLookup(text string) [][]string {
	strokes, err := d.current.Load().StrokesFromText(text)
	if err != nil || len(strokes) == 0 {
		return [][]string{}
	}
	out := make([]string, len(strokes))
	for i, s := range strokes {
		out[i] = s.String()
	}
	return [][]string{out}
}

// Reload rebuilds the theory from the source. On failure the previous
// snapshot stays in place.
func (d *Dictionary) Reload(ctx context.Context) error {
	if d.src == nil {
		return nil
	}
	th, err := source.Build(ctx, d.src, d.layout, d.opts...)
	if err != nil {
		return err
	}
	d.current.Store(th)
	return nil
}

// Watch reloads the dictionary whenever the file at path changes. It blocks
// until ctx is cancelled.
func (d *Dictionary) Watch(ctx context.Context, path string) error {
	w, err := source.NewWatcher(path, source.DefaultSettle, func() {
		start := time.Now()
		if err := d.Reload(ctx); err != nil {
			slog.Error("reload fragments", slog.String("path", path), slog.String("error", err.Error()))
			return
		}
		slog.Info("fragments reloaded",
			slog.String("path", path),
			slog.Int("fragments", d.Theory().Len()),
			slog.Duration("took", time.Since(start)),
		)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	return w.Run(ctx)
}
