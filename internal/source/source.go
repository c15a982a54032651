// Package source provides the fragment dictionaries a theory is built from:
// a JSON file, the bundled default, or a named set in the fragment store.
package source

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/heartmarshall/melani-orthography/internal/config"
	"github.com/heartmarshall/melani-orthography/internal/dictfile"
	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

// FileName is the name of the user override in the host config directory.
const FileName = "melani_orthography.json"

//go:embed dictionaries/melani_orthography.json
var bundled []byte

// Source yields the fragments of one dictionary.
type Source interface {
	Fragments(ctx context.Context) ([]domain.Fragment, error)
	String() string
}

// SetLoader loads a named fragment set from persistent storage.
type SetLoader interface {
	LoadSet(ctx context.Context, name string) ([]domain.Fragment, error)
}

// File reads fragments from a JSON dictionary on disk.
type File struct {
	Path string
}

func (f File) Fragments(_ context.Context) ([]domain.Fragment, error) {
	return dictfile.ReadFile(f.Path)
}

func (f File) String() string { return "file " + f.Path }

// Embedded is the default Melani fragment dictionary shipped with the binary.
type Embedded struct{}

func (Embedded) Fragments(_ context.Context) ([]domain.Fragment, error) {
	fragments, err := dictfile.Decode(bytes.NewReader(bundled))
	if err != nil {
		return nil, fmt.Errorf("bundled %s: %w", FileName, err)
	}
	return fragments, nil
}

func (Embedded) String() string { return "bundled " + FileName }

// Store reads a named fragment set through a SetLoader.
type Store struct {
	Loader SetLoader
	Set    string
}

func (s Store) Fragments(ctx context.Context) ([]domain.Fragment, error) {
	return s.Loader.LoadSet(ctx, s.Set)
}

func (s Store) String() string { return "store set " + s.Set }

// Resolve picks the fragment source for cfg: the store when the source is
// postgres, otherwise the explicit fragments path, then the override in the
// config directory when present, then the bundled default.
func Resolve(cfg config.OrthographyConfig, loader SetLoader) (Source, error) {
	if cfg.Source == config.SourcePostgres {
		if loader == nil {
			return nil, errors.New("source: postgres source needs a fragment store")
		}
		return Store{Loader: loader, Set: cfg.SetName}, nil
	}

	if cfg.FragmentsPath != "" {
		return File{Path: cfg.FragmentsPath}, nil
	}

	if cfg.ConfigDir != "" {
		override := filepath.Join(cfg.ConfigDir, FileName)
		if _, err := os.Stat(override); err == nil {
			return File{Path: override}, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("source: %w", err)
		}
	}

	return Embedded{}, nil
}

// Build loads the fragments of src and freezes them into a Theory.
func Build(ctx context.Context, src Source, layout *steno.Layout, opts ...theory.Option) (*theory.Theory, error) {
	fragments, err := src.Fragments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	th, err := theory.New(layout, fragments, opts...)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", src, err)
	}
	return th, nil
}
