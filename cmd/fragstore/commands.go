package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/heartmarshall/melani-orthography/internal/dictfile"
	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

type actionKind int

const (
	actionPublish actionKind = iota + 1
	actionExport
	actionList
	actionDelete
)

type action struct {
	kind actionKind
	path string
}

// setStore is the part of the fragment set repository the commands use.
type setStore interface {
	ReplaceSet(ctx context.Context, name string, fragments []domain.Fragment) (*domain.FragmentSet, error)
	LoadSet(ctx context.Context, name string) ([]domain.Fragment, error)
	ListSets(ctx context.Context) ([]domain.FragmentSet, error)
	DeleteSet(ctx context.Context, name string) error
}

type commands struct {
	store  setStore
	layout *steno.Layout
	logger *slog.Logger
	out    io.Writer
}

func (c *commands) do(ctx context.Context, a *action, name string) error {
	switch a.kind {
	case actionPublish:
		return c.publish(ctx, name, a.path)
	case actionExport:
		return c.export(ctx, name, a.path)
	case actionList:
		return c.list(ctx)
	case actionDelete:
		return c.delete(ctx, name)
	default:
		return fmt.Errorf("unknown action %d", a.kind)
	}
}

// publish stores the canonical form of the file at path. A file that does
// not build into a theory is rejected before anything is written.
func (c *commands) publish(ctx context.Context, name, path string) error {
	raw, err := dictfile.ReadFile(path)
	if err != nil {
		return err
	}
	fragments, err := dictfile.Canonicalize(c.layout, nil, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := theory.New(c.layout, fragments); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	set, err := c.store.ReplaceSet(ctx, name, fragments)
	if err != nil {
		return err
	}
	c.logger.Info("fragment set published",
		slog.String("id", set.ID.String()),
		slog.Int("fragments", set.Entries),
		slog.String("path", path),
	)
	return nil
}

func (c *commands) export(ctx context.Context, name, path string) error {
	fragments, err := c.store.LoadSet(ctx, name)
	if err != nil {
		return err
	}
	if err := dictfile.WriteFile(path, fragments); err != nil {
		return err
	}
	c.logger.Info("fragment set exported",
		slog.Int("fragments", len(fragments)),
		slog.String("path", path),
	)
	return nil
}

func (c *commands) list(ctx context.Context) error {
	sets, err := c.store.ListSets(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFRAGMENTS\tUPDATED")
	for _, s := range sets {
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.Name, s.Entries, s.UpdatedAt.UTC().Format(time.RFC3339))
	}
	return w.Flush()
}

func (c *commands) delete(ctx context.Context, name string) error {
	if err := c.store.DeleteSet(ctx, name); err != nil {
		return err
	}
	c.logger.Info("fragment set deleted")
	return nil
}
