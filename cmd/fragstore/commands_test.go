package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/melani-orthography/internal/dictfile"
	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/system"
)

// memStore keeps sets in memory.
type memStore struct {
	sets map[string][]domain.Fragment
}

func (m *memStore) ReplaceSet(_ context.Context, name string, fragments []domain.Fragment) (*domain.FragmentSet, error) {
	m.sets[name] = fragments
	return &domain.FragmentSet{ID: uuid.New(), Name: name, Entries: len(fragments)}, nil
}

func (m *memStore) LoadSet(_ context.Context, name string) ([]domain.Fragment, error) {
	f, ok := m.sets[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (m *memStore) ListSets(_ context.Context) ([]domain.FragmentSet, error) {
	var out []domain.FragmentSet
	for name, f := range m.sets {
		out = append(out, domain.FragmentSet{Name: name, Entries: len(f), UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)})
	}
	return out, nil
}

func (m *memStore) DeleteSet(_ context.Context, name string) error {
	if _, ok := m.sets[name]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sets, name)
	return nil
}

func newCommands() (*commands, *memStore, *bytes.Buffer) {
	store := &memStore{sets: map[string][]domain.Fragment{}}
	var out bytes.Buffer
	return &commands{
		store:  store,
		layout: system.Melani,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:    &out,
	}, store, &out
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fragments.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseAction(t *testing.T) {
	a, err := parseAction("f.json", "", false, false)
	require.NoError(t, err)
	assert.Equal(t, &action{kind: actionPublish, path: "f.json"}, a)

	a, err = parseAction("", "", false, false)
	require.NoError(t, err)
	assert.Nil(t, a)

	_, err = parseAction("", "", true, true)
	assert.ErrorIs(t, err, errUsage)
}

func TestPublish_Canonicalizes(t *testing.T) {
	c, store, _ := newCommands()
	path := writeFile(t, `{"-e": "e", "S": "s{^}"}`)

	require.NoError(t, c.do(context.Background(), &action{kind: actionPublish, path: path}, "melani"))

	assert.Equal(t, []domain.Fragment{
		{Steno: "S", Text: "s{^}"},
		{Steno: "e", Text: "e"},
	}, store.sets["melani"])
}

func TestPublish_RejectsUnbuildable(t *testing.T) {
	c, store, _ := newCommands()
	path := writeFile(t, `{"S/E": "se"}`)

	err := c.do(context.Background(), &action{kind: actionPublish, path: path}, "melani")
	require.Error(t, err)
	assert.Empty(t, store.sets, "nothing is stored when the file does not build")
}

func TestExport(t *testing.T) {
	c, store, _ := newCommands()
	store.sets["melani"] = []domain.Fragment{{Steno: "S", Text: "s{^}"}}
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, c.do(context.Background(), &action{kind: actionExport, path: path}, "melani"))

	got, err := dictfile.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, store.sets["melani"], got)
}

func TestExport_Missing(t *testing.T) {
	c, _, _ := newCommands()

	err := c.do(context.Background(), &action{kind: actionExport, path: filepath.Join(t.TempDir(), "out.json")}, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList(t *testing.T) {
	c, store, out := newCommands()
	store.sets["melani"] = []domain.Fragment{{Steno: "S", Text: "s{^}"}, {Steno: "e", Text: "e"}}

	require.NoError(t, c.do(context.Background(), &action{kind: actionList}, ""))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"NAME", "FRAGMENTS", "UPDATED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"melani", "2", "2026-01-02T03:04:05Z"}, strings.Fields(lines[1]))
}

func TestDelete(t *testing.T) {
	c, store, _ := newCommands()
	store.sets["melani"] = nil

	require.NoError(t, c.do(context.Background(), &action{kind: actionDelete}, "melani"))
	assert.NotContains(t, store.sets, "melani")

	err := c.do(context.Background(), &action{kind: actionDelete}, "melani")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
