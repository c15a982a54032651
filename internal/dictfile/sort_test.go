package dictfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/system"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

func orthography(t *testing.T) *theory.Theory {
	t.Helper()
	th, err := theory.New(system.Melani, []domain.Fragment{
		{Steno: "S", Text: "s{^}"},
		{Steno: "E", Text: "e{^}"},
		{Steno: "C", Text: "c{^}"},
		{Steno: "O", Text: "o{^}"},
		{Steno: "hr", Text: "l{^}"},
		{Steno: "o", Text: "o"},
	})
	require.NoError(t, err)
	return th
}

func TestCanonicalize_SortsAndRespells(t *testing.T) {
	t.Parallel()

	got, err := Canonicalize(system.Melani, nil, []domain.Fragment{
		{Steno: "COhro", Text: "colo"},
		{Steno: "#SI", Text: "XV"},
		{Steno: "S/COhro", Text: "s colo"},
		{Steno: "S", Text: "s{^}"},
		{Steno: "-r", Text: "r{^}"},
		{Steno: "R", Text: "r{^}"},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Fragment{
		{Steno: "15", Text: "XV"},
		{Steno: "S", Text: "s{^}"},
		{Steno: "S/COhro", Text: "s colo"},
		{Steno: "COhro", Text: "colo"},
		{Steno: "R", Text: "r{^}"},
		{Steno: "r", Text: "r{^}"},
	}, got)
}

func TestCanonicalize_NotationCollision(t *testing.T) {
	t.Parallel()

	_, err := Canonicalize(system.Melani, nil, []domain.Fragment{
		{Steno: "15", Text: "XV"},
		{Steno: "#SI", Text: "quindici"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateFragment)
}

func TestCanonicalize_InvalidSpelling(t *testing.T) {
	t.Parallel()

	_, err := Canonicalize(system.Melani, nil, []domain.Fragment{{Steno: "SX", Text: "x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
}

func TestStrip(t *testing.T) {
	t.Parallel()

	entries, err := Parse(system.Melani, []domain.Fragment{
		{Steno: "SE", Text: "se{^}"},        // same as the orthography
		{Steno: "COhro", Text: "colo"},      // same as the orthography
		{Steno: "SE/COhro", Text: "secolo"}, // multi-stroke, always kept
		{Steno: "CO", Text: "con{^}"},       // differs
		{Steno: "C*", Text: "c'"},           // orthography cannot translate it
	})
	require.NoError(t, err)

	got := Fragments(Strip(orthography(t), entries))

	assert.Equal(t, []domain.Fragment{
		{Steno: "SE/COhro", Text: "secolo"},
		{Steno: "CO", Text: "con{^}"},
		{Steno: "C*", Text: "c'"},
	}, got)
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "user.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"CO": "con{^}", "SE": "se{^}", "#S": "1"}`), 0o644))

	kept, removed, err := Rewrite(path, system.Melani, orthography(t))
	require.NoError(t, err)
	assert.Equal(t, 2, kept)
	assert.Equal(t, 1, removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n\"1\": \"1\",\n\"CO\": \"con{^}\"\n}\n", string(data))
}
