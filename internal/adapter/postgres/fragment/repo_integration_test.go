package fragment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/melani-orthography/internal/adapter/postgres/fragment"
	"github.com/heartmarshall/melani-orthography/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/melani-orthography/internal/domain"
)

func TestRepo_Postgres_PublishReloadDelete(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := fragment.New(pool)
	ctx := context.Background()
	name := testhelper.UniqueSetName("melani")

	first := []domain.Fragment{
		{Steno: "S", Text: "{^s^}"},
		{Steno: "CHR", Text: "{^m^}"},
		{Steno: "-e", Text: "e"},
	}
	set, err := repo.ReplaceSet(ctx, name, first)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Entries)

	got, err := repo.LoadSet(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, first, got, "publication order is preserved")

	second := []domain.Fragment{{Steno: "-o", Text: "o"}}
	again, err := repo.ReplaceSet(ctx, name, second)
	require.NoError(t, err)
	assert.Equal(t, set.ID, again.ID, "republishing keeps the set identity")

	got, err = repo.LoadSet(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	stored, err := repo.GetSet(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Entries)

	require.NoError(t, repo.DeleteSet(ctx, name))
	_, err = repo.LoadSet(ctx, name)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	assert.ErrorIs(t, repo.DeleteSet(ctx, name), domain.ErrNotFound)
}

func TestRepo_Postgres_DuplicateStenoRollsBack(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := fragment.New(pool)
	ctx := context.Background()

	seeded := testhelper.SeedSet(t, pool, domain.Fragment{Steno: "S", Text: "{^s^}"})

	_, err := repo.ReplaceSet(ctx, seeded.Name, []domain.Fragment{
		{Steno: "P", Text: "{^p^}"},
		{Steno: "P", Text: "{^b^}"},
	})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := repo.LoadSet(ctx, seeded.Name)
	require.NoError(t, err)
	assert.Equal(t, []domain.Fragment{{Steno: "S", Text: "{^s^}"}}, got)
}

func TestRepo_Postgres_ListSets(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := fragment.New(pool)

	seeded := testhelper.SeedSet(t, pool,
		domain.Fragment{Steno: "S", Text: "{^s^}"},
		domain.Fragment{Steno: "-e", Text: "e"},
	)

	sets, err := repo.ListSets(context.Background())
	require.NoError(t, err)

	var found *domain.FragmentSet
	for i := range sets {
		if sets[i].Name == seeded.Name {
			found = &sets[i]
		}
	}
	require.NotNil(t, found, "seeded set is listed")
	assert.Equal(t, 2, found.Entries)
}
