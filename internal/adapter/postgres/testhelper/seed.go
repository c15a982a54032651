package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/melani-orthography/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueSetName returns a fragment set name that no other test uses.
func UniqueSetName(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// SeedSet creates a fragment set with a unique name and inserts fragments
// in order. Returns a filled domain.FragmentSet.
func SeedSet(t *testing.T, pool *pgxpool.Pool, fragments ...domain.Fragment) domain.FragmentSet {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	set := domain.FragmentSet{
		ID:        uuid.New(),
		Name:      UniqueSetName("seed"),
		Entries:   len(fragments),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO fragment_sets (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		set.ID, set.Name, set.CreatedAt, set.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSet insert set: %v", err)
	}

	for i, f := range fragments {
		_, err := pool.Exec(ctx,
			`INSERT INTO fragments (set_id, position, steno, text) VALUES ($1, $2, $3, $4)`,
			set.ID, i, f.Steno, f.Text,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedSet insert fragment %q: %v", f.Steno, err)
		}
	}

	return set
}
