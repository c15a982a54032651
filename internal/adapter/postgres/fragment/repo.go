// Package fragment implements the fragment set store using PostgreSQL.
// A set is a named, ordered fragment dictionary; publishing a set replaces
// its fragments atomically.
package fragment

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/melani-orthography/internal/adapter/postgres"
	"github.com/heartmarshall/melani-orthography/internal/domain"
)

// insertChunk bounds the rows per INSERT statement; each fragment binds
// four parameters and PostgreSQL caps a statement at 65535.
const insertChunk = 1000

const entitySet = "fragment set"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides fragment set persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates a new fragment set repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db, tx: postgres.NewTxManager(db)}
}

// setsQuery selects sets together with their fragment count.
func setsQuery() squirrel.SelectBuilder {
	return psql.
		Select("s.id", "s.name", "s.created_at", "s.updated_at", "count(f.steno)::int AS entries").
		From("fragment_sets s").
		LeftJoin("fragments f ON f.set_id = s.id").
		GroupBy("s.id")
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetSet returns the set called name.
// Returns domain.ErrNotFound if no such set exists.
func (r *Repo) GetSet(ctx context.Context, name string) (*domain.FragmentSet, error) {
	sql, args, err := setsQuery().Where(squirrel.Eq{"s.name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get set query: %w", err)
	}

	var set domain.FragmentSet
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &set, sql, args...); err != nil {
		return nil, postgres.MapError(err, entitySet, name)
	}
	return &set, nil
}

// ListSets returns every set ordered by name.
func (r *Repo) ListSets(ctx context.Context) ([]domain.FragmentSet, error) {
	sql, args, err := setsQuery().OrderBy("s.name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sets query: %w", err)
	}

	sets := []domain.FragmentSet{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &sets, sql, args...); err != nil {
		return nil, fmt.Errorf("list fragment sets: %w", err)
	}
	return sets, nil
}

// LoadSet returns the fragments of the set called name in publication order.
// Returns domain.ErrNotFound if no such set exists.
func (r *Repo) LoadSet(ctx context.Context, name string) ([]domain.Fragment, error) {
	var fragments []domain.Fragment

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		set, err := r.GetSet(ctx, name)
		if err != nil {
			return err
		}

		sql, args, err := psql.
			Select("steno", "text").
			From("fragments").
			Where(squirrel.Eq{"set_id": set.ID}).
			OrderBy("position").
			ToSql()
		if err != nil {
			return fmt.Errorf("build load set query: %w", err)
		}

		fragments = make([]domain.Fragment, 0, set.Entries)
		if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &fragments, sql, args...); err != nil {
			return postgres.MapError(err, entitySet, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fragments, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// ReplaceSet creates the set called name, or replaces the fragments of an
// existing one, inside a single transaction. Fragment order is preserved.
// Returns domain.ErrAlreadyExists if two fragments share a steno spelling.
func (r *Repo) ReplaceSet(ctx context.Context, name string, fragments []domain.Fragment) (*domain.FragmentSet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	for _, f := range fragments {
		if f.Steno == "" {
			return nil, domain.NewValidationError("steno", "empty steno in set "+name)
		}
	}

	var set domain.FragmentSet
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		sql, args, err := psql.
			Insert("fragment_sets").
			Columns("id", "name").
			Values(uuid.New(), name).
			Suffix("ON CONFLICT (name) DO UPDATE SET updated_at = now() RETURNING id, name, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build upsert set query: %w", err)
		}
		if err := pgxscan.Get(ctx, q, &set, sql, args...); err != nil {
			return postgres.MapError(err, entitySet, name)
		}

		sql, args, err = psql.Delete("fragments").Where(squirrel.Eq{"set_id": set.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("build clear set query: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, entitySet, name)
		}

		for start := 0; start < len(fragments); start += insertChunk {
			end := min(start+insertChunk, len(fragments))

			insert := psql.Insert("fragments").Columns("set_id", "position", "steno", "text")
			for i, f := range fragments[start:end] {
				insert = insert.Values(set.ID, start+i, f.Steno, f.Text)
			}

			sql, args, err := insert.ToSql()
			if err != nil {
				return fmt.Errorf("build insert fragments query: %w", err)
			}
			if _, err := q.Exec(ctx, sql, args...); err != nil {
				return postgres.MapError(err, entitySet, name)
			}
		}

		set.Entries = len(fragments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// DeleteSet removes the set called name and its fragments.
// Returns domain.ErrNotFound if no such set exists.
func (r *Repo) DeleteSet(ctx context.Context, name string) error {
	sql, args, err := psql.Delete("fragment_sets").Where(squirrel.Eq{"name": name}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete set query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entitySet, name)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %q: %w", entitySet, name, domain.ErrNotFound)
	}
	return nil
}
