package domain

import (
	"time"

	"github.com/google/uuid"
)

// Fragment is one entry of a fragment dictionary: a canonical steno
// spelling and the text it produces.
type Fragment struct {
	Steno string `db:"steno"`
	Text  string `db:"text"`
}

// FragmentSet describes a named fragment dictionary kept in the store.
type FragmentSet struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Entries   int       `db:"entries"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
