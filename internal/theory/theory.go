// Package theory maps steno strokes to text and back for an orthographic
// steno theory described by a fragment dictionary.
//
// A Theory is built once from its fragments and never changes afterwards;
// all translation methods are pure and safe for concurrent use.
package theory

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
)

// DefaultWordEndVowels are the final letters after which a word boundary is
// assumed when disassembling text.
const DefaultWordEndVowels = "ieao"

// Theory is an immutable snapshot of a fragment dictionary and its derived
// reverse index.
type Theory struct {
	layout         *steno.Layout
	combos         map[steno.Stroke]string
	maxComboLen    int
	wordParts      map[string][]steno.Stroke
	maxWordPartLen int
	wordEndVowels  string
}

// Option configures a Builder.
type Option func(*Builder)

// WithWordEndVowels overrides DefaultWordEndVowels.
func WithWordEndVowels(vowels string) Option {
	return func(b *Builder) { b.wordEndVowels = vowels }
}

// Builder accumulates fragments and produces a frozen Theory.
type Builder struct {
	layout        *steno.Layout
	combos        map[steno.Stroke]string
	order         []steno.Stroke
	wordEndVowels string
	err           error
}

// NewBuilder starts an empty fragment dictionary over layout.
func NewBuilder(layout *steno.Layout, opts ...Option) *Builder {
	b := &Builder{
		layout:        layout,
		combos:        make(map[steno.Stroke]string),
		wordEndVowels: DefaultWordEndVowels,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add parses spelling and records its text. The first failure is kept and
// reported by Build; later calls are ignored.
func (b *Builder) Add(spelling, text string) *Builder {
	if b.err != nil {
		return b
	}
	s, err := b.layout.Parse(spelling)
	if err != nil {
		b.err = fmt.Errorf("fragment %q: %w", spelling, err)
		return b
	}
	return b.AddStroke(s, text)
}

// AddStroke records the text of an already parsed stroke.
func (b *Builder) AddStroke(s steno.Stroke, text string) *Builder {
	if b.err != nil {
		return b
	}
	if prev, ok := b.combos[s]; ok {
		b.err = fmt.Errorf("fragment %q (%q, already %q): %w", s, text, prev, domain.ErrDuplicateFragment)
		return b
	}
	b.combos[s] = text
	b.order = append(b.order, s)
	return b
}

// Build freezes the fragments into a Theory. The builder must not be used
// afterwards.
func (b *Builder) Build() (*Theory, error) {
	if b.err != nil {
		return nil, b.err
	}

	t := &Theory{
		layout:        b.layout,
		combos:        b.combos,
		wordParts:     make(map[string][]steno.Stroke),
		wordEndVowels: b.wordEndVowels,
	}

	for _, s := range b.order {
		t.maxComboLen = max(t.maxComboLen, s.Len())

		part := domain.WordPart(b.combos[s])
		t.wordParts[part] = append(t.wordParts[part], s)
	}

	// Left-bank spellings win over their right-bank mirrors, e.g. R- over -r.
	for part, strokes := range t.wordParts {
		slices.SortStableFunc(strokes, steno.Stroke.Compare)
		t.maxWordPartLen = max(t.maxWordPartLen, utf8.RuneCountInString(part))
	}

	b.combos = nil
	b.order = nil
	return t, nil
}

// New builds a Theory from fragment entries.
func New(layout *steno.Layout, fragments []domain.Fragment, opts ...Option) (*Theory, error) {
	b := NewBuilder(layout, opts...)
	for _, f := range fragments {
		b.Add(f.Steno, f.Text)
	}
	return b.Build()
}

// Layout returns the key layout of the theory.
func (t *Theory) Layout() *steno.Layout { return t.layout }

// Len returns the number of fragments.
func (t *Theory) Len() int { return len(t.combos) }

// MaxComboLen is the key count of the largest fragment stroke.
func (t *Theory) MaxComboLen() int { return t.maxComboLen }

// MaxWordPartLen is the rune length of the longest word part.
func (t *Theory) MaxWordPartLen() int { return t.maxWordPartLen }

// Combo returns the fragment text of exactly s.
func (t *Theory) Combo(s steno.Stroke) (string, bool) {
	text, ok := t.combos[s]
	return text, ok
}

// WordPart returns the candidate strokes for a normalized word part, in
// priority order. The returned slice must not be modified.
func (t *Theory) WordPart(part string) []steno.Stroke {
	return t.wordParts[part]
}
