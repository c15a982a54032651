package dictfile

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

// Entry is a dictionary entry with its spelling parsed into strokes.
type Entry struct {
	Strokes []steno.Stroke
	Text    string
}

// Parse turns raw entries into stroke entries. Spellings that differ only
// in notation (e.g. "15" and "#SI") collide and are rejected with
// domain.ErrDuplicateFragment.
func Parse(layout *steno.Layout, raw []domain.Fragment) ([]Entry, error) {
	out := make([]Entry, 0, len(raw))
	seen := make(map[string]string, len(raw))
	for _, f := range raw {
		strokes, err := layout.ParseSequence(f.Steno)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", f.Steno, err)
		}
		canonical := steno.JoinSequence(strokes)
		if prev, dup := seen[canonical]; dup {
			return nil, fmt.Errorf("entry %q (already as %q): %w", f.Steno, prev, domain.ErrDuplicateFragment)
		}
		seen[canonical] = f.Steno
		out = append(out, Entry{Strokes: strokes, Text: f.Text})
	}
	return out, nil
}

// Sort orders entries by stroke sequence.
func Sort(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return steno.CompareSequences(a.Strokes, b.Strokes)
	})
}

// Strip drops single-stroke entries whose text is exactly what th produces
// for the stroke on its own. The remaining entries keep their order.
func Strip(th *theory.Theory, entries []Entry) []Entry {
	return slices.DeleteFunc(entries, func(e Entry) bool {
		if len(e.Strokes) != 1 {
			return false
		}
		text, err := th.TranslateStroke(e.Strokes[0])
		return err == nil && text == e.Text
	})
}

// Fragments renders entries back to canonical spellings.
func Fragments(entries []Entry) []domain.Fragment {
	out := make([]domain.Fragment, len(entries))
	for i, e := range entries {
		out[i] = domain.Fragment{Steno: steno.JoinSequence(e.Strokes), Text: e.Text}
	}
	return out
}

// Canonicalize parses raw entries, optionally strips those th already
// covers, and returns them sorted with canonical spellings. A nil th keeps
// every entry.
func Canonicalize(layout *steno.Layout, th *theory.Theory, raw []domain.Fragment) ([]domain.Fragment, error) {
	entries, err := Parse(layout, raw)
	if err != nil {
		return nil, err
	}
	if th != nil {
		entries = Strip(th, entries)
	}
	Sort(entries)
	return Fragments(entries), nil
}

// Rewrite canonicalizes the dictionary at path in place and reports how
// many entries were kept and removed.
func Rewrite(path string, layout *steno.Layout, th *theory.Theory) (kept, removed int, err error) {
	raw, err := ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	out, err := Canonicalize(layout, th, raw)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	if err := WriteFile(path, out); err != nil {
		return 0, 0, err
	}
	return len(out), len(raw) - len(out), nil
}
