package theory

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
)

// Spacing selects where word separators go when assembling text.
type Spacing int

const (
	// SpacesAfter puts a space after every unattached fragment, including
	// the last one.
	SpacesAfter Spacing = iota
	// SpacesBefore puts a space before every unattached fragment, including
	// the first one.
	SpacesBefore
)

// ParseSpacing maps "after" and "before" to a Spacing.
func ParseSpacing(s string) (Spacing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "after", "":
		return SpacesAfter, nil
	case "before":
		return SpacesBefore, nil
	default:
		return SpacesAfter, fmt.Errorf("spacing %q: %w", s, domain.ErrValidation)
	}
}

// TranslateStroke covers the keys of s with the longest known combos, left
// to right, and joins their texts.
//
// At each step the first MaxComboLen remaining keys are tried, dropping the
// highest key until a combo matches; there is no backtracking. Attach
// markers survive only at the outer edges of the result.
func (t *Theory) TranslateStroke(s steno.Stroke) (string, error) {
	if len(t.combos) == 0 {
		return "", fmt.Errorf("stroke %q: empty theory: %w", s, domain.ErrNoTranslation)
	}

	var text strings.Builder
	rest := s
	for !rest.IsEmpty() {
		combo := rest.Head(t.maxComboLen)
		for !combo.IsEmpty() {
			if part, ok := t.combos[combo]; ok {
				text.WriteString(part)
				break
			}
			combo = combo.Minus(combo.Last())
		}
		if combo.IsEmpty() {
			return "", fmt.Errorf("stroke %q: keys %q: %w", s, rest, domain.ErrNoTranslation)
		}
		rest = rest.Minus(combo)
	}

	out := text.String()
	attachStart := domain.AttachesBefore(out)
	attachEnd := domain.AttachesAfter(out)
	out = domain.StripAttach(out)
	if attachStart {
		out = domain.MetaAttach + out
	}
	if attachEnd {
		out += domain.MetaAttach
	}
	return out, nil
}

// StrokesToText translates each stroke and joins the results with spaces
// after unattached fragments.
func (t *Theory) StrokesToText(strokes []steno.Stroke) (string, error) {
	return t.StrokesToTextSpacing(strokes, SpacesAfter)
}

// StrokesToTextSpacing is StrokesToText with a choice of space placement.
// Attach markers are consumed; other control markers pass through.
func (t *Theory) StrokesToTextSpacing(strokes []steno.Stroke, spacing Spacing) (string, error) {
	var text strings.Builder
	attachNext := spacing == SpacesAfter
	for _, s := range strokes {
		part, err := t.TranslateStroke(s)
		if err != nil {
			return "", err
		}
		if !attachNext && !domain.AttachesBefore(part) {
			text.WriteByte(' ')
		}
		attachNext = domain.AttachesAfter(part)
		text.WriteString(domain.StripAttach(part))
	}
	if spacing == SpacesAfter && !attachNext {
		text.WriteByte(' ')
	}
	return text.String(), nil
}
