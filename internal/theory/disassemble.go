package theory

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
)

// StrokesFromText finds a stroke sequence that renders as text.
//
// The text is consumed greedily from the left. At each position every word
// part that prefixes the remaining text contributes its candidate strokes,
// longest part first. The first candidate that can be appended to the last
// stroke without changing how the pieces render extends it; otherwise the
// first candidate starts a new stroke.
//
// An empty text yields an empty sequence. Text that cannot be covered yields
// domain.ErrNoSegmentation.
func (t *Theory) StrokesFromText(text string) ([]steno.Stroke, error) {
	if text == "" {
		return []steno.Stroke{}, nil
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	if strings.ContainsRune(t.wordEndVowels, last) {
		text += " "
	}

	leftover := []rune(text)
	var strokes []steno.Stroke
	var parts []string
	for len(leftover) > 0 {
		candidates := t.candidates(leftover)
		if len(candidates) == 0 {
			return nil, fmt.Errorf("text %q at %q: %w", text, string(leftover), domain.ErrNoSegmentation)
		}

		var part string
		extended := false
		if len(strokes) > 0 {
			i := len(strokes) - 1
			var merged steno.Stroke
			if merged, part, extended = t.extend(strokes[i], candidates); extended {
				strokes[i] = merged
				parts[i] += part
			}
		}
		if !extended {
			var err error
			if part, err = t.render(candidates[0]); err != nil {
				return nil, fmt.Errorf("text %q: %w", text, err)
			}
			strokes = append(strokes, candidates[0])
			parts = append(parts, part)
		}

		n := utf8.RuneCountInString(part)
		if n == 0 {
			return nil, fmt.Errorf("text %q at %q: empty fragment: %w", text, string(leftover), domain.ErrNoSegmentation)
		}
		leftover = leftover[min(n, len(leftover)):]
	}

	if len(strokes) != len(parts) {
		panic(fmt.Sprintf("theory: %d strokes for %d parts", len(strokes), len(parts)))
	}
	return strokes, nil
}

// candidates gathers the strokes of every word part that prefixes text,
// from the longest part down.
func (t *Theory) candidates(text []rune) []steno.Stroke {
	var out []steno.Stroke
	for n := min(t.maxWordPartLen, len(text)); n > 0; n-- {
		out = append(out, t.wordParts[string(text[:n])]...)
	}
	return out
}

// extend returns the first candidate merge of last that renders exactly as
// last followed by the candidate on its own.
func (t *Theory) extend(last steno.Stroke, candidates []steno.Stroke) (steno.Stroke, string, bool) {
	for _, c := range candidates {
		if !last.IsPrefix(c) {
			continue
		}
		part, err := t.render(c)
		if err != nil {
			continue
		}
		prefix, err := t.render(last)
		if err != nil {
			continue
		}
		merged := last.Union(c)
		got, err := t.render(merged)
		if err != nil || got != prefix+part {
			continue
		}
		return merged, part, true
	}
	return steno.Stroke{}, "", false
}

func (t *Theory) render(s steno.Stroke) (string, error) {
	return t.StrokesToText([]steno.Stroke{s})
}
