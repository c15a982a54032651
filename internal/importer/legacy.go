// Package importer converts the legacy Melani vocabulary database (a CSV
// export) into a fragment dictionary and a briefs dictionary.
package importer

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
)

// Key letters of the legacy notation. Every letter is unambiguous, so the
// legacy database never marks the bank with a hyphen.
const (
	legacyLeft  = "SPCTHVRIA"
	legacyRight = "EOcsthprieao"
)

// ParseSteno reads a stroke sequence in legacy notation: "\" separates
// strokes, "$" is the number key, "#" and "*" stand for themselves.
func ParseSteno(layout *steno.Layout, legacy string) ([]steno.Stroke, error) {
	legacy = strings.NewReplacer(`\`, "/", "$", "#").Replace(legacy)

	parts := strings.Split(legacy, "/")
	strokes := make([]steno.Stroke, 0, len(parts))
	for _, part := range parts {
		tokens := make([]string, 0, len(part))
		for _, r := range part {
			k := string(r)
			switch {
			case k == "#" || k == "*":
			case strings.Contains(legacyLeft, k):
				k += "-"
			case strings.Contains(legacyRight, k):
				k = "-" + k
			default:
				return nil, fmt.Errorf("legacy steno %q: key %q: %w", legacy, k, domain.ErrInvalidKey)
			}
			tokens = append(tokens, k)
		}
		s, err := layout.FromKeys(tokens)
		if err != nil {
			return nil, fmt.Errorf("legacy steno %q: %w", legacy, err)
		}
		strokes = append(strokes, s)
	}
	return strokes, nil
}
