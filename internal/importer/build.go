package importer

import (
	"fmt"
	"maps"
	"slices"

	"github.com/heartmarshall/melani-orthography/internal/dictfile"
	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
	"github.com/heartmarshall/melani-orthography/internal/theory"
)

// Output file names written by the importer.
const (
	FragmentsFile = "melani_fragments.json"
	BriefsFile    = "melani_briefs.json"
)

// Result holds the two dictionaries derived from a database, each sorted
// by stroke sequence.
type Result struct {
	Fragments []domain.Fragment
	Briefs    []domain.Fragment

	// Counts after pruning.
	Prefixes int
	Suffixes int
}

// Build derives the fragment and briefs dictionaries.
//
// Prefixes identical to the suffix of the same strokes are dropped, and so
// are single-stroke suffixes the fragments already translate to the same
// text. Briefs are the remaining prefixes behind a number-key stroke, plus
// the remaining suffixes.
func Build(db *Database, layout *steno.Layout) (*Result, error) {
	prefixes := make(map[string]Entry, len(db.Prefixes))
	for k, e := range db.Prefixes {
		if s, ok := db.Suffixes[k]; ok && s.Translation == e.Translation {
			continue
		}
		prefixes[k] = e
	}

	fragments := make([]domain.Fragment, 0, len(db.fragmentOrder))
	for _, s := range db.fragmentOrder {
		fragments = append(fragments, domain.Fragment{Steno: s.String(), Text: db.Fragments[s].String()})
	}
	th, err := theory.New(layout, fragments)
	if err != nil {
		return nil, fmt.Errorf("build orthography: %w", err)
	}

	suffixes := make(map[string]Entry, len(db.Suffixes))
	for k, e := range db.Suffixes {
		if len(e.Strokes) == 1 {
			if text, err := th.TranslateStroke(e.Strokes[0]); err == nil && text == e.Translation.String() {
				continue
			}
		}
		suffixes[k] = e
	}

	briefs := make(map[string]dictfile.Entry, len(prefixes)+len(suffixes))
	lead := layout.NumberKey()
	for _, k := range db.prefixOrder {
		e, ok := prefixes[k]
		if !ok {
			continue
		}
		strokes := append([]steno.Stroke{lead}, e.Strokes...)
		briefs[steno.JoinSequence(strokes)] = dictfile.Entry{Strokes: strokes, Text: e.Translation.String()}
	}
	for _, k := range db.suffixOrder {
		e, ok := suffixes[k]
		if !ok {
			continue
		}
		briefs[k] = dictfile.Entry{Strokes: e.Strokes, Text: e.Translation.String()}
	}

	fragmentEntries := make([]dictfile.Entry, 0, len(db.fragmentOrder))
	for _, s := range db.fragmentOrder {
		fragmentEntries = append(fragmentEntries, dictfile.Entry{Strokes: []steno.Stroke{s}, Text: db.Fragments[s].String()})
	}
	dictfile.Sort(fragmentEntries)

	briefEntries := slices.Collect(maps.Values(briefs))
	dictfile.Sort(briefEntries)

	return &Result{
		Fragments: dictfile.Fragments(fragmentEntries),
		Briefs:    dictfile.Fragments(briefEntries),
		Prefixes:  len(prefixes),
		Suffixes:  len(suffixes),
	}, nil
}
