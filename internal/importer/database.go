package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/steno"
)

// Model selects how the two text columns of a row are interpreted.
type Model int

const (
	// ModelReadonly files the first text of editable rows as a suffix and
	// of read-only rows as a prefix.
	ModelReadonly Model = 1
	// ModelPrefix files the first text of every row as a prefix.
	ModelPrefix Model = 2
)

// headerColumns is the column count of the database header row.
const headerColumns = 5

// numberKeys are the keys a pure number stroke may use.
const numberKeys = "#SPTVIOctpi"

var digits = regexp.MustCompile(`^\d+$`)

// Options configure Load.
type Options struct {
	Model Model
	// KeepNumberStrokes disables dropping single number-key strokes, which
	// the orthography already spells as digits.
	KeepNumberStrokes bool
	Logger            *slog.Logger
}

// Entry is a prefix or suffix row keyed by its stroke sequence.
type Entry struct {
	Strokes     []steno.Stroke
	Translation Translation
}

// Database is the content of a legacy vocabulary export.
type Database struct {
	// Fragments maps single strokes to their orthographic text.
	Fragments map[steno.Stroke]Translation
	// Prefixes and Suffixes are keyed by canonical steno spelling.
	Prefixes map[string]Entry
	Suffixes map[string]Entry

	fragmentOrder []steno.Stroke
	prefixOrder   []string
	suffixOrder   []string
}

// Load reads a CSV export with rows "steno,text1,text2,readonly,...".
func Load(r io.Reader, layout *steno.Layout, opts Options) (*Database, error) {
	if opts.Model == 0 {
		opts.Model = ModelReadonly
	}
	if opts.Model != ModelReadonly && opts.Model != ModelPrefix {
		return nil, domain.NewValidationError("model", fmt.Sprintf("unknown model %d", opts.Model))
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	numberMask, err := layout.Parse(numberKeys)
	if err != nil {
		return nil, fmt.Errorf("number keys: %w", err)
	}

	db := &Database{
		Fragments: make(map[steno.Stroke]Translation),
		Prefixes:  make(map[string]Entry),
		Suffixes:  make(map[string]Entry),
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != headerColumns {
		return nil, fmt.Errorf("header: %d columns, want %d: %w", len(header), headerColumns, domain.ErrValidation)
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("line %d: %d columns, want at least 4: %w", line, len(row), domain.ErrValidation)
		}

		strokes, err := ParseSteno(layout, row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		readonly, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: readonly %q: %w", line, row[3], domain.ErrValidation)
		}
		text1, has1 := parseOptional(row[1])
		text2, has2 := parseOptional(row[2])

		if !opts.KeepNumberStrokes && isNumberStroke(strokes, layout, numberMask) {
			for _, t := range []struct {
				tr  Translation
				has bool
			}{{text1, has1}, {text2, has2}} {
				if t.has && !digits.MatchString(t.tr.Text) {
					return nil, fmt.Errorf("line %d: number stroke %s has text %q: %w",
						line, steno.JoinSequence(strokes), t.tr.Text, domain.ErrValidation)
				}
			}
			continue
		}

		if has1 {
			if opts.Model == ModelReadonly && readonly == 0 {
				db.addSuffix(log, strokes, text1)
			} else {
				db.addPrefix(log, strokes, text1)
			}
		}
		if has2 {
			if err := db.addFragment(log, strokes, text2); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
	}

	return db, nil
}

func parseOptional(raw string) (Translation, bool) {
	if raw == "" {
		return Translation{}, false
	}
	return ParseTranslation(raw), true
}

func isNumberStroke(strokes []steno.Stroke, layout *steno.Layout, mask steno.Stroke) bool {
	if len(strokes) != 1 {
		return false
	}
	s := strokes[0]
	return s.Contains(layout.NumberKey()) && s.Minus(mask).IsEmpty()
}

func (db *Database) addFragment(log *slog.Logger, strokes []steno.Stroke, t Translation) error {
	if len(strokes) != 1 {
		log.Warn("ignoring multiple strokes combo fragment",
			slog.String("steno", steno.JoinSequence(strokes)),
			slog.String("text", t.String()))
		return nil
	}
	s := strokes[0]
	if prev, ok := db.Fragments[s]; ok {
		if prev != t {
			return fmt.Errorf("fragment %s: %q, already %q: %w", s, t, prev, domain.ErrDuplicateFragment)
		}
		return nil
	}
	db.Fragments[s] = t
	db.fragmentOrder = append(db.fragmentOrder, s)
	return nil
}

func (db *Database) addPrefix(log *slog.Logger, strokes []steno.Stroke, t Translation) {
	db.prefixOrder = addEntry(log, "prefix", db.Prefixes, db.prefixOrder, strokes, t)
}

func (db *Database) addSuffix(log *slog.Logger, strokes []steno.Stroke, t Translation) {
	db.suffixOrder = addEntry(log, "suffix", db.Suffixes, db.suffixOrder, strokes, t)
}

func addEntry(log *slog.Logger, kind string, entries map[string]Entry, order []string, strokes []steno.Stroke, t Translation) []string {
	key := steno.JoinSequence(strokes)
	if prev, ok := entries[key]; ok {
		if prev.Translation != t {
			log.Warn("duplicate "+kind+" dictionary entry, ignoring",
				slog.String("steno", key),
				slog.String("text", t.String()),
				slog.String("present", prev.Translation.String()))
		}
		return order
	}
	entries[key] = Entry{Strokes: strokes, Translation: t}
	return append(order, key)
}
