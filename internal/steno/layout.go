// Package steno models steno chords as fixed-width key sets over a
// configurable key layout.
package steno

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/melani-orthography/internal/domain"
)

// MaxKeys is the widest layout a Stroke can represent.
const MaxKeys = 32

// Spec is the configuration data a Layout is built from.
//
// Keys are listed in steno order. A token ending in "-" is a left-bank key,
// a token starting with "-" is a right-bank key, anything else sits in the
// middle. Numbers maps a key token to its digit token ("S-": "1-").
type Spec struct {
	Keys               []string          `yaml:"keys"`
	ImplicitHyphenKeys []string          `yaml:"implicit_hyphen_keys"`
	NumberKey          string            `yaml:"number_key"`
	Numbers            map[string]string `yaml:"numbers"`
}

type side uint8

const (
	sideLeft side = iota
	sideMiddle
	sideRight
)

type key struct {
	token  string
	letter string
	digit  string
	side   side
}

// Layout is an immutable key alphabet. Strokes keep a pointer to the layout
// they were built from.
type Layout struct {
	keys       []key
	index      map[string]int
	digitIndex map[string]int
	numberKey  int
	rightMask  uint32
	implicit   uint32
	digitMask  uint32
}

// NewLayout validates spec and builds a Layout from it.
func NewLayout(spec Spec) (*Layout, error) {
	var errs []domain.FieldError

	if len(spec.Keys) == 0 {
		errs = append(errs, domain.FieldError{Field: "keys", Message: "required"})
	}
	if len(spec.Keys) > MaxKeys {
		errs = append(errs, domain.FieldError{
			Field:   "keys",
			Message: fmt.Sprintf("at most %d keys supported (got %d)", MaxKeys, len(spec.Keys)),
		})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	l := &Layout{
		keys:       make([]key, len(spec.Keys)),
		index:      make(map[string]int, len(spec.Keys)),
		digitIndex: make(map[string]int, len(spec.Numbers)),
		numberKey:  -1,
	}

	for i, token := range spec.Keys {
		k, err := parseKeyToken(token)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "keys", Message: err.Error()})
			continue
		}
		if _, dup := l.index[token]; dup {
			errs = append(errs, domain.FieldError{Field: "keys", Message: fmt.Sprintf("duplicate key %q", token)})
			continue
		}
		l.keys[i] = k
		l.index[token] = i
		if k.side == sideRight {
			l.rightMask |= 1 << i
		}
	}

	seenRight := false
	for _, k := range l.keys {
		if k.side == sideRight {
			seenRight = true
		}
		if k.side == sideLeft && seenRight {
			errs = append(errs, domain.FieldError{
				Field:   "keys",
				Message: fmt.Sprintf("left key %q after a right key", k.token),
			})
		}
	}

	for _, token := range spec.ImplicitHyphenKeys {
		i, ok := l.index[token]
		if !ok {
			errs = append(errs, domain.FieldError{Field: "implicit_hyphen_keys", Message: fmt.Sprintf("unknown key %q", token)})
			continue
		}
		l.implicit |= 1 << i
	}

	if spec.NumberKey != "" {
		i, ok := l.index[spec.NumberKey]
		if !ok {
			errs = append(errs, domain.FieldError{Field: "number_key", Message: fmt.Sprintf("unknown key %q", spec.NumberKey)})
		} else {
			l.numberKey = i
		}
	}

	for token, digitToken := range spec.Numbers {
		i, ok := l.index[token]
		if !ok {
			errs = append(errs, domain.FieldError{Field: "numbers", Message: fmt.Sprintf("unknown key %q", token)})
			continue
		}
		d, err := parseKeyToken(digitToken)
		if err != nil || len(d.letter) != 1 || d.letter[0] < '0' || d.letter[0] > '9' {
			errs = append(errs, domain.FieldError{Field: "numbers", Message: fmt.Sprintf("invalid digit %q for %q", digitToken, token)})
			continue
		}
		if _, dup := l.digitIndex[digitToken]; dup {
			errs = append(errs, domain.FieldError{Field: "numbers", Message: fmt.Sprintf("digit %q mapped twice", digitToken)})
			continue
		}
		l.keys[i].digit = d.letter
		l.digitIndex[digitToken] = i
		l.digitMask |= 1 << i
	}

	if l.digitMask != 0 && l.numberKey < 0 {
		errs = append(errs, domain.FieldError{Field: "number_key", Message: "required when numbers are set"})
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return l, nil
}

// MustLayout is like NewLayout but panics on an invalid spec. It is meant
// for package-level layout tables.
func MustLayout(spec Spec) *Layout {
	l, err := NewLayout(spec)
	if err != nil {
		panic(fmt.Sprintf("steno: invalid layout: %v", err))
	}
	return l
}

func parseKeyToken(token string) (key, error) {
	switch {
	case len(token) > 1 && strings.HasSuffix(token, "-"):
		return key{token: token, letter: strings.TrimSuffix(token, "-"), side: sideLeft}, nil
	case len(token) > 1 && strings.HasPrefix(token, "-"):
		return key{token: token, letter: strings.TrimPrefix(token, "-"), side: sideRight}, nil
	case token != "" && token != "-":
		return key{token: token, letter: token, side: sideMiddle}, nil
	default:
		return key{}, fmt.Errorf("invalid key token %q", token)
	}
}

// Keys returns the key tokens in steno order.
func (l *Layout) Keys() []string {
	out := make([]string, len(l.keys))
	for i, k := range l.keys {
		out[i] = k.token
	}
	return out
}

// Len returns the number of keys in the layout.
func (l *Layout) Len() int { return len(l.keys) }

// NumberKey returns the stroke made of the number key alone, or the empty
// stroke when the layout has none.
func (l *Layout) NumberKey() Stroke {
	if l.numberKey < 0 {
		return Stroke{layout: l}
	}
	return Stroke{layout: l, bits: 1 << l.numberKey}
}

// FromKeys builds a stroke from explicit key tokens ("S-", "-E", "*") or
// digit tokens ("1-", "-6"); a digit token implies the number key.
func (l *Layout) FromKeys(tokens []string) (Stroke, error) {
	s := Stroke{layout: l}
	for _, token := range tokens {
		if i, ok := l.index[token]; ok {
			s.bits |= 1 << i
			continue
		}
		if i, ok := l.digitIndex[token]; ok {
			s.bits |= 1<<i | 1<<l.numberKey
			continue
		}
		return Stroke{}, fmt.Errorf("key %q: %w", token, domain.ErrInvalidKey)
	}
	return s, nil
}

// MustKeys is like FromKeys but panics on an unknown token.
func (l *Layout) MustKeys(tokens ...string) Stroke {
	s, err := l.FromKeys(tokens)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse reads a canonical spelling such as "SE", "COhro", "15" or "-RS".
//
// Characters are matched left to right against the keys still available
// after the previous match; "-" skips to the right bank. A digit selects the
// key mapped to it and implies the number key.
func (l *Layout) Parse(spelling string) (Stroke, error) {
	s := Stroke{layout: l}
	pos := 0
	for _, r := range spelling {
		c := string(r)
		if c == "-" {
			if first := l.firstRight(); pos < first {
				pos = first
			}
			continue
		}
		i, digit := l.find(c, pos)
		if i < 0 {
			return Stroke{}, fmt.Errorf("stroke %q: key %q: %w", spelling, c, domain.ErrInvalidKey)
		}
		s.bits |= 1 << i
		if digit {
			s.bits |= 1 << l.numberKey
		}
		pos = i + 1
	}
	return s, nil
}

// MustParse is like Parse but panics on an invalid spelling.
func (l *Layout) MustParse(spelling string) Stroke {
	s, err := l.Parse(spelling)
	if err != nil {
		panic(err)
	}
	return s
}

func (l *Layout) find(c string, pos int) (int, bool) {
	for i := pos; i < len(l.keys); i++ {
		if l.keys[i].letter == c {
			return i, false
		}
		if l.keys[i].digit == c {
			return i, true
		}
	}
	return -1, false
}

func (l *Layout) firstRight() int {
	for i, k := range l.keys {
		if k.side == sideRight {
			return i
		}
	}
	return len(l.keys)
}

// ParseSequence reads a "/"-joined sequence of stroke spellings.
func (l *Layout) ParseSequence(steno string) ([]Stroke, error) {
	parts := strings.Split(steno, "/")
	strokes := make([]Stroke, 0, len(parts))
	for _, p := range parts {
		s, err := l.Parse(p)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, s)
	}
	return strokes, nil
}
