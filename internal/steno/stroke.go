package steno

import (
	"math/bits"
	"strings"
)

// Stroke is one chord: the set of keys pressed together. It is a small
// immutable value; every operation returns a new Stroke.
//
// Strokes built from the same Layout compare equal with == when they hold
// the same keys and can be used as map keys. Use IsEmpty to test for the
// empty stroke.
type Stroke struct {
	layout *Layout
	bits   uint32
}

// Layout returns the layout the stroke was built from (nil for the zero value).
func (s Stroke) Layout() *Layout { return s.layout }

// IsEmpty reports whether no key is pressed.
func (s Stroke) IsEmpty() bool { return s.bits == 0 }

// Len returns the number of keys in the stroke.
func (s Stroke) Len() int { return bits.OnesCount32(s.bits) }

// Equal compares key sets, ignoring the layout pointer of empty strokes.
func (s Stroke) Equal(o Stroke) bool { return s.bits == o.bits }

func (s Stroke) with(b uint32) Stroke {
	return Stroke{layout: s.layout, bits: b}
}

func (s Stroke) pick(o Stroke) *Layout {
	if s.layout != nil {
		return s.layout
	}
	return o.layout
}

// Union returns the keys of s and o (a | b, a + b).
func (s Stroke) Union(o Stroke) Stroke {
	return Stroke{layout: s.pick(o), bits: s.bits | o.bits}
}

// Minus returns the keys of s that are not in o (a - b).
func (s Stroke) Minus(o Stroke) Stroke {
	return Stroke{layout: s.pick(o), bits: s.bits &^ o.bits}
}

// Intersect returns the keys present in both s and o (a & b).
func (s Stroke) Intersect(o Stroke) Stroke {
	return Stroke{layout: s.pick(o), bits: s.bits & o.bits}
}

// Contains reports whether every key of o is also in s.
func (s Stroke) Contains(o Stroke) bool {
	return s.bits&o.bits == o.bits
}

// IsPrefix reports whether every key of s comes before every key of o in
// steno order, so that s.Union(o) is spelled as s followed by o. An empty
// stroke is a prefix of anything, and anything is a prefix of an empty stroke.
func (s Stroke) IsPrefix(o Stroke) bool {
	if s.bits == 0 || o.bits == 0 {
		return true
	}
	return s.lastIndex() < bits.TrailingZeros32(o.bits)
}

func (s Stroke) lastIndex() int {
	return 31 - bits.LeadingZeros32(s.bits)
}

// First returns the lowest-ordered key as a one-key stroke.
func (s Stroke) First() Stroke {
	if s.bits == 0 {
		return s
	}
	return s.with(s.bits & -s.bits)
}

// Last returns the highest-ordered key as a one-key stroke.
func (s Stroke) Last() Stroke {
	if s.bits == 0 {
		return s
	}
	return s.with(1 << s.lastIndex())
}

// Head returns the stroke made of the first n keys of s in steno order.
func (s Stroke) Head(n int) Stroke {
	var out uint32
	rest := s.bits
	for ; n > 0 && rest != 0; n-- {
		low := rest & -rest
		out |= low
		rest &^= low
	}
	return s.with(out)
}

// Compare orders strokes by their key sequences, lexicographically in steno
// order; a stroke whose keys are a leading run of another's sorts first.
// Left-bank spellings therefore sort before mirrored right-bank ones.
func (s Stroke) Compare(o Stroke) int {
	a, b := s.bits, o.bits
	for a != 0 && b != 0 {
		ia, ib := bits.TrailingZeros32(a), bits.TrailingZeros32(b)
		if ia != ib {
			if ia < ib {
				return -1
			}
			return 1
		}
		a &= a - 1
		b &= b - 1
	}
	switch {
	case a == 0 && b == 0:
		return 0
	case a == 0:
		return -1
	default:
		return 1
	}
}

// Keys returns the key tokens of the stroke in steno order.
func (s Stroke) Keys() []string {
	if s.layout == nil {
		return nil
	}
	out := make([]string, 0, s.Len())
	for rest := s.bits; rest != 0; rest &= rest - 1 {
		out = append(out, s.layout.keys[bits.TrailingZeros32(rest)].token)
	}
	return out
}

// String renders the canonical spelling of the stroke.
func (s Stroke) String() string {
	if s.layout == nil || s.bits == 0 {
		return ""
	}
	l := s.layout
	numbers := l.numberKey >= 0 && s.bits&(1<<l.numberKey) != 0 && s.bits&l.digitMask != 0
	hyphen := s.bits&l.rightMask != 0 && s.bits&l.implicit == 0

	var b strings.Builder
	for rest := s.bits; rest != 0; rest &= rest - 1 {
		i := bits.TrailingZeros32(rest)
		if numbers && i == l.numberKey {
			continue
		}
		k := l.keys[i]
		if hyphen && k.side == sideRight {
			b.WriteByte('-')
			hyphen = false
		}
		if numbers && k.digit != "" {
			b.WriteString(k.digit)
		} else {
			b.WriteString(k.letter)
		}
	}
	return b.String()
}

// CompareSequences orders stroke sequences stroke by stroke; a shorter
// sequence that is a prefix of a longer one sorts first.
func CompareSequences(a, b []Stroke) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// JoinSequence renders a stroke sequence as "/"-joined canonical spellings.
func JoinSequence(strokes []Stroke) string {
	parts := make([]string, len(strokes))
	for i, s := range strokes {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}
