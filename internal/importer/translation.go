package importer

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/melani-orthography/internal/domain"
)

// Translation is a legacy database text converted to fragment notation.
// WordFinished and AddSpace capture how the text ended, which decides the
// attach and word-end markers appended by String.
type Translation struct {
	Text         string
	WordFinished bool
	AddSpace     bool
}

// entities are replaced one after the other, so "&amp;rb;" ends up as an
// attach marker.
var entities = [][2]string{
	{"&dw;", domain.MetaUndo},
	{"&1uc;", domain.MetaCapitalize},
	{"&amp;", "&"},
	{"&cr;", "{#Return}"},
	{"&lc;", "{MODE:RESET}"},
	{"&rb;", domain.MetaAttach},
	{"&sp;", " "},
	{"&uc;", "{MODE:CAPS}"},
}

const wordFinishedEntity = "&+i;"

// &var;|ELSE|CANDIDATES|MATCH|
var varEntity = regexp.MustCompile(`&var;\|([^|]*)\|([^|]*)\|([^|]*)\|`)

// ParseTranslation converts a legacy text: entities become control markers,
// &var; constructs become {=REGEX/MATCH/ELSE} conditionals, and a trailing
// space marks a finished word.
func ParseTranslation(raw string) Translation {
	var t Translation

	text := raw
	for _, e := range entities {
		text = strings.ReplaceAll(text, e[0], e[1])
	}
	if strings.Contains(text, wordFinishedEntity) {
		t.WordFinished = true
		text = strings.ReplaceAll(text, wordFinishedEntity, "")
	}
	text = varEntity.ReplaceAllStringFunc(text, func(m string) string {
		sub := varEntity.FindStringSubmatch(m)
		return conditional(sub[1], sub[2], sub[3])
	})

	switch {
	case strings.HasSuffix(text, " "):
		t.AddSpace = true
		t.WordFinished = true
		text = strings.TrimSuffix(text, " ")
		if text == "" {
			text = "{ }"
		}
	case strings.HasSuffix(text, " "+domain.MetaCapitalize):
		t.AddSpace = true
		t.WordFinished = true
		text = strings.TrimSuffix(text, " "+domain.MetaCapitalize) + domain.MetaCapitalize
	}

	t.Text = text
	return t
}

// String renders the translation as fragment text.
func (t Translation) String() string {
	s := t.Text
	if !t.AddSpace {
		s += domain.MetaAttach
		if t.WordFinished {
			s += "{$}"
		}
	}
	return strings.ReplaceAll(s, domain.MetaCapitalize+domain.MetaAttach+"{$}", domain.MetaAttach+"{$}"+domain.MetaCapitalize)
}

// conditional builds "{=(?i)(REGEX)/MATCH/ELSE}" where REGEX matches any of
// the whitespace separated candidates. Candidates sharing everything but
// their last character are folded into a character class.
func conditional(elseText, candidates, matchText string) string {
	addSpace := strings.HasSuffix(matchText, " ") && strings.HasSuffix(elseText, " ")
	if addSpace {
		matchText = strings.TrimSuffix(matchText, " ")
		elseText = strings.TrimSuffix(elseText, " ")
	}

	words := strings.Fields(candidates)
	slices.SortFunc(words, func(a, b string) int {
		if la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b); la != lb {
			return la - lb
		}
		return strings.Compare(a, b)
	})

	type group struct {
		prefix string
		last   []string
	}
	var groups []group
	for _, w := range words {
		_, size := utf8.DecodeLastRuneInString(w)
		prefix, last := w[:len(w)-size], w[len(w)-size:]
		if n := len(groups); n > 0 && groups[n-1].prefix == prefix {
			groups[n-1].last = append(groups[n-1].last, last)
			continue
		}
		groups = append(groups, group{prefix: prefix, last: []string{last}})
	}
	slices.SortStableFunc(groups, func(a, b group) int {
		return strings.Compare(a.prefix, b.prefix)
	})

	alternatives := make([]string, len(groups))
	for i, g := range groups {
		if len(g.last) == 1 {
			alternatives[i] = escapeRegex(g.prefix + g.last[0])
			continue
		}
		var class strings.Builder
		for _, c := range g.last {
			class.WriteString(escapeRegex(c))
		}
		alternatives[i] = escapeRegex(g.prefix) + "[" + class.String() + "]"
	}

	var b strings.Builder
	b.WriteString("{=(?i)")
	if addSpace {
		b.WriteByte(' ')
	}
	b.WriteString("(" + strings.Join(alternatives, "|") + ")/" + matchText + "/" + elseText + "}")
	if addSpace {
		b.WriteByte(' ')
	}
	return b.String()
}

// regexSpecial are the characters escaped in conditional patterns. The host
// compiles them with a backtracking engine that also treats "-", "#", "&"
// and "~" as special in some contexts.
const regexSpecial = `()[]{}?*+-|^$\.&~# ` + "\t\n\r\v\f"

func escapeRegex(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(regexSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
