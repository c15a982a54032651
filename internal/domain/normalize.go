package domain

import "strings"

// Control markers of the fragment mini-language. Only MetaAttach is
// interpreted by the orthography engine; the others are carried verbatim
// and resolved by the host's output formatter.
const (
	MetaAttach      = "{^}"
	MetaUndo        = "{-}"
	MetaCapitalize  = "{-|}"
	conditionalOpen = "{="
)

// WordPart normalizes a fragment text into its reverse-lookup key: a
// trailing attach marker is removed, otherwise a single space is appended.
func WordPart(text string) string {
	if strings.HasSuffix(text, MetaAttach) {
		return strings.TrimSuffix(text, MetaAttach)
	}
	return text + " "
}

// AttachesBefore reports whether text asks to be glued to what precedes it.
func AttachesBefore(text string) bool {
	return strings.HasPrefix(text, MetaAttach)
}

// AttachesAfter reports whether text asks to be glued to what follows it.
func AttachesAfter(text string) bool {
	return strings.HasSuffix(text, MetaAttach)
}

// StripAttach removes every attach marker from text.
func StripAttach(text string) string {
	return strings.ReplaceAll(text, MetaAttach, "")
}

// HasConditional reports whether text contains a {=REGEX/MATCH/ELSE} construct.
func HasConditional(text string) bool {
	return strings.Contains(text, conditionalOpen)
}
