package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/melani-orthography/internal/domain"
	"github.com/heartmarshall/melani-orthography/internal/system"
)

func TestTranslateStroke(t *testing.T) {
	th := newTheory(t, syllables)

	tests := []struct {
		steno string
		want  string
	}{
		{"S", "s{^}"},
		{"SE", "se{^}"},
		{"COhro", "colo"},
		{"CHRAre", "mare"},
		{"THEi", "dei"},
		{"VAhri", "vali"},
		{"STI", "sti{^}"},
		{"SEc", "sec{^}"},
		{"Ci", "ci"},
	}
	for _, tt := range tests {
		t.Run(tt.steno, func(t *testing.T) {
			got, err := th.TranslateStroke(system.Melani.MustParse(tt.steno))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateStroke_Uncovered(t *testing.T) {
	th := newTheory(t, syllables)

	for _, s := range []string{"*", "C*e", "#"} {
		t.Run(s, func(t *testing.T) {
			_, err := th.TranslateStroke(system.Melani.MustParse(s))
			assert.ErrorIs(t, err, domain.ErrNoTranslation)
		})
	}
}

func TestTranslateStroke_NoBacktracking(t *testing.T) {
	// "SP" is taken greedily, leaving "E" uncovered even though "S" + "PE"
	// would cover the stroke.
	th := newTheory(t, []domain.Fragment{
		{Steno: "SP", Text: "sp{^}"},
		{Steno: "S", Text: "s{^}"},
		{Steno: "PE", Text: "pe"},
	})

	_, err := th.TranslateStroke(system.Melani.MustParse("SPE"))
	assert.ErrorIs(t, err, domain.ErrNoTranslation)
}

func TestTranslateStroke_Deterministic(t *testing.T) {
	th := newTheory(t, syllables)
	s := system.Melani.MustParse("CHRAre")

	first, err := th.TranslateStroke(s)
	require.NoError(t, err)
	for range 10 {
		again, err := th.TranslateStroke(s)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTranslateStroke_AttachOnlyAtEdges(t *testing.T) {
	th := newTheory(t, []domain.Fragment{
		{Steno: "S", Text: "{^}s"},
		{Steno: "E", Text: "e{^}"},
		{Steno: "O", Text: "{^}o"},
		{Steno: "c", Text: "c"},
	})

	tests := []struct {
		steno string
		want  string
	}{
		{"SE", "{^}se{^}"},
		{"SEc", "{^}sec"},
		{"EO", "eo"},
		{"Oc", "{^}oc"},
		{"E", "e{^}"},
	}
	for _, tt := range tests {
		t.Run(tt.steno, func(t *testing.T) {
			got, err := th.TranslateStroke(system.Melani.MustParse(tt.steno))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrokesToText(t *testing.T) {
	th := newTheory(t, syllables)

	tests := []struct {
		name  string
		steno string
		want  string
	}{
		{name: "single word", steno: "Ci", want: "ci "},
		{name: "attached strokes", steno: "SE/COhro", want: "secolo "},
		{name: "two words", steno: "VAhri/Ci", want: "vali ci "},
		{name: "trailing attach", steno: "STI", want: "sti"},
		{name: "attach then word", steno: "STI/VAhri", want: "stivali "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := th.StrokesToText(strokes(t, tt.steno))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrokesToText_Empty(t *testing.T) {
	th := newTheory(t, syllables)

	got, err := th.StrokesToText(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestStrokesToText_PropagatesNoTranslation(t *testing.T) {
	th := newTheory(t, syllables)

	_, err := th.StrokesToText(strokes(t, "SE/C*e"))
	assert.ErrorIs(t, err, domain.ErrNoTranslation)
}

func TestStrokesToText_Numbers(t *testing.T) {
	th := newTheory(t, []domain.Fragment{
		{Steno: "15", Text: "XV"},
		{Steno: "16", Text: "XVI"},
		{Steno: "SE", Text: "se{^}"},
		{Steno: "COhro", Text: "colo"},
	})
	seq := strokes(t, "15/SE/COhro/16/SE/COhro")

	after, err := th.StrokesToTextSpacing(seq, SpacesAfter)
	require.NoError(t, err)
	assert.Equal(t, "XV secolo XVI secolo ", after)

	before, err := th.StrokesToTextSpacing(seq, SpacesBefore)
	require.NoError(t, err)
	assert.Equal(t, " XV secolo XVI secolo", before)
}

func TestStrokesToText_ConditionalPassThrough(t *testing.T) {
	const cond = "{=(?i)([8aeiouxy]|11|dei|gn|ps|s[bcdfglmnpqrtv]|z)/agli/ai}"
	th := newTheory(t, []domain.Fragment{
		{Steno: "hri", Text: cond},
		{Steno: "Oc", Text: "oc{^}"},
		{Steno: "CHi", Text: "chi"},
		{Steno: "cp", Text: "{=(?i)(ce|l|fat|[gm]u|nat|pr|po[sr]|prim|ri)/ante/anti}{^}"},
		{Steno: "HAto", Text: "nato"},
	})

	got, err := th.TranslateStroke(system.Melani.MustParse("hri"))
	require.NoError(t, err)
	assert.Equal(t, cond, got)

	text, err := th.StrokesToText(strokes(t, "hri/Oc/CHi/hri"))
	require.NoError(t, err)
	assert.Equal(t, cond+" occhi "+cond+" ", text)

	text, err = th.StrokesToText(strokes(t, "cp/HAto"))
	require.NoError(t, err)
	assert.Equal(t, "{=(?i)(ce|l|fat|[gm]u|nat|pr|po[sr]|prim|ri)/ante/anti}nato ", text)
}

func TestStrokesToText_UndoControlsPassThrough(t *testing.T) {
	th := newTheory(t, []domain.Fragment{
		{Steno: "Cct", Text: " {^\n^}{MODE:RESET}{^}{$}{-|}"},
		{Steno: "So", Text: "so"},
		{Steno: "h", Text: "{-}"},
	})

	got, err := th.TranslateStroke(system.Melani.MustParse("Cct"))
	require.NoError(t, err)
	assert.Equal(t, " {^\n^}{MODE:RESET}{$}{-|}", got)

	text, err := th.StrokesToText(strokes(t, "So/h"))
	require.NoError(t, err)
	assert.Equal(t, "so {-} ", text)
}

func TestParseSpacing(t *testing.T) {
	tests := []struct {
		in      string
		want    Spacing
		wantErr bool
	}{
		{"after", SpacesAfter, false},
		{"", SpacesAfter, false},
		{"Before", SpacesBefore, false},
		{"sideways", SpacesAfter, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpacing(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
