package steno

import (
	"errors"
	"testing"

	"github.com/heartmarshall/melani-orthography/internal/domain"
)

// english is a small English-like layout where S and R exist on both banks,
// so spellings without an implicit-hyphen key need an explicit "-".
var english = MustLayout(Spec{
	Keys:               []string{"#", "S-", "T-", "R-", "A-", "O-", "*", "-E", "-U", "-R", "-S"},
	ImplicitHyphenKeys: []string{"A-", "O-", "*", "-E", "-U"},
	NumberKey:          "#",
	Numbers:            map[string]string{"S-": "1-", "T-": "2-", "A-": "5-", "O-": "0-", "-R": "-7"},
})

func TestNewLayout_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		spec      Spec
		wantField string
	}{
		{name: "no keys", spec: Spec{}, wantField: "keys"},
		{name: "duplicate key", spec: Spec{Keys: []string{"S-", "S-"}}, wantField: "keys"},
		{name: "bare hyphen", spec: Spec{Keys: []string{"-"}}, wantField: "keys"},
		{name: "left after right", spec: Spec{Keys: []string{"-E", "S-"}}, wantField: "keys"},
		{name: "unknown implicit key", spec: Spec{Keys: []string{"S-"}, ImplicitHyphenKeys: []string{"X"}}, wantField: "implicit_hyphen_keys"},
		{name: "unknown number key", spec: Spec{Keys: []string{"S-"}, NumberKey: "#"}, wantField: "number_key"},
		{name: "numbers without number key", spec: Spec{Keys: []string{"S-"}, Numbers: map[string]string{"S-": "1-"}}, wantField: "number_key"},
		{name: "non digit number", spec: Spec{Keys: []string{"#", "S-"}, NumberKey: "#", Numbers: map[string]string{"S-": "x-"}}, wantField: "numbers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewLayout(tt.spec)
			if err == nil {
				t.Fatal("NewLayout() error = nil, want validation error")
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not *domain.ValidationError", err)
			}
			if ve.Errors[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", ve.Errors[0].Field, tt.wantField)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Error("error does not wrap domain.ErrValidation")
			}
		})
	}
}

func TestNewLayout_TooManyKeys(t *testing.T) {
	t.Parallel()

	keys := make([]string, MaxKeys+1)
	for i := range keys {
		keys[i] = string(rune('a'+i%26)) + string(rune('a'+i/26)) + "-"
	}
	if _, err := NewLayout(Spec{Keys: keys}); err == nil {
		t.Fatal("NewLayout() accepted more than MaxKeys keys")
	}
}

func TestParse_Spellings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spelling string
		keys     []string
		canon    string
	}{
		{"S", []string{"S-"}, "S"},
		{"-S", []string{"-S"}, "-S"},
		{"-RS", []string{"-R", "-S"}, "-RS"},
		{"SR-R", []string{"S-", "R-", "-R"}, "SR-R"},
		{"STAER", []string{"S-", "T-", "A-", "-E", "-R"}, "STAER"},
		{"S*S", []string{"S-", "*", "-S"}, "S*S"},
		{"SE", []string{"S-", "-E"}, "SE"},
		{"12", []string{"#", "S-", "T-"}, "12"},
		{"#ST", []string{"#", "S-", "T-"}, "12"},
		{"#R", []string{"#", "R-"}, "#R"},
		{"17", []string{"#", "S-", "-R"}, "1-7"},
		{"1R", []string{"#", "S-", "R-"}, "1R"},
		{"", []string{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.spelling, func(t *testing.T) {
			t.Parallel()
			s, err := english.Parse(tt.spelling)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spelling, err)
			}
			got := s.Keys()
			if len(got) != len(tt.keys) {
				t.Fatalf("Parse(%q).Keys() = %v, want %v", tt.spelling, got, tt.keys)
			}
			for i := range got {
				if got[i] != tt.keys[i] {
					t.Fatalf("Parse(%q).Keys() = %v, want %v", tt.spelling, got, tt.keys)
				}
			}
			if s.String() != tt.canon {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.spelling, s.String(), tt.canon)
			}
			back, err := english.Parse(s.String())
			if err != nil || back != s {
				t.Errorf("Parse(String()) round trip: got %v (err %v), want %v", back.Keys(), err, s.Keys())
			}
		})
	}
}

func TestParse_InvalidKey(t *testing.T) {
	t.Parallel()

	for _, spelling := range []string{"X", "EA", "SSS", "R-T", "9"} {
		t.Run(spelling, func(t *testing.T) {
			t.Parallel()
			_, err := english.Parse(spelling)
			if !errors.Is(err, domain.ErrInvalidKey) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidKey", spelling, err)
			}
		})
	}
}

func TestFromKeys(t *testing.T) {
	t.Parallel()

	s, err := english.FromKeys([]string{"-S", "S-", "*"})
	if err != nil {
		t.Fatalf("FromKeys error: %v", err)
	}
	if got := s.String(); got != "S*S" {
		t.Errorf("String() = %q, want %q", got, "S*S")
	}

	d, err := english.FromKeys([]string{"1-", "-7"})
	if err != nil {
		t.Fatalf("FromKeys digits error: %v", err)
	}
	if d != english.MustParse("17") {
		t.Errorf("FromKeys(1-, -7) = %v, want 17", d.Keys())
	}

	if _, err := english.FromKeys([]string{"S-", "Q-"}); !errors.Is(err, domain.ErrInvalidKey) {
		t.Errorf("FromKeys unknown token error = %v, want ErrInvalidKey", err)
	}
}

func TestParseSequence(t *testing.T) {
	t.Parallel()

	seq, err := english.ParseSequence("ST/-RS/12")
	if err != nil {
		t.Fatalf("ParseSequence error: %v", err)
	}
	if got := JoinSequence(seq); got != "ST/-RS/12" {
		t.Errorf("JoinSequence = %q", got)
	}
	if _, err := english.ParseSequence("ST/XX"); !errors.Is(err, domain.ErrInvalidKey) {
		t.Errorf("ParseSequence invalid error = %v", err)
	}
}

func TestLayout_Keys(t *testing.T) {
	t.Parallel()

	keys := english.Keys()
	if len(keys) != english.Len() || keys[0] != "#" || keys[len(keys)-1] != "-S" {
		t.Errorf("Keys() = %v", keys)
	}
	if got := english.NumberKey().Keys(); len(got) != 1 || got[0] != "#" {
		t.Errorf("NumberKey() = %v", got)
	}
}
