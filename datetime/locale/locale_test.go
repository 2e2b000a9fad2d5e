// File: locale_test.go
// Title: Locale Registry and Vocabulary Tests
// Description: Tests for bundled data, file loading, tag matching and
//              word lookup rules.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package locale

import (
	"os"
	"path/filepath"
	"testing"

	dterror "github.com/msto63/dtparse/core/error"
)

func TestBundledRegistry(t *testing.T) {
	r, err := NewBundledRegistry()
	if err != nil {
		t.Fatalf("NewBundledRegistry() error = %v", err)
	}

	want := []string{"de", "en-GB", "en-US", "es", "fr"}
	got := r.Tags()
	if len(got) != len(want) {
		t.Fatalf("Tags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryGet(t *testing.T) {
	r := Default()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"en-US", "en-US", false},
		{"en_us", "en-US", false},
		{"en", "en-US", false},
		{"en-AU", "en-GB", false},
		{"de-DE", "de", false},
		{"de-LU", "de", false},
		{"es-MX", "es", false},
		{"fr", "fr", false},
		{"ja", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := r.Get(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Get(%q) = %v, want error", tt.in, l.Tag)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.in, err)
			}
			if l.Tag != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.in, l.Tag, tt.want)
			}
		})
	}

	if _, err := r.Get("ja"); !dterror.HasCode(err, dterror.CodeLocaleNotFound) {
		t.Errorf("missing locale code = %v", dterror.GetCode(err))
	}
}

func TestRegistryMatch(t *testing.T) {
	r := Default()

	tests := []struct {
		header string
		want   string
	}{
		{"de-CH,de;q=0.9,en;q=0.8", "de"},
		{"ja,fr;q=0.5", "fr"},
		{"en-GB", "en-GB"},
		{"ja", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := r.Match(tt.header); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestVocabularyLookup(t *testing.T) {
	v, err := Default().Vocabulary("en-US", false)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		word   string
		kind   Kind
		value  int
		wantOK bool
	}{
		{"January", KindMonth, 1, true},
		{"FEB", KindMonth, 2, true},
		{"Sept", KindMonth, 9, true},
		{"Septem", KindMonth, 9, true},
		{"Mai", KindMonth, 5, true},
		{"Mär", KindMonth, 3, true},
		{"Ago", KindMonth, 8, true},
		{"Mar", KindMonth, 3, true},
		{"Ju", KindWeekday, 4, true},
		{"Jx", 0, 0, false},
		{"MoNdAy", KindWeekday, 1, true},
		{"Th", KindWeekday, 4, true},
		{"Wednes", KindWeekday, 3, true},
		{"Ninteenth", KindOrdinal, 19, true},
		{"twenty-first", KindOrdinal, 21, true},
		{"primero", KindOrdinal, 1, true},
		{"p.m.", KindMeridiem, PM, true},
		{"AM", KindMeridiem, AM, true},
		{"BcE", KindEra, EraBC, true},
		{"Ce", KindEra, EraAD, true},
		{"GMT", KindZone, 0, true},
		{"Workday", 0, 0, false},
		{"festival", 0, 0, false},
		{"yesterday", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			e, ok := v.Lookup(tt.word)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v (entry %+v)", tt.word, ok, tt.wantOK, e)
			}
			if !ok {
				return
			}
			if e.Kind != tt.kind || e.Value != tt.value {
				t.Errorf("Lookup(%q) = %v/%d, want %v/%d", tt.word, e.Kind, e.Value, tt.kind, tt.value)
			}
		})
	}
}

func TestVocabularyPrimaryWins(t *testing.T) {
	fr, err := Default().Vocabulary("fr", false)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := fr.Lookup("mar")
	if !ok || e.Kind != KindWeekday || e.Locale != "fr" {
		t.Errorf("fr Lookup(mar) = %+v, %v; want French weekday", e, ok)
	}

	en, _ := Default().Vocabulary("en-US", false)
	e, ok = en.Lookup("mar")
	if !ok || e.Kind != KindMonth || e.Value != 3 {
		t.Errorf("en Lookup(mar) = %+v, %v; want March", e, ok)
	}
}

func TestVocabularyStrict(t *testing.T) {
	v, err := Default().Vocabulary("en-US", true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.Lookup("Mai"); ok {
		t.Error("strict vocabulary should not know German month names")
	}
	if v.FieldOrder() != "mdy" || v.Tag() != "en-US" {
		t.Errorf("FieldOrder() = %q, Tag() = %q", v.FieldOrder(), v.Tag())
	}
	if got := v.OrdinalSuffixes(); len(got) != 4 {
		t.Errorf("OrdinalSuffixes() = %v", got)
	}

	de, err := Default().Vocabulary("de", true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := de.Lookup("Marz"); ok {
		t.Error("umlaut must not be dropped: Marz matched März")
	}
	if e, ok := de.Lookup("MÄRZ"); !ok || e.Value != 3 {
		t.Errorf("de Lookup(MÄRZ) = %+v, %v", e, ok)
	}
}

func TestVocabularyAmbiguousPrefix(t *testing.T) {
	l := &Locale{
		Tag:    "xx",
		Months: [][]string{{"maximo"}, {"mazurka"}, {"c"}, {"d"}, {"e"}, {"f"}, {"g"}, {"h"}, {"i"}, {"j"}, {"k"}, {"l"}},
	}
	v := Compile(l)
	if _, ok := v.Lookup("maz"); !ok {
		t.Error("unique prefix should match")
	}
	if _, ok := v.Lookup("ma"); ok {
		t.Error("two letter month prefix should not match")
	}

	l.Months[1] = []string{"maxwell"}
	v = Compile(l)
	if _, ok := v.Lookup("max"); ok {
		t.Error("ambiguous prefix should not match")
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MÄRZ", "märz"},
		{"März", "märz"},
		{"a.m.", "am"},
		{"Straße", "strasse"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()

	yamlData := `tag: nl
name: Nederlands
field_order: dmy
months:
  - [januari, jan]
  - [februari, feb]
  - [maart, mrt]
  - [april, apr]
  - [mei]
  - [juni, jun]
  - [juli, jul]
  - [augustus, aug]
  - [september, sep]
  - [oktober, okt]
  - [november, nov]
  - [december, dec]
`
	tomlData := `tag = "it"
name = "Italiano"
field_order = "dmy"
months = [["gennaio", "gen"], ["febbraio", "feb"], ["marzo", "mar"], ["aprile", "apr"], ["maggio", "mag"], ["giugno", "giu"], ["luglio", "lug"], ["agosto", "ago"], ["settembre", "set"], ["ottobre", "ott"], ["novembre", "nov"], ["dicembre", "dic"]]
ordinal_suffixes = ["º"]
`
	if err := os.WriteFile(filepath.Join(dir, "nl.yaml"), []byte(yamlData), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "it.toml"), []byte(tomlData), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	tags, err := r.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("LoadDir() tags = %v", tags)
	}

	v, err := r.Vocabulary("nl", true)
	if err != nil {
		t.Fatal(err)
	}
	if e, ok := v.Lookup("mrt"); !ok || e.Value != 3 {
		t.Errorf("nl Lookup(mrt) = %+v, %v", e, ok)
	}

	v, err = r.Vocabulary("it", true)
	if err != nil {
		t.Fatal(err)
	}
	if e, ok := v.Lookup("maggio"); !ok || e.Value != 5 {
		t.Errorf("it Lookup(maggio) = %+v, %v", e, ok)
	}
}

func TestDecodeRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"short months", "tag: nl\nmonths:\n  - [a]\n"},
		{"bad order", "tag: nl\nfield_order: ddm\n"},
		{"bad tag", "tag: \"!!\"\n"},
		{"unknown field", "tag: nl\nmonthz: []\n"},
		{"long apostrophe", "tag: nl\napostrophes: [\"ab\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatYAML)
			if !dterror.HasCode(err, dterror.CodeLocaleInvalid) {
				t.Errorf("Decode() error = %v, want LOCALE_INVALID", err)
			}
		})
	}
}

func TestRegistryClone(t *testing.T) {
	orig := Default()
	c := orig.Clone()

	de, err := c.Get("de")
	if err != nil {
		t.Fatal(err)
	}
	lb := *de
	lb.Tag = "lb"
	lb.Aliases = nil
	if err := c.Register(&lb); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := c.Get("lb"); err != nil {
		t.Errorf("clone Get(lb) error = %v", err)
	}
	if _, err := orig.Get("lb"); err == nil {
		t.Error("Register on the clone leaked into the original")
	}
	if got, want := len(c.Tags()), len(orig.Tags())+1; got != want {
		t.Errorf("clone has %d locales, want %d", got, want)
	}
}
