// File: vocabulary.go
// Title: Compiled Vocabulary
// Description: Compiles one primary locale plus fallback locales into
//              lookup tables keyed by normalized word. Lookup order is exact
//              match (primary, then fallbacks) followed by prefix match on
//              month and weekday names.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package locale

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Kind is the role a word plays in a date expression
type Kind int

const (
	KindMonth Kind = iota + 1
	KindWeekday
	KindOrdinal
	KindMeridiem
	KindEra
	KindZone
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindMonth:
		return "month"
	case KindWeekday:
		return "weekday"
	case KindOrdinal:
		return "ordinal"
	case KindMeridiem:
		return "meridiem"
	case KindEra:
		return "era"
	case KindZone:
		return "zone"
	default:
		return "unknown"
	}
}

// Meridiem and era values carried in Entry.Value
const (
	AM = 0
	PM = 12

	EraAD = 0
	EraBC = 1
)

// Prefix lengths below which abbreviations are not guessed
const (
	minMonthPrefix   = 3
	minWeekdayPrefix = 2
)

// Entry is the meaning of one vocabulary word. Value holds the month
// (1-12), ordinal day (1-31), meridiem shift (AM/PM), era (EraAD/EraBC),
// or zone offset in minutes.
type Entry struct {
	Kind   Kind
	Value  int
	Locale string
}

type named struct {
	key   string
	entry Entry
}

type table struct {
	tag      string
	exact    map[string]Entry
	months   []named
	weekdays []named
}

// Vocabulary is an immutable compiled lookup table
type Vocabulary struct {
	tables      []*table
	suffixes    []string
	apostrophes []rune
	fieldOrder  string
}

// Compile builds a Vocabulary. The primary locale is searched first, then
// the fallbacks in the given order.
func Compile(primary *Locale, fallbacks ...*Locale) *Vocabulary {
	v := &Vocabulary{fieldOrder: strings.ToLower(primary.FieldOrder)}

	seenSuffix := make(map[string]bool)
	seenApos := map[rune]bool{'\'': true, '‘': true, '’': true}
	v.apostrophes = []rune{'\'', '‘', '’'}

	for _, l := range append([]*Locale{primary}, fallbacks...) {
		if l == nil {
			continue
		}
		v.tables = append(v.tables, compileTable(l))
		for _, s := range l.OrdinalSuffixes {
			key := Fold(s)
			if key != "" && !seenSuffix[key] {
				seenSuffix[key] = true
				v.suffixes = append(v.suffixes, key)
			}
		}
		for _, a := range l.Apostrophes {
			r, _ := utf8.DecodeRuneInString(a)
			if r != utf8.RuneError && !seenApos[r] {
				seenApos[r] = true
				v.apostrophes = append(v.apostrophes, r)
			}
		}
	}
	return v
}

func compileTable(l *Locale) *table {
	t := &table{tag: l.Tag, exact: make(map[string]Entry)}

	// Lower priority kinds go in first so months and ordinals win a clash.
	add := func(words []string, e Entry) {
		e.Locale = l.Tag
		for _, w := range words {
			if key := Fold(w); key != "" {
				t.exact[key] = e
			}
		}
	}
	for i, names := range l.Weekdays {
		add(names, Entry{Kind: KindWeekday, Value: i + 1})
		for _, n := range names {
			t.weekdays = append(t.weekdays, named{Fold(n), Entry{Kind: KindWeekday, Value: i + 1, Locale: l.Tag}})
		}
	}
	add(l.UTC, Entry{Kind: KindZone, Value: 0})
	add(l.AM, Entry{Kind: KindMeridiem, Value: AM})
	add(l.PM, Entry{Kind: KindMeridiem, Value: PM})
	add(l.AD, Entry{Kind: KindEra, Value: EraAD})
	add(l.BC, Entry{Kind: KindEra, Value: EraBC})
	for i, names := range l.Ordinals {
		add(names, Entry{Kind: KindOrdinal, Value: i + 1})
	}
	for i, names := range l.Months {
		add(names, Entry{Kind: KindMonth, Value: i + 1})
		for _, n := range names {
			t.months = append(t.months, named{Fold(n), Entry{Kind: KindMonth, Value: i + 1, Locale: l.Tag}})
		}
	}
	return t
}

// Lookup resolves a word to its meaning
func (v *Vocabulary) Lookup(word string) (Entry, bool) {
	key := Fold(word)
	if key == "" {
		return Entry{}, false
	}
	for _, t := range v.tables {
		if e, ok := t.exact[key]; ok {
			return e, true
		}
	}

	n := utf8.RuneCountInString(key)
	for _, t := range v.tables {
		if n >= minMonthPrefix {
			if e, ok := uniquePrefix(t.months, key); ok {
				return e, true
			}
		}
		if n >= minWeekdayPrefix {
			if e, ok := uniquePrefix(t.weekdays, key); ok {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// uniquePrefix finds the entry whose names start with prefix. Several names
// of the same entry may match; names of different entries make it ambiguous.
func uniquePrefix(names []named, prefix string) (Entry, bool) {
	var found Entry
	matched := false
	for _, nm := range names {
		if !strings.HasPrefix(nm.key, prefix) {
			continue
		}
		if matched && nm.entry.Value != found.Value {
			return Entry{}, false
		}
		found = nm.entry
		matched = true
	}
	return found, matched
}

// OrdinalSuffixes returns the folded ordinal suffixes of all compiled locales
func (v *Vocabulary) OrdinalSuffixes() []string {
	return append([]string(nil), v.suffixes...)
}

// Apostrophes returns the glyphs that may introduce an abbreviated year
func (v *Vocabulary) Apostrophes() []rune {
	return append([]rune(nil), v.apostrophes...)
}

// FieldOrder returns the primary locale's conventional order, e.g. "mdy"
func (v *Vocabulary) FieldOrder() string {
	return v.fieldOrder
}

// Tag returns the primary locale tag
func (v *Vocabulary) Tag() string {
	if len(v.tables) == 0 {
		return ""
	}
	return v.tables[0].tag
}

// Fold normalizes a word for lookup: NFC composition, full case folding,
// dots removed ("a.m." -> "am"). Diacritics are kept.
func Fold(word string) string {
	word = norm.NFC.String(word)
	word = cases.Fold().String(word)
	return strings.ReplaceAll(word, ".", "")
}
