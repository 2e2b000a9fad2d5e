// File: locale.go
// Title: Locale Word Tables
// Description: Defines the static per-locale vocabulary used by the date
//              parser: month and weekday names, ordinal day words, meridiem,
//              era and zone markers, ordinal suffixes and quote glyphs.
//              Locales are plain data decoded from YAML or TOML.
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

	dterror "github.com/msto63/dtparse/core/error"
	"golang.org/x/text/language"
)

// Locale holds the word tables of one language or regional variant
type Locale struct {
	Tag     string   `yaml:"tag" toml:"tag" json:"tag"`
	Name    string   `yaml:"name" toml:"name" json:"name"`
	Aliases []string `yaml:"aliases" toml:"aliases" json:"aliases,omitempty"`

	// FieldOrder is the conventional numeric date order as letters, e.g. "dmy"
	FieldOrder string `yaml:"field_order" toml:"field_order" json:"field_order,omitempty"`

	// Months holds twelve lists of names, January first
	Months [][]string `yaml:"months" toml:"months" json:"-"`

	// Weekdays holds seven lists of names, Monday first
	Weekdays [][]string `yaml:"weekdays" toml:"weekdays" json:"-"`

	// Ordinals holds up to 31 lists of ordinal words, day 1 first
	Ordinals [][]string `yaml:"ordinals" toml:"ordinals" json:"-"`

	AM []string `yaml:"am" toml:"am" json:"-"`
	PM []string `yaml:"pm" toml:"pm" json:"-"`
	BC []string `yaml:"bc" toml:"bc" json:"-"`
	AD []string `yaml:"ad" toml:"ad" json:"-"`

	// UTC lists zone words meaning offset zero
	UTC []string `yaml:"utc" toml:"utc" json:"-"`

	OrdinalSuffixes []string `yaml:"ordinal_suffixes" toml:"ordinal_suffixes" json:"-"`
	Apostrophes     []string `yaml:"apostrophes" toml:"apostrophes" json:"-"`
}

// Validate checks the table shapes and normalizes the tag
func (l *Locale) Validate() error {
	tag, err := NormalizeTag(l.Tag)
	if err != nil {
		return err
	}
	l.Tag = tag

	fail := func(msg string, detail interface{}) error {
		return dterror.New(msg).
			WithCode(dterror.CodeLocaleInvalid).
			WithOperation("locale.Validate").
			WithDetail("locale", l.Tag).
			WithDetail("value", detail)
	}

	if len(l.Months) != 0 && len(l.Months) != 12 {
		return fail("months must list 12 entries", len(l.Months))
	}
	if len(l.Weekdays) != 0 && len(l.Weekdays) != 7 {
		return fail("weekdays must list 7 entries", len(l.Weekdays))
	}
	if len(l.Ordinals) > 31 {
		return fail("ordinals must list at most 31 entries", len(l.Ordinals))
	}
	if l.FieldOrder != "" && !isFieldOrder(l.FieldOrder) {
		return fail("field_order must be a permutation of d, m and y", l.FieldOrder)
	}
	for _, a := range l.Apostrophes {
		if utf8.RuneCountInString(a) != 1 {
			return fail("apostrophes must be single characters", a)
		}
	}
	return nil
}

func isFieldOrder(s string) bool {
	s = strings.ToLower(s)
	if len(s) != 3 {
		return false
	}
	return strings.ContainsRune(s, 'd') && strings.ContainsRune(s, 'm') && strings.ContainsRune(s, 'y')
}

// NormalizeTag canonicalizes a BCP 47 tag ("en_us" -> "en-US")
func NormalizeTag(tag string) (string, error) {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return "", dterror.New("empty locale tag").
			WithCode(dterror.CodeLocaleInvalid).
			WithOperation("locale.NormalizeTag")
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", dterror.Wrap(err, "invalid locale tag").
			WithCode(dterror.CodeLocaleInvalid).
			WithOperation("locale.NormalizeTag").
			WithDetail("tag", tag)
	}
	return t.String(), nil
}

// baseLanguage returns the language subtag of a normalized tag
func baseLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	base, _ := t.Base()
	return base.String()
}
