// File: registry.go
// Title: Locale Registry
// Description: Thread-safe registry of locales. Bundled locales are
//              embedded YAML; further locales can be loaded from YAML or
//              TOML files, the format being detected from the extension.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package locale

import (
	"bytes"
	"embed"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	dterror "github.com/msto63/dtparse/core/error"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var bundledFS embed.FS

// DefaultTag is the locale used when none is configured
const DefaultTag = "en-US"

// Registry holds locales keyed by normalized tag
type Registry struct {
	mu      sync.RWMutex
	locales map[string]*Locale
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{locales: make(map[string]*Locale)}
}

// NewBundledRegistry creates a registry holding the embedded locales
func NewBundledRegistry() (*Registry, error) {
	r := NewRegistry()
	entries, err := bundledFS.ReadDir("data")
	if err != nil {
		return nil, dterror.Wrap(err, "read bundled locales").WithCode(dterror.CodeInternal)
	}
	for _, e := range entries {
		data, err := bundledFS.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, dterror.Wrap(err, "read bundled locale").WithCode(dterror.CodeInternal)
		}
		l, err := Decode(data, FormatYAML)
		if err != nil {
			return nil, err
		}
		if err := r.Register(l); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry of bundled locales
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewBundledRegistry()
		if err != nil {
			panic("locale: bundled data is invalid: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// FileFormat identifies a locale file encoding
type FileFormat string

const (
	FormatYAML FileFormat = "yaml"
	FormatTOML FileFormat = "toml"
)

// DetectFormat returns the file format implied by the file extension
func DetectFormat(filename string) (FileFormat, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Decode parses locale data and validates it
func Decode(data []byte, format FileFormat) (*Locale, error) {
	var l Locale
	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&l)
	case FormatTOML:
		_, err = toml.Decode(string(data), &l)
	default:
		return nil, dterror.New("unsupported locale format").
			WithCode(dterror.CodeLocaleInvalid).
			WithDetail("format", string(format))
	}
	if err != nil {
		return nil, dterror.Wrap(err, "decode locale").
			WithCode(dterror.CodeLocaleInvalid).
			WithOperation("locale.Decode")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Register adds or replaces a locale
func (r *Registry) Register(l *Locale) error {
	if l == nil {
		return dterror.New("nil locale").WithCode(dterror.CodeLocaleInvalid)
	}
	if err := l.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locales[l.Tag] = l
	return nil
}

// LoadFile reads, validates and registers a locale file
func (r *Registry) LoadFile(filename string) (*Locale, error) {
	format, ok := DetectFormat(filename)
	if !ok {
		return nil, dterror.New("unsupported locale file extension").
			WithCode(dterror.CodeLocaleInvalid).
			WithOperation("locale.LoadFile").
			WithDetail("file", filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, dterror.Wrap(err, "read locale file").
			WithCode(dterror.CodeLocaleNotFound).
			WithOperation("locale.LoadFile").
			WithDetail("file", filename)
	}
	l, err := Decode(data, format)
	if err != nil {
		return nil, dterror.Wrap(err, "load "+filepath.Base(filename))
	}
	if err := r.Register(l); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadDir loads every YAML and TOML file in dir and returns the tags
func (r *Registry) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, dterror.Wrap(err, "read locale directory").
			WithCode(dterror.CodeLocaleNotFound).
			WithOperation("locale.LoadDir").
			WithDetail("dir", dir)
	}

	var tags []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := DetectFormat(e.Name()); !ok {
			continue
		}
		l, err := r.LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return tags, err
		}
		tags = append(tags, l.Tag)
	}
	return tags, nil
}

// Get returns the locale for tag. Lookup tries the exact tag, then
// aliases, then the bare language of the tag.
func (r *Registry) Get(tag string) (*Locale, error) {
	want, err := NormalizeTag(tag)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if l := r.find(want); l != nil {
		return l, nil
	}
	if base := baseLanguage(want); base != want {
		if l := r.find(base); l != nil {
			return l, nil
		}
	}
	return nil, dterror.New("locale not found").
		WithCode(dterror.CodeLocaleNotFound).
		WithOperation("locale.Get").
		WithDetail("locale", tag)
}

func (r *Registry) find(tag string) *Locale {
	if l, ok := r.locales[tag]; ok {
		return l
	}
	for _, k := range r.sortedTags() {
		for _, a := range r.locales[k].Aliases {
			if strings.EqualFold(a, tag) {
				return r.locales[k]
			}
		}
	}
	return nil
}

// Tags returns the registered tags in sorted order
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedTags()
}

func (r *Registry) sortedTags() []string {
	tags := make([]string, 0, len(r.locales))
	for t := range r.locales {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Locales returns the registered locales sorted by tag
func (r *Registry) Locales() []*Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Locale, 0, len(r.locales))
	for _, t := range r.sortedTags() {
		out = append(out, r.locales[t])
	}
	return out
}

// Clone returns an independent registry with the same locales
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for k, v := range r.locales {
		c.locales[k] = v
	}
	return c
}

// Match picks the best registered locale for an Accept-Language header.
// It returns "" when nothing matches.
func (r *Registry) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return ""
	}
	for _, t := range tags {
		if l, err := r.Get(t.String()); err == nil {
			return l.Tag
		}
	}
	return ""
}

// Vocabulary compiles the vocabulary for tag. Unless strict is set, all
// other registered locales are used as fallbacks in tag order.
func (r *Registry) Vocabulary(tag string, strict bool) (*Vocabulary, error) {
	primary, err := r.Get(tag)
	if err != nil {
		return nil, err
	}
	if strict {
		return Compile(primary), nil
	}

	var fallbacks []*Locale
	for _, l := range r.Locales() {
		if l.Tag != primary.Tag {
			fallbacks = append(fallbacks, l)
		}
	}
	return Compile(primary, fallbacks...), nil
}
