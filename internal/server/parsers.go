// File: parsers.go
// Title: Parser Cache
// Description: Builds and caches one parser per locale and field order.
//              The locale registry behind the cache can be swapped at run
//              time; a swap drops every cached parser at once.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package server

import (
	"strings"
	"sync"
	"sync/atomic"

	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/datetime"
	"github.com/msto63/dtparse/datetime/locale"
)

// Parsers hands out parsers derived from a base set of options
type Parsers struct {
	base  datetime.Options
	state atomic.Pointer[parserState]
}

type parserState struct {
	registry *locale.Registry
	mu       sync.Mutex
	cache    map[string]*datetime.Parser
}

// NewParsers creates the cache. The base options are validated by building
// the default parser once; base.Registry is replaced by reg.
func NewParsers(base datetime.Options, reg *locale.Registry) (*Parsers, error) {
	if reg == nil {
		reg = locale.Default()
	}
	if base.Logger == nil {
		base.Logger = dtlog.GetDefault()
	}
	if base.Locale == "" {
		base.Locale = locale.DefaultTag
	}
	base.Registry = nil

	p := &Parsers{base: base}
	p.state.Store(&parserState{registry: reg, cache: make(map[string]*datetime.Parser)})

	if _, err := p.Get("", nil); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the parser for tag and order. An empty tag selects the base
// locale, a nil order the base field order. Tags are resolved against the
// registry first so aliases share one parser.
func (p *Parsers) Get(tag string, order []datetime.Field) (*datetime.Parser, error) {
	if tag == "" {
		tag = p.base.Locale
	}
	if order == nil {
		order = p.base.FieldOrder
	}

	st := p.state.Load()
	l, err := st.registry.Get(tag)
	if err != nil {
		return nil, err
	}
	tag = l.Tag
	if order != nil {
		order = datetime.NewFieldOrder(order...)
	}
	key := cacheKey(tag, order)

	st.mu.Lock()
	defer st.mu.Unlock()
	if parser, ok := st.cache[key]; ok {
		return parser, nil
	}

	opts := p.base
	opts.Locale = tag
	opts.FieldOrder = order
	opts.Registry = st.registry
	parser, err := datetime.New(opts)
	if err != nil {
		return nil, err
	}
	st.cache[key] = parser
	return parser, nil
}

// Registry returns the registry currently in use
func (p *Parsers) Registry() *locale.Registry {
	return p.state.Load().registry
}

// DefaultLocale returns the base locale tag
func (p *Parsers) DefaultLocale() string {
	return p.base.Locale
}

// Swap replaces the registry and drops all cached parsers
func (p *Parsers) Swap(reg *locale.Registry) {
	p.state.Store(&parserState{registry: reg, cache: make(map[string]*datetime.Parser)})
}

func cacheKey(tag string, order []datetime.Field) string {
	var b strings.Builder
	b.WriteString(tag)
	b.WriteByte('|')
	for _, f := range order {
		b.WriteString(f.String())
		b.WriteByte(',')
	}
	return b.String()
}
