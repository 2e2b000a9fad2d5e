// File: parser.go
// Title: Date/Time Parser
// Description: Configuration and public entry points of the free-form
//              date/time parser. A Parser is built once from Options and is
//              then immutable; all per-call state lives in the resolver.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package datetime

import (
	"strings"
	"time"

	dterror "github.com/msto63/dtparse/core/error"
	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/datetime/locale"
)

// Options configures a Parser. The zero value is usable.
type Options struct {
	// Locale is a BCP 47 tag; empty selects en-US
	Locale string

	// FieldOrder breaks ties between ambiguous numbers. Partial orders are
	// completed by NewFieldOrder. Empty selects the locale's conventional
	// order.
	FieldOrder []Field

	// YearExtension expands one and two digit years; nil selects POSIXWindow
	YearExtension YearExtension

	// DefaultYear is used when the input names no year; 0 selects the
	// current year at construction time
	DefaultYear int

	// AssumedOffset is the UTC offset in minutes for inputs without one
	AssumedOffset int

	// StrictLocale disables the fallback to the other registered locales
	StrictLocale bool

	// Registry supplies the locales; nil selects the bundled registry
	Registry *locale.Registry

	// Logger receives rejected inputs at debug level; nil selects the
	// package default logger
	Logger *dtlog.Logger
}

// Parser converts free-form text into a Result. It is safe for concurrent
// use.
type Parser struct {
	vocab         *locale.Vocabulary
	lexer         *Lexer
	order         []Field
	yearExt       YearExtension
	defaultYear   int
	assumedOffset int
	logger        *dtlog.Logger
}

// New creates a parser
func New(opts Options) (*Parser, error) {
	reg := opts.Registry
	if reg == nil {
		reg = locale.Default()
	}
	tag := opts.Locale
	if tag == "" {
		tag = locale.DefaultTag
	}

	vocab, err := reg.Vocabulary(tag, opts.StrictLocale)
	if err != nil {
		return nil, dterror.Wrap(err, "create parser").WithOperation("datetime.New")
	}

	if opts.AssumedOffset <= -24*60 || opts.AssumedOffset >= 24*60 {
		return nil, dterror.New("assumed offset out of range").
			WithCode(dterror.CodeInvalidInput).
			WithOperation("datetime.New").
			WithDetail("offset", opts.AssumedOffset)
	}
	if opts.DefaultYear < 0 || opts.DefaultYear > maxYear {
		return nil, dterror.New("default year out of range").
			WithCode(dterror.CodeInvalidInput).
			WithOperation("datetime.New").
			WithDetail("year", opts.DefaultYear)
	}

	p := &Parser{
		vocab: vocab,
		lexer: NewLexer(LexerConfig{
			OrdinalSuffixes: vocab.OrdinalSuffixes(),
			Apostrophes:     vocab.Apostrophes(),
		}),
		yearExt:       opts.YearExtension,
		defaultYear:   opts.DefaultYear,
		assumedOffset: opts.AssumedOffset,
		logger:        opts.Logger,
	}

	switch {
	case len(opts.FieldOrder) > 0:
		p.order = NewFieldOrder(opts.FieldOrder...)
	case vocab.FieldOrder() != "":
		p.order, _ = ParseFieldOrder(vocab.FieldOrder())
	default:
		p.order = NewFieldOrder()
	}
	if p.yearExt == nil {
		p.yearExt = POSIXWindow
	}
	if p.defaultYear == 0 {
		p.defaultYear = time.Now().Year()
	}
	if p.logger == nil {
		p.logger = dtlog.GetDefault()
	}
	p.logger = p.logger.WithField("component", "datetime").WithField("locale", vocab.Tag())

	return p, nil
}

// Parse parses text. The boolean is false when the text cannot be
// interpreted; no partial result is ever returned.
func (p *Parser) Parse(text string) (Result, bool) {
	r, err := p.ParseDetailed(text)
	return r, err == nil
}

// ParseDetailed parses text and explains a failure with a coded error
func (p *Parser) ParseDetailed(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, p.reject(text, &parseError{code: dterror.CodeEmptyInput, msg: "empty input", pos: 0})
	}

	res := newResolver(p, p.lexer.Tokenize(text))
	r, perr := res.run()
	if perr != nil {
		return Result{}, p.reject(text, perr)
	}
	if p.logger.IsLevelEnabled(dtlog.LevelTrace) {
		p.logger.Trace("parsed", dtlog.Fields{"input": text, "canonical": r.String()})
	}
	return r, nil
}

// Tokenize returns the token stream the parser sees for text
func (p *Parser) Tokenize(text string) []Token {
	return p.lexer.Tokenize(text)
}

// FieldOrder returns the effective field order, always three fields
func (p *Parser) FieldOrder() []Field {
	return append([]Field(nil), p.order...)
}

// Locale returns the primary locale tag
func (p *Parser) Locale() string {
	return p.vocab.Tag()
}

// YearExtension returns the configured policy
func (p *Parser) YearExtension() YearExtension {
	return p.yearExt
}

// DefaultYear returns the year used when the input names none
func (p *Parser) DefaultYear() int {
	return p.defaultYear
}

func (p *Parser) reject(text string, perr *parseError) error {
	err := dterror.New(perr.msg).
		WithCode(perr.code).
		WithOperation("datetime.Parse").
		WithDetail("pos", perr.pos)
	if perr.token != "" {
		err = err.WithDetail("token", perr.token)
	}

	if p.logger.IsLevelEnabled(dtlog.LevelDebug) {
		p.logger.Debug("parse rejected", dtlog.Fields{
			"code":  perr.code.String(),
			"pos":   perr.pos,
			"input": text,
		})
	}
	return err
}

// parseError is the internal failure value of the resolver
type parseError struct {
	code  dterror.Code
	msg   string
	pos   int
	token string
}
