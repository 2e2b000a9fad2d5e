// File: lexer.go
// Title: Date/Time Lexical Analyzer
// Description: Scans free-form text into date/time tokens. Digits of any
//              script form numbers, letters of any script form words,
//              ordinal suffixes and apostrophe years are recognized in a
//              single left-to-right pass. The lexer never fails: unknown
//              characters become ERROR tokens.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package datetime

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/dtparse/datetime/locale"
)

// LexerConfig holds the locale dependent lexer settings
type LexerConfig struct {
	// OrdinalSuffixes are the folded suffixes turning digits into an ordinal day
	OrdinalSuffixes []string

	// Apostrophes are the glyphs that may introduce a two digit year
	Apostrophes []rune
}

// DefaultLexerConfig returns the English settings
func DefaultLexerConfig() LexerConfig {
	return LexerConfig{
		OrdinalSuffixes: []string{"st", "nd", "rd", "th"},
		Apostrophes:     []rune{'\'', '‘', '’'},
	}
}

// Lexer converts text into tokens. A Lexer is immutable and may be shared.
type Lexer struct {
	suffixes    map[string]bool
	apostrophes map[rune]bool
}

// NewLexer creates a lexer for the given configuration
func NewLexer(cfg LexerConfig) *Lexer {
	l := &Lexer{
		suffixes:    make(map[string]bool, len(cfg.OrdinalSuffixes)),
		apostrophes: make(map[rune]bool, len(cfg.Apostrophes)),
	}
	for _, s := range cfg.OrdinalSuffixes {
		if s = locale.Fold(s); s != "" {
			l.suffixes[s] = true
		}
	}
	for _, r := range cfg.Apostrophes {
		l.apostrophes[r] = true
	}
	return l
}

var defaultLexer = NewLexer(DefaultLexerConfig())

// Tokenize scans text with the English lexer settings
func Tokenize(text string) []Token {
	return defaultLexer.Tokenize(text)
}

// Tokenize scans text into tokens
func (l *Lexer) Tokenize(text string) []Token {
	s := &scanner{lexer: l, input: text}
	s.readChar()

	var tokens []Token
	for s.ch != eof {
		tokens = append(tokens, s.next())
	}
	return tokens
}

const eof = -1

// scanner holds the per-call scanning state
type scanner struct {
	lexer    *Lexer
	input    string
	position int  // offset of ch
	readPos  int  // offset after ch
	ch       rune // current character or eof
}

func (s *scanner) readChar() {
	if s.readPos >= len(s.input) {
		s.position = len(s.input)
		s.ch = eof
		return
	}
	r, w := utf8.DecodeRuneInString(s.input[s.readPos:])
	s.position = s.readPos
	s.readPos += w
	s.ch = r
}

func (s *scanner) peekChar() rune {
	if s.readPos >= len(s.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.readPos:])
	return r
}

func (s *scanner) next() Token {
	pos := s.position

	switch {
	case unicode.IsDigit(s.ch):
		return s.readNumber()
	case isLetter(s.ch):
		text := s.readWord()
		return Token{Type: TokenWord, Text: text, Pos: pos}
	case unicode.IsSpace(s.ch):
		for unicode.IsSpace(s.ch) {
			s.readChar()
		}
		return Token{Type: TokenSpace, Text: s.input[pos:s.position], Pos: pos}
	case s.lexer.apostrophes[s.ch]:
		return s.readAposYear()
	case isPunctuation(s.ch):
		ch := s.ch
		s.readChar()
		return Token{Type: TokenPunctuation, Text: string(ch), Pos: pos}
	default:
		ch := s.ch
		s.readChar()
		return Token{Type: TokenError, Text: string(ch), Pos: pos}
	}
}

// readNumber reads a digit run and an optional ordinal suffix
func (s *scanner) readNumber() Token {
	pos := s.position
	value, digits, overflow := 0, 0, false
	for unicode.IsDigit(s.ch) {
		d := digitValue(s.ch)
		if value > (math.MaxInt-d)/10 {
			overflow = true
		} else {
			value = value*10 + d
		}
		digits++
		s.readChar()
	}
	end := s.position
	if overflow {
		return Token{Type: TokenError, Text: s.input[pos:end], Pos: pos}
	}

	if isLetter(s.ch) {
		// Look at the letter run without consuming it unless it is a suffix.
		save := *s
		suffix := s.readWord()
		if s.lexer.suffixes[locale.Fold(suffix)] {
			return Token{Type: TokenOrdinalDay, Text: s.input[pos:s.position], Value: value, Digits: digits, Pos: pos}
		}
		*s = save
	}
	return Token{Type: TokenNumber, Text: s.input[pos:end], Value: value, Digits: digits, Pos: pos}
}

// readAposYear reads '92 style years. A glyph not followed by exactly one
// or two digits is an error token.
func (s *scanner) readAposYear() Token {
	pos := s.position
	s.readChar()

	save := *s
	value, digits := 0, 0
	for unicode.IsDigit(s.ch) && digits < 3 {
		value = value*10 + digitValue(s.ch)
		digits++
		s.readChar()
	}
	if digits == 0 || digits > 2 {
		*s = save
		return Token{Type: TokenError, Text: s.input[pos:save.position], Pos: pos}
	}
	return Token{Type: TokenAposYear, Text: s.input[pos:s.position], Value: value, Digits: digits, Pos: pos}
}

func (s *scanner) readWord() string {
	start := s.position
	for isLetter(s.ch) || (s.position > start && unicode.Is(unicode.Mn, s.ch)) {
		s.readChar()
	}
	return s.input[start:s.position]
}

func isLetter(r rune) bool {
	return r != eof && unicode.IsLetter(r)
}

func isPunctuation(r rune) bool {
	return r != eof && strings.ContainsRune("-/.:+,;", r)
}

// digitValue returns the numeric value of a decimal digit of any script.
// Unicode allocates every decimal digit set as ten consecutive code points
// starting at zero.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	for _, rg := range unicode.Nd.R16 {
		if rune(rg.Lo) <= r && r <= rune(rg.Hi) {
			return int((r-rune(rg.Lo))/rune(rg.Stride)) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if rune(rg.Lo) <= r && r <= rune(rg.Hi) {
			return int((r-rune(rg.Lo))/rune(rg.Stride)) % 10
		}
	}
	return 0
}
