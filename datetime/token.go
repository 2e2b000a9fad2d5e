// File: token.go
// Title: Date/Time Tokens
// Description: Closed set of token types produced by the lexer and the
//              immutable Token value carrying text, decoded value and
//              position.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package datetime

import "fmt"

// TokenType classifies a lexical unit
type TokenType int

const (
	TokenNumber      TokenType = iota // 1997, ٢٠٢٤
	TokenWord                         // Jan, März, a
	TokenPunctuation                  // - / . : + , ;
	TokenSpace                        // run of whitespace
	TokenAposYear                     // '92
	TokenOrdinalDay                   // 1st, 3e, 2º
	TokenError                        // anything else
)

// String returns the name of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenNumber:
		return "NUMBER"
	case TokenWord:
		return "WORD"
	case TokenPunctuation:
		return "PUNCTUATION"
	case TokenSpace:
		return "SPACE"
	case TokenAposYear:
		return "APOS_YEAR"
	case TokenOrdinalDay:
		return "ORDINAL_DAY"
	case TokenError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the type by name
func (tt TokenType) MarshalText() ([]byte, error) {
	return []byte(tt.String()), nil
}

// Token is a classified lexical unit
type Token struct {
	Type   TokenType `json:"type"`
	Text   string    `json:"text"`
	Value  int       `json:"value,omitempty"`  // decoded digits, see HasValue
	Digits int       `json:"digits,omitempty"` // number of digits in Value
	Pos    int       `json:"pos"`              // byte offset in the input
}

// HasValue reports whether Value carries a decoded number
func (t Token) HasValue() bool {
	switch t.Type {
	case TokenNumber, TokenAposYear, TokenOrdinalDay:
		return true
	default:
		return false
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.HasValue() {
		return fmt.Sprintf("%s(%q=%d)", t.Type, t.Text, t.Value)
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

func (t Token) isPunct(r rune) bool {
	return t.Type == TokenPunctuation && t.Text == string(r)
}
