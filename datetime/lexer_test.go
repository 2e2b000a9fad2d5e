// File: lexer_test.go
// Title: Date/Time Lexer Unit Tests
// Description: Tests for token classification, values, positions and the
//              handling of ordinal suffixes, apostrophe years and
//              non-ASCII input.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package datetime

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Integer",
			input: "1",
			expected: []Token{
				{Type: TokenNumber, Text: "1", Value: 1, Digits: 1, Pos: 0},
			},
		},
		{
			name:  "ASCII word",
			input: "abc",
			expected: []Token{
				{Type: TokenWord, Text: "abc", Pos: 0},
			},
		},
		{
			name:  "Latin-1 word",
			input: "Mär",
			expected: []Token{
				{Type: TokenWord, Text: "Mär", Pos: 0},
			},
		},
		{
			name:  "Mixed expression",
			input: "Jan 1st, '92 19:20",
			expected: []Token{
				{Type: TokenWord, Text: "Jan", Pos: 0},
				{Type: TokenSpace, Text: " ", Pos: 3},
				{Type: TokenOrdinalDay, Text: "1st", Value: 1, Digits: 1, Pos: 4},
				{Type: TokenPunctuation, Text: ",", Pos: 7},
				{Type: TokenSpace, Text: " ", Pos: 8},
				{Type: TokenAposYear, Text: "'92", Value: 92, Digits: 2, Pos: 9},
				{Type: TokenSpace, Text: " ", Pos: 12},
				{Type: TokenNumber, Text: "19", Value: 19, Digits: 2, Pos: 13},
				{Type: TokenPunctuation, Text: ":", Pos: 15},
				{Type: TokenNumber, Text: "20", Value: 20, Digits: 2, Pos: 16},
			},
		},
		{
			name:  "Ordinal suffix is case insensitive",
			input: "28TH",
			expected: []Token{
				{Type: TokenOrdinalDay, Text: "28TH", Value: 28, Digits: 2, Pos: 0},
			},
		},
		{
			name:  "Letters that are not a suffix",
			input: "1stx",
			expected: []Token{
				{Type: TokenNumber, Text: "1", Value: 1, Digits: 1, Pos: 0},
				{Type: TokenWord, Text: "stx", Pos: 1},
			},
		},
		{
			name:  "ISO date and time separator",
			input: "16T19",
			expected: []Token{
				{Type: TokenNumber, Text: "16", Value: 16, Digits: 2, Pos: 0},
				{Type: TokenWord, Text: "T", Pos: 2},
				{Type: TokenNumber, Text: "19", Value: 19, Digits: 2, Pos: 3},
			},
		},
		{
			name:  "Apostrophe before three digits",
			input: "'123",
			expected: []Token{
				{Type: TokenError, Text: "'", Pos: 0},
				{Type: TokenNumber, Text: "123", Value: 123, Digits: 3, Pos: 1},
			},
		},
		{
			name:  "Lone apostrophe",
			input: "o'clock",
			expected: []Token{
				{Type: TokenWord, Text: "o", Pos: 0},
				{Type: TokenError, Text: "'", Pos: 1},
				{Type: TokenWord, Text: "clock", Pos: 2},
			},
		},
		{
			name:  "Typographic apostrophe",
			input: "’76",
			expected: []Token{
				{Type: TokenAposYear, Text: "’76", Value: 76, Digits: 2, Pos: 0},
			},
		},
		{
			name:  "Arabic-Indic digits",
			input: "٢٠٢٤",
			expected: []Token{
				{Type: TokenNumber, Text: "٢٠٢٤", Value: 2024, Digits: 4, Pos: 0},
			},
		},
		{
			name:  "Overflow",
			input: "99999999999999999999",
			expected: []Token{
				{Type: TokenError, Text: "99999999999999999999", Pos: 0},
			},
		},
		{
			name:  "Punctuation and unknown characters",
			input: "+-/.:,;#",
			expected: []Token{
				{Type: TokenPunctuation, Text: "+", Pos: 0},
				{Type: TokenPunctuation, Text: "-", Pos: 1},
				{Type: TokenPunctuation, Text: "/", Pos: 2},
				{Type: TokenPunctuation, Text: ".", Pos: 3},
				{Type: TokenPunctuation, Text: ":", Pos: 4},
				{Type: TokenPunctuation, Text: ",", Pos: 5},
				{Type: TokenPunctuation, Text: ";", Pos: 6},
				{Type: TokenError, Text: "#", Pos: 7},
			},
		},
		{
			name:  "Whitespace run",
			input: "a \t\n b",
			expected: []Token{
				{Type: TokenWord, Text: "a", Pos: 0},
				{Type: TokenSpace, Text: " \t\n ", Pos: 1},
				{Type: TokenWord, Text: "b", Pos: 5},
			},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d = %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerSuffixes(t *testing.T) {
	l := NewLexer(LexerConfig{OrdinalSuffixes: []string{"er", "º"}})

	got := l.Tokenize("1er 2º")
	if len(got) != 3 || got[0].Type != TokenOrdinalDay || got[2].Type != TokenOrdinalDay {
		t.Fatalf("Tokenize() = %v", got)
	}
	if got[2].Value != 2 {
		t.Errorf("value = %d, want 2", got[2].Value)
	}

	// Without apostrophes configured the quote is an error token
	got = l.Tokenize("'92")
	if got[0].Type != TokenError {
		t.Errorf("Tokenize('92)[0] = %v, want ERROR", got[0])
	}

	got = Tokenize("1er")
	if len(got) != 2 || got[0].Type != TokenNumber || got[1].Type != TokenWord {
		t.Errorf("default Tokenize(1er) = %v", got)
	}
}

func TestCombiningMarks(t *testing.T) {
	got := Tokenize("Ma\u0308rz")
	if len(got) != 1 || got[0].Type != TokenWord {
		t.Fatalf("Tokenize() = %v, want one word", got)
	}
}

func TestTokenHasValue(t *testing.T) {
	tests := []struct {
		typ  TokenType
		want bool
	}{
		{TokenNumber, true},
		{TokenAposYear, true},
		{TokenOrdinalDay, true},
		{TokenWord, false},
		{TokenPunctuation, false},
		{TokenSpace, false},
		{TokenError, false},
	}
	for _, tt := range tests {
		if got := (Token{Type: tt.typ}).HasValue(); got != tt.want {
			t.Errorf("%s.HasValue() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
