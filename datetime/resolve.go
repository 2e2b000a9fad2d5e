// File: resolve.go
// Title: Token Resolution
// Description: The per-call state machine of the parser. A single pass over
//              the tokens binds words, ordinals, apostrophe years, times,
//              offsets and German day markers; the remaining numbers are
//              then assigned by magnitude and field order. Defaults are
//              applied and the result validated.
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
	"unicode/utf8"

	dterror "github.com/msto63/dtparse/core/error"
	"github.com/msto63/dtparse/datetime/locale"
)

const (
	minYear = 1
	maxYear = 9999
)

// isoOrder applies to inputs led by a dashed four digit year
var isoOrder = []Field{FieldYear, FieldMonth, FieldDay}

// lastKind records what the previous significant token was
type lastKind int

const (
	lastNone lastKind = iota
	lastDateNumber
	lastTime
	lastMeridiem
	lastZone
	lastOther
)

type dateNumber struct {
	tok     Token
	isoLead bool // four digits directly followed by '-'
}

// resolver holds the state of one parse call
type resolver struct {
	p    *Parser
	toks []Token
	pos  int

	value [3]int
	bound [3]bool

	era    Era
	eraSet bool

	hasTime              bool
	hour, minute, second int

	meridiem    int
	hasMeridiem bool
	meridiemTok Token

	offset    int
	hasOffset bool
	zone      bool

	numbers []dateNumber
	last    lastKind
}

func newResolver(p *Parser, toks []Token) *resolver {
	return &resolver{p: p, toks: toks}
}

func (r *resolver) run() (Result, *parseError) {
	for r.pos < len(r.toks) {
		if err := r.step(); err != nil {
			return Result{}, err
		}
	}
	return r.finish()
}

func (r *resolver) step() *parseError {
	t := r.toks[r.pos]
	switch t.Type {
	case TokenSpace:
		r.pos++
	case TokenError:
		return fail(dterror.CodeLexical, "unrecognized character", t)
	case TokenPunctuation:
		return r.punctuation(t)
	case TokenNumber:
		return r.number(t)
	case TokenAposYear:
		if err := r.bind(FieldYear, r.p.yearExt.ExtendYear(t.Value), t); err != nil {
			return err
		}
		r.last = lastOther
		r.pos++
	case TokenOrdinalDay:
		if err := r.bind(FieldDay, t.Value, t); err != nil {
			return err
		}
		r.last = lastOther
		r.pos++
	case TokenWord:
		return r.word(t)
	}
	return nil
}

func (r *resolver) punctuation(t Token) *parseError {
	switch t.Text {
	case "+", "-":
		if r.offsetAllowed() {
			next, minutes, found, err := r.scanOffset(r.pos)
			switch {
			case found && err == nil:
				r.offset, r.hasOffset = minutes, true
				r.pos = next
				r.last = lastOther
				return nil
			case found && t.Text == "+":
				return err
			}
		}
		if t.Text == "+" {
			return fail(dterror.CodeLeftover, "unexpected sign", t)
		}
	case ":":
		return fail(dterror.CodeLeftover, "unexpected colon", t)
	}
	r.pos++
	return nil
}

func (r *resolver) offsetAllowed() bool {
	if r.hasOffset {
		return false
	}
	return r.last == lastTime || r.last == lastMeridiem || r.last == lastZone
}

// scanOffset reads [+-][space](HHMM | HH[(:|space)MM]) starting at the sign.
// found reports whether the tokens have the shape of an offset at all.
func (r *resolver) scanOffset(i int) (next, minutes int, found bool, err *parseError) {
	sign := 1
	if r.toks[i].Text == "-" {
		sign = -1
	}
	j := i + 1
	if r.typeAt(j) == TokenSpace {
		j++
	}
	if r.typeAt(j) != TokenNumber {
		return i, 0, false, nil
	}

	h := r.toks[j]
	var hh, mm int
	switch {
	case h.Digits == 4:
		hh, mm = h.Value/100, h.Value%100
		j++
	case h.Digits <= 2:
		hh = h.Value
		j++
		if (r.isPunctAt(j, ':') || r.typeAt(j) == TokenSpace) && r.typeAt(j+1) == TokenNumber && r.toks[j+1].Digits == 2 {
			mm = r.toks[j+1].Value
			j += 2
		} else if r.isPunctAt(j, ':') {
			return j, 0, true, fail(dterror.CodeOutOfRange, "dangling colon in offset", r.toks[j])
		}
	default:
		return i, 0, false, nil
	}

	if hh > 23 || mm > 59 {
		return j, 0, true, fail(dterror.CodeOutOfRange, "offset out of range", h)
	}
	return j, sign * (hh*60 + mm), true, nil
}

func (r *resolver) number(t Token) *parseError {
	j := r.nextNonSpace(r.pos + 1)
	if r.isPunctAt(j, ':') {
		return r.clock(t)
	}

	if e, _, ok := r.lookupAt(j); ok && e.Kind == locale.KindMeridiem {
		// A bare hour such as "8 PM"
		if t.Digits > 2 {
			return fail(dterror.CodeOutOfRange, "hour out of range", t)
		}
		if err := r.setTime(t, t.Value, 0, 0); err != nil {
			return err
		}
		r.pos++
		return nil
	}

	// German "3. Aug." marks the day with a period
	if t.Digits <= 2 && t.Value >= 1 && t.Value <= 31 && !r.bound[FieldDay] &&
		r.isPunctAt(r.pos+1, '.') && r.typeAt(r.pos+2) == TokenSpace && !r.isPunctAt(r.pos-1, '.') {
		if err := r.bind(FieldDay, t.Value, t); err != nil {
			return err
		}
		r.pos += 2
		r.last = lastOther
		return nil
	}

	r.numbers = append(r.numbers, dateNumber{
		tok:     t,
		isoLead: t.Digits == 4 && r.isPunctAt(r.pos+1, '-'),
	})
	r.last = lastDateNumber
	r.pos++
	return nil
}

// clock reads H:M[:S[.fraction]] with optional spaces around the colons
func (r *resolver) clock(t Token) *parseError {
	parts := []Token{t}
	i := r.pos + 1
	for len(parts) < 3 {
		j := r.nextNonSpace(i)
		if !r.isPunctAt(j, ':') {
			break
		}
		k := r.nextNonSpace(j + 1)
		if r.typeAt(k) != TokenNumber {
			return fail(dterror.CodeOutOfRange, "dangling colon", r.toks[j])
		}
		parts = append(parts, r.toks[k])
		i = k + 1
	}
	for _, p := range parts {
		if p.Digits > 2 {
			return fail(dterror.CodeOutOfRange, "malformed time", p)
		}
	}

	second := 0
	if len(parts) == 3 {
		second = parts[2].Value
		// Fractional seconds are accepted and truncated
		if r.isPunctAt(i, '.') && r.typeAt(i+1) == TokenNumber {
			i += 2
		}
	}
	if err := r.setTime(t, parts[0].Value, parts[1].Value, second); err != nil {
		return err
	}
	r.pos = i
	return nil
}

func (r *resolver) setTime(t Token, hour, minute, second int) *parseError {
	if r.hasTime {
		return fail(dterror.CodeLeftover, "second time of day", t)
	}
	if hour > 24 || minute > 59 || second > 59 || (hour == 24 && (minute != 0 || second != 0)) {
		return fail(dterror.CodeOutOfRange, "time out of range", t)
	}
	r.hour, r.minute, r.second = hour, minute, second
	r.hasTime = true
	r.last = lastTime
	return nil
}

func (r *resolver) word(t Token) *parseError {
	// "T" between a date and a time, as in 1997-07-16T19:20
	if (t.Text == "T" || t.Text == "t") && r.last == lastDateNumber && r.typeAt(r.pos+1) == TokenNumber {
		r.pos++
		return nil
	}

	e, next, ok := r.lookupAt(r.pos)
	if !ok {
		text, _ := r.joinDotted(r.pos)
		return fail(dterror.CodeUnknownWord, "unknown word", Token{Type: TokenWord, Text: text, Pos: t.Pos})
	}

	switch e.Kind {
	case locale.KindWeekday:
		// ignored
	case locale.KindMonth:
		if err := r.bind(FieldMonth, e.Value, t); err != nil {
			return err
		}
		r.last = lastOther
	case locale.KindOrdinal:
		if err := r.bind(FieldDay, e.Value, t); err != nil {
			return err
		}
		r.last = lastOther
	case locale.KindMeridiem:
		if r.hasMeridiem {
			return fail(dterror.CodeLeftover, "second meridiem", t)
		}
		r.meridiem, r.hasMeridiem, r.meridiemTok = e.Value, true, t
		r.last = lastMeridiem
	case locale.KindEra:
		if r.eraSet {
			return fail(dterror.CodeLeftover, "second era", t)
		}
		r.era, r.eraSet = AD, true
		if e.Value == locale.EraBC {
			r.era = BC
		}
		r.last = lastOther
	case locale.KindZone:
		if !r.hasTime {
			return fail(dterror.CodeLeftover, "zone without time", t)
		}
		r.zone = true
		r.last = lastZone
	}
	r.pos = next
	return nil
}

// lookupAt resolves the word starting at token i. Hyphenated chains such as
// "twenty-first" are tried longest first and accepted only as ordinals;
// dotted letters such as "a.m." are joined.
func (r *resolver) lookupAt(i int) (locale.Entry, int, bool) {
	if r.typeAt(i) != TokenWord {
		return locale.Entry{}, i, false
	}

	words := []string{r.toks[i].Text}
	for k := i + 1; r.isPunctAt(k, '-') && r.typeAt(k+1) == TokenWord; k += 2 {
		words = append(words, r.toks[k+1].Text)
	}
	for n := len(words); n >= 2; n-- {
		if e, ok := r.p.vocab.Lookup(strings.Join(words[:n], "-")); ok && e.Kind == locale.KindOrdinal {
			return e, i + 2*n - 1, true
		}
	}

	text, next := r.joinDotted(i)
	e, ok := r.p.vocab.Lookup(text)
	return e, next, ok
}

// joinDotted joins single letters separated by periods ("b.c.e." -> "bce").
// Other words are returned as is.
func (r *resolver) joinDotted(i int) (string, int) {
	if !r.singleLetterAt(i) || !r.isPunctAt(i+1, '.') {
		return r.toks[i].Text, i + 1
	}
	var b strings.Builder
	j := i
	for r.singleLetterAt(j) && r.isPunctAt(j+1, '.') {
		b.WriteString(r.toks[j].Text)
		j += 2
	}
	if r.singleLetterAt(j) {
		b.WriteString(r.toks[j].Text)
		j++
	}
	return b.String(), j
}

func (r *resolver) singleLetterAt(i int) bool {
	return r.typeAt(i) == TokenWord && utf8.RuneCountInString(r.toks[i].Text) == 1
}

func (r *resolver) bind(f Field, v int, t Token) *parseError {
	if r.bound[f] {
		return fail(dterror.CodeLeftover, "duplicate "+strings.ToLower(f.String()), t)
	}
	r.value[f] = v
	r.bound[f] = true
	return nil
}

func (r *resolver) bindYear(t Token) *parseError {
	v := t.Value
	if t.Digits <= 2 {
		v = r.p.yearExt.ExtendYear(v)
	}
	return r.bind(FieldYear, v, t)
}

// resolveNumbers assigns the collected date numbers. Values that only fit
// one field are bound first; the rest fill the open fields in field order.
func (r *resolver) resolveNumbers() *parseError {
	order := r.p.order
	if len(r.numbers) > 0 && r.numbers[0].isoLead && order[0] != FieldYear {
		order = isoOrder
	}

	var ambiguous []Token
	for _, n := range r.numbers {
		t := n.tok
		switch {
		case t.Value == 0 || t.Value > 31 || t.Digits >= 3:
			if err := r.bindYear(t); err != nil {
				return err
			}
		case t.Value > 12 && !r.bound[FieldDay]:
			if err := r.bind(FieldDay, t.Value, t); err != nil {
				return err
			}
		default:
			ambiguous = append(ambiguous, t)
		}
	}

	for _, t := range ambiguous {
		placed := false
		for _, f := range order {
			if r.bound[f] || !fits(f, t.Value) {
				continue
			}
			var err *parseError
			if f == FieldYear {
				err = r.bindYear(t)
			} else {
				err = r.bind(f, t.Value, t)
			}
			if err != nil {
				return err
			}
			placed = true
			break
		}
		if !placed {
			return fail(dterror.CodeLeftover, "no field left for number", t)
		}
	}
	return nil
}

func fits(f Field, v int) bool {
	switch f {
	case FieldMonth:
		return v >= 1 && v <= 12
	case FieldDay:
		return v >= 1 && v <= 31
	default:
		return true
	}
}

func (r *resolver) finish() (Result, *parseError) {
	if err := r.resolveNumbers(); err != nil {
		return Result{}, err
	}

	if r.hasMeridiem {
		if !r.hasTime {
			return Result{}, fail(dterror.CodeLeftover, "meridiem without time", r.meridiemTok)
		}
		if r.hour > 12 {
			return Result{}, fail(dterror.CodeOutOfRange, "hour out of range for meridiem", r.meridiemTok)
		}
		if r.hour == 12 {
			r.hour = 0
		}
		r.hour += r.meridiem
	}

	if !r.hasTime && !r.bound[FieldDay] && !r.bound[FieldMonth] && !r.bound[FieldYear] {
		return Result{}, &parseError{code: dterror.CodeLeftover, msg: "no date or time found"}
	}

	res := Result{
		Era:    r.era,
		Year:   r.p.defaultYear,
		Month:  1,
		Day:    1,
		Hour:   r.hour,
		Minute: r.minute,
		Second: r.second,
		Offset: r.p.assumedOffset,
	}
	if r.bound[FieldYear] {
		res.Year = r.value[FieldYear]
	}
	if r.bound[FieldMonth] {
		res.Month = r.value[FieldMonth]
	}
	if r.bound[FieldDay] {
		res.Day = r.value[FieldDay]
	}
	switch {
	case r.hasOffset:
		res.Offset = r.offset
	case r.zone:
		res.Offset = 0
	}

	if res.Year < minYear || res.Year > maxYear {
		return Result{}, &parseError{code: dterror.CodeOutOfRange, msg: "year out of range"}
	}
	if res.Month < 1 || res.Month > 12 {
		return Result{}, &parseError{code: dterror.CodeOutOfRange, msg: "month out of range"}
	}
	if res.Day < 1 || res.Day > daysIn(res.Month, res.astronomicalYear()) {
		return Result{}, &parseError{code: dterror.CodeOutOfRange, msg: "day out of range"}
	}

	if res.Hour == 24 {
		res.Hour = 0
		res = resultFromTime(res.Time().AddDate(0, 0, 1), res.Offset)
		if res.Era == AD && res.Year > maxYear {
			return Result{}, &parseError{code: dterror.CodeOutOfRange, msg: "year out of range"}
		}
	}

	// The canonical form is rendered in UTC and must keep a four digit year
	if u := res.UTC(); u.Year > maxYear {
		return Result{}, &parseError{code: dterror.CodeOutOfRange, msg: "year out of range in UTC"}
	}
	return res, nil
}

// daysIn returns the length of month in the proleptic Gregorian calendar
func daysIn(month, astronomicalYear int) int {
	return time.Date(astronomicalYear, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (r *resolver) typeAt(i int) TokenType {
	if i < 0 || i >= len(r.toks) {
		return -1
	}
	return r.toks[i].Type
}

func (r *resolver) isPunctAt(i int, p rune) bool {
	return i >= 0 && i < len(r.toks) && r.toks[i].isPunct(p)
}

func (r *resolver) nextNonSpace(i int) int {
	for i < len(r.toks) && r.toks[i].Type == TokenSpace {
		i++
	}
	return i
}

func fail(code dterror.Code, msg string, t Token) *parseError {
	return &parseError{code: code, msg: msg, pos: t.Pos, token: t.Text}
}
