// File: field.go
// Title: Date Fields and Field Order
// Description: The closed set of date fields and the field order used to
//              break ties between ambiguous numbers.
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

	dterror "github.com/msto63/dtparse/core/error"
)

// Field is one of the three date fields
type Field int

const (
	FieldDay Field = iota
	FieldMonth
	FieldYear
)

// residualOrder fills the positions the caller left open, so a lone MONTH
// completes to MONTH YEAR DAY and a lone YEAR to YEAR MONTH DAY
var residualOrder = [3]Field{FieldYear, FieldMonth, FieldDay}

// String returns the field name
func (f Field) String() string {
	switch f {
	case FieldDay:
		return "DAY"
	case FieldMonth:
		return "MONTH"
	case FieldYear:
		return "YEAR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the field by name
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f Field) valid() bool {
	return f >= FieldDay && f <= FieldYear
}

// NewFieldOrder completes a partial order to exactly three fields. Given
// fields keep their position, duplicates and unknown values are dropped and
// the missing fields follow in YEAR, MONTH, DAY order.
func NewFieldOrder(fields ...Field) []Field {
	order := make([]Field, 0, 3)
	var seen [3]bool
	add := func(f Field) {
		if f.valid() && !seen[f] {
			seen[f] = true
			order = append(order, f)
		}
	}
	for _, f := range fields {
		add(f)
	}
	for _, f := range residualOrder {
		add(f)
	}
	return order
}

// ParseField parses "day", "month", "year" or their first letter
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "day":
		return FieldDay, nil
	case "m", "month":
		return FieldMonth, nil
	case "y", "year":
		return FieldYear, nil
	default:
		return 0, dterror.New("unknown date field").
			WithCode(dterror.CodeInvalidInput).
			WithOperation("datetime.ParseField").
			WithDetail("field", s)
	}
}

// ParseFieldOrder parses a compact order such as "dmy" or a comma separated
// list such as "day,month,year". Partial orders are completed by
// NewFieldOrder; an empty string yields nil.
func ParseFieldOrder(s string) ([]Field, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var parts []string
	if strings.ContainsAny(s, ", ") {
		parts = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	} else if _, err := ParseField(s); err == nil {
		parts = []string{s}
	} else {
		parts = strings.Split(s, "")
	}

	fields := make([]Field, 0, len(parts))
	for _, p := range parts {
		f, err := ParseField(p)
		if err != nil {
			return nil, dterror.Wrap(err, "invalid field order").
				WithOperation("datetime.ParseFieldOrder").
				WithDetail("order", s)
		}
		fields = append(fields, f)
	}
	return NewFieldOrder(fields...), nil
}

// fieldOrderString renders an order compactly, e.g. "dmy"
func fieldOrderString(order []Field) string {
	var b strings.Builder
	for _, f := range order {
		b.WriteByte(strings.ToLower(f.String())[0])
	}
	return b.String()
}
