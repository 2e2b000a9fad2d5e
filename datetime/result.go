// File: result.go
// Title: Parse Result
// Description: The normalized timestamp produced by a successful parse and
//              its canonical rendering.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package datetime

import (
	"encoding/json"
	"fmt"
	"time"
)

// Era is AD or BC
type Era int

const (
	AD Era = iota
	BC
)

// String returns "AD" or "BC"
func (e Era) String() string {
	if e == BC {
		return "BC"
	}
	return "AD"
}

// MarshalText encodes the era by name
func (e Era) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Result is a parsed timestamp. The fields hold the wall clock reading at
// Offset minutes east of UTC. Year is a magnitude; Era says on which side
// of year 1 it lies.
type Result struct {
	Era    Era
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	Offset int
}

// astronomicalYear numbers years without a gap: 1 BC is 0
func (r Result) astronomicalYear() int {
	if r.Era == BC {
		return 1 - r.Year
	}
	return r.Year
}

// Time returns the instant in a fixed zone of the result's offset
func (r Result) Time() time.Time {
	return time.Date(r.astronomicalYear(), time.Month(r.Month), r.Day,
		r.Hour, r.Minute, r.Second, 0, time.FixedZone(formatOffset(r.Offset), r.Offset*60))
}

// UTC returns the same instant with a zero offset
func (r Result) UTC() Result {
	return resultFromTime(r.Time().UTC(), 0)
}

// Equal reports whether both results denote the same instant
func (r Result) Equal(o Result) bool {
	return r.Time().Equal(o.Time())
}

// String returns the canonical form "AD 1997-07-16 18:20:00 +0000",
// rendered in UTC
func (r Result) String() string {
	u := r.UTC()
	return fmt.Sprintf("%s %04d-%02d-%02d %02d:%02d:%02d %s",
		u.Era, u.Year, u.Month, u.Day, u.Hour, u.Minute, u.Second, formatOffset(0))
}

// Local returns the wall clock reading in the result's own offset,
// e.g. "AD 1997-07-16 19:20:00 +0100"
func (r Result) Local() string {
	return fmt.Sprintf("%s %04d-%02d-%02d %02d:%02d:%02d %s",
		r.Era, r.Year, r.Month, r.Day, r.Hour, r.Minute, r.Second, formatOffset(r.Offset))
}

// MarshalJSON encodes the result with its canonical form
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Era       Era    `json:"era"`
		Year      int    `json:"year"`
		Month     int    `json:"month"`
		Day       int    `json:"day"`
		Hour      int    `json:"hour"`
		Minute    int    `json:"minute"`
		Second    int    `json:"second"`
		Offset    int    `json:"offset_minutes"`
		Canonical string `json:"canonical"`
	}{r.Era, r.Year, r.Month, r.Day, r.Hour, r.Minute, r.Second, r.Offset, r.String()})
}

func resultFromTime(t time.Time, offset int) Result {
	r := Result{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		Offset: offset,
	}
	if r.Year <= 0 {
		r.Era = BC
		r.Year = 1 - r.Year
	}
	return r
}

func formatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d%02d", sign, minutes/60, minutes%60)
}
