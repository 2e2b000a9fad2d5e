// File: yearext.go
// Title: Two Digit Year Extension
// Description: Policies that turn a two digit year into a full year. All
//              policies are pure values without clock access.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package datetime

import (
	"fmt"
	"strconv"
	"strings"

	dterror "github.com/msto63/dtparse/core/error"
)

// YearExtension maps a year written with one or two digits (0-99) to a
// full year
type YearExtension interface {
	ExtendYear(year int) int
}

// YearExtensionFunc adapts a function to YearExtension
type YearExtensionFunc func(year int) int

// ExtendYear calls f(year)
func (f YearExtensionFunc) ExtendYear(year int) int {
	return f(year)
}

// NoYearExtension returns the year unchanged
type NoYearExtension struct{}

// ExtendYear returns year
func (NoYearExtension) ExtendYear(year int) int {
	return year
}

// String names the policy
func (NoYearExtension) String() string {
	return "none"
}

// CenturyWindow places a two digit year in the hundred year window
// [Pivot-50, Pivot+49]
type CenturyWindow struct {
	Pivot int
}

// Window presets
var (
	// Century1900 maps 0-99 to 1900-1999
	Century1900 = CenturyWindow{Pivot: 1950}

	// Century2000 maps 0-99 to 2000-2099
	Century2000 = CenturyWindow{Pivot: 2050}

	// POSIXWindow maps 69-99 to 1969-1999 and 0-68 to 2000-2068
	POSIXWindow = CenturyWindow{Pivot: 2019}
)

// ExtendYear returns the year of the window ending in the given two digits.
// Years outside 0-99 are returned unchanged.
func (w CenturyWindow) ExtendYear(year int) int {
	if year < 0 || year > 99 {
		return year
	}
	start := w.Pivot - 50
	y := start - mod(start, 100) + year
	if y < start {
		y += 100
	}
	return y
}

// String names the policy
func (w CenturyWindow) String() string {
	switch w {
	case Century1900:
		return "1900"
	case Century2000:
		return "2000"
	case POSIXWindow:
		return "posix"
	default:
		return fmt.Sprintf("window:%d", w.Pivot)
	}
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ParseYearExtension parses a policy name: "none", "1900", "2000",
// "posix" or "window:<pivot>". An empty name selects POSIXWindow.
func ParseYearExtension(name string) (YearExtension, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "posix":
		return POSIXWindow, nil
	case "none":
		return NoYearExtension{}, nil
	case "1900":
		return Century1900, nil
	case "2000":
		return Century2000, nil
	}

	if pivot, ok := strings.CutPrefix(name, "window:"); ok {
		p, err := strconv.Atoi(pivot)
		if err == nil && p >= 50 && p <= 9949 {
			return CenturyWindow{Pivot: p}, nil
		}
	}
	return nil, dterror.New("unknown year extension").
		WithCode(dterror.CodeInvalidInput).
		WithOperation("datetime.ParseYearExtension").
		WithDetail("name", name)
}
