// Package datetime parses free-form date and time expressions.
//
// Package: datetime
// Title: Free-Form Date/Time Parser
// Description: Converts loosely formatted text such as "Jan 1st 1900",
//              "25.12.'92" or "1997-07-16T19:20:00+01:00" into a normalized
//              timestamp, or rejects it. Ambiguous numbers are resolved by
//              magnitude first and by a configurable field order second;
//              month, weekday, ordinal, meridiem and era words come from the
//              locale vocabulary.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Usage:
//
//	p, err := datetime.New(datetime.Options{
//		Locale:        "en-GB",
//		YearExtension: datetime.Century1900,
//	})
//	if err != nil {
//		return err
//	}
//	if r, ok := p.Parse("Sun Nov 6 08:49:37 1994"); ok {
//		fmt.Println(r) // AD 1994-11-06 08:49:37 +0000
//	}
//
// Parsing is all or nothing. ParseDetailed reports why an input was
// rejected using the DATETIME_* codes of core/error.
package datetime
