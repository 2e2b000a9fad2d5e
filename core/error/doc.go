// Package error provides the structured error type used across dtparse.
//
// Package: error
// Title: dtparse Error Handling
// Description: Coded errors with severity, operation and details. The
//              parser reports why an input was rejected through these codes
//              while its primary API stays a plain (Result, bool).
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
//	import dterror "github.com/msto63/dtparse/core/error"
//
//	err := dterror.New("unknown word").
//		WithCode(dterror.CodeUnknownWord).
//		WithOperation("datetime.Parse").
//		WithDetail("word", "festival")
//
//	if dterror.HasCode(err, dterror.CodeUnknownWord) {
//		// ...
//	}
package error
