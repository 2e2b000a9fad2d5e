// File: severity.go
// Title: Error Severity Levels
// Description: Severity classification for structured errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is expected, input-driven failure (unparseable text)
	SeverityLow Severity = iota

	// SeverityMedium affects a request but the process keeps serving
	SeverityMedium

	// SeverityHigh prevents a component from starting
	SeverityHigh

	// SeverityCritical makes the process unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeEmptyInput, CodeLexical, CodeUnknownWord, CodeOutOfRange, CodeLeftover,
		CodeInvalidInput, CodeNotFound, CodeLocaleNotFound:
		return SeverityLow
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeLocaleInvalid:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
