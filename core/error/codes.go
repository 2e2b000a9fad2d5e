// File: codes.go
// Title: Error Codes
// Description: Defines the error codes used by the parser, the locale
//              registry, configuration loading and the HTTP server, with
//              their category and HTTP status mapping.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package error

import "net/http"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Date/time parsing
	CodeEmptyInput  Code = "DATETIME_EMPTY_INPUT"
	CodeLexical     Code = "DATETIME_LEXICAL"
	CodeUnknownWord Code = "DATETIME_UNKNOWN_WORD"
	CodeOutOfRange  Code = "DATETIME_OUT_OF_RANGE"
	CodeLeftover    Code = "DATETIME_LEFTOVER"

	// Locale vocabulary
	CodeLocaleNotFound Code = "LOCALE_NOT_FOUND"
	CodeLocaleInvalid  Code = "LOCALE_INVALID"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Service
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeEmptyInput, CodeLexical, CodeUnknownWord, CodeOutOfRange, CodeLeftover,
		CodeLocaleNotFound, CodeLocaleInvalid,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeServiceUnavailable:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeEmptyInput, CodeLexical, CodeUnknownWord, CodeOutOfRange, CodeLeftover:
		return "datetime"
	case CodeLocaleNotFound, CodeLocaleInvalid:
		return "locale"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeServiceUnavailable:
		return "service"
	default:
		return "generic"
	}
}

// HTTPStatus returns the HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeLocaleNotFound:
		return http.StatusNotFound
	case CodeInvalidInput, CodeInvalidConfig:
		return http.StatusBadRequest
	case CodeEmptyInput, CodeLexical, CodeUnknownWord, CodeOutOfRange, CodeLeftover:
		return http.StatusUnprocessableEntity
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
