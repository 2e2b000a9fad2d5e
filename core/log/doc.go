// Package log provides structured logging for dtparse.
//
// Package: log
// Title: dtparse Structured Logging
// Description: Leveled, structured logger with JSON, text, console and
//              logfmt output. Used by the parser for rejected inputs and by
//              the server and CLI for operational messages.
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
//	import dtlog "github.com/msto63/dtparse/core/log"
//
//	logger := dtlog.NewWithConfig(dtlog.Config{Level: dtlog.LevelDebug, Format: dtlog.FormatConsole})
//	logger.WithField("component", "datetime").Debug("parse rejected", dtlog.Field("code", "DATETIME_UNKNOWN_WORD"))
package log
