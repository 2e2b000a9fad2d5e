// Package config loads the dtparse application configuration.
//
// Package: config
// Title: dtparse Configuration
// Description: TOML or YAML configuration with defaults and DTPARSE_*
//              environment overrides for the parser, locale directory,
//              HTTP server and logger.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Example file:
//
//	[parser]
//	locale = "de"
//	field_order = "dmy"
//	year_extension = "1900"
//	assumed_offset = "+01:00"
//
//	[locales]
//	dir = "$HOME/.config/dtparse/locales"
//	watch = true
//
//	[server]
//	port = 8080
//	read_timeout = "5s"
package config
