// File: config.go
// Title: Application Configuration
// Description: Loads the dtparse configuration from a TOML or YAML file,
//              fills in defaults and applies DTPARSE_* environment
//              overrides. The parser section converts into datetime.Options.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	dterror "github.com/msto63/dtparse/core/error"
	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/datetime"
	"github.com/msto63/dtparse/datetime/locale"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable holding the config file path
const EnvConfig = "DTPARSE_CONFIG"

// Config holds the complete application configuration
type Config struct {
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Locales LocalesConfig `toml:"locales" yaml:"locales"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// ParserConfig holds the defaults for every parser the application builds
type ParserConfig struct {
	Locale        string `toml:"locale" yaml:"locale"`
	FieldOrder    string `toml:"field_order" yaml:"field_order"`
	YearExtension string `toml:"year_extension" yaml:"year_extension"`
	DefaultYear   int    `toml:"default_year" yaml:"default_year"`

	// AssumedOffset is written as "+01:00", "-0500" or "Z"
	AssumedOffset string `toml:"assumed_offset" yaml:"assumed_offset"`
	StrictLocale  bool   `toml:"strict_locale" yaml:"strict_locale"`
}

// LocalesConfig holds settings for external locale files
type LocalesConfig struct {
	Dir   string `toml:"dir" yaml:"dir"`
	Watch bool   `toml:"watch" yaml:"watch"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string   `toml:"host" yaml:"host"`
	Port            int      `toml:"port" yaml:"port"`
	ReadTimeout     Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
	AllowedOrigins  []string `toml:"allowed_origins" yaml:"allowed_origins"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Duration is a wrapper for time.Duration that supports TOML and YAML
// unmarshaling from strings such as "30s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows
// the file extension; anything other than .yaml or .yml is read as TOML.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dterror.Newf("config file not found: %s", path).
				WithCode(dterror.CodeMissingConfig).
				WithOperation("config.Load")
		}
		return nil, dterror.Wrap(err, "read config").
			WithCode(dterror.CodeConfigError).
			WithOperation("config.Load")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, dterror.Wrap(err, "failed to parse config").
			WithCode(dterror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.ApplyEnv()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the DTPARSE_CONFIG environment
// variable, falling back to the default locations
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		for _, p := range SearchPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, dterror.New("no config file found, set DTPARSE_CONFIG or create configs/dtparse.toml").
			WithCode(dterror.CodeMissingConfig).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// SearchPaths lists the files LoadFromEnv tries in order
func SearchPaths() []string {
	paths := []string{
		"./configs/dtparse.toml",
		"./configs/dtparse.yaml",
		"./dtparse.toml",
		"./dtparse.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "dtparse", "config.toml"),
			filepath.Join(home, ".config", "dtparse", "config.yaml"),
		)
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Parser
	if c.Parser.Locale == "" {
		c.Parser.Locale = locale.DefaultTag
	}
	if c.Parser.YearExtension == "" {
		c.Parser.YearExtension = "posix"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 10 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 5 * time.Second
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 64 << 10
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// ApplyEnv overrides settings from DTPARSE_* environment variables.
// Unparseable numeric values are ignored.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("DTPARSE_LOCALE"); ok && v != "" {
		c.Parser.Locale = v
	}
	if v, ok := os.LookupEnv("DTPARSE_FIELD_ORDER"); ok {
		c.Parser.FieldOrder = v
	}
	if v, ok := os.LookupEnv("DTPARSE_YEAR_EXTENSION"); ok && v != "" {
		c.Parser.YearExtension = v
	}
	if v, ok := os.LookupEnv("DTPARSE_DEFAULT_YEAR"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Parser.DefaultYear = n
		}
	}
	if v, ok := os.LookupEnv("DTPARSE_ASSUMED_OFFSET"); ok {
		c.Parser.AssumedOffset = v
	}
	if v, ok := os.LookupEnv("DTPARSE_STRICT_LOCALE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Parser.StrictLocale = b
		}
	}
	if v, ok := os.LookupEnv("DTPARSE_LOCALES_DIR"); ok {
		c.Locales.Dir = v
	}
	if v, ok := os.LookupEnv("DTPARSE_HOST"); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := os.LookupEnv("DTPARSE_PORT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
	if v, ok := os.LookupEnv("DTPARSE_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("DTPARSE_LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
}

// expandEnvVars expands environment variables in path settings
func (c *Config) expandEnvVars() {
	c.Locales.Dir = os.ExpandEnv(c.Locales.Dir)
}

// Validate checks every setting that can be checked without a registry
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}, err error) error {
		e := dterror.Newf("invalid %s", key)
		if err != nil {
			e = dterror.Wrap(err, fmt.Sprintf("invalid %s", key))
		}
		return e.WithCode(dterror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetails(map[string]interface{}{"key": key, "value": value})
	}

	if _, err := datetime.ParseFieldOrder(c.Parser.FieldOrder); err != nil {
		return invalid("parser.field_order", c.Parser.FieldOrder, err)
	}
	if _, err := datetime.ParseYearExtension(c.Parser.YearExtension); err != nil {
		return invalid("parser.year_extension", c.Parser.YearExtension, err)
	}
	if c.Parser.DefaultYear < 0 || c.Parser.DefaultYear > 9999 {
		return invalid("parser.default_year", c.Parser.DefaultYear, nil)
	}
	if _, err := ParseOffset(c.Parser.AssumedOffset); err != nil {
		return invalid("parser.assumed_offset", c.Parser.AssumedOffset, err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port, nil)
	}
	if c.Server.MaxBodyBytes < 0 {
		return invalid("server.max_body_bytes", c.Server.MaxBodyBytes, nil)
	}
	if _, err := dtlog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, err)
	}
	if _, err := dtlog.ParseFormat(c.Log.Format); err != nil {
		return invalid("log.format", c.Log.Format, err)
	}
	return nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ParserOptions converts the parser section into datetime.Options. A nil
// registry selects the bundled locales.
func (c *Config) ParserOptions(reg *locale.Registry, logger *dtlog.Logger) (datetime.Options, error) {
	order, err := datetime.ParseFieldOrder(c.Parser.FieldOrder)
	if err != nil {
		return datetime.Options{}, err
	}
	ext, err := datetime.ParseYearExtension(c.Parser.YearExtension)
	if err != nil {
		return datetime.Options{}, err
	}
	offset, err := ParseOffset(c.Parser.AssumedOffset)
	if err != nil {
		return datetime.Options{}, err
	}
	return datetime.Options{
		Locale:        c.Parser.Locale,
		FieldOrder:    order,
		YearExtension: ext,
		DefaultYear:   c.Parser.DefaultYear,
		AssumedOffset: offset,
		StrictLocale:  c.Parser.StrictLocale,
		Registry:      reg,
		Logger:        logger,
	}, nil
}

// LoggerConfig converts the log section into a logger configuration
func (c *Config) LoggerConfig() (dtlog.Config, error) {
	level, err := dtlog.ParseLevel(c.Log.Level)
	if err != nil {
		return dtlog.Config{}, err
	}
	format, err := dtlog.ParseFormat(c.Log.Format)
	if err != nil {
		return dtlog.Config{}, err
	}
	return dtlog.Config{Level: level, Format: format, Output: os.Stderr, Name: "dtparse"}, nil
}

// ParseOffset converts "+01:00", "-0500", "+02" or "Z" into minutes east
// of UTC. The empty string is UTC.
func ParseOffset(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "z") || strings.EqualFold(s, "utc") {
		return 0, nil
	}

	bad := func() error {
		return dterror.Newf("invalid UTC offset %q", s).
			WithCode(dterror.CodeInvalidInput).
			WithOperation("config.ParseOffset")
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, bad()
	}
	digits := strings.ReplaceAll(s[1:], ":", "")
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, bad()
		}
	}
	var hh, mm string
	switch len(digits) {
	case 2:
		hh, mm = digits, "00"
	case 4:
		hh, mm = digits[:2], digits[2:]
	default:
		return 0, bad()
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h > 23 {
		return 0, bad()
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m > 59 {
		return 0, bad()
	}
	return sign * (h*60 + m), nil
}
