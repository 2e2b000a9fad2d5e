package cmd

import (
	"fmt"
	"os"

	"github.com/msto63/dtparse/core/config"
	dterror "github.com/msto63/dtparse/core/error"
	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/datetime/locale"
	"github.com/msto63/dtparse/internal/server"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	flagLocale      string
	flagFieldOrder  string
	flagYearExt     string
	flagDefaultYear int
	flagOffset      string
	flagStrict      bool
	flagLocalesDir  string
	flagLogLevel    string
)

// appConfig is loaded before every command runs
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "dtparse",
	Short: "dtparse - free-form date and time parser",
	Long: `dtparse turns loosely written dates and times into normalized timestamps.

Examples of accepted input:
  Jan 1st 1900
  Sun Nov 6 08:49:37 1994
  25.12.'92 19:20
  1997-07-16T19:20:30+01:00
  3. Aug. 1994 (German)

Commands:
  parse     - parse arguments or lines from stdin
  tokenize  - show the token stream of an input
  locales   - list the available locales
  serve     - run the HTTP/WebSocket API
  try       - interactive mode`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $DTPARSE_CONFIG or ./configs/dtparse.toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	pf.StringVarP(&flagLocale, "locale", "l", "", "locale tag, e.g. en-US, en-GB, de, fr, es")
	pf.StringVar(&flagFieldOrder, "field-order", "", "order of ambiguous numbers, e.g. dmy or \"month,day\"")
	pf.StringVar(&flagYearExt, "year-ext", "", "two digit year policy: posix, none, 1900, 2000 or window:N")
	pf.IntVar(&flagDefaultYear, "default-year", 0, "year used when the input has none (default: current year)")
	pf.StringVar(&flagOffset, "offset", "", "UTC offset assumed when the input has none, e.g. +01:00")
	pf.BoolVar(&flagStrict, "strict", false, "only use words of the selected locale")
	pf.StringVar(&flagLocalesDir, "locales-dir", "", "directory with additional YAML or TOML locale files")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
}

// loadConfig reads the config file, applies flag overrides and sets up
// the default logger
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
		if dterror.HasCode(err, dterror.CodeMissingConfig) {
			appConfig, err = config.Default(), nil
			appConfig.ApplyEnv()
		}
	}
	if err != nil {
		printError("loading config", err)
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("locale") {
		appConfig.Parser.Locale = flagLocale
	}
	if flags.Changed("field-order") {
		appConfig.Parser.FieldOrder = flagFieldOrder
	}
	if flags.Changed("year-ext") {
		appConfig.Parser.YearExtension = flagYearExt
	}
	if flags.Changed("default-year") {
		appConfig.Parser.DefaultYear = flagDefaultYear
	}
	if flags.Changed("offset") {
		appConfig.Parser.AssumedOffset = flagOffset
	}
	if flags.Changed("strict") {
		appConfig.Parser.StrictLocale = flagStrict
	}
	if flags.Changed("locales-dir") {
		appConfig.Locales.Dir = flagLocalesDir
	}
	if flags.Changed("log-level") {
		appConfig.Log.Level = flagLogLevel
	}
	if verbose {
		appConfig.Log.Level = "debug"
	}
	if err := appConfig.Validate(); err != nil {
		printError("invalid settings", err)
		return err
	}

	logCfg, err := appConfig.LoggerConfig()
	if err != nil {
		return err
	}
	dtlog.SetDefault(dtlog.NewWithConfig(logCfg))
	return nil
}

// loadRegistry returns the bundled locales plus the configured directory
func loadRegistry() (*locale.Registry, error) {
	reg, tags, err := server.LoadLocales(appConfig.Locales.Dir)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		dtlog.GetDefault().Debug("Loaded locale files", dtlog.Fields{"dir": appConfig.Locales.Dir, "tags": tags})
	}
	return reg, nil
}

// newParsers builds the parser cache from the loaded config
func newParsers() (*server.Parsers, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	opts, err := appConfig.ParserOptions(reg, dtlog.GetDefault())
	if err != nil {
		return nil, err
	}
	return server.NewParsers(opts, reg)
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
