package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/datetime"
	"github.com/msto63/dtparse/internal/tui"
	"github.com/spf13/cobra"
)

var tryCmd = &cobra.Command{
	Use:   "try",
	Short: "Interactive mode",
	Long: `Opens an input line that is parsed on every keystroke.

Keys:
  Tab / Shift+Tab - next / previous locale
  Ctrl+T          - show tokens
  Enter           - keep the result in the history
  Ctrl+L          - clear the history
  Esc / Ctrl+C    - quit`,
	RunE: runTry,
}

func init() {
	rootCmd.AddCommand(tryCmd)
}

func runTry(cmd *cobra.Command, args []string) error {
	// Log output would corrupt the screen
	dtlog.SetDefault(dtlog.Discard())

	parsers, err := newParsers()
	if err != nil {
		printError("creating parser", err)
		return err
	}
	order, err := datetime.ParseFieldOrder(appConfig.Parser.FieldOrder)
	if err != nil {
		return err
	}
	initial, err := parsers.Get("", nil)
	if err != nil {
		printError("creating parser", err)
		return err
	}

	model := tui.NewModel(parsers, parsers.Registry().Tags(), initial.Locale(), order)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return err
	}
	return nil
}
