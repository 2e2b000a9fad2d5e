package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/msto63/dtparse/datetime"
	"github.com/spf13/cobra"
)

var tokenizeJSON bool

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <text...>",
	Short: "Show the token stream of an input",
	Long: `Splits the input into the tokens the parser works on. Useful to see
why an input is rejected.

Example:
  dtparse tokenize "Jan 1st, '92 19:20"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "print tokens as JSON")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	parsers, err := newParsers()
	if err != nil {
		printError("creating parser", err)
		return err
	}
	p, err := parsers.Get("", nil)
	if err != nil {
		printError("creating parser", err)
		return err
	}

	tokens := p.Tokenize(strings.Join(args, " "))
	out := cmd.OutOrStdout()

	if tokenizeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tTYPE\tTEXT\tVALUE")
	for _, t := range tokens {
		value := ""
		if t.HasValue() {
			value = fmt.Sprint(t.Value)
		}
		text := t.Text
		if t.Type == datetime.TokenSpace {
			text = fmt.Sprintf("%q", t.Text)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.Pos, t.Type, text, value)
	}
	return tw.Flush()
}
