package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/msto63/dtparse/internal/server"
	"github.com/spf13/cobra"
)

var localesJSON bool

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the available locales",
	Long: `Lists the bundled locales and those loaded from --locales-dir.
The configured default is marked with an asterisk.`,
	RunE: runLocales,
}

func init() {
	rootCmd.AddCommand(localesCmd)
	localesCmd.Flags().BoolVar(&localesJSON, "json", false, "print locales as JSON")
}

func runLocales(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		printError("loading locales", err)
		return err
	}
	def, err := reg.Get(appConfig.Parser.Locale)
	if err != nil {
		printError("default locale", err)
		return err
	}

	out := cmd.OutOrStdout()
	if localesJSON {
		resp := server.LocalesResponse{Default: def.Tag}
		for _, l := range reg.Locales() {
			resp.Locales = append(resp.Locales, server.LocaleInfo{
				Tag:        l.Tag,
				Name:       l.Name,
				Aliases:    l.Aliases,
				FieldOrder: l.FieldOrder,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tTAG\tNAME\tORDER\tALIASES")
	for _, l := range reg.Locales() {
		mark := ""
		if l.Tag == def.Tag {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, l.Tag, l.Name, l.FieldOrder, strings.Join(l.Aliases, ", "))
	}
	return tw.Flush()
}
