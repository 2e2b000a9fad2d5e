package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	dterror "github.com/msto63/dtparse/core/error"
	"github.com/msto63/dtparse/datetime"
	"github.com/spf13/cobra"
)

var parseOutput string

// errRejected signals that at least one input was rejected; the reasons
// have been printed already
var errRejected = errors.New("input rejected")

var parseCmd = &cobra.Command{
	Use:   "parse [text...]",
	Short: "Parse a date/time expression",
	Long: `Parses the arguments, joined by spaces, as one date/time expression.

With "-" or no arguments, every line of stdin is parsed on its own.

Output formats:
  text  - canonical UTC form, or "input<TAB>result" for batches
  json  - one JSON object per input

Examples:
  dtparse parse Jan 1st 1900
  dtparse parse -l de "3. Aug. 1994 12:00"
  cat dates.txt | dtparse parse --output json -`,
	SilenceErrors: true,
	RunE:          runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "text", "output format: text or json")
}

// parseLine is the JSON form of one parse
type parseLine struct {
	Input  string           `json:"input"`
	OK     bool             `json:"ok"`
	Result *datetime.Result `json:"result,omitempty"`
	Error  *parseLineError  `json:"error,omitempty"`
}

type parseLineError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseOutput != "text" && parseOutput != "json" {
		err := fmt.Errorf("unknown output format %q", parseOutput)
		printError("parse", err)
		return err
	}

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

	out := cmd.OutOrStdout()
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return parseBatch(p, cmd.InOrStdin(), out)
	}

	line := parseOne(p, strings.Join(args, " "))
	if parseOutput == "json" {
		if err := writeJSONLine(out, line); err != nil {
			return err
		}
		if !line.OK {
			return errRejected
		}
		return nil
	}
	if !line.OK {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", line.Error.Code, line.Error.Message)
		return errRejected
	}
	fmt.Fprintln(out, line.Result.String())
	if line.Result.Offset != 0 {
		fmt.Fprintf(out, "  local: %s\n", line.Result.Local())
	}
	return nil
}

// parseBatch parses every non-empty line of r
func parseBatch(p *datetime.Parser, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	rejected := false
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		line := parseOne(p, text)
		rejected = rejected || !line.OK

		if parseOutput == "json" {
			if err := writeJSONLine(w, line); err != nil {
				return err
			}
			continue
		}
		if line.OK {
			fmt.Fprintf(w, "%s\t%s\n", text, line.Result.String())
		} else {
			fmt.Fprintf(w, "%s\t%s: %s\n", text, line.Error.Code, line.Error.Message)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if rejected {
		return errRejected
	}
	return nil
}

func parseOne(p *datetime.Parser, text string) parseLine {
	r, err := p.ParseDetailed(text)
	if err != nil {
		msg := err.Error()
		var e *dterror.Error
		if errors.As(err, &e) {
			msg = e.Message()
		}
		return parseLine{
			Input: text,
			Error: &parseLineError{Code: dterror.GetCode(err).String(), Message: msg},
		}
	}
	return parseLine{Input: text, OK: true, Result: &r}
}

func writeJSONLine(w io.Writer, line parseLine) error {
	data, err := json.Marshal(line)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
