package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/formula/engine"
	"github.com/substance/expression/foundation/formula/value"
	mdwfilex "github.com/substance/expression/foundation/utils/filex"
	mdwstringx "github.com/substance/expression/foundation/utils/stringx"
	"github.com/substance/expression/internal/tui/repl"
)

var (
	evalData string
	evalFile string
	evalJSON bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "Evaluates expressions",
	Long: `Evaluates each argument as one expression in a shared engine, so later
expressions may reference earlier definitions. Without arguments the
expressions are read from stdin, one per line.

Examples:
  mini eval "x = 4" "x * 2"
  mini eval --data sales.csv "sum(B1:B12)"
  mini eval --file budget.mini
  echo "1 + 2" | mini eval --json`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalData, "data", "", "data file (.csv, .json, .yaml) for cell references")
	evalCmd.Flags().StringVar(&evalFile, "file", "", "read expressions from a file, one per line")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(evalCmd)
}

// cellResult is the printed outcome of one expression
type cellResult struct {
	Cell   string      `json:"cell"`
	Source string      `json:"source"`
	Status string      `json:"status"`
	Value  interface{} `json:"value,omitempty"`
	Error  string      `json:"error,omitempty"`
	Code   string      `json:"code,omitempty"`
}

func runEval(cmd *cobra.Command, args []string) error {
	sources := args
	if evalFile != "" {
		stmts, err := mdwfilex.ReadStatements(evalFile)
		if err != nil {
			printError("cannot read expressions", err)
			return err
		}
		sources = append(stmts, sources...)
	}
	if len(sources) == 0 {
		lines, err := readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
		sources = lines
	}

	s, err := newSession(cmd.Context(), evalData)
	if err != nil {
		printError("cannot start engine", err)
		return err
	}
	defer s.Close()

	cells := make([]*engine.Cell, 0, len(sources))
	for _, src := range sources {
		cells = append(cells, s.Engine.AddExpression(src))
	}
	if err := s.Wait(cmd.Context()); err != nil {
		printError("deferred values did not settle", err)
	}

	results := make([]cellResult, len(cells))
	failed := 0
	for i, c := range cells {
		results[i] = resultOf(c)
		if c.IsError() {
			failed++
		}
	}

	out := cmd.OutOrStdout()
	if evalJSON {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		writeText(out, results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(cells))
	}
	return nil
}

func resultOf(c *engine.Cell) cellResult {
	r := cellResult{
		Cell:   c.ID(),
		Source: c.Source(),
		Status: c.Status().String(),
	}
	switch c.Status() {
	case engine.StatusReady:
		r.Value = c.Value()
	case engine.StatusError:
		r.Error = c.Err().Error()
		r.Code = string(mdwerror.GetCode(c.Err()))
	}
	return r
}

func writeJSON(w io.Writer, results []cellResult) error {
	safe := make([]cellResult, len(results))
	for i, r := range results {
		r.Value = value.JSONSafe(r.Value)
		safe[i] = r
	}
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(safe, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeText(w io.Writer, results []cellResult) {
	for _, r := range results {
		status := engine.StatusPending
		line := "pending"
		switch r.Status {
		case "ready":
			status, line = engine.StatusReady, value.Format(r.Value)
		case "error":
			status, line = engine.StatusError, r.Error
		}
		fmt.Fprintf(w, "%s %s\n",
			repl.SourceStyle.Render(mdwstringx.PadRight(mdwstringx.Truncate(r.Source, 40, "…"), 40, ' ')),
			repl.StatusStyle(status).Render(line))
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "no expressions given")
	}
	return lines, nil
}
