package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/substance/expression/foundation/formula"
	"github.com/substance/expression/foundation/formula/ast"
)

var parseTypes bool

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Prints the syntax tree of an expression",
	Long: `Parses an expression and prints its syntax tree with source positions,
or the syntax error with a pointer to the offending column.

Examples:
  mini parse "x = (1 + y) * A1"
  mini parse --types "foo(1, z=B2) | bar()"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseTypes, "types", false, "print the node type sequence only")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	source := strings.Join(args, " ")
	expr := formula.Parse(source)
	out := cmd.OutOrStdout()

	if se := expr.SyntaxError(); se != nil {
		fmt.Fprintln(out, se.Error())
		fmt.Fprintln(out, se.Excerpt(source))
		return se
	}

	if parseTypes {
		types := ast.Types(expr)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		fmt.Fprintln(out, strings.Join(names, " "))
		return nil
	}

	fmt.Fprint(out, ast.Dump(expr.Root()))
	fmt.Fprintf(out, "canonical: %s\n", expr.String())
	return nil
}
