package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/substance/expression/foundation/formula"
)

var depsCmd = &cobra.Command{
	Use:   "deps <expression>",
	Short: "Lists the symbols an expression reads",
	Long: `Lists the variables, cells and ranges an expression depends on. Ranges
are listed with every cell they cover.

Example:
  mini deps "total = sum(A1:A3) * rate"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbols, err := formula.Dependencies(strings.Join(args, " "))
		if err != nil {
			printError("cannot parse expression", err)
			return err
		}
		for _, s := range symbols {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", s.Kind, s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
