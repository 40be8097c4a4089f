package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/substance/expression/internal/session"
	"github.com/substance/expression/internal/tui/repl"
)

var replData string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Starts the interactive formula REPL",
	Long: `Starts an interactive session. Every entered expression becomes a cell;
the cell list updates live as values change and deferred results arrive.

Commands inside the REPL:
  :set <name> <value>   bind a number or text to a name
  :data <file>          load a data file into the data cell
  :propagate <name>     re-run a cell and everything depending on it
  :funcs                list available functions
  :quit                 leave (also Esc or Ctrl+C)`,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().StringVar(&replData, "data", "", "data file (.csv, .json, .yaml) to preload")
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	// log output would corrupt the alternate screen
	var logOutput io.Writer = io.Discard
	if verbose {
		logOutput = os.Stderr
	}

	s, err := startSession(cmd.Context(), session.Options{
		LogOutput: logOutput,
		DataFile:  replData,
	})
	if err != nil {
		printError("cannot start engine", err)
		return err
	}
	defer s.Close()

	if err := repl.Run(s.Engine); err != nil {
		fmt.Fprintf(os.Stderr, "REPL error: %v\n", err)
		return err
	}
	return nil
}
