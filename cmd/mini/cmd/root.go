package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwconfig "github.com/substance/expression/foundation/core/config"
	mdwlog "github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/internal/session"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mini",
	Short: "mini - reactive formula language",
	Long: `mini evaluates spreadsheet-style formulas.

Expressions reference named values (x), cells of a data matrix (B3) and
ranges (A1:C4), call functions with positional and named arguments and
chain calls with the pipe operator:

  total = sum(A1:A10)
  total / count(A1:A10) | round(digits=2)

Commands:
  eval     - evaluate expressions and print their values
  parse    - print the syntax tree of an expression
  deps     - list the symbols an expression reads
  repl     - interactive session with live cell updates`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./mini.toml, then user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig() (*mdwconfig.Config, error) {
	return mdwconfig.LoadOrDefault(cfgFile)
}

func newSession(ctx context.Context, dataFile string) (*session.Session, error) {
	return startSession(ctx, session.Options{Verbose: verbose, DataFile: dataFile})
}

// startSession loads the configuration into opts and makes the session
// logger the process default
func startSession(ctx context.Context, opts session.Options) (*session.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	opts.Config = cfg

	s, err := session.New(ctx, opts)
	if err != nil {
		return nil, err
	}
	mdwlog.SetDefault(s.Logger)
	return s, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
