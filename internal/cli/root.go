// Package cli implements the symgo CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/symgo"
	"github.com/hupe1980/symgo/logging"
)

var (
	configPath string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "symgo",
	Short: "Symbolic operations backed by LLM capabilities",
	Long:  "Query, compare and index text through configurable reasoning, embedding and indexing backends.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config path (default: ./symgo.config.json or ~/.symgo/symgo.config.json)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newLogger() logging.Logger {
	level := logging.LogLevelWarn
	if verbose {
		level = logging.LogLevelDebug
	}
	return logging.NewLogger(&logging.Config{Level: level, Format: "text", Output: os.Stderr})
}

func newSymGo() (*symgo.SymGo, error) {
	return symgo.New(func(o *symgo.Options) {
		o.ConfigPath = configPath
		o.Logger = newLogger()
	})
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
