package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "classlink",
	Short: "Exercise class-linkage and instance-field-layout against fixture classes",
	Long: `classlink drives the field-linkage core end to end against a small
set of in-memory fixture classes, standing in for the byte-stream
parser, classloader, and interpreter this core expects from its caller.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
}

// newLogger builds the process logger, development-mode (console-friendly,
// debug-enabled) under --verbose and production-mode (JSON, info-and-above)
// otherwise.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
