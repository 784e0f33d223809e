package main

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shaynefro",
	Short: "ShayneFro - a ShayLang to C source-to-source compiler",
	Long: `ShayneFro compiles ShayLang source files to portable C.

The pipeline is a hand-written lexer, a recursive-descent parser with
panic-mode error recovery, and an AST-to-C text backend. The emitted C
builds with any C99 compiler.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
