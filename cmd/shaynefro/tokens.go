package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pandaadir05/shaynefro-compiler/pkg/compiler"
)

// tokenDumpCap bounds the dump loop so a lexer bug can never make the
// command spin forever on a stuck stream.
const tokenDumpCap = 1_000_000

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Tokenize a ShayLang source file and print the token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func runTokens(cmd *cobra.Command, args []string) error {
	srcPath := args[0]
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	return dumpTokens(cmd, string(data), srcPath)
}

func dumpTokens(cmd *cobra.Command, src, filename string) error {
	out := cmd.OutOrStdout()
	lex := compiler.NewLexer(src, filename)

	count := 0
	for count < tokenDumpCap {
		tok := lex.Next()
		fmt.Fprintf(out, "%4d  %-14s %q  %s\n", count, tok.Type, lex.Text(tok), tok.Pos)
		count++
		if tok.Type == compiler.EOF {
			break
		}
	}
	fmt.Fprintf(out, "%d tokens\n", count)

	if lex.HasError() {
		return fmt.Errorf("lex %s: %s", filename, lex.ErrorMessage())
	}
	return nil
}
