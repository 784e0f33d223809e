package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pandaadir05/shaynefro-compiler/pkg/compiler"
)

var (
	buildTarget string
	buildOut    string
	buildConfig string
	showAST     bool
	showTokens  bool
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Compile a ShayLang source file",
	Long: `Compile a ShayLang source file to the selected target language.

Defaults are read from shaynefro.yaml in the working directory when it
exists; flags override the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildTarget, "target", "t", "c", "Output target (c, javascript, python, bytecode)")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output file (default output.<target extension>)")
	buildCmd.Flags().StringVar(&buildConfig, "config", defaultConfigFile, "Project config file")
	buildCmd.Flags().BoolVar(&showAST, "ast", false, "Print the parsed AST")
	buildCmd.Flags().BoolVar(&showTokens, "tokens", false, "Print the token stream before parsing")
}

func runBuild(cmd *cobra.Command, args []string) error {
	srcPath := args[0]
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	src := string(data)

	cfg, err := loadProjectConfig(buildConfig)
	if err != nil {
		return err
	}

	targetName := buildTarget
	if !cmd.Flags().Changed("target") && cfg.Target != "" {
		targetName = cfg.Target
	}
	target, err := compiler.ParseTarget(targetName)
	if err != nil {
		return err
	}

	outPath := buildOut
	if outPath == "" {
		outPath = cfg.Output
	}
	if outPath == "" {
		outPath = "output.c"
	}

	if showTokens {
		if err := dumpTokens(cmd, src, srcPath); err != nil {
			return err
		}
	}

	lex := compiler.NewLexer(src, srcPath)
	p := compiler.NewParser(lex)
	prog, err := p.Parse()
	if err != nil {
		return fmt.Errorf("parse %s: %w", srcPath, err)
	}

	if showAST {
		fmt.Fprint(cmd.OutOrStdout(), prog)
	}

	cg := compiler.NewCodeGen(target)
	out, err := cg.Generate(prog)
	if err != nil {
		return fmt.Errorf("generate %s: %w", srcPath, err)
	}

	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	color.Green("Compiled %s -> %s", srcPath, outPath)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "  target:     %s\n", target)
		fmt.Fprintf(cmd.OutOrStdout(), "  tokens:     %d\n", p.TokenCount())
		fmt.Fprintf(cmd.OutOrStdout(), "  nodes:      %d\n", p.NodeCount())
		fmt.Fprintf(cmd.OutOrStdout(), "  lines:      %d\n", cg.Lines())
		fmt.Fprintf(cmd.OutOrStdout(), "  variables:  %d\n", cg.Variables())
	}
	return nil
}
