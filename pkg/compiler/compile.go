package compiler

import (
	"fmt"
)

// Result carries a successful compilation's output and a few statistics
// for the driver's summary line.
type Result struct {
	Output string
	Target Target
	Tokens int
	Nodes  int
	Lines  int
}

// Compile runs the full pipeline over src: tokenize, parse, generate.
// filename is used for positions in diagnostics only. Any phase failure
// aborts the run with a wrapped error; no output file content is produced
// for a program that did not fully compile.
func Compile(src, filename string, target Target) (*Result, error) {
	lex := NewLexer(src, filename)
	p := NewParser(lex)

	prog, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	cg := NewCodeGen(target)
	out, err := cg.Generate(prog)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", filename, err)
	}

	return &Result{
		Output: out,
		Target: target,
		Tokens: p.TokenCount(),
		Nodes:  p.NodeCount(),
		Lines:  cg.Lines(),
	}, nil
}
