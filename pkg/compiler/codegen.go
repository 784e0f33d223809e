package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Target selects the output language. Only C is implemented; the others
// are deliberate extension points that fail with an explicit error instead
// of emitting anything.
type Target int

const (
	TargetC Target = iota
	TargetJavaScript
	TargetPython
	TargetBytecode
)

var targetNames = [...]string{
	TargetC:          "c",
	TargetJavaScript: "javascript",
	TargetPython:     "python",
	TargetBytecode:   "bytecode",
}

func (t Target) String() string {
	if int(t) >= 0 && int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// ParseTarget maps a user-facing name ("c", "js", ...) to a Target.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(name) {
	case "c":
		return TargetC, nil
	case "javascript", "js":
		return TargetJavaScript, nil
	case "python", "py":
		return TargetPython, nil
	case "bytecode":
		return TargetBytecode, nil
	}
	return 0, fmt.Errorf("unknown output target %q", name)
}

// cBinaryOps is the closed operator translation table for the C backend.
var cBinaryOps = map[TokenType]string{
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	SLASH:       "/",
	PERCENT:     "%",
	EQUALS:      "==",
	NOT_EQ:      "!=",
	LESS:        "<",
	LESS_EQ:     "<=",
	GREATER:     ">",
	GREATER_EQ:  ">=",
	AND_LOGICAL: "&&",
	OR_LOGICAL:  "||",
}

// cTypeNames maps source type keywords to C types. A type keyword outside
// the table falls back to the nearest integer type.
var cTypeNames = map[TokenType]string{
	INT:       "int",
	FLOAT_KW:  "double",
	STRING_KW: "char*",
	BOOL:      "bool",
}

// CodeGen walks a completed Program and emits target-language text for an
// equivalent program, wrapped in a single implicit entry-point function.
// Output is buffered; nothing is handed to the caller unless generation
// succeeded, so a fatal error can never leave an ambiguous partial file.
type CodeGen struct {
	target   Target
	out      strings.Builder
	indent   int
	hadError bool
	errMsg   string

	lines int // statistics for the driver, not used internally
	vars  int
}

func NewCodeGen(target Target) *CodeGen {
	return &CodeGen{target: target}
}

// HasError reports whether generation failed.
func (cg *CodeGen) HasError() bool { return cg.hadError }

// ErrorMessage returns the first generation error.
func (cg *CodeGen) ErrorMessage() string { return cg.errMsg }

// Lines reports how many output lines were emitted.
func (cg *CodeGen) Lines() int { return cg.lines }

// Variables reports how many variable declarations were emitted.
func (cg *CodeGen) Variables() int { return cg.vars }

func (cg *CodeGen) fail(format string, args ...any) {
	if cg.hadError {
		return // keep the first error
	}
	cg.hadError = true
	cg.errMsg = fmt.Sprintf(format, args...)
}

func (cg *CodeGen) emitIndent() {
	for i := 0; i < cg.indent; i++ {
		cg.out.WriteString("    ")
	}
}

func (cg *CodeGen) emitLine(line string) {
	cg.emitIndent()
	cg.out.WriteString(line)
	cg.out.WriteByte('\n')
	cg.lines++
}

// Generate emits one syntactically valid program for prog, or an error.
// Partial output is discarded on failure.
func (cg *CodeGen) Generate(prog *Program) (string, error) {
	if prog == nil {
		cg.fail("no program to generate")
		return "", errors.New(cg.errMsg)
	}

	switch cg.target {
	case TargetC:
		cg.genProgram(prog)
	case TargetJavaScript:
		cg.fail("javascript output is not implemented")
	case TargetPython:
		cg.fail("python output is not implemented")
	case TargetBytecode:
		cg.fail("bytecode output is not implemented")
	default:
		cg.fail("unknown output target %q", cg.target)
	}

	if cg.hadError {
		return "", errors.New(cg.errMsg)
	}
	return cg.out.String(), nil
}

func (cg *CodeGen) genProgram(prog *Program) {
	cg.emitLine("#include <stdio.h>")
	cg.emitLine("#include <stdlib.h>")
	cg.emitLine("#include <stdbool.h>")
	cg.emitLine("#include <string.h>")
	cg.emitLine("")
	cg.emitLine("int main() {")

	cg.indent++
	for _, s := range prog.Stmts {
		cg.genStmt(s)
	}

	// The implicit entry point always returns; the trailing return 0 is
	// suppressed when the final user statement is itself a return, so the
	// output never carries an unreachable duplicate.
	if !endsWithReturn(prog) {
		cg.emitLine("return 0;")
	}
	cg.indent--
	cg.emitLine("}")
}

func endsWithReturn(prog *Program) bool {
	if len(prog.Stmts) == 0 {
		return false
	}
	_, ok := prog.Stmts[len(prog.Stmts)-1].(*Return)
	return ok
}

// genStmt emits one statement. Node kinds outside the supported set are a
// fatal generation error, never a silent skip.
func (cg *CodeGen) genStmt(s Stmt) {
	if cg.hadError {
		return
	}

	switch n := s.(type) {
	case *VarDecl:
		cg.genVarDecl(n)

	case *ExprStmt:
		cg.emitIndent()
		cg.genExpr(n.X)
		cg.out.WriteString(";\n")
		cg.lines++

	case *Return:
		cg.emitIndent()
		cg.out.WriteString("return")
		if n.Value != nil {
			cg.out.WriteByte(' ')
			cg.genExpr(n.Value)
		}
		cg.out.WriteString(";\n")
		cg.lines++

	default:
		cg.fail("C backend cannot generate %T statement at line %d", s, stmtLine(s))
	}
}

func stmtLine(s Stmt) int {
	switch n := s.(type) {
	case *Block:
		return n.Pos.Line
	case *If:
		return n.Pos.Line
	case *While:
		return n.Pos.Line
	case *For:
		return n.Pos.Line
	case *FunctionDecl:
		return n.Pos.Line
	case *ClassDecl:
		return n.Pos.Line
	}
	return 0
}

func (cg *CodeGen) genVarDecl(n *VarDecl) {
	cg.emitIndent()

	typeName, ok := cTypeNames[n.Type]
	if !ok {
		typeName = "int"
	}
	cg.out.WriteString(typeName)
	cg.out.WriteByte(' ')
	cg.out.WriteString(n.Name)

	if n.Init != nil {
		cg.out.WriteString(" = ")
		cg.genExpr(n.Init)
	}
	cg.out.WriteString(";\n")
	cg.lines++
	cg.vars++
}

// genExpr emits one expression. Binary and assignment expressions are
// always fully parenthesized, so the target's precedence rules can never
// change the evaluated shape.
func (cg *CodeGen) genExpr(e Expr) {
	if cg.hadError {
		return
	}

	switch n := e.(type) {
	case *Literal:
		cg.genLiteral(n)

	case *Identifier:
		cg.out.WriteString(n.Name)

	case *Binary:
		op, ok := cBinaryOps[n.Op]
		if !ok {
			cg.fail("C backend has no operator for %s at line %d", n.Op, n.Pos.Line)
			return
		}
		cg.out.WriteByte('(')
		cg.genExpr(n.Left)
		cg.out.WriteString(" " + op + " ")
		cg.genExpr(n.Right)
		cg.out.WriteByte(')')

	case *Assignment:
		cg.out.WriteByte('(')
		cg.out.WriteString(n.Target.Name)
		cg.out.WriteString(" = ")
		cg.genExpr(n.Value)
		cg.out.WriteByte(')')

	default:
		cg.fail("C backend cannot generate %T expression", e)
	}
}

func (cg *CodeGen) genLiteral(n *Literal) {
	switch n.Kind {
	case INTEGER:
		fmt.Fprintf(&cg.out, "%d", n.Int)
	case FLOAT:
		fmt.Fprintf(&cg.out, "%g", n.Float)
	case STRING:
		// Re-emitted raw: the C target shares the source escape syntax.
		// Any backend with different escaping rules must decode and
		// re-encode instead.
		fmt.Fprintf(&cg.out, "\"%s\"", n.Str)
	case TRUE:
		cg.out.WriteString("true")
	case FALSE:
		cg.out.WriteString("false")
	case NULL:
		cg.out.WriteString("NULL")
	default:
		cg.fail("unknown literal kind %s at line %d", n.Kind, n.Pos.Line)
	}
}
