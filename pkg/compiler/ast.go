package compiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
}

// Literal is a compile-time constant. Kind selects the payload: INTEGER
// uses Int, FLOAT uses Float, STRING uses Str (raw text between the quotes,
// interned into the parser's arena), and TRUE/FALSE/NULL carry no payload.
type Literal struct {
	Pos   Position
	Kind  TokenType
	Int   int64
	Float float64
	Str   string
}

func (*Literal) exprNode() {}
func (l *Literal) String() string {
	switch l.Kind {
	case INTEGER:
		return fmt.Sprintf("%d", l.Int)
	case FLOAT:
		return fmt.Sprintf("%g", l.Float)
	case STRING:
		return fmt.Sprintf("%q", l.Str)
	case TRUE:
		return "true"
	case FALSE:
		return "false"
	case NULL:
		return "null"
	}
	return fmt.Sprintf("Literal(%s)", l.Kind)
}

// Identifier is a read of a named variable. Name is interned into the
// parser's arena, so it stays valid after the source buffer is gone.
type Identifier struct {
	Pos  Position
	Name string
}

func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// Binary represents Left Op Right.
type Binary struct {
	Pos   Position
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*Binary) exprNode() {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Unary represents a prefix operation: Op Operand.
type Unary struct {
	Pos     Position
	Op      TokenType
	Operand Expr
}

func (*Unary) exprNode()        {}
func (u *Unary) String() string { return fmt.Sprintf("(%s %s)", u.Op, u.Operand) }

// Assignment represents Target = Value. The target is restricted to a bare
// identifier; the parser reports anything else as an invalid assignment
// target.
type Assignment struct {
	Pos    Position
	Target *Identifier
	Value  Expr
}

func (*Assignment) exprNode() {}
func (a *Assignment) String() string {
	return fmt.Sprintf("(%s = %s)", a.Target, a.Value)
}

// Call represents name(args).
type Call struct {
	Pos  Position
	Name string
	Args []Expr
}

func (*Call) exprNode() {}
func (c *Call) String() string {
	return fmt.Sprintf("Call(%s, args=%v)", c.Name, c.Args)
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
}

// VarDecl represents  type name = expr;
type VarDecl struct {
	Pos  Position
	Type TokenType // INT, FLOAT_KW, STRING_KW, BOOL
	Name string
	Init Expr // may be nil
}

func (*VarDecl) stmtNode() {}
func (d *VarDecl) String() string {
	if d.Init == nil {
		return fmt.Sprintf("VarDecl(%s %s)", d.Type, d.Name)
	}
	return fmt.Sprintf("VarDecl(%s %s = %s)", d.Type, d.Name, d.Init)
}

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	Pos Position
	X   Expr
}

func (*ExprStmt) stmtNode()        {}
func (e *ExprStmt) String() string { return fmt.Sprintf("ExprStmt(%s)", e.X) }

// Return represents  return expr;
type Return struct {
	Pos   Position
	Value Expr // may be nil
}

func (*Return) stmtNode() {}
func (r *Return) String() string {
	if r.Value == nil {
		return "Return"
	}
	return fmt.Sprintf("Return(%s)", r.Value)
}

// Block represents { statement; ... }
type Block struct {
	Pos   Position
	Stmts []Stmt
}

func (*Block) stmtNode()        {}
func (b *Block) String() string { return fmt.Sprintf("Block(len=%d)", len(b.Stmts)) }

// If represents if (cond) then [else other].
type If struct {
	Pos  Position
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

func (*If) stmtNode() {}
func (i *If) String() string {
	if i.Else != nil {
		return fmt.Sprintf("If(%s then %s else %s)", i.Cond, i.Then, i.Else)
	}
	return fmt.Sprintf("If(%s then %s)", i.Cond, i.Then)
}

// While represents while (cond) body.
type While struct {
	Pos  Position
	Cond Expr
	Body Stmt
}

func (*While) stmtNode()        {}
func (w *While) String() string { return fmt.Sprintf("While(%s do %s)", w.Cond, w.Body) }

// For represents for (init; cond; post) body.
type For struct {
	Pos  Position
	Init Stmt
	Cond Expr
	Post Stmt
	Body Stmt
}

func (*For) stmtNode() {}
func (f *For) String() string {
	return fmt.Sprintf("For(init=%s, cond=%s, post=%s, body=%s)", f.Init, f.Cond, f.Post, f.Body)
}

// FunctionDecl represents function name(params) { body }.
type FunctionDecl struct {
	Pos    Position
	Name   string
	Params []*VarDecl
	Body   *Block
}

func (*FunctionDecl) stmtNode() {}
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("FunctionDecl(%s, params=%d)", f.Name, len(f.Params))
}

// ClassDecl represents class Name { fields; methods }.
type ClassDecl struct {
	Pos     Position
	Name    string
	Fields  []*VarDecl
	Methods []*FunctionDecl
}

func (*ClassDecl) stmtNode() {}
func (c *ClassDecl) String() string {
	return fmt.Sprintf("ClassDecl(%s, fields=%d, methods=%d)", c.Name, len(c.Fields), len(c.Methods))
}

// Program is the root node: an ordered, unbounded sequence of top-level
// statements. It exclusively owns its children; the whole tree is released
// together when the parser's arena goes.
type Program struct {
	Pos   Position
	Stmts []Stmt
}

func (p *Program) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Program (%d statements)\n", len(p.Stmts))
	for _, s := range p.Stmts {
		fmt.Fprintf(&sb, "  %s\n", s)
	}
	return sb.String()
}
