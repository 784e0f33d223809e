package compiler

import (
	"errors"
	"fmt"
)

// nodeAllocator groups a typed slab per AST node kind the parser produces.
// Nodes get stable addresses and are released together when the parser's
// arena goes, matching the tree's parent-owns-children model.
type nodeAllocator struct {
	literals  miniArena[Literal]
	idents    miniArena[Identifier]
	binaries  miniArena[Binary]
	unaries   miniArena[Unary]
	assigns   miniArena[Assignment]
	exprStmts miniArena[ExprStmt]
	varDecls  miniArena[VarDecl]
	returns   miniArena[Return]
	programs  miniArena[Program]
}

// Parser consumes tokens on demand from a borrowed Lexer and builds an AST.
//
// Grammar (the subset the language currently has):
//
//	program     = (NEWLINE | declaration)* EOF
//	declaration = varDecl | statement
//	varDecl     = ("int" | "float" | "string" | "bool") IDENTIFIER ("=" expression)? ";"
//	statement   = "return" expression? ";" | expression ";"
//	expression  = assignment
//	assignment  = IDENTIFIER "=" assignment | logical_or
//	logical_or  = logical_and ("||" logical_and)*
//	logical_and = equality ("&&" equality)*
//	equality    = relational (("==" | "!=") relational)*
//	relational  = additive (("<" | "<=" | ">" | ">=") additive)*
//	additive    = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = unary (("*" | "/" | "%") unary)*
//	unary       = ("!" | "-") unary | primary
//	primary     = INTEGER | FLOAT | STRING | "true" | "false" | "null"
//	            | IDENTIFIER | "(" expression ")"
//
// Syntax errors are recovered with panic-mode synchronization: only the
// first error of an episode is recorded, tokens are discarded to the next
// statement boundary, and parsing resumes, so one malformed statement never
// swallows the rest of the file. The statement that raised the error
// contributes no node.
type Parser struct {
	lex       *Lexer // borrowed; the caller keeps it alive until Parse returns
	current   Token
	previous  Token
	hadError  bool
	panicMode bool
	errMsg    string
	fatalErr  error // resource failure; stops the whole parse

	arena      *Arena // owns all interned text payloads
	nodes      nodeAllocator
	nodeCount  int
	tokenCount int
}

// NewParser creates a parser reading from lex. The parser owns its arena;
// the AST it produces is valid only while the parser is alive, because
// identifier names and string contents live in that arena.
func NewParser(lex *Lexer) *Parser {
	p := &Parser{lex: lex, arena: NewArena(0)}
	p.current = lex.Next()
	p.tokenCount++
	for p.current.Type == NEWLINE {
		p.current = lex.Next()
		p.tokenCount++
	}
	return p
}

// HasError reports whether any syntax error was recorded.
func (p *Parser) HasError() bool { return p.hadError }

// ErrorMessage returns the first error of the most recent panic episode.
func (p *Parser) ErrorMessage() string { return p.errMsg }

// NodeCount reports how many AST nodes have been created.
func (p *Parser) NodeCount() int { return p.nodeCount }

// TokenCount reports how many tokens have been pulled from the lexer.
func (p *Parser) TokenCount() int { return p.tokenCount }

func (p *Parser) errorAt(tok Token, msg string) {
	if p.panicMode {
		return // don't cascade errors
	}
	p.panicMode = true
	p.hadError = true
	p.errMsg = fmt.Sprintf("Error at line %d, column %d: %s", tok.Pos.Line, tok.Pos.Column, msg)
}

func (p *Parser) errorAtCurrent(msg string) {
	p.errorAt(p.current, msg)
}

// advance consumes the current token. ERROR tokens never reach the grammar:
// they are reported here and skipped, keeping the lexer's never-stop
// contract while still surfacing the problem exactly once per episode.
func (p *Parser) advance() {
	p.previous = p.current
	p.current = p.lex.Next()
	p.tokenCount++
	for p.current.Type == ERROR {
		p.errorAtCurrent(p.lex.ErrorMessage())
		p.current = p.lex.Next()
		p.tokenCount++
	}
}

func (p *Parser) check(tt TokenType) bool {
	return p.current.Type == tt
}

func (p *Parser) match(tt TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(tt TokenType, msg string) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	p.errorAtCurrent(msg)
	return false
}

// synchronize discards tokens until a statement boundary: either the token
// just consumed was a ';', or the current token starts a new declaration or
// control-flow statement. Clears panic mode so the next error is reported.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.Type != EOF {
		if p.previous.Type == SEMICOLON {
			return
		}
		switch p.current.Type {
		case CLASS, FUNCTION, VAR, FOR, IF, WHILE, RETURN,
			INT, FLOAT_KW, STRING_KW, BOOL:
			return
		}
		p.advance()
	}
}

// intern copies text into the parser's arena. Exhausting the arena is fatal
// to the whole parse; it must never surface as an empty name downstream.
func (p *Parser) intern(text string) string {
	s, err := p.arena.Intern(text)
	if err != nil {
		if p.fatalErr == nil {
			p.fatalErr = fmt.Errorf("line %d: %w", p.previous.Pos.Line, err)
		}
		return ""
	}
	return s
}

//  Expressions (precedence climbing, lowest tier first)

func (p *Parser) parseExpression() Expr {
	return p.parseAssignment()
}

// parseAssignment handles right-associative assignment. Only a bare
// identifier is a valid target; anything else is reported, but the parse
// continues with the expression already built.
func (p *Parser) parseAssignment() Expr {
	expr := p.parseLogicalOr()

	if p.match(ASSIGN) {
		eq := p.previous
		value := p.parseAssignment()

		if target, ok := expr.(*Identifier); ok {
			node := p.nodes.assigns.alloc()
			p.nodeCount++
			*node = Assignment{Pos: eq.Pos, Target: target, Value: value}
			return node
		}
		p.errorAt(eq, "Invalid assignment target")
	}

	return expr
}

func (p *Parser) newBinary(op Token, left, right Expr) Expr {
	node := p.nodes.binaries.alloc()
	p.nodeCount++
	*node = Binary{Pos: op.Pos, Op: op.Type, Left: left, Right: right}
	return node
}

// parseLogicalOr handles ||
func (p *Parser) parseLogicalOr() Expr {
	expr := p.parseLogicalAnd()
	for p.match(OR_LOGICAL) {
		op := p.previous
		expr = p.newBinary(op, expr, p.parseLogicalAnd())
	}
	return expr
}

// parseLogicalAnd handles &&
func (p *Parser) parseLogicalAnd() Expr {
	expr := p.parseEquality()
	for p.match(AND_LOGICAL) {
		op := p.previous
		expr = p.newBinary(op, expr, p.parseEquality())
	}
	return expr
}

// parseEquality handles == and !=
func (p *Parser) parseEquality() Expr {
	expr := p.parseRelational()
	for p.match(EQUALS) || p.match(NOT_EQ) {
		op := p.previous
		expr = p.newBinary(op, expr, p.parseRelational())
	}
	return expr
}

// parseRelational handles < <= > >=
func (p *Parser) parseRelational() Expr {
	expr := p.parseAdditive()
	for p.match(LESS) || p.match(LESS_EQ) || p.match(GREATER) || p.match(GREATER_EQ) {
		op := p.previous
		expr = p.newBinary(op, expr, p.parseAdditive())
	}
	return expr
}

// parseAdditive handles + and -
func (p *Parser) parseAdditive() Expr {
	expr := p.parseMultiplicative()
	for p.match(PLUS) || p.match(MINUS) {
		op := p.previous
		expr = p.newBinary(op, expr, p.parseMultiplicative())
	}
	return expr
}

// parseMultiplicative handles * / %
func (p *Parser) parseMultiplicative() Expr {
	expr := p.parseUnary()
	for p.match(STAR) || p.match(SLASH) || p.match(PERCENT) {
		op := p.previous
		expr = p.newBinary(op, expr, p.parseUnary())
	}
	return expr
}

// parseUnary handles prefix ! and -
func (p *Parser) parseUnary() Expr {
	if p.match(NOT) || p.match(MINUS) {
		op := p.previous
		node := p.nodes.unaries.alloc()
		p.nodeCount++
		*node = Unary{Pos: op.Pos, Op: op.Type, Operand: p.parseUnary()}
		return node
	}
	return p.parsePrimary()
}

func (p *Parser) newLiteral(tok Token) *Literal {
	node := p.nodes.literals.alloc()
	p.nodeCount++
	*node = Literal{Pos: tok.Pos, Kind: tok.Type, Int: tok.Int, Float: tok.Float}
	return node
}

// parsePrimary handles literals, identifiers, and parenthesized
// expressions. Everything with a text payload is copied into the arena
// here, because the token spans die with the source buffer.
func (p *Parser) parsePrimary() Expr {
	switch {
	case p.match(TRUE), p.match(FALSE), p.match(NULL):
		return p.newLiteral(p.previous)

	case p.match(INTEGER), p.match(FLOAT):
		return p.newLiteral(p.previous)

	case p.match(STRING):
		tok := p.previous
		raw := p.lex.Text(tok)
		if len(raw) >= 2 {
			raw = raw[1 : len(raw)-1] // strip the quotes, keep escapes raw
		}
		node := p.newLiteral(tok)
		node.Str = p.intern(raw)
		return node

	case p.match(IDENTIFIER):
		tok := p.previous
		node := p.nodes.idents.alloc()
		p.nodeCount++
		*node = Identifier{Pos: tok.Pos, Name: p.intern(p.lex.Text(tok))}
		return node

	case p.match(LPAREN):
		expr := p.parseExpression()
		p.consume(RPAREN, "Expected ')' after expression")
		return expr
	}

	p.errorAtCurrent("Expected expression")
	return nil
}

//  Statements

// varDeclaration parses  type name [= expr] ;  with the type keyword
// already consumed.
func (p *Parser) varDeclaration() Stmt {
	typeTok := p.previous

	if !p.consume(IDENTIFIER, "Expected variable name") {
		return nil
	}
	nameTok := p.previous
	name := p.intern(p.lex.Text(nameTok))

	var init Expr
	if p.match(ASSIGN) {
		init = p.parseExpression()
	}
	p.consume(SEMICOLON, "Expected ';' after variable declaration")

	node := p.nodes.varDecls.alloc()
	p.nodeCount++
	*node = VarDecl{Pos: nameTok.Pos, Type: typeTok.Type, Name: name, Init: init}
	return node
}

// returnStatement parses  return [expr] ;  with "return" already consumed.
func (p *Parser) returnStatement() Stmt {
	retTok := p.previous

	var value Expr
	if !p.check(SEMICOLON) {
		value = p.parseExpression()
	}
	p.consume(SEMICOLON, "Expected ';' after return value")

	node := p.nodes.returns.alloc()
	p.nodeCount++
	*node = Return{Pos: retTok.Pos, Value: value}
	return node
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.parseExpression()
	pos := p.previous.Pos
	p.consume(SEMICOLON, "Expected ';' after expression")

	node := p.nodes.exprStmts.alloc()
	p.nodeCount++
	*node = ExprStmt{Pos: pos, X: expr}
	return node
}

func (p *Parser) statement() Stmt {
	if p.match(RETURN) {
		return p.returnStatement()
	}
	return p.expressionStatement()
}

// declaration parses one top-level declaration or statement. If the
// statement raised an error it yields nil, so a malformed statement never
// contributes a node to the program.
func (p *Parser) declaration() Stmt {
	var stmt Stmt
	if p.match(INT) || p.match(FLOAT_KW) || p.match(STRING_KW) || p.match(BOOL) {
		stmt = p.varDeclaration()
	} else {
		stmt = p.statement()
	}

	if p.panicMode || p.fatalErr != nil {
		return nil
	}
	return stmt
}

// Parse consumes the whole token stream and returns the program. On syntax
// errors the returned error is non-nil but the program still holds every
// statement that parsed cleanly; resource failures abort with a nil
// program. The caller must check the error before generating code.
func (p *Parser) Parse() (*Program, error) {
	prog := p.nodes.programs.alloc()
	p.nodeCount++
	prog.Pos = p.current.Pos

	for p.current.Type != EOF && p.fatalErr == nil {
		// Panic mode can be entered while skipping newlines too (a lexical
		// error between statements), so resolve it before anything else.
		if p.panicMode {
			p.synchronize()
			continue
		}
		if p.match(NEWLINE) {
			continue
		}
		if decl := p.declaration(); decl != nil {
			prog.Stmts = append(prog.Stmts, decl)
		}
	}

	if p.fatalErr != nil {
		return nil, p.fatalErr
	}
	if p.hadError {
		return prog, errors.New(p.errMsg)
	}
	return prog, nil
}

// Reset releases the arena and every node slab, invalidating any AST this
// parser produced, and prepares the parser to be discarded. It exists so a
// caller that batches many small compilations can observe the whole-region
// release model explicitly.
func (p *Parser) Reset() {
	p.arena.Reset()
	p.nodes.literals.reset()
	p.nodes.idents.reset()
	p.nodes.binaries.reset()
	p.nodes.unaries.reset()
	p.nodes.assigns.reset()
	p.nodes.exprStmts.reset()
	p.nodes.varDecls.reset()
	p.nodes.returns.reset()
	p.nodes.programs.reset()
	p.nodeCount = 0
	p.tokenCount = 0
}
