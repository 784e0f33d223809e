package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	INTEGER    // decimal/hex/binary/octal integer literal
	FLOAT      // floating-point literal, with optional exponent
	STRING     // string literal "..."
	CHAR       // character literal 'c'
	IDENTIFIER // variable / function name

	// Keywords: basic types
	INT       // "int"
	FLOAT_KW  // "float"
	STRING_KW // "string"
	BOOL      // "bool"
	CHAR_KW   // "char"
	VOID      // "void"

	// Keywords: control flow
	IF       // "if"
	ELSE     // "else"
	WHILE    // "while"
	FOR      // "for"
	DO       // "do"
	SWITCH   // "switch"
	CASE     // "case"
	DEFAULT  // "default"
	BREAK    // "break"
	CONTINUE // "continue"
	RETURN   // "return"

	// Keywords: functions and variables
	FUNCTION // "function"
	VAR      // "var"
	CONST    // "const"

	// Keywords: OOP
	CLASS      // "class"
	STRUCT     // "struct"
	ENUM       // "enum"
	INTERFACE  // "interface"
	IMPLEMENTS // "implements"
	EXTENDS    // "extends"
	PUBLIC     // "public"
	PRIVATE    // "private"
	PROTECTED  // "protected"
	STATIC     // "static"
	FINAL      // "final"
	ABSTRACT   // "abstract"
	VIRTUAL    // "virtual"
	OVERRIDE   // "override"

	// Keywords: error handling
	TRY     // "try"
	CATCH   // "catch"
	FINALLY // "finally"
	THROW   // "throw"

	// Keywords: modules
	IMPORT    // "import"
	EXPORT    // "export"
	MODULE    // "module"
	NAMESPACE // "namespace"

	// Keywords: literal values
	TRUE      // "true"
	FALSE     // "false"
	NULL      // "null"
	UNDEFINED // "undefined"

	// Arithmetic operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	POWER     // **
	INCREMENT // ++
	DECREMENT // --

	// Assignment operators
	ASSIGN         // =
	PLUS_ASSIGN    // +=
	MINUS_ASSIGN   // -=
	STAR_ASSIGN    // *=
	SLASH_ASSIGN   // /=
	PERCENT_ASSIGN // %=
	POWER_ASSIGN   // **=

	// Comparison operators
	EQUALS     // ==
	NOT_EQ     // !=
	STRICT_EQ  // ===
	LESS       // <
	LESS_EQ    // <=
	GREATER    // >
	GREATER_EQ // >=

	// Logical operators
	AND_LOGICAL // &&
	OR_LOGICAL  // ||
	NOT         // !

	// Bitwise operators
	AND        // & (binary bitwise AND)
	PIPE       // |
	CARET      // ^
	TILDE      // ~
	SHL_OP     // <<
	SHR_OP     // >>
	AND_ASSIGN // &=
	OR_ASSIGN  // |=
	XOR_ASSIGN // ^=
	SHL_ASSIGN // <<=
	SHR_ASSIGN // >>=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	SEMICOLON // ;
	COMMA     // ,
	DOT       // .
	COLON     // :
	SCOPE     // ::
	ARROW     // ->
	QUESTION  // ?
	ELLIPSIS  // ...
	HASH      // #

	// Special
	NEWLINE // \n (significant only between top-level statements)
	ERROR   // lexical error; the message lives on the Lexer
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:            "EOF",
	INTEGER:        "INTEGER",
	FLOAT:          "FLOAT",
	STRING:         "STRING",
	CHAR:           "CHAR",
	IDENTIFIER:     "IDENTIFIER",
	INT:            "INT",
	FLOAT_KW:       "FLOAT_KW",
	STRING_KW:      "STRING_KW",
	BOOL:           "BOOL",
	CHAR_KW:        "CHAR_KW",
	VOID:           "VOID",
	IF:             "IF",
	ELSE:           "ELSE",
	WHILE:          "WHILE",
	FOR:            "FOR",
	DO:             "DO",
	SWITCH:         "SWITCH",
	CASE:           "CASE",
	DEFAULT:        "DEFAULT",
	BREAK:          "BREAK",
	CONTINUE:       "CONTINUE",
	RETURN:         "RETURN",
	FUNCTION:       "FUNCTION",
	VAR:            "VAR",
	CONST:          "CONST",
	CLASS:          "CLASS",
	STRUCT:         "STRUCT",
	ENUM:           "ENUM",
	INTERFACE:      "INTERFACE",
	IMPLEMENTS:     "IMPLEMENTS",
	EXTENDS:        "EXTENDS",
	PUBLIC:         "PUBLIC",
	PRIVATE:        "PRIVATE",
	PROTECTED:      "PROTECTED",
	STATIC:         "STATIC",
	FINAL:          "FINAL",
	ABSTRACT:       "ABSTRACT",
	VIRTUAL:        "VIRTUAL",
	OVERRIDE:       "OVERRIDE",
	TRY:            "TRY",
	CATCH:          "CATCH",
	FINALLY:        "FINALLY",
	THROW:          "THROW",
	IMPORT:         "IMPORT",
	EXPORT:         "EXPORT",
	MODULE:         "MODULE",
	NAMESPACE:      "NAMESPACE",
	TRUE:           "TRUE",
	FALSE:          "FALSE",
	NULL:           "NULL",
	UNDEFINED:      "UNDEFINED",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	STAR:           "STAR",
	SLASH:          "SLASH",
	PERCENT:        "PERCENT",
	POWER:          "POWER",
	INCREMENT:      "INCREMENT",
	DECREMENT:      "DECREMENT",
	ASSIGN:         "ASSIGN",
	PLUS_ASSIGN:    "PLUS_ASSIGN",
	MINUS_ASSIGN:   "MINUS_ASSIGN",
	STAR_ASSIGN:    "STAR_ASSIGN",
	SLASH_ASSIGN:   "SLASH_ASSIGN",
	PERCENT_ASSIGN: "PERCENT_ASSIGN",
	POWER_ASSIGN:   "POWER_ASSIGN",
	EQUALS:         "EQUALS",
	NOT_EQ:         "NOT_EQ",
	STRICT_EQ:      "STRICT_EQ",
	LESS:           "LESS",
	LESS_EQ:        "LESS_EQ",
	GREATER:        "GREATER",
	GREATER_EQ:     "GREATER_EQ",
	AND_LOGICAL:    "AND_LOGICAL",
	OR_LOGICAL:     "OR_LOGICAL",
	NOT:            "NOT",
	AND:            "AND",
	PIPE:           "PIPE",
	CARET:          "CARET",
	TILDE:          "TILDE",
	SHL_OP:         "SHL_OP",
	SHR_OP:         "SHR_OP",
	AND_ASSIGN:     "AND_ASSIGN",
	OR_ASSIGN:      "OR_ASSIGN",
	XOR_ASSIGN:     "XOR_ASSIGN",
	SHL_ASSIGN:     "SHL_ASSIGN",
	SHR_ASSIGN:     "SHR_ASSIGN",
	LPAREN:         "LPAREN",
	RPAREN:         "RPAREN",
	LBRACE:         "LBRACE",
	RBRACE:         "RBRACE",
	LBRACKET:       "LBRACKET",
	RBRACKET:       "RBRACKET",
	SEMICOLON:      "SEMICOLON",
	COMMA:          "COMMA",
	DOT:            "DOT",
	COLON:          "COLON",
	SCOPE:          "SCOPE",
	ARROW:          "ARROW",
	QUESTION:       "QUESTION",
	ELLIPSIS:       "ELLIPSIS",
	HASH:           "HASH",
	NEWLINE:        "NEWLINE",
	ERROR:          "ERROR",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Position is a 1-based source location, advanced per character
// (including newlines inside string literals).
type Position struct {
	Line   int
	Column int
	File   string
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Token is a single lexical unit produced by the Lexer.
//
// The token does not copy its text: Start and Length index the original
// source buffer, so the span is only meaningful while that buffer is alive.
// Anything that must outlive the buffer (identifier names, string contents)
// has to be copied out, which the parser does through its arena.
type Token struct {
	Type   TokenType
	Start  int // byte offset of the lexeme in the source buffer
	Length int
	Pos    Position

	Int   int64   // INTEGER payload, parsed under the literal's base
	Float float64 // FLOAT payload
}

func (t Token) String() string {
	switch t.Type {
	case INTEGER:
		return fmt.Sprintf("%-10s %d  line %d", t.Type, t.Int, t.Pos.Line)
	case FLOAT:
		return fmt.Sprintf("%-10s %g  line %d", t.Type, t.Float, t.Pos.Line)
	default:
		return fmt.Sprintf("%-10s line %d", t.Type, t.Pos.Line)
	}
}
