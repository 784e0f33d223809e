package compiler

import "strconv"

// keywords maps source text to its keyword TokenType. The table is
// read-only, shared by every Lexer, and matched exactly: "int2" or "iffy"
// are plain identifiers, never keywords.
var keywords = map[string]TokenType{
	"int":        INT,
	"float":      FLOAT_KW,
	"string":     STRING_KW,
	"bool":       BOOL,
	"char":       CHAR_KW,
	"void":       VOID,
	"if":         IF,
	"else":       ELSE,
	"while":      WHILE,
	"for":        FOR,
	"do":         DO,
	"switch":     SWITCH,
	"case":       CASE,
	"default":    DEFAULT,
	"break":      BREAK,
	"continue":   CONTINUE,
	"return":     RETURN,
	"function":   FUNCTION,
	"var":        VAR,
	"const":      CONST,
	"class":      CLASS,
	"struct":     STRUCT,
	"enum":       ENUM,
	"interface":  INTERFACE,
	"implements": IMPLEMENTS,
	"extends":    EXTENDS,
	"public":     PUBLIC,
	"private":    PRIVATE,
	"protected":  PROTECTED,
	"static":     STATIC,
	"final":      FINAL,
	"abstract":   ABSTRACT,
	"virtual":    VIRTUAL,
	"override":   OVERRIDE,
	"try":        TRY,
	"catch":      CATCH,
	"finally":    FINALLY,
	"throw":      THROW,
	"import":     IMPORT,
	"export":     EXPORT,
	"module":     MODULE,
	"namespace":  NAMESPACE,
	"true":       TRUE,
	"false":      FALSE,
	"null":       NULL,
	"undefined":  UNDEFINED,
}

// Lexer pulls one token at a time from a single source buffer.
//
// A lexical problem produces an ERROR token and sets a sticky error flag,
// but the stream stays advanceable: Next can always be called again, and at
// end of input it returns EOF tokens indefinitely. The lexer never aborts
// itself; whether an error is fatal is the caller's decision.
type Lexer struct {
	src      string
	pos      int      // index of the next byte to consume
	start    int      // start of the token currently being scanned
	loc      Position // position of the next byte
	startLoc Position // position of the token currently being scanned
	hasErr   bool
	errMsg   string
}

// NewLexer creates a lexer over src; filename is used only for diagnostics.
func NewLexer(src, filename string) *Lexer {
	return &Lexer{
		src: src,
		loc: Position{Line: 1, Column: 1, File: filename},
	}
}

// Text returns the exact source text of t. The result aliases the lexer's
// source buffer.
func (l *Lexer) Text(t Token) string {
	return l.src[t.Start : t.Start+t.Length]
}

// HasError reports whether any lexical error has occurred so far.
func (l *Lexer) HasError() bool { return l.hasErr }

// ErrorMessage returns the most recent lexical error message.
func (l *Lexer) ErrorMessage() string { return l.errMsg }

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one byte, keeping line/column bookkeeping exact even
// inside string literals.
func (l *Lexer) advance() byte {
	if l.atEnd() {
		return 0
	}
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.loc.Line++
		l.loc.Column = 1
	} else {
		l.loc.Column++
	}
	return c
}

// match consumes the next byte only if it equals expected.
func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.src[l.pos] != expected {
		return false
	}
	l.advance()
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// skipWhitespace discards spaces, tabs, carriage returns, and both comment
// styles. Newlines are not skipped here; they become NEWLINE tokens. An
// unterminated block comment is not an error: scanning simply reaches the
// end of input.
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch c := l.peek(); {
		case c == ' ' || c == '\r' || c == '\t':
			l.advance()
		case c == '/' && l.peekNext() == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekNext() == '*':
			l.advance() // '/'
			l.advance() // '*'
			for !l.atEnd() {
				if l.peek() == '*' && l.peekNext() == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

// makeToken builds a token spanning from the scan start to the current
// position. The span indexes the source buffer; nothing is copied.
func (l *Lexer) makeToken(tt TokenType) Token {
	return Token{
		Type:   tt,
		Start:  l.start,
		Length: l.pos - l.start,
		Pos:    l.startLoc,
	}
}

// errorToken records msg as the sticky lexer error and returns an ERROR
// token covering whatever was consumed. The stream remains advanceable.
func (l *Lexer) errorToken(msg string) Token {
	l.hasErr = true
	l.errMsg = msg
	return l.makeToken(ERROR)
}

// scanIdentifier collects an identifier or keyword; the first byte must
// still be unconsumed.
func (l *Lexer) scanIdentifier() Token {
	for !l.atEnd() && isAlnum(l.peek()) {
		l.advance()
	}
	if kw, ok := keywords[l.src[l.start:l.pos]]; ok {
		return l.makeToken(kw)
	}
	return l.makeToken(IDENTIFIER)
}

// scanNumber collects an integer or float literal; the first digit must
// still be unconsumed. A leading 0x/0b/0o switches to hex/binary/octal
// integer scanning (no float form in those bases); decimal literals accept
// an optional fraction and an optional exponent, either of which makes the
// literal a float. The numeric payload is parsed here, under the literal's
// base, so downstream phases never re-read the raw text.
func (l *Lexer) scanNumber() Token {
	isFloat := false
	base := 10

	if l.peek() == '0' && (l.peekNext() == 'x' || l.peekNext() == 'X') {
		l.advance()
		l.advance()
		base = 16
		for isHexDigit(l.peek()) {
			l.advance()
		}
	} else if l.peek() == '0' && (l.peekNext() == 'b' || l.peekNext() == 'B') {
		l.advance()
		l.advance()
		base = 2
		for l.peek() == '0' || l.peek() == '1' {
			l.advance()
		}
	} else if l.peek() == '0' && (l.peekNext() == 'o' || l.peekNext() == 'O') {
		l.advance()
		l.advance()
		base = 8
		for l.peek() >= '0' && l.peek() <= '7' {
			l.advance()
		}
	} else {
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == '.' && isDigit(l.peekNext()) {
			isFloat = true
			l.advance() // '.'
			for isDigit(l.peek()) {
				l.advance()
			}
		}
		if (l.peek() == 'e' || l.peek() == 'E') &&
			(isDigit(l.peekNext()) || l.peekNext() == '+' || l.peekNext() == '-') {
			isFloat = true
			l.advance() // 'e'
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	text := l.src[l.start:l.pos]
	if isFloat {
		tok := l.makeToken(FLOAT)
		tok.Float, _ = strconv.ParseFloat(text, 64)
		return tok
	}
	digits := text
	if base != 10 {
		digits = text[2:] // strip the 0x/0b/0o prefix
	}
	tok := l.makeToken(INTEGER)
	tok.Int, _ = strconv.ParseInt(digits, base, 64)
	return tok
}

// scanString scans to the closing quote; the opening quote has been
// consumed. Escape sequences are recognized so that an escaped quote does
// not close the literal, but they are not decoded: the token's span keeps
// the raw text, escapes untouched. That is correct to re-emit only because
// the C backend shares the source escape syntax.
func (l *Lexer) scanString() Token {
	for !l.atEnd() && l.peek() != '"' {
		if l.peek() != '\\' {
			l.advance()
			continue
		}
		l.advance() // backslash
		if l.atEnd() {
			break
		}
		switch l.peek() {
		case 'x': // \xHH, up to two hex digits
			l.advance()
			for i := 0; i < 2 && isHexDigit(l.peek()); i++ {
				l.advance()
			}
		case 'u': // \uHHHH, up to four hex digits
			l.advance()
			for i := 0; i < 4 && isHexDigit(l.peek()); i++ {
				l.advance()
			}
		default:
			// \n \t \r \\ \" \' \0 and any unknown escape pass through.
			l.advance()
		}
	}

	if l.atEnd() {
		return l.errorToken("Unterminated string")
	}
	l.advance() // closing quote
	return l.makeToken(STRING)
}

// scanChar scans a character literal; the opening quote has been consumed.
// Exactly one possibly-escaped unit is allowed between the quotes.
func (l *Lexer) scanChar() Token {
	if l.peek() == '\\' {
		l.advance() // backslash
		l.advance() // escaped character
	} else if l.peek() != '\'' {
		l.advance()
	}
	if !l.match('\'') {
		return l.errorToken("Unterminated character literal")
	}
	return l.makeToken(CHAR)
}

// Next skips whitespace and comments, then returns the next token. At end
// of input it returns EOF tokens indefinitely.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	l.start = l.pos
	l.startLoc = l.loc

	if l.atEnd() {
		return l.makeToken(EOF)
	}

	c := l.peek()

	if isAlpha(c) {
		return l.scanIdentifier()
	}
	if isDigit(c) {
		return l.scanNumber()
	}

	l.advance()
	switch c {
	case '(':
		return l.makeToken(LPAREN)
	case ')':
		return l.makeToken(RPAREN)
	case '{':
		return l.makeToken(LBRACE)
	case '}':
		return l.makeToken(RBRACE)
	case '[':
		return l.makeToken(LBRACKET)
	case ']':
		return l.makeToken(RBRACKET)
	case ';':
		return l.makeToken(SEMICOLON)
	case ',':
		return l.makeToken(COMMA)
	case '.':
		if l.match('.') {
			if l.match('.') {
				return l.makeToken(ELLIPSIS)
			}
			return l.errorToken("Invalid token '..'")
		}
		return l.makeToken(DOT)
	case ':':
		if l.match(':') {
			return l.makeToken(SCOPE)
		}
		return l.makeToken(COLON)
	case '?':
		return l.makeToken(QUESTION)
	case '~':
		return l.makeToken(TILDE)
	case '^':
		if l.match('=') {
			return l.makeToken(XOR_ASSIGN)
		}
		return l.makeToken(CARET)
	case '+':
		if l.match('+') {
			return l.makeToken(INCREMENT)
		}
		if l.match('=') {
			return l.makeToken(PLUS_ASSIGN)
		}
		return l.makeToken(PLUS)
	case '-':
		if l.match('-') {
			return l.makeToken(DECREMENT)
		}
		if l.match('=') {
			return l.makeToken(MINUS_ASSIGN)
		}
		if l.match('>') {
			return l.makeToken(ARROW)
		}
		return l.makeToken(MINUS)
	case '*':
		if l.match('=') {
			return l.makeToken(STAR_ASSIGN)
		}
		if l.match('*') {
			if l.match('=') {
				return l.makeToken(POWER_ASSIGN)
			}
			return l.makeToken(POWER)
		}
		return l.makeToken(STAR)
	case '/':
		if l.match('=') {
			return l.makeToken(SLASH_ASSIGN)
		}
		return l.makeToken(SLASH)
	case '%':
		if l.match('=') {
			return l.makeToken(PERCENT_ASSIGN)
		}
		return l.makeToken(PERCENT)
	case '\n':
		return l.makeToken(NEWLINE)
	case '"':
		return l.scanString()
	case '\'':
		return l.scanChar()
	case '!':
		if l.match('=') {
			return l.makeToken(NOT_EQ)
		}
		return l.makeToken(NOT)
	case '=':
		if l.match('=') {
			if l.match('=') {
				return l.makeToken(STRICT_EQ)
			}
			return l.makeToken(EQUALS)
		}
		return l.makeToken(ASSIGN)
	case '<':
		if l.match('<') {
			if l.match('=') {
				return l.makeToken(SHL_ASSIGN)
			}
			return l.makeToken(SHL_OP)
		}
		if l.match('=') {
			return l.makeToken(LESS_EQ)
		}
		return l.makeToken(LESS)
	case '>':
		if l.match('>') {
			if l.match('=') {
				return l.makeToken(SHR_ASSIGN)
			}
			return l.makeToken(SHR_OP)
		}
		if l.match('=') {
			return l.makeToken(GREATER_EQ)
		}
		return l.makeToken(GREATER)
	case '&':
		if l.match('&') {
			return l.makeToken(AND_LOGICAL)
		}
		if l.match('=') {
			return l.makeToken(AND_ASSIGN)
		}
		return l.makeToken(AND)
	case '|':
		if l.match('|') {
			return l.makeToken(OR_LOGICAL)
		}
		if l.match('=') {
			return l.makeToken(OR_ASSIGN)
		}
		return l.makeToken(PIPE)
	case '#':
		return l.makeToken(HASH)
	}

	return l.errorToken("Unexpected character")
}
