package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) (*Program, *Parser, error) {
	t.Helper()
	p := NewParser(NewLexer(src, "test.shay"))
	prog, err := p.Parse()
	return prog, p, err
}

func TestParseExpressionShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // String() of the single statement's expression
	}{
		{
			name:  "Multiplication Binds Tighter",
			input: "1 + 2 * 3;",
			want:  "(1 PLUS (2 STAR 3))",
		},
		{
			name:  "Same Tier Is Left Associative",
			input: "10 - 4 - 3;",
			want:  "((10 MINUS 4) MINUS 3)",
		},
		{
			name:  "Parentheses Override",
			input: "(1 + 2) * 3;",
			want:  "((1 PLUS 2) STAR 3)",
		},
		{
			name:  "Comparison Over Additive",
			input: "a + 1 < b * 2;",
			want:  "((a PLUS 1) LESS (b STAR 2))",
		},
		{
			name:  "Equality Over Comparison",
			input: "a < b == c > d;",
			want:  "((a LESS b) EQUALS (c GREATER d))",
		},
		{
			name:  "Logical And Over Or",
			input: "a || b && c;",
			want:  "(a OR_LOGICAL (b AND_LOGICAL c))",
		},
		{
			name:  "Unary Over Multiplicative",
			input: "-a * b;",
			want:  "((MINUS a) STAR b)",
		},
		{
			name:  "Nested Unary",
			input: "!!a;",
			want:  "(NOT (NOT a))",
		},
		{
			name:  "Assignment Is Right Associative",
			input: "a = b = 1;",
			want:  "(a = (b = 1))",
		},
		{
			name:  "Modulo",
			input: "a % 2 == 0;",
			want:  "((a PERCENT 2) EQUALS 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, _, err := parseSource(t, tt.input)
			require.NoError(t, err)
			require.Len(t, prog.Stmts, 1)

			es, ok := prog.Stmts[0].(*ExprStmt)
			require.True(t, ok, "statement is %T, want *ExprStmt", prog.Stmts[0])
			assert.Equal(t, tt.want, es.X.String())
		})
	}
}

func TestParseVarDecl(t *testing.T) {
	prog, _, err := parseSource(t, "int x = 10;\nfloat f;\nstring s = \"hi\";\nbool ok = true;")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 4)

	x := prog.Stmts[0].(*VarDecl)
	assert.Equal(t, INT, x.Type)
	assert.Equal(t, "x", x.Name)
	require.IsType(t, &Literal{}, x.Init)
	assert.Equal(t, int64(10), x.Init.(*Literal).Int)

	f := prog.Stmts[1].(*VarDecl)
	assert.Equal(t, FLOAT_KW, f.Type)
	assert.Equal(t, "f", f.Name)
	assert.Nil(t, f.Init)

	s := prog.Stmts[2].(*VarDecl)
	assert.Equal(t, STRING_KW, s.Type)
	assert.Equal(t, "hi", s.Init.(*Literal).Str)

	ok := prog.Stmts[3].(*VarDecl)
	assert.Equal(t, BOOL, ok.Type)
	assert.Equal(t, TRUE, ok.Init.(*Literal).Kind)
}

func TestParseReturn(t *testing.T) {
	prog, _, err := parseSource(t, "return x + 1;\nreturn;")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)

	r0 := prog.Stmts[0].(*Return)
	assert.Equal(t, "(x PLUS 1)", r0.Value.String())

	r1 := prog.Stmts[1].(*Return)
	assert.Nil(t, r1.Value)
}

func TestParseSkipsBlankLines(t *testing.T) {
	prog, _, err := parseSource(t, "\n\nint x = 1;\n\n\nreturn x;\n")
	require.NoError(t, err)
	assert.Len(t, prog.Stmts, 2)
}

func TestParseEmptySource(t *testing.T) {
	prog, p, err := parseSource(t, "\n\n  // comments only\n")
	require.NoError(t, err)
	assert.Empty(t, prog.Stmts)
	assert.False(t, p.HasError())
}

func TestParseRecoversAfterMalformedStatement(t *testing.T) {
	// One malformed statement, then three good ones: exactly three nodes
	// land in the program and exactly one error is reported.
	src := "int = 5;\nint a = 1;\nint b = 2;\nreturn a + b;"
	prog, p, err := parseSource(t, src)

	require.Error(t, err)
	assert.True(t, p.HasError())
	assert.Contains(t, err.Error(), "Expected variable name")
	require.NotNil(t, prog)
	require.Len(t, prog.Stmts, 3)
	assert.IsType(t, &VarDecl{}, prog.Stmts[0])
	assert.IsType(t, &VarDecl{}, prog.Stmts[1])
	assert.IsType(t, &Return{}, prog.Stmts[2])
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	prog, p, err := parseSource(t, "42 = x;\nint y = 1;")

	require.Error(t, err)
	assert.True(t, p.HasError())
	require.NotNil(t, prog)
	// The malformed statement contributes nothing; the next one survives.
	require.Len(t, prog.Stmts, 1)
	assert.IsType(t, &VarDecl{}, prog.Stmts[0])
}

func TestParseInvalidAssignmentTargetMessage(t *testing.T) {
	_, p, err := parseSource(t, "1 + 2 = x;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target")
	assert.Contains(t, p.ErrorMessage(), "Invalid assignment target")
}

func TestParseErrorPositions(t *testing.T) {
	_, _, err := parseSource(t, "int x = 1;\nint = 5;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseOnlyFirstErrorPerEpisode(t *testing.T) {
	// A statement with several problems reports the first and suppresses
	// the cascade.
	_, p, err := parseSource(t, "int = = ;")
	require.Error(t, err)
	assert.Contains(t, p.ErrorMessage(), "Expected variable name")
}

func TestParseLexicalErrorSurfacesAsParseError(t *testing.T) {
	prog, _, err := parseSource(t, "int x = 1;\n@\nint y = 2;")
	require.Error(t, err)
	require.NotNil(t, prog)
	// Statements on both sides of the bad character survive.
	assert.Len(t, prog.Stmts, 2)
}

func TestParseUnterminatedStringRecovery(t *testing.T) {
	prog, _, err := parseSource(t, "string s = \"never closed;")
	require.Error(t, err)
	require.NotNil(t, prog)
	assert.Empty(t, prog.Stmts)
}

func TestParseNodeCount(t *testing.T) {
	_, p, err := parseSource(t, "int x = 1 + 2;")
	require.NoError(t, err)
	// Program, VarDecl, Binary, two Literals.
	assert.Equal(t, 5, p.NodeCount())
}

func TestParseInternedNamesOutliveSource(t *testing.T) {
	src := "int answer = 42;\nreturn answer;"
	prog, _, err := parseSource(t, src)
	require.NoError(t, err)

	decl := prog.Stmts[0].(*VarDecl)
	ret := prog.Stmts[1].(*Return)
	assert.Equal(t, "answer", decl.Name)
	assert.Equal(t, "answer", ret.Value.(*Identifier).Name)
}

func TestParserReset(t *testing.T) {
	p := NewParser(NewLexer("int x = 1;", "test.shay"))
	_, err := p.Parse()
	require.NoError(t, err)
	require.NotZero(t, p.NodeCount())

	p.Reset()
	assert.Zero(t, p.NodeCount())
}

func TestParseLargeProgram(t *testing.T) {
	// The statement list is unbounded; well past any fixed-array size.
	var src []byte
	for i := 0; i < 2000; i++ {
		src = append(src, "int v = 1;\n"...)
	}
	prog, _, err := parseSource(t, string(src))
	require.NoError(t, err)
	assert.Len(t, prog.Stmts, 2000)
}
