package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRoundTrip(t *testing.T) {
	src := `int x = 42;
int y = x + 10;
int result = x * y;
return result;
`
	res, err := Compile(src, "roundtrip.shay", TargetC)
	require.NoError(t, err)

	// x = 42, y = 52, result = 2184; the compiled C exits with 2184.
	want := `#include <stdio.h>
#include <stdlib.h>
#include <stdbool.h>
#include <string.h>

int main() {
    int x = 42;
    int y = (x + 10);
    int result = (x * y);
    return result;
}
`
	assert.Equal(t, want, res.Output)
	assert.Equal(t, TargetC, res.Target)
	assert.NotZero(t, res.Tokens)
	assert.NotZero(t, res.Nodes)
	assert.NotZero(t, res.Lines)
}

func TestCompileParseErrorPropagates(t *testing.T) {
	_, err := Compile("int = 5;", "bad.shay", TargetC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse bad.shay")
	assert.Contains(t, err.Error(), "Expected variable name")
}

func TestCompileLexErrorPropagates(t *testing.T) {
	_, err := Compile(`string s = "open;`, "bad.shay", TargetC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string")
}

func TestCompileGenerateErrorPropagates(t *testing.T) {
	_, err := Compile("int x = -1;", "neg.shay", TargetC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate neg.shay")
}

func TestCompileTargetNotImplemented(t *testing.T) {
	_, err := Compile("int x = 1;", "x.shay", TargetPython)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not implemented")
}

func TestCompileProducesNoOutputOnFailure(t *testing.T) {
	res, err := Compile("42 = x;", "bad.shay", TargetC)
	require.Error(t, err)
	assert.Nil(t, res)
}
