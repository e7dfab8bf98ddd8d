package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeywordsAndSymbol(t *testing.T) {
	assert.Equal(t, LET, Lookup("let"))
	assert.Equal(t, IF, Lookup("if"))
	assert.Equal(t, WHILE, Lookup("while"))
	assert.Equal(t, SYMBOL, Lookup("notakeyword"))
}

func TestIsOperator(t *testing.T) {
	assert.True(t, PLUS.IsOperator())
	assert.True(t, BANG.IsOperator())
	assert.True(t, PIPE.IsOperator())
	assert.False(t, LPAREN.IsOperator())
	assert.False(t, SYMBOL.IsOperator())
}

func TestTypeStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "+", PLUS.String())
	assert.Equal(t, "let", LET.String())
	assert.Equal(t, "invalid", Type(9999).String())
}

func TestSpanStringWithAndWithoutFile(t *testing.T) {
	s := Span{Line: 2, Col: 5}
	assert.Equal(t, "2:5", s.String())

	s.File = "foo.dune"
	assert.Equal(t, "foo.dune:2:5", s.String())
}

func TestSpanUnion(t *testing.T) {
	a := Span{Start: 5, End: 10, Line: 1, Col: 6}
	b := Span{Start: 2, End: 8, Line: 1, Col: 3}
	u := a.Union(b)
	assert.Equal(t, 2, u.Start)
	assert.Equal(t, 10, u.End)
	assert.Equal(t, 3, u.Col, "Union should adopt the earlier span's line/col when it starts first")
}

func TestTokenStringNilSafe(t *testing.T) {
	var tok *Token
	assert.Equal(t, "<nil>", tok.String())

	tok = &Token{Type: SYMBOL, Text: "foo"}
	assert.Equal(t, `symbol("foo")`, tok.String())
}
