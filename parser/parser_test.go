package parser

import (
	"testing"

	"github.com/adam-mcdaniel/dune/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArithmeticPrecedence(t *testing.T) {
	e, err := ParseExpression("t.dune", "1 + 2 * 3")
	require.NoError(t, err)
	bin, ok := e.(ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	assert.IsType(t, ast.Integer{}, bin.LHS)
	rhs, ok := bin.RHS.(ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParseCommandFormWhenFollowedByAtom(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "ls -la foo")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	apply, ok := stmts[0].(ast.Apply)
	require.True(t, ok)
	assert.True(t, apply.Command)
	callee, ok := apply.Callee.(ast.Symbol)
	require.True(t, ok)
	assert.Equal(t, "ls", callee.Name)
	require.Len(t, apply.Args, 2)
	assert.Equal(t, "-la", apply.Args[0].(ast.Symbol).Name)
	assert.Equal(t, "foo", apply.Args[1].(ast.Symbol).Name)
}

func TestParseExpressionFormWhenFollowedByOperator(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "foo + 1")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	bin, ok := stmts[0].(ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestParseExpressionFormWhenFollowedByParenIsCall(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "f(1, 2)")
	require.NoError(t, err)
	apply, ok := stmts[0].(ast.Apply)
	require.True(t, ok)
	assert.False(t, apply.Command)
	assert.Len(t, apply.Args, 2)
}

func TestParseLambdaSingleParam(t *testing.T) {
	e, err := ParseExpression("t.dune", "x -> x + 1")
	require.NoError(t, err)
	l, ok := e.(ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, l.Params.Names)
}

func TestParseLambdaMultipleParams(t *testing.T) {
	e, err := ParseExpression("t.dune", "(x, y) -> x + y")
	require.NoError(t, err)
	l, ok := e.(ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, l.Params.Names)
}

func TestParseParenGroupIsNotMistakenForLambda(t *testing.T) {
	e, err := ParseExpression("t.dune", "(1 + 2)")
	require.NoError(t, err)
	g, ok := e.(ast.Group)
	require.True(t, ok)
	assert.IsType(t, ast.BinOp{}, g.Inner)
}

func TestParseMacro(t *testing.T) {
	e, err := ParseExpression("t.dune", "macro name -> name")
	require.NoError(t, err)
	m, ok := e.(ast.Macro)
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, m.Params.Names)
}

func TestParseMapLiteral(t *testing.T) {
	e, err := ParseExpression("t.dune", "{a: 1, b: 2}")
	require.NoError(t, err)
	m, ok := e.(ast.Map)
	require.True(t, ok)
	require.Len(t, m.Pairs, 2)
	assert.Equal(t, "a", m.Pairs[0].Key.(ast.Symbol).Name)
}

func TestParseEmptyBracesIsEmptyMap(t *testing.T) {
	e, err := ParseExpression("t.dune", "{}")
	require.NoError(t, err)
	m, ok := e.(ast.Map)
	require.True(t, ok)
	assert.Empty(t, m.Pairs)
}

func TestParseBlockWhenNoColonFollows(t *testing.T) {
	e, err := ParseExpression("t.dune", "{ let x = 1; x + 1 }")
	require.NoError(t, err)
	b, ok := e.(ast.Block)
	require.True(t, ok)
	require.Len(t, b.Exprs, 2)
	assert.IsType(t, ast.Let{}, b.Exprs[0])
}

func TestParseQuoteSymbol(t *testing.T) {
	e, err := ParseExpression("t.dune", "'x")
	require.NoError(t, err)
	q, ok := e.(ast.Quote)
	require.True(t, ok)
	assert.Equal(t, "x", q.Expr.(ast.Symbol).Name)
}

func TestParseQuoteGroup(t *testing.T) {
	e, err := ParseExpression("t.dune", "'(1 + 2)")
	require.NoError(t, err)
	q, ok := e.(ast.Quote)
	require.True(t, ok)
	assert.IsType(t, ast.Group{}, q.Expr)
}

func TestParseQuoteOperator(t *testing.T) {
	e, err := ParseExpression("t.dune", "'+")
	require.NoError(t, err)
	q, ok := e.(ast.Quote)
	require.True(t, ok)
	assert.Equal(t, "+", q.Expr.(ast.Symbol).Name)
}

func TestParseLetWithQuotedOperatorName(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "let '+' = (a, b) -> a * b")
	require.NoError(t, err)
	l, ok := stmts[0].(ast.Let)
	require.True(t, ok)
	require.Len(t, l.Bindings, 1)
	assert.Equal(t, "+", l.Bindings[0].Name)
}

func TestParseLetWithoutValue(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "let x")
	require.NoError(t, err)
	l, ok := stmts[0].(ast.Let)
	require.True(t, ok)
	assert.Nil(t, l.Bindings[0].Value)
}

func TestParseIfElse(t *testing.T) {
	e, err := ParseExpression("t.dune", "if true { 1 } else { 2 }")
	require.NoError(t, err)
	ifExpr, ok := e.(ast.If)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Else)
}

func TestParseForLoop(t *testing.T) {
	e, err := ParseExpression("t.dune", "for x in xs { x }")
	require.NoError(t, err)
	f, ok := e.(ast.For)
	require.True(t, ok)
	assert.Equal(t, "x", f.Name)
}

func TestParseWhileLoop(t *testing.T) {
	e, err := ParseExpression("t.dune", "while true { 1 }")
	require.NoError(t, err)
	assert.IsType(t, ast.While{}, e)
}

func TestParseFieldAndIndexTrailers(t *testing.T) {
	e, err := ParseExpression("t.dune", "a@b[0]")
	require.NoError(t, err)
	idx, ok := e.(ast.Index)
	require.True(t, ok)
	field, ok := idx.Container.(ast.Field)
	require.True(t, ok)
	assert.Equal(t, "b", field.Name)
}

func TestParseIncompleteInputSignalsIncomplete(t *testing.T) {
	_, err := ParseProgram("t.dune", "let x = (1+")
	require.Error(t, err)
	assert.True(t, IsIncomplete(err), "unterminated group should be reported as incomplete, not a hard syntax error")
}

func TestParseCompletingIncompleteInputSucceeds(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "let x = (1+ 2)")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	_, err := ParseExpression("t.dune", "1)")
	assert.Error(t, err)
	assert.False(t, IsIncomplete(err))
}

// TestParseJuxtapositionAfterGroupIsApply is spec.md §8's `(f 3) 4`
// scenario: a parenthesized callable directly followed by another atom
// is a call, not a syntax error.
func TestParseJuxtapositionAfterGroupIsApply(t *testing.T) {
	e, err := ParseExpression("t.dune", "(f 3) 4")
	require.NoError(t, err)
	apply, ok := e.(ast.Apply)
	require.True(t, ok)
	require.Len(t, apply.Args, 1)
	assert.IsType(t, ast.Integer{}, apply.Args[0])
	group, ok := apply.Callee.(ast.Group)
	require.True(t, ok)
	inner, ok := group.Inner.(ast.Apply)
	require.True(t, ok)
	callee, ok := inner.Callee.(ast.Symbol)
	require.True(t, ok)
	assert.Equal(t, "f", callee.Name)
}

func TestParseJuxtapositionInLetValue(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "let y = f 3")
	require.NoError(t, err)
	let, ok := stmts[0].(ast.Let)
	require.True(t, ok)
	apply, ok := let.Bindings[0].Value.(ast.Apply)
	require.True(t, ok)
	require.Len(t, apply.Args, 1)
}

func TestParseIfConditionIsUnaffectedByJuxtaposition(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "if cond { 1 } else { 2 }")
	require.NoError(t, err)
	n, ok := stmts[0].(ast.If)
	require.True(t, ok)
	assert.IsType(t, ast.Symbol{}, n.Cond)
	assert.IsType(t, ast.Block{}, n.Then)
}

func TestParseMultiStatementProgram(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "let x = 1\nlet y = 2\nx + y")
	require.NoError(t, err)
	require.Len(t, stmts, 3)
}

func TestParseSymbolAssignment(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "x = 5")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assign, ok := stmts[0].(ast.Assign)
	require.True(t, ok)
	target, ok := assign.Target.(ast.Symbol)
	require.True(t, ok)
	assert.Equal(t, "x", target.Name)
	assert.IsType(t, ast.Integer{}, assign.Value)
}

func TestParseIndexAssignment(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "a[0] = 1")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assign, ok := stmts[0].(ast.Assign)
	require.True(t, ok)
	assert.IsType(t, ast.Index{}, assign.Target)
}

func TestParseFieldAssignment(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "a@b = 1")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assign, ok := stmts[0].(ast.Assign)
	require.True(t, ok)
	field, ok := assign.Target.(ast.Field)
	require.True(t, ok)
	assert.Equal(t, "b", field.Name)
}

func TestParseAssignmentRHSIsFullExpression(t *testing.T) {
	stmts, err := ParseProgram("t.dune", "x = 1 + 2 * 3")
	require.NoError(t, err)
	assign, ok := stmts[0].(ast.Assign)
	require.True(t, ok)
	assert.IsType(t, ast.BinOp{}, assign.Value)
}
