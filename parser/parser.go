// Package parser implements dune's recursive-descent parser, grounded on
// the teacher's parser/rdparser/parser.go two-token-lookahead design and
// extended with precedence-climbing for the binary operator cascade
// spec.md §4.2 describes.
package parser

import (
	"fmt"
	"strconv"

	"github.com/adam-mcdaniel/dune/ast"
	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/lexer"
	"github.com/adam-mcdaniel/dune/token"
)

// Parser holds a fully-tokenized input and a two-token lookahead window,
// mirroring the teacher's Parser{lex, curr, peek}.
type Parser struct {
	file string
	toks []*token.Token
	pos  int
}

// New tokenizes src and returns a Parser ready to produce statements.
func New(file, src string) (*Parser, error) {
	toks, err := lexer.Tokenize(file, src)
	if err != nil {
		return nil, err
	}
	return &Parser{file: file, toks: toks}, nil
}

// ParseProgram parses a full program: statements separated by ';' or
// newlines, terminated by EOF.
func ParseProgram(file, src string) ([]ast.Expr, error) {
	p, err := New(file, src)
	if err != nil {
		return nil, err
	}
	return p.Program()
}

// ParseExpression parses a single expression from src, ignoring command
// form (used by the `parse` builtin, which always parses expression
// form — spec.md §4.2's command-form rule only applies to top-level REPL
// statements, not to programmatic parsing of a string).
func ParseExpression(file, src string) (ast.Expr, error) {
	p, err := New(file, src)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if p.curr().Type != token.EOF {
		return nil, p.errorf("unexpected trailing input after expression")
	}
	return e, nil
}

func (p *Parser) curr() *token.Token { return p.at(0) }
func (p *Parser) peek() *token.Token { return p.at(1) }

func (p *Parser) at(n int) *token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[idx]
}

func (p *Parser) advance() *token.Token {
	t := p.curr()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	if p.curr().Type != typ {
		return nil, p.unexpected(typ)
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(expected ...token.Type) error {
	c := p.curr()
	if c.Type == token.EOF {
		return &lang.Error{Kind: lang.ErrIncomplete, Span: c.Span, Message: "unexpected end of input"}
	}
	return &lang.Error{
		Kind: lang.ErrParseError, Span: c.Span,
		Message: fmt.Sprintf("unexpected %s %q, expected %s", c.Type, c.Text, expectedList(expected)),
	}
}

func expectedList(types []token.Type) string {
	if len(types) == 0 {
		return "a different token"
	}
	s := types[0].String()
	for _, t := range types[1:] {
		s += " or " + t.String()
	}
	return s
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &lang.Error{Kind: lang.ErrParseError, Span: p.curr().Span, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) skipNewlines() {
	for p.curr().Type == token.NEWLINE || p.curr().Type == token.SEMI {
		p.advance()
	}
}

// IsIncomplete reports whether err signals that more input is needed
// before parsing can continue (spec.md §4.2's Incomplete), as opposed to
// a genuine syntax error.
func IsIncomplete(err error) bool {
	e, ok := err.(*lang.Error)
	return ok && e.Kind == lang.ErrIncomplete
}

// Program parses every top-level statement until EOF.
func (p *Parser) Program() ([]ast.Expr, error) {
	var stmts []ast.Expr
	p.skipNewlines()
	for p.curr().Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.curr().Type != token.EOF && p.curr().Type != token.SEMI && p.curr().Type != token.NEWLINE {
			return nil, p.unexpected(token.SEMI, token.NEWLINE, token.EOF)
		}
		p.skipNewlines()
	}
	return stmts, nil
}

// parseStatement implements spec.md §4.2's "statement := 'let' name
// ('=' expr)? | target '=' expr | expr" together with command-form
// disambiguation.
func (p *Parser) parseStatement() (ast.Expr, error) {
	if p.curr().Type == token.LET {
		return p.parseLet()
	}
	if p.curr().Type == token.SYMBOL && p.looksLikeCommandForm() {
		return p.parseCommandForm()
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.curr().Type == token.ASSIGN && isAssignTarget(expr) {
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.Assign{Base: ast.At(expr.Span().Union(value.Span())), Target: expr, Value: value}, nil
	}
	return expr, nil
}

// isAssignTarget reports whether expr can appear on the left of '=', per
// spec.md §4.4: a bare name, an index (`a[i] = x`), or a field
// (`a@b = x`).
func isAssignTarget(expr ast.Expr) bool {
	switch expr.(type) {
	case ast.Symbol, ast.Index, ast.Field:
		return true
	}
	return false
}

// looksLikeCommandForm implements spec.md §4.2's precise rule: the current
// token is a Symbol, and the next token starts an atom that cannot
// continue an expression (not an infix operator, '(', '@', or '[').
func (p *Parser) looksLikeCommandForm() bool {
	next := p.peek().Type
	if next.IsOperator() {
		return false
	}
	switch next {
	case token.LPAREN, token.AT, token.LBRACK, token.ARROW, token.ASSIGN, token.COLON:
		return false
	}
	return startsAtom(next)
}

func startsAtom(t token.Type) bool {
	switch t {
	case token.SYMBOL, token.INT, token.FLOAT, token.STRING, token.STRING_RAW,
		token.QUOTE, token.TRUE, token.FALSE, token.NONE, token.LBRACE:
		return true
	}
	return false
}

func (p *Parser) parseLet() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // 'let'
	nameText, err := p.parseBindingName()
	if err != nil {
		return nil, err
	}
	binding := ast.LetBinding{Name: nameText}
	if p.curr().Type == token.ASSIGN {
		p.advance()
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		binding.Value = v
	}
	return ast.Let{Base: ast.At(start.Union(p.prevSpan())), Bindings: []ast.LetBinding{binding}}, nil
}

// parseBindingName implements spec.md §4.4/§9's quoted-operator identifier:
// `let '+' = ...` rebinds the `+` operator, so a single-quoted raw-string
// token is accepted wherever a plain binding name is, its unquoted text
// used as the name directly (no lexer change needed, since `'+'` already
// tokenizes as a STRING_RAW whose body is "+").
func (p *Parser) parseBindingName() (string, error) {
	if p.curr().Type == token.STRING_RAW {
		t := p.advance()
		return rawStringValue(t.Text), nil
	}
	name, err := p.expect(token.SYMBOL)
	if err != nil {
		return "", err
	}
	return name.Text, nil
}

func (p *Parser) prevSpan() token.Span {
	if p.pos == 0 {
		return p.toks[0].Span
	}
	return p.toks[p.pos-1].Span
}

// parseCommandForm parses `Symbol atom*` greedily until a statement
// terminator, producing Apply(Symbol, [atoms…]) per spec.md §4.2.
func (p *Parser) parseCommandForm() (ast.Expr, error) {
	name := p.advance()
	callee := ast.Symbol{Base: ast.At(name.Span), Name: name.Text}
	var args []ast.Expr
	for startsAtom(p.curr().Type) || p.curr().Type == token.MINUS {
		a, err := p.parseCommandAtom()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return ast.Apply{Base: ast.At(callee.Span().Union(p.prevSpan())), Callee: callee, Args: args, Command: true}, nil
}

// parseCommandAtom parses one command-form argument: an atom with no
// trailers or infix operators, since command arguments are plain
// whitespace-separated tokens (`ls -la foo`), not sub-expressions. A bare
// '-' after the first argument (e.g. the `-` in `diff a.txt -`) never
// reaches lexer.glueIfSymbolFollows's
// symbol-merging case, so it survives as a standalone MINUS token and is
// rendered here as the one-character symbol "-".
func (p *Parser) parseCommandAtom() (ast.Expr, error) {
	if p.curr().Type == token.MINUS {
		t := p.advance()
		return ast.Symbol{Base: ast.At(t.Span), Name: "-"}, nil
	}
	return p.parseAtom()
}

// --- expr := lambda | macro | pipe ---

func (p *Parser) parseExpr() (ast.Expr, error) {
	switch {
	case p.curr().Type == token.MACRO:
		return p.parseMacro()
	case p.curr().Type == token.SYMBOL && p.peek().Type == token.ARROW:
		return p.parseLambda()
	case p.curr().Type == token.LPAREN && p.looksLikeParamList():
		return p.parseLambda()
	}
	return p.parseApply()
}

// parseApply implements juxtaposition application (original_source's
// parse_apply): a callable expression directly followed by one or more
// argument atoms, with no parens or commas, is a call anywhere an
// expression is allowed, not just at the start of a statement where
// parseCommandForm already covers it. This is what makes spec.md §8's
// `(f 3) 4` a call rather than a syntax error. If/for/while conditions
// bypass this level (they call parsePipe directly) so a following `{`
// block is never mistaken for a juxtaposed argument.
func (p *Parser) parseApply() (ast.Expr, error) {
	e, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	for startsAtom(p.curr().Type) || p.curr().Type == token.MINUS {
		a, err := p.parseCommandAtom()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if len(args) == 0 {
		return e, nil
	}
	return ast.Apply{Base: ast.At(e.Span().Union(p.prevSpan())), Callee: e, Args: args}, nil
}

func (p *Parser) parseParams() (ast.Params, error) {
	if p.curr().Type == token.SYMBOL {
		name := p.advance()
		return ast.Params{Names: []string{name.Text}}, nil
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return ast.Params{}, err
	}
	var names []string
	if p.curr().Type != token.RPAREN {
		for {
			name, err := p.expect(token.SYMBOL)
			if err != nil {
				return ast.Params{}, err
			}
			names = append(names, name.Text)
			if p.curr().Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return ast.Params{}, err
	}
	return ast.Params{Names: names}, nil
}

func (p *Parser) parseLambda() (ast.Expr, error) {
	start := p.curr().Span
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.Lambda{Base: ast.At(start.Union(body.Span())), Params: params, Body: body}, nil
}

func (p *Parser) parseMacro() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // 'macro'
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.Macro{Base: ast.At(start.Union(body.Span())), Params: params, Body: body}, nil
}

// looksLikeParamList scans ahead from a '(' to see whether it opens a
// lambda parameter list (a balanced, comma-separated run of bare Symbol
// tokens followed by '->') rather than a parenthesized expression. Pure
// lookahead: does not mutate parser position.
func (p *Parser) looksLikeParamList() bool {
	i := p.pos
	if p.toks[i].Type != token.LPAREN {
		return false
	}
	i++
	for {
		t := p.toks[i]
		switch t.Type {
		case token.RPAREN:
			i++
			return i < len(p.toks) && p.toks[i].Type == token.ARROW
		case token.SYMBOL:
			i++
			if i >= len(p.toks) {
				return false
			}
			if p.toks[i].Type == token.COMMA {
				i++
				continue
			}
			if p.toks[i].Type == token.RPAREN {
				continue
			}
			return false
		default:
			return false
		}
	}
}

// --- binary operator precedence cascade ---

func (p *Parser) parsePipe() (ast.Expr, error) {
	return p.parseBinaryLeft([]token.Type{token.PIPE}, p.parseLogicOr)
}

func (p *Parser) parseLogicOr() (ast.Expr, error) {
	return p.parseBinaryLeft([]token.Type{token.OROR}, p.parseLogicAnd)
}

func (p *Parser) parseLogicAnd() (ast.Expr, error) {
	return p.parseBinaryLeft([]token.Type{token.ANDAND}, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryLeft([]token.Type{token.EQ, token.NEQ}, p.parseComparison)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseBinaryLeft([]token.Type{token.LT, token.LE, token.GT, token.GE}, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLeft([]token.Type{token.PLUS, token.MINUS}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLeft([]token.Type{token.STAR, token.SLASH, token.PERCENT}, p.parseUnary)
}

func (p *Parser) parseBinaryLeft(ops []token.Type, next func() (ast.Expr, error)) (ast.Expr, error) {
	lhs, err := next()
	if err != nil {
		return nil, err
	}
	for oneOf(p.curr().Type, ops) {
		opTok := p.advance()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		lhs = ast.BinOp{Base: ast.At(lhs.Span().Union(rhs.Span())), Op: opTok.Type.String(), LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func oneOf(t token.Type, set []token.Type) bool {
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.curr().Type == token.BANG || p.curr().Type == token.MINUS {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnOp{Base: ast.At(opTok.Span.Union(operand.Span())), Op: opTok.Type.String(), Operand: operand}, nil
	}
	return p.parseCall()
}

// --- call/index/field trailers ---

func (p *Parser) parseCall() (ast.Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.curr().Type {
		case token.LPAREN:
			e, err = p.parseCallTrailer(e)
		case token.AT:
			e, err = p.parseFieldTrailer(e)
		case token.LBRACK:
			e, err = p.parseIndexTrailer(e)
		default:
			return e, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseCallTrailer(callee ast.Expr) (ast.Expr, error) {
	p.advance() // '('
	var args []ast.Expr
	if p.curr().Type != token.RPAREN {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.curr().Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.Apply{Base: ast.At(callee.Span().Union(end.Span)), Callee: callee, Args: args}, nil
}

func (p *Parser) parseFieldTrailer(container ast.Expr) (ast.Expr, error) {
	p.advance() // '@'
	name, err := p.expect(token.SYMBOL)
	if err != nil {
		return nil, err
	}
	return ast.Field{Base: ast.At(container.Span().Union(name.Span)), Container: container, Name: name.Text}, nil
}

func (p *Parser) parseIndexTrailer(container ast.Expr) (ast.Expr, error) {
	p.advance() // '['
	key, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RBRACK)
	if err != nil {
		return nil, err
	}
	return ast.Index{Base: ast.At(container.Span().Union(end.Span)), Container: container, Key: key}, nil
}

// --- atoms ---

func (p *Parser) parseAtom() (ast.Expr, error) {
	t := p.curr()
	switch t.Type {
	case token.INT:
		p.advance()
		return parseIntLiteral(t)
	case token.FLOAT:
		p.advance()
		return parseFloatLiteral(t)
	case token.STRING:
		p.advance()
		return ast.String{Base: ast.At(t.Span), Value: unescapeString(t.Text)}, nil
	case token.STRING_RAW:
		p.advance()
		return ast.String{Base: ast.At(t.Span), Value: rawStringValue(t.Text)}, nil
	case token.TRUE:
		p.advance()
		return ast.Boolean{Base: ast.At(t.Span), Value: true}, nil
	case token.FALSE:
		p.advance()
		return ast.Boolean{Base: ast.At(t.Span), Value: false}, nil
	case token.NONE:
		p.advance()
		return ast.None{Base: ast.At(t.Span)}, nil
	case token.SYMBOL:
		p.advance()
		return ast.Symbol{Base: ast.At(t.Span), Name: t.Text}, nil
	case token.QUOTE:
		return p.parseQuote()
	case token.LPAREN:
		return p.parseGroup()
	case token.LBRACK:
		return p.parseList()
	case token.LBRACE:
		return p.parseBraced()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	}
	return nil, p.unexpected(token.SYMBOL, token.INT, token.STRING, token.LPAREN, token.LBRACK, token.LBRACE)
}

func parseIntLiteral(t *token.Token) (ast.Expr, error) {
	v, err := strconv.ParseInt(t.Text, 10, 64)
	if err != nil {
		return nil, &lang.Error{Kind: lang.ErrParseError, Span: t.Span, Message: "invalid integer literal: " + t.Text}
	}
	return ast.Integer{Base: ast.At(t.Span), Value: v}, nil
}

func parseFloatLiteral(t *token.Token) (ast.Expr, error) {
	f, err := parseFloatText(t.Text)
	if err != nil {
		return nil, &lang.Error{Kind: lang.ErrParseError, Span: t.Span, Message: "invalid float literal: " + t.Text}
	}
	return ast.Float{Base: ast.At(t.Span), Value: f}, nil
}

// parseQuote implements spec.md §4.2's quoting: `'x` desugars to
// Quote(Symbol("x")); `'(a b)` quotes the inner tree verbatim; a quoted
// operator token (`'+`) is accepted too, per §9's open question
// resolution (see DESIGN.md).
func (p *Parser) parseQuote() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // '\''
	if p.curr().Type.IsOperator() {
		opTok := p.advance()
		sym := ast.Symbol{Base: ast.At(opTok.Span), Name: opTok.Type.String()}
		return ast.Quote{Base: ast.At(start.Union(opTok.Span)), Expr: sym}, nil
	}
	inner, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return ast.Quote{Base: ast.At(start.Union(inner.Span())), Expr: inner}, nil
}

func (p *Parser) parseGroup() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // '('
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.Group{Base: ast.At(start.Union(end.Span)), Inner: inner}, nil
}

func (p *Parser) parseList() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // '['
	var elems []ast.Expr
	if p.curr().Type != token.RBRACK {
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.curr().Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	end, err := p.expect(token.RBRACK)
	if err != nil {
		return nil, err
	}
	return ast.List{Base: ast.At(start.Union(end.Span)), Elems: elems}, nil
}

// parseBraced disambiguates `{ ... }` between a Map literal
// (`{key: value, ...}`) and a Block (`{ stmt; stmt }`) by looking one
// expression ahead for a following COLON.
func (p *Parser) parseBraced() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // '{'
	if p.curr().Type == token.RBRACE {
		end := p.advance()
		return ast.Map{Base: ast.At(start.Union(end.Span))}, nil
	}
	save := p.pos
	first, err := p.parseExpr()
	if err == nil && p.curr().Type == token.COLON {
		return p.finishMap(start, first)
	}
	p.pos = save
	return p.finishBlock(start)
}

func (p *Parser) finishMap(start token.Span, firstKey ast.Expr) (ast.Expr, error) {
	p.advance() // ':'
	firstVal, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	pairs := []ast.MapPair{{Key: firstKey, Value: firstVal}}
	for p.curr().Type == token.COMMA {
		p.advance()
		if p.curr().Type == token.RBRACE {
			break
		}
		k, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.MapPair{Key: k, Value: v})
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return ast.Map{Base: ast.At(start.Union(end.Span)), Pairs: pairs}, nil
}

func (p *Parser) finishBlock(start token.Span) (ast.Expr, error) {
	var exprs []ast.Expr
	p.skipNewlines()
	for p.curr().Type != token.RBRACE {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, stmt)
		if p.curr().Type != token.RBRACE {
			if p.curr().Type != token.SEMI && p.curr().Type != token.NEWLINE {
				return nil, p.unexpected(token.SEMI, token.NEWLINE, token.RBRACE)
			}
			p.skipNewlines()
		}
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return ast.Block{Base: ast.At(start.Union(end.Span)), Exprs: exprs}, nil
}

func (p *Parser) parseIf() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // 'if'
	cond, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBraceAtomOrExpr()
	if err != nil {
		return nil, err
	}
	n := ast.If{Base: ast.At(start.Union(then.Span())), Cond: cond, Then: then}
	if p.curr().Type == token.ELSE {
		p.advance()
		els, err := p.parseBraceAtomOrExpr()
		if err != nil {
			return nil, err
		}
		n.Else = els
		n.Base = ast.At(start.Union(els.Span()))
	}
	return n, nil
}

// parseBraceAtomOrExpr parses a control-form body: a `{ ... }` block if
// present, otherwise a full expression, so `if c { a } else { b }` and
// `if c then else e` (spec.md's grammar sketch) both work.
func (p *Parser) parseBraceAtomOrExpr() (ast.Expr, error) {
	if p.curr().Type == token.LBRACE {
		return p.parseBraced()
	}
	return p.parseExpr()
}

func (p *Parser) parseFor() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // 'for'
	name, err := p.expect(token.SYMBOL)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	iter, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBraceAtomOrExpr()
	if err != nil {
		return nil, err
	}
	return ast.For{Base: ast.At(start.Union(body.Span())), Name: name.Text, Iter: iter, Body: body}, nil
}

func (p *Parser) parseWhile() (ast.Expr, error) {
	start := p.curr().Span
	p.advance() // 'while'
	cond, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBraceAtomOrExpr()
	if err != nil {
		return nil, err
	}
	return ast.While{Base: ast.At(start.Union(body.Span())), Cond: cond, Body: body}, nil
}
