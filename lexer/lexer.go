// Package lexer turns dune source text into a stream of tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/adam-mcdaniel/dune/token"
)

// Lexer scans a single source file into tokens on demand.
type Lexer struct {
	s    *token.Scanner
	file string
	err  error
}

// New returns a Lexer reading src, labeling spans with file.
func New(file, src string) *Lexer {
	return &Lexer{s: token.NewScanner(file, strings.NewReader(src)), file: file}
}

// Err returns the most recent scanning error encountered, if any; scanning
// continues past errors, and each one replaces the previous.
func (l *Lexer) Err() error {
	return l.err
}

// Tokenize scans the entire input and returns its tokens, always ending in
// an EOF token. A lexical error yields an ILLEGAL token in place of the
// offending run and continues, except for an unterminated string, which
// truncates the stream.
func Tokenize(file, src string) ([]*token.Token, error) {
	l := New(file, src)
	var toks []*token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks, l.Err()
}

// Next scans and returns the next token, skipping whitespace and comments
// but not newlines, since the parser uses newlines as statement separators.
func (l *Lexer) Next() *token.Token {
	for {
		if err := l.s.ScanRune(); err != nil {
			l.s.Ignore()
			return &token.Token{Type: token.EOF, Span: l.s.LocStart()}
		}
		c := l.s.Rune()
		switch {
		case c == '\n':
			return l.s.EmitToken(token.NEWLINE)
		case c == ' ' || c == '\t' || c == '\r':
			l.s.Ignore()
			continue
		case c == '#':
			l.skipComment()
			continue
		case c == '"':
			return l.lexString()
		case c == '\'' && isSymbolStartRune(l.peekRune()):
			// a lone quote not immediately starting a raw-string body is the
			// quote operator; `'(...)` and `'sym` both start this way.
			return l.s.EmitToken(token.QUOTE)
		case c == '\'':
			return l.lexRawString()
		case isDigit(c):
			return l.lexNumber()
		case isSymbolChar(c) && c != '-' && c != '/':
			// a leading '-' or '/' goes to lexOperatorOrPunct, which glues
			// it into a following symbol run only when one follows.
			return l.lexSymbolOrKeyword()
		default:
			return l.lexOperatorOrPunct()
		}
	}
}

func (l *Lexer) peekRune() rune {
	r, ok := l.s.Peek()
	if !ok {
		return 0
	}
	return r
}

func (l *Lexer) skipComment() {
	for {
		r, ok := l.s.Peek()
		if !ok || r == '\n' {
			break
		}
		l.s.ScanRune()
	}
	l.s.Ignore()
}

// lexString scans a double-quoted, C-style-escaped string literal. The
// opening and closing quotes are included in Text; the parser's
// unescapeString (parser/literals.go) strips and unescapes them.
func (l *Lexer) lexString() *token.Token {
	for {
		r, ok := l.s.Peek()
		if !ok {
			l.err = fmt.Errorf("%s: unterminated string literal", l.s.LocStart())
			return l.s.EmitToken(token.ILLEGAL)
		}
		if r == '"' {
			l.s.ScanRune()
			return l.s.EmitToken(token.STRING)
		}
		if r == '\\' {
			l.s.ScanRune()
			l.s.ScanRune() // consume the escaped character verbatim
			continue
		}
		l.s.ScanRune()
	}
}

// lexRawString scans a single-quoted literal with no escape processing; the
// string ends at the next unescaped single quote. A quote followed by a run
// of operator characters that is then followed by neither another quote
// nor a symbol character (`'+`, `'==`) is the quote operator instead, so
// the operator lexes as its own token; `'+'` and `'/path'` stay raw strings.
func (l *Lexer) lexRawString() *token.Token {
	for i := 0; ; i++ {
		r, ok := l.s.PeekAt(i)
		if ok && strings.ContainsRune("+-*/%=!<>&|", r) {
			continue
		}
		if i > 0 && (!ok || (r != '\'' && !isSymbolChar(r))) {
			return l.s.EmitToken(token.QUOTE)
		}
		break
	}
	for {
		r, ok := l.s.Peek()
		if !ok {
			l.err = fmt.Errorf("%s: unterminated raw string literal", l.s.LocStart())
			return l.s.EmitToken(token.ILLEGAL)
		}
		if r == '\'' {
			l.s.ScanRune()
			return l.s.EmitToken(token.STRING_RAW)
		}
		l.s.ScanRune()
	}
}

func (l *Lexer) lexNumber() *token.Token {
	typ := token.INT
	for {
		r, ok := l.s.Peek()
		if !ok {
			break
		}
		if isDigit(r) {
			l.s.ScanRune()
			continue
		}
		if r == '.' && typ == token.INT {
			if next, ok2 := l.s.PeekAt(1); ok2 && isDigit(next) {
				typ = token.FLOAT
				l.s.ScanRune()
				continue
			}
			break
		}
		if r == 'e' || r == 'E' {
			sign, hasSign := l.s.PeekAt(1)
			digitPos := 1
			if hasSign && (sign == '+' || sign == '-') {
				digitPos = 2
			}
			d, ok2 := l.s.PeekAt(digitPos)
			if !ok2 || !isDigit(d) {
				break // not an exponent; leave 'e' for a trailing symbol scan
			}
			l.s.ScanRune() // 'e'/'E'
			if digitPos == 2 {
				l.s.ScanRune() // sign
			}
			typ = token.FLOAT
			continue
		}
		break
	}
	return l.s.EmitToken(typ)
}

func (l *Lexer) lexSymbolOrKeyword() *token.Token {
	for {
		r, ok := l.s.Peek()
		if !ok || !isSymbolChar(r) {
			break
		}
		l.s.ScanRune()
	}
	text := l.s.Text()
	return l.s.EmitToken(token.Lookup(text))
}

// lexOperatorOrPunct handles everything that isn't whitespace, a string, a
// digit, or a symbol-char run. Multi-char operators are tried longest
// first. A standalone '-' or other symbol-char operator immediately
// followed by a symbol-continuation character is NOT treated as an
// operator: it is glued into the following symbol scan instead, so that
// shell-style flags like `-la` lex as a single SYMBOL rather than MINUS
// SYMBOL. See DESIGN.md for the rationale (grounded in the original
// tokenizer's keyword_tag/is_symbol_char split).
func (l *Lexer) lexOperatorOrPunct() *token.Token {
	c := l.s.Rune()
	switch c {
	case '(':
		return l.s.EmitToken(token.LPAREN)
	case ')':
		return l.s.EmitToken(token.RPAREN)
	case '[':
		return l.s.EmitToken(token.LBRACK)
	case ']':
		return l.s.EmitToken(token.RBRACK)
	case '{':
		return l.s.EmitToken(token.LBRACE)
	case '}':
		return l.s.EmitToken(token.RBRACE)
	case ',':
		return l.s.EmitToken(token.COMMA)
	case ';':
		return l.s.EmitToken(token.SEMI)
	case ':':
		return l.s.EmitToken(token.COLON)
	case '@':
		return l.s.EmitToken(token.AT)
	case '=':
		if l.consumeIf('=') {
			return l.s.EmitToken(token.EQ)
		}
		return l.s.EmitToken(token.ASSIGN)
	case '!':
		if l.consumeIf('=') {
			return l.s.EmitToken(token.NEQ)
		}
		return l.s.EmitToken(token.BANG)
	case '<':
		if l.consumeIf('=') {
			return l.s.EmitToken(token.LE)
		}
		return l.s.EmitToken(token.LT)
	case '>':
		if l.consumeIf('=') {
			return l.s.EmitToken(token.GE)
		}
		return l.s.EmitToken(token.GT)
	case '&':
		if l.consumeIf('&') {
			return l.s.EmitToken(token.ANDAND)
		}
		return l.s.EmitToken(token.ILLEGAL)
	case '-':
		if l.consumeIf('>') {
			return l.s.EmitToken(token.ARROW)
		}
		return l.glueIfSymbolFollows(token.MINUS)
	case '+':
		return l.glueIfSymbolFollows(token.PLUS)
	case '*':
		return l.glueIfSymbolFollows(token.STAR)
	case '/':
		return l.glueIfSymbolFollows(token.SLASH)
	case '%':
		return l.glueIfSymbolFollows(token.PERCENT)
	case '|':
		if l.consumeIf('>') {
			return l.s.EmitToken(token.PIPE)
		}
		if l.consumeIf('|') {
			return l.s.EmitToken(token.OROR)
		}
		return l.s.EmitToken(token.ILLEGAL)
	default:
		l.err = fmt.Errorf("%s: unexpected character %q", l.s.LocStart(), c)
		return l.s.EmitToken(token.ILLEGAL)
	}
}

// glueIfSymbolFollows decides whether a symbol-char operator rune (already
// consumed as the current rune) should instead be absorbed into a trailing
// run of symbol characters, producing one SYMBOL token.
func (l *Lexer) glueIfSymbolFollows(op token.Type) *token.Token {
	r, ok := l.s.Peek()
	if ok && isSymbolChar(r) && !isDigit(r) {
		for {
			r, ok := l.s.Peek()
			if !ok || !isSymbolChar(r) {
				break
			}
			l.s.ScanRune()
		}
		return l.s.EmitToken(token.SYMBOL)
	}
	return l.s.EmitToken(op)
}

func (l *Lexer) consumeIf(r rune) bool {
	p, ok := l.s.Peek()
	if ok && p == r {
		l.s.ScanRune()
		return true
	}
	return false
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// isSymbolChar matches the interior character class of a symbol, which is
// deliberately wider than spec's nominal leading-character class so that
// command-line-style arguments (`-la`, `./script`, `a/b.txt`) lex as single
// tokens. See DESIGN.md.
func isSymbolChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', isDigit(c):
		return true
	}
	switch c {
	case '_', '.', '/', '-':
		return true
	}
	return false
}

func isSymbolStartRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	}
	return c == '_' || c == '('
}
