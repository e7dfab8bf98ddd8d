// Package ast defines the expression tree produced by the parser and
// consumed by the evaluator.
package ast

import (
	"fmt"
	"strings"

	"github.com/adam-mcdaniel/dune/token"
)

// Expr is any node in the expression tree. Every node carries the source
// span it was parsed from; the evaluator never mutates a node after
// construction.
type Expr interface {
	Span() token.Span
	String() string
	exprNode()
}

// Base carries the source span common to every node; embed it anonymously
// to satisfy Expr's Span() method.
type Base struct {
	span token.Span
}

// At constructs a Base from a span. Parser code embeds the result
// anonymously in whichever node literal it is building.
func At(sp token.Span) Base { return Base{span: sp} }

func (b Base) Span() token.Span { return b.span }

// Integer is an integer literal.
type Integer struct {
	Base
	Value int64
}

// Float is a floating point literal.
type Float struct {
	Base
	Value float64
}

// String is a string literal; Value is already unescaped.
type String struct {
	Base
	Value string
}

// Boolean is `true` or `false`.
type Boolean struct {
	Base
	Value bool
}

// None is the `none` literal.
type None struct {
	Base
}

// Symbol is an unresolved identifier: the bridge between variable
// references, quoted identifiers, and command names.
type Symbol struct {
	Base
	Name string
}

// List is an ordered sequence literal: `[a, b, c]`.
type List struct {
	Base
	Elems []Expr
}

// MapPair is one key/value entry of a Map literal.
type MapPair struct {
	Key   Expr
	Value Expr
}

// Map is an ordered sequence of key/value pairs: `{a: 1, b: 2}`.
type Map struct {
	Base
	Pairs []MapPair
}

// Quote wraps an expression so it evaluates to its own AST rather than
// being evaluated: `'x`, `'(a b)`.
type Quote struct {
	Base
	Expr Expr
}

// Apply is a function, macro, or command application.
type Apply struct {
	Base
	Callee Expr
	Args   []Expr
	// Command records whether this Apply was parsed in command form
	// (bare `Symbol` followed by space-separated atoms) as opposed to
	// parenthesized call form. It does not change evaluation semantics
	// (§4.6 dispatch triggers on the callee's runtime type, not on this
	// flag) but is retained for diagnostics and for `fmt@bold`-style
	// re-rendering of parsed code.
	Command bool
}

// Params names a lambda/macro's formal parameters.
type Params struct {
	Names []string
}

// Lambda is a user function literal: `x -> expr`, `(x, y) -> expr`.
type Lambda struct {
	Base
	Params Params
	Body   Expr
}

// Macro is a user macro literal: `macro x -> expr`.
type Macro struct {
	Base
	Params Params
	Body   Expr
}

// LetBinding is one name/value pair introduced by a Let.
type LetBinding struct {
	Name  string
	Value Expr // nil means "bind to none"
}

// Let introduces one or more names into the current scope (top-level form)
// or a nested body expression's scope (`let x = 1 { ... }`, if present).
type Let struct {
	Base
	Bindings []LetBinding
	Body     Expr // nil for the top-level statement form
}

// Assign mutates an existing binding (or creates one in the current frame
// if none exists in any enclosing scope).
type Assign struct {
	Base
	Target Expr // a Symbol, Index, or Field expression
	Value  Expr
}

// If is a conditional; Else is nil when no else-branch was written.
type If struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

// For iterates Iter, binding each element to Name in turn.
type For struct {
	Base
	Name string
	Iter Expr
	Body Expr
}

// While repeats Body as long as Cond is truthy.
type While struct {
	Base
	Cond Expr
	Body Expr
}

// Block is a sequence of expressions evaluated for effect, yielding the
// value of the last one. It introduces a nested scope for any `let`.
type Block struct {
	Base
	Exprs []Expr
}

// BinOp is a binary operator application; Op is the operator's own name
// so it can be looked up for overloading (e.g. "+", "==").
type BinOp struct {
	Base
	Op  string
	LHS Expr
	RHS Expr
}

// UnOp is a unary operator application ("-", "!").
type UnOp struct {
	Base
	Op      string
	Operand Expr
}

// Index is subscript access: `a[b]`.
type Index struct {
	Base
	Container Expr
	Key       Expr
}

// Field is namespaced member access: `a@b`.
type Field struct {
	Base
	Container Expr
	Name      string
}

// Group is a parenthesized expression, kept distinct from its inner
// expression only so re-rendering can reproduce the parentheses; it
// evaluates identically to Inner.
type Group struct {
	Base
	Inner Expr
}

func (Integer) exprNode() {}
func (Float) exprNode()   {}
func (String) exprNode()  {}
func (Boolean) exprNode() {}
func (None) exprNode()    {}
func (Symbol) exprNode()  {}
func (List) exprNode()    {}
func (Map) exprNode()     {}
func (Quote) exprNode()   {}
func (Apply) exprNode()   {}
func (Lambda) exprNode()  {}
func (Macro) exprNode()   {}
func (Let) exprNode()     {}
func (Assign) exprNode()  {}
func (If) exprNode()      {}
func (For) exprNode()     {}
func (While) exprNode()   {}
func (Block) exprNode()   {}
func (BinOp) exprNode()   {}
func (UnOp) exprNode()    {}
func (Index) exprNode()   {}
func (Field) exprNode()   {}
func (Group) exprNode()   {}

func (n Integer) String() string { return fmt.Sprintf("%d", n.Value) }
func (n Float) String() string   { return fmt.Sprintf("%g", n.Value) }
func (n String) String() string  { return fmt.Sprintf("%q", n.Value) }
func (n Boolean) String() string { return fmt.Sprintf("%t", n.Value) }
func (n None) String() string    { return "none" }
func (n Symbol) String() string  { return n.Name }

func (n List) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (n Map) String() string {
	parts := make([]string, len(n.Pairs))
	for i, p := range n.Pairs {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (n Quote) String() string { return "'" + n.Expr.String() }

func (n Apply) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	if n.Command {
		return n.Callee.String() + " " + strings.Join(parts, " ")
	}
	return n.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (p Params) String() string {
	if len(p.Names) == 1 {
		return p.Names[0]
	}
	return "(" + strings.Join(p.Names, ", ") + ")"
}

func (n Lambda) String() string { return n.Params.String() + " -> " + n.Body.String() }
func (n Macro) String() string  { return "macro " + n.Params.String() + " -> " + n.Body.String() }

func (n Let) String() string {
	parts := make([]string, len(n.Bindings))
	for i, b := range n.Bindings {
		if b.Value == nil {
			parts[i] = "let " + b.Name
		} else {
			parts[i] = "let " + b.Name + " = " + b.Value.String()
		}
	}
	s := strings.Join(parts, "; ")
	if n.Body != nil {
		s += " " + n.Body.String()
	}
	return s
}

func (n Assign) String() string { return n.Target.String() + " = " + n.Value.String() }

func (n If) String() string {
	s := "if " + n.Cond.String() + " " + n.Then.String()
	if n.Else != nil {
		s += " else " + n.Else.String()
	}
	return s
}

func (n For) String() string {
	return "for " + n.Name + " in " + n.Iter.String() + " " + n.Body.String()
}

func (n While) String() string { return "while " + n.Cond.String() + " " + n.Body.String() }

func (n Block) String() string {
	parts := make([]string, len(n.Exprs))
	for i, e := range n.Exprs {
		parts[i] = e.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (n BinOp) String() string { return n.LHS.String() + " " + n.Op + " " + n.RHS.String() }
func (n UnOp) String() string  { return n.Op + n.Operand.String() }
func (n Index) String() string { return n.Container.String() + "[" + n.Key.String() + "]" }
func (n Field) String() string { return n.Container.String() + "@" + n.Name }
func (n Group) String() string { return "(" + n.Inner.String() + ")" }
