// Package lang implements the dune value model, lexical environments, and
// the tree-walking evaluator.
package lang

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/adam-mcdaniel/dune/ast"
)

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindSymbol
	KindList
	KindMap
	KindLambda
	KindMacro
	KindBuiltin
	KindExpr // a quoted AST node, addressable via the parse builtin
)

var kindNames = [...]string{
	KindNone: "none", KindInt: "int", KindFloat: "float", KindString: "string",
	KindBool: "bool", KindSymbol: "symbol", KindList: "list", KindMap: "map",
	KindLambda: "lambda", KindMacro: "macro", KindBuiltin: "builtin", KindExpr: "expr",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// BuiltinFunc is a host-supplied callable. It receives already-evaluated
// argument values and the environment active at the call site.
type BuiltinFunc func(args []Value, env *Env) (Value, error)

// Value is the tagged union of every dune runtime value. A struct rather
// than an interface so equality and map-key hashing stay cheap and
// allocation-free for the common scalar kinds.
type Value struct {
	kind Kind

	i    int64
	f    float64
	s    string // String, Symbol, Builtin name
	b    bool
	list []Value
	m    *OrderedMap

	lambda *Closure
	macro  *Closure

	builtinArity int
	builtinFn    BuiltinFunc

	expr ast.Expr
}

// Closure is the shared representation backing both Lambda and Macro
// values: a parameter list, a body, and the environment active when the
// literal was evaluated.
type Closure struct {
	Params  ast.Params
	Body    ast.Expr
	Env     *Env
	Name    string // best-effort name for diagnostics, set by `let f = ...`
	IsMacro bool
}

func None() Value                 { return Value{kind: KindNone} }
func Int(i int64) Value           { return Value{kind: KindInt, i: i} }
func Float(f float64) Value       { return Value{kind: KindFloat, f: f} }
func Str(s string) Value          { return Value{kind: KindString, s: s} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func Sym(name string) Value       { return Value{kind: KindSymbol, s: name} }
func ExprVal(e ast.Expr) Value    { return Value{kind: KindExpr, expr: e} }
func List(elems []Value) Value    { return Value{kind: KindList, list: elems} }
func MapVal(m *OrderedMap) Value  { return Value{kind: KindMap, m: m} }
func LambdaVal(c *Closure) Value  { return Value{kind: KindLambda, lambda: c} }
func MacroVal(c *Closure) Value   { return Value{kind: KindMacro, macro: c} }

// Builtin wraps a Go function as a callable dune value. arity is the
// number of arguments the function expects, used for arity errors before
// fn is invoked; pass -1 for variadic builtins that check their own arity.
func Builtin(name string, arity int, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, s: name, builtinArity: arity, builtinFn: fn}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNone() bool     { return v.kind == KindNone }
func (v Value) IsInt() bool      { return v.kind == KindInt }
func (v Value) IsFloat() bool    { return v.kind == KindFloat }
func (v Value) IsString() bool   { return v.kind == KindString }
func (v Value) IsBool() bool     { return v.kind == KindBool }
func (v Value) IsSymbol() bool   { return v.kind == KindSymbol }
func (v Value) IsList() bool     { return v.kind == KindList }
func (v Value) IsMap() bool      { return v.kind == KindMap }
func (v Value) IsLambda() bool   { return v.kind == KindLambda }
func (v Value) IsMacro() bool    { return v.kind == KindMacro }
func (v Value) IsBuiltin() bool  { return v.kind == KindBuiltin }
func (v Value) IsExpr() bool     { return v.kind == KindExpr }
func (v Value) IsCallable() bool {
	switch v.kind {
	case KindLambda, KindMacro, KindBuiltin, KindSymbol:
		return true
	}
	return false
}

func (v Value) Int() int64          { return v.i }
func (v Value) Float() float64      { return v.f }
func (v Value) Str() string         { return v.s }
func (v Value) Bool() bool          { return v.b }
func (v Value) Symbol() string      { return v.s }
func (v Value) List() []Value       { return v.list }
func (v Value) Map() *OrderedMap    { return v.m }
func (v Value) Closure() *Closure {
	if v.kind == KindMacro {
		return v.macro
	}
	return v.lambda
}
func (v Value) BuiltinName() string     { return v.s }
func (v Value) BuiltinArity() int       { return v.builtinArity }
func (v Value) BuiltinFunc() BuiltinFunc { return v.builtinFn }
func (v Value) Expr() ast.Expr          { return v.expr }

// AsFloat widens an Int or Float value to float64; callers must check
// IsInt/IsFloat first.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Truthy implements spec.md §4.3: false, none, 0, 0.0, and empty
// string/list/map are false; everything else is true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return v.m != nil && v.m.Len() > 0
	default:
		return true
	}
}

// Equal implements structural equality: Int and Float compare numerically
// across kinds; Symbol and String of the same text are NOT equal; maps
// compare ignoring order; lists compare element-wise in order.
func Equal(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return numEqual(a, b)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindBool:
		return a.b == b.b
	case KindString, KindSymbol:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return a.m.EqualIgnoringOrder(b.m)
	case KindLambda:
		return a.lambda == b.lambda
	case KindMacro:
		return a.macro == b.macro
	case KindBuiltin:
		return a.s == b.s && a.builtinArity == b.builtinArity
	case KindExpr:
		return a.expr.String() == b.expr.String()
	}
	return false
}

func isNumeric(v Value) bool { return v.kind == KindInt || v.kind == KindFloat }

func numEqual(a, b Value) bool {
	if a.kind == KindInt && b.kind == KindInt {
		return a.i == b.i
	}
	return a.AsFloat() == b.AsFloat()
}

// Compare orders two values; numbers compare numerically, strings
// lexicographically, lists lexicographically by element. ok is false for
// kinds with no defined ordering (spec.md §4.3).
func Compare(a, b Value) (cmp int, ok bool) {
	switch {
	case isNumeric(a) && isNumeric(b):
		x, y := a.AsFloat(), b.AsFloat()
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		default:
			return 0, true
		}
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.s, b.s), true
	case a.kind == KindList && b.kind == KindList:
		for i := 0; i < len(a.list) && i < len(b.list); i++ {
			if c, ok := Compare(a.list[i], b.list[i]); ok && c != 0 {
				return c, true
			}
		}
		return len(a.list) - len(b.list), true
	default:
		return 0, false
	}
}

// String renders v the way command-dispatch argument conversion (§4.6)
// does: Symbols and Strings render as their bare text, everything else as
// its literal syntax. The REPL's default `report` prints Repr instead.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		return v.s
	case KindSymbol:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		return v.m.String()
	case KindLambda:
		return fmt.Sprintf("<lambda %s>", v.Closure().Params.String())
	case KindMacro:
		return fmt.Sprintf("<macro %s>", v.Closure().Params.String())
	case KindBuiltin:
		return fmt.Sprintf("<builtin %s>", v.s)
	case KindExpr:
		return v.expr.String()
	default:
		return "<invalid>"
	}
}

// Repr renders v the way it would need to look as dune source (strings
// quoted, symbols unadorned), used for nested container rendering so
// `["a", "b"]` is distinguishable from `[a, b]`.
func (v Value) Repr() string {
	if v.kind == KindString {
		return strconv.Quote(v.s)
	}
	return v.String()
}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
