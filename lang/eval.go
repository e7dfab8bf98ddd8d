package lang

import (
	"github.com/adam-mcdaniel/dune/ast"
	"github.com/adam-mcdaniel/dune/token"
)

// Eval is the tree-walking evaluator's single entry point, grounded on the
// shape of the teacher's lisp/env.go LEnv.Eval and on
// original_source/src/expr.rs's eval_mut for per-node semantics. It never
// mutates expr.
func Eval(expr ast.Expr, env *Env) (Value, error) {
	if env.Interrupted() {
		return Value{}, Interrupted(expr.Span())
	}
	switch n := expr.(type) {
	case ast.Integer:
		return Int(n.Value), nil
	case ast.Float:
		return Float(n.Value), nil
	case ast.String:
		return Str(n.Value), nil
	case ast.Boolean:
		return Bool(n.Value), nil
	case ast.None:
		return None(), nil
	case ast.Symbol:
		return evalSymbol(n, env)
	case ast.Quote:
		return ExprVal(unwrapGroup(n.Expr)), nil
	case ast.List:
		return evalList(n, env)
	case ast.Map:
		return evalMap(n, env)
	case ast.Lambda:
		return LambdaVal(&Closure{Params: n.Params, Body: n.Body, Env: env}), nil
	case ast.Macro:
		return MacroVal(&Closure{Params: n.Params, Body: n.Body, Env: env, IsMacro: true}), nil
	case ast.Group:
		return Eval(n.Inner, env)
	case ast.Block:
		return evalBlock(n, env)
	case ast.Let:
		return evalLet(n, env)
	case ast.Assign:
		return evalAssign(n, env)
	case ast.If:
		return evalIf(n, env)
	case ast.For:
		return evalFor(n, env)
	case ast.While:
		return evalWhile(n, env)
	case ast.BinOp:
		return evalBinOp(n, env)
	case ast.UnOp:
		return evalUnOp(n, env)
	case ast.Index:
		return evalIndex(n, env)
	case ast.Field:
		return evalField(n, env)
	case ast.Apply:
		return evalApply(n, env)
	}
	return Value{}, NewError(ErrTypeMismatch, expr.Span(), "unhandled expression node %T", expr)
}

// evalSymbol implements spec.md §4.6's "bare Symbol statement" rule at the
// expression level too: a Symbol evaluates to its bound value if one
// exists, and to itself (a Symbol value) otherwise. Returning the symbol
// rather than erroring is what makes command dispatch on an otherwise
// unbound name possible; see dispatch.go.
func evalSymbol(n ast.Symbol, env *Env) (Value, error) {
	if v, ok := env.Lookup(n.Name); ok {
		return v, nil
	}
	return Sym(n.Name), nil
}

func evalList(n ast.List, env *Env) (Value, error) {
	vals := make([]Value, len(n.Elems))
	for i, e := range n.Elems {
		v, err := Eval(e, env)
		if err != nil {
			return Value{}, err
		}
		vals[i] = v
	}
	return List(vals), nil
}

func evalMap(n ast.Map, env *Env) (Value, error) {
	m := NewOrderedMap()
	for _, p := range n.Pairs {
		k, err := Eval(p.Key, env)
		if err != nil {
			return Value{}, err
		}
		v, err := Eval(p.Value, env)
		if err != nil {
			return Value{}, err
		}
		if err := m.Set(k, v); err != nil {
			return Value{}, err
		}
	}
	return MapVal(m), nil
}

func evalBlock(n ast.Block, env *Env) (Value, error) {
	child := env.NewChild()
	result := None()
	for _, e := range n.Exprs {
		v, err := Eval(e, child)
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}

func evalLet(n ast.Let, env *Env) (Value, error) {
	target := env
	if n.Body != nil {
		target = env.NewChild()
	}
	var last Value = None()
	for _, b := range n.Bindings {
		v := None()
		if b.Value != nil {
			var err error
			v, err = Eval(b.Value, env)
			if err != nil {
				return Value{}, err
			}
		}
		if c := v.Closure(); c != nil && c.Name == "" {
			c.Name = b.Name
		}
		target.Define(b.Name, v)
		last = v
	}
	if n.Body != nil {
		return Eval(n.Body, target)
	}
	return last, nil
}

func evalAssign(n ast.Assign, env *Env) (Value, error) {
	v, err := Eval(n.Value, env)
	if err != nil {
		return Value{}, err
	}
	switch target := n.Target.(type) {
	case ast.Symbol:
		env.Assign(target.Name, v)
		return v, nil
	case ast.Index:
		container, err := Eval(target.Container, env)
		if err != nil {
			return Value{}, err
		}
		key, err := Eval(target.Key, env)
		if err != nil {
			return Value{}, err
		}
		return v, assignIndex(container, key, v, target.Span())
	case ast.Field:
		container, err := Eval(target.Container, env)
		if err != nil {
			return Value{}, err
		}
		if !container.IsMap() {
			return Value{}, TypeMismatch(target.Span(), "@=", container.Kind())
		}
		return v, container.Map().Set(Sym(target.Name), v)
	}
	return Value{}, NewError(ErrTypeMismatch, n.Span(), "invalid assignment target")
}

func assignIndex(container, key, v Value, span token.Span) error {
	switch container.Kind() {
	case KindList:
		if !key.IsInt() {
			return TypeMismatch(span, "[]=", container.Kind(), key.Kind())
		}
		l := container.List()
		idx := int(key.Int())
		if idx < 0 {
			idx += len(l)
		}
		if idx < 0 || idx >= len(l) {
			return IndexOutOfRange(span, len(l), idx)
		}
		l[idx] = v
		return nil
	case KindMap:
		return container.Map().Set(key, v)
	}
	return TypeMismatch(span, "[]=", container.Kind())
}

func evalIf(n ast.If, env *Env) (Value, error) {
	c, err := Eval(n.Cond, env)
	if err != nil {
		return Value{}, err
	}
	if c.Truthy() {
		return Eval(n.Then, env)
	}
	if n.Else != nil {
		return Eval(n.Else, env)
	}
	return None(), nil
}

// Iterate converts v into a slice of values to drive a `for` loop,
// implementing spec.md §4.4's list/map(keys)/string(chars)/int-range
// iterands. This is strictly broader than
// original_source/src/expr.rs's list-only For arm; resolved in favor of
// spec.md, see DESIGN.md.
func Iterate(v Value, span token.Span) ([]Value, error) {
	switch v.Kind() {
	case KindList:
		return v.List(), nil
	case KindMap:
		return v.Map().Keys(), nil
	case KindString:
		runes := []rune(v.Str())
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = Str(string(r))
		}
		return out, nil
	case KindInt:
		n := v.Int()
		if n < 0 {
			return nil, NewError(ErrTypeMismatch, span, "cannot iterate a negative integer range")
		}
		out := make([]Value, n)
		for i := int64(0); i < n; i++ {
			out[i] = Int(i)
		}
		return out, nil
	}
	return nil, TypeMismatch(span, "for-in", v.Kind())
}

func evalFor(n ast.For, env *Env) (Value, error) {
	it, err := Eval(n.Iter, env)
	if err != nil {
		return Value{}, err
	}
	elems, err := Iterate(it, n.Iter.Span())
	if err != nil {
		return Value{}, err
	}
	child := env.NewChild()
	result := None()
	for _, e := range elems {
		if env.Interrupted() {
			return Value{}, Interrupted(n.Span())
		}
		child.Define(n.Name, e)
		v, err := Eval(n.Body, child)
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}

func evalWhile(n ast.While, env *Env) (Value, error) {
	result := None()
	for {
		if env.Interrupted() {
			return Value{}, Interrupted(n.Span())
		}
		c, err := Eval(n.Cond, env)
		if err != nil {
			return Value{}, err
		}
		if !c.Truthy() {
			break
		}
		v, err := Eval(n.Body, env.NewChild())
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}

// evalBinOp implements spec.md §4.4's operator-overloading lookup: the
// operator's own name is looked up in env; a user lambda/macro there wins
// over the primitive implementation.
func evalBinOp(n ast.BinOp, env *Env) (Value, error) {
	if n.Op == "&&" || n.Op == "||" {
		if ov, ok := overloadOf(n.Op, env); ok {
			return callOverload2(ov, n.LHS, n.RHS, env, n.Span())
		}
		lv, err := Eval(n.LHS, env)
		if err != nil {
			return Value{}, err
		}
		if n.Op == "&&" && !lv.Truthy() {
			return Bool(false), nil
		}
		if n.Op == "||" && lv.Truthy() {
			return Bool(true), nil
		}
		rv, err := Eval(n.RHS, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(rv.Truthy()), nil
	}

	lv, err := Eval(n.LHS, env)
	if err != nil {
		return Value{}, err
	}
	rv, err := Eval(n.RHS, env)
	if err != nil {
		return Value{}, err
	}

	if n.Op == "|>" {
		if ov, ok := overloadOf(n.Op, env); ok {
			return applyValue(ov, []Value{lv, rv}, env, n.Span())
		}
		return applyValue(rv, []Value{lv}, env, n.Span())
	}

	if ov, ok := overloadOf(n.Op, env); ok {
		return applyValue(ov, []Value{lv, rv}, env, n.Span())
	}
	return primitiveBinOp(n.Op, lv, rv, n.Span())
}

// overloadOf looks up an operator's own name and reports whether it
// resolves to a user lambda/macro, as opposed to being unbound (in which
// case evalSymbol would have returned a bare Symbol, not a callable).
func overloadOf(op string, env *Env) (Value, bool) {
	v, ok := env.Lookup(op)
	if !ok {
		return Value{}, false
	}
	if v.IsLambda() || v.IsMacro() {
		return v, true
	}
	return Value{}, false
}

func callOverload2(fn Value, lhs, rhs ast.Expr, env *Env, span token.Span) (Value, error) {
	if fn.IsMacro() {
		return applyMacro(fn, []ast.Expr{lhs, rhs}, env, span)
	}
	lv, err := Eval(lhs, env)
	if err != nil {
		return Value{}, err
	}
	rv, err := Eval(rhs, env)
	if err != nil {
		return Value{}, err
	}
	return applyValue(fn, []Value{lv, rv}, env, span)
}

func evalUnOp(n ast.UnOp, env *Env) (Value, error) {
	if ov, ok := overloadOf(n.Op, env); ok {
		if ov.IsMacro() {
			return applyMacro(ov, []ast.Expr{n.Operand}, env, n.Span())
		}
		v, err := Eval(n.Operand, env)
		if err != nil {
			return Value{}, err
		}
		return applyValue(ov, []Value{v}, env, n.Span())
	}
	v, err := Eval(n.Operand, env)
	if err != nil {
		return Value{}, err
	}
	return primitiveUnOp(n.Op, v, n.Span())
}

func evalIndex(n ast.Index, env *Env) (Value, error) {
	c, err := Eval(n.Container, env)
	if err != nil {
		return Value{}, err
	}
	k, err := Eval(n.Key, env)
	if err != nil {
		return Value{}, err
	}
	switch c.Kind() {
	case KindList:
		if !k.IsInt() {
			return Value{}, TypeMismatch(n.Span(), "[]", c.Kind(), k.Kind())
		}
		l := c.List()
		idx := int(k.Int())
		if idx < 0 {
			idx += len(l)
		}
		if idx < 0 || idx >= len(l) {
			return Value{}, IndexOutOfRange(n.Span(), len(l), idx)
		}
		return l[idx], nil
	case KindMap:
		v, ok := c.Map().Get(k)
		if !ok {
			return Value{}, KeyNotFound(n.Span(), k)
		}
		return v, nil
	case KindString:
		if !k.IsInt() {
			return Value{}, TypeMismatch(n.Span(), "[]", c.Kind(), k.Kind())
		}
		runes := []rune(c.Str())
		idx := int(k.Int())
		if idx < 0 {
			idx += len(runes)
		}
		if idx < 0 || idx >= len(runes) {
			return Value{}, IndexOutOfRange(n.Span(), len(runes), idx)
		}
		return Str(string(runes[idx])), nil
	}
	return Value{}, TypeMismatch(n.Span(), "[]", c.Kind())
}

func evalField(n ast.Field, env *Env) (Value, error) {
	c, err := Eval(n.Container, env)
	if err != nil {
		return Value{}, err
	}
	if !c.IsMap() {
		return Value{}, TypeMismatch(n.Span(), "@", c.Kind())
	}
	v, ok := c.Map().Get(Sym(n.Name))
	if !ok {
		return Value{}, KeyNotFound(n.Span(), Sym(n.Name))
	}
	return v, nil
}

// evalApply implements spec.md §4.4's Application semantics in full.
func evalApply(n ast.Apply, env *Env) (Value, error) {
	// A macro callee must be resolved without evaluating args first, so we
	// peek at the callee specially: if it is a bare Symbol bound to a
	// Macro, dispatch straight to applyMacro with unevaluated ASTs.
	if sym, ok := n.Callee.(ast.Symbol); ok {
		if v, bound := env.Lookup(sym.Name); bound && v.IsMacro() {
			return applyMacro(v, n.Args, env, n.Span())
		}
	}

	cv, err := Eval(n.Callee, env)
	if err != nil {
		return Value{}, err
	}

	if cv.IsMacro() {
		return applyMacro(cv, n.Args, env, n.Span())
	}

	if cv.IsSymbol() {
		return dispatchCommand(cv.Symbol(), n.Args, env, n.Span())
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return applyValue(cv, args, env, n.Span())
}

// Call applies an already-evaluated callable value to already-evaluated
// arguments, exported for host-side callers (the repl package's hook
// bindings for `prompt`/`incomplete_prompt`/`report`) that need to invoke
// a user-supplied dune value without going through the parser.
func Call(fn Value, args []Value, env *Env) (Value, error) {
	return applyValue(fn, args, env, token.Span{})
}

// applyValue applies an already-evaluated callable to already-evaluated
// arguments: Lambda and Builtin cases of spec.md §4.4's Application
// semantics (Macro and Symbol are handled by their own callers since they
// need the unevaluated ast.Expr args or raw symbol text respectively).
func applyValue(cv Value, args []Value, env *Env, span token.Span) (Value, error) {
	switch cv.Kind() {
	case KindLambda:
		c := cv.Closure()
		if len(c.Params.Names) != len(args) {
			return Value{}, ArityMismatch(span, len(c.Params.Names), len(args))
		}
		if err := env.Stack().Push(closureName(c), span); err != nil {
			return Value{}, err
		}
		defer env.Stack().Pop()
		child := c.Env.NewChild()
		for i, name := range c.Params.Names {
			child.Define(name, args[i])
		}
		v, err := Eval(c.Body, child)
		if err != nil {
			if e, ok := err.(*Error); ok {
				e.Trace = env.Stack().Trace()
			}
			return Value{}, err
		}
		return v, nil
	case KindBuiltin:
		if arity := cv.BuiltinArity(); arity >= 0 && arity != len(args) {
			return Value{}, ArityMismatch(span, arity, len(args))
		}
		return cv.BuiltinFunc()(args, env)
	case KindSymbol:
		argExprs := make([]ast.Expr, len(args))
		for i, a := range args {
			e := valueAsExpr(a)
			if a.IsExpr() {
				e = ast.Quote{Expr: e}
			}
			argExprs[i] = e
		}
		return dispatchCommand(cv.Symbol(), argExprs, env, span)
	}
	return Value{}, NotCallable(span, cv.Kind())
}

func closureName(c *Closure) string {
	if c.Name != "" {
		return c.Name
	}
	return "<lambda>"
}

// applyMacro implements spec.md §4.4 item 4: arguments arrive unevaluated,
// quoted, bound in a fresh child of the *caller's* environment, and the
// macro body runs there (not in the macro's defining environment as a
// Lambda's body would). If called with zero args and the macro declares
// exactly one parameter, that parameter is bound to the host's current
// working directory string, matching spec.md's explicit carve-out that
// lets a zero-arg macro like `pwd`-via-`cd` work.
func applyMacro(mv Value, argExprs []ast.Expr, env *Env, span token.Span) (Value, error) {
	c := mv.Closure()
	if len(argExprs) == 0 && len(c.Params.Names) == 1 {
		child := env.NewChild()
		child.Define(c.Params.Names[0], Str(env.Host().CurrentDirectory()))
		return evalMacroBody(c, child, env, span)
	}
	if len(c.Params.Names) != len(argExprs) {
		return Value{}, ArityMismatch(span, len(c.Params.Names), len(argExprs))
	}
	child := env.NewChild()
	for i, name := range c.Params.Names {
		child.Define(name, quoteArg(argExprs[i]))
	}
	return evalMacroBody(c, child, env, span)
}

// quoteArg wraps a macro argument's unevaluated syntax as the Value its
// body sees. A bare symbol collapses to a genuine Symbol value (spec.md
// §8: `greet hello` binds `name` to `Symbol("hello")`, not a quoted-AST
// wrapper around one); anything else keeps its full quoted-AST form.
func quoteArg(e ast.Expr) Value {
	if sym, ok := e.(ast.Symbol); ok {
		return Sym(sym.Name)
	}
	return ExprVal(e)
}

// unwrapGroup strips the parenthesization node `'(...)` parses its inner
// expression into, so `'(expr)` yields the same quoted tree as `expr`
// itself rather than an extra Group wrapper around it.
func unwrapGroup(e ast.Expr) ast.Expr {
	if g, ok := e.(ast.Group); ok {
		return g.Inner
	}
	return e
}

func evalMacroBody(c *Closure, child, caller *Env, span token.Span) (Value, error) {
	if err := caller.Stack().Push(closureName(c), span); err != nil {
		return Value{}, err
	}
	defer caller.Stack().Pop()
	v, err := Eval(c.Body, child)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Trace = caller.Stack().Trace()
		}
		return Value{}, err
	}
	return v, nil
}

// valueAsExpr wraps an already-evaluated Value back into an ast.Expr so it
// can be threaded through dispatchCommand's Expr-based parameter, used
// only when a Symbol value is itself invoked as a
// function (applyValue's KindSymbol case) and already holds evaluated
// Values rather than source ASTs.
func valueAsExpr(v Value) ast.Expr {
	if v.Kind() == KindExpr {
		return v.Expr()
	}
	return literalExprOf(v)
}
