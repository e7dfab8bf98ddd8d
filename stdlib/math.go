package stdlib

import (
	"math"

	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/token"
)

// mathModule exposes numeric functions spec.md leaves implicit under
// "math, etc." (spec.md §1's builtin-module list). Standard library only:
// no third-party numerics library appears anywhere in the retrieved pack.
func mathModule() *lang.OrderedMap {
	return newModule().
		val("pi", lang.Float(math.Pi)).
		val("e", lang.Float(math.E)).
		fn("sqrt", 1, mathUnary(math.Sqrt)).
		fn("abs", 1, mathAbs).
		fn("floor", 1, mathUnary(math.Floor)).
		fn("ceil", 1, mathUnary(math.Ceil)).
		fn("round", 1, mathUnary(math.Round)).
		fn("pow", 2, mathPow).
		fn("log", 1, mathUnary(math.Log)).
		fn("sin", 1, mathUnary(math.Sin)).
		fn("cos", 1, mathUnary(math.Cos)).
		fn("tan", 1, mathUnary(math.Tan)).
		fn("min", 2, mathMin).
		fn("max", 2, mathMax).
		build()
}

func mathUnary(f func(float64) float64) lang.BuiltinFunc {
	return func(args []lang.Value, env *lang.Env) (lang.Value, error) {
		v := args[0]
		if !v.IsInt() && !v.IsFloat() {
			return lang.Value{}, lang.TypeMismatch(token.Span{}, "math", v.Kind())
		}
		return lang.Float(f(v.AsFloat())), nil
	}
}

func mathAbs(args []lang.Value, env *lang.Env) (lang.Value, error) {
	v := args[0]
	switch {
	case v.IsInt():
		n := v.Int()
		if n < 0 {
			n = -n
		}
		return lang.Int(n), nil
	case v.IsFloat():
		return lang.Float(math.Abs(v.Float())), nil
	}
	return lang.Value{}, lang.TypeMismatch(token.Span{}, "math@abs", v.Kind())
}

func mathPow(args []lang.Value, env *lang.Env) (lang.Value, error) {
	a, b := args[0], args[1]
	if (!a.IsInt() && !a.IsFloat()) || (!b.IsInt() && !b.IsFloat()) {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "math@pow", a.Kind(), b.Kind())
	}
	return lang.Float(math.Pow(a.AsFloat(), b.AsFloat())), nil
}

func mathMin(args []lang.Value, env *lang.Env) (lang.Value, error) {
	return mathCompare(args, -1)
}

func mathMax(args []lang.Value, env *lang.Env) (lang.Value, error) {
	return mathCompare(args, 1)
}

func mathCompare(args []lang.Value, want int) (lang.Value, error) {
	a, b := args[0], args[1]
	c, ok := lang.Compare(a, b)
	if !ok {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "math@min/max", a.Kind(), b.Kind())
	}
	if (want < 0) == (c <= 0) {
		return a, nil
	}
	return b, nil
}
