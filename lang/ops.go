package lang

import (
	"strings"

	"github.com/adam-mcdaniel/dune/token"
)

// primitiveBinOp implements the built-in fallback behavior for each binary
// operator once operator-overload lookup (eval.go's evalBinOp) has
// determined no user lambda/macro shadows the operator name. Type
// coercion rules beyond what spec.md §4.4 states explicitly follow
// original_source/src/expr.rs's Add/Sub/Mul/Div/Rem trait impls; see
// DESIGN.md.
func primitiveBinOp(op string, a, b Value, span token.Span) (Value, error) {
	switch op {
	case "+":
		return opAdd(a, b, span)
	case "-":
		return opSub(a, b, span)
	case "*":
		return opMul(a, b, span)
	case "/":
		return opDiv(a, b, span)
	case "%":
		return opRem(a, b, span)
	case "==":
		return Bool(Equal(a, b)), nil
	case "!=":
		return Bool(!Equal(a, b)), nil
	case "<", "<=", ">", ">=":
		return opCompare(op, a, b, span)
	case "&&":
		return Bool(a.Truthy() && b.Truthy()), nil
	case "||":
		return Bool(a.Truthy() || b.Truthy()), nil
	}
	return Value{}, NewError(ErrTypeMismatch, span, "unknown operator %q", op)
}

func opAdd(a, b Value, span token.Span) (Value, error) {
	switch {
	case a.IsInt() && b.IsInt():
		return Int(a.Int() + b.Int()), nil
	case isNumeric(a) && isNumeric(b):
		return Float(a.AsFloat() + b.AsFloat()), nil
	case a.IsString() && b.IsString():
		return Str(a.Str() + b.Str()), nil
	case a.IsString() || b.IsString():
		// original_source/src/expr.rs promotes the non-string operand via
		// its display form when exactly one side is a string.
		return Str(a.String() + b.String()), nil
	case a.IsList() && b.IsList():
		out := make([]Value, 0, len(a.List())+len(b.List()))
		out = append(out, a.List()...)
		out = append(out, b.List()...)
		return List(out), nil
	case a.IsMap() && b.IsMap():
		return MapVal(Merge(a.Map(), b.Map())), nil
	}
	return Value{}, TypeMismatch(span, "+", a.Kind(), b.Kind())
}

func opSub(a, b Value, span token.Span) (Value, error) {
	switch {
	case a.IsInt() && b.IsInt():
		return Int(a.Int() - b.Int()), nil
	case isNumeric(a) && isNumeric(b):
		return Float(a.AsFloat() - b.AsFloat()), nil
	case a.IsList() && b.IsList():
		// remove every element of b found in a, first match only, in order.
		bl := append([]Value(nil), b.List()...)
		var out []Value
		for _, v := range a.List() {
			removed := false
			for i, bv := range bl {
				if Equal(v, bv) {
					bl = append(bl[:i], bl[i+1:]...)
					removed = true
					break
				}
			}
			if !removed {
				out = append(out, v)
			}
		}
		return List(out), nil
	}
	return Value{}, TypeMismatch(span, "-", a.Kind(), b.Kind())
}

func opMul(a, b Value, span token.Span) (Value, error) {
	switch {
	case a.IsInt() && b.IsInt():
		return Int(a.Int() * b.Int()), nil
	case isNumeric(a) && isNumeric(b):
		return Float(a.AsFloat() * b.AsFloat()), nil
	case a.IsString() && b.IsInt():
		return Str(strings.Repeat(a.Str(), int(maxi(0, int(b.Int()))))), nil
	case a.IsInt() && b.IsString():
		return Str(strings.Repeat(b.Str(), int(maxi(0, int(a.Int()))))), nil
	case a.IsList() && b.IsInt():
		return repeatList(a.List(), b.Int()), nil
	}
	return Value{}, TypeMismatch(span, "*", a.Kind(), b.Kind())
}

func repeatList(l []Value, n int64) Value {
	if n < 0 {
		n = 0
	}
	out := make([]Value, 0, len(l)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, l...)
	}
	return List(out)
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func opDiv(a, b Value, span token.Span) (Value, error) {
	if !isNumeric(a) || !isNumeric(b) {
		return Value{}, TypeMismatch(span, "/", a.Kind(), b.Kind())
	}
	if a.IsInt() && b.IsInt() {
		if b.Int() == 0 {
			return Value{}, DivideByZero(span)
		}
		return Int(a.Int() / b.Int()), nil
	}
	if b.AsFloat() == 0 {
		return Value{}, DivideByZero(span)
	}
	return Float(a.AsFloat() / b.AsFloat()), nil
}

func opRem(a, b Value, span token.Span) (Value, error) {
	if !isNumeric(a) || !isNumeric(b) {
		return Value{}, TypeMismatch(span, "%", a.Kind(), b.Kind())
	}
	if a.IsInt() && b.IsInt() {
		if b.Int() == 0 {
			return Value{}, DivideByZero(span)
		}
		return Int(a.Int() % b.Int()), nil
	}
	bf := b.AsFloat()
	if bf == 0 {
		return Value{}, DivideByZero(span)
	}
	af := a.AsFloat()
	return Float(af - bf*float64(int64(af/bf))), nil
}

func opCompare(op string, a, b Value, span token.Span) (Value, error) {
	c, ok := Compare(a, b)
	if !ok {
		return Value{}, TypeMismatch(span, op, a.Kind(), b.Kind())
	}
	switch op {
	case "<":
		return Bool(c < 0), nil
	case "<=":
		return Bool(c <= 0), nil
	case ">":
		return Bool(c > 0), nil
	case ">=":
		return Bool(c >= 0), nil
	}
	panic("unreachable")
}

// primitiveUnOp implements "-" and "!" when not overloaded.
func primitiveUnOp(op string, v Value, span token.Span) (Value, error) {
	switch op {
	case "-":
		switch {
		case v.IsInt():
			return Int(-v.Int()), nil
		case v.IsFloat():
			return Float(-v.Float()), nil
		}
		return Value{}, TypeMismatch(span, "-", v.Kind())
	case "!":
		return Bool(!v.Truthy()), nil
	}
	return Value{}, NewError(ErrTypeMismatch, span, "unknown unary operator %q", op)
}
