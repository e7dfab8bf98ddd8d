package stdlib

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/token"
)

// fmtModule wires github.com/dustin/go-humanize into dune's text-formatting
// builtin module, per SPEC_FULL.md's domain-stack table.
func fmtModule() *lang.OrderedMap {
	return newModule().
		fn("bold", 1, ansiWrap("\x1b[1m")).
		fn("dim", 1, ansiWrap("\x1b[2m")).
		fn("red", 1, ansiWrap("\x1b[31m")).
		fn("green", 1, ansiWrap("\x1b[32m")).
		fn("yellow", 1, ansiWrap("\x1b[33m")).
		fn("blue", 1, ansiWrap("\x1b[34m")).
		fn("bytes", 1, fmtBytes).
		fn("ordinal", 1, fmtOrdinal).
		fn("comma", 1, fmtComma).
		fn("join", 2, fmtJoin).
		build()
}

func ansiWrap(code string) lang.BuiltinFunc {
	return func(args []lang.Value, env *lang.Env) (lang.Value, error) {
		return lang.Str(code + args[0].String() + "\x1b[0m"), nil
	}
}

func fmtBytes(args []lang.Value, env *lang.Env) (lang.Value, error) {
	v := args[0]
	if !v.IsInt() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "fmt@bytes", v.Kind())
	}
	return lang.Str(humanize.Bytes(uint64(v.Int()))), nil
}

func fmtOrdinal(args []lang.Value, env *lang.Env) (lang.Value, error) {
	v := args[0]
	if !v.IsInt() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "fmt@ordinal", v.Kind())
	}
	return lang.Str(humanize.Ordinal(int(v.Int()))), nil
}

func fmtComma(args []lang.Value, env *lang.Env) (lang.Value, error) {
	v := args[0]
	if !v.IsInt() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "fmt@comma", v.Kind())
	}
	return lang.Str(humanize.Comma(v.Int())), nil
}

func fmtJoin(args []lang.Value, env *lang.Env) (lang.Value, error) {
	list, sep := args[0], args[1]
	if !list.IsList() || !sep.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "fmt@join", list.Kind(), sep.Kind())
	}
	parts := make([]string, len(list.List()))
	for i, e := range list.List() {
		parts[i] = e.String()
	}
	return lang.Str(strings.Join(parts, sep.Str())), nil
}

func writeJoined(env *lang.Env, args []lang.Value, suffix string) error {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	_, err := env.Host().StdoutWrite([]byte(strings.Join(parts, " ") + suffix))
	return err
}
