package stdlib

import (
	"os"

	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/token"
)

// fsModule reads and writes plain files directly via the standard library
// rather than through the Host interface: Host abstracts the OS surfaces
// that genuinely differ between real and test execution (process spawn,
// working directory, environment variables), the same narrow seam
// host/host.go itself draws around os/exec and os.Getwd; file contents
// have no such substitution need here, so stdlib touches os directly just
// as host.go does.
func fsModule() *lang.OrderedMap {
	return newModule().
		fn("read", 1, fsRead).
		fn("write", 2, fsWrite).
		fn("exists", 1, fsExists).
		fn("list", 1, fsList).
		build()
}

func fsRead(args []lang.Value, env *lang.Env) (lang.Value, error) {
	path := args[0]
	if !path.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "fs@read", path.Kind())
	}
	data, err := os.ReadFile(path.Str())
	if err != nil {
		return lang.Value{}, lang.HostError(token.Span{}, err.Error())
	}
	return lang.Str(string(data)), nil
}

func fsWrite(args []lang.Value, env *lang.Env) (lang.Value, error) {
	path, content := args[0], args[1]
	if !path.IsString() || !content.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "fs@write", path.Kind(), content.Kind())
	}
	if err := os.WriteFile(path.Str(), []byte(content.Str()), 0o644); err != nil {
		return lang.Value{}, lang.HostError(token.Span{}, err.Error())
	}
	return lang.None(), nil
}

func fsExists(args []lang.Value, env *lang.Env) (lang.Value, error) {
	path := args[0]
	if !path.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "fs@exists", path.Kind())
	}
	_, err := os.Stat(path.Str())
	return lang.Bool(err == nil), nil
}

func fsList(args []lang.Value, env *lang.Env) (lang.Value, error) {
	path := args[0]
	if !path.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "fs@list", path.Kind())
	}
	entries, err := os.ReadDir(path.Str())
	if err != nil {
		return lang.Value{}, lang.HostError(token.Span{}, err.Error())
	}
	out := make([]lang.Value, len(entries))
	for i, e := range entries {
		out[i] = lang.Str(e.Name())
	}
	return lang.List(out), nil
}
