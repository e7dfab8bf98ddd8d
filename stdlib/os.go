package stdlib

import (
	"github.com/google/uuid"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/token"
)

// osModule wraps the Host interface (spec.md §6) plus
// github.com/kballard/go-shellquote and github.com/google/uuid, per
// SPEC_FULL.md's domain-stack table.
func osModule() *lang.OrderedMap {
	return newModule().
		fn("cwd", 0, osCwd).
		fn("cd", 1, osCd).
		fn("env", 1, osEnv).
		fn("setenv", 2, osSetenv).
		fn("shell", 1, osShell).
		fn("check", 1, osCheck).
		fn("tmpname", 1, osTmpname).
		build()
}

func osCwd(args []lang.Value, env *lang.Env) (lang.Value, error) {
	return lang.Str(env.Host().CurrentDirectory()), nil
}

func osCd(args []lang.Value, env *lang.Env) (lang.Value, error) {
	path := args[0]
	if !path.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "os@cd", path.Kind())
	}
	if err := env.Host().SetCurrentDirectory(path.Str()); err != nil {
		return lang.Value{}, lang.HostError(token.Span{}, err.Error())
	}
	return lang.None(), nil
}

func osEnv(args []lang.Value, env *lang.Env) (lang.Value, error) {
	name := args[0]
	if !name.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "os@env", name.Kind())
	}
	v, ok := env.Host().ReadEnv(name.Str())
	if !ok {
		return lang.None(), nil
	}
	return lang.Str(v), nil
}

func osSetenv(args []lang.Value, env *lang.Env) (lang.Value, error) {
	name, value := args[0], args[1]
	if !name.IsString() || !value.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "os@setenv", name.Kind(), value.Kind())
	}
	env.Host().WriteEnv(name.Str(), value.Str())
	return lang.None(), nil
}

// osShell splits a POSIX-style command line with go-shellquote and runs it
// through the Host exactly as a dune command-form Apply would, letting
// user scripts build up command strings programmatically (e.g. from a
// loop) rather than always writing them as literal command-form syntax.
func osShell(args []lang.Value, env *lang.Env) (lang.Value, error) {
	line := args[0]
	if !line.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "os@shell", line.Kind())
	}
	argv, err := shellquote.Split(line.Str())
	if err != nil {
		return lang.Value{}, lang.HostError(token.Span{}, "os@shell: "+err.Error())
	}
	if len(argv) == 0 {
		return lang.None(), nil
	}
	if env.Interrupted() {
		return lang.Value{}, lang.Interrupted(token.Span{})
	}
	code, err := env.Host().Spawn(argv, env.Host().CurrentDirectory(), nil)
	if err != nil {
		return lang.Value{}, lang.CommandNotFound(token.Span{}, argv[0])
	}
	return lang.Int(int64(code)), nil
}

// osCheck runs a command exactly like os@shell but treats a nonzero exit
// as an error (CommandFailed) instead of returning it as a plain Int, for
// callers that want failures to propagate through `try` rather than being
// checked by hand. `os@shell` and bare command dispatch (spec.md §4.6)
// always return `Int(exit_code)`; this is the caller-opt-in variant.
func osCheck(args []lang.Value, env *lang.Env) (lang.Value, error) {
	line := args[0]
	if !line.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "os@check", line.Kind())
	}
	argv, err := shellquote.Split(line.Str())
	if err != nil {
		return lang.Value{}, lang.HostError(token.Span{}, "os@check: "+err.Error())
	}
	if len(argv) == 0 {
		return lang.None(), nil
	}
	if env.Interrupted() {
		return lang.Value{}, lang.Interrupted(token.Span{})
	}
	code, err := env.Host().Spawn(argv, env.Host().CurrentDirectory(), nil)
	if err != nil {
		return lang.Value{}, lang.CommandNotFound(token.Span{}, argv[0])
	}
	if code != 0 {
		return lang.Value{}, lang.CommandFailed(token.Span{}, argv[0], code)
	}
	return lang.Int(int64(code)), nil
}

// osTmpname returns prefix followed by a random UUID from
// github.com/google/uuid, giving shell scripts scratch file/dir names that
// are practically collision-free; it only builds the name and creates
// nothing on disk.
func osTmpname(args []lang.Value, env *lang.Env) (lang.Value, error) {
	prefix := args[0]
	if !prefix.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "os@tmpname", prefix.Kind())
	}
	return lang.Str(prefix.Str() + uuid.NewString()), nil
}
