package lang

import "io"

// DefaultMaxRecursionDepth matches spec.md §3's stated default.
const DefaultMaxRecursionDepth = 500

// Kernel bundles a root environment together with the I/O streams builtins
// write to, constructed via functional options in the teacher's
// lisp/config.go style (Config func(*LEnv) *LVal adapted to Go's common
// "options struct + Option funcs" idiom).
type Kernel struct {
	Root    *Env
	Stdout  io.Writer
	Stderr  io.Writer
	Prelude string // path to a prelude file to load at startup, if any
}

// Option configures a Kernel during NewKernel.
type Option func(*kernelConfig)

type kernelConfig struct {
	maxDepth int
	stdout   io.Writer
	stderr   io.Writer
	prelude  string
}

// WithMaxRecursionDepth overrides spec.md's default recursion bound.
func WithMaxRecursionDepth(n int) Option {
	return func(c *kernelConfig) { c.maxDepth = n }
}

// WithStdout overrides where builtins write their standard output.
func WithStdout(w io.Writer) Option {
	return func(c *kernelConfig) { c.stdout = w }
}

// WithStderr overrides where builtins write their standard error.
func WithStderr(w io.Writer) Option {
	return func(c *kernelConfig) { c.stderr = w }
}

// WithPrelude sets the path the REPL driver should load at startup
// (spec.md §6); the kernel itself does not read this file, it only
// threads the path through for the repl package to use.
func WithPrelude(path string) Option {
	return func(c *kernelConfig) { c.prelude = path }
}

// NewKernel builds a root environment over host with the given options
// applied. It does not populate builtin modules; callers (typically
// stdlib.Install) do that afterward so the kernel package stays free of a
// dependency on stdlib.
func NewKernel(host Host, opts ...Option) *Kernel {
	cfg := &kernelConfig{maxDepth: DefaultMaxRecursionDepth}
	for _, opt := range opts {
		opt(cfg)
	}
	root := NewRootEnv(host, NewCallStack(cfg.maxDepth))
	return &Kernel{Root: root, Stdout: cfg.stdout, Stderr: cfg.stderr, Prelude: cfg.prelude}
}
