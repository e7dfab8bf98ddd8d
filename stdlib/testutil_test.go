package stdlib

import (
	"github.com/adam-mcdaniel/dune/lang"
)

// fakeHost is a minimal in-memory lang.Host for builtin tests, mirroring
// lang's own env_test.go fakeHost since Host has no exported test double.
type fakeHost struct {
	cwd  string
	env  map[string]string
	out  []byte
	errb []byte
	argv [][]string
	code int
}

func newFakeHost() *fakeHost {
	return &fakeHost{cwd: "/tmp", env: map[string]string{}}
}

func (h *fakeHost) Spawn(argv []string, cwd string, envVars map[string]string) (int, error) {
	h.argv = append(h.argv, argv)
	return h.code, nil
}
func (h *fakeHost) CurrentDirectory() string { return h.cwd }
func (h *fakeHost) SetCurrentDirectory(path string) error {
	h.cwd = path
	return nil
}
func (h *fakeHost) ReadEnv(name string) (string, bool) {
	v, ok := h.env[name]
	return v, ok
}
func (h *fakeHost) WriteEnv(name, value string) { h.env[name] = value }
func (h *fakeHost) StdoutWrite(p []byte) (int, error) {
	h.out = append(h.out, p...)
	return len(p), nil
}
func (h *fakeHost) StderrWrite(p []byte) (int, error) {
	h.errb = append(h.errb, p...)
	return len(p), nil
}

func newTestEnv() (*lang.Env, *fakeHost) {
	h := newFakeHost()
	return lang.NewRootEnv(h, lang.NewCallStack(lang.DefaultMaxRecursionDepth)), h
}
