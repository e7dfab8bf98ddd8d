package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost is a minimal in-memory lang.Host for kernel-level tests that
// don't need a real process; mirrors the teacher's environ tests using a
// bare New(nil, nil) root without any host-backed side effects.
type fakeHost struct {
	cwd  string
	env  map[string]string
	out  []byte
	errb []byte
	argv [][]string
}

func newFakeHost() *fakeHost {
	return &fakeHost{cwd: "/tmp", env: map[string]string{}}
}

func (h *fakeHost) Spawn(argv []string, cwd string, envVars map[string]string) (int, error) {
	h.argv = append(h.argv, argv)
	return 0, nil
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

func newTestEnv() *Env {
	return NewRootEnv(newFakeHost(), NewCallStack(DefaultMaxRecursionDepth))
}

func TestEnvDefineLookup(t *testing.T) {
	env := newTestEnv()
	env.Define("x", Int(1))
	v, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int())

	_, ok = env.Lookup("y")
	assert.False(t, ok)
}

func TestEnvChildShadowsParent(t *testing.T) {
	root := newTestEnv()
	root.Define("x", Int(1))
	child := root.NewChild()
	child.Define("x", Int(2))

	v, _ := child.Lookup("x")
	assert.Equal(t, int64(2), v.Int())

	v, _ = root.Lookup("x")
	assert.Equal(t, int64(1), v.Int())
}

func TestEnvChildSeesParentBinding(t *testing.T) {
	root := newTestEnv()
	root.Define("x", Int(1))
	child := root.NewChild()
	v, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int())
}

func TestEnvAssignUpdatesExistingInParent(t *testing.T) {
	root := newTestEnv()
	root.Define("x", Int(1))
	child := root.NewChild()
	child.Assign("x", Int(99))

	v, _ := root.Lookup("x")
	assert.Equal(t, int64(99), v.Int(), "assign should walk the parent chain and mutate in place")

	_, definedLocally := child.vars["x"]
	assert.False(t, definedLocally, "assign must not shadow-create a local binding when one exists in an ancestor")
}

func TestEnvAssignCreatesLocalWhenUnbound(t *testing.T) {
	env := newTestEnv()
	env.Assign("newvar", Str("hi"))
	v, ok := env.Lookup("newvar")
	require.True(t, ok)
	assert.Equal(t, "hi", v.Str())
}

func TestEnvInterruptSharedAcrossChildren(t *testing.T) {
	root := newTestEnv()
	child := root.NewChild()
	assert.False(t, child.Interrupted())
	root.SetInterrupt(true)
	assert.True(t, child.Interrupted())
}

func TestEnvRoot(t *testing.T) {
	root := newTestEnv()
	child := root.NewChild().NewChild()
	assert.Same(t, root, child.Root())
}
