package stdlib

import (
	"testing"

	"github.com/adam-mcdaniel/dune/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOsCwdReadsHost(t *testing.T) {
	env, host := newTestEnv()
	host.cwd = "/home/dune"
	v, err := osCwd(nil, env)
	require.NoError(t, err)
	assert.Equal(t, "/home/dune", v.Str())
}

func TestOsCdSetsHostDirectory(t *testing.T) {
	env, host := newTestEnv()
	_, err := osCd([]lang.Value{lang.Str("/tmp/foo")}, env)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/foo", host.cwd)
}

func TestOsEnvRoundTrip(t *testing.T) {
	env, _ := newTestEnv()
	_, err := osSetenv([]lang.Value{lang.Str("FOO"), lang.Str("bar")}, env)
	require.NoError(t, err)
	v, err := osEnv([]lang.Value{lang.Str("FOO")}, env)
	require.NoError(t, err)
	assert.Equal(t, "bar", v.Str())
}

func TestOsEnvMissingIsNone(t *testing.T) {
	env, _ := newTestEnv()
	v, err := osEnv([]lang.Value{lang.Str("NOPE")}, env)
	require.NoError(t, err)
	assert.True(t, v.IsNone())
}

func TestOsShellSplitsAndSpawns(t *testing.T) {
	env, host := newTestEnv()
	v, err := osShell([]lang.Value{lang.Str("echo hi there")}, env)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int())
	require.Len(t, host.argv, 1)
	assert.Equal(t, []string{"echo", "hi", "there"}, host.argv[0])
}

func TestOsShellEmptyLineIsNoop(t *testing.T) {
	env, host := newTestEnv()
	v, err := osShell([]lang.Value{lang.Str("   ")}, env)
	require.NoError(t, err)
	assert.True(t, v.IsNone())
	assert.Empty(t, host.argv)
}

func TestOsShellRespectsInterrupt(t *testing.T) {
	env, _ := newTestEnv()
	env.SetInterrupt(true)
	_, err := osShell([]lang.Value{lang.Str("echo hi")}, env)
	assert.Error(t, err)
	derr, ok := err.(*lang.Error)
	require.True(t, ok)
	assert.Equal(t, lang.ErrInterrupted, derr.Kind)
}

func TestOsCheckReturnsExitCodeOnSuccess(t *testing.T) {
	env, _ := newTestEnv()
	v, err := osCheck([]lang.Value{lang.Str("echo hi")}, env)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int())
}

func TestOsCheckRaisesCommandFailedOnNonzeroExit(t *testing.T) {
	env, host := newTestEnv()
	host.code = 7
	_, err := osCheck([]lang.Value{lang.Str("false")}, env)
	require.Error(t, err)
	derr, ok := err.(*lang.Error)
	require.True(t, ok)
	assert.Equal(t, lang.ErrCommandFailed, derr.Kind)
}

func TestOsTmpnameIsUniqueAndPrefixed(t *testing.T) {
	env, _ := newTestEnv()
	a, err := osTmpname([]lang.Value{lang.Str("scratch-")}, env)
	require.NoError(t, err)
	b, err := osTmpname([]lang.Value{lang.Str("scratch-")}, env)
	require.NoError(t, err)
	assert.NotEqual(t, a.Str(), b.Str())
	assert.Contains(t, a.Str(), "scratch-")
}
