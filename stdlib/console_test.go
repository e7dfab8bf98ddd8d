package stdlib

import (
	"testing"

	"github.com/adam-mcdaniel/dune/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePrintJoinsWithSpaceNoNewline(t *testing.T) {
	env, host := newTestEnv()
	_, err := consolePrint([]lang.Value{lang.Str("a"), lang.Int(1)}, env)
	require.NoError(t, err)
	assert.Equal(t, "a 1", string(host.out))
}

func TestConsolePrintlnAppendsNewline(t *testing.T) {
	env, host := newTestEnv()
	_, err := consolePrintln([]lang.Value{lang.Str("hi")}, env)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(host.out))
}

func TestConsoleErrorWritesToStderr(t *testing.T) {
	env, host := newTestEnv()
	_, err := consoleError([]lang.Value{lang.Str("bad"), lang.Str("thing")}, env)
	require.NoError(t, err)
	assert.Equal(t, "bad thing\n", string(host.errb))
	assert.Empty(t, host.out)
}
