package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerBasicRuneWalk(t *testing.T) {
	s := NewScanner("t.dune", strings.NewReader("ab"))
	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'a', s.Rune())
	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'b', s.Rune())
	err := s.ScanRune()
	assert.Error(t, err)
}

func TestScannerPeekDoesNotConsume(t *testing.T) {
	s := NewScanner("t.dune", strings.NewReader("xy"))
	r, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 'x', r)
	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'x', s.Rune(), "peeking must not advance the scan position")
}

func TestScannerPeekAt(t *testing.T) {
	s := NewScanner("t.dune", strings.NewReader("abc"))
	r, ok := s.PeekAt(1)
	require.True(t, ok)
	assert.Equal(t, 'b', r)
}

func TestScannerEmitTokenAndIgnore(t *testing.T) {
	s := NewScanner("t.dune", strings.NewReader("foo bar"))
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	tok := s.EmitToken(SYMBOL)
	assert.Equal(t, "foo", tok.Text)
	assert.Equal(t, SYMBOL, tok.Type)

	require.NoError(t, s.ScanRune()) // space
	s.Ignore()

	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	tok2 := s.EmitToken(SYMBOL)
	assert.Equal(t, "bar", tok2.Text)
}

func TestScannerTracksLineAndColumn(t *testing.T) {
	s := NewScanner("t.dune", strings.NewReader("a\nbc"))
	require.NoError(t, s.ScanRune()) // 'a'
	tok := s.EmitToken(SYMBOL)
	assert.Equal(t, 1, tok.Span.Line)
	assert.Equal(t, 1, tok.Span.Col)

	require.NoError(t, s.ScanRune()) // '\n'
	s.Ignore()
	require.NoError(t, s.ScanRune()) // 'b'
	require.NoError(t, s.ScanRune()) // 'c'
	tok2 := s.EmitToken(SYMBOL)
	assert.Equal(t, 2, tok2.Span.Line)
	assert.Equal(t, 1, tok2.Span.Col)
}

func TestScannerHandlesInputLargerThanInitialBuffer(t *testing.T) {
	long := strings.Repeat("a", 20000)
	s := NewScanner("t.dune", strings.NewReader(long))
	count := 0
	for {
		if err := s.ScanRune(); err != nil {
			break
		}
		count++
	}
	assert.Equal(t, len(long), count)
}
