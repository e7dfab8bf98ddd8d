package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner turns a byte stream into a sequence of runes while tracking byte
// offsets and line/column positions, and accumulates the text of the token
// currently being built so the lexer can cut tokens out of it.
type Scanner struct {
	file string

	r       io.Reader
	readErr error

	buf   []byte
	start int // start offset of the current token within buf
	pos   int // offset of the current rune within buf
	next  int // offset of the rune following pos

	c    scannedRune
	peek []scannedRune

	totalPos int // byte offset of pos within the whole stream
	line     int
	col      int
	startPos int
	startLn  int
	startCol int
}

type scannedRune struct {
	c rune
	n int
}

func (r scannedRune) isError() bool {
	return r.c == utf8.RuneError && r.n == 1
}

// NewScanner returns a Scanner reading from r. file is used only to label
// spans for diagnostics.
func NewScanner(file string, r io.Reader) *Scanner {
	s := &Scanner{
		file:     file,
		r:        r,
		buf:      make([]byte, 8<<10),
		line:     1,
		col:      1,
		startLn:  1,
		startCol: 1,
	}
	s.fill(0)
	return s
}

// Ignore discards the text scanned since the last call to Ignore or
// EmitToken, resetting the start of the next token to the current position.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLn = s.line
	s.startCol = s.col
	if s.c.n > 0 {
		s.startCol++ // the next token starts after the current rune
	}
	s.startPos = s.totalPos + s.c.n
	if s.c.c == '\n' {
		s.startLn++
		s.startCol = 1
	}
}

// Text returns the raw text scanned since the last Ignore/EmitToken.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.next])
}

// Rune returns the most recently scanned rune.
func (s *Scanner) Rune() rune {
	return s.c.c
}

// Peek returns the next rune without consuming it. ok is false at EOF or on
// an invalid UTF-8 sequence.
func (s *Scanner) Peek() (r rune, ok bool) {
	return s.PeekAt(0)
}

// PeekAt returns the rune n positions past the current one (n=0 is the same
// as Peek) without consuming any input.
func (s *Scanner) PeekAt(n int) (r rune, ok bool) {
	for len(s.peek) <= n {
		off := s.next
		for _, p := range s.peek {
			off += p.n
		}
		if rem := len(s.buf) - off; rem < utf8.UTFMax {
			s.extendFrom(off)
			off = s.next
			for _, p := range s.peek {
				off += p.n
			}
		}
		if len(s.buf)-off == 0 {
			return 0, false
		}
		c, sz := utf8.DecodeRune(s.buf[off:])
		rr := scannedRune{c, sz}
		if rr.isError() {
			return utf8.RuneError, false
		}
		s.peek = append(s.peek, rr)
	}
	return s.peek[n].c, true
}

// extendFrom behaves like extend but is safe to call while runes are
// already buffered in s.peek, since it never shifts bytes before s.start.
func (s *Scanner) extendFrom(off int) {
	if s.readErr != nil {
		return
	}
	if s.start == 0 {
		s.extend() // grows in place; nothing moves
		return
	}
	shift := s.start
	end := copy(s.buf, s.buf[shift:])
	s.pos -= shift
	s.next -= shift
	s.start = 0
	s.fill(end)
}

// ScanRune consumes the next rune from the input, making it available via
// Rune, and advances all position bookkeeping.
func (s *Scanner) ScanRune() error {
	if len(s.peek) > 0 {
		s.advance(s.peek[0])
		s.peek = s.peek[1:]
		return s.checkRuneError()
	}
	if err := s.checkExtend(); err != nil {
		return err
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	s.advance(scannedRune{c, n})
	if err := s.checkRuneError(); err != nil {
		if s.readErr != nil {
			return s.readErr
		}
		return err
	}
	return nil
}

func (s *Scanner) advance(r scannedRune) {
	old := s.c
	s.c = r
	s.totalPos += old.n
	s.pos += old.n
	s.next += r.n
	if old.c == '\n' {
		s.line++
		s.col = 1
	} else if old.n > 0 {
		s.col++
	}
}

func (s *Scanner) checkRuneError() error {
	if s.c.isError() {
		return fmt.Errorf("invalid utf-8 sequence in source text at byte %d", s.pos)
	}
	return nil
}

// LocStart returns the Span of the token currently being scanned, from the
// last Ignore/EmitToken up to (but not including) the current rune.
func (s *Scanner) LocStart() Span {
	return Span{
		File:  s.file,
		Start: s.startPos,
		End:   s.totalPos,
		Line:  s.startLn,
		Col:   s.startCol,
	}
}

// EmitToken returns a Token of type typ containing the text scanned since
// the last Ignore/EmitToken, and resets the scanner for the next token.
func (s *Scanner) EmitToken(typ Type) *Token {
	span := s.LocStart()
	span.End = s.totalPos + s.c.n
	tok := &Token{Type: typ, Text: s.Text(), Span: span}
	s.Ignore()
	return tok
}

func (s *Scanner) checkExtend() error {
	rem := len(s.buf) - s.next
	if rem < utf8.UTFMax {
		s.extend()
	}
	if len(s.buf)-s.next == 0 {
		return io.EOF
	}
	return nil
}

func (s *Scanner) extend() {
	if s.start == 0 {
		// Nothing before the current token can be reclaimed, so grow the
		// buffer instead of compacting it.
		if s.readErr != nil {
			return
		}
		end := len(s.buf)
		s.buf = append(s.buf, make([]byte, end+utf8.UTFMax)...)
		s.fill(end)
		return
	}
	end := copy(s.buf, s.buf[s.start:])
	s.pos -= s.start
	s.next -= s.start
	s.start = 0
	s.fill(end)
}

func (s *Scanner) fill(end int) {
	if s.readErr != nil {
		s.buf = s.buf[:end]
		return
	}
	n, err := io.ReadFull(s.r, s.buf[end:])
	s.buf = s.buf[:end+n]
	if err == io.ErrUnexpectedEOF {
		return
	}
	s.readErr = err
}
