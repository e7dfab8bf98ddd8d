package lang

import (
	"fmt"
	"strings"

	"github.com/adam-mcdaniel/dune/token"
)

// ErrorKind identifies one of the taxonomy members from spec.md §7.
type ErrorKind uint8

const (
	ErrParseError ErrorKind = iota
	ErrIncomplete
	ErrUnboundName
	ErrNotCallable
	ErrArityMismatch
	ErrTypeMismatch
	ErrIndexOutOfRange
	ErrKeyNotFound
	ErrDivideByZero
	ErrRecursionDepthExceeded
	ErrCommandNotFound
	ErrCommandFailed
	ErrHostError
	ErrInterrupted
)

// codes mirrors original_source/src/error.rs's codes() table: every kind
// gets a stable name and numeric code, used by the `try` builtin to
// convert a caught error into a tagged Map value.
var codes = [...]struct {
	name string
	code int
}{
	ErrParseError:             {"ParseError", 1},
	ErrIncomplete:             {"Incomplete", 2},
	ErrUnboundName:            {"UnboundName", 3},
	ErrNotCallable:            {"NotCallable", 4},
	ErrArityMismatch:          {"ArityMismatch", 5},
	ErrTypeMismatch:           {"TypeMismatch", 6},
	ErrIndexOutOfRange:        {"IndexOutOfRange", 7},
	ErrKeyNotFound:            {"KeyNotFound", 8},
	ErrDivideByZero:           {"DivideByZero", 9},
	ErrRecursionDepthExceeded: {"RecursionDepthExceeded", 10},
	ErrCommandNotFound:        {"CommandNotFound", 11},
	ErrCommandFailed:          {"CommandFailed", 12},
	ErrHostError:              {"HostError", 13},
	ErrInterrupted:            {"Interrupted", 14},
}

func (k ErrorKind) String() string {
	if int(k) >= len(codes) {
		return "Unknown"
	}
	return codes[k].name
}

// Code returns the stable numeric code for k.
func (k ErrorKind) Code() int {
	if int(k) >= len(codes) {
		return 0
	}
	return codes[k].code
}

// Error is the kernel's structured error type, carrying enough context to
// render a caret-annotated diagnostic and, for call errors, a trace of
// active Apply sites.
type Error struct {
	Kind    ErrorKind
	Span    token.Span
	Message string

	// Frame-specific payloads, populated by the evaluator where relevant.
	Expected int
	Got      int
	Name     string

	Trace []token.Span
}

func (e *Error) Error() string {
	if e.Span.Line != 0 {
		return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is(err, &lang.Error{Kind: lang.ErrUnboundName}) style
// checks match any *Error of the same Kind; a target that is not an *Error
// never matches. Kept minimal since the pack has no third-party
// error-wrapping library to match (see DESIGN.md).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func NewError(kind ErrorKind, span token.Span, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

func UnboundName(span token.Span, name string) *Error {
	return &Error{Kind: ErrUnboundName, Span: span, Name: name, Message: fmt.Sprintf("unbound name %q", name)}
}

func NotCallable(span token.Span, kind Kind) *Error {
	return &Error{Kind: ErrNotCallable, Span: span, Message: fmt.Sprintf("value of kind %q is not callable", kind)}
}

func ArityMismatch(span token.Span, expected, got int) *Error {
	return &Error{
		Kind: ErrArityMismatch, Span: span, Expected: expected, Got: got,
		Message: fmt.Sprintf("expected %d argument(s), got %d", expected, got),
	}
}

func TypeMismatch(span token.Span, op string, kinds ...Kind) *Error {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return &Error{
		Kind: ErrTypeMismatch, Span: span,
		Message: fmt.Sprintf("operator %q not defined for (%s)", op, strings.Join(names, ", ")),
	}
}

func IndexOutOfRange(span token.Span, length, idx int) *Error {
	return &Error{
		Kind: ErrIndexOutOfRange, Span: span,
		Message: fmt.Sprintf("index %d out of range for length %d", idx, length),
	}
}

func KeyNotFound(span token.Span, key Value) *Error {
	return &Error{Kind: ErrKeyNotFound, Span: span, Message: fmt.Sprintf("key not found: %s", key.Repr())}
}

func DivideByZero(span token.Span) *Error {
	return &Error{Kind: ErrDivideByZero, Span: span, Message: "division by zero"}
}

func RecursionDepthExceeded(span token.Span, limit int) *Error {
	return &Error{
		Kind: ErrRecursionDepthExceeded, Span: span,
		Message: fmt.Sprintf("recursion depth exceeded (limit %d)", limit),
	}
}

func CommandNotFound(span token.Span, name string) *Error {
	return &Error{Kind: ErrCommandNotFound, Span: span, Name: name, Message: fmt.Sprintf("command not found: %s", name)}
}

func CommandFailed(span token.Span, name string, exitCode int) *Error {
	return &Error{
		Kind: ErrCommandFailed, Span: span, Name: name,
		Message: fmt.Sprintf("command %q exited with code %d", name, exitCode),
	}
}

func HostError(span token.Span, message string) *Error {
	return &Error{Kind: ErrHostError, Span: span, Message: message}
}

func Interrupted(span token.Span) *Error {
	return &Error{Kind: ErrInterrupted, Span: span, Message: "interrupted"}
}

// CodesTable exposes the try builtin's symbolic-name/code map, grounded on
// original_source/src/error.rs's codes() helper.
func CodesTable() *OrderedMap {
	m := NewOrderedMap()
	for k := ErrParseError; int(k) < len(codes); k++ {
		m.Set(Str(codes[k].name), Int(int64(codes[k].code)))
	}
	return m
}

// Render writes a caret-annotated diagnostic for e against src, the
// original source text, in the style original_source/src/error.rs uses.
// When color is true, ANSI escapes highlight the caret and message;
// cmd/dune gates color off via go-isatty when stdout is not a terminal.
func (e *Error) Render(src string, color bool) string {
	var sb strings.Builder
	bold, reset, red := "", "", ""
	if color {
		bold, reset, red = "\x1b[1m", "\x1b[0m", "\x1b[31m"
	}
	fmt.Fprintf(&sb, "%s%serror[%s]:%s %s\n", bold, red, e.Kind, reset, e.Message)
	if e.Span.File != "" || e.Span.Line != 0 {
		fmt.Fprintf(&sb, "  %s--> %s%s\n", bold, reset, e.Span)
	}
	line := sourceLine(src, e.Span.Line)
	if line != "" {
		fmt.Fprintf(&sb, "   |\n%2d | %s\n   | %s%s^%s\n", e.Span.Line, line,
			strings.Repeat(" ", max(0, e.Span.Col-1)), red, reset)
	}
	for i := len(e.Trace) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "   ...called from %s\n", e.Trace[i])
	}
	return sb.String()
}

func sourceLine(src string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
