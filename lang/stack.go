package lang

import "github.com/adam-mcdaniel/dune/token"

// CallStack tracks active Apply sites so the evaluator can enforce
// spec.md's recursion-depth bound and render a call trace on error.
// Grounded on the teacher's lisp/stack.go CallStack/CallFrame, simplified
// since dune has no tail-call trampoline to bookkeep.
type CallStack struct {
	frames []CallFrame
	max    int
}

// CallFrame records one active application for trace rendering.
type CallFrame struct {
	Name string
	Span token.Span
}

// NewCallStack returns a stack that errors once more than max frames are
// active simultaneously.
func NewCallStack(max int) *CallStack {
	return &CallStack{max: max}
}

// Push records a new active frame, returning a RecursionDepthExceeded
// error instead of pushing if the limit would be exceeded.
func (s *CallStack) Push(name string, span token.Span) error {
	if len(s.frames) >= s.max {
		return RecursionDepthExceeded(span, s.max)
	}
	s.frames = append(s.frames, CallFrame{Name: name, Span: span})
	return nil
}

// Pop removes the most recently pushed frame.
func (s *CallStack) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth returns the number of currently active frames.
func (s *CallStack) Depth() int { return len(s.frames) }

// Trace returns the spans of currently active frames, outermost first, for
// attaching to an escaping *Error.
func (s *CallStack) Trace() []token.Span {
	spans := make([]token.Span, len(s.frames))
	for i, f := range s.frames {
		spans[i] = f.Span
	}
	return spans
}
