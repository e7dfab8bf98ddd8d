package lang

import "fmt"

// ExitError is returned (not panicked) when user code calls the `exit`
// builtin, so an embedding driver like repl.REPL or cmd/dune can stop its
// loop and translate Code into a process exit status (spec.md §6: "0 on
// clean exit from exit/EOF").
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit(%d)", e.Code) }
