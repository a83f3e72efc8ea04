package engine

import "github.com/sanguosha/resolve/internal/rerr"

// Result is a resolver's outcome: ok, or a reportable Failure (spec.md §3,
// §7). A Failure never aborts the stack — it is recorded in history and
// surfaced to whoever started the resolution tree.
type Result struct {
	Err *rerr.Error
}

// Success reports ok.
func Success() Result {
	return Result{}
}

// Fail reports a reportable failure.
func Fail(err *rerr.Error) Result {
	return Result{Err: err}
}

// Ok reports whether the result was a success.
func (r Result) Ok() bool {
	return r.Err == nil
}
