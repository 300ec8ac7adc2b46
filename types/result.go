package types

// Result unifies a successful Value with a RuntimeError outcome for
// every evaluation step, adapted from the teacher's types.Result
// (which additionally threads return/break/continue control flow for
// MOO's imperative statements). BLisp has no statements, loops, or
// early return, so only two outcomes remain.
type Result struct {
	Val   Value
	IsErr bool
	Err   *LispErr
}

func Ok(v Value) Result { return Result{Val: v} }

func ErrAt(pos Position, format string, args ...interface{}) Result {
	return Result{IsErr: true, Err: NewErr(RuntimeError, pos, format, args...)}
}

func ErrOf(e *LispErr) Result { return Result{IsErr: true, Err: e} }
