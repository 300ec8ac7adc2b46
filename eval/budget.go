package eval

import "github.com/fumisaitou/blisp/types"

// defaultStepBudget bounds the number of evaluation steps a single
// eval() call may take, adapted from the teacher's
// TaskContext.TicksRemaining (types/context.go): cooperative,
// decremented once per evaluation step, and raising a Runtime Error
// at the position of the enclosing top-level call when exhausted, per
// spec.md section 4.5 ("an implementation may add a cooperative step
// limit").
const defaultStepBudget = 2_000_000

// StepBudget is consumed once per Eval call so a runaway recursive
// BLisp program fails fast instead of hanging the host.
type StepBudget struct {
	Remaining int64
}

func NewStepBudget() *StepBudget {
	return &StepBudget{Remaining: defaultStepBudget}
}

// Consume decrements the budget and reports a Runtime Error positioned
// at pos once it is exhausted.
func (b *StepBudget) Consume(pos types.Position) *types.LispErr {
	b.Remaining--
	if b.Remaining < 0 {
		return types.NewErr(types.RuntimeError, pos, "step budget exhausted")
	}
	return nil
}
