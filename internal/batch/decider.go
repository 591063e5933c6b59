package batch

import "context"

// Decision is the operator's answer at a print-failure suspension point.
type Decision int

const (
	// DecisionContinue drops the failed item(s) and moves to the next
	// iteration.
	DecisionContinue Decision = iota
	// DecisionAbort stops the run; unattempted items stay in the queue.
	DecisionAbort
)

// PromptContext describes the failure being escalated to the operator.
type PromptContext struct {
	BatchID      string
	ItemIDs      []int64
	Payees       []string
	CheckNumbers []string
	Err          error
}

// Decider is the blocking human-decision collaborator. The orchestrator
// suspends at exactly this call and resumes only once a decision is supplied.
// A failed print is never retried automatically: the underlying cause is not
// distinguishable programmatically from a successful-but-unconfirmed print.
type Decider interface {
	Decide(ctx context.Context, prompt PromptContext) (Decision, error)
}

// DecideFunc adapts a function to the Decider interface.
type DecideFunc func(ctx context.Context, prompt PromptContext) (Decision, error)

// Decide implements Decider.
func (f DecideFunc) Decide(ctx context.Context, prompt PromptContext) (Decision, error) {
	return f(ctx, prompt)
}

// AbortDecider always aborts. It backs non-interactive runs where no human is
// present to judge a print failure.
func AbortDecider() Decider {
	return DecideFunc(func(context.Context, PromptContext) (Decision, error) {
		return DecisionAbort, nil
	})
}
