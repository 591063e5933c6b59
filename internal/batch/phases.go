package batch

// Phase represents the lifecycle of one batch run.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConfirming Phase = "confirming"
	PhaseRunning    Phase = "running"
	PhaseCommitting Phase = "committing"
	PhaseCompleted  Phase = "completed"
	PhaseCancelled  Phase = "cancelled"
)
