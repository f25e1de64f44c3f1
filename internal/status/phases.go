// Package status tracks the phase of a trace run.
//
// A start run moves Idle → Resolved → Paused → Traced → Running; a stop run
// moves Idle → Resolved → Paused → Untraced → Running. Any phase can move to
// Failed, which is terminal.
package status

import "fmt"

// Phase is a step of a trace run.
type Phase string

const (
	PhaseIdle     Phase = "Idle"
	PhaseResolved Phase = "Resolved"
	PhasePaused   Phase = "Paused"
	PhaseTraced   Phase = "Traced"
	PhaseUntraced Phase = "Untraced"
	PhaseRunning  Phase = "Running"
	PhaseFailed   Phase = "Failed"
)

// allowed lists the legal predecessors of each phase.
var allowed = map[Phase][]Phase{
	PhaseResolved: {PhaseIdle},
	PhasePaused:   {PhaseResolved},
	PhaseTraced:   {PhasePaused},
	PhaseUntraced: {PhasePaused},
	PhaseRunning:  {PhaseTraced, PhaseUntraced},
}

// Tracker records the current phase and every phase entered so far.
type Tracker struct {
	phase   Phase
	history []Phase
	reason  string
}

// NewTracker creates a Tracker in PhaseIdle.
func NewTracker() *Tracker {
	return &Tracker{phase: PhaseIdle, history: []Phase{PhaseIdle}}
}

// Phase returns the current phase.
func (t *Tracker) Phase() Phase {
	return t.phase
}

// History returns the phases entered, oldest first.
func (t *Tracker) History() []Phase {
	return append([]Phase(nil), t.history...)
}

// Reason returns the failure reason, if the tracker is in PhaseFailed.
func (t *Tracker) Reason() string {
	return t.reason
}

// Transition moves to phase to. The phase is unchanged on error.
func (t *Tracker) Transition(to Phase) error {
	if to == PhaseFailed {
		return fmt.Errorf("use Fail to enter phase %s", PhaseFailed)
	}
	if IsTerminal(t.phase) {
		return fmt.Errorf("cannot transition to %s from terminal phase %s", to, t.phase)
	}
	for _, from := range allowed[to] {
		if t.phase == from {
			t.enter(to)
			return nil
		}
	}
	return fmt.Errorf("cannot transition to %s from phase %s", to, t.phase)
}

// Fail moves to PhaseFailed from any phase and records the reason.
func (t *Tracker) Fail(reason string) {
	t.reason = reason
	if t.phase != PhaseFailed {
		t.enter(PhaseFailed)
	}
}

func (t *Tracker) enter(p Phase) {
	t.phase = p
	t.history = append(t.history, p)
}

// IsTerminal returns true if the phase is terminal (Running or Failed).
func IsTerminal(phase Phase) bool {
	return phase == PhaseRunning || phase == PhaseFailed
}
