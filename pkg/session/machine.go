package session

// Navigation interception as a pure state machine. The UI layer dispatches
// events and executes the returned effects; nothing here knows about any
// particular navigation framework.

// Phase is the interceptor's position in the edit/leave cycle.
type Phase int

const (
	// PhaseClean means live content matches the last-persisted snapshot.
	PhaseClean Phase = iota
	// PhaseDirty means there is unsaved work.
	PhaseDirty
	// PhasePendingDecision means an outbound navigation is blocked awaiting a
	// discard / cancel / save-draft decision.
	PhasePendingDecision
	// PhaseResolved is transient: the decision ran and the blocked navigation
	// was released. A new edit re-enters PhaseDirty.
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseClean:
		return "clean"
	case PhaseDirty:
		return "dirty"
	case PhasePendingDecision:
		return "pending-decision"
	case PhaseResolved:
		return "resolved"
	}
	return "unknown"
}

// Decision is the user's answer to the unsaved-changes prompt.
type Decision int

const (
	DecisionDiscard Decision = iota
	DecisionCancel
	DecisionSaveDraft
)

// State is the interceptor state. Target is only meaningful while a decision
// is pending.
type State struct {
	Phase  Phase
	Target string
	Data   EntryData
}

// Event is an input to Transition.
type Event interface{ isEvent() }

// EditChanged fires whenever the editor recomputes dirtiness.
type EditChanged struct {
	HasChanges bool
	Data       EntryData
}

// Navigate fires on an attempted outbound transition.
type Navigate struct {
	Target string
}

// Decided resolves a pending decision.
type Decided struct {
	Decision Decision
}

func (EditChanged) isEvent() {}
func (Navigate) isEvent()    {}
func (Decided) isEvent()     {}

// Effect is an action the caller must execute, in order.
type Effect interface{ isEffect() }

// AllowNavigation releases the transition to Target.
type AllowNavigation struct {
	Target string
}

// BlockNavigation holds the editor in place while a decision is pending.
type BlockNavigation struct{}

// PersistDraft stores Data as a draft before navigation proceeds.
type PersistDraft struct {
	Data EntryData
}

// ClearSession releases the edit-session guard.
type ClearSession struct{}

func (AllowNavigation) isEffect() {}
func (BlockNavigation) isEffect() {}
func (PersistDraft) isEffect()    {}
func (ClearSession) isEffect()    {}

// Transition applies ev to s and returns the next state plus the effects the
// caller must run.
func Transition(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case EditChanged:
		if s.Phase == PhasePendingDecision {
			// Edits cannot land while the prompt is up; ignore stragglers.
			return s, nil
		}
		s.Data = ev.Data
		if ev.HasChanges {
			s.Phase = PhaseDirty
		} else {
			s.Phase = PhaseClean
		}
		return s, nil

	case Navigate:
		if s.Phase == PhaseDirty && !s.Data.Blank() {
			s.Phase = PhasePendingDecision
			s.Target = ev.Target
			return s, []Effect{BlockNavigation{}}
		}
		// Clean, resolved, or dirty-but-empty editors leave without a prompt.
		return s, []Effect{AllowNavigation{Target: ev.Target}}

	case Decided:
		if s.Phase != PhasePendingDecision {
			return s, nil
		}
		target := s.Target
		s.Target = ""
		switch ev.Decision {
		case DecisionDiscard:
			s.Phase = PhaseResolved
			return s, []Effect{ClearSession{}, AllowNavigation{Target: target}}
		case DecisionCancel:
			// The blocked navigation is abandoned; the unsaved work remains.
			s.Phase = PhaseDirty
			return s, nil
		case DecisionSaveDraft:
			data := s.Data
			s.Phase = PhaseResolved
			return s, []Effect{PersistDraft{Data: data}, ClearSession{}, AllowNavigation{Target: target}}
		}
	}
	return s, nil
}
