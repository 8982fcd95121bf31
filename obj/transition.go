package obj

import "github.com/milk9111/stress/common"

type TransitionPhase int

const (
	TransitionIdle TransitionPhase = iota
	// TransitionOut fades to black.
	TransitionOut
	// TransitionIn fades back from black after the switch.
	TransitionIn
)

// Transition fades to black, calls OnSwitch at full black, then fades back.
type Transition struct {
	Duration float64
	OnSwitch func(target string)

	phase   TransitionPhase
	elapsed float64
	target  string
}

func NewTransition(duration float64, onSwitch func(target string)) *Transition {
	return &Transition{Duration: duration, OnSwitch: onSwitch}
}

// Start begins a transition to target. It is ignored while one is running.
func (t *Transition) Start(target string) bool {
	if t.phase != TransitionIdle {
		return false
	}
	t.phase = TransitionOut
	t.elapsed = 0
	t.target = target
	if t.Duration <= 0 {
		t.finishOut()
		t.phase = TransitionIdle
	}
	return true
}

// Update advances the fade and reports whether a transition is running, in
// which case the caller should hold its simulation.
func (t *Transition) Update(dt float64) bool {
	switch t.phase {
	case TransitionOut:
		t.elapsed += dt
		if t.elapsed >= t.Duration {
			t.finishOut()
		}
	case TransitionIn:
		t.elapsed += dt
		if t.elapsed >= t.Duration {
			t.phase = TransitionIdle
			t.elapsed = 0
		}
	}
	return t.phase != TransitionIdle
}

func (t *Transition) finishOut() {
	target := t.target
	t.target = ""
	t.phase = TransitionIn
	t.elapsed = 0
	if t.OnSwitch != nil {
		t.OnSwitch(target)
	}
}

// Alpha is the overlay opacity in [0,1].
func (t *Transition) Alpha() float64 {
	if t.Duration <= 0 {
		return 0
	}
	switch t.phase {
	case TransitionOut:
		return common.Clamp01(t.elapsed / t.Duration)
	case TransitionIn:
		return common.Clamp01(1 - t.elapsed/t.Duration)
	}
	return 0
}

func (t *Transition) Active() bool { return t.phase != TransitionIdle }
func (t *Transition) Phase() TransitionPhase { return t.phase }
