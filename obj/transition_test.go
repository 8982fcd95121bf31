package obj

import "testing"

func TestTransitionSwitchesAtFullBlack(t *testing.T) {
	var switched []string
	tr := NewTransition(0.5, func(target string) { switched = append(switched, target) })

	if !tr.Start("level2") {
		t.Fatal("Start on idle transition should succeed")
	}
	if tr.Start("level3") {
		t.Fatal("Start while running should be ignored")
	}

	for i := 0; i < 4; i++ {
		tr.Update(0.1)
	}
	if len(switched) != 0 {
		t.Fatalf("switched early: %v", switched)
	}
	if a := tr.Alpha(); a < 0.79 || a > 0.81 {
		t.Fatalf("alpha during fade out = %v, want 0.8", a)
	}

	tr.Update(0.1)
	if len(switched) != 1 || switched[0] != "level2" {
		t.Fatalf("switched = %v, want [level2]", switched)
	}
	if tr.Phase() != TransitionIn || tr.Alpha() != 1 {
		t.Fatalf("phase=%v alpha=%v after switch", tr.Phase(), tr.Alpha())
	}

	running := true
	for i := 0; i < 5; i++ {
		running = tr.Update(0.1)
	}
	if running || tr.Active() || tr.Alpha() != 0 {
		t.Fatalf("transition should be idle: running=%v alpha=%v", running, tr.Alpha())
	}
	if len(switched) != 1 {
		t.Fatalf("switched more than once: %v", switched)
	}
}

func TestTransitionZeroDurationSwitchesImmediately(t *testing.T) {
	var got string
	tr := NewTransition(0, func(target string) { got = target })
	tr.Start("menu")
	if got != "menu" || tr.Active() {
		t.Fatalf("got=%q active=%v", got, tr.Active())
	}
}
