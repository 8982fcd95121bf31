package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCinematicNeedsTwoWaypoints(t *testing.T) {
	cases := []struct {
		name      string
		waypoints []cp.Vector
	}{
		{"none", nil},
		{"one", []cp.Vector{{X: 1, Y: 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cin := NewCinematic(DefaultCinematicConfig(), c.waypoints)
			if cin.Start() {
				t.Fatalf("Start should refuse a short path")
			}
			if cin.Running() || !cin.Done() {
				t.Fatalf("phase = %s, want done", cin.Phase())
			}
		})
	}
}

func runCinematic(cin *Cinematic, dt float64, skipAt int, target cp.Vector) (int, []CinematicPhase) {
	var phases []CinematicPhase
	ticks := 0
	for cin.Running() && ticks < 1000 {
		cin.Update(dt, ticks == skipAt, target)
		ticks++
		if len(phases) == 0 || phases[len(phases)-1] != cin.Phase() {
			phases = append(phases, cin.Phase())
		}
	}
	return ticks, phases
}

func TestCinematicFullPath(t *testing.T) {
	waypoints := []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	cin := NewCinematic(DefaultCinematicConfig(), waypoints)
	if !cin.Start() {
		t.Fatalf("Start failed")
	}
	if cin.Position() != waypoints[0] {
		t.Fatalf("start position = %v", cin.Position())
	}

	target := cp.Vector{X: -5, Y: 2}
	ticks, phases := runCinematic(cin, 0.05, -1, target)

	// 2 segments of 2s, 0.75s hold, 1.25s return
	if ticks < 115 || ticks > 125 {
		t.Fatalf("took %d ticks, want about 120", ticks)
	}
	want := []CinematicPhase{CinematicSegments, CinematicHold, CinematicReturn, CinematicDone}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phases = %v, want %v", phases, want)
		}
	}
	if cin.Position() != target {
		t.Fatalf("end position = %v, want %v", cin.Position(), target)
	}
}

func TestCinematicHoldsOnLastWaypoint(t *testing.T) {
	waypoints := []cp.Vector{{X: 0, Y: 0}, {X: 4, Y: 0}}
	cin := NewCinematic(DefaultCinematicConfig(), waypoints)
	cin.Start()
	for cin.Phase() == CinematicSegments {
		cin.Update(0.05, false, cp.Vector{})
	}
	if cin.Phase() != CinematicHold {
		t.Fatalf("phase = %s, want hold", cin.Phase())
	}
	if !near(cin.Position().X, 4, 1e-3) {
		t.Fatalf("hold position = %v, want last waypoint", cin.Position())
	}
	pos := cin.Position()
	cin.Update(0.05, false, cp.Vector{})
	if cin.Position() != pos {
		t.Fatalf("camera moved during hold")
	}
}

func TestCinematicSkip(t *testing.T) {
	waypoints := []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}
	cin := NewCinematic(DefaultCinematicConfig(), waypoints)
	cin.Start()

	target := cp.Vector{X: 3, Y: 3}
	ticks, phases := runCinematic(cin, 0.05, 5, target)

	// five ticks of path, then a 0.5s quick return
	if ticks < 14 || ticks > 17 {
		t.Fatalf("took %d ticks, want about 15", ticks)
	}
	if phases[len(phases)-1] != CinematicDone {
		t.Fatalf("phases = %v", phases)
	}
	if cin.Position() != target {
		t.Fatalf("end position = %v, want %v", cin.Position(), target)
	}
}
