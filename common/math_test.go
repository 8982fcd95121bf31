package common

import "testing"

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name                      string
		current, target, maxDelta float64
		want                      float64
	}{
		{"step_up", 0, 8, 1, 1},
		{"step_down", 0, -8, 1, -1},
		{"snap_when_close", 7.5, 8, 1, 8},
		{"already_there", 3, 3, 1, 3},
		{"zero_delta", 2, 5, 0, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MoveTowards(c.current, c.target, c.maxDelta); got != c.want {
				t.Fatalf("MoveTowards(%v,%v,%v) = %v, want %v", c.current, c.target, c.maxDelta, got, c.want)
			}
		})
	}
}

func TestInverseLerp(t *testing.T) {
	cases := []struct {
		name    string
		a, b, v float64
		want    float64
	}{
		{"mid", 0, 10, 5, 0.5},
		{"below", 0.15, 1, 0, 0},
		{"above", 0.15, 1, 2, 1},
		{"degenerate", 1, 1, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InverseLerp(c.a, c.b, c.v); got != c.want {
				t.Fatalf("InverseLerp(%v,%v,%v) = %v, want %v", c.a, c.b, c.v, got, c.want)
			}
		})
	}
}

func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Fatalf("Lerp mid = %v", got)
	}
	if got := Clamp01(-0.5); got != 0 {
		t.Fatalf("Clamp01(-0.5) = %v", got)
	}
	if got := Clamp(4, -3, 3); got != 3 {
		t.Fatalf("Clamp(4,-3,3) = %v", got)
	}
}
