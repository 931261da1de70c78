package gate

import "testing"

func TestPress(t *testing.T) {
	tests := []struct {
		name     string
		required int
		keys     []string
		want     int // index of the unlocking press, -1 for none
	}{
		{"two presses", 2, []string{"g", "g"}, 1},
		{"upper case", 2, []string{"G", "g"}, 1},
		{"reset by other key", 2, []string{"g", "x", "g", "g"}, 3},
		{"never", 2, []string{"g", "h", "g"}, -1},
		{"single", 1, []string{"a", "g"}, 1},
		{"zero treated as one", 0, []string{"g"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fired := 0
			g := New("g", tt.required, func() { fired++ })
			got := -1
			for i, k := range tt.keys {
				if g.Press(k) {
					got = i
				}
			}
			if got != tt.want {
				t.Errorf("unlocking press = %d, want %d", got, tt.want)
			}
			if wantFired := map[bool]int{true: 1, false: 0}[tt.want >= 0]; fired != wantFired {
				t.Errorf("callback fired %d times, want %d", fired, wantFired)
			}
		})
	}
}

func TestFiresOnce(t *testing.T) {
	fired := 0
	g := New("g", 2, func() { fired++ })
	for i := 0; i < 10; i++ {
		g.Press("g")
	}
	if fired != 1 {
		t.Errorf("callback fired %d times, want 1", fired)
	}
	if !g.Retired() {
		t.Error("gate not retired after unlock")
	}
}

func TestRetire(t *testing.T) {
	fired := false
	g := New("g", 2, func() { fired = true })
	g.Press("g")
	g.Retire()
	if g.Press("g") || fired {
		t.Error("retired gate unlocked")
	}
}

func TestProgress(t *testing.T) {
	g := New("g", 3, nil)
	g.Press("g")
	g.Press("g")
	if g.Progress() != 2 {
		t.Errorf("Progress() = %d, want 2", g.Progress())
	}
	g.Press("q")
	if g.Progress() != 0 {
		t.Errorf("Progress() after reset = %d, want 0", g.Progress())
	}
}
