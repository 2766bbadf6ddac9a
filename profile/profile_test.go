package profile

import (
	"slices"
	"testing"
)

func TestProfilerStartWithoutMode(t *testing.T) {
	stop := Profiler{}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", stop)
	}

	stop.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v, want none without the %s tag", modes, Tag)
		}

		return
	}

	if !slices.IsSorted(modes) || !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v", modes)
	}
}

func TestProfilerStartUnknownMode(t *testing.T) {
	stop := Profiler{Mode: "bogus"}.Start()
	defer stop.Stop()

	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op for unknown mode", stop)
	}
}
