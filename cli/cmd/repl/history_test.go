package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistory_WriteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	for _, e := range []HistoryEntry{
		{"clone repo", modeParse},
		{"tree", modeCtrl},
		{"status", modeParse},
		{"clone repo", modeParse}, // moves to the end
		{"clone repo", modeParse}, // same as last
		{"  ", modeParse},
	} {
		if _, err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatalf("Write(%q): %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"tree", modeCtrl},
		{"status", modeParse},
		{"clone repo", modeParse},
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for name, got := range map[string][]HistoryEntry{
		"memory": h.Entries(),
		"file":   loaded.Entries(),
	} {
		if len(got) != len(want) {
			t.Fatalf("%s entries = %v, want %v", name, got, want)
		}

		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s entry %d = %v, want %v", name, i, got[i], want[i])
			}
		}
	}
}

func TestHistory_LoadUnprefixed(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	content := strings.Join([]string{"git status", "C:quit", "P:clone x", ""}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d", h.Len())
	}

	first, _ := h.GetEntry(0)
	second, _ := h.GetEntry(1)

	if first != (HistoryEntry{"git status", modeParse}) || second != (HistoryEntry{"quit", modeCtrl}) {
		t.Errorf("entries = %v, %v", first, second)
	}

	if _, err := h.GetEntry(3); err != ErrOutOfBounds {
		t.Errorf("GetEntry(3) error = %v", err)
	}
}

func TestHistory_MissingFileAndMemory(t *testing.T) {
	if err := NewHistory(filepath.Join(t.TempDir(), "none")).Load(); err != nil {
		t.Errorf("Load(missing) = %v", err)
	}

	h := NewHistory("")
	if _, err := h.Write("status", modeParse); err != nil || h.Len() != 1 {
		t.Errorf("in-memory Write: %v, len %d", err, h.Len())
	}
}

func TestHistoryStep(t *testing.T) {
	m := testModel(t, "")
	for _, e := range []HistoryEntry{
		{"clone a", modeParse},
		{"tree", modeCtrl},
		{"status", modeParse},
	} {
		_, _ = m.history.Write(e.Line, e.Mode)
	}

	m.historyIdx = m.history.Len()

	m = m.historyStep(-1, false)
	if m.input.Value() != "status" || m.mode != modeParse {
		t.Fatalf("step 1 = %q mode %d", m.input.Value(), m.mode)
	}

	m = m.historyStep(-1, false)
	if m.input.Value() != "tree" || m.mode != modeCtrl {
		t.Fatalf("step 2 = %q mode %d", m.input.Value(), m.mode)
	}

	m = m.historyStep(-1, true)
	if m.input.Value() != "tree" {
		t.Fatalf("same-mode step = %q", m.input.Value())
	}

	m = m.historyStep(1, false)
	m = m.historyStep(1, false)
	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("past newest = %q idx %d", m.input.Value(), m.historyIdx)
	}
}
