package telemetry

import (
	"path/filepath"
	"testing"
)

func TestRunStoreDisabled(t *testing.T) {
	rs, err := OpenRunStore("", 1, true)
	if err != nil || rs != nil {
		t.Fatalf("empty path should disable the store, got %v, %v", rs, err)
	}
	if err := rs.WriteStats(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := rs.Close(); err != nil {
		t.Error(err)
	}
}

func TestRunStoreKeepsRunsApart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	first, err := OpenRunStore(path, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := int64(1); i <= 3; i++ {
		if err := first.WriteStats(WindowStats{WindowEndTick: i * 60, Entities: int(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := first.WritePerf(PerfStats{}, 60); err != nil {
		t.Fatal(err)
	}
	firstID := first.RunID()
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := OpenRunStore(path, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if err := second.WriteStats(WindowStats{WindowEndTick: 60, Entities: 9}); err != nil {
		t.Fatal(err)
	}

	if second.RunID() == firstID {
		t.Fatalf("runs share id %d", firstID)
	}

	runs, err := second.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Seed != 1 || runs[1].Seed != 2 {
		t.Errorf("unexpected runs %+v", runs)
	}

	windows, err := second.Windows(firstID)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows for the first run, got %d", len(windows))
	}
	if windows[2].WindowEndTick != 180 || windows[2].Entities != 3 {
		t.Errorf("unexpected last window %+v", windows[2])
	}

	windows, err = second.Windows(second.RunID())
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 1 || windows[0].Entities != 9 {
		t.Errorf("unexpected windows for the second run %+v", windows)
	}
}
