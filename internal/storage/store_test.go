package storage

import (
	"math"
	"testing"

	"github.com/san-kum/orbits/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States: [][]float64{
			{0, 0, 0, 0, 1.5e11, 0, 0, 2.978e4},
			{10, 20, 1, 2, 1.5e11, 1.07e8, -21.2, 2.978e4},
		},
		Times:     []float64{0, 3600},
		Metrics:   map[string]float64{"energy_drift": 1.5e-5},
		FramesRun: 1,
	}
}

func sampleBodies() []BodyMetadata {
	return []BodyMetadata{
		{Name: "Sun", Color: "#ffff00"},
		{Name: "Earth", Color: "#0000ff"},
	}
}

func TestStoreSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("two_body", 6.673e-11, 3600, sampleBodies(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "two_body" || meta.Dt != 3600 || meta.Frames != 1 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if len(meta.Bodies) != 2 || meta.Bodies[1].Name != "Earth" {
		t.Errorf("bodies mismatch: %+v", meta.Bodies)
	}
	if meta.Metrics["energy_drift"] != 1.5e-5 {
		t.Errorf("metrics mismatch: %+v", meta.Metrics)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("got %d states / %d times, want 2 / 2", len(states), len(times))
	}
	if times[1] != 3600 {
		t.Errorf("times[1] = %v, want 3600", times[1])
	}
	if math.Abs(states[1][4]-1.5e11) > 1 {
		t.Errorf("states[1][4] = %v, want 1.5e11", states[1][4])
	}
	if math.Abs(states[1][6]+21.2) > 1e-9 {
		t.Errorf("states[1][6] = %v, want -21.2", states[1][6])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store lists %d runs, want 0", len(runs))
	}

	if _, err := st.Save("two_body", 6.673e-11, 3600, sampleBodies(), sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Scenario != "two_body" {
		t.Errorf("list = %+v, want one two_body run", runs)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/never_created")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir errored: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestStoreLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope_123"); err == nil {
		t.Error("expected error loading missing run")
	}
	if _, _, err := st.LoadStates("nope_123"); err == nil {
		t.Error("expected error loading missing states")
	}
}
