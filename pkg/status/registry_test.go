package status

import (
	"math"
	"testing"
)

func TestRegistry_ByName(t *testing.T) {
	reg := NewRegistry()
	reg.NewFail("Broken", Color{255, 0, 0}, 3)

	s, ok := reg.ByName("Broken")
	if !ok {
		t.Fatalf("Expected to find registered status, got miss")
	}
	if s.Level() != 3 {
		t.Errorf("Expected level 3, got %g", s.Level())
	}

	if _, ok := reg.ByName("Missing"); ok {
		t.Errorf("Expected miss for unregistered name, got hit")
	}
}

func TestRegistry_FailsAndSuccesses(t *testing.T) {
	reg := NewRegistry()
	reg.NewFail("F1", Color{}, 1)
	reg.NewFail("F2", Color{}, 2)
	reg.NewSuccess("S1", Color{}, -1)

	if got := len(reg.Fails()); got != 2 {
		t.Errorf("Expected 2 fail statuses, got %d", got)
	}
	if got := len(reg.Successes()); got != 1 {
		t.Errorf("Expected 1 success status, got %d", got)
	}
	if got := len(reg.All()); got != 3 {
		t.Errorf("Expected 3 statuses total, got %d", got)
	}
}

func TestRegistry_Extremums(t *testing.T) {
	reg := NewRegistry()
	reg.NewFail("Minor", Color{}, 1)
	reg.NewFail("Major", Color{}, 5)
	reg.NewSuccess("Good", Color{}, -1)
	reg.NewSuccess("Perfect", Color{}, -3)

	if s, ok := reg.LowestFail(); !ok || s.Name() != "Minor" {
		t.Errorf("Expected lowest fail Minor, got %v (ok=%v)", s, ok)
	}
	if s, ok := reg.HighestFail(); !ok || s.Name() != "Major" {
		t.Errorf("Expected highest fail Major, got %v (ok=%v)", s, ok)
	}
	if s, ok := reg.LowestSuccess(); !ok || s.Name() != "Perfect" {
		t.Errorf("Expected lowest success Perfect, got %v (ok=%v)", s, ok)
	}
	if s, ok := reg.HighestSuccess(); !ok || s.Name() != "Good" {
		t.Errorf("Expected highest success Good, got %v (ok=%v)", s, ok)
	}
}

func TestRegistry_Extremums_Empty(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.LowestFail(); ok {
		t.Errorf("Expected no lowest fail in empty registry")
	}
	if _, ok := reg.HighestSuccess(); ok {
		t.Errorf("Expected no highest success in empty registry")
	}
}

func TestDefaultRegistry_SentinelsExcludedFromExtremums(t *testing.T) {
	// The stock sentinels carry NaN levels and must never win an extremum
	// query.
	if s, ok := DefaultRegistry.HighestFail(); !ok || math.IsNaN(s.Level()) {
		t.Errorf("Expected an orderable highest fail, got %v (ok=%v)", s, ok)
	}
	if s, ok := DefaultRegistry.LowestSuccess(); !ok || math.IsNaN(s.Level()) {
		t.Errorf("Expected an orderable lowest success, got %v (ok=%v)", s, ok)
	}
}

func TestDefaultRegistry_StockStatuses(t *testing.T) {
	for _, name := range []string{"Default", "Skipped", "Aborted", "Exception", "Success", "Correct", "Warning", "Error"} {
		if _, ok := DefaultRegistry.ByName(name); !ok {
			t.Errorf("Expected stock status %q to be registered", name)
		}
	}
}
