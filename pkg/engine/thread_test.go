package engine

import (
	"testing"

	"github.com/prevet/prevet/pkg/status"
)

func TestNewThread_Defaults(t *testing.T) {
	thread, err := NewThread("Unused shaders")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if thread.Title() != "Unused shaders" {
		t.Errorf("Expected title 'Unused shaders', got %q", thread.Title())
	}
	if !thread.FailStatus().Equal(status.Error) {
		t.Errorf("Expected default fail status Error, got %v", thread.FailStatus())
	}
	if !thread.SuccessStatus().Equal(status.Success) {
		t.Errorf("Expected default success status Success, got %v", thread.SuccessStatus())
	}
}

func TestNewThread_CustomStatuses(t *testing.T) {
	thread, err := NewThread("Naming",
		WithFailStatus(status.Warning),
		WithSuccessStatus(status.Correct),
		WithThreadDocumentation("Checks naming conventions."),
	)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !thread.FailStatus().Equal(status.Warning) {
		t.Errorf("Expected fail status Warning, got %v", thread.FailStatus())
	}
	if thread.Documentation() != "Checks naming conventions." {
		t.Errorf("Expected documentation to be kept, got %q", thread.Documentation())
	}
}

func TestNewThread_WrongKind(t *testing.T) {
	if _, err := NewThread("Broken", WithFailStatus(status.Success)); err == nil {
		t.Fatalf("Expected error for success status used as fail")
	} else if !IsConfig(err) {
		t.Errorf("Expected config error, got: %v", err)
	}

	if _, err := NewThread("Broken", WithSuccessStatus(status.Error)); err == nil {
		t.Fatalf("Expected error for fail status used as success")
	}

	if _, err := NewThread("Broken", WithFailStatus(status.Skipped)); err == nil {
		t.Fatalf("Expected error for built-in status used as fail")
	}
}

func TestThread_OverrideFailStatus(t *testing.T) {
	thread := MustThread("Geometry")

	if err := thread.OverrideFailStatus(status.Warning); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !thread.FailStatus().Equal(status.Warning) {
		t.Errorf("Expected active fail status Warning, got %v", thread.FailStatus())
	}
	if !thread.DefaultFailStatus().Equal(status.Error) {
		t.Errorf("Expected default fail status to stay Error, got %v", thread.DefaultFailStatus())
	}
}

func TestThread_OverrideFailStatus_WrongKind(t *testing.T) {
	thread := MustThread("Geometry")

	if err := thread.OverrideFailStatus(status.Correct); err == nil {
		t.Fatalf("Expected error for success status used as fail override")
	} else if !IsConfig(err) {
		t.Errorf("Expected config error, got: %v", err)
	}
}

func TestThread_OverrideSuccessStatus_WrongKind(t *testing.T) {
	thread := MustThread("Geometry")

	if err := thread.OverrideSuccessStatus(status.Warning); err == nil {
		t.Fatalf("Expected error for fail status used as success override")
	}
}

func TestThread_StatusFor(t *testing.T) {
	thread := MustThread("Topology",
		WithFailStatus(status.Warning),
		WithSuccessStatus(status.Correct),
	)

	if !thread.StatusFor(true).Equal(status.Correct) {
		t.Errorf("Expected success status for true, got %v", thread.StatusFor(true))
	}
	if !thread.StatusFor(false).Equal(status.Warning) {
		t.Errorf("Expected fail status for false, got %v", thread.StatusFor(false))
	}
}
