package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(registerCatalog(t), zerolog.Nop())
}

func TestNewSession_HasRegisterAndEvents(t *testing.T) {
	session := newTestSession(t)

	if session.Register() == nil {
		t.Fatalf("Expected session with a register")
	}
	if session.Events() == nil || session.Events().BlueprintsReloaded == nil {
		t.Fatalf("Expected lifecycle events wired")
	}
	if session.DevMode() {
		t.Errorf("Expected dev mode off by default")
	}
}

func TestSession_Reload_EmitsEvent(t *testing.T) {
	session := newTestSession(t)
	session.Register().LoadBlueprint(&memorySource{
		name: "publish",
		path: "/p/publish.yaml",
		data: &BlueprintData{Header: []string{"history"}, Descriptions: map[string]Description{"history": {Process: "modeling.History"}}},
	})

	fired := 0
	session.Events().BlueprintsReloaded.AddCallback(func(args ...any) { fired++ })

	session.Reload()

	if fired != 1 {
		t.Errorf("Expected BlueprintsReloaded fired once, got %d", fired)
	}
}

func TestSession_DevModeToggle(t *testing.T) {
	session := newTestSession(t)

	var enabled, disabled int
	session.Events().DevModeEnabled.AddCallback(func(args ...any) { enabled++ })
	session.Events().DevModeDisabled.AddCallback(func(args ...any) { disabled++ })

	ctx := context.Background()
	if err := session.EnableDevMode(ctx); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !session.DevMode() {
		t.Errorf("Expected dev mode on")
	}

	// Enabling twice is a no-op.
	if err := session.EnableDevMode(ctx); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if enabled != 1 {
		t.Errorf("Expected DevModeEnabled fired once, got %d", enabled)
	}

	session.DisableDevMode()
	session.DisableDevMode()
	if session.DevMode() {
		t.Errorf("Expected dev mode off")
	}
	if disabled != 1 {
		t.Errorf("Expected DevModeDisabled fired once, got %d", disabled)
	}
}
