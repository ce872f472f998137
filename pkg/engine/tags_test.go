package engine

import (
	"testing"
)

func TestResolveTags_NoTag(t *testing.T) {
	caps := ResolveTags(NoTag, true, true, false)

	if !caps.Enabled {
		t.Errorf("Expected enabled by default")
	}
	if !caps.Checkable || !caps.Fixable {
		t.Errorf("Expected check and fix capabilities, got %+v", caps)
	}
	if caps.HasTool {
		t.Errorf("Expected no tool capability when the process implements none")
	}
	if !caps.InBatch || !caps.InUI {
		t.Errorf("Expected batch and UI allowed by default, got %+v", caps)
	}
	if caps.NonBlocking {
		t.Errorf("Expected blocking by default")
	}
}

func TestResolveTags_NeverGrants(t *testing.T) {
	// Tags narrow capability; a process without fix stays unfixable.
	caps := ResolveTags(NoTag, true, false, false)
	if caps.Fixable {
		t.Errorf("Expected no fix capability for process without fix")
	}
}

func TestResolveTags_Narrowing(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want Capabilities
	}{
		{
			name: "disabled",
			tag:  TagDisabled,
			want: Capabilities{Enabled: false, Checkable: true, Fixable: true, HasTool: true, InBatch: true, InUI: true},
		},
		{
			name: "no_check",
			tag:  TagNoCheck,
			want: Capabilities{Enabled: true, Checkable: false, Fixable: true, HasTool: true, InBatch: true, InUI: true},
		},
		{
			name: "no_fix",
			tag:  TagNoFix,
			want: Capabilities{Enabled: true, Checkable: true, Fixable: false, HasTool: true, InBatch: true, InUI: true},
		},
		{
			name: "no_tool",
			tag:  TagNoTool,
			want: Capabilities{Enabled: true, Checkable: true, Fixable: true, HasTool: false, InBatch: true, InUI: true},
		},
		{
			name: "non_blocking",
			tag:  TagNonBlocking,
			want: Capabilities{Enabled: true, Checkable: true, Fixable: true, HasTool: true, NonBlocking: true, InBatch: true, InUI: true},
		},
		{
			name: "no_batch",
			tag:  TagNoBatch,
			want: Capabilities{Enabled: true, Checkable: true, Fixable: true, HasTool: true, InBatch: false, InUI: true},
		},
		{
			name: "no_ui",
			tag:  TagNoUI,
			want: Capabilities{Enabled: true, Checkable: true, Fixable: true, HasTool: true, InBatch: true, InUI: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := ResolveTags(tt.tag, true, true, true)
			if caps != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, caps)
			}
		})
	}
}

func TestResolveTags_Composites(t *testing.T) {
	caps := ResolveTags(TagOptional, true, true, true)
	if caps.Enabled {
		t.Errorf("Expected optional processor disabled by default")
	}
	if !caps.NonBlocking {
		t.Errorf("Expected optional processor non-blocking")
	}

	caps = ResolveTags(TagDependant, true, true, true)
	if caps.Checkable || caps.Fixable || caps.HasTool {
		t.Errorf("Expected dependant processor with no direct capabilities, got %+v", caps)
	}
	if !caps.Enabled {
		t.Errorf("Expected dependant processor still enabled")
	}
}

func TestTag_Has(t *testing.T) {
	tag := TagDisabled | TagNoCheck
	if !tag.Has(TagDisabled) || !tag.Has(TagNoCheck) {
		t.Errorf("Expected both flags set")
	}
	if tag.Has(TagNoFix) {
		t.Errorf("Expected TagNoFix not set")
	}
	if !tag.Has(NoTag) {
		t.Errorf("Expected NoTag always contained")
	}
}

func TestParseTags(t *testing.T) {
	tag, err := ParseTags("disabled", "NO_CHECK", "Non_Blocking")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !tag.Has(TagDisabled | TagNoCheck | TagNonBlocking) {
		t.Errorf("Expected parsed flags set, got %#x", uint32(tag))
	}
}

func TestParseTags_Unknown(t *testing.T) {
	if _, err := ParseTags("no_such_tag"); err == nil {
		t.Fatalf("Expected error for unknown tag")
	} else if !IsConfig(err) {
		t.Errorf("Expected config error, got: %v", err)
	}
}

func TestParseTags_Empty(t *testing.T) {
	tag, err := ParseTags()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if tag != NoTag {
		t.Errorf("Expected NoTag, got %#x", uint32(tag))
	}
}
