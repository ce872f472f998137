package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prevet/prevet/pkg/engine"
	"github.com/prevet/prevet/pkg/status"
)

const validBlueprint = `
settings:
  context: shot

header: [history, unusedShaders]

descriptions:
  history:
    process: modeling.History
    category: Cleanup
    tags: [NON_BLOCKING]
    arguments:
      check:
        args: [fast]
        kwargs:
          depth: 2
    links:
      - target: unusedShaders
        driver: check
        driven: fix
    statuses:
      Naming:
        fail: Warning
    data:
      owner: rigging
  unusedShaders:
    process: shading.Unused
`

func TestFileSource_Parse_Valid(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	data, err := source.parse([]byte(validBlueprint))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(data.Header) != 2 || data.Header[0] != "history" || data.Header[1] != "unusedShaders" {
		t.Fatalf("Expected ordered header, got %v", data.Header)
	}
	if len(data.Descriptions) != 2 {
		t.Fatalf("Expected 2 descriptions, got %d", len(data.Descriptions))
	}
	if data.Settings["context"] != "shot" {
		t.Errorf("Expected setting carried over, got %v", data.Settings)
	}

	desc := data.Descriptions["history"]
	if desc.Process != "modeling.History" {
		t.Errorf("Expected process path, got %q", desc.Process)
	}
	if desc.Category != "Cleanup" {
		t.Errorf("Expected category Cleanup, got %q", desc.Category)
	}
	if !desc.Tags.Has(engine.TagNonBlocking) {
		t.Errorf("Expected NON_BLOCKING tag parsed")
	}

	args := desc.Arguments[engine.OpCheck]
	if len(args.Positional) != 1 || args.Positional[0] != "fast" {
		t.Errorf("Expected positional args, got %v", args.Positional)
	}
	if args.Keyword["depth"] != 2 {
		t.Errorf("Expected keyword args, got %v", args.Keyword)
	}

	if len(desc.Links) != 1 {
		t.Fatalf("Expected 1 link, got %d", len(desc.Links))
	}
	link := desc.Links[0]
	if link.Target != "unusedShaders" || link.Driver != engine.LinkCheck || link.Driven != engine.LinkFix {
		t.Errorf("Expected check->unusedShaders.fix link, got %+v", link)
	}

	override, ok := desc.StatusOverrides["Naming"]
	if !ok {
		t.Fatalf("Expected status override for Naming")
	}
	if override.Fail == nil || !override.Fail.Equal(status.Warning) {
		t.Errorf("Expected Warning fail override, got %v", override.Fail)
	}
	if override.Success != nil {
		t.Errorf("Expected no success override, got %v", override.Success)
	}

	if desc.Extra["owner"] != "rigging" {
		t.Errorf("Expected extra data, got %v", desc.Extra)
	}
}

func TestFileSource_Parse_UnknownField(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	_, err := source.parse([]byte(`
header: [history]
descriptions:
  history:
    process: modeling.History
    colour: red
`))
	if err == nil {
		t.Fatalf("Expected error for unknown field")
	}
	if !engine.IsConfig(err) {
		t.Errorf("Expected config error, got: %v", err)
	}
}

func TestFileSource_Parse_MissingProcess(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	_, err := source.parse([]byte(`
header: [history]
descriptions:
  history:
    category: Cleanup
`))
	if err == nil {
		t.Fatalf("Expected error for missing process path")
	}
}

func TestFileSource_Parse_MissingHeader(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	_, err := source.parse([]byte(`
descriptions:
  history:
    process: modeling.History
`))
	if err == nil {
		t.Fatalf("Expected error for blueprint without header")
	}
}

func TestFileSource_Parse_NoDescriptions(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	_, err := source.parse([]byte(`
settings:
  context: shot
header: [history]
`))
	if err == nil {
		t.Fatalf("Expected error for blueprint without descriptions")
	}
}

func TestFileSource_Parse_UnknownTag(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	_, err := source.parse([]byte(`
header: [history]
descriptions:
  history:
    process: modeling.History
    tags: [NO_SUCH_TAG]
`))
	if err == nil {
		t.Fatalf("Expected error for unknown tag")
	}
}

func TestFileSource_Parse_UnknownOperation(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	_, err := source.parse([]byte(`
header: [history]
descriptions:
  history:
    process: modeling.History
    arguments:
      deploy:
        args: []
`))
	if err == nil {
		t.Fatalf("Expected error for unknown operation name")
	}
}

func TestFileSource_Parse_BadLinkOperation(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	_, err := source.parse([]byte(`
header: [history]
descriptions:
  history:
    process: modeling.History
    links:
      - target: unusedShaders
        driver: deploy
        driven: check
`))
	if err == nil {
		t.Fatalf("Expected error for unknown link driver")
	}
}

func TestFileSource_Parse_UnknownStatus(t *testing.T) {
	source := NewFileSource("/p/publish.yaml")

	_, err := source.parse([]byte(`
header: [history]
descriptions:
  history:
    process: modeling.History
    statuses:
      Naming:
        fail: NoSuchStatus
`))
	if err == nil {
		t.Fatalf("Expected error for unknown status name")
	}
	if !engine.IsConfig(err) {
		t.Errorf("Expected config error, got: %v", err)
	}
}

func TestFileSource_Parse_CustomStatusRegistry(t *testing.T) {
	reg := status.NewRegistry()
	reg.NewFail("StudioBlocker", status.Color{200, 0, 0}, 10)

	source := NewFileSource("/p/publish.yaml", WithStatusRegistry(reg))

	data, err := source.parse([]byte(`
header: [history]
descriptions:
  history:
    process: modeling.History
    statuses:
      Naming:
        fail: StudioBlocker
`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	override := data.Descriptions["history"].StatusOverrides["Naming"]
	if override.Fail == nil || override.Fail.Name() != "StudioBlocker" {
		t.Errorf("Expected custom status resolved, got %v", override.Fail)
	}
}

func TestFileSource_Load_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publish.yaml")
	if err := os.WriteFile(path, []byte(validBlueprint), 0644); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	source := NewFileSource(path)
	if source.Name() != "publish" {
		t.Errorf("Expected name publish, got %q", source.Name())
	}
	if source.Path() != path {
		t.Errorf("Expected path kept, got %q", source.Path())
	}

	data, err := source.Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(data.Descriptions) != 2 {
		t.Errorf("Expected 2 descriptions, got %d", len(data.Descriptions))
	}
}

func TestFileSource_Load_MissingFile(t *testing.T) {
	source := NewFileSource("/does/not/exist.yaml")

	_, err := source.Load()
	if err == nil {
		t.Fatalf("Expected error for missing file")
	}
	if !engine.IsConfig(err) {
		t.Errorf("Expected config error, got: %v", err)
	}
}
