package podcast

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogDefaults(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "missing.yml"))

	if err := catalog.Run(); err != nil {
		t.Fatalf("Run should not fail when the voices file is absent: %v", err)
	}

	voices := catalog.List()
	if len(voices) == 0 {
		t.Fatal("Expected built-in voices when no file is configured")
	}
	if catalog.Default().ID != voices[0].ID {
		t.Error("Default voice should be the first catalog entry")
	}
}

func TestCatalogLoadsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "voices.yml")
	content := `voices:
  - id: custom-1
    name: Custom Anchor
    description: Test voice
  - id: custom-2
    name: Second Voice
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog := NewCatalog(file)
	if err := catalog.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	voices := catalog.List()
	if len(voices) != 2 {
		t.Fatalf("Expected 2 voices, got %d", len(voices))
	}

	voice, ok := catalog.Get("custom-1")
	if !ok {
		t.Fatal("Expected to find voice 'custom-1'")
	}
	if voice.Name != "Custom Anchor" {
		t.Errorf("Expected name 'Custom Anchor', got %q", voice.Name)
	}

	if _, ok := catalog.Get("nope"); ok {
		t.Error("Unknown voice ID should not be found")
	}
}

func TestCatalogRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yml")
	os.WriteFile(empty, []byte("voices: []\n"), 0o644)
	if err := NewCatalog(empty).Run(); err == nil {
		t.Error("Expected error for a voices file with no voices")
	}

	missing := filepath.Join(dir, "missing-id.yml")
	os.WriteFile(missing, []byte("voices:\n  - name: NoID\n"), 0o644)
	if err := NewCatalog(missing).Run(); err == nil {
		t.Error("Expected error for a voice without an id")
	}
}
