package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	content := []byte(`prompts:
  - id: seed-1
    title: "Coding: a git alias..."
    content: "Write a git alias"
    category: Coding
    tags: [Professional]
    createdAt: 1700000000000
    favorite: true
  - title: "Bare entry"
    content: "Only title and content"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if len(file.Prompts) != 2 {
		t.Fatalf("Load() parsed %d prompts, want 2", len(file.Prompts))
	}
	if file.Prompts[0].ID != "seed-1" {
		t.Errorf("Prompts[0].ID = %q, want %q", file.Prompts[0].ID, "seed-1")
	}
	if !file.Prompts[0].Favorite {
		t.Error("Prompts[0].Favorite = false, want true")
	}
	if file.Prompts[1].Category != "" {
		t.Errorf("Prompts[1].Category = %q, want empty", file.Prompts[1].Category)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader("/does/not/exist.yaml").Load()
	if err == nil {
		t.Error("Load() = nil error for a missing file")
	}
}

func TestLoaderRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("prompts: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() = nil error for invalid YAML")
	}
}
