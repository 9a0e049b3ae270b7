package ideas

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIdeas(t *testing.T) {
	if len(DefaultIdeas) != 10 {
		t.Errorf("Expected 10 built-in ideas, got %d", len(DefaultIdeas))
	}
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "ideas.json")
		if err := os.WriteFile(path, []byte(`["  first ", "", "second"]`), 0o644); err != nil {
			t.Fatal(err)
		}
		seed, err := LoadSeedFile(path)
		if err != nil {
			t.Fatalf("LoadSeedFile() error = %v", err)
		}
		if len(seed) != 2 || seed[0] != "first" || seed[1] != "second" {
			t.Errorf("LoadSeedFile() = %q", seed)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "ideas.yaml")
		content := "- Расскажи про деплой бота на Railway\n- \"\"\n- Сделай пост про работу с базами данных\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		seed, err := LoadSeedFile(path)
		if err != nil {
			t.Fatalf("LoadSeedFile() error = %v", err)
		}
		if len(seed) != 2 || seed[1] != "Сделай пост про работу с базами данных" {
			t.Errorf("LoadSeedFile() = %q", seed)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		os.WriteFile(path, []byte(`[" "]`), 0o644)
		if _, err := LoadSeedFile(path); err == nil {
			t.Error("Expected error for a file without ideas")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		os.WriteFile(path, []byte(`{"ideas": 1}`), 0o644)
		if _, err := LoadSeedFile(path); err == nil {
			t.Error("Expected parse error")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := LoadSeedFile(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("Expected read error")
		}
	})
}
