package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tsel/internal/selection"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	testFiles := []string{
		"tests/test_calculadora.py",
		"tests/unit/test_usuario.py",
		"tests/unit/conftest.txt",
		"tests/__pycache__/test_calculadora.py",
		"tests/.hidden/test_secret.py",
		"src/calculadora.py",
		"test_root.py",
	}
	for _, file := range testFiles {
		fullPath := filepath.Join(tmpDir, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("def test_ok():\n    pass\n"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{"__pycache__"}, selection.NewPolicy("tests", ".py"))

	t.Run("scans test files correctly", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir, "tests")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"tests/test_calculadora.py", "tests/unit/test_usuario.py"}
		if !reflect.DeepEqual(results, expected) {
			t.Errorf("expected %v, got %v", expected, results)
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan(tmpDir, "specs")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(tmpDir, "test_root.py")
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}
