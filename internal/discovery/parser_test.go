package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParser_FindTestCases(t *testing.T) {
	parser := NewParser()

	testFile := filepath.Join(t.TempDir(), "test_usuario.py")
	pyContent := `import pytest

from src.usuario import Usuario


def helper():
    return Usuario("ana")


def test_create_user():
    assert helper().name == "ana"


@pytest.mark.asyncio
async def test_async_login():
    pass


class TestUsuario:
    def setup_method(self):
        self.user = helper()

    def test_rename(self):
        pass

    @pytest.mark.parametrize("n", [1, 2])
    def test_age(self, n):
        pass


class Helper:
    def test_not_collected(self):
        pass


# def test_commented_out():
def test_last():
    pass
`
	if err := os.WriteFile(testFile, []byte(pyContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("finds test functions and methods", func(t *testing.T) {
		testCases, err := parser.FindTestCases(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{
			"TestUsuario::test_age",
			"TestUsuario::test_rename",
			"test_async_login",
			"test_create_user",
			"test_last",
		}
		if !reflect.DeepEqual(testCases, expected) {
			t.Errorf("expected %v, got %v", expected, testCases)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTestCases("/non/existent/test_file.py")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})

	t.Run("empty file has no test cases", func(t *testing.T) {
		if got := parseTestCases(nil); len(got) != 0 {
			t.Errorf("expected no test cases, got %v", got)
		}
	})
}
