package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newProject creates an execution root containing the given files.
func newProject(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("def test_ok():\n    pass\n"), 0644))
	}
	return root
}

func defaultPolicy() Policy {
	return NewPolicy("tests", ".py")
}
