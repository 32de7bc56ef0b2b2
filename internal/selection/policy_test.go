package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Allows(t *testing.T) {
	policy := defaultPolicy()

	tests := []struct {
		path     string
		expected bool
	}{
		{"tests/test_calculadora.py", true},
		{"tests/unit/test_models.py", true},
		{"tests/conftest.py", true},
		{"tests/", false},
		{"tests/test_a.pyc", false},
		{"tests/data.json", false},
		{"src/calculadora.py", false},
		{"mytests/test_a.py", false},
		{"/tests/test_a.py", false},
		{"tests/../src/secret.py", false},
		{"tests/../../etc/evil.py", false},
		{"tests/./test_a.py", false},
		{"tests//test_a.py", false},
		{`tests\test_a.py`, false},
		{"tests/sub\\..\\x.py", false},
		{"tests/test_a.py\x00.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Allows(tt.path))
		})
	}
}

func TestPolicy_CustomLayout(t *testing.T) {
	policy := NewPolicy("/qa/unit/", "_test.py")

	assert.Equal(t, "qa/unit/", policy.Marker())
	assert.Equal(t, "qa/unit/**/*_test.py", policy.Pattern())
	assert.True(t, policy.Allows("qa/unit/models_test.py"))
	assert.False(t, policy.Allows("qa/unit/models.py"))
}

func TestPolicy_PatternEscapesMeta(t *testing.T) {
	policy := NewPolicy("tests[1]", ".py")

	assert.True(t, policy.Allows("tests[1]/test_a.py"))
	assert.False(t, policy.Allows("tests1/test_a.py"))
}

func TestRootChecker_Exists(t *testing.T) {
	root := newProject(t, "tests/test_a.py")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tests", "pkg.py"), 0755))
	checker := NewRootChecker(root)

	assert.True(t, checker.Exists("tests/test_a.py"))
	assert.False(t, checker.Exists("tests/test_missing.py"))
	assert.False(t, checker.Exists("tests/pkg.py"), "directories are not test files")
	assert.False(t, checker.Exists("../outside.py"))
}

func TestRootChecker_SymlinkEscapingRoot(t *testing.T) {
	outside := newProject(t, "secret.py")
	root := newProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tests"), 0755))
	if err := os.Symlink(filepath.Join(outside, "secret.py"), filepath.Join(root, "tests", "test_link.py")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	assert.False(t, NewRootChecker(root).Exists("tests/test_link.py"))
}

func TestRootChecker_MissingRoot(t *testing.T) {
	assert.False(t, NewRootChecker(filepath.Join(t.TempDir(), "nope")).Exists("tests/test_a.py"))
}
