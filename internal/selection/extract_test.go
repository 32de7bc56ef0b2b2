package selection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_Extract(t *testing.T) {
	root := newProject(t, "tests/test_calculadora.py", "tests/test_usuario.py", "tests/unit/test_models.py", "secret.py")
	extractor := NewExtractor(defaultPolicy(), NewRootChecker(root))

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "bullets backticks and prose",
			text:     "- `tests/test_calculadora.py`, blah tests/test_usuario.py!",
			expected: []string{"tests/test_calculadora.py", "tests/test_usuario.py"},
		},
		{
			name:     "one per line",
			text:     "tests/test_usuario.py\ntests/test_calculadora.py\n",
			expected: []string{"tests/test_calculadora.py", "tests/test_usuario.py"},
		},
		{
			name:     "markdown code fence",
			text:     "```text\ntests/test_calculadora.py\n```",
			expected: []string{"tests/test_calculadora.py"},
		},
		{
			name:     "repository prefix and dot slash",
			text:     "aula07-ia-testes/tests/test_usuario.py ./tests/test_calculadora.py",
			expected: []string{"tests/test_calculadora.py", "tests/test_usuario.py"},
		},
		{
			name:     "numbered list with bold and quotes",
			text:     "1. **tests/unit/test_models.py**\n2. \"tests/test_usuario.py\"",
			expected: []string{"tests/test_usuario.py", "tests/unit/test_models.py"},
		},
		{
			name:     "command line noise",
			text:     "pytest tests/test_calculadora.py -v | tee out.log; run: tests/test_usuario.py.",
			expected: []string{"tests/test_calculadora.py", "tests/test_usuario.py"},
		},
		{
			name:     "typographic double quotes",
			text:     "Run “tests/test_calculadora.py” and „tests/test_usuario.py“.",
			expected: []string{"tests/test_calculadora.py", "tests/test_usuario.py"},
		},
		{
			name:     "typographic single quotes and guillemets",
			text:     "‘tests/test_calculadora.py’ «tests/unit/test_models.py»",
			expected: []string{"tests/test_calculadora.py", "tests/unit/test_models.py"},
		},
		{
			name:     "markdown link",
			text:     "- [tests/test_usuario.py](tests/test_usuario.py)\n- [calc](./tests/test_calculadora.py)",
			expected: []string{"tests/test_calculadora.py", "tests/test_usuario.py"},
		},
		{
			name:     "duplicates collapse",
			text:     "tests/test_usuario.py, tests/test_usuario.py; `tests/test_usuario.py`",
			expected: []string{"tests/test_usuario.py"},
		},
		{
			name:     "hallucinated path",
			text:     "tests/test_fake.py",
			expected: []string{},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []string{},
		},
		{
			name:     "prose without paths",
			text:     "I could not determine which tests to run.",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractor.Extract(tt.text))
		})
	}
}

func TestExtractor_AdversarialInput(t *testing.T) {
	root := newProject(t, "tests/test_usuario.py", "secret.py", "src/app.py")
	extractor := NewExtractor(defaultPolicy(), NewRootChecker(root))

	inputs := []string{
		"tests/../secret.py",
		"tests/../../../../etc/passwd.py",
		"/etc/tests/x.py",
		"src/app.py",
		"tests/./test_usuario.py",
		`tests\..\secret.py`,
		"file:///tmp/tests/test_usuario.py",
		"tests/test_usuario.py\x00ignored.py",
		strings.Repeat("tests/", 500) + "x.py",
	}

	for _, in := range inputs {
		t.Run(in[:min(len(in), 40)], func(t *testing.T) {
			for _, got := range extractor.Extract(in) {
				assert.True(t, NewRootChecker(root).Exists(got), "returned %q which does not exist", got)
				assert.True(t, defaultPolicy().Allows(got), "returned %q outside the policy", got)
			}
		})
	}

	all := extractor.Extract(strings.Join(inputs, "\n"))
	for _, got := range all {
		assert.Equal(t, "tests/test_usuario.py", got)
	}
}

func TestExtractor_Inspect(t *testing.T) {
	root := newProject(t, "tests/test_usuario.py", "secret.py")
	extractor := NewExtractor(defaultPolicy(), NewRootChecker(root))

	got := extractor.Inspect("tests/test_usuario.py tests/test_fake.py tests/../secret.py README.md")
	assert.Equal(t, []string{"tests/test_usuario.py"}, got.Accepted)
	assert.Equal(t, []string{"tests/../secret.py", "tests/test_fake.py"}, got.Rejected)
}

func TestExtractor_FilesystemStateAtCallTime(t *testing.T) {
	checker := fakeChecker{}
	extractor := NewExtractor(defaultPolicy(), checker)

	assert.Empty(t, extractor.Extract("tests/test_new.py"))
	checker["tests/test_new.py"] = true
	assert.Equal(t, []string{"tests/test_new.py"}, extractor.Extract("tests/test_new.py"))
}

type fakeChecker map[string]bool

func (f fakeChecker) Exists(name string) bool { return f[name] }
