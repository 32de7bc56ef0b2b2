package config

import "time"

const (
	// DefaultProjectPath is the default execution root
	DefaultProjectPath = "."
	// DefaultSince is the revision changed files are compared against
	DefaultSince = "HEAD~1"
	// DefaultTestsDir is the directory holding test files
	DefaultTestsDir = "tests"
	// DefaultTestSuffix is the suffix every test file carries
	DefaultTestSuffix = ".py"
	// DefaultFramework is the test runner named in the advisory prompt
	DefaultFramework = "pytest"
	// DefaultOutputFile is the artifact consumed by the CI test step
	DefaultOutputFile = "suggested_tests.txt"
	// DefaultOutputJSONFile is the default selection report file name
	DefaultOutputJSONFile = "selection.json"
	// DefaultOutputJSONDir is the default report directory
	DefaultOutputJSONDir = ".tsel"
	// DefaultRulesFile is the optional rules file in the execution root
	DefaultRulesFile = ".tsel.yaml"
	// DefaultEnvFile is loaded from the execution root when present
	DefaultEnvFile = ".env"

	// DefaultProvider is the advisory backend used when none is configured
	DefaultProvider = ProviderGemini
	// DefaultTimeout bounds the advisory call
	DefaultTimeout = 30 * time.Second
	// DefaultTemperature keeps the advisory answer close to deterministic
	DefaultTemperature float32 = 0.1
	// DefaultMaxOutputTokens caps the advisory answer length
	DefaultMaxOutputTokens = 200
)

// Environment variables read by Resolve.
const (
	EnvProvider = "TSEL_PROVIDER"
	EnvModel    = "TSEL_MODEL"
	EnvVerbose  = "TSEL_VERBOSE"
	EnvTimeout  = "TSEL_TIMEOUT"
	EnvBaseURL  = "TSEL_BASE_URL"
)

// DefaultMappings is the built-in source to test mapping used when no rules file overrides it.
var DefaultMappings = []MappingRule{
	{Source: "src/calculadora.py", Test: "tests/test_calculadora.py"},
	{Source: "src/usuario.py", Test: "tests/test_usuario.py"},
}
