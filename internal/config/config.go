package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	BaseName    string
	Since       string

	// Test layout
	TestsDir   string
	TestSuffix string
	Framework  string
	Mappings   []MappingRule

	// Output settings
	OutputFile     string
	OutputJSONFile string
	OutputJSONDir  string
	RulesFile      string

	Advisory Advisory
	Verbose  bool

	// Command flags
	Flags Flags
}

// Advisory configures the LLM suggester.
type Advisory struct {
	Provider        Provider
	APIKey          string
	Model           string
	BaseURL         string
	Timeout         time.Duration
	Temperature     float32
	MaxOutputTokens int
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	BaseName    string
	Since       string
	Changed     []string
	Provider    string
	Model       string
	Output      string
	RulesFile   string
	NoReport    bool
	NoProgress  bool
	Verbose     bool
	NameFilter  string
	TestCases   bool
	InitRules   bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		Since:          DefaultSince,
		TestsDir:       DefaultTestsDir,
		TestSuffix:     DefaultTestSuffix,
		Framework:      DefaultFramework,
		OutputFile:     DefaultOutputFile,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		RulesFile:      DefaultRulesFile,
		Advisory: Advisory{
			Provider:        DefaultProvider,
			Timeout:         DefaultTimeout,
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
	}
	cfg.Mappings = make([]MappingRule, len(DefaultMappings))
	copy(cfg.Mappings, DefaultMappings)
	return cfg
}

// Load creates a config, applies flags and resolves it against the environment.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve applies, in increasing priority, the .env file, environment
// variables, the rules file and the command flags, then validates the result.
func (c *Config) Resolve() error {
	if err := c.resolve(); err != nil {
		return err
	}
	return c.Validate()
}

// ResolveLocal is Resolve for commands that never call the advisory
// provider: a missing credential is not an error.
func (c *Config) ResolveLocal() error {
	if err := c.resolve(); err != nil {
		return err
	}
	return c.validateLayout()
}

func (c *Config) resolve() error {
	if c.Flags.ProjectPath != "" {
		c.ProjectPath = c.Flags.ProjectPath
	}

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(c.ProjectPath, DefaultEnvFile))

	if err := c.applyEnv(); err != nil {
		return err
	}

	if c.Flags.RulesFile != "" {
		c.RulesFile = c.Flags.RulesFile
	}
	rules, err := LoadRulesOrEmpty(c.GetRulesPath())
	if err != nil {
		return &Error{Field: "rules", Msg: "cannot load rules file", Hint: "fix or remove " + c.GetRulesPath(), Err: err}
	}
	c.applyRules(rules)

	if err := c.applyFlags(); err != nil {
		return err
	}

	if c.Advisory.Model == "" {
		c.Advisory.Model = c.Advisory.Provider.DefaultModel()
	}
	if env := c.Advisory.Provider.CredentialEnv(); env != "" {
		c.Advisory.APIKey = strings.TrimSpace(os.Getenv(env))
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvProvider); v != "" {
		p, err := ParseProvider(v)
		if err != nil {
			return err
		}
		c.Advisory.Provider = p
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Advisory.Model = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Advisory.BaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Verbose = on
		}
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return &Error{Field: "timeout", Msg: fmt.Sprintf("invalid %s value %q", EnvTimeout, v), Hint: "use a Go duration such as 30s"}
		}
		c.Advisory.Timeout = d
	}
	return nil
}

func (c *Config) applyRules(rules *Rules) {
	if rules == nil {
		return
	}
	if rules.TestsDir != "" {
		c.TestsDir = rules.TestsDir
	}
	if rules.TestSuffix != "" {
		c.TestSuffix = rules.TestSuffix
	}
	if rules.Framework != "" {
		c.Framework = rules.Framework
	}
	if len(rules.Mappings) > 0 {
		c.Mappings = rules.Mappings
	}
}

func (c *Config) applyFlags() error {
	f := c.Flags
	if f.BaseName != "" {
		c.BaseName = f.BaseName
	}
	if f.Since != "" {
		c.Since = f.Since
	}
	if f.Output != "" {
		c.OutputFile = f.Output
	}
	if f.Provider != "" {
		p, err := ParseProvider(f.Provider)
		if err != nil {
			return err
		}
		// model and endpoint from the environment belong to the provider it named
		if p != c.Advisory.Provider {
			c.Advisory.Model = ""
			c.Advisory.BaseURL = ""
		}
		c.Advisory.Provider = p
	}
	if f.Model != "" {
		c.Advisory.Model = f.Model
	}
	if f.Verbose {
		c.Verbose = true
	}
	return nil
}

// Validate reports the first fatal configuration problem.
func (c *Config) Validate() error {
	if err := c.validateLayout(); err != nil {
		return err
	}
	if c.Advisory.Provider == ProviderNone {
		return nil
	}
	if c.Advisory.APIKey == "" {
		env := c.Advisory.Provider.CredentialEnv()
		return &Error{
			Field: "credential",
			Msg:   fmt.Sprintf("%s is not configured", env),
			Hint: fmt.Sprintf("To configure:\n  1. Create a key at %s\n  2. export %s='<your-key>' (or add it to %s)\n  3. Or run with --provider none for mapping-only selection",
				c.Advisory.Provider.KeyURL(), env, DefaultEnvFile),
		}
	}
	return nil
}

// GetBaseName returns the directory prefix stripped from VCS paths.
func (c *Config) GetBaseName() string {
	if c.BaseName != "" {
		return strings.Trim(c.BaseName, "/")
	}
	abs, err := filepath.Abs(c.ProjectPath)
	if err != nil {
		return filepath.Base(c.ProjectPath)
	}
	return filepath.Base(abs)
}

// GetOutputPath returns the path of the flat artifact; relative names live under the project path.
func (c *Config) GetOutputPath() string {
	if filepath.IsAbs(c.OutputFile) {
		return c.OutputFile
	}
	return filepath.Join(c.ProjectPath, c.OutputFile)
}

// GetReportPath returns the full path to the JSON selection report.
// Resolves to an absolute path so select and inspect always use the same file regardless of cwd.
func (c *Config) GetReportPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetRulesPath returns the path of the rules file.
func (c *Config) GetRulesPath() string {
	if filepath.IsAbs(c.RulesFile) {
		return c.RulesFile
	}
	return filepath.Join(c.ProjectPath, c.RulesFile)
}

func (c *Config) validateLayout() error {
	if strings.TrimSpace(c.TestsDir) == "" {
		return &Error{Field: "tests_dir", Msg: "tests directory must not be empty"}
	}
	if c.TestSuffix == "" {
		return &Error{Field: "test_suffix", Msg: "test file suffix must not be empty"}
	}
	return nil
}
