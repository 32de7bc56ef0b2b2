package cli

import "tsel/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath: f.ProjectPath,
		BaseName:    f.BaseName,
		Since:       f.Since,
		Changed:     append([]string(nil), f.Changed...),
		Provider:    f.Provider,
		Model:       f.Model,
		Output:      f.Output,
		RulesFile:   f.RulesFile,
		NoReport:    f.NoReport,
		NoProgress:  f.NoProgress,
		Verbose:     f.Verbose,
		NameFilter:  f.NameFilter,
		TestCases:   f.TestCases,
		InitRules:   f.InitRules,
	}
}
