package commands

import (
	"github.com/spf13/cobra"

	"tsel/internal/cli"
	"tsel/internal/config"
	"tsel/internal/discovery"
	"tsel/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Select  *SelectCommand
	Rules   *RulesCommand
	Extract *ExtractCommand
	Inspect *InspectCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	formatter := ui.NewFormatter(cfg, testCaseParser)
	viewer := ui.NewReportViewer()

	return &Commands{
		Select:  NewSelectCommand(cfg, formatter),
		Rules:   NewRulesCommand(cfg, filter, formatter),
		Extract: NewExtractCommand(cfg, formatter),
		Inspect: NewInspectCommand(cfg, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "root", "r", "", "Execution root; test paths are resolved and verified relative to it (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flags.RulesFile, "rules", "", "Rules file with the test layout and source → test mappings (default: .tsel.yaml in the root)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log advisory responses, HTTP status and dropped candidates")

	// resolveLocal loads the configuration for commands that never call the advisory provider
	resolveLocal := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		return cfg.ResolveLocal()
	}

	// Select command
	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "Select the tests to run for the last commit",
		Long:  "Map changed files to test files, ask the advisory model for more, verify every path on disk and write the list to suggested_tests.txt",
		Args:  cobra.NoArgs,
		RunE:  c.Select.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			return cfg.Resolve()
		},
	}
	selectCmd.Flags().StringVar(&flags.BaseName, "base", "", "Directory prefix stripped from changed paths (default: name of the root directory)")
	selectCmd.Flags().StringVar(&flags.Since, "since", "", "Revision to diff HEAD against (default: HEAD~1)")
	selectCmd.Flags().StringSliceVar(&flags.Changed, "changed", nil, "Use these changed files instead of asking git (comma separated or repeated)")
	selectCmd.Flags().StringVarP(&flags.Provider, "provider", "p", "", "Advisory provider: gemini, groq or none (default: gemini)")
	selectCmd.Flags().StringVarP(&flags.Model, "model", "m", "", "Advisory model (default depends on the provider)")
	selectCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Selection artifact (default: suggested_tests.txt in the root)")
	selectCmd.Flags().BoolVar(&flags.NoReport, "no-report", false, "Do not write the JSON selection report")
	selectCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Hide the progress bar")
	rootCmd.AddCommand(selectCmd)

	// Rules command
	rulesCmd := &cobra.Command{
		Use:     "rules",
		Short:   "Show mapping rules and discovered tests",
		Long:    "Print the source → test mappings, flag mapped tests that do not exist and list the test files found in the tests directory",
		Args:    cobra.NoArgs,
		RunE:    c.Rules.Execute,
		PreRunE: resolveLocal,
	}
	rulesCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., 'test_user*' or 'tests/api/**')")
	rulesCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases of every test file")
	rulesCmd.Flags().BoolVar(&flags.InitRules, "init", false, "Write the current rules to the rules file if it does not exist yet")
	rootCmd.AddCommand(rulesCmd)

	// Extract command
	extractCmd := &cobra.Command{
		Use:     "extract [file]",
		Short:   "Extract test paths from free text",
		Long:    "Run the advisory response extractor over a file (or stdin) and print the test paths that would be accepted",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Extract.Execute,
		PreRunE: resolveLocal,
	}
	rootCmd.AddCommand(extractCmd)

	// Inspect command
	inspectCmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Browse the last selection report",
		Long:    "Display the selected tests, rejected suggestions and changed files of the last run in an interactive viewer",
		Args:    cobra.NoArgs,
		RunE:    c.Inspect.Execute,
		PreRunE: resolveLocal,
	}
	rootCmd.AddCommand(inspectCmd)
}
