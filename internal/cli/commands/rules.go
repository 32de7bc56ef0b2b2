package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tsel/internal/config"
	"tsel/internal/discovery"
	"tsel/internal/selection"
	"tsel/internal/ui"
)

// RulesCommand handles the rules command
type RulesCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewRulesCommand creates a new RulesCommand
func NewRulesCommand(cfg *config.Config, filter *discovery.Filter, formatter *ui.Formatter) *RulesCommand {
	return &RulesCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RulesCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.config
	rc.formatter.SetOutput(cmd.OutOrStdout())

	if cfg.Flags.InitRules {
		if err := rc.initRules(); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Rules written to %s\n\n", cfg.GetRulesPath())
	}

	policy := selection.NewPolicy(cfg.TestsDir, cfg.TestSuffix)
	fs := selection.NewRootChecker(cfg.ProjectPath)
	mapping := selection.NewMapping(cfg.Mappings)

	rc.formatter.PrintRules(mapping.Rules(), policy.Pattern())

	var missing []string
	for _, r := range mapping.Rules() {
		if !policy.Allows(r.Test) || !fs.Exists(r.Test) {
			missing = append(missing, r.Test)
		}
	}

	scanner := discovery.NewScanner(discovery.DefaultSkipDirs, policy)
	tests, err := scanner.Scan(cfg.ProjectPath, cfg.TestsDir)
	if err != nil {
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "%v\n\n", err)
		tests = nil
	}
	tests = rc.filter.FilterByName(tests, cfg.Flags.NameFilter)

	rc.formatter.PrintTestList(tests, cfg.Flags.TestCases, missing)
	return nil
}

func (rc *RulesCommand) initRules() error {
	cfg := rc.config
	path := cfg.GetRulesPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("rules file %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check rules file: %w", err)
	}
	return config.SaveRules(path, &config.Rules{
		TestsDir:   cfg.TestsDir,
		TestSuffix: cfg.TestSuffix,
		Framework:  cfg.Framework,
		Mappings:   cfg.Mappings,
	})
}
