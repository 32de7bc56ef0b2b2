package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tsel/internal/config"
	"tsel/internal/selection"
	"tsel/internal/ui"
)

// ExtractCommand handles the extract command
type ExtractCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewExtractCommand creates a new ExtractCommand
func NewExtractCommand(cfg *config.Config, formatter *ui.Formatter) *ExtractCommand {
	return &ExtractCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (ec *ExtractCommand) Execute(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read advisory text: %w", err)
	}

	policy := selection.NewPolicy(ec.config.TestsDir, ec.config.TestSuffix)
	extractor := selection.NewExtractor(policy, selection.NewRootChecker(ec.config.ProjectPath))
	extraction := extractor.Inspect(string(data))

	ec.formatter.SetOutput(cmd.OutOrStdout())
	ec.formatter.PrintExtraction(extraction.Accepted, extraction.Rejected)
	return nil
}
