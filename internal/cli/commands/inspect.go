package commands

import (
	"github.com/spf13/cobra"

	"tsel/internal/config"
	"tsel/internal/storage"
	"tsel/internal/ui"
)

// InspectCommand handles the inspect command
type InspectCommand struct {
	config *config.Config
	viewer ui.Viewer
}

// NewInspectCommand creates a new InspectCommand
func NewInspectCommand(cfg *config.Config, viewer ui.Viewer) *InspectCommand {
	return &InspectCommand{
		config: cfg,
		viewer: viewer,
	}
}

// Execute runs the command
func (ic *InspectCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := storage.NewJSONStorage(ic.config.GetReportPath()).Load()
	if err != nil {
		return err
	}
	return ic.viewer.View(report)
}
