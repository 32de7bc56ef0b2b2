package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tsel/internal/advisory"
	"tsel/internal/changes"
	"tsel/internal/config"
	"tsel/internal/logging"
	"tsel/internal/pipeline"
	"tsel/internal/storage"
	"tsel/internal/ui"
)

// SelectCommand handles the select command
type SelectCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewSelectCommand creates a new SelectCommand
func NewSelectCommand(cfg *config.Config, formatter *ui.Formatter) *SelectCommand {
	return &SelectCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (sc *SelectCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := sc.config
	ctx := cmd.Context()

	logger := logging.Must(cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	var provider changes.Provider
	if len(cfg.Flags.Changed) > 0 {
		provider = changes.NewStaticProvider(cfg.Flags.Changed)
	} else {
		provider = changes.NewGitProvider(cfg.ProjectPath, cfg.Since)
	}

	suggester, err := advisory.New(ctx, cfg.Advisory)
	if err != nil {
		logger.Debug("advisory provider setup failed",
			zap.String("provider", string(cfg.Advisory.Provider)),
			zap.Error(err))
		suggester = advisory.Unavailable(cfg.Advisory.Provider, err)
	}

	var reports storage.ReportStorage
	if !cfg.Flags.NoReport {
		reports = storage.NewJSONStorage(cfg.GetReportPath())
	}

	p := pipeline.New(cfg, provider, suggester, storage.NewFileSink(cfg.GetOutputPath()), reports, logger)
	if !cfg.Flags.NoProgress {
		p.SetObserver(ui.NewStageBar(len(pipeline.Stages)))
	}

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	sc.formatter.SetOutput(cmd.OutOrStdout())
	sc.formatter.PrintSummary(report)
	return nil
}
