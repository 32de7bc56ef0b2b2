// Package pipeline runs one selection: changed files in, test list out.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tsel/internal/advisory"
	"tsel/internal/changes"
	"tsel/internal/config"
	"tsel/internal/discovery"
	"tsel/internal/domain"
	"tsel/internal/selection"
	"tsel/internal/storage"
)

// Stage names reported to the Observer, in execution order.
const (
	StageChanges  = "changes"
	StageSelect   = "select"
	StageAdvisory = "advisory"
	StageWrite    = "write"
	StageReport   = "report"
)

// Stages lists every stage in execution order.
var Stages = []string{StageChanges, StageSelect, StageAdvisory, StageWrite, StageReport}

// Observer is told when a stage starts and when the run is over.
type Observer interface {
	Stage(name string)
	Finish()
}

// Pipeline wires the selection components for one configuration.
type Pipeline struct {
	config     *config.Config
	changes    changes.Provider
	policy     selection.Policy
	selector   *selection.Selector
	reconciler *selection.Reconciler
	scanner    *discovery.Scanner
	mapping    *selection.Mapping
	suggester  advisory.Suggester
	sink       storage.Sink
	reports    storage.ReportStorage
	logger     *zap.Logger
	observer   Observer
	now        func() time.Time
}

// New creates a Pipeline. suggester and reports may be nil to disable the
// advisory call and the JSON report.
func New(
	cfg *config.Config,
	provider changes.Provider,
	suggester advisory.Suggester,
	sink storage.Sink,
	reports storage.ReportStorage,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := selection.NewPolicy(cfg.TestsDir, cfg.TestSuffix)
	fs := selection.NewRootChecker(cfg.ProjectPath)
	mapping := selection.NewMapping(cfg.Mappings)

	return &Pipeline{
		config:     cfg,
		changes:    provider,
		policy:     policy,
		mapping:    mapping,
		selector:   selection.NewSelector(mapping, policy, fs),
		reconciler: selection.NewReconciler(selection.NewExtractor(policy, fs), cfg.Advisory.Timeout, logger),
		scanner:    discovery.NewScanner(discovery.DefaultSkipDirs, policy),
		suggester:  suggester,
		sink:       sink,
		reports:    reports,
		logger:     logger,
		now:        time.Now,
	}
}

// SetObserver sets the stage observer (e.g. a progress bar).
func (p *Pipeline) SetObserver(o Observer) {
	p.observer = o
}

func (p *Pipeline) stage(name string) {
	if p.observer != nil {
		p.observer.Stage(name)
	}
}

// Run executes the stages. Only a failure to write the selection artifact
// is returned; everything upstream degrades to a smaller selection.
func (p *Pipeline) Run(ctx context.Context) (*domain.SelectionReport, error) {
	start := p.now()
	if p.observer != nil {
		defer p.observer.Finish()
	}

	p.stage(StageChanges)
	changed, listing := p.changedFiles(ctx)

	p.stage(StageSelect)
	baseline := p.selector.Select(changed)
	p.logger.Debug("deterministic selection",
		zap.Int("changed", len(changed)),
		zap.Strings("tests", baseline.Paths()))

	p.stage(StageAdvisory)
	var prompt string
	if p.suggester != nil {
		prompt = advisory.BuildPrompt(advisory.PromptInput{
			Changed:   listing,
			Rules:     p.mapping.Rules(),
			TestsDir:  p.policy.Marker(),
			Suffix:    p.policy.Suffix(),
			Framework: p.config.Framework,
			Inventory: p.inventory(),
		})
	}
	outcome := p.reconciler.Reconcile(ctx, baseline, p.suggester, prompt)

	p.stage(StageWrite)
	paths := outcome.Paths()
	if err := p.sink.Write(paths); err != nil {
		return nil, fmt.Errorf("failed to write selection: %w", err)
	}

	p.stage(StageReport)
	report := p.buildReport(changed, outcome, p.now().Sub(start))
	if p.reports != nil {
		if err := p.reports.Save(report); err != nil {
			p.logger.Warn("failed to save selection report", zap.Error(err))
		}
	}

	p.logger.Info("selection complete",
		zap.Int("changed", len(changed)),
		zap.Int("selected", len(paths)),
		zap.String("advisory", string(outcome.Status)))
	return report, nil
}

// changedFiles lists and normalizes the changed files. A provider error
// means no changes.
func (p *Pipeline) changedFiles(ctx context.Context) ([]string, string) {
	raw, err := p.changes.ChangedFiles(ctx)
	if err != nil {
		p.logger.Warn("cannot list changed files, continuing with none", zap.Error(err))
		raw = ""
	}
	listing := changes.Normalize(raw, p.config.GetBaseName())
	return changes.Split(listing), listing
}

// inventory lists the existing test files for the prompt; failures leave it empty.
func (p *Pipeline) inventory() []string {
	tests, err := p.scanner.Scan(p.config.ProjectPath, p.config.TestsDir)
	if err != nil {
		p.logger.Debug("test inventory unavailable", zap.Error(err))
		return nil
	}
	return tests
}

func (p *Pipeline) buildReport(changed []string, outcome selection.Outcome, elapsed time.Duration) *domain.SelectionReport {
	meta := domain.SelectionMeta{
		RunID:           uuid.NewString(),
		Timestamp:       p.now().Format(time.RFC3339),
		Provider:        string(config.ProviderNone),
		AdvisoryStatus:  outcome.Status,
		HTTPStatus:      outcome.HTTPStatus,
		ChangedFiles:    len(changed),
		BaselineTests:   len(outcome.Baseline),
		AdvisoryTests:   len(outcome.Advisory),
		SelectedTests:   outcome.Selection.Len(),
		Duration:        elapsed.String(),
		DurationSeconds: elapsed.Seconds(),
		OutputFile:      p.config.GetOutputPath(),
	}
	if p.suggester != nil {
		meta.Provider = p.suggester.Name()
		meta.Model = p.config.Advisory.Model
	}
	if outcome.Err != nil {
		meta.AdvisoryError = outcome.Err.Error()
	}

	if changed == nil {
		changed = []string{}
	}
	return &domain.SelectionReport{
		Meta:     meta,
		Changed:  changed,
		Tests:    outcome.Selection.Tests(),
		Rejected: outcome.Rejected,
	}
}
