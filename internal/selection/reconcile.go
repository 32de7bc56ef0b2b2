package selection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tsel/internal/advisory"
	"tsel/internal/domain"
)

// Outcome is the reconciled selection plus what happened on the advisory path.
type Outcome struct {
	Selection  *Set
	Baseline   []string
	Advisory   []string
	Rejected   []string
	Status     domain.AdvisoryStatus
	HTTPStatus int
	Err        error
}

// Paths returns the final sorted selection.
func (o Outcome) Paths() []string {
	return o.Selection.Paths()
}

// Reconciler merges the deterministic baseline with advisory suggestions.
// The advisory path can only add tests: whatever goes wrong there, the
// baseline is returned unchanged.
type Reconciler struct {
	extractor *Extractor
	timeout   time.Duration
	logger    *zap.Logger
}

// NewReconciler creates a Reconciler. A non-positive timeout disables the deadline.
func NewReconciler(extractor *Extractor, timeout time.Duration, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{extractor: extractor, timeout: timeout, logger: logger}
}

// Reconcile asks suggester (if any) for additional tests and returns the
// union with baseline. It never fails.
func (r *Reconciler) Reconcile(ctx context.Context, baseline *Set, suggester advisory.Suggester, prompt string) Outcome {
	out := Outcome{
		Selection: baseline.Clone(),
		Baseline:  baseline.Paths(),
	}
	if suggester == nil {
		out.Status = domain.AdvisoryDisabled
		return out
	}

	resp, err := r.suggest(ctx, suggester, prompt)
	out.HTTPStatus = resp.Status
	r.logger.Debug("advisory response",
		zap.String("provider", suggester.Name()),
		zap.Int("status", resp.Status),
		zap.String("response", resp.Text))

	if err != nil {
		out.Status = domain.AdvisoryUnavailable
		out.Err = err
		r.logger.Warn("advisory unavailable, using mapping baseline only",
			zap.String("provider", suggester.Name()),
			zap.Error(err))
		return out
	}
	if strings.TrimSpace(resp.Text) == "" {
		out.Status = domain.AdvisoryEmpty
		r.logger.Info("advisory returned no text", zap.String("provider", suggester.Name()))
		return out
	}

	extraction := r.extractor.Inspect(resp.Text)
	for _, p := range extraction.Accepted {
		out.Selection.Add(p, domain.SourceAdvisory)
	}
	out.Advisory = extraction.Accepted
	out.Rejected = extraction.Rejected
	out.Status = domain.AdvisoryOK
	if len(extraction.Rejected) > 0 {
		r.logger.Debug("dropped advisory candidates", zap.Strings("paths", extraction.Rejected))
	}
	return out
}

// suggest bounds the call with the timeout and turns a provider panic into an error.
func (r *Reconciler) suggest(ctx context.Context, s advisory.Suggester, prompt string) (resp advisory.Response, err error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	defer func() {
		if v := recover(); v != nil {
			resp = advisory.Response{}
			err = fmt.Errorf("%s provider panicked: %v", s.Name(), v)
		}
	}()

	return s.Suggest(ctx, prompt)
}
