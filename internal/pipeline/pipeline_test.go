package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsel/internal/advisory"
	"tsel/internal/changes"
	"tsel/internal/config"
	"tsel/internal/domain"
	"tsel/internal/storage"
)

type stubSuggester struct {
	text   string
	err    error
	block  bool
	prompt string
}

func (s *stubSuggester) Name() string { return "stub" }

func (s *stubSuggester) Suggest(ctx context.Context, prompt string) (advisory.Response, error) {
	s.prompt = prompt
	if s.block {
		<-ctx.Done()
		return advisory.Response{}, ctx.Err()
	}
	if s.err != nil {
		return advisory.Response{Status: 500}, s.err
	}
	return advisory.Response{Status: 200, Text: s.text}, nil
}

type failingProvider struct{}

func (failingProvider) ChangedFiles(context.Context) (string, error) {
	return "", errors.New("reference HEAD~1 not found")
}

type recordingObserver struct {
	stages   []string
	finished bool
}

func (o *recordingObserver) Stage(name string) { o.stages = append(o.stages, name) }
func (o *recordingObserver) Finish()           { o.finished = true }

// newProject creates an execution root containing the given files and a config pointing at it.
func newProject(t *testing.T, files ...string) *config.Config {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("def test_ok():\n    pass\n"), 0644))
	}
	cfg := config.New()
	cfg.ProjectPath = root
	cfg.BaseName = "proj"
	cfg.Advisory.Timeout = 2 * time.Second
	return cfg
}

func run(t *testing.T, cfg *config.Config, provider changes.Provider, s advisory.Suggester) (*domain.SelectionReport, string) {
	t.Helper()
	sink := storage.NewFileSink(cfg.GetOutputPath())
	reports := storage.NewJSONStorage(cfg.GetReportPath())

	report, err := New(cfg, provider, s, sink, reports, nil).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	return report, string(data)
}

func TestRun_MappingAndAdvisory(t *testing.T) {
	cfg := newProject(t, "tests/test_calculadora.py", "tests/test_usuario.py", "src/calculadora.py")
	s := &stubSuggester{text: "tests/test_calculadora.py\ntests/test_usuario.py"}

	report, artifact := run(t, cfg, changes.NewStaticProvider([]string{"proj/src/calculadora.py"}), s)

	assert.Equal(t, "tests/test_calculadora.py\ntests/test_usuario.py", artifact)
	assert.Equal(t, domain.AdvisoryOK, report.Meta.AdvisoryStatus)
	assert.Equal(t, []string{"src/calculadora.py"}, report.Changed)
	require.Len(t, report.Tests, 2)
	assert.Equal(t, []domain.Source{domain.SourceMapping, domain.SourceAdvisory}, report.Tests[0].Sources)
	assert.Equal(t, []domain.Source{domain.SourceAdvisory}, report.Tests[1].Sources)
	assert.NotEmpty(t, report.Meta.RunID)
	assert.Equal(t, "stub", report.Meta.Provider)

	assert.Contains(t, s.prompt, "Changed files:\nsrc/calculadora.py")
	assert.Contains(t, s.prompt, "- tests/test_usuario.py")
}

func TestRun_FakeAdvisoryPathDropped(t *testing.T) {
	cfg := newProject(t, "tests/test_calculadora.py")
	s := &stubSuggester{text: "tests/test_calculadora.py\ntests/fake.py\n../etc/passwd.py"}

	report, artifact := run(t, cfg, changes.NewStaticProvider([]string{"src/calculadora.py"}), s)

	assert.Equal(t, "tests/test_calculadora.py", artifact)
	assert.Contains(t, report.Rejected, "tests/fake.py")
}

func TestRun_NoChangesAndTimeout(t *testing.T) {
	cfg := newProject(t, "tests/test_calculadora.py")
	cfg.Advisory.Timeout = 20 * time.Millisecond
	s := &stubSuggester{block: true}

	report, artifact := run(t, cfg, changes.NewStaticProvider(nil), s)

	assert.Equal(t, "", artifact)
	assert.Equal(t, domain.AdvisoryUnavailable, report.Meta.AdvisoryStatus)
	assert.NotEmpty(t, report.Meta.AdvisoryError)
	assert.Contains(t, s.prompt, changes.NoChanges)
	assert.Empty(t, report.Changed)
}

func TestRun_ProviderErrorMeansNoChanges(t *testing.T) {
	cfg := newProject(t, "tests/test_calculadora.py")

	report, artifact := run(t, cfg, failingProvider{}, nil)

	assert.Equal(t, "", artifact)
	assert.Equal(t, domain.AdvisoryDisabled, report.Meta.AdvisoryStatus)
	assert.Equal(t, "none", report.Meta.Provider)
}

func TestRun_AdvisoryFailureKeepsBaseline(t *testing.T) {
	cfg := newProject(t, "tests/test_usuario.py", "tests/test_login.py")
	s := &stubSuggester{err: errors.New("401 unauthorized")}

	report, artifact := run(t, cfg, changes.NewStaticProvider([]string{"src/usuario.py", "tests/test_login.py"}), s)

	assert.Equal(t, "tests/test_login.py\ntests/test_usuario.py", artifact)
	assert.Equal(t, 500, report.Meta.HTTPStatus)
	assert.Equal(t, 2, report.Meta.BaselineTests)
}

func TestRun_Idempotent(t *testing.T) {
	cfg := newProject(t, "tests/test_calculadora.py", "tests/test_usuario.py")
	provider := changes.NewStaticProvider([]string{"src/calculadora.py", "src/usuario.py"})

	_, first := run(t, cfg, provider, nil)
	_, second := run(t, cfg, provider, nil)

	assert.Equal(t, first, second)
	assert.Equal(t, "tests/test_calculadora.py\ntests/test_usuario.py", first)
}

func TestRun_ReportSaved(t *testing.T) {
	cfg := newProject(t, "tests/test_calculadora.py")

	report, _ := run(t, cfg, changes.NewStaticProvider([]string{"src/calculadora.py"}), nil)

	loaded, err := storage.NewJSONStorage(cfg.GetReportPath()).Load()
	require.NoError(t, err)
	assert.Equal(t, report.Meta.RunID, loaded.Meta.RunID)
	assert.Equal(t, []string{"tests/test_calculadora.py"}, loaded.Paths())
}

func TestRun_Observer(t *testing.T) {
	cfg := newProject(t)
	p := New(cfg, changes.NewStaticProvider(nil), nil, storage.NewFileSink(cfg.GetOutputPath()), nil, nil)
	obs := &recordingObserver{}
	p.SetObserver(obs)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stages, obs.stages)
	assert.True(t, obs.finished)
	_, err = os.Stat(cfg.GetReportPath())
	assert.True(t, os.IsNotExist(err), "no report without report storage")
}

func TestRun_SinkError(t *testing.T) {
	cfg := newProject(t)
	blocker := filepath.Join(cfg.ProjectPath, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	p := New(cfg, changes.NewStaticProvider(nil), nil, storage.NewFileSink(filepath.Join(blocker, "out.txt")), nil, nil)
	_, err := p.Run(context.Background())
	assert.Error(t, err)
}

func TestRun_ProviderSetupFailureIsUnavailable(t *testing.T) {
	cfg := newProject(t, "tests/test_calculadora.py")
	s := advisory.Unavailable(config.ProviderGemini, errors.New("failed to create GenAI client"))

	report, artifact := run(t, cfg, changes.NewStaticProvider([]string{"src/calculadora.py"}), s)

	assert.Equal(t, "tests/test_calculadora.py", artifact)
	assert.Equal(t, "gemini", report.Meta.Provider)
	assert.Equal(t, domain.AdvisoryUnavailable, report.Meta.AdvisoryStatus)
	assert.Contains(t, report.Meta.AdvisoryError, "failed to create GenAI client")
}
