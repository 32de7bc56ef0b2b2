package changes

import (
	"context"
	"strings"
)

// Provider returns the newline-delimited list of paths changed since the previous commit.
type Provider interface {
	ChangedFiles(ctx context.Context) (string, error)
}

// StaticProvider serves a fixed list, e.g. paths given on the command line.
type StaticProvider struct {
	Files []string
}

// NewStaticProvider creates a StaticProvider
func NewStaticProvider(files []string) *StaticProvider {
	return &StaticProvider{Files: files}
}

// ChangedFiles returns the configured paths
func (p *StaticProvider) ChangedFiles(ctx context.Context) (string, error) {
	return strings.Join(p.Files, "\n"), nil
}
