package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tsel/internal/domain"
)

// Sink receives the final selection.
type Sink interface {
	Write(paths []string) error
}

// ReportStorage persists and loads the selection report of the last run.
type ReportStorage interface {
	Save(report *domain.SelectionReport) error
	Load() (*domain.SelectionReport, error)
}

// FileSink writes the selection as a flat file, one path per line.
type FileSink struct {
	path string
}

// NewFileSink returns a Sink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Write overwrites the artifact. An empty selection produces an empty file.
func (s *FileSink) Write(paths []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(s.path, []byte(strings.Join(paths, "\n"))); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}

// writeFile replaces path through a temporary file in the same directory,
// so a reader never sees a half-written artifact.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
