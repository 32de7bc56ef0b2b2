// Package discovery builds the inventory of existing test files.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSkipDirs are never descended into while scanning.
var DefaultSkipDirs = []string{"__pycache__", "node_modules", "venv", "site-packages"}

// Matcher decides whether a root-relative slash path is a test file.
type Matcher interface {
	Allows(name string) bool
}

// Scanner scans for test files in a directory
type Scanner struct {
	skipDirs map[string]bool
	matcher  Matcher
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string, matcher Matcher) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, matcher: matcher}
}

// Scan walks testsDir below root and returns the test files it finds as
// sorted slash paths relative to root.
func (s *Scanner) Scan(root, testsDir string) ([]string, error) {
	root = filepath.Clean(root)
	start := filepath.Join(root, filepath.FromSlash(testsDir))

	info, err := os.Stat(start)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", start)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", start)
	}

	var testFiles []string
	err = filepath.WalkDir(start, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != start && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if s.matcher.Allows(rel) {
			testFiles = append(testFiles, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(testFiles)
	return testFiles, nil
}
