// Package selection turns changed files and untrusted advisory text into a
// validated, sorted list of test files.
package selection

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Policy is the allow-list a candidate test path must satisfy before it can
// be emitted: inside the tests directory, carrying the test suffix, and
// written as a canonical path relative to the execution root.
type Policy struct {
	marker  string
	suffix  string
	pattern string
}

// NewPolicy creates a Policy for the given tests directory and file suffix.
func NewPolicy(testsDir, suffix string) Policy {
	marker := strings.Trim(filepath.ToSlash(testsDir), "/") + "/"
	return Policy{
		marker:  marker,
		suffix:  suffix,
		pattern: escapeMeta(marker) + "**/*" + escapeMeta(suffix),
	}
}

// Marker returns the tests directory as a path prefix, e.g. "tests/".
func (p Policy) Marker() string { return p.marker }

// Suffix returns the test file suffix, e.g. ".py".
func (p Policy) Suffix() string { return p.suffix }

// Pattern returns the doublestar pattern matching every test file.
func (p Policy) Pattern() string { return p.pattern }

// HasShape reports whether s starts with the marker and ends with the suffix.
func (p Policy) HasShape(s string) bool {
	return len(s) > len(p.marker) && strings.HasPrefix(s, p.marker) && strings.HasSuffix(s, p.suffix)
}

// Allows reports whether name may be used as a test path.
func (p Policy) Allows(name string) bool {
	if !p.HasShape(name) {
		return false
	}
	if strings.ContainsAny(name, "\\\x00") {
		return false
	}
	// rejects "..", "." and empty segments as well as absolute paths
	if path.Clean(name) != name || !filepath.IsLocal(filepath.FromSlash(name)) {
		return false
	}
	ok, err := doublestar.Match(p.pattern, name)
	return err == nil && ok
}

func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Checker answers whether a root-relative path names an existing file.
type Checker interface {
	Exists(name string) bool
}

// RootChecker checks existence inside a directory tree. Lookups go through
// os.Root, so symlinks and ".." cannot reach outside root.
type RootChecker struct {
	root string
}

// NewRootChecker creates a RootChecker anchored at root.
func NewRootChecker(root string) *RootChecker {
	return &RootChecker{root: root}
}

// Exists reports whether name is a regular file under the root.
func (c *RootChecker) Exists(name string) bool {
	r, err := os.OpenRoot(c.root)
	if err != nil {
		return false
	}
	defer r.Close()

	info, err := r.Stat(filepath.FromSlash(name))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
