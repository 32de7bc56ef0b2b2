package discovery

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test files by name pattern.
// A pattern with glob syntax ("test_user*", "tests/api/**") is matched
// against the file name and against the whole path; a plain pattern is a
// substring match on the file name.
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	filtered := []string{}
	glob := strings.ContainsAny(pattern, "*?[{")

	for _, test := range tests {
		name := path.Base(test)

		if !glob {
			if strings.Contains(name, pattern) {
				filtered = append(filtered, test)
			}
			continue
		}

		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			filtered = append(filtered, test)
			continue
		}
		if ok, err := doublestar.Match(pattern, test); err == nil && ok {
			filtered = append(filtered, test)
		}
	}

	return filtered
}
