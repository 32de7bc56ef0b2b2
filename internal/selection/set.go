package selection

import (
	"slices"
	"sort"

	"tsel/internal/domain"
)

// Set is a deduplicated collection of test paths with the sources that selected them.
type Set struct {
	sources map[string][]domain.Source
}

// NewSet creates an empty Set
func NewSet() *Set {
	return &Set{sources: make(map[string][]domain.Source)}
}

// Add records path as selected by src.
func (s *Set) Add(path string, src domain.Source) {
	if slices.Contains(s.sources[path], src) {
		return
	}
	s.sources[path] = append(s.sources[path], src)
}

// Len returns the number of distinct paths.
func (s *Set) Len() int {
	return len(s.sources)
}

// Paths returns the paths in lexicographic order.
func (s *Set) Paths() []string {
	paths := make([]string, 0, len(s.sources))
	for p := range s.sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Sources returns the sources that selected path.
func (s *Set) Sources(path string) []domain.Source {
	return slices.Clone(s.sources[path])
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := NewSet()
	for p, srcs := range s.sources {
		c.sources[p] = slices.Clone(srcs)
	}
	return c
}

// Tests returns the report entries in path order.
func (s *Set) Tests() []domain.SelectedTest {
	paths := s.Paths()
	tests := make([]domain.SelectedTest, len(paths))
	for i, p := range paths {
		tests[i] = domain.SelectedTest{Path: p, Sources: s.Sources(p)}
	}
	return tests
}
