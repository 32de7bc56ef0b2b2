package selection

import (
	"tsel/internal/config"
	"tsel/internal/domain"
)

// Mapping is the fixed source file to test file table. It is built once
// from configuration and never changes afterwards.
type Mapping struct {
	tests map[string]string
	rules []config.MappingRule
}

// NewMapping builds a Mapping. When a source appears twice the first rule wins.
func NewMapping(rules []config.MappingRule) *Mapping {
	m := &Mapping{tests: make(map[string]string, len(rules))}
	for _, r := range rules {
		if _, ok := m.tests[r.Source]; ok {
			continue
		}
		m.tests[r.Source] = r.Test
		m.rules = append(m.rules, r)
	}
	return m
}

// Lookup returns the test mapped to source.
func (m *Mapping) Lookup(source string) (string, bool) {
	t, ok := m.tests[source]
	return t, ok
}

// Rules returns the rules in configuration order.
func (m *Mapping) Rules() []config.MappingRule {
	out := make([]config.MappingRule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Selector computes the deterministic baseline.
type Selector struct {
	mapping *Mapping
	policy  Policy
	fs      Checker
}

// NewSelector creates a Selector
func NewSelector(mapping *Mapping, policy Policy, fs Checker) *Selector {
	return &Selector{mapping: mapping, policy: policy, fs: fs}
}

// Select maps every changed path to its test and passes changed test files
// through. Paths without an existing test are dropped without error.
func (s *Selector) Select(changed []string) *Set {
	set := NewSet()
	for _, path := range changed {
		if test, ok := s.mapping.Lookup(path); ok && s.accept(test) {
			set.Add(test, domain.SourceMapping)
		}
		if s.accept(path) {
			set.Add(path, domain.SourceChanged)
		}
	}
	return set
}

func (s *Selector) accept(path string) bool {
	return s.policy.Allows(path) && s.fs.Exists(path)
}
