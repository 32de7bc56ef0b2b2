package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MappingRule maps one source file to the test file that covers it.
type MappingRule struct {
	Source string `yaml:"source"`
	Test   string `yaml:"test"`
}

// Rules is the on-disk shape of the rules file.
type Rules struct {
	TestsDir   string        `yaml:"tests_dir,omitempty"`
	TestSuffix string        `yaml:"test_suffix,omitempty"`
	Framework  string        `yaml:"framework,omitempty"`
	Mappings   []MappingRule `yaml:"mappings,omitempty"`
}

// LoadRules loads rules from a YAML file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return parseRules(data)
}

// LoadRulesOrEmpty loads rules from file, or returns nil if the file doesn't exist.
func LoadRulesOrEmpty(path string) (*Rules, error) {
	rules, err := LoadRules(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return rules, err
}

func parseRules(data []byte) (*Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}

	seen := make(map[string]string, len(rules.Mappings))
	for i, m := range rules.Mappings {
		m.Source = strings.TrimSpace(m.Source)
		m.Test = strings.TrimSpace(m.Test)
		if m.Source == "" || m.Test == "" {
			return nil, fmt.Errorf("mapping %d: source and test are required", i+1)
		}
		if prev, ok := seen[m.Source]; ok && prev != m.Test {
			return nil, fmt.Errorf("mapping %d: %s is already mapped to %s", i+1, m.Source, prev)
		}
		seen[m.Source] = m.Test
		rules.Mappings[i] = m
	}
	return &rules, nil
}

// SaveRules writes rules to a YAML file.
func SaveRules(path string, rules *Rules) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}
	return nil
}
