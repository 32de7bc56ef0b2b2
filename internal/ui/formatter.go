package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"tsel/internal/config"
	"tsel/internal/discovery"
	"tsel/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	white  = color.New(color.FgWhite)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    os.Stdout,
	}
}

// SetOutput redirects the formatter output
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

func (f *Formatter) row(label string, c *color.Color, value any) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27v", value)
	fmt.Fprintln(f.out, " │")
}

func (f *Formatter) separator() {
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

// PrintSummary displays the statistics of a selection run followed by
// the selected tests as a tree.
func (f *Formatter) PrintSummary(report *domain.SelectionReport) {
	meta := report.Meta

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Selection Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Changed Files", white, meta.ChangedFiles)
	f.separator()
	f.row("Mapped Tests", green, meta.BaselineTests)
	f.separator()
	f.row("Advisory Tests", cyan, meta.AdvisoryTests)
	f.separator()
	f.row("Selected Tests", green, meta.SelectedTests)
	f.separator()
	f.row("Rejected Suggestions", red, len(report.Rejected))
	f.separator()
	provider := meta.Provider
	if meta.Model != "" {
		provider += " (" + meta.Model + ")"
	}
	f.row("Provider", white, provider)
	f.separator()
	f.row("Advisory", statusColor(meta.AdvisoryStatus), meta.AdvisoryStatus)
	f.separator()
	f.row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if len(report.Tests) == 0 {
		yellow.Fprintln(f.out, "No tests selected")
		return
	}
	green.Fprintf(f.out, "✓ %d test file(s) written to %s\n", len(report.Tests), meta.OutputFile)
	fmt.Fprintln(f.out)
	f.printSelectionTree(report.Tests)
}

func statusColor(s domain.AdvisoryStatus) *color.Color {
	switch s {
	case domain.AdvisoryOK:
		return green
	case domain.AdvisoryUnavailable:
		return red
	}
	return yellow
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Sources  []domain.Source
	IsFile   bool
}

// printSelectionTree prints the selected tests grouped by directory
func (f *Formatter) printSelectionTree(tests []domain.SelectedTest) {
	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for _, test := range tests {
		parts := strings.Split(test.Path, "/")
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
			if i == len(parts)-1 {
				current.Sources = test.Sources
			}
		}
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector := "├── "
		next := prefix + "│   "
		if last {
			connector = "└── "
			next = prefix + "    "
		}

		if child.IsFile {
			fmt.Fprint(f.out, prefix+connector)
			yellow.Fprint(f.out, child.Name)
			fmt.Fprintf(f.out, " [%s]\n", joinSources(child.Sources))
			continue
		}
		cyan.Fprintf(f.out, "%s%s%s/\n", prefix, connector, child.Name)
		f.printTreeNode(child, next)
	}
}

func joinSources(sources []domain.Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// PrintRules prints the mapping table and the pass-through rule.
func (f *Formatter) PrintRules(rules []config.MappingRule, pattern string) {
	green.Fprintf(f.out, "%d mapping rule(s):\n", len(rules))
	fmt.Fprintln(f.out)

	width := 0
	for _, r := range rules {
		width = max(width, len(r.Source))
	}
	for _, r := range rules {
		fmt.Fprintf(f.out, "  %-*s → ", width, r.Source)
		cyan.Fprintln(f.out, r.Test)
	}
	fmt.Fprintf(f.out, "  %-*s → ", width, pattern)
	cyan.Fprintln(f.out, "(the file itself)")
	fmt.Fprintln(f.out)
}

// PrintTestList prints a list of test files, optionally with test cases.
// missing marks mapped tests that do not exist on disk.
func (f *Formatter) PrintTestList(tests []string, showTestCases bool, missing []string) {
	if len(missing) > 0 {
		red.Fprintf(f.out, "%d mapped test file(s) missing:\n", len(missing))
		for _, m := range missing {
			red.Fprintf(f.out, "  ✗ %s\n", m)
		}
		fmt.Fprintln(f.out)
	}

	if len(tests) == 0 {
		yellow.Fprintln(f.out, "No tests found")
		return
	}

	if !showTestCases {
		green.Fprintf(f.out, "Found %d test file(s):\n", len(tests))
		fmt.Fprintln(f.out)
		for i, test := range tests {
			if i == len(tests)-1 {
				cyan.Fprintf(f.out, "└── %s\n", test)
			} else {
				cyan.Fprintf(f.out, "├── %s\n", test)
			}
		}
		return
	}

	green.Fprintf(f.out, "Found %d test file(s) with test cases:\n", len(tests))
	fmt.Fprintln(f.out)
	for i, test := range tests {
		lastFile := i == len(tests)-1
		branch, indent := "├── ", "│   "
		if lastFile {
			branch, indent = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s\n", branch, test)

		testCases, err := f.parser.FindTestCases(filepath.Join(f.config.ProjectPath, filepath.FromSlash(test)))
		if err != nil {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, red.Sprintf("error reading test file: %v", err))
			continue
		}
		if len(testCases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, red.Sprint("(no test cases found)"))
			continue
		}
		for j, tc := range testCases {
			leaf := "├── "
			if j == len(testCases)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent, leaf, yellow.Sprint(tc))
		}
	}
}

// CountTestCases returns the total number of test cases across the given test files.
func (f *Formatter) CountTestCases(tests []string) (int, error) {
	var total int
	for _, test := range tests {
		cases, err := f.parser.FindTestCases(filepath.Join(f.config.ProjectPath, filepath.FromSlash(test)))
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PrintExtraction prints accepted paths on plain lines, so the output can be
// piped, and rejected candidates marked in red.
func (f *Formatter) PrintExtraction(accepted, rejected []string) {
	for _, p := range accepted {
		fmt.Fprintln(f.out, p)
	}
	for _, p := range rejected {
		red.Fprintf(f.out, "✗ %s (rejected)\n", p)
	}
}
