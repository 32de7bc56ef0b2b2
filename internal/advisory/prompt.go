package advisory

import (
	"fmt"
	"strings"

	"tsel/internal/config"
)

// maxInventory caps how many existing test files are listed in the prompt.
const maxInventory = 200

// PromptInput is everything the prompt is built from.
type PromptInput struct {
	Changed   string // normalized listing, or changes.NoChanges
	Rules     []config.MappingRule
	TestsDir  string // marker form, e.g. "tests/"
	Suffix    string
	Framework string
	Inventory []string // existing test files, optional
}

// BuildPrompt renders the advisory prompt. It states the mapping rules in
// prose and asks for bare paths, one per line.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("You are a CI/CD assistant.\n\n")
	b.WriteString("Changed files:\n")
	b.WriteString(strings.TrimSpace(in.Changed))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Which %s test files should I run?\n\n", in.Framework)

	b.WriteString("Rules:\n")
	for _, r := range in.Rules {
		fmt.Fprintf(&b, "- %s → %s\n", r.Source, r.Test)
	}
	fmt.Fprintf(&b, "- %s*%s → the file itself\n", in.TestsDir, in.Suffix)

	if len(in.Inventory) > 0 {
		b.WriteString("\nExisting test files:\n")
		for i, p := range in.Inventory {
			if i == maxInventory {
				fmt.Fprintf(&b, "- ... and %d more\n", len(in.Inventory)-maxInventory)
				break
			}
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	b.WriteString("\nAnswer ONLY with the test file paths, one per line, without explanation.")
	return b.String()
}
