package discovery

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var (
	testClassPattern = regexp.MustCompile(`^class\s+(Test\w*)\s*[:(]`)
	testFuncPattern  = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+(test\w*)\s*\(`)
)

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases finds the pytest test cases in a test file. Module level
// functions are returned by name, methods of Test* classes as
// "TestClass::test_name".
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return parseTestCases(content), nil
}

func parseTestCases(content []byte) []string {
	seen := make(map[string]bool)
	class := ""

	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if m := testClassPattern.FindStringSubmatch(line); m != nil {
			class = m[1]
			continue
		}
		// unindented code ends the current class body
		if line[0] != ' ' && line[0] != '\t' && !strings.HasPrefix(line, "@") {
			class = ""
		}

		m := testFuncPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch {
		case m[1] == "":
			seen[m[2]] = true
		case class != "":
			seen[class+"::"+m[2]] = true
		}
	}

	testCases := make([]string, 0, len(seen))
	for tc := range seen {
		testCases = append(testCases, tc)
	}
	sort.Strings(testCases)
	return testCases
}
