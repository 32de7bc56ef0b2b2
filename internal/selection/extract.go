package selection

import (
	"sort"
	"strings"
)

// separators split advisory text into tokens. Brackets and parentheses
// separate the two halves of a markdown link.
const separators = "\n\r\t ,;:|()[]"

// noise is trimmed from both ends of a token: markdown, bullets, ASCII and
// typographic quotes, brackets and sentence punctuation.
const noise = "`'\"“”‘’„«»‹›*-+•·#>()[]{}<>.!?\t\r\n "

// Extraction is the outcome of scanning one advisory response.
type Extraction struct {
	Accepted []string // validated paths, sorted
	Rejected []string // well-formed candidates that failed validation, sorted
}

// Extractor recovers test paths from free text. The text is untrusted:
// every candidate is checked against the Policy and the filesystem.
type Extractor struct {
	policy Policy
	fs     Checker
}

// NewExtractor creates an Extractor
func NewExtractor(policy Policy, fs Checker) *Extractor {
	return &Extractor{policy: policy, fs: fs}
}

// Extract returns the sorted, deduplicated test paths found in text that
// exist on disk. Malformed or empty text yields an empty result.
func (e *Extractor) Extract(text string) []string {
	return e.Inspect(text).Accepted
}

// Inspect is Extract that also reports the rejected candidates.
func (e *Extractor) Inspect(text string) Extraction {
	accepted := make(map[string]struct{})
	rejected := make(map[string]struct{})

	for _, token := range strings.FieldsFunc(text, isSeparator) {
		candidate, ok := e.candidate(token)
		if !ok {
			continue
		}
		if e.policy.Allows(candidate) && e.fs.Exists(candidate) {
			accepted[candidate] = struct{}{}
		} else {
			rejected[candidate] = struct{}{}
		}
	}

	return Extraction{Accepted: sortedKeys(accepted), Rejected: sortedKeys(rejected)}
}

// candidate cleans one token and cuts it down to the part starting at the
// tests directory marker.
func (e *Extractor) candidate(token string) (string, bool) {
	token = strings.Trim(token, noise)
	if i := strings.Index(token, e.policy.Marker()); i > 0 {
		token = token[i:]
	}
	// noise fused to the end of the path, e.g. "tests/test_a.py`."
	token = strings.TrimRight(token, noise)
	if !e.policy.HasShape(token) {
		return "", false
	}
	return token, true
}

func isSeparator(r rune) bool {
	return strings.ContainsRune(separators, r)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
