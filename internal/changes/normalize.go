// Package changes produces the changed-file listing a selection run starts from.
package changes

import "strings"

// NoChanges is the listing returned when no changed paths remain.
const NoChanges = "no files changed"

// Normalize rewrites a VCS listing into the execution root's frame by
// stripping a leading "<base>/" from every non-empty line. Lines without the
// prefix are kept as they are. If nothing remains it returns NoChanges.
func Normalize(raw, base string) string {
	base = strings.Trim(base, "/")
	prefix := base + "/"

	var normalized []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if base != "" && strings.HasPrefix(line, prefix) {
			line = line[len(prefix):]
			if line == "" {
				continue
			}
		}
		normalized = append(normalized, line)
	}

	if len(normalized) == 0 {
		return NoChanges
	}
	return strings.Join(normalized, "\n")
}

// Split turns a normalized listing into an ordered, deduplicated set of paths.
func Split(listing string) []string {
	if strings.TrimSpace(listing) == NoChanges {
		return nil
	}

	var paths []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		paths = append(paths, line)
	}
	return paths
}
