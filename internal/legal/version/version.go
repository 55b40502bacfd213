// Package version computes the next semantic version string for a document
// family. The policy is scoped to one (kind, plan) family; versions in
// different families never interact.
package version

import (
	"fmt"
	"regexp"
	"strconv"
)

var versionRE = regexp.MustCompile(`v?(\d+)\.(\d+)`)

// Next derives the next version from the existing version strings of a
// family. Strings that do not look like v<major>.<minor> are ignored as
// noise, matching the behavior accepted documents have relied on since the
// beginning; they are never an error.
func Next(existing []string, isMajor bool) string {
	bestMajor, bestMinor := -1, -1
	for _, raw := range existing {
		m := versionRE.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		major, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		minor, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if major > bestMajor || (major == bestMajor && minor > bestMinor) {
			bestMajor, bestMinor = major, minor
		}
	}

	if bestMajor < 0 {
		return "v1.0"
	}
	if isMajor {
		return fmt.Sprintf("v%d.0", bestMajor+1)
	}
	return fmt.Sprintf("v%d.%d", bestMajor, bestMinor+1)
}
