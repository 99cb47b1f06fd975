package parser

import (
	"regexp"
	"strings"
)

// Page-layout artifacts that survive text extraction. The outline
// scanner would reject these lines anyway; removing them here keeps
// descriptions clean when they land inside a collected block.
var pageArtifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^第\s*\d+\s*页$`),
	regexp.MustCompile(`^共\s*\d+\s*页$`),
	regexp.MustCompile(`(?i)^page\s*\d+(\s*of\s*\d+)?$`),
	regexp.MustCompile(`^-\s*\d+\s*-$`),
	regexp.MustCompile(`^\d{1,3}$`),
}

// isPageArtifact reports whether a line is nothing but a page number
// or similar layout furniture.
func isPageArtifact(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, p := range pageArtifactPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// cleanLines drops page artifacts and trims trailing whitespace while
// keeping blank lines, which mark paragraph breaks downstream.
func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if isPageArtifact(line) {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t\r"))
	}
	return out
}
