package extract

import "strings"

// MergeParagraphs joins buffered description lines into paragraph
// text. Blank entries separate paragraphs; lines within a paragraph
// concatenate directly, since Chinese text carries no word spacing;
// paragraphs join with a blank line.
func MergeParagraphs(lines []string) string {
	var paragraphs []string
	var current strings.Builder

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteString(trimmed)
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}
