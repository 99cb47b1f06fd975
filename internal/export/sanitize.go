package export

import (
	"strings"
	"unicode"
)

// Punctuation allowed through CleanCell, everything a procurement
// description legitimately uses. Anything else non-alphanumeric is
// layout noise from the source document.
const keepPunct = ".,，。！？：:()（）-"

// CleanCell prepares a value for a spreadsheet cell: control and
// decorative runes are dropped, whitespace runs collapse to a single
// space, and the result is trimmed. Records keep full fidelity in
// memory and JSON; only the export surface is cleaned.
func CleanCell(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if !keepRune(r) {
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func keepRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune(keepPunct, r)
}
