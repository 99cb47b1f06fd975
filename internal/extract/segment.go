package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxCellLength bounds one description cell. Longer text is
// split into continuation records so spreadsheet cells stay readable.
const DefaultMaxCellLength = 500

// Numbering shapes that mark natural split points inside long
// description text, in priority order. The first shape that occurs
// anywhere in the text wins.
var segmentMarkers = []*regexp.Regexp{
	regexp.MustCompile(`[一二三四五六七八九十]+、`),
	regexp.MustCompile(`[（(][一二三四五六七八九十]+[）)]`),
	regexp.MustCompile(`[（(]\d+[）)]`),
	regexp.MustCompile(`\d+、`),
	regexp.MustCompile(`\d+\.`),
	regexp.MustCompile(`\d+）`),
	regexp.MustCompile(`\d+\)`),
	regexp.MustCompile(`[a-z]+\)`),
	regexp.MustCompile(`[A-Z]+\.`),
	regexp.MustCompile(`i+\)`),
}

// SplitDescription breaks text into chunks of at most maxLength
// runes. It partitions at embedded numbering markers first, re-splits
// oversized chunks on sentence boundaries, and keeps a single
// over-long sentence whole rather than cutting mid-sentence. The
// result is never empty and loses no characters beyond boundary
// whitespace. maxLength <= 0 uses DefaultMaxCellLength.
func SplitDescription(text string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = DefaultMaxCellLength
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return []string{text}
	}

	var chunks []string
	for _, marker := range segmentMarkers {
		locs := marker.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		chunks = splitAtMarkers(text, locs)
		break
	}
	if chunks == nil {
		chunks = splitSentences(text, maxLength)
	}

	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c == "" {
			continue
		}
		if utf8.RuneCountInString(c) <= maxLength {
			out = append(out, c)
			continue
		}
		out = append(out, splitSentences(c, maxLength)...)
	}
	if len(out) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return out
}

// splitAtMarkers partitions text at each marker start. Text before
// the first marker, when non-blank, becomes the first chunk.
func splitAtMarkers(text string, locs [][]int) []string {
	var chunks []string
	if head := strings.TrimSpace(text[:locs[0][0]]); head != "" {
		chunks = append(chunks, head)
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunks = append(chunks, strings.TrimSpace(text[loc[0]:end]))
	}
	return chunks
}

// splitSentences packs whole sentences into chunks of at most
// maxLength runes. The terminator stays with its sentence; a single
// sentence over the limit is kept whole.
func splitSentences(text string, maxLength int) []string {
	var sentences []string
	var sb strings.Builder
	for _, r := range text {
		sb.WriteRune(r)
		if r == '。' || r == '！' || r == '？' {
			sentences = append(sentences, sb.String())
			sb.Reset()
		}
	}
	if sb.Len() > 0 {
		sentences = append(sentences, sb.String())
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0
	for _, sent := range sentences {
		n := utf8.RuneCountInString(sent)
		if curLen > 0 && curLen+n > maxLength {
			chunks = append(chunks, strings.TrimSpace(cur.String()))
			cur.Reset()
			curLen = 0
		}
		cur.WriteString(sent)
		curLen += n
	}
	if cur.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(cur.String()))
	}
	if len(chunks) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return chunks
}

// ExpandLongDescriptions splits any record whose description exceeds
// maxLength runes into consecutive records, one per chunk, each
// carrying the original label columns and source file. Order is
// preserved and a second pass is a no-op.
func ExpandLongDescriptions(records []Record, maxLength int) []Record {
	if maxLength <= 0 {
		maxLength = DefaultMaxCellLength
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		desc := r.Description()
		if utf8.RuneCountInString(desc) <= maxLength {
			out = append(out, r)
			continue
		}
		contract := r.ContractDescription != ""
		for _, part := range SplitDescription(desc, maxLength) {
			nr := r
			if contract {
				nr.ContractDescription = part
			} else {
				nr.BidDescription = part
			}
			out = append(out, nr)
		}
	}
	return out
}
