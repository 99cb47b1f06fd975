package extract

import "strings"

// SmartMatch reports whether text belongs to the exemplar's numbering
// family: the pattern must match and the candidate's digit sequence
// must be compatible with the exemplar's. It carries no title gate,
// so a line that is nothing but a numbering (or an end marker that is
// the whole line) still matches.
func (m *Matcher) SmartMatch(text string) (ok bool, number, title string) {
	number, title, matched := m.Match(text)
	if !matched {
		return false, "", ""
	}
	if !digitsCompatible(m.sampleDigits, digitRun(text)) {
		return false, "", ""
	}
	return true, number, title
}

// digitsCompatible compares the exemplar's digit sequence against a
// candidate's. Equal sequences match. A candidate that extends the
// exemplar matches: 9.1 covers 9.1.2. The exemplar extending the
// candidate only matches at equal length, so 9.12 does not cover 9.1.
func digitsCompatible(sample, candidate string) bool {
	if candidate == sample {
		return true
	}
	if len(candidate) > len(sample) && strings.HasPrefix(candidate, sample) {
		return true
	}
	if strings.HasPrefix(sample, candidate) && len(sample) == len(candidate) {
		return true
	}
	return false
}
