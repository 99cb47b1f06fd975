package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// numberTail tolerates the separators that trail a heading numeral:
// dots (both widths), whitespace including U+3000, and the
// enumeration comma.
const numberTail = `[.\s\x{3000}．、]*`

// Exemplar shapes with dedicated patterns, checked in order against
// the whole trimmed exemplar before falling back to the generic
// rune-class builder.
var (
	dottedDecimalShape = regexp.MustCompile(`^\d+(\.\d+)+\.?$`)
	numberParenShape   = regexp.MustCompile(`^\d+[）)]$`)
	parenNumberShape   = regexp.MustCompile(`^[（(]\d+[）)]$`)
	parenCJKShape      = regexp.MustCompile(`^[（(][` + cjkNumeralsCore + `]+[）)]$`)
	numberDotShape     = regexp.MustCompile(`^\d+\.$`)
)

// Matcher classifies candidate lines against the numbering scheme of
// a single exemplar heading. A compiled Matcher is immutable and safe
// for concurrent use.
type Matcher struct {
	re           *regexp.Regexp
	sample       string
	sampleDigits string

	// expectedDigits is the exemplar's digit count, set only by the
	// dotted-decimal shape. Candidates with more digits are rejected
	// as headings (page numbers, dates, stray numerals).
	expectedDigits int

	// simpleNumbered marks the bare N） and N. shapes, whose loose
	// patterns need the digit-delta gate.
	simpleNumbered bool
}

// Compile synthesizes a Matcher from one exemplar heading such as
// "9.1", "（一）", "1）" or "第一章". The synthesized pattern always has
// two groups: the numbering part and the rest of the line.
func Compile(sample string) (*Matcher, error) {
	trimmed := strings.TrimSpace(sample)
	if trimmed == "" {
		return nil, fmt.Errorf("empty sample")
	}

	m := &Matcher{sample: trimmed, sampleDigits: digitRun(trimmed)}

	var pattern string
	switch {
	case dottedDecimalShape.MatchString(trimmed):
		pattern = `^(\d+(?:\.\d+)+` + numberTail + `)(.*)$`
		m.expectedDigits = len(m.sampleDigits)
	case numberParenShape.MatchString(trimmed):
		pattern = `^(\d+[)）])(.*)$`
		m.simpleNumbered = true
	case parenNumberShape.MatchString(trimmed):
		pattern = `^([(（]\d+[)）])(.*)$`
	case parenCJKShape.MatchString(trimmed):
		pattern = `^([(（][` + cjkNumeralsCore + `]+[)）])(.*)$`
	case numberDotShape.MatchString(trimmed):
		pattern = `^(\d+\.)(.*)$`
		m.simpleNumbered = true
	default:
		pattern = genericPattern(trimmed)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern for sample %q: %w", trimmed, err)
	}
	m.re = re
	return m, nil
}

// genericPattern generalizes an arbitrary exemplar one rune-class run
// at a time: numerals widen to their class, Chinese words widen to a
// bounded wildcard, punctuation widens to its width-insensitive pair.
func genericPattern(sample string) string {
	frags := make([]string, 0, 8)
	for _, tok := range tokenize(stripSpace(sample)) {
		switch tok.kind {
		case tokenDigits:
			frags = append(frags, `\d+`)
		case tokenCJKNumeral:
			frags = append(frags, `[`+cjkNumeralsFull+`]+`)
		case tokenParen:
			frags = append(frags, `[（）()]`)
		case tokenBracket:
			frags = append(frags, `[【】]`)
		case tokenCJKWord:
			frags = append(frags, fmt.Sprintf(`.{1,%d}`, utf8.RuneCountInString(tok.text)+3))
		default:
			frags = append(frags, regexp.QuoteMeta(tok.text))
		}
	}
	// A trailing literal dot folds into the separator tail.
	for len(frags) > 0 && frags[len(frags)-1] == `\.` {
		frags = frags[:len(frags)-1]
	}

	var b strings.Builder
	b.WriteString(`^(`)
	for _, f := range frags {
		b.WriteString(f)
	}
	b.WriteString(numberTail)
	b.WriteString(`)(.*)$`)
	return b.String()
}

// Sample returns the exemplar the matcher was built from.
func (m *Matcher) Sample() string { return m.sample }

// Pattern returns the synthesized expression, for logging.
func (m *Matcher) Pattern() string { return m.re.String() }

// Match runs only the pattern, returning the numbering and rest
// groups. Text should already have its whitespace stripped.
func (m *Matcher) Match(text string) (number, rest string, ok bool) {
	groups := m.re.FindStringSubmatch(text)
	if groups == nil {
		return "", "", false
	}
	return groups[1], groups[2], true
}

// Matches reports whether text fits the raw pattern, ignoring gates.
func (m *Matcher) Matches(text string) bool {
	return m.re.MatchString(text)
}

// MatchHeading matches a candidate heading and applies the validation
// gates: the title part must be non-empty, and the candidate's digit
// count must pass the matcher's digit gates. Returns the numbering
// and title groups on success.
func (m *Matcher) MatchHeading(text string) (number, title string, ok bool) {
	number, title, ok = m.Match(text)
	if !ok {
		return "", "", false
	}
	if strings.TrimSpace(title) == "" {
		return "", "", false
	}
	candidate := digitRun(text)
	if m.expectedDigits > 0 && len(candidate) > m.expectedDigits {
		return "", "", false
	}
	if m.simpleNumbered && len(candidate) > len(m.sampleDigits)+2 {
		return "", "", false
	}
	return number, title, true
}
