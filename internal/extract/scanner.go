package extract

import (
	"fmt"
	"strings"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
)

// Samples is the exemplar set driving a scan: one heading exemplar
// per outline level plus an optional end-of-section marker. Level1 is
// required; Level3's presence switches how body text is collected.
type Samples struct {
	Level1 string `json:"level1"`
	Level2 string `json:"level2,omitempty"`
	Level3 string `json:"level3,omitempty"`
	End    string `json:"end,omitempty"`
}

// Validate checks that the set can drive a scan at all.
func (s Samples) Validate() error {
	if strings.TrimSpace(s.Level1) == "" {
		return fmt.Errorf("level-1 sample is required")
	}
	return nil
}

// HasLevel3 reports whether a third outline level is configured.
func (s Samples) HasLevel3() bool {
	return strings.TrimSpace(s.Level3) != ""
}

// scanner holds the compiled matchers and the mutable state of one
// hierarchical scan. One value per scan; never reused.
type scanner struct {
	lvl1m, lvl2m, lvl3m, endm *Matcher
	hasLvl3                   bool

	sourceFile string
	class      document.Class

	extracting bool

	curLvl1, curLvl2, curLvl3 string
	lastLvl2                  string
	inLvl2, inLvl3            bool

	// Fill-down suppression: an ancestor label goes out once, on the
	// first record that closes under it, then blanks until a new
	// ancestor opens.
	lvl1Filled, lvl2Filled bool
	lvl1ToFill, lvl2ToFill string

	desc    []string
	records []Record
}

func newScanner(samples Samples, sourceFile string, class document.Class) (*scanner, error) {
	if err := samples.Validate(); err != nil {
		return nil, err
	}
	s := &scanner{sourceFile: sourceFile, class: class}

	var err error
	if s.lvl1m, err = Compile(samples.Level1); err != nil {
		return nil, fmt.Errorf("level-1 sample: %w", err)
	}
	if strings.TrimSpace(samples.Level2) != "" {
		if s.lvl2m, err = Compile(samples.Level2); err != nil {
			return nil, fmt.Errorf("level-2 sample: %w", err)
		}
	}
	if samples.HasLevel3() {
		if s.lvl3m, err = Compile(samples.Level3); err != nil {
			return nil, fmt.Errorf("level-3 sample: %w", err)
		}
		s.hasLvl3 = true
	}
	if strings.TrimSpace(samples.End) != "" {
		if s.endm, err = Compile(samples.End); err != nil {
			return nil, fmt.Errorf("end sample: %w", err)
		}
	}
	return s, nil
}

// CompileSamples synthesizes every matcher in the set and reports the
// first bad exemplar. Callers use it to fail fast before any document
// is read.
func CompileSamples(samples Samples) error {
	_, err := newScanner(samples, "", document.ClassBid)
	return err
}

// Extract runs the sample-driven hierarchical scan over lines in
// order and returns the flattened outline records. The description of
// each record lands in the column the class calls for.
func Extract(lines []string, samples Samples, sourceFile string, class document.Class) ([]Record, error) {
	s, err := newScanner(samples, sourceFile, class)
	if err != nil {
		return nil, err
	}
	for _, raw := range lines {
		s.line(raw)
	}
	s.finish()
	return dropBlank(s.records), nil
}

// ExtractDocument scans a parsed document with its own source name
// and class.
func ExtractDocument(doc *document.Document, samples Samples) ([]Record, error) {
	return Extract(doc.AllLines(), samples, doc.SourceFile, doc.Class)
}

// line classifies one raw line. Matching always runs against the
// whitespace-stripped text; labels and body text keep the trimmed
// original.
func (s *scanner) line(raw string) {
	text := stripSpace(raw)
	if text == "" {
		// Blank lines inside an open node mark paragraph breaks.
		if s.collecting() {
			s.desc = append(s.desc, "")
		}
		return
	}

	// End marker outranks everything: stop extracting, keep whatever
	// is buffered for the final flush.
	if s.endm != nil {
		if ok, _, _ := s.endm.SmartMatch(text); ok {
			s.extracting = false
			s.inLvl2 = false
			s.inLvl3 = false
			return
		}
	}

	// Before the first level-1 heading, everything else is front
	// matter and is skipped.
	if !s.extracting {
		if ok, _, _ := s.lvl1m.SmartMatch(text); ok {
			s.start(strings.TrimSpace(raw))
		}
		return
	}

	if s.hasLvl3 && s.lvl3m != nil {
		if number, title, ok := s.lvl3m.MatchHeading(text); ok {
			s.openLvl3(headingLabel(number, title))
			return
		}
	}

	if s.lvl2m != nil {
		if number, title, ok := s.lvl2m.MatchHeading(text); ok {
			s.openLvl2(headingLabel(number, title))
			return
		}
	}

	if number, title, ok := s.lvl1m.MatchHeading(text); ok {
		s.openLvl1(headingLabel(number, title))
		return
	}

	// Body text. A line that fits a heading pattern but failed its
	// gates is dropped, not buffered.
	if s.collecting() && !s.looksLikeHeading(text) {
		s.desc = append(s.desc, strings.TrimSpace(raw))
	}
}

// start begins extraction at the first matching level-1 heading. The
// whole trimmed line is the label, not just the matched groups.
func (s *scanner) start(label string) {
	s.extracting = true
	s.curLvl1 = label
	s.curLvl2, s.curLvl3 = "", ""
	s.lastLvl2 = ""
	s.inLvl2, s.inLvl3 = false, false
	s.lvl1Filled, s.lvl2Filled = false, false
	s.lvl1ToFill, s.lvl2ToFill = label, ""
}

func (s *scanner) openLvl3(label string) {
	s.flushLvl3()
	s.curLvl3 = label
	s.inLvl3 = true
	s.refill()
}

func (s *scanner) openLvl2(label string) {
	if s.hasLvl3 {
		s.flushLvl3()
		s.curLvl2 = label
		s.lastLvl2 = label
		s.curLvl3 = ""
		s.lvl2Filled = false
		s.inLvl2, s.inLvl3 = true, false
		s.refill()
		return
	}

	// Without a level-3 sample the level-2 node itself carries the
	// text: closing it emits the buffer under the previous label.
	s.flushLvl2()
	s.curLvl2 = label
	s.lastLvl2 = label
	s.inLvl2 = true
	s.lvl2ToFill = label
	if s.lvl1Filled {
		s.lvl1ToFill = ""
	} else {
		s.lvl1ToFill = s.curLvl1
	}
}

func (s *scanner) openLvl1(label string) {
	if s.hasLvl3 {
		s.flushLvl3()
	} else {
		s.flushLvl2()
	}
	s.curLvl1 = label
	s.curLvl2, s.curLvl3 = "", ""
	s.lastLvl2 = ""
	s.inLvl2, s.inLvl3 = false, false
	s.lvl1Filled, s.lvl2Filled = false, false
	s.lvl1ToFill, s.lvl2ToFill = label, ""
}

// flushLvl3 emits the open level-3 node if it buffered any text, then
// marks both ancestors filled.
func (s *scanner) flushLvl3() {
	if !s.inLvl3 || len(s.desc) == 0 {
		return
	}
	merged := MergeParagraphs(s.desc)
	s.desc = nil
	if merged == "" {
		return
	}
	s.emit(s.lvl1ToFill, s.lvl2ToFill, s.curLvl3, merged)
	s.lvl1Filled = true
	s.lvl2Filled = true
}

// flushLvl2 emits the buffered text of the open level-2 node under
// the previous level-2 label. Only meaningful when no level-3 sample
// is configured.
func (s *scanner) flushLvl2() {
	if s.inLvl3 || len(s.desc) == 0 {
		return
	}
	merged := MergeParagraphs(s.desc)
	s.desc = nil
	if merged == "" {
		return
	}
	s.emit(s.lvl1ToFill, s.lastLvl2, "", merged)
	s.lvl1Filled = true
}

// refill recomputes the pending backfill labels after a flush or a
// node change, honoring the suppression flags.
func (s *scanner) refill() {
	if s.lvl1Filled {
		s.lvl1ToFill = ""
	} else {
		s.lvl1ToFill = s.curLvl1
	}
	if s.lvl2Filled {
		s.lvl2ToFill = ""
	} else {
		s.lvl2ToFill = s.curLvl2
	}
}

// collecting reports whether body text may be buffered right now:
// with a level-3 sample only inside an open level-3 node, without one
// only inside an open level-2 node.
func (s *scanner) collecting() bool {
	if !s.extracting {
		return false
	}
	if s.hasLvl3 {
		return s.inLvl3
	}
	return s.inLvl2
}

// looksLikeHeading reports whether the stripped text fits any
// configured heading pattern at all, gates aside.
func (s *scanner) looksLikeHeading(text string) bool {
	if s.lvl1m.Matches(text) {
		return true
	}
	if s.lvl2m != nil && s.lvl2m.Matches(text) {
		return true
	}
	if s.lvl3m != nil && s.lvl3m.Matches(text) {
		return true
	}
	return false
}

// finish flushes whatever node is still open at end of input, the
// same way a boundary crossing would, suppression included. The
// activity flags may already be cleared by an end marker; buffered
// text still goes out.
func (s *scanner) finish() {
	if len(s.desc) == 0 {
		return
	}
	merged := MergeParagraphs(s.desc)
	s.desc = nil
	if merged == "" {
		return
	}
	if s.hasLvl3 && s.inLvl3 {
		s.emit(s.lvl1ToFill, s.lvl2ToFill, s.curLvl3, merged)
		return
	}
	s.emit(s.lvl1ToFill, s.lvl2ToFill, "", merged)
}

func (s *scanner) emit(lvl1, lvl2, lvl3, desc string) {
	r := Record{
		Level1Name: lvl1,
		Level2Name: lvl2,
		Level3Name: lvl3,
		SourceFile: s.sourceFile,
	}
	r.SetDescription(s.class, desc)
	s.records = append(s.records, r)
}

// headingLabel joins the numbering and title groups the way headings
// read: "9.1 模块A".
func headingLabel(number, title string) string {
	return strings.TrimSpace(number + " " + title)
}
