package document

import (
	"path/filepath"
	"strings"
)

// Class says which description column a document's text belongs to.
type Class int

const (
	ClassBid Class = iota
	ClassContract
)

func (c Class) String() string {
	if c == ClassContract {
		return "contract"
	}
	return "bid"
}

// Classify infers the class from the file name. Procurement packages
// name contract volumes with 合同 somewhere in the file name; anything
// else is treated as bid material.
func Classify(filename string) Class {
	if strings.Contains(filepath.Base(filename), "合同") {
		return ClassContract
	}
	return ClassBid
}

// ParseClass maps a user-supplied class name to a Class. Empty and
// "auto" defer to filename classification. The bool reports whether
// the name was recognized.
func ParseClass(name, filename string) (Class, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Classify(filename), true
	case "bid":
		return ClassBid, true
	case "contract":
		return ClassContract, true
	}
	return ClassBid, false
}

// ValidClassName reports whether name is an accepted class override.
func ValidClassName(name string) bool {
	_, ok := ParseClass(name, "")
	return ok
}

// Document is the line-oriented view of one parsed source file.
type Document struct {
	SourceFile string
	Class      Class
	Pages      []Page
	Tables     []Table
}

// Page holds the text lines of one source page in reading order.
// Sources without page structure use a single page numbered 1.
type Page struct {
	Number int
	Lines  []string
}

// Table is a grid of cell text, kept for quotation-table extraction.
type Table struct {
	Rows [][]string
}

// AllLines returns every page's lines concatenated in page order.
func (d *Document) AllLines() []string {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	lines := make([]string, 0, n)
	for _, p := range d.Pages {
		lines = append(lines, p.Lines...)
	}
	return lines
}

// LineCount returns the total number of lines across all pages.
func (d *Document) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// BodyContains reports whether any line contains the substring.
func (d *Document) BodyContains(sub string) bool {
	for _, p := range d.Pages {
		for _, line := range p.Lines {
			if strings.Contains(line, sub) {
				return true
			}
		}
	}
	return false
}
