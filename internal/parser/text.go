package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
)

// TextParser reads plain text files as one page of raw lines.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := newDocument(filename)
	if len(lines) > 0 {
		doc.Pages = []document.Page{{Number: 1, Lines: cleanLines(lines)}}
	}
	return doc, nil
}
