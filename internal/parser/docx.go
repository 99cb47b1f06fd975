package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
)

// DOCXParser reads .docx files: body paragraphs become the lines of a
// single page, body tables are kept cell by cell for quotation-table
// extraction.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// go-docx needs a ReaderAt+size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "extractor-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	parsed, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := newDocument(filename)
	var lines []string

	for _, item := range parsed.Document.Body.Items {
		switch node := item.(type) {
		case *docx.Paragraph:
			lines = append(lines, paragraphText(node))
		case *docx.Table:
			if tbl := tableCells(node); len(tbl.Rows) > 0 {
				doc.Tables = append(doc.Tables, tbl)
			}
		}
	}

	if len(lines) > 0 {
		doc.Pages = []document.Page{{Number: 1, Lines: lines}}
	}
	return doc, nil
}

// paragraphText concatenates the text runs of one paragraph.
func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// tableCells flattens a docx table into rows of cell text. Paragraphs
// within one cell join with newlines.
func tableCells(tbl *docx.Table) document.Table {
	var out document.Table
	for _, row := range tbl.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var parts []string
			for _, para := range cell.Paragraphs {
				if t := paragraphText(para); t != "" {
					parts = append(parts, t)
				}
			}
			cells = append(cells, strings.Join(parts, "\n"))
		}
		if len(cells) > 0 {
			out.Rows = append(out.Rows, cells)
		}
	}
	return out
}
