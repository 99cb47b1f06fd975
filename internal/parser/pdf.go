package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
)

// PDFParser reads PDF files line by line. It tries the Go library's
// row extraction first and can fall back to the pdftotext binary for
// files the library cannot decode (common with scanned-and-reflowed
// Chinese documents).
type PDFParser struct {
	// PdftotextBin enables the fallback when non-empty.
	PdftotextBin string
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// ledongthuc/pdf needs a ReadSeeker+size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "extractor-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	doc := newDocument(filename)
	pages, err := readPDFRows(tmpPath)
	if err != nil || countLines(pages) == 0 {
		if p.PdftotextBin != "" {
			if fbPages, fbErr := readPdftotext(p.PdftotextBin, tmpPath); fbErr == nil {
				pages, err = fbPages, nil
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	for i, lines := range pages {
		lines = cleanLines(lines)
		if len(lines) == 0 {
			continue
		}
		doc.Pages = append(doc.Pages, document.Page{Number: i + 1, Lines: lines})
	}
	return doc, nil
}

// readPDFRows extracts each page's text rows in reading order.
func readPDFRows(path string) ([][]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages [][]string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			pages = append(pages, nil)
			continue
		}
		var lines []string
		for _, row := range rows {
			var b strings.Builder
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			lines = append(lines, b.String())
		}
		pages = append(pages, lines)
	}
	return pages, nil
}

// readPdftotext shells out to pdftotext with layout preserved; pages
// arrive separated by form feeds.
func readPdftotext(bin, path string) ([][]string, error) {
	cmd := exec.Command(bin, "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	var pages [][]string
	for _, pageText := range strings.Split(string(out), "\f") {
		pages = append(pages, strings.Split(pageText, "\n"))
	}
	return pages, nil
}

func countLines(pages [][]string) int {
	n := 0
	for _, lines := range pages {
		for _, line := range lines {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
	}
	return n
}
