package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
)

// MarkdownParser reads Markdown via the goldmark AST. Headings and
// the source lines of every other block become plain lines, with a
// blank line between blocks to keep paragraph boundaries.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	var lines []string
	appendBlock := func(blockLines []string) {
		if len(blockLines) == 0 {
			return
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, blockLines...)
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			if t := string(heading.Text(src)); t != "" {
				appendBlock([]string{t})
			}
			continue
		}
		appendBlock(blockLines(n, src))
	}

	doc := newDocument(filename)
	if len(lines) > 0 {
		doc.Pages = []document.Page{{Number: 1, Lines: cleanLines(lines)}}
	}
	return doc, nil
}

// blockLines returns the raw source lines of a block node, falling
// back to its inline text for nodes without line spans.
func blockLines(n ast.Node, src []byte) []string {
	var out []string
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		segs := n.Lines()
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			if line := strings.TrimRight(string(seg.Value(src)), "\n"); line != "" {
				out = append(out, line)
			}
		}
		return out
	}

	var buf bytes.Buffer
	collectInlineText(n, src, &buf)
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func collectInlineText(n ast.Node, src []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		collectInlineText(c, src, buf)
		if c.Type() == ast.TypeBlock {
			buf.WriteByte('\n')
		}
	}
}
