// Package tabular extracts records from the quotation table
// (分项报价表) found in procurement Word documents. It is the
// table-first alternative to outline scanning: module labels and
// descriptions are read straight out of mapped columns instead of
// being reconstructed from numbered headings.
package tabular

import (
	"errors"
	"strconv"
	"strings"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
)

// ErrNoQuotationTable is returned when nothing marks the document as
// a quotation document: no table header maps and the caption is
// absent from the body text.
var ErrNoQuotationTable = errors.New("no quotation table found")

// QuotationCaption is the section title quotation documents carry
// near their table. Its presence commits a document to the table
// path even when no table header maps.
const QuotationCaption = "分项报价表"

// Header synonyms, matched by substring against the first row.
const (
	headerLevel1  = "功能模块"
	headerLevel2  = "功能子项"
	headerLevel3  = "三级模块"
	headerDesc    = "功能描述"
	headerOrdinal = "序号"
)

// columnMap records the column index of each recognized field, -1
// when the header row does not carry it.
type columnMap struct {
	level1  int
	level2  int
	level3  int
	desc    int
	ordinal int
}

// mapHeader inspects a header row and reports whether the table
// qualifies: at least two cells must map to known fields.
func mapHeader(row []string) (columnMap, bool) {
	cols := columnMap{level1: -1, level2: -1, level3: -1, desc: -1, ordinal: -1}
	mapped := 0
	assign := func(dst *int, i int) {
		if *dst < 0 {
			*dst = i
			mapped++
		}
	}
	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		switch {
		case strings.Contains(cell, headerLevel1):
			assign(&cols.level1, i)
		case strings.Contains(cell, headerLevel2):
			assign(&cols.level2, i)
		case strings.Contains(cell, headerLevel3):
			assign(&cols.level3, i)
		case strings.Contains(cell, headerDesc):
			assign(&cols.desc, i)
		case strings.Contains(cell, headerOrdinal):
			assign(&cols.ordinal, i)
		}
	}
	return cols, mapped >= 2
}

// ExtractRecords reads every qualifying table in the document and
// returns one record per valid data row. Repeated level-1 and level-2
// labels are blanked so the output reads like the outline scanner's
// fill-down suppression.
//
// A table qualifies by its header row; once one has, following tables
// without a header row are read as continuations with the same column
// map. When no table qualifies, the caption decides: a document whose
// body mentions 分项报价表 yields no records but no error either,
// anything else (a captioned document without tables included)
// returns ErrNoQuotationTable.
func ExtractRecords(doc *document.Document) ([]extract.Record, error) {
	var records []extract.Record
	var activeCols columnMap
	found := false

	// Dedup state carries across tables: long quotation tables are
	// often split into continuation tables.
	var prevLevel1, prevLevel2 string

	for _, table := range doc.Tables {
		if len(table.Rows) == 0 {
			continue
		}
		cols, ok := mapHeader(table.Rows[0])
		dataRows := table.Rows[1:]
		if ok {
			activeCols = cols
			found = true
		} else {
			if !found {
				continue
			}
			// Continuation table: no header row, every row is data.
			cols = activeCols
			dataRows = table.Rows
		}

		for _, row := range dataRows {
			if !rowValid(row, cols) {
				continue
			}
			level1 := cellAt(row, cols.level1)
			level2 := cellAt(row, cols.level2)
			level3 := cellAt(row, cols.level3)
			desc := cellAt(row, cols.desc)

			if level1 != "" {
				if level1 == prevLevel1 {
					level1 = ""
				} else {
					prevLevel1 = level1
					// A new module starts a fresh run of sub-items,
					// even when the sub-item text repeats.
					prevLevel2 = ""
				}
			}
			if level2 != "" {
				if level2 == prevLevel2 {
					level2 = ""
				} else {
					prevLevel2 = level2
				}
			}

			if level1 == "" && level2 == "" && level3 == "" && desc == "" {
				continue
			}

			rec := extract.Record{
				Level1Name: level1,
				Level2Name: level2,
				Level3Name: level3,
				SourceFile: doc.SourceFile,
			}
			rec.SetDescription(doc.Class, desc)
			records = append(records, rec)
		}
	}

	if !found {
		if len(doc.Tables) > 0 && doc.BodyContains(QuotationCaption) {
			// The caption names this a quotation document even though
			// its tables are unreadable; there is nothing to fall
			// back to.
			return nil, nil
		}
		return nil, ErrNoQuotationTable
	}
	return records, nil
}

// rowValid keeps rows whose ordinal cell parses as an integer. Tables
// without an ordinal column keep any row with a non-blank label.
func rowValid(row []string, cols columnMap) bool {
	if cols.ordinal >= 0 {
		return isOrdinal(cellAt(row, cols.ordinal))
	}
	return cellAt(row, cols.level1) != "" ||
		cellAt(row, cols.level2) != "" ||
		cellAt(row, cols.level3) != ""
}

// cellAt returns the trimmed cell at idx, or "" when the column is
// unmapped or the row is short (merged cells produce ragged rows).
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isOrdinal accepts 序号 cells such as "3", "３" or "12.", tolerating
// fullwidth digits and a trailing separator. Summary rows like 合计
// fail the check and are skipped.
func isOrdinal(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".。、)）")
	if s == "" {
		return false
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '０' && r <= '９' {
			r = '0' + (r - '０')
		}
		b.WriteRune(r)
	}
	_, err := strconv.Atoi(b.String())
	return err == nil
}
