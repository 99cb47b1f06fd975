package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
)

const sheetName = "提取结果"

// Rune count per wrapped display line, used to estimate row heights
// for the 45-width description columns.
const runesPerLine = 30

// WriteXLSX streams a styled workbook holding the records to w.
func WriteXLSX(w io.Writer, records []extract.Record) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path, appending _1, _2, ... when
// the name is taken. It returns the path actually written.
func SaveXLSX(path string, records []extract.Record) (string, error) {
	f, err := buildWorkbook(records)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path = uniquePath(path)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func buildWorkbook(records []extract.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}
	if err := fillWorkbook(f, records); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, records []extract.Record) error {
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "C", 15},
		{"D", "E", 45},
		{"F", "F", 10},
	}
	for _, c := range widths {
		if err := f.SetColWidth(sheetName, c.from, c.to, c.width); err != nil {
			return err
		}
	}

	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return fmt.Errorf("data style: %w", err)
	}

	header := make([]interface{}, len(columnHeaders))
	for i, h := range columnHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", headerStyle); err != nil {
		return err
	}

	for i, r := range records {
		row := i + 2
		cells := recordCells(r)
		values := make([]interface{}, len(cells))
		longest := 0
		for j, c := range cells {
			values[j] = c
			if n := utf8.RuneCountInString(c); n > longest {
				longest = n
			}
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if err := f.SetRowHeight(sheetName, row, rowHeight(longest)); err != nil {
			return err
		}
	}
	if len(records) > 0 {
		last := fmt.Sprintf("F%d", len(records)+1)
		if err := f.SetCellStyle(sheetName, "A2", last, dataStyle); err != nil {
			return err
		}
	}
	return nil
}

// rowHeight estimates the height needed for a row whose longest cell
// holds n runes, assuming wrapping at runesPerLine and capping very
// long descriptions at ten display lines.
func rowHeight(n int) float64 {
	lines := (n + runesPerLine - 1) / runesPerLine
	if lines < 1 {
		lines = 1
	}
	if lines > 10 {
		lines = 10
	}
	h := float64(lines*18 + 10)
	if h < 20 {
		h = 20
	}
	return h
}
