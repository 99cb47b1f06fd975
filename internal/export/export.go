// Package export renders extracted records as spreadsheet files, the
// delivery format procurement reviewers actually open. XLSX output is
// styled for reading; CSV is the plain interchange fallback.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
)

// columnHeaders is the fixed export header row, in column order.
var columnHeaders = []string{
	"一级模块名称",
	"二级模块名称",
	"三级模块名称",
	"标书描述",
	"合同描述",
	"来源文件",
}

// recordCells returns the six export columns of a record, sanitized
// for spreadsheet output.
func recordCells(r extract.Record) []string {
	return []string{
		CleanCell(r.Level1Name),
		CleanCell(r.Level2Name),
		CleanCell(r.Level3Name),
		CleanCell(r.BidDescription),
		CleanCell(r.ContractDescription),
		CleanCell(r.SourceFile),
	}
}

// uniquePath returns path unchanged when it is free, otherwise the
// first of name_1.ext, name_2.ext, ... that does not exist yet.
func uniquePath(path string) string {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate
		}
	}
}
