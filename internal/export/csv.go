package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
)

// WriteCSV writes the records as UTF-8 CSV with a byte order mark so
// Excel picks the right encoding when double-clicked.
func WriteCSV(w io.Writer, records []extract.Record) error {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columnHeaders); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(recordCells(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the records to path, appending _1, _2, ... when the
// name is taken. It returns the path actually written.
func SaveCSV(path string, records []extract.Record) (string, error) {
	path = uniquePath(path)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
