package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/parser"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/tabular"
)

// Worker processes extraction jobs one at a time.
type Worker struct {
	stats      *extract.ScanStats
	log        *slog.Logger
	maxCellLen int
	pdftotext  string
}

func NewWorker(stats *extract.ScanStats, log *slog.Logger, maxCellLen int, pdftotext string) *Worker {
	return &Worker{
		stats:      stats,
		log:        log,
		maxCellLen: maxCellLen,
		pdftotext:  pdftotext,
	}
}

// Process runs the full extraction for a job: every file is parsed
// and scanned, per-file failures are recorded without failing the
// batch, and the merged records land on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	files := job.Files()
	opts := ExtractOptions{
		Samples:      job.Samples(),
		Mode:         job.Mode,
		Class:        job.Class,
		MaxCellLen:   w.maxCellLen,
		PdftotextBin: w.pdftotext,
	}

	// A bad exemplar fails the whole job before any document is read.
	if job.Mode != ModeTable && strings.TrimSpace(opts.Samples.Level1) != "" {
		if err := extract.CompileSamples(opts.Samples); err != nil {
			log.Error("invalid samples", "error", err)
			job.AddError(err.Error())
			job.SetStatus(StatusFailed, "invalid samples")
			return
		}
	}

	var merged []extract.Record
	failures := 0
	for _, f := range files {
		select {
		case <-ctx.Done():
			job.AddError("canceled: " + ctx.Err().Error())
			job.SetStatus(StatusFailed, "canceled")
			return
		default:
		}

		start := time.Now()
		job.SetStatus(StatusParsing, "parsing "+f.Name)
		doc, err := ParseFile(f, opts)

		var records []extract.Record
		if err == nil {
			job.SetStatus(StatusExtracting, "extracting "+f.Name)
			records, err = ExtractDoc(doc, opts)
		}
		if w.stats != nil {
			lines := 0
			if doc != nil {
				lines = doc.LineCount()
			}
			w.stats.RecordScan(time.Since(start), len(records), lines, err != nil)
		}
		job.FileDone()

		if err != nil {
			failures++
			job.AddError(fmt.Sprintf("%s: %s", f.Name, err))
			log.Error("file failed", "file", f.Name, "error", err)
			continue
		}
		merged = append(merged, records...)
		log.Info("file extracted",
			"file", f.Name,
			"records", len(records),
			"lines", doc.LineCount(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	job.SetRecords(merged)
	switch {
	case len(files) > 0 && failures == len(files):
		job.SetStatus(StatusFailed, "all files failed")
	case failures > 0:
		job.SetStatus(StatusCompletedWithErrors, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("job done", "status", job.Snapshot().Status, "records", len(merged), "failures", failures)
}

// ExtractOptions configures a single-file extraction. The CLI and the
// worker share this path so both surfaces behave identically.
type ExtractOptions struct {
	Samples      extract.Samples
	Mode         string
	Class        string
	MaxCellLen   int
	PdftotextBin string
}

// ParseFile picks a parser by extension and reads the document,
// applying the forced class when the options carry one.
func ParseFile(f JobFile, opts ExtractOptions) (*document.Document, error) {
	p, err := parser.ForFile(f.Name)
	if err != nil {
		return nil, err
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.PdftotextBin = opts.PdftotextBin
	}

	doc, err := p.Parse(bytes.NewReader(f.Data), f.Name)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if cls, ok := document.ParseClass(opts.Class, f.Name); ok {
		doc.Class = cls
	}
	return doc, nil
}

// ExtractDoc runs the extraction mode the document resolves to and
// segments over-long descriptions.
func ExtractDoc(doc *document.Document, opts ExtractOptions) ([]extract.Record, error) {
	records, err := extractByMode(doc, opts)
	if err != nil {
		return nil, err
	}
	maxLen := opts.MaxCellLen
	if maxLen <= 0 {
		maxLen = extract.DefaultMaxCellLength
	}
	return extract.ExpandLongDescriptions(records, maxLen), nil
}

// ExtractFile is ParseFile followed by ExtractDoc. It returns the
// records and the number of lines read.
func ExtractFile(f JobFile, opts ExtractOptions) ([]extract.Record, int, error) {
	doc, err := ParseFile(f, opts)
	if err != nil {
		return nil, 0, err
	}
	records, err := ExtractDoc(doc, opts)
	return records, doc.LineCount(), err
}

func extractByMode(doc *document.Document, opts ExtractOptions) ([]extract.Record, error) {
	switch resolveMode(opts.Mode, doc.SourceFile) {
	case ModeTable:
		return tabular.ExtractRecords(doc)
	case ModeAuto:
		// Auto on a .docx: quotation table first, outline scan as the
		// fallback when the document has none and samples allow it.
		records, err := tabular.ExtractRecords(doc)
		if errors.Is(err, tabular.ErrNoQuotationTable) && strings.TrimSpace(opts.Samples.Level1) != "" {
			return extract.ExtractDocument(doc, opts.Samples)
		}
		return records, err
	default:
		return extract.ExtractDocument(doc, opts.Samples)
	}
}

// resolveMode turns the requested mode into the concrete path for one
// file. Auto keeps its name only for .docx, where the quotation table
// is tried first.
func resolveMode(mode, filename string) string {
	switch mode {
	case ModeTable, ModeOutline:
		return mode
	}
	if strings.EqualFold(filepath.Ext(filename), ".docx") {
		return ModeAuto
	}
	return ModeOutline
}
