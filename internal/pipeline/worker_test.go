package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/parser"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var outlineText = []byte(
	"9.1 模块A\n说明文字1\n9.1.1 子项\n细节A\n9.2 模块B\n细节B\n")

func outlineSamples() extract.Samples {
	return extract.Samples{Level1: "9.1", Level2: "9.1.1"}
}

func TestExtractFile_OutlineScan(t *testing.T) {
	f := JobFile{Name: "标书.txt", Data: outlineText}
	records, lines, err := ExtractFile(f, ExtractOptions{Samples: outlineSamples()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines != 6 {
		t.Errorf("expected 6 lines read, got %d", lines)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Level1Name != "9.1 模块A" || records[0].Level2Name != "9.1.1 子项" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Level2Name != "9.2 模块B" || records[1].BidDescription != "细节B" {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestExtractFile_UnsupportedExtension(t *testing.T) {
	f := JobFile{Name: "archive.zip", Data: []byte("x")}
	_, _, err := ExtractFile(f, ExtractOptions{Samples: outlineSamples()})
	if !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestExtractDoc_TableMode(t *testing.T) {
	doc := &document.Document{
		SourceFile: "报价.docx",
		Tables: []document.Table{{
			Rows: [][]string{
				{"序号", "功能模块", "功能描述"},
				{"1", "用户中心", "支持注册登录。"},
			},
		}},
	}
	records, err := ExtractDoc(doc, ExtractOptions{Mode: ModeTable})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Level1Name != "用户中心" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestExtractDoc_AutoFallsBackToOutline(t *testing.T) {
	// A .docx without a quotation table falls back to the outline
	// scan when samples are available.
	doc := &document.Document{
		SourceFile: "标书.docx",
		Pages: []document.Page{{Number: 1, Lines: []string{
			"9.1 模块A", "细节A",
		}}},
	}
	records, err := ExtractDoc(doc, ExtractOptions{Mode: ModeAuto, Samples: extract.Samples{Level1: "9.1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		// Level-1 alone collects nothing, so no records, but no error
		// either: the fallback path ran.
		t.Errorf("expected no records from level-1-only scan, got %+v", records)
	}
}

func TestResolveMode(t *testing.T) {
	cases := []struct {
		mode, file, want string
	}{
		{ModeAuto, "标书.docx", ModeAuto},
		{"", "标书.docx", ModeAuto},
		{ModeAuto, "标书.txt", ModeOutline},
		{ModeAuto, "扫描件.pdf", ModeOutline},
		{ModeOutline, "标书.docx", ModeOutline},
		{ModeTable, "报价.pdf", ModeTable},
	}
	for _, tc := range cases {
		if got := resolveMode(tc.mode, tc.file); got != tc.want {
			t.Errorf("resolveMode(%q, %q) = %q, want %q", tc.mode, tc.file, got, tc.want)
		}
	}
}

func TestWorkerProcess_Completes(t *testing.T) {
	stats := extract.NewScanStats(time.Hour)
	w := NewWorker(stats, testLogger(), 500, "")
	job := NewJob(ModeOutline, "auto", outlineSamples(), []JobFile{
		{Name: "标书.txt", Data: outlineText},
	})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected %q, got %q (errors: %v)", StatusCompleted, snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.FilesProcessed != 1 {
		t.Errorf("expected 1 file processed, got %d", snap.Progress.FilesProcessed)
	}
	if snap.Progress.Records != 2 {
		t.Errorf("expected 2 records, got %d", snap.Progress.Records)
	}
	if got := stats.Snapshot().Count; got != 1 {
		t.Errorf("expected 1 stats sample, got %d", got)
	}
}

func TestWorkerProcess_PartialFailure(t *testing.T) {
	w := NewWorker(nil, testLogger(), 500, "")
	job := NewJob(ModeOutline, "auto", outlineSamples(), []JobFile{
		{Name: "标书.txt", Data: outlineText},
		{Name: "broken.zip", Data: []byte("x")},
	})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompletedWithErrors {
		t.Fatalf("expected %q, got %q", StatusCompletedWithErrors, snap.Status)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", snap.Progress.Errors)
	}
	if snap.Progress.Records != 2 {
		t.Errorf("expected records from the good file, got %d", snap.Progress.Records)
	}
}

func TestWorkerProcess_AllFilesFailed(t *testing.T) {
	w := NewWorker(nil, testLogger(), 500, "")
	job := NewJob(ModeOutline, "auto", extract.Samples{}, []JobFile{
		{Name: "标书.txt", Data: outlineText},
	})

	// Outline mode with no level-1 sample: the only file errors, so
	// the job fails.
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected %q, got %q", StatusFailed, snap.Status)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", snap.Progress.Errors)
	}
}

func TestWorkerProcess_CanceledContext(t *testing.T) {
	w := NewWorker(nil, testLogger(), 500, "")
	job := NewJob(ModeOutline, "auto", outlineSamples(), []JobFile{
		{Name: "标书.txt", Data: outlineText},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Process(ctx, job)

	if got := job.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected %q, got %q", StatusFailed, got)
	}
}
