package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/parser"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/pipeline"
)

// extractRequest is the shared form surface of the extract endpoints:
// heading exemplars plus mode and class overrides.
type extractRequest struct {
	samples extract.Samples
	mode    string
	class   string
}

func readExtractRequest(r *http.Request) (extractRequest, error) {
	req := extractRequest{
		samples: extract.Samples{
			Level1: strings.TrimSpace(r.FormValue("level1_sample")),
			Level2: strings.TrimSpace(r.FormValue("level2_sample")),
			Level3: strings.TrimSpace(r.FormValue("level3_sample")),
			End:    strings.TrimSpace(r.FormValue("end_sample")),
		},
		mode:  r.FormValue("mode"),
		class: r.FormValue("doc_class"),
	}
	if !pipeline.ValidMode(req.mode) {
		return req, fmt.Errorf("unknown mode %q", req.mode)
	}
	if !document.ValidClassName(req.class) {
		return req, fmt.Errorf("unknown doc_class %q", req.class)
	}
	// Table mode ignores samples; outline cannot run without the
	// level-1 exemplar.
	if req.mode == pipeline.ModeOutline {
		if err := req.samples.Validate(); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := readExtractRequest(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}
	file, err := s.readUpload(fhs[0])
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.submitJob(w, req, []pipeline.JobFile{file}, nil)
}

func (s *Server) handleExtractBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := readExtractRequest(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fhs := r.MultipartForm.File["files"]
	if len(fhs) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	// Unreadable uploads are skipped with an error on the job; the
	// batch proceeds with whatever is usable.
	var files []pipeline.JobFile
	var skipped []string
	for _, fh := range fhs {
		file, err := s.readUpload(fh)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %s", sanitizeFilename(fh.Filename), err))
			continue
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		jsonError(w, "no usable files: "+strings.Join(skipped, "; "), http.StatusBadRequest)
		return
	}

	s.submitJob(w, req, files, skipped)
}

func (s *Server) submitJob(w http.ResponseWriter, req extractRequest, files []pipeline.JobFile, skipped []string) {
	job := pipeline.NewJob(req.mode, req.class, req.samples, files)
	for _, msg := range skipped {
		job.AddError(msg)
	}

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"files":    len(files),
		"skipped":  len(skipped),
		"poll_url": "/api/extract/" + job.ID,
	})
}

// readUpload pulls one uploaded file into memory, enforcing the size
// cap and the supported-extension check.
func (s *Server) readUpload(fh *multipart.FileHeader) (pipeline.JobFile, error) {
	name := sanitizeFilename(fh.Filename)
	if !parser.IsSupportedExtension(name) {
		return pipeline.JobFile{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(name))
	}

	f, err := fh.Open()
	if err != nil {
		return pipeline.JobFile{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return pipeline.JobFile{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return pipeline.JobFile{}, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return pipeline.JobFile{Name: name, Data: data}, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
