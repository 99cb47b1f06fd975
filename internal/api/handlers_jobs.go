package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/export"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/pipeline"
)

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// completedJob fetches a job and verifies its records are ready.
// On any other outcome it writes the error response and returns nil.
func (s *Server) completedJob(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	job, err := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return nil
	}
	status := job.Snapshot().Status
	if status != pipeline.StatusCompleted && status != pipeline.StatusCompletedWithErrors {
		jsonError(w, fmt.Sprintf("records not available (status %s)", status), http.StatusNotFound)
		return nil
	}
	return job
}

func (s *Server) handleJobRecords(w http.ResponseWriter, r *http.Request) {
	job := s.completedJob(w, r)
	if job == nil {
		return
	}
	records := job.Records()
	if records == nil {
		records = []extract.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":  job.ID,
		"count":   len(records),
		"records": records,
	})
}

func (s *Server) handleJobDownload(w http.ResponseWriter, r *http.Request) {
	job := s.completedJob(w, r)
	if job == nil {
		return
	}
	records := job.Records()

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", attachment("提取结果.xlsx"))
		if err := export.WriteXLSX(w, records); err != nil {
			s.log.Error("xlsx download failed", "job_id", job.ID, "error", err)
		}
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment("提取结果.csv"))
		if err := export.WriteCSV(w, records); err != nil {
			s.log.Error("csv download failed", "job_id", job.ID, "error", err)
		}
	default:
		jsonError(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
	}
}

// attachment builds a Content-Disposition value carrying an ASCII
// fallback next to the UTF-8 file name.
func attachment(name string) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf(`attachment; filename="records%s"; filename*=UTF-8''%s`, ext, url.PathEscape(name))
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.orchestrator.ListJobs()
	snaps := make([]pipeline.JobSnapshot, 0, len(jobs))
	for _, j := range jobs {
		snaps = append(snaps, j.Snapshot())
	}
	// Newest first.
	sort.Slice(snaps, func(i, k int) bool {
		return snaps[i].CreatedAt.After(snaps[k].CreatedAt)
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count": len(snaps),
		"jobs":  snaps,
	})
}
