package pipeline

import (
	"sync"
	"time"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
)

// JobStatus represents the state of an extraction job.
type JobStatus string

const (
	StatusQueued              JobStatus = "queued"
	StatusParsing             JobStatus = "parsing"
	StatusExtracting          JobStatus = "extracting"
	StatusCompleted           JobStatus = "completed"
	StatusCompletedWithErrors JobStatus = "completed_with_errors"
	StatusFailed              JobStatus = "failed"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusCompletedWithErrors || s == StatusFailed
}

// Extraction modes. Auto sends .docx files down the quotation-table
// path and everything else through the outline scan.
const (
	ModeAuto    = "auto"
	ModeOutline = "outline"
	ModeTable   = "table"
)

// ValidMode reports whether m names a known extraction mode. The
// empty string means auto.
func ValidMode(m string) bool {
	return m == "" || m == ModeAuto || m == ModeOutline || m == ModeTable
}

// JobFile is one uploaded document, held in memory until a worker
// picks the job up.
type JobFile struct {
	Name string
	Data []byte
}

// Job tracks one extraction request, which may span several files.
type Job struct {
	mu sync.Mutex

	ID        string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Mode      string    `json:"mode"`
	Class     string    `json:"doc_class"`
	Filenames []string  `json:"filenames"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	files   []JobFile
	samples extract.Samples
	records []extract.Record
	errors  []string
}

// Progress tracks how far a job has come.
type Progress struct {
	TotalFiles     int      `json:"total_files"`
	FilesProcessed int      `json:"files_processed"`
	Records        int      `json:"records"`
	Errors         []string `json:"errors"`
}

// NewJob builds a queued job over the given uploads.
func NewJob(mode, class string, samples extract.Samples, files []JobFile) *Job {
	now := time.Now()
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	if mode == "" {
		mode = ModeAuto
	}
	return &Job{
		ID:        NewJobID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Mode:      mode,
		Class:     class,
		Filenames: names,
		Progress:  Progress{TotalFiles: len(files)},
		CreatedAt: now,
		UpdatedAt: now,
		files:     files,
		samples:   samples,
	}
}

// SetStatus updates job status atomically. Terminal statuses release
// the buffered file payloads.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
	if status.Done() {
		j.files = nil
	}
}

// AddError records a per-file or job-level error.
func (j *Job) AddError(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, msg)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// FileDone marks one more file as processed.
func (j *Job) FileDone() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FilesProcessed++
	j.UpdatedAt = time.Now()
}

// SetRecords stores the merged extraction result.
func (j *Job) SetRecords(records []extract.Record) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = records
	j.Progress.Records = len(records)
	j.UpdatedAt = time.Now()
}

// Records returns the stored result. Callers must not mutate it.
func (j *Job) Records() []extract.Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.records
}

// Files returns the buffered uploads, nil once the job is done.
func (j *Job) Files() []JobFile {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// Samples returns the exemplar set the job was submitted with.
func (j *Job) Samples() extract.Samples {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.samples
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Mode      string    `json:"mode"`
	Class     string    `json:"doc_class"`
	Filenames []string  `json:"filenames"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	names := make([]string, len(j.Filenames))
	copy(names, j.Filenames)
	return JobSnapshot{
		ID:        j.ID,
		Status:    j.Status,
		Phase:     j.Phase,
		Mode:      j.Mode,
		Class:     j.Class,
		Filenames: names,
		Progress: Progress{
			TotalFiles:     j.Progress.TotalFiles,
			FilesProcessed: j.Progress.FilesProcessed,
			Records:        j.Progress.Records,
			Errors:         errs,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// List returns every live job, in no particular order.
func (s *JobStore) List() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
