package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const statusFileName = "status.json"

// ParseStatus summarizes the parse stage.
type ParseStatus struct {
	Files   int `json:"files"`
	Records int `json:"records"`
	Padded  int `json:"padded"`
	Skipped int `json:"skipped"`
}

// DecodeStatus summarizes the decode stage, including the unresolved codes
// found during lookup, per field.
type DecodeStatus struct {
	Files           int                       `json:"files"`
	Records         int                       `json:"records"`
	Unresolved      map[string]map[string]int `json:"unresolved,omitempty"`
	UnresolvedTotal int                       `json:"unresolved_total"`
}

// TallyStatus summarizes the aggregation stages.
type TallyStatus struct {
	Records int      `json:"records"`
	Undated int      `json:"undated"`
	Outputs []string `json:"outputs"`
}

// Status is the persisted summary of one pipeline run.
type Status struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Parse      ParseStatus  `json:"parse"`
	Decode     DecodeStatus `json:"decode"`
	Tally      TallyStatus  `json:"tally"`
}

// StatusRepository persists run summaries as a JSON file in a directory.
type StatusRepository struct {
	dir string
}

// NewStatusRepository creates a StatusRepository for the given directory.
func NewStatusRepository(dir string) *StatusRepository {
	return &StatusRepository{dir: dir}
}

// Load retrieves the last saved status from disk. Returns an empty status
// and nil error if no status file exists.
func (r *StatusRepository) Load() (Status, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Status{}, nil
		}
		return Status{}, err
	}

	var st Status
	if err := json.Unmarshal(data, &st); err != nil {
		return Status{}, err
	}
	return st, nil
}

// Save persists the status atomically. Uses atomic write (write to temp
// file, then rename) to prevent corruption.
func (r *StatusRepository) Save(st Status) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the status file.
func (r *StatusRepository) Path() string {
	return filepath.Join(r.dir, statusFileName)
}
