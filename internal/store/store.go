package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Data file names managed by the store. Each holds a JSON array of records and
// is rewritten wholesale on every mutation.
const (
	SchoolsFile           = "schools.json"
	SubmissionsFile       = "submissions.json"
	FilesFile             = "files.json"
	EvaluationResultsFile = "evaluation_results.json"
	EvaluationDetailsFile = "evaluation_details.json"
)

// DataFiles lists every file the store manages, in backup order.
func DataFiles() []string {
	return []string{
		SchoolsFile,
		SubmissionsFile,
		FilesFile,
		EvaluationResultsFile,
		EvaluationDetailsFile,
	}
}

// Store persists collections as flat JSON files under a single data directory.
// Writes replace the whole file atomically via a temp file and rename; there is
// no finer-grained transaction support.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory when missing.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: data directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path resolves a managed file name to its on-disk location.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Ensure seeds every managed data file with an empty array when absent.
func (s *Store) Ensure() error {
	for _, name := range DataFiles() {
		if _, err := os.Stat(s.Path(name)); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("store: stat %s: %w", name, err)
		}
		if err := s.Save(name, []struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a managed file into out. A missing file is not an error; out is
// left untouched so callers keep their zero-value slice.
func (s *Store) Load(name string, out interface{}) error {
	raw, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("store: decode %s: %w", name, err)
	}
	return nil
}

// Save rewrites a managed file with the given collection. The payload is
// written to a temp file first and moved into place so readers never observe a
// partially written file.
func (s *Store) Save(name string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: replace %s: %w", name, err)
	}
	return nil
}

// NextID returns one more than the highest id seen so far, starting at 1.
func NextID(ids []uint) uint {
	var max uint
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
