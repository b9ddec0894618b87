// Package save persists the encyclopedia, progress, run, and records stores as
// whole-file JSON documents in a data directory.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// File names inside the data directory.
const (
	EncyclopediaFile = "encyclopedia.json"
	ProgressFile     = "progress.json"
	RunFile          = "run.json"
	RecordsFile      = "records.json"
)

// AppName names the data directory under the user's data home.
const AppName = "cavedelve"

// DefaultDir returns $XDG_DATA_HOME/cavedelve, falling back to ~/.local/share/cavedelve.
func DefaultDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName), nil
}

// Store reads and writes the save files of one data directory.
// Missing or malformed files load as empty defaults; write errors are returned.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// LoadEncyclopedia loads the encyclopedia store.
func (s *Store) LoadEncyclopedia() Encyclopedia {
	var e Encyclopedia
	if !s.read(EncyclopediaFile, &e) {
		return Encyclopedia{}
	}
	return e
}

// SaveEncyclopedia overwrites the encyclopedia store.
func (s *Store) SaveEncyclopedia(e Encyclopedia) error {
	return s.write(EncyclopediaFile, e)
}

// LoadProgress loads the progress store.
func (s *Store) LoadProgress() Progress {
	var p Progress
	if !s.read(ProgressFile, &p) {
		return Progress{}
	}
	return p
}

// SaveProgress overwrites the progress store.
func (s *Store) SaveProgress(p Progress) error {
	return s.write(ProgressFile, p)
}

// DeleteProgress removes the progress store.
func (s *Store) DeleteProgress() error {
	return s.remove(ProgressFile)
}

// HasRun reports whether a run file exists.
func (s *Store) HasRun() bool {
	_, err := os.Stat(s.path(RunFile))
	return err == nil
}

// LoadRun loads the run store. The second result is false when no usable run exists.
func (s *Store) LoadRun() (Run, bool) {
	var r Run
	if !s.read(RunFile, &r) {
		return Run{}, false
	}
	return r, true
}

// SaveRun overwrites the run store.
func (s *Store) SaveRun(r Run) error {
	return s.write(RunFile, r)
}

// DeleteRun removes the run store.
func (s *Store) DeleteRun() error {
	return s.remove(RunFile)
}

// LoadRecords loads the records store.
func (s *Store) LoadRecords() Records {
	var r Records
	if !s.read(RecordsFile, &r) {
		return Records{}
	}
	return r
}

// SaveRecords overwrites the records store.
func (s *Store) SaveRecords(r Records) error {
	return s.write(RecordsFile, r)
}

// read decodes name into v. A missing file is silent; a corrupt one is logged.
func (s *Store) read(name string, v any) bool {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("save: cannot read %s: %v", name, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("save: %s is malformed, using defaults: %v", name, err)
		return false
	}
	return true
}

// write replaces name with the indented JSON of v via a temp file and rename.
func (s *Store) write(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) remove(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}
