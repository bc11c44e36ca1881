// Package store persists the high score between runs.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// record is the on-disk layout of the high-score file.
type record struct {
	HighScore int       `yaml:"high_score"`
	Name      string    `yaml:"name,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// File keeps the high score in a small YAML file. A missing file reads as zero.
// Safe for concurrent use.
type File struct {
	mu   sync.Mutex
	path string
	rec  record
}

// Open reads the high score at path. The file is created on the first write.
func Open(path string) (*File, error) {
	f := &File{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading high score: %w", err)
	}
	if err := yaml.Unmarshal(data, &f.rec); err != nil {
		return nil, fmt.Errorf("parsing high score %s: %w", path, err)
	}
	if f.rec.HighScore < 0 {
		f.rec.HighScore = 0
	}
	return f, nil
}

// Path returns the backing file.
func (f *File) Path() string { return f.path }

// HighScore returns the stored score.
func (f *File) HighScore() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec.HighScore
}

// Name returns who set the stored score, if recorded.
func (f *File) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec.Name
}

// SetHighScore writes score to disk.
func (f *File) SetHighScore(score int) error {
	return f.Record(score, "")
}

// Record writes score along with the name that set it. The file is replaced
// atomically so a crash never leaves a truncated score behind.
func (f *File) Record(score int, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := record{HighScore: score, Name: name, UpdatedAt: time.Now().UTC()}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling high score: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating high score directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("writing high score: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing high score: %w", err)
	}

	f.rec = rec
	return nil
}
