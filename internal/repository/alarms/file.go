package alarms

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pquerna/ffjson/ffjson"

	"github.com/oshokin/hackatime-alarm/internal/config"
)

//go:generate ffjson -nodecoder file.go

// fileFormatVersion is written into every state document.
const fileFormatVersion = 1

// FileRepository persists the snapshot to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

// fileDocument is the on-disk layout of the state file.
type fileDocument struct {
	// Version is the document format version.
	Version int `json:"version"`
	Snapshot
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the snapshot from disk.
func (r *FileRepository) Load(_ context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var doc fileDocument
	if err = ffjson.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	return doc.Snapshot.Clone(), nil
}

// Save writes the snapshot to disk, replacing the previous document.
func (r *FileRepository) Save(_ context.Context, snapshot *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := fileDocument{
		Version:  fileFormatVersion,
		Snapshot: *snapshot,
	}

	data, err := ffjson.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	defer ffjson.Pool(data)

	// Write a sibling file and rename it over the target.
	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}

// Close implements Repository. The file is not kept open.
func (r *FileRepository) Close() error {
	return nil
}
