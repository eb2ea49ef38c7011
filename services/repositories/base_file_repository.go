package repositories

import (
	"encoding/json"
	"os"
	"sync"
)

// BaseFileRepository provides common flat-file persistence functionality:
// a document path, a mutex serializing in-process read-modify-write cycles
// and an atomic whole-file JSON writer.
type BaseFileRepository struct {
	path string
	mu   sync.Mutex
}

func NewBaseFileRepository(path string) BaseFileRepository {
	return BaseFileRepository{path: path}
}

// Path returns the underlying document file path.
func (r *BaseFileRepository) Path() string {
	return r.path
}

// writeDocument marshals v and replaces the document file atomically via a
// temp file and rename, so readers never observe a partial write. Callers
// must hold the mutex.
func (r *BaseFileRepository) writeDocument(v interface{}) error {
	tempFile := r.path + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, r.path)
}
