package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists every key in one JSON object on disk. Each change
// rewrites the file atomically.
type FileStore struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// OpenFileStore loads path if it exists. A missing file is an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	fsStore := &FileStore{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fsStore, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fsStore, nil
	}
	if err := json.Unmarshal(data, &fsStore.values); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", path, err)
	}
	if fsStore.values == nil {
		fsStore.values = make(map[string]string)
	}
	return fsStore, nil
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *FileStore) Save(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.values[key]; ok && cur == value {
		return nil
	}
	f.values[key] = value
	return f.flushLocked()
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flushLocked()
}

func (f *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}
	if err := atomicWriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", f.path, err)
	}
	return nil
}

// RenameError wraps a failed rename with the temporary file left behind.
type RenameError struct {
	Err      error
	tempPath string
}

func (e RenameError) Error() string    { return e.Err.Error() }
func (e RenameError) TempPath() string { return e.tempPath }
func (e RenameError) Unwrap() error    { return e.Err }

// atomicWriteFile writes data to a temp file next to filename, syncs it and
// renames it into place.
func atomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-save-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	var success bool
	defer func() {
		if !success {
			if err := os.Remove(tempFile.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Printf("storage: remove temp file %s: %v", tempFile.Name(), err)
			}
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %q: %w", tempFile.Name(), err)
	}
	if err := os.Chmod(tempFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tempFile.Name(), filename); err != nil {
		return RenameError{Err: err, tempPath: tempFile.Name()}
	}
	success = true
	return nil
}
