// Package sink provides output destinations for encoded generation units.
package sink

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// OutputSink receives encoded unit content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the relative path.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes to a directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files.
	// If false, writing an existing file fails.
	Overwrite bool
}

// NewFilesystemSink creates a FilesystemSink writing under root.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:      root,
		Mode:      0644,
		Overwrite: true,
	}
}

// WriteFile writes content to path within the root directory, creating
// parent directories as needed. Writes are atomic (temp file + rename).
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return errors.Wrap(err, "resolving root directory")
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return errors.Wrap(err, "resolving path")
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return errors.Newf("path escapes root directory: %q", path)
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating directories")
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tempFile, err := os.CreateTemp(dir, ".stubgen-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tempPath := tempFile.Name()

	_, writeErr := tempFile.Write(content)
	closeErr := tempFile.Close()

	// Leftover temp files keep the .stubgen-*.tmp prefix.
	cleanup := func() { _ = os.Remove(tempPath) }

	if writeErr != nil {
		cleanup()
		return errors.Wrap(writeErr, "writing temp file")
	}
	if closeErr != nil {
		cleanup()
		return errors.Wrap(closeErr, "closing temp file")
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		cleanup()
		return errors.Wrap(err, "setting file mode")
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tempPath, fullPath); err != nil {
			cleanup()
			return errors.Wrap(err, "renaming temp file")
		}
		return nil
	}

	// os.Link fails atomically when the target exists.
	if err := os.Link(tempPath, fullPath); err != nil {
		cleanup()
		if errors.Is(err, os.ErrExist) {
			return errors.Newf("file already exists: %q", path)
		}
		return errors.Wrap(err, "creating file")
	}
	_ = os.Remove(tempPath)
	return nil
}

// MemorySink stores encoded units in memory.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = append([]byte(nil), content...)
	return nil
}

// Get returns a copy of the content at path, or nil.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil
	}
	return append([]byte(nil), content...)
}

// Paths returns the stored paths, sorted.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Reset clears all stored files.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
}

// ValidatePath checks that path is relative, slash-separated, clean and
// free of ".." components.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive letters, checked on every platform.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	cleaned := filepath.ToSlash(filepath.Clean(filepath.ToSlash(path)))
	if cleaned != filepath.ToSlash(path) {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
