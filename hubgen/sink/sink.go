// Package sink provides output destinations for generated code.
package sink

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alexflint/go-filemutex"
)

// OutputSink receives generated file content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the specified path.
	// The path is relative; the sink determines the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// BackupSuffix is appended to an existing output file while it is being
// replaced.
const BackupSuffix = ".bak"

// FilesystemSink writes to a directory on the local filesystem.
//
// Replacing an existing file is done under an inter-process lock: the new
// content is written to a temp file, the old file is moved to a backup,
// and the temp file is renamed into place. The backup is restored if the
// replace fails and removed once it succeeds.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files.
	// If false, returns an error when a file exists.
	Overwrite bool

	rename func(oldpath, newpath string) error
}

// NewFilesystemSink creates a new FilesystemSink writing to the specified root directory.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:      root,
		Mode:      0644,
		Overwrite: true,
	}
}

// LockPath returns the lock file guarding writes to absPath. It lives in the
// system temp directory so the output directory stays free of lock files.
func LockPath(absPath string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(absPath)))
	return filepath.Join(os.TempDir(), "hubgen-"+hex.EncodeToString(sum[:8])+".lock")
}

// WriteFile writes content to path within the root directory.
// It creates parent directories as needed.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return fmt.Errorf("path escapes root directory: %q", path)
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	lock, err := filemutex.New(LockPath(absPath))
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer lock.Close()
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %q: %w", path, err)
	}
	defer lock.Unlock()

	tempPath, err := s.writeTemp(dir, content)
	if err != nil {
		return err
	}
	cleanupTempFile := func() {
		_ = os.Remove(tempPath)
	}

	if err := ctx.Err(); err != nil {
		cleanupTempFile()
		return err
	}

	if !s.Overwrite {
		// os.Link fails with EEXIST if the target exists.
		if err := os.Link(tempPath, fullPath); err != nil {
			cleanupTempFile()
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("file already exists: %q", path)
			}
			return fmt.Errorf("failed to create file: %w", err)
		}
		cleanupTempFile()
		return nil
	}

	if err := s.replace(tempPath, fullPath); err != nil {
		cleanupTempFile()
		return err
	}
	return nil
}

func (s *FilesystemSink) writeTemp(dir string, content []byte) (string, error) {
	tempFile, err := os.CreateTemp(dir, ".hubgen-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	_, writeErr := tempFile.Write(content)
	closeErr := tempFile.Close()
	switch {
	case writeErr != nil:
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("failed to write temp file: %w", writeErr)
	case closeErr != nil:
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("failed to close temp file: %w", closeErr)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}
	return tempPath, nil
}

// replace moves tempPath to fullPath, keeping a backup of any existing file
// until the move has succeeded.
func (s *FilesystemSink) replace(tempPath, fullPath string) error {
	rename := s.rename
	if rename == nil {
		rename = os.Rename
	}

	backupPath := fullPath + BackupSuffix
	hasBackup := false
	if _, err := os.Stat(fullPath); err == nil {
		if err := rename(fullPath, backupPath); err != nil {
			return fmt.Errorf("failed to back up existing file: %w", err)
		}
		hasBackup = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat existing file: %w", err)
	}

	if err := rename(tempPath, fullPath); err != nil {
		if hasBackup {
			if restoreErr := os.Rename(backupPath, fullPath); restoreErr != nil {
				return fmt.Errorf("failed to replace file: %w (restoring backup: %v)", err, restoreErr)
			}
		}
		return fmt.Errorf("failed to replace file: %w", err)
	}

	if hasBackup {
		if err := os.Remove(backupPath); err != nil {
			return fmt.Errorf("failed to remove backup: %w", err)
		}
	}
	return nil
}

// MemorySink stores generated files in memory.
// All operations are thread-safe.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates a new MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		files: make(map[string][]byte),
	}
}

// WriteFile writes content to the in-memory store.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	contentCopy := make([]byte, len(content))
	copy(contentCopy, content)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = contentCopy
	return nil
}

// Files returns a copy of all written files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		contentCopy := make([]byte, len(content))
		copy(contentCopy, content)
		result[path] = contentCopy
	}
	return result
}

// Get returns the content of a single file, or nil if not found.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil
	}

	contentCopy := make([]byte, len(content))
	copy(contentCopy, content)
	return contentCopy
}

// WriterSink writes generated files to a stream, one after another.
// It backs dry runs that print output instead of writing it.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer

	// Header, when set, is written before each file's content.
	Header func(path string) string
}

// NewWriterSink creates a WriterSink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteFile writes content to the underlying writer.
func (s *WriterSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Header != nil {
		if _, err := io.WriteString(s.w, s.Header(path)); err != nil {
			return err
		}
	}
	_, err := s.w.Write(content)
	return err
}

// ValidatePath checks if a path is valid for output.
// Paths must be relative (no leading /), use / as separator,
// not contain .. components, and be clean (no ./, duplicate /).
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}

	if filepath.IsAbs(path) {
		return errors.New("absolute paths not allowed")
	}

	// Windows drive letters are rejected on every platform.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}

	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}

	cleaned := filepath.Clean(filepath.ToSlash(path))
	if cleaned != filepath.ToSlash(path) {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}

	return nil
}
