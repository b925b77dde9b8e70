package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"videograb/pkg/logger"
	"videograb/pkg/validator"

	"go.uber.org/zap"
)

const maxFilenameLength = 200

// SavedFile describes a completed download on disk
type SavedFile struct {
	Path string
	Size int64
}

// Manager places downloaded media inside a single output directory
type Manager struct {
	dir string
}

// NewManager creates a new storage manager rooted at dir
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// EnsureDir ensures the output directory exists
func (m *Manager) EnsureDir() error {
	return os.MkdirAll(m.dir, 0755)
}

// PathFor returns the destination for a title/quality pair, guaranteed to
// stay inside the output directory.
func (m *Manager) PathFor(title, quality, ext string) (string, error) {
	name := validator.SanitizeFilename(title)
	if quality != "" {
		name += "-" + validator.SanitizeFilename(quality)
	}
	if ext == "" {
		ext = "mp4"
	}
	filename := validator.TruncateFilename(name+"."+strings.TrimPrefix(ext, "."), maxFilenameLength)

	absDir, err := filepath.Abs(m.dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	full, err := filepath.Abs(filepath.Join(absDir, filepath.Base(filename)))
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	if !strings.HasPrefix(full, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %q escapes %q", full, absDir)
	}
	return full, nil
}

// Save writes a download through fill into a ".part" file and renames it into
// place once fill succeeds. Partial files are removed on any failure.
func (m *Manager) Save(title, quality, ext string, fill func(w io.Writer) (int64, error)) (*SavedFile, error) {
	if err := m.EnsureDir(); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	path, err := m.PathFor(title, quality, ext)
	if err != nil {
		return nil, err
	}

	partPath := path + ".part"
	f, err := os.Create(partPath)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	size, fillErr := fill(f)
	closeErr := f.Close()
	if fillErr == nil {
		fillErr = closeErr
	}
	if fillErr != nil {
		if err := os.Remove(partPath); err != nil && !os.IsNotExist(err) {
			logger.Logger.Error("Failed to remove partial file", zap.String("path", partPath), zap.Error(err))
		}
		return nil, fillErr
	}

	if err := os.Rename(partPath, path); err != nil {
		os.Remove(partPath)
		return nil, fmt.Errorf("finalizing file: %w", err)
	}

	logger.Logger.Info("File saved", zap.String("path", path), zap.Int64("size", size))
	return &SavedFile{Path: path, Size: size}, nil
}
