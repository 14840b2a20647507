// Package fsutil provides the file system primitives used by batch
// conversion: reading sources with metadata, detecting sources edited during
// a run, deriving output paths, and writing outputs atomically.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilSource is returned when a nil Source is passed.
	ErrNilSource = errors.New("nil source")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Source describes an input file as it was when read.
type Source struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the file content.
	Hash [32]byte
}

// ReadFile reads a source file and records its state.
func ReadFile(ctx context.Context, path string) ([]byte, *Source, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &Source{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Changed reports whether the source file differs from when it was read.
// A deleted file counts as changed. Size and modification time are compared
// first; the content hash settles the remaining cases.
func Changed(ctx context.Context, src *Source) (bool, error) {
	if src == nil {
		return false, ErrNilSource
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check source: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(src.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", src.Path, err)
	}

	if !stat.ModTime().Equal(src.ModTime) || stat.Size() != src.Size {
		return true, nil
	}

	content, err := os.ReadFile(src.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", src.Path, err)
	}
	return sha256.Sum256(content) != src.Hash, nil
}

// OutputPath derives the output file for input: the input's base name with
// its extension replaced by ext, placed in outDir, or next to the input
// when outDir is empty.
func OutputPath(input, outDir, ext string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ext

	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(outDir, name)
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
