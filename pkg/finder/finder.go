package finder

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// TemplateFinder is responsible for finding template source files in a
// directory tree.
type TemplateFinder interface {
	// FindTemplates finds all files under dir matching any of the given
	// doublestar glob patterns.
	FindTemplates(ctx context.Context, dir string, patterns []string) ([]FileInfo, error)
}

// FileInfo represents one found template source file.
type FileInfo struct {
	Path    string
	Content []byte
}

// DefaultFinder is the default implementation of TemplateFinder, walking an
// afero filesystem.
type DefaultFinder struct {
	fs afero.Fs
}

// NewDefaultFinder creates a new DefaultFinder over the OS filesystem.
func NewDefaultFinder() *DefaultFinder {
	return &DefaultFinder{fs: afero.NewOsFs()}
}

// NewFinderWithFs creates a finder over an arbitrary filesystem, which
// tests use with an in-memory one.
func NewFinderWithFs(fsys afero.Fs) *DefaultFinder {
	return &DefaultFinder{fs: fsys}
}

// FindTemplates implements TemplateFinder
func (f *DefaultFinder) FindTemplates(ctx context.Context, dir string, patterns []string) ([]FileInfo, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	var found []FileInfo
	err := afero.Walk(f.fs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return errors.Errorf("matching %q against %q: %w", rel, pattern, err)
			}
			if !ok {
				continue
			}

			content, err := afero.ReadFile(f.fs, path)
			if err != nil {
				return errors.Errorf("reading %s: %w", path, err)
			}
			found = append(found, FileInfo{Path: path, Content: content})
			break
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", dir, err)
	}

	return found, nil
}
