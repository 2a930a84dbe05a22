// Package filesystem enumerates input documents on the local disk.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Lister implements the interface.
var _ driven.FileLister = (*Lister)(nil)

// Lister walks a directory tree and returns every regular file.
// Symbolic links to directories are not followed.
type Lister struct{}

// NewLister creates a new filesystem lister.
func NewLister() *Lister {
	return &Lister{}
}

// ResolvePath converts a file:// URI to a local path.
// Bare paths pass through unchanged.
func ResolvePath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// List returns the files below root in lexical order.
// Unreadable subdirectories are logged and skipped.
func (l *Lister) List(ctx context.Context, root string) ([]string, error) {
	root = ResolvePath(root)

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInputDirMissing, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInputDirMissing, root)
	}

	logger.Info("Listing all files in directory: %s", root)

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logger.Warn("Cannot read %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		switch {
		case d.Type().IsRegular():
			files = append(files, path)
		case d.Type()&fs.ModeSymlink != 0:
			if fileLink(path) {
				files = append(files, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	logger.Info("Files found in %s: %d", root, len(files))
	return files, nil
}

// fileLink reports whether a symlink should be listed as a file. Links to
// directories are not followed. Dangling links are listed so the failed
// read shows up in the report.
func fileLink(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		logger.Warn("Dangling link %s: %v", path, err)
		return true
	}
	return info.Mode().IsRegular()
}
