package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/utils"
	"github.com/spf13/afero"
)

// Service copies matched entries into a destination tree
type Service struct {
	fs afero.Fs
}

// NewService creates a new export service
func NewService(fs afero.Fs) *Service {
	return &Service{fs: fs}
}

// ExportOptions contains configuration for export operations
type ExportOptions struct {
	DestinationPath string
	Overwrite       bool
}

// ExportSummary describes what an export copied
type ExportSummary struct {
	FileCount       int
	DirCount        int
	TotalSize       int64
	SourcePath      string
	DestinationPath string
}

// ExportResults copies every matched entry of rs below opts.DestinationPath,
// keeping each entry's position relative to the query root. Matched
// directories are recreated empty; their contents are copied only if they
// matched too.
func (s *Service) ExportResults(rs *models.ResultSet, opts ExportOptions) (*ExportSummary, error) {
	if rs == nil || rs.Query == nil {
		return nil, fmt.Errorf("invalid result set")
	}
	if err := ValidateExportPath(opts.DestinationPath); err != nil {
		return nil, err
	}

	if err := checkDistinct(rs.Query.Root, opts.DestinationPath); err != nil {
		return nil, err
	}

	summary := &ExportSummary{
		SourcePath:      rs.Query.Root,
		DestinationPath: opts.DestinationPath,
	}

	if err := s.fs.MkdirAll(opts.DestinationPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	for _, e := range rs.Entries {
		rel, err := relativePath(rs.Query.Root, e.Path)
		if err != nil {
			return summary, err
		}
		destPath := filepath.Join(opts.DestinationPath, rel)

		if e.IsDir {
			if err := s.fs.MkdirAll(destPath, 0755); err != nil {
				return summary, fmt.Errorf("failed to create directory %s: %w", destPath, err)
			}
			summary.DirCount++
			continue
		}

		if s.sameFile(e.Path, destPath) {
			utils.Warning("skipping %s: source and destination are the same file", e.Path)
			continue
		}

		if err := s.exportFile(e.Path, destPath, opts); err != nil {
			utils.Error("export of %s to %s failed: %v", e.Path, destPath, err)
			return summary, fmt.Errorf("failed to export file %s: %w", e.Path, err)
		}
		summary.FileCount++
		summary.TotalSize += e.Size
	}

	return summary, nil
}

// checkDistinct rejects copying a tree onto itself, which would truncate
// every source file before reading it
func checkDistinct(root, dest string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dest, err)
	}
	if absRoot == absDest {
		return fmt.Errorf("destination %s is the starting point %s", dest, root)
	}
	return nil
}

// sameFile reports whether src and dest name one file, by path or by identity
func (s *Service) sameFile(src, dest string) bool {
	absSrc, errSrc := filepath.Abs(src)
	absDest, errDest := filepath.Abs(dest)
	if errSrc == nil && errDest == nil && absSrc == absDest {
		return true
	}

	srcInfo, err := s.fs.Stat(src)
	if err != nil {
		return false
	}
	destInfo, err := s.fs.Stat(dest)
	if err != nil {
		return false
	}
	return os.SameFile(srcInfo, destInfo)
}

// relativePath locates path inside root. The root itself maps to ".".
func relativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to place %s relative to %s: %w", path, root, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", path, root)
	}
	return rel, nil
}

func (s *Service) exportFile(sourcePath, destPath string, opts ExportOptions) error {
	destDir := filepath.Dir(destPath)
	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	if !opts.Overwrite {
		exists, err := afero.Exists(s.fs, destPath)
		if err != nil {
			return fmt.Errorf("failed to check if destination exists: %w", err)
		}
		if exists {
			return fmt.Errorf("destination file exists and overwrite is disabled: %s", destPath)
		}
	}

	return s.copyFile(sourcePath, destPath)
}

// copyFile copies contents, then mode and modification time when the
// filesystem allows it
func (s *Service) copyFile(sourcePath, destPath string) error {
	srcFile, err := s.fs.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to get source file info: %w", err)
	}

	destFile, err := s.fs.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := destFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}

	if err := s.fs.Chmod(destPath, srcInfo.Mode()); err != nil {
		utils.Warning("failed to preserve mode of %s: %v", destPath, err)
	}
	if err := s.fs.Chtimes(destPath, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		utils.Warning("failed to preserve times of %s: %v", destPath, err)
	}

	return nil
}

// ValidateExportPath performs basic validation on the export path
func ValidateExportPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path cannot be empty")
	}
	return nil
}
