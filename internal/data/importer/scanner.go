package importer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glucodoc/glucodoc/internal/util"
)

// FileScanner finds device export files below a directory.
type FileScanner struct {
	baseDir string
}

// NewFileScanner creates a scanner rooted at baseDir.
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{baseDir: baseDir}
}

// Scan walks the directory tree and returns all .xml file paths, sorted.
// Unreadable entries are skipped, not fatal.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebugf("skip path (error): %s - %v", path, err)
			return nil
		}
		if info.IsDir() {
			dirCount++
			return nil
		}
		totalCount++
		if strings.HasSuffix(strings.ToLower(path), ".xml") {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	util.LogDebugf("export scan completed: duration %v, %d directories, %d files, %d XML exports",
		time.Since(start), dirCount, totalCount, len(files))
	return files, err
}
