package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-eld-log/internal/util"
)

// DefaultExtensions are the log file types picked up by a scan.
var DefaultExtensions = []string{".json", ".jsonl"}

// FileScanner finds log files under a directory
type FileScanner struct {
	baseDir    string
	extensions []string
}

// NewFileScanner creates a scanner for baseDir matching DefaultExtensions.
func NewFileScanner(baseDir string, extensions ...string) *FileScanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &FileScanner{
		baseDir:    baseDir,
		extensions: normalized,
	}
}

// Matches reports whether path has one of the scanner's extensions.
func (s *FileScanner) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range s.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Scan walks the directory and returns matching files in lexical order.
// Unreadable entries are skipped. A missing base directory is an error.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()

	info, err := os.Stat(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.baseDir, err)
	}
	if !info.IsDir() {
		if s.Matches(s.baseDir) {
			return []string{s.baseDir}, nil
		}
		return nil, fmt.Errorf("scan %s: not a directory or log file", s.baseDir)
	}

	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebugf("Start scanning directory: %s", s.baseDir)

	err = filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebugf("Skip file (error): %s - %v", path, err)
			return nil
		}

		if info.IsDir() {
			if path != s.baseDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			dirCount++
			return nil
		}

		totalCount++
		if s.Matches(path) {
			files = append(files, path)
		}
		return nil
	})

	util.LogDebugf("File scan completed: duration %v, scanned %d directories, %d files, found %d log files",
		time.Since(start), dirCount, totalCount, len(files))

	return files, err
}
