package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/data/parser"
	"github.com/penwyp/go-eld-log/internal/data/scanner"
	"github.com/penwyp/go-eld-log/internal/data/store"
	"github.com/penwyp/go-eld-log/internal/util"
)

// ErrNoFiles is returned when a scan finds nothing to parse.
var ErrNoFiles = errors.New("no log files found")

// Source loads the raw daily log set. Every call reloads.
type Source interface {
	Load(ctx context.Context) (model.DailyLogSet, error)
	Describe() string
}

// FileSource reads JSON and JSONL files from a file or directory.
type FileSource struct {
	path    string
	scanner *scanner.FileScanner
	parser  *parser.Parser
}

func NewFileSource(path string, concurrency int, loc *time.Location) *FileSource {
	return &FileSource{
		path:    path,
		scanner: scanner.NewFileScanner(path),
		parser:  parser.NewParser(concurrency, loc),
	}
}

// Paths returns the watched root, for file watchers.
func (s *FileSource) Paths() []string {
	return []string{s.path}
}

// Matches reports whether path is a file this source would read.
func (s *FileSource) Matches(path string) bool {
	return s.scanner.Matches(path)
}

func (s *FileSource) Describe() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) (model.DailyLogSet, error) {
	scanStart := time.Now()
	files, err := s.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}
	util.LogDebugf("File scan duration: %v, found %d files", time.Since(scanStart), len(files))

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, s.path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set, errs := s.parser.ParseAll(files)
	for _, err := range errs {
		util.LogWarnf("Failed to parse file: %v", err)
	}
	if len(errs) == len(files) {
		return nil, fmt.Errorf("all %d files failed to parse: %w", len(files), errs[0])
	}
	return set, nil
}

// SQLSource reads one trip from the trips_logentry table.
type SQLSource struct {
	repo   store.LogEntryRepository
	tripID int64
}

func NewSQLSource(repo store.LogEntryRepository, tripID int64) *SQLSource {
	return &SQLSource{repo: repo, tripID: tripID}
}

func (s *SQLSource) Describe() string {
	return fmt.Sprintf("trip %d", s.tripID)
}

func (s *SQLSource) Load(ctx context.Context) (model.DailyLogSet, error) {
	set, err := store.LoadTrip(ctx, s.repo, s.tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trip %d: %w", s.tripID, err)
	}
	return set, nil
}
