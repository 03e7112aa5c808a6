package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/util"
)

// Parser reads daily log files. Three layouts are accepted:
//   - a JSON object keyed by date, each value a list of intervals
//   - a JSON array of intervals
//   - JSON Lines, one interval per line
//
// Records that are not keyed by date are grouped by their log_date, or by
// the calendar date of their start_time in the parser's timezone.
type Parser struct {
	concurrency int
	location    *time.Location
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	Index   int
	File    string
	Logs    model.DailyLogSet
	Skipped int
	Error   error
}

// NewParser creates a parser running at most concurrency files at once.
func NewParser(concurrency int, loc *time.Location) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	if loc == nil {
		loc = time.Local
	}
	return &Parser{
		concurrency: concurrency,
		location:    loc,
	}
}

// ParseFile parses one log file.
func (p *Parser) ParseFile(path string) (model.DailyLogSet, int, error) {
	util.LogDebugf("Start parsing file: %s", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return p.parseLines(file, path)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	set, err := p.Parse(data)
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return set, 0, nil
}

// Parse decodes a JSON document holding either a date-keyed object or an
// array of intervals.
func (p *Parser) Parse(data []byte) (model.DailyLogSet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.DailyLogSet{}, nil
	}

	if trimmed[0] == '[' {
		var records []model.RawInterval
		if err := sonic.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return p.Group(records), nil
	}

	var set model.DailyLogSet
	if err := sonic.Unmarshal(trimmed, &set); err != nil {
		return nil, err
	}
	if set == nil {
		set = model.DailyLogSet{}
	}
	return set, nil
}

func (p *Parser) parseLines(r io.Reader, path string) (model.DailyLogSet, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var records []model.RawInterval
	lineCount := 0
	skipped := 0
	for scanner.Scan() {
		lineCount++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec model.RawInterval
		if err := sonic.Unmarshal(line, &rec); err != nil {
			util.LogDebugf("Skip invalid JSON line %s:%d - %v", path, lineCount, err)
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scan %s: %w", path, err)
	}

	return p.Group(records), skipped, nil
}

// Group buckets records by day. A record with neither log_date nor a
// parseable start_time lands under the empty date, where the normalizer
// reports it.
func (p *Parser) Group(records []model.RawInterval) model.DailyLogSet {
	set := make(model.DailyLogSet)
	for _, rec := range records {
		date := p.dateOf(rec)
		set[date] = append(set[date], rec)
	}
	return set
}

func (p *Parser) dateOf(rec model.RawInterval) string {
	if rec.LogDate != "" {
		return rec.LogDate
	}
	if rec.StartTime != nil {
		if t, err := timeline.ParseTimestamp(*rec.StartTime, p.location); err == nil {
			return t.In(p.location).Format(model.DateLayout)
		}
	}
	return ""
}

// ParseFiles parses files concurrently and streams one result per file.
// Results arrive in completion order; Index is the position in files.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for i, file := range files {
		wg.Add(1)
		go func(idx int, f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			logs, skipped, err := p.ParseFile(f)
			if err != nil {
				util.LogDebugf("File parsing failed: %s, duration %v - %v", f, time.Since(fileStart), err)
			}

			results <- ParseResult{
				Index:   idx,
				File:    f,
				Logs:    logs,
				Skipped: skipped,
				Error:   err,
			}
		}(i, file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("Concurrent parsing finished, total duration: %v", time.Since(start))
	}()

	return results
}

// ParseAll parses every file and merges the results in file order, so
// a day split across files keeps a stable record order. Files that fail
// are returned as errors alongside the merged set.
func (p *Parser) ParseAll(files []string) (model.DailyLogSet, []error) {
	collected := make([]ParseResult, 0, len(files))
	for result := range p.ParseFiles(files) {
		collected = append(collected, result)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].Index < collected[j].Index
	})

	var errs []error
	sets := make([]model.DailyLogSet, 0, len(collected))
	for _, result := range collected {
		if result.Error != nil {
			errs = append(errs, result.Error)
			continue
		}
		if result.Skipped > 0 {
			util.LogWarn("Skipped invalid lines", util.F("file", result.File), util.F("count", result.Skipped))
		}
		sets = append(sets, result.Logs)
	}
	return Merge(sets...), errs
}

// Merge concatenates sets, appending records of shared dates in argument
// order.
func Merge(sets ...model.DailyLogSet) model.DailyLogSet {
	merged := make(model.DailyLogSet)
	for _, set := range sets {
		for date, records := range set {
			merged[date] = append(merged[date], records...)
		}
	}
	return merged
}
