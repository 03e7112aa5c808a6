package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-eld-log/internal/util"
)

// FileEvent is a change to a watched log file.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher reports changes to log files under a set of paths.
// Directories are watched recursively; a file path watches its parent and
// reports only that file.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	match   func(path string) bool
	files   map[string]bool
	events  chan FileEvent
	done    chan struct{}
	once    sync.Once
}

// NewFileWatcher starts watching paths. match filters reported files;
// nil reports every file.
func NewFileWatcher(paths []string, match func(path string) bool) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		match:   match,
		files:   make(map[string]bool),
		events:  make(chan FileEvent, 100),
		done:    make(chan struct{}),
	}

	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		fw.files[abs] = true
		return fw.watcher.Add(filepath.Dir(abs))
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}
		return nil
	})
}

func (fw *FileWatcher) wanted(path string) bool {
	if len(fw.files) > 0 {
		if abs, err := filepath.Abs(path); err == nil && fw.files[abs] {
			return true
		}
	}
	if fw.match == nil {
		return len(fw.files) == 0
	}
	return fw.match(path)
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addPath(event.Name); err != nil {
						util.LogDebugf("Failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !fw.wanted(event.Name) {
				continue
			}

			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events returns the raw change stream. It is closed after Close.
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

// Close stops watching.
func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}

// Run calls onChange once per burst of events, after the stream has been
// quiet for debounce. It returns when ctx is done or the watcher closes.
func (fw *FileWatcher) Run(ctx context.Context, debounce time.Duration, onChange func([]FileEvent)) {
	var (
		pending []FileEvent
		timer   *time.Timer
		fire    <-chan time.Time
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.events:
			if !ok {
				return
			}
			pending = append(pending, event)
			stop()
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			batch := pending
			pending = nil
			fire = nil
			util.LogDebugf("Detected %d file changes", len(batch))
			onChange(batch)
		}
	}
}
