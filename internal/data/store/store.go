package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/fsnotify/fsnotify"

	"github.com/glucodoc/glucodoc/internal/core/model"
	"github.com/glucodoc/glucodoc/internal/util"
)

// DayStore persists one JSON document per calendar day under a base
// directory (<dir>/<YYYY-MM-DD>.json) and keeps a read-through memory
// cache of decoded records. A missing day is not an error; a day that
// exists but cannot be decoded is.
type DayStore struct {
	baseDir string
	mu      sync.RWMutex
	days    map[string]*model.DayRecord
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewDayStore creates the store, creating the base directory if needed.
func NewDayStore(baseDir string) (*DayStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &DayStore{
		baseDir: baseDir,
		days:    make(map[string]*model.DayRecord),
	}, nil
}

func (s *DayStore) path(date string) string {
	return filepath.Join(s.baseDir, date+".json")
}

// LoadDay returns the stored record for the date, or (nil, nil) when no
// prior day exists.
func (s *DayStore) LoadDay(date string) (*model.DayRecord, error) {
	s.mu.RLock()
	if day, ok := s.days[date]; ok {
		s.mu.RUnlock()
		return day, nil
	}
	s.mu.RUnlock()

	data, err := os.ReadFile(s.path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read day %s: %w", date, err)
	}

	var file dayFile
	if err := sonic.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode day %s: %w", date, err)
	}

	day := &model.DayRecord{Date: file.Date}
	if day.Date == "" {
		day.Date = date
	}
	for _, rec := range file.Events {
		ev, err := rec.decode()
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", date, err)
		}
		day.Events = append(day.Events, ev)
	}

	s.mu.Lock()
	s.days[date] = day
	s.mu.Unlock()
	return day, nil
}

// SaveDay writes the day in canonical order and refreshes the cache.
func (s *DayStore) SaveDay(day *model.DayRecord) error {
	day.Sort()
	file := dayFile{Date: day.Date, Events: make([]eventRecord, 0, len(day.Events))}
	for _, ev := range day.Events {
		rec, err := encodeEvent(ev)
		if err != nil {
			return fmt.Errorf("day %s: %w", day.Date, err)
		}
		file.Events = append(file.Events, rec)
	}

	data, err := sonic.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode day %s: %w", day.Date, err)
	}
	if err := os.WriteFile(s.path(day.Date), data, 0644); err != nil {
		return fmt.Errorf("write day %s: %w", day.Date, err)
	}

	s.mu.Lock()
	s.days[day.Date] = day
	s.mu.Unlock()
	return nil
}

// ListDates returns the stored dates within [from, to] (inclusive,
// ISO-formatted, empty bound = unbounded) in ascending order.
func (s *DayStore) ListDates(from, to string) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}
	var dates []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		date := strings.TrimSuffix(entry.Name(), ".json")
		if !util.ValidDate(date) {
			continue
		}
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates, nil
}

// Preload decodes all stored days into the memory cache using a small
// worker pool. Undecodable files are logged and skipped; preloading is an
// optimization, not a gate.
func (s *DayStore) Preload() error {
	dates, err := s.ListDates("", "")
	if err != nil {
		return fmt.Errorf("scan day store: %w", err)
	}
	if len(dates) == 0 {
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > len(dates) {
		numWorkers = len(dates)
	}

	datesChan := make(chan string, len(dates))
	var wg sync.WaitGroup
	var loaded, failed int64
	var countMu sync.Mutex

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for date := range datesChan {
				_, err := s.LoadDay(date)
				countMu.Lock()
				if err != nil {
					failed++
					util.LogWarnf("preload: skipping day %s: %v", date, err)
				} else {
					loaded++
				}
				countMu.Unlock()
			}
		}()
	}
	for _, date := range dates {
		datesChan <- date
	}
	close(datesChan)
	wg.Wait()

	util.LogDebugf("day store preload complete: %d loaded, %d failed", loaded, failed)
	return nil
}

// Watch starts invalidating cached days whose files change on disk, so a
// long-running process observes external edits. Close stops the watcher.
func (s *DayStore) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.baseDir); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				name := filepath.Base(event.Name)
				if !strings.HasSuffix(name, ".json") {
					continue
				}
				date := strings.TrimSuffix(name, ".json")
				s.mu.Lock()
				delete(s.days, date)
				s.mu.Unlock()
				util.LogDebugf("day store: invalidated %s after %s", date, event.Op)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				util.LogWarnf("day store watcher: %v", err)
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the watcher, if running.
func (s *DayStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
