package partition

import (
	"errors"
	"sort"

	"github.com/glucodoc/glucodoc/internal/core/model"
	"github.com/glucodoc/glucodoc/internal/util"
)

// Partition groups an unordered bag of events by their date and sorts
// each resulting day canonically. Days come back in ascending date order.
func Partition(events []model.Event) []model.DayRecord {
	byDate := make(map[string]*model.DayRecord)
	for _, e := range events {
		date := e.EventDate()
		day, ok := byDate[date]
		if !ok {
			day = &model.DayRecord{Date: date}
			byDate[date] = day
		}
		day.Events = append(day.Events, e)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]model.DayRecord, 0, len(dates))
	for _, date := range dates {
		day := byDate[date]
		day.Sort()
		days = append(days, *day)
	}
	return days
}

// DayLoader yields the previously stored record for a date. A (nil, nil)
// return means no prior day exists, which is not an error.
type DayLoader interface {
	LoadDay(date string) (*model.DayRecord, error)
}

// Merger folds freshly partitioned days together with their stored
// predecessors, de-duplicating by the canonical event key.
type Merger struct {
	loader DayLoader
}

// NewMerger creates a merger reading prior days from the loader.
func NewMerger(loader DayLoader) *Merger {
	return &Merger{loader: loader}
}

// MergeWithStored appends every stored event whose key is absent from the
// new day, then restores canonical order. Merging is idempotent: a key
// already present keeps the version the day holds, so running the merge
// twice changes nothing.
//
// An unreadable store is treated as empty history: the error is returned
// for logging but the day keeps its new events untouched.
func (m *Merger) MergeWithStored(day *model.DayRecord) error {
	stored, err := m.loader.LoadDay(day.Date)
	if err != nil {
		util.LogWarnf("stored day %s unreadable, keeping new data only: %v", day.Date, err)
		return err
	}
	if stored == nil {
		return nil
	}
	for _, old := range stored.Events {
		if !day.ContainsKey(old) {
			day.Events = append(day.Events, old)
		}
	}
	day.Sort()
	return nil
}

// MergeAll partitions events into days and merges each with its stored
// predecessor. Read failures never stop the batch; they are joined into
// the returned error for the caller to log.
func (m *Merger) MergeAll(events []model.Event) ([]model.DayRecord, error) {
	days := Partition(events)
	var errs []error
	for i := range days {
		if err := m.MergeWithStored(&days[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return days, errors.Join(errs...)
}
