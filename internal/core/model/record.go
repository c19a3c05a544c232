package model

import (
	"sort"
)

// SameKey reports whether two events are the same record under the
// canonical (date, time, kind) de-duplication key.
func SameKey(a, b Event) bool {
	return a.EventDate() == b.EventDate() &&
		a.EventTime() == b.EventTime() &&
		a.Kind() == b.Kind()
}

// Less orders events by date, then time, then kind name, all lexicographic.
// This is the canonical sort of a stored day.
func Less(a, b Event) bool {
	if a.EventDate() != b.EventDate() {
		return a.EventDate() < b.EventDate()
	}
	if a.EventTime() != b.EventTime() {
		return a.EventTime() < b.EventTime()
	}
	return a.Kind() < b.Kind()
}

// SortEvents sorts events in place by the canonical key. The sort is
// stable so records with equal keys keep their insertion order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return Less(events[i], events[j])
	})
}

// DayRecord holds the events of one calendar day in canonical order.
type DayRecord struct {
	Date   string
	Events []Event
}

// Sort re-establishes the canonical event order.
func (d *DayRecord) Sort() {
	SortEvents(d.Events)
}

// ContainsKey reports whether the day already holds an event with the
// same canonical key.
func (d *DayRecord) ContainsKey(e Event) bool {
	for _, have := range d.Events {
		if SameKey(have, e) {
			return true
		}
	}
	return false
}
