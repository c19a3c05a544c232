package table

import (
	"regexp"
	"strings"

	"github.com/glucodoc/glucodoc/internal/core/constants"
	"github.com/glucodoc/glucodoc/internal/util"
)

// tbrPercent matches the opening remark of a temporary basal rate, e.g.
// "TBR 150%" or "TBR  90%" (value right-aligned to three characters).
var tbrPercent = regexp.MustCompile(`^TBR [ 0-9][ 0-9][0-9]%$`)

type remarkEntry struct {
	time    string // HH:MM
	endTime string // set once the entry became a range
	text    string
}

func (e remarkEntry) render() string {
	if e.endTime != "" {
		return e.time + " - " + e.endTime + ": " + e.text
	}
	return e.time + ": " + e.text
}

// RemarkTimeline collects the timestamped remarks of one table and
// collapses paired start/end events (pump stop/run, temporary basal rate
// begin/end) into single entries or ranges.
type RemarkTimeline struct {
	labels   Labels
	entries  []remarkEntry
	finished bool
}

func newRemarkTimeline(labels Labels) *RemarkTimeline {
	return &RemarkTimeline{labels: labels}
}

// Add appends a "HH:MM: text" entry, unless the text closes an earlier
// entry still in the timeline, in which case the pair collapses at
// insertion time:
//
//   - a pump run/stop remark deletes its counterpart within the merge
//     window instead of being appended (the pair vanishes entirely);
//   - a temporary-rate end deletes an open "TBR NNN%" entry within half
//     the merge window (a short-lived rate leaves no trace);
//   - a "TBR NNN%" arriving after an end entry of the same percentage
//     deletes that end entry (the rate merely resumed); a different
//     percentage appends normally and leaves the end marker for the
//     rate that owns it.
//
// The scan takes the first matching entry in insertion order.
func (rt *RemarkTimeline) Add(clock, text string) {
	switch {
	case text == rt.labels.PumpRun || text == rt.labels.PumpStop:
		counterpart := rt.labels.PumpStop
		if text == rt.labels.PumpStop {
			counterpart = rt.labels.PumpRun
		}
		if rt.removeFirst(func(e remarkEntry) bool {
			return e.text == counterpart &&
				util.MinutesBetween(e.time, clock) <= constants.MaxTimeDifference
		}) {
			return
		}
	case text == rt.labels.TBREnd:
		if rt.removeFirst(func(e remarkEntry) bool {
			return e.endTime == "" && tbrPercent.MatchString(e.text) &&
				util.MinutesBetween(e.time, clock) <= constants.TBREndPairWindow
		}) {
			return
		}
	case tbrPercent.MatchString(text):
		if rt.closeResumedRate(clock, text) {
			return
		}
	}
	rt.entries = append(rt.entries, remarkEntry{time: clock, text: text})
}

// closeResumedRate handles a rate remark arriving after an end entry
// within the merge window. The end marker is spurious only when the rate
// it closed carries the same percentage as the incoming one, so only then
// does the pair collapse; the first end entry decides either way.
func (rt *RemarkTimeline) closeResumedRate(clock, text string) bool {
	for i, e := range rt.entries {
		if e.text != rt.labels.TBREnd {
			continue
		}
		if util.MinutesBetween(e.time, clock) > constants.MaxTimeDifference {
			return false
		}
		if i == 0 {
			return false
		}
		prev := rt.entries[i-1]
		if prev.endTime != "" || !tbrPercent.MatchString(prev.text) ||
			prev.text[len("TBR "):] != text[len("TBR "):] {
			return false
		}
		rt.entries = append(rt.entries[:i], rt.entries[i+1:]...)
		return true
	}
	return false
}

func (rt *RemarkTimeline) removeFirst(match func(remarkEntry) bool) bool {
	for i, e := range rt.entries {
		if match(e) {
			rt.entries = append(rt.entries[:i], rt.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Finish pairs any remaining open "TBR NNN%" entry with a later
// temporary-rate end entry within the merge window, rewriting the two
// into one "HH:MM - HH:MM: TBR NNN%" range. It is idempotent and must run
// before the timeline is read.
func (rt *RemarkTimeline) Finish() {
	if rt.finished {
		return
	}
	rt.finished = true
	for i := 0; i < len(rt.entries); i++ {
		e := rt.entries[i]
		if e.endTime != "" || !tbrPercent.MatchString(e.text) {
			continue
		}
		for j := i + 1; j < len(rt.entries); j++ {
			if rt.entries[j].text != rt.labels.TBREnd {
				continue
			}
			if util.MinutesBetween(e.time, rt.entries[j].time) > constants.MaxTimeDifference {
				continue
			}
			rt.entries[i].endTime = rt.entries[j].time
			rt.entries = append(rt.entries[:j], rt.entries[j+1:]...)
			break
		}
	}
}

// Len returns the number of visible entries.
func (rt *RemarkTimeline) Len() int {
	return len(rt.entries)
}

// String renders the timeline joined by the fixed separator.
func (rt *RemarkTimeline) String() string {
	parts := make([]string, 0, len(rt.entries))
	for _, e := range rt.entries {
		parts = append(parts, e.render())
	}
	return strings.Join(parts, constants.RemarkSeparator)
}
