package table

import (
	"fmt"
	"math"

	"github.com/glucodoc/glucodoc/internal/core/constants"
	"github.com/glucodoc/glucodoc/internal/core/factor"
	"github.com/glucodoc/glucodoc/internal/core/measurement"
	"github.com/glucodoc/glucodoc/internal/util"
)

// CellCount is the number of cells per column: time, blood glucose,
// carbohydrate insulin, correction insulin, total insulin, carbohydrates.
const CellCount = 6

// Column is one time-bucketed measurement of a day table.
type Column struct {
	m measurement.Measurement
}

// NewColumn builds a column from the raw quantities of a reading or dose.
func NewColumn(sched *factor.Schedule, date, clock string, bg int, bolus, carbs float64) *Column {
	return &Column{m: measurement.New(sched, date, clock, bg, bolus, carbs)}
}

// Time returns the column's clock time.
func (c *Column) Time() string { return c.m.Time }

// Measurement returns the aggregated measurement behind the column.
func (c *Column) Measurement() measurement.Measurement { return c.m }

// Cell renders the i-th cell. Numeric cells at or below the blank
// threshold render empty to hide floating-point noise; the glucose cell
// is empty for the zero sentinel.
func (c *Column) Cell(i int) string {
	switch i {
	case 0:
		return c.m.Time
	case 1:
		return util.FormatGlucose(c.m.BG)
	case 2:
		return blankBelowThreshold(c.m.IUCarb, c.m.IUCarb)
	case 3:
		return blankBelowThreshold(c.m.IUCorr, math.Abs(c.m.IUCorr))
	case 4:
		return blankBelowThreshold(c.m.IUTotal, c.m.IUTotal)
	case 5:
		return blankBelowThreshold(c.m.Carbs, c.m.Carbs)
	default:
		return ""
	}
}

func blankBelowThreshold(v, magnitude float64) string {
	if magnitude > constants.BlankThreshold {
		return fmt.Sprintf("%.1f", v)
	}
	return ""
}

func (c *Column) merge(other *Column, sched *factor.Schedule) {
	c.m.Add(other.m, sched)
}

// Table is one display table of a day: up to MaxColumns time-ordered
// columns, the day's active basal profile and a remark timeline. When a
// day produces more columns than fit, the caller starts a continuation
// table sharing the date and profile.
type Table struct {
	date    string
	profile string
	sched   *factor.Schedule
	cols    []*Column
	remarks *RemarkTimeline
}

// NewTable creates an empty table for the date. An empty profile means
// none has been seen yet.
func NewTable(date, profile string, labels Labels, sched *factor.Schedule) *Table {
	return &Table{
		date:    date,
		profile: profile,
		sched:   sched,
		remarks: newRemarkTimeline(labels),
	}
}

// Date returns the table's date.
func (t *Table) Date() string { return t.date }

// Profile returns the active basal profile, empty when unknown.
func (t *Table) Profile() string { return t.profile }

// SetProfile records the active basal profile.
func (t *Table) SetProfile(profile string) { t.profile = profile }

// AddColumn places a column into the table. Columns closer than the merge
// window to the last one are folded into it; otherwise the column is
// appended. Returns false when the table is full and could not take the
// column, in which case the caller must start a continuation table.
func (t *Table) AddColumn(c *Column) bool {
	if n := len(t.cols); n > 0 &&
		util.MinutesBetween(t.cols[n-1].Time(), c.Time()) < constants.MaxTimeDifference {
		t.cols[n-1].merge(c, t.sched)
		return true
	}
	if len(t.cols) == constants.MaxColumns {
		return false
	}
	t.cols = append(t.cols, c)
	return true
}

// AddRemark adds a timestamped remark, subject to the pairing rules of
// the remark timeline.
func (t *Table) AddRemark(clock, text string) {
	t.remarks.Add(clock, text)
}

// Finish completes the remark timeline for reading. Idempotent.
func (t *Table) Finish() {
	t.remarks.Finish()
}

// Remarks returns the finished remark line.
func (t *Table) Remarks() string {
	t.remarks.Finish()
	return t.remarks.String()
}

// ColumnCount returns the number of columns placed so far.
func (t *Table) ColumnCount() int { return len(t.cols) }

// Columns returns the table's columns in time order.
func (t *Table) Columns() []*Column { return t.cols }

// Data exports the columns as rows of CellCount cells each.
func (t *Table) Data() [][]string {
	t.remarks.Finish()
	data := make([][]string, 0, len(t.cols))
	for _, c := range t.cols {
		cells := make([]string, CellCount)
		for i := range cells {
			cells[i] = c.Cell(i)
		}
		data = append(data, cells)
	}
	return data
}
