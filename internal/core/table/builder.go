package table

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/glucodoc/glucodoc/internal/core/constants"
	"github.com/glucodoc/glucodoc/internal/core/factor"
	"github.com/glucodoc/glucodoc/internal/core/model"
	"github.com/glucodoc/glucodoc/internal/util"
)

// profileChangeRemark matches the pump's free-text profile switch note.
var profileChangeRemark = regexp.MustCompile(`^changed \d$`)

// suppressedCodes are device events that carry no information worth a
// remark: cartridge empty/low, battery low, bolus cancelled.
var suppressedCodes = map[string]bool{
	"E1": true,
	"W1": true,
	"W2": true,
	"W8": true,
}

// Builder turns one day's sorted events into display tables.
type Builder struct {
	sched  *factor.Schedule
	labels Labels
}

// NewBuilder creates a builder deriving measurements with the given carb
// factor schedule and emitting remarks with the given labels.
func NewBuilder(sched *factor.Schedule, labels Labels) *Builder {
	return &Builder{sched: sched, labels: labels}
}

// Labels returns the label set the builder emits remarks with.
func (b *Builder) Labels() Labels { return b.labels }

// BuildDay converts the day's events into one or more tables. The day's
// events must already be in canonical order. Every event either
// contributes a column, a remark, or is an intentional no-op; nothing
// fails.
func (b *Builder) BuildDay(day model.DayRecord) []*Table {
	t := NewTable(day.Date, "", b.labels, b.sched)
	tables := []*Table{t}

	for _, ev := range day.Events {
		switch e := ev.(type) {
		case model.Reading:
			t = b.addReading(t, &tables, e)
		case model.BolusDose:
			t = b.addBolus(t, &tables, e)
		case model.BasalAdjustment:
			b.addBasal(t, e)
		case model.DeviceEvent:
			b.addDevice(t, e)
		default:
			util.LogDebugf("dropping unrecognized event %s %s (%s)",
				ev.EventDate(), ev.EventTime(), ev.Kind())
		}
	}
	return tables
}

// placeColumn appends the column, rolling over into a continuation table
// with the same date and basal profile when the current one is full.
func (b *Builder) placeColumn(t *Table, tables *[]*Table, c *Column) *Table {
	if t.AddColumn(c) {
		return t
	}
	next := NewTable(t.Date(), t.Profile(), b.labels, b.sched)
	*tables = append(*tables, next)
	next.AddColumn(c)
	return next
}

func (b *Builder) addReading(t *Table, tables *[]*Table, e model.Reading) *Table {
	if e.Control {
		// Control solution tests never become columns.
		value := "---"
		if e.BG != nil {
			value = strconv.Itoa(*e.BG)
		}
		t.AddRemark(e.Time, b.labels.ControlPrefix+value)
		return t
	}

	bg := 0
	if e.BG != nil {
		bg = *e.BG
	}
	var carbs float64
	if e.CarbGrams != nil {
		carbs = util.Round1(float64(*e.CarbGrams) / constants.GramsPerBreadUnit)
	}
	c := NewColumn(b.sched, e.Date, e.Time, bg, e.InsulinSum(), carbs)
	return b.placeColumn(t, tables, c)
}

func (b *Builder) addBolus(t *Table, tables *[]*Table, e model.BolusDose) *Table {
	if e.Time == "" {
		// TODO: fold the pump's dateless bolus/basal daily totals into a
		// per-day summary row instead of dropping them.
		return t
	}
	var amount float64
	if e.Amount != nil {
		amount = *e.Amount
	}
	c := NewColumn(b.sched, e.Date, e.Time, 0, amount, 0)
	return b.placeColumn(t, tables, c)
}

func (b *Builder) addBasal(t *Table, e model.BasalAdjustment) {
	if e.Profile != nil {
		if t.Profile() == "" {
			t.SetProfile(*e.Profile)
		} else if t.Profile() != *e.Profile {
			t.AddRemark(e.Time, b.labels.BRChanged+" "+*e.Profile)
		}
	}

	remark := ""
	hasRemark := e.Remark != nil
	if hasRemark {
		remark = *e.Remark
	}

	switch {
	case remark == "Run":
		t.AddRemark(e.Time, b.labels.PumpRun)
	case remark == "Stop":
		t.AddRemark(e.Time, b.labels.PumpStop)
	case profileChangeRemark.MatchString(remark):
		if digit := remark[len(remark)-1:]; t.Profile() != digit {
			t.AddRemark(e.Time, b.labels.BRChanged+" "+digit)
		}
	case e.TempDecPct != nil && (hasRemark || e.Time == "00:00"):
		t.AddRemark(e.Time, "TBR "+*e.TempDecPct)
	case e.TempIncPct != nil && (hasRemark || e.Time == "00:00"):
		t.AddRemark(e.Time, "TBR "+*e.TempIncPct)
	case strings.HasPrefix(remark, "TBR End"):
		t.AddRemark(e.Time, b.labels.TBREnd)
	default:
		// Remaining basal shapes carry nothing displayable.
		util.LogDebugf("dropping basal adjustment %s %s", e.Date, e.Time)
	}
}

func (b *Builder) addDevice(t *Table, e model.DeviceEvent) {
	switch {
	case e.ShortCode == "":
		// Routine cartridge changes would flood the remark line.
		if e.Description != "cartridge changed" {
			t.AddRemark(e.Time, e.Description)
		}
	case e.ShortCode == "E4":
		t.AddRemark(e.Time, b.labels.Occlusion)
	case strings.HasSuffix(e.ShortCode, "IU"):
		t.AddRemark(e.Time, b.labels.Prime)
	case suppressedCodes[e.ShortCode]:
		// no-op
	default:
		t.AddRemark(e.Time, e.Description+" ("+e.ShortCode+")")
	}
}
