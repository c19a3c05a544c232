package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucodoc/glucodoc/internal/core/model"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func strp(v string) *string     { return &v }

func buildDay(t *testing.T, events []model.Event) []*Table {
	t.Helper()
	day := model.DayRecord{Date: "2026-08-15", Events: events}
	day.Sort()
	return NewBuilder(testSchedule(), DefaultLabels()).BuildDay(day)
}

func TestBuildDayReadingColumn(t *testing.T) {
	tables := buildDay(t, []model.Event{
		model.Reading{
			Date: "2026-08-15", Time: "08:00",
			BG:        intp(124),
			CarbGrams: intp(50),
			Insulin:   [3]*float64{floatp(4.0), nil, floatp(1.0)},
		},
	})

	require.Len(t, tables, 1)
	require.Equal(t, 1, tables[0].ColumnCount())
	m := tables[0].Columns()[0].Measurement()
	assert.Equal(t, 124, m.BG)
	assert.InDelta(t, 5.0, m.IUTotal, 1e-9)
	assert.InDelta(t, 4.2, m.Carbs, 1e-9, "50 g is 4.2 BU")
}

func TestBuildDayControlReadingBecomesRemark(t *testing.T) {
	tables := buildDay(t, []model.Event{
		model.Reading{Date: "2026-08-15", Time: "08:00", BG: intp(115), Control: true},
		model.Reading{Date: "2026-08-15", Time: "09:00", Control: true},
	})

	require.Len(t, tables, 1)
	assert.Equal(t, 0, tables[0].ColumnCount())
	assert.Equal(t, "08:00: Ctrl: 115,  09:00: Ctrl: ---", tables[0].Remarks())
}

func TestBuildDayBolusColumn(t *testing.T) {
	tables := buildDay(t, []model.Event{
		model.BolusDose{Date: "2026-08-15", Time: "13:00", Amount: floatp(2.5)},
	})

	require.Equal(t, 1, tables[0].ColumnCount())
	m := tables[0].Columns()[0].Measurement()
	assert.Equal(t, 0, m.BG)
	assert.InDelta(t, 2.5, m.IUTotal, 1e-9)
}

func TestBuildDayDailyTotalBolusIgnored(t *testing.T) {
	tables := buildDay(t, []model.Event{
		model.BolusDose{Date: "2026-08-15", Time: "", Amount: floatp(31.2)},
	})

	assert.Equal(t, 0, tables[0].ColumnCount())
	assert.Equal(t, "", tables[0].Remarks())
}

func TestBuildDayContinuationTable(t *testing.T) {
	var events []model.Event
	for i := 0; i < 13; i++ {
		events = append(events, model.Reading{
			Date: "2026-08-15",
			Time: fmt.Sprintf("%02d:00", i+6),
			BG:   intp(100 + i),
		})
	}
	events = append(events, model.BasalAdjustment{
		Date: "2026-08-15", Time: "06:00", Profile: strp("1"),
	})
	tables := buildDay(t, events)

	require.Len(t, tables, 2)
	assert.Equal(t, 12, tables[0].ColumnCount())
	assert.Equal(t, 1, tables[1].ColumnCount())
	assert.Equal(t, tables[0].Date(), tables[1].Date())
	assert.Equal(t, "1", tables[1].Profile(), "continuation keeps the profile")
}

func TestBuildDayBasalRemarks(t *testing.T) {
	tests := []struct {
		name     string
		event    model.BasalAdjustment
		profile  string
		expected string
	}{
		{
			name:     "pump_run",
			event:    model.BasalAdjustment{Date: "2026-08-15", Time: "07:00", Remark: strp("Run")},
			expected: "07:00: pump run",
		},
		{
			name:     "pump_stop",
			event:    model.BasalAdjustment{Date: "2026-08-15", Time: "07:00", Remark: strp("Stop")},
			expected: "07:00: pump stop",
		},
		{
			name:     "profile_digit_change",
			event:    model.BasalAdjustment{Date: "2026-08-15", Time: "10:00", Remark: strp("changed 2")},
			profile:  "1",
			expected: "10:00: BR changed to 2",
		},
		{
			name: "tbr_decrease_with_remark",
			event: model.BasalAdjustment{
				Date: "2026-08-15", Time: "11:00",
				TempDecPct: strp(" 90%"), Remark: strp("set"),
			},
			expected: "11:00: TBR  90%",
		},
		{
			name: "tbr_increase_at_midnight",
			event: model.BasalAdjustment{
				Date: "2026-08-15", Time: "00:00",
				TempIncPct: strp("150%"),
			},
			expected: "00:00: TBR 150%",
		},
		{
			name: "tbr_without_remark_dropped",
			event: model.BasalAdjustment{
				Date: "2026-08-15", Time: "11:00",
				TempDecPct: strp(" 90%"),
			},
			expected: "",
		},
		{
			name:     "tbr_end",
			event:    model.BasalAdjustment{Date: "2026-08-15", Time: "12:00", Remark: strp("TBR End (cancelled)")},
			expected: "12:00: TBR ended",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable("2026-08-15", tt.profile, DefaultLabels(), testSchedule())
			b := NewBuilder(testSchedule(), DefaultLabels())
			b.addBasal(tbl, tt.event)
			assert.Equal(t, tt.expected, tbl.Remarks())
		})
	}
}

func TestBuildDayProfileHandling(t *testing.T) {
	tables := buildDay(t, []model.Event{
		model.BasalAdjustment{Date: "2026-08-15", Time: "00:10", Profile: strp("1")},
		model.BasalAdjustment{Date: "2026-08-15", Time: "09:00", Profile: strp("2")},
	})

	// First profile is adopted silently, the switch is remarked.
	assert.Equal(t, "1", tables[0].Profile())
	assert.Equal(t, "09:00: BR changed to 2", tables[0].Remarks())
}

func TestBuildDayDeviceEvents(t *testing.T) {
	tests := []struct {
		name     string
		event    model.DeviceEvent
		expected string
	}{
		{
			name:     "occlusion_code",
			event:    model.DeviceEvent{Date: "2026-08-15", Time: "14:00", ShortCode: "E4", Description: "occlusion alarm"},
			expected: "14:00: occlusion",
		},
		{
			name:     "prime_amount",
			event:    model.DeviceEvent{Date: "2026-08-15", Time: "14:00", ShortCode: "1.2IU", Description: "prime"},
			expected: "14:00: infusion set primed",
		},
		{
			name:     "suppressed_warning",
			event:    model.DeviceEvent{Date: "2026-08-15", Time: "14:00", ShortCode: "W1", Description: "cartridge low"},
			expected: "",
		},
		{
			name:     "unknown_code_verbatim",
			event:    model.DeviceEvent{Date: "2026-08-15", Time: "14:00", ShortCode: "W7", Description: "temperature"},
			expected: "14:00: temperature (W7)",
		},
		{
			name:     "cartridge_change_suppressed",
			event:    model.DeviceEvent{Date: "2026-08-15", Time: "14:00", Description: "cartridge changed"},
			expected: "",
		},
		{
			name:     "codeless_description",
			event:    model.DeviceEvent{Date: "2026-08-15", Time: "14:00", Description: "time set"},
			expected: "14:00: time set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := buildDay(t, []model.Event{tt.event})
			assert.Equal(t, tt.expected, tables[0].Remarks())
		})
	}
}
