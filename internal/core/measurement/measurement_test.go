package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glucodoc/glucodoc/internal/core/factor"
)

func testSchedule() *factor.Schedule {
	return factor.New([]factor.Period{
		{Begin: "06:00", Factor: 1.0},
		{Begin: "12:00", Factor: 0.5},
	})
}

func TestNewDerivesSplit(t *testing.T) {
	sched := testSchedule()

	m := New(sched, "2026-08-15", "08:00", 120, 5.0, 3.0)

	assert.Equal(t, 120, m.BG)
	assert.InDelta(t, 3.0, m.IUCarb, 1e-9, "3 BU at factor 1.0")
	assert.InDelta(t, 2.0, m.IUCorr, 1e-9)
	assert.InDelta(t, m.IUTotal, m.IUCarb+m.IUCorr, 1e-9)
}

func TestNewBeforeFirstPeriod(t *testing.T) {
	m := New(testSchedule(), "2026-08-15", "05:00", 0, 4.0, 2.0)

	// Factor 0 before the first boundary: everything is correction.
	assert.InDelta(t, 0.0, m.IUCarb, 1e-9)
	assert.InDelta(t, 4.0, m.IUCorr, 1e-9)
}

func TestAdd(t *testing.T) {
	sched := testSchedule()

	tests := []struct {
		name       string
		bg1, bg2   int
		expectedBG int
	}{
		{
			name:       "both_present_averages",
			bg1:        120,
			bg2:        101,
			expectedBG: 110, // integer division
		},
		{
			name:       "first_absent_sums",
			bg1:        0,
			bg2:        95,
			expectedBG: 95,
		},
		{
			name:       "second_absent_sums",
			bg1:        130,
			bg2:        0,
			expectedBG: 130,
		},
		{
			name:       "both_absent_stays_zero",
			bg1:        0,
			bg2:        0,
			expectedBG: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(sched, "2026-08-15", "08:00", tt.bg1, 2.0, 1.0)
			other := New(sched, "2026-08-15", "08:10", tt.bg2, 1.5, 0.5)
			m.Add(other, sched)

			assert.Equal(t, tt.expectedBG, m.BG)
			assert.InDelta(t, 3.5, m.IUTotal, 1e-9)
			assert.InDelta(t, 1.5, m.Carbs, 1e-9)
		})
	}
}

func TestAddReDerivesAtReceiverTime(t *testing.T) {
	sched := testSchedule()

	// Receiver sits in the morning period, the merged dose after noon.
	m := New(sched, "2026-08-15", "11:50", 0, 2.0, 2.0)
	other := New(sched, "2026-08-15", "12:10", 0, 1.0, 1.0)
	m.Add(other, sched)

	// Split recomputes with the receiver's factor 1.0 over all 3 BU.
	assert.InDelta(t, 3.0, m.IUCarb, 1e-9)
	assert.InDelta(t, 0.0, m.IUCorr, 1e-9)
}
