package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glucodoc/glucodoc/internal/core/constants"
	"github.com/glucodoc/glucodoc/internal/core/factor"
)

func testSchedule() *factor.Schedule {
	return factor.New([]factor.Period{
		{Begin: "06:00", Factor: 1.0},
	})
}

func TestAddColumnMergesWithinWindow(t *testing.T) {
	sched := testSchedule()
	tbl := NewTable("2026-08-15", "1", DefaultLabels(), sched)

	assert.True(t, tbl.AddColumn(NewColumn(sched, "2026-08-15", "08:00", 120, 2.0, 1.0)))
	assert.True(t, tbl.AddColumn(NewColumn(sched, "2026-08-15", "08:29", 100, 1.0, 0.5)))

	assert.Equal(t, 1, tbl.ColumnCount())
	m := tbl.Columns()[0].Measurement()
	assert.Equal(t, 110, m.BG)
	assert.InDelta(t, 3.0, m.IUTotal, 1e-9)
	assert.Equal(t, "08:00", m.Time, "merged column keeps the earlier time")
}

func TestAddColumnSeparateBeyondWindow(t *testing.T) {
	sched := testSchedule()
	tbl := NewTable("2026-08-15", "1", DefaultLabels(), sched)

	tbl.AddColumn(NewColumn(sched, "2026-08-15", "08:00", 120, 0, 0))
	tbl.AddColumn(NewColumn(sched, "2026-08-15", "08:31", 100, 0, 0))

	assert.Equal(t, 2, tbl.ColumnCount())
}

func TestAddColumnFullTable(t *testing.T) {
	sched := testSchedule()
	tbl := NewTable("2026-08-15", "1", DefaultLabels(), sched)

	// Hourly readings never merge; the table holds exactly MaxColumns.
	for i := 0; i < constants.MaxColumns; i++ {
		clock := fmt.Sprintf("%02d:00", i)
		assert.True(t, tbl.AddColumn(NewColumn(sched, "2026-08-15", clock, 100, 0, 0)))
	}
	assert.False(t, tbl.AddColumn(NewColumn(sched, "2026-08-15", "13:00", 100, 0, 0)))
	assert.Equal(t, constants.MaxColumns, tbl.ColumnCount())
}

func TestCellRendering(t *testing.T) {
	sched := testSchedule()

	t.Run("populated_cells", func(t *testing.T) {
		c := NewColumn(sched, "2026-08-15", "08:00", 124, 5.0, 3.0)
		assert.Equal(t, "08:00", c.Cell(0))
		assert.Equal(t, "124", c.Cell(1))
		assert.Equal(t, "3.0", c.Cell(2))
		assert.Equal(t, "2.0", c.Cell(3))
		assert.Equal(t, "5.0", c.Cell(4))
		assert.Equal(t, "3.0", c.Cell(5))
	})

	t.Run("absent_glucose_blank", func(t *testing.T) {
		c := NewColumn(sched, "2026-08-15", "08:00", 0, 1.5, 0)
		assert.Equal(t, "", c.Cell(1))
	})

	t.Run("values_at_threshold_blank", func(t *testing.T) {
		c := NewColumn(sched, "2026-08-15", "08:00", 100, 0.04, 0.04)
		assert.Equal(t, "", c.Cell(2))
		assert.Equal(t, "", c.Cell(4))
		assert.Equal(t, "", c.Cell(5))
	})

	t.Run("negative_correction_renders", func(t *testing.T) {
		// 2 BU at factor 1.0 against a 1.5 IU bolus: correction -0.5.
		c := NewColumn(sched, "2026-08-15", "08:00", 0, 1.5, 2.0)
		assert.Equal(t, "-0.5", c.Cell(3))
	})
}

func TestDataExport(t *testing.T) {
	sched := testSchedule()
	tbl := NewTable("2026-08-15", "1", DefaultLabels(), sched)
	tbl.AddColumn(NewColumn(sched, "2026-08-15", "08:00", 120, 2.0, 1.0))
	tbl.AddColumn(NewColumn(sched, "2026-08-15", "12:00", 90, 0, 0))

	data := tbl.Data()
	assert.Len(t, data, 2)
	for _, cells := range data {
		assert.Len(t, cells, CellCount)
	}
	assert.Equal(t, "08:00", data[0][0])
	assert.Equal(t, "90", data[1][1])
}
