package chart

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucodoc/glucodoc/internal/core/factor"
	"github.com/glucodoc/glucodoc/internal/core/table"
)

func TestRenderDay(t *testing.T) {
	sched := factor.New(nil)
	tbl := table.NewTable("2026-08-15", "1", table.DefaultLabels(), sched)
	tbl.AddColumn(table.NewColumn(sched, "2026-08-15", "07:00", 110, 0, 0))
	tbl.AddColumn(table.NewColumn(sched, "2026-08-15", "12:00", 185, 0, 0))
	tbl.AddColumn(table.NewColumn(sched, "2026-08-15", "19:30", 350, 0, 0)) // above scale
	tbl.AddColumn(table.NewColumn(sched, "2026-08-15", "23:00", 0, 1.5, 0)) // no reading

	path := filepath.Join(t.TempDir(), "day.png")
	require.NoError(t, NewRenderer().RenderDay("2026-08-15", []*table.Table{tbl}, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, width, img.Bounds().Dx())
	assert.Equal(t, height, img.Bounds().Dy())
}

func TestRenderDayEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	err := NewRenderer().RenderDay("2026-08-15", nil, path)

	// No readings still draws the axes.
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
