package formatter

import (
	"github.com/glucodoc/glucodoc/internal/core/table"
)

// DayTables bundles the tables of one day for output. Days with more
// columns than one table holds carry continuation tables.
type DayTables struct {
	Date   string
	Tables []*table.Table
}

// Formatter renders a run of days to stdout.
type Formatter interface {
	Format(days []DayTables) error
}

// rowLabels name the six cell rows of a rendered table.
var rowLabels = [table.CellCount]string{
	"Time", "BG", "IU BU", "IU corr", "IU total", "BU",
}
