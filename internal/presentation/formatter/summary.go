package formatter

import (
	"fmt"

	"github.com/glucodoc/glucodoc/internal/util"
)

// SummaryFormatter prints per-day aggregates plus a closing line for the
// whole run instead of the full tables.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// dayStats aggregates a day's columns.
type dayStats struct {
	readings  int
	bgSum     int
	bgMin     int
	bgMax     int
	iuTotal   float64
	breadUnit float64
}

func (s *dayStats) add(bg int, iu, bu float64) {
	if bg > 0 {
		s.readings++
		s.bgSum += bg
		if s.bgMin == 0 || bg < s.bgMin {
			s.bgMin = bg
		}
		if bg > s.bgMax {
			s.bgMax = bg
		}
	}
	s.iuTotal += iu
	s.breadUnit += bu
}

func (f *SummaryFormatter) Format(days []DayTables) error {
	var run dayStats
	for _, day := range days {
		var s dayStats
		for _, t := range day.Tables {
			for _, c := range t.Columns() {
				m := c.Measurement()
				s.add(m.BG, m.IUTotal, m.Carbs)
				run.add(m.BG, m.IUTotal, m.Carbs)
			}
		}
		fmt.Printf("%s  readings %2d  bg avg %3s  min %3s  max %3s  insulin %5.1f IU  carbs %4.1f BU\n",
			day.Date, s.readings,
			meanString(s.bgSum, s.readings),
			util.FormatGlucose(s.bgMin), util.FormatGlucose(s.bgMax),
			s.iuTotal, s.breadUnit)
	}

	fmt.Printf("total %d days  readings %d  bg avg %s  insulin %.1f IU  carbs %.1f BU\n",
		len(days), run.readings, meanString(run.bgSum, run.readings),
		run.iuTotal, run.breadUnit)
	return nil
}

func meanString(sum, n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", sum/n)
}
