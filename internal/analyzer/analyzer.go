package analyzer

import (
	"fmt"
	"time"

	"github.com/glucodoc/glucodoc/internal/core/factor"
	"github.com/glucodoc/glucodoc/internal/core/table"
	"github.com/glucodoc/glucodoc/internal/data/store"
	"github.com/glucodoc/glucodoc/internal/presentation/formatter"
	"github.com/glucodoc/glucodoc/internal/util"
)

type Config struct {
	DataDir      string
	ScheduleFile string
	From         string // inclusive ISO date, empty = unbounded
	To           string // inclusive ISO date, empty = unbounded
	OutputFormat string // table, csv, json, summary
	Limit        int    // most recent N days, 0 = all
}

// Analyzer drives the read side: load stored days, build their tables
// and hand them to a formatter.
type Analyzer struct {
	config *Config
	store  *store.DayStore
	build  *table.Builder
}

func New(config *Config) (*Analyzer, error) {
	sched, err := factor.Load(config.ScheduleFile)
	if err != nil {
		return nil, fmt.Errorf("load factor schedule: %w", err)
	}
	st, err := store.NewDayStore(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open day store: %w", err)
	}
	return &Analyzer{
		config: config,
		store:  st,
		build:  table.NewBuilder(sched, table.DefaultLabels()),
	}, nil
}

func (a *Analyzer) Run() error {
	startTime := time.Now()

	// Invalidate cached days whose files change while the run is going,
	// so an edit landing between preload and build is still picked up.
	if err := a.store.Watch(); err != nil {
		util.LogWarnf("day store watch unavailable: %v", err)
	} else {
		defer a.store.Close()
	}

	preloadStart := time.Now()
	if err := a.store.Preload(); err != nil {
		util.LogWarnf("day store preload failed: %v", err)
	}
	preloadDuration := time.Since(preloadStart)

	dates, err := a.store.ListDates(a.config.From, a.config.To)
	if err != nil {
		return fmt.Errorf("list stored days: %w", err)
	}
	if len(dates) == 0 {
		return fmt.Errorf("no stored days in range")
	}
	if a.config.Limit > 0 && len(dates) > a.config.Limit {
		dates = dates[len(dates)-a.config.Limit:]
	}

	buildStart := time.Now()
	days := make([]formatter.DayTables, 0, len(dates))
	for _, date := range dates {
		day, err := a.store.LoadDay(date)
		if err != nil {
			util.LogWarnf("skipping day %s: %v", date, err)
			continue
		}
		if day == nil {
			continue
		}
		tables := a.build.BuildDay(*day)
		for _, t := range tables {
			t.Finish()
		}
		days = append(days, formatter.DayTables{Date: date, Tables: tables})
	}
	buildDuration := time.Since(buildStart)

	if len(days) == 0 {
		return fmt.Errorf("no readable days in range")
	}

	err = a.format(days)

	util.LogDebugf("analysis done: %d days in %v (preload:%v build:%v)",
		len(days), time.Since(startTime), preloadDuration, buildDuration)
	return err
}

// BuildRange returns the built tables without formatting them, for
// callers that render the result themselves.
func (a *Analyzer) BuildRange(from, to string) ([]formatter.DayTables, error) {
	dates, err := a.store.ListDates(from, to)
	if err != nil {
		return nil, fmt.Errorf("list stored days: %w", err)
	}
	var days []formatter.DayTables
	for _, date := range dates {
		day, err := a.store.LoadDay(date)
		if err != nil {
			util.LogWarnf("skipping day %s: %v", date, err)
			continue
		}
		if day == nil {
			continue
		}
		tables := a.build.BuildDay(*day)
		for _, t := range tables {
			t.Finish()
		}
		days = append(days, formatter.DayTables{Date: date, Tables: tables})
	}
	return days, nil
}

func (a *Analyzer) format(days []formatter.DayTables) error {
	var f formatter.Formatter
	switch a.config.OutputFormat {
	case "json":
		f = formatter.NewJSONFormatter()
	case "csv":
		f = formatter.NewCSVFormatter()
	case "summary":
		f = formatter.NewSummaryFormatter()
	default:
		f = formatter.NewTableFormatter()
	}
	return f.Format(days)
}
