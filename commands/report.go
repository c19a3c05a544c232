package commands

import (
	"github.com/spf13/cobra"

	"github.com/glucodoc/glucodoc/internal/analyzer"
)

var (
	reportFrom   string
	reportTo     string
	outputFormat string
	limit        int

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Render diary tables for stored days",
		RunE:  runReport,
	}
)

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "",
		"First day to include (YYYY-MM-DD, empty = oldest)")
	reportCmd.Flags().StringVar(&reportTo, "to", "",
		"Last day to include (YYYY-MM-DD, empty = newest)")
	reportCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	reportCmd.Flags().IntVar(&limit, "limit", 0,
		"Only the most recent N days (0 = all)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := analyzer.New(&analyzer.Config{
		DataDir:      dataDir,
		ScheduleFile: scheduleFile,
		From:         reportFrom,
		To:           reportTo,
		OutputFormat: outputFormat,
		Limit:        limit,
	})
	if err != nil {
		return err
	}
	return a.Run()
}
