package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glucodoc/glucodoc/internal/analyzer"
	"github.com/glucodoc/glucodoc/internal/presentation/chart"
)

var (
	chartDate string
	chartOut  string

	chartCmd = &cobra.Command{
		Use:   "chart",
		Short: "Draw a day's glucose curve as a PNG image",
		RunE:  runChart,
	}
)

func init() {
	chartCmd.Flags().StringVar(&chartDate, "date", "",
		"Day to draw (YYYY-MM-DD)")
	chartCmd.Flags().StringVar(&chartOut, "out", "",
		"Output file (default <date>.png)")
	_ = chartCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	a, err := analyzer.New(&analyzer.Config{
		DataDir:      dataDir,
		ScheduleFile: scheduleFile,
	})
	if err != nil {
		return err
	}

	days, err := a.BuildRange(chartDate, chartDate)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return fmt.Errorf("no stored data for %s", chartDate)
	}

	out := chartOut
	if out == "" {
		out = chartDate + ".png"
	}
	if err := chart.NewRenderer().RenderDay(chartDate, days[0].Tables, out); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
