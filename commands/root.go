package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/glucodoc/glucodoc/internal/util"
)

var (
	debug        bool
	dataDir      string
	scheduleFile string

	rootCmd = &cobra.Command{
		Use:   "glucodoc",
		Short: "Glucose diary tool for insulin pump and meter exports",
		Long: `glucodoc imports XML exports from insulin pumps and blood glucose
meters, stores them as per-day records and renders diary tables with
blood glucose, insulin doses split into carbohydrate and correction
shares, carbohydrates in bread units and a remark line of pump events.

Examples:
  glucodoc import ./exports             # Parse device exports into the day store
  glucodoc report --from 2026-08-01     # Render tables for stored days
  glucodoc report --output csv          # Same data, spreadsheet-friendly
  glucodoc chart --date 2026-08-15      # Draw the day's glucose curve as PNG`,
		SilenceUsage: true,
	}
)

const (
	defaultLogFile      = "~/.glucodoc/logs/app.log"
	defaultDataDir      = "~/.glucodoc/days"
	defaultScheduleFile = "~/.glucodoc/factors.yaml"
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir,
		"Directory of stored day records")
	rootCmd.PersistentFlags().StringVar(&scheduleFile, "schedule", defaultScheduleFile,
		"Carbohydrate factor schedule file")

	rootCmd.PersistentPreRunE = setup
}

// setup runs before every subcommand: pick up .env overrides, resolve
// paths and start logging.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if env := os.Getenv("GLUCODOC_DATA_DIR"); env != "" && !cmd.Flags().Changed("data-dir") {
		dataDir = env
	}
	if env := os.Getenv("GLUCODOC_SCHEDULE"); env != "" && !cmd.Flags().Changed("schedule") {
		scheduleFile = env
	}

	dataDir = expandPath(dataDir)
	scheduleFile = expandPath(scheduleFile)

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return err
	}
	util.InitLogger(logLevel, logFile, debug)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
