package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glucodoc/glucodoc/internal/core/model"
	"github.com/glucodoc/glucodoc/internal/data/importer"
	"github.com/glucodoc/glucodoc/internal/data/partition"
	"github.com/glucodoc/glucodoc/internal/data/store"
	"github.com/glucodoc/glucodoc/internal/util"
)

var importCmd = &cobra.Command{
	Use:   "import <dir-or-file>...",
	Short: "Parse device XML exports into the day store",
	Long: `import reads insulin pump and blood glucose meter XML exports,
splits their events into days and merges each day with what the store
already holds. Re-importing the same export is a no-op.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := store.NewDayStore(dataDir)
	if err != nil {
		return fmt.Errorf("open day store: %w", err)
	}

	var files []string
	for _, arg := range args {
		found, err := importer.NewFileScanner(arg).Scan()
		if err != nil {
			return fmt.Errorf("scan %s: %w", arg, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no XML exports found")
	}

	var events []model.Event
	parsed := 0
	for _, file := range files {
		fileEvents, err := importer.ParseFile(file)
		if err != nil {
			util.LogWarnf("skipping export %s: %v", file, err)
			continue
		}
		events = append(events, fileEvents...)
		parsed++
	}
	if parsed == 0 {
		return fmt.Errorf("none of %d exports could be parsed", len(files))
	}

	days, err := partition.NewMerger(st).MergeAll(events)
	if err != nil {
		util.LogWarnf("some stored days were unreadable: %v", err)
	}

	saved := 0
	for i := range days {
		if err := st.SaveDay(&days[i]); err != nil {
			util.LogErrorf("save day %s: %v", days[i].Date, err)
			continue
		}
		saved++
	}

	fmt.Printf("imported %d events from %d exports into %d days (%d saved)\n",
		len(events), parsed, len(days), saved)
	return nil
}
