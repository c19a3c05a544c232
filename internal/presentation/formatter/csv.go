package formatter

import (
	"encoding/csv"
	"os"

	"github.com/glucodoc/glucodoc/internal/core/table"
)

// CSVFormatter writes one record per column, semicolon-separated the way
// common spreadsheet imports of glucose diaries expect.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(days []DayTables) error {
	w := csv.NewWriter(os.Stdout)
	w.Comma = ';'
	defer w.Flush()

	headers := make([]string, 0, table.CellCount+2)
	headers = append(headers, "Date")
	headers = append(headers, rowLabels[:]...)
	headers = append(headers, "Remarks")
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, day := range days {
		for _, t := range day.Tables {
			remarks := t.Remarks()
			for i, cells := range t.Data() {
				record := make([]string, 0, table.CellCount+2)
				record = append(record, day.Date)
				record = append(record, cells...)
				// Remarks belong to the table, not a column; emit once.
				if i == 0 {
					record = append(record, remarks)
				} else {
					record = append(record, "")
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
