package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/glucodoc/glucodoc/internal/core/constants"
	"github.com/glucodoc/glucodoc/internal/core/table"
	"github.com/glucodoc/glucodoc/internal/util"
)

// TableFormatter renders each day as a bordered text grid: one label
// column followed by one column per time bucket, six cell rows deep,
// remarks underneath.
type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Format(days []DayTables) error {
	for _, day := range days {
		for _, t := range day.Tables {
			f.printTable(t)
			fmt.Println()
		}
	}
	return nil
}

func (f *TableFormatter) printTable(t *table.Table) {
	header := t.Date() + " (" + util.Weekday(t.Date())
	if util.IsWeekend(t.Date()) {
		header += ", weekend"
	}
	header += ")"
	if t.Profile() != "" {
		header += "    basal profile " + t.Profile()
	}
	fmt.Println(header)

	data := t.Data()
	widths := f.columnWidths(data)

	f.printBorder(widths, "top")
	for row := 0; row < table.CellCount; row++ {
		fmt.Print("│")
		fmt.Printf(" %s │", pad(rowLabels[row], widths[0], true))
		for col, cells := range data {
			fmt.Printf(" %s │", pad(cells[row], widths[col+1], false))
		}
		fmt.Println()
		if row == 0 {
			f.printBorder(widths, "middle")
		}
	}
	f.printBorder(widths, "bottom")

	for _, line := range wrapRemarks(t.Remarks()) {
		fmt.Println(line)
	}
}

// columnWidths sizes the label column plus one width per data column.
func (f *TableFormatter) columnWidths(data [][]string) []int {
	widths := make([]int, len(data)+1)
	for _, label := range rowLabels {
		if w := runewidth.StringWidth(label); w > widths[0] {
			widths[0] = w
		}
	}
	for col, cells := range data {
		widths[col+1] = 5 // fits HH:MM
		for _, cell := range cells {
			if w := runewidth.StringWidth(cell); w > widths[col+1] {
				widths[col+1] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func pad(s string, width int, leftAlign bool) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if leftAlign {
		return s + strings.Repeat(" ", gap)
	}
	return strings.Repeat(" ", gap) + s
}

// wrapRemarks splits the remark line into chunks no longer than the
// maximum display width, breaking only at the entry separator so no
// remark is cut mid-text.
func wrapRemarks(remarks string) []string {
	if remarks == "" {
		return nil
	}
	var lines []string
	for remarks != "" {
		line := remarks
		for len(line) > constants.MaxRemarkLineLength {
			cut := strings.LastIndex(line, constants.RemarkSeparator)
			if cut < 0 {
				break
			}
			line = line[:cut]
		}
		lines = append(lines, line)
		if len(line)+len(constants.RemarkSeparator) >= len(remarks) {
			break
		}
		remarks = remarks[len(line)+len(constants.RemarkSeparator):]
	}
	return lines
}
