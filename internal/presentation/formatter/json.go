package formatter

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// JSONFormatter emits the rendered tables as a machine-readable document.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonDay struct {
	Date   string      `json:"date"`
	Tables []jsonTable `json:"tables"`
}

type jsonTable struct {
	BasalProfile string     `json:"basalProfile,omitempty"`
	Columns      [][]string `json:"columns"`
	Remarks      string     `json:"remarks,omitempty"`
}

func (f *JSONFormatter) Format(days []DayTables) error {
	out := make([]jsonDay, 0, len(days))
	for _, day := range days {
		jd := jsonDay{Date: day.Date}
		for _, t := range day.Tables {
			jd.Tables = append(jd.Tables, jsonTable{
				BasalProfile: t.Profile(),
				Columns:      t.Data(),
				Remarks:      t.Remarks(),
			})
		}
		out = append(out, jd)
	}

	data, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
