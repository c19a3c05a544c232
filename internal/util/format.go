package util

import (
	"fmt"
	"strconv"
)

// FormatUnits renders an insulin or carbohydrate quantity with one decimal
// place, the precision used throughout the day tables.
func FormatUnits(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// FormatGlucose renders a blood glucose value, blank when the zero
// sentinel marks an absent reading.
func FormatGlucose(bg int) string {
	if bg == 0 {
		return ""
	}
	return strconv.Itoa(bg)
}
