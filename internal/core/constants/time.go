package constants

const (
	// MaxTimeDifference is the widest gap in minutes between two records
	// that are still combined into one table column or remark pair.
	MaxTimeDifference = 30

	// TBREndPairWindow bounds how far back an arriving temporary-rate end
	// searches for its opening percent entry.
	TBREndPairWindow = MaxTimeDifference / 2

	// MaxColumns is the number of columns per day table; further readings
	// overflow into a continuation table for the same date.
	MaxColumns = 12

	// GramsPerBreadUnit converts carbohydrate grams to bread units.
	GramsPerBreadUnit = 12.0

	// BlankThreshold hides floating-point noise: cell values at or below
	// it render as empty strings.
	BlankThreshold = 0.04

	// MaxRemarkLineLength is where the text renderer wraps the remark line.
	MaxRemarkLineLength = 110

	// RemarkSeparator joins the rendered remark entries.
	RemarkSeparator = ",  "
)
