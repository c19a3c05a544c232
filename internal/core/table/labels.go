package table

// Labels supplies the display strings used in remark lines. The pairing
// logic compares remark text against these values, so replacements (e.g.
// translations) must stay distinct from each other and from the
// "TBR NNN%" pattern.
type Labels struct {
	PumpRun       string
	PumpStop      string
	TBREnd        string
	BRChanged     string
	Occlusion     string
	Prime         string
	ControlPrefix string
}

// DefaultLabels returns the English label set.
func DefaultLabels() Labels {
	return Labels{
		PumpRun:       "pump run",
		PumpStop:      "pump stop",
		TBREnd:        "TBR ended",
		BRChanged:     "BR changed to",
		Occlusion:     "occlusion",
		Prime:         "infusion set primed",
		ControlPrefix: "Ctrl: ",
	}
}
