package model

// Kind names follow the wire names of the stored day records, so the
// canonical (date, time, kind) ordering of a day matches data written by
// earlier versions of the tooling.
const (
	KindBasal   = "BASAL"
	KindReading = "BG"
	KindBolus   = "BOLUS"
	KindDevice  = "EVENT"
)

// Event is one record of a day: a glucose reading, a bolus dose, a basal
// adjustment or a device event. Implementations are immutable values.
type Event interface {
	EventDate() string // ISO date YYYY-MM-DD
	EventTime() string // clock HH:MM, empty for daily totals
	Kind() string
}

// Reading is a blood glucose measurement, optionally annotated with the
// carbohydrates eaten and up to three insulin dose fragments delivered
// alongside it.
type Reading struct {
	Date      string      `json:"date"`
	Time      string      `json:"time"`
	BG        *int        `json:"bg,omitempty"` // nil when the meter reported "---"
	Control   bool        `json:"control,omitempty"`
	CarbGrams *int        `json:"carbGrams,omitempty"`
	Insulin   [3]*float64 `json:"insulin,omitempty"`
	EventTag  string      `json:"eventTag,omitempty"`
}

func (r Reading) EventDate() string { return r.Date }
func (r Reading) EventTime() string { return r.Time }
func (r Reading) Kind() string      { return KindReading }

// InsulinSum adds up the dose fragments of the reading.
func (r Reading) InsulinSum() float64 {
	var sum float64
	for _, part := range r.Insulin {
		if part != nil {
			sum += *part
		}
	}
	return sum
}

// BolusDose is a timed insulin disposal. A dose with an empty time is the
// pump's daily total rather than a timed event.
type BolusDose struct {
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	BolusType string   `json:"bolusType,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Command   string   `json:"command,omitempty"`
	Remark    string   `json:"remark,omitempty"`
}

func (b BolusDose) EventDate() string { return b.Date }
func (b BolusDose) EventTime() string { return b.Time }
func (b BolusDose) Kind() string      { return KindBolus }

// BasalAdjustment reports a change of the background insulin delivery:
// a temporary percentage, a profile switch, or a pump run/stop marker
// carried in the free-text remark.
type BasalAdjustment struct {
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	TempDecPct *string `json:"tempDecPct,omitempty"` // e.g. "90%"
	TempIncPct *string `json:"tempIncPct,omitempty"` // e.g. "150%"
	Profile    *string `json:"profile,omitempty"`
	Command    string  `json:"command,omitempty"`
	Remark     *string `json:"remark,omitempty"`
}

func (b BasalAdjustment) EventDate() string { return b.Date }
func (b BasalAdjustment) EventTime() string { return b.Time }
func (b BasalAdjustment) Kind() string      { return KindBasal }

// DeviceEvent is a pump alert or note, identified by an optional short
// code (e.g. E4, W1, 1.2IU) and a description.
type DeviceEvent struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	ShortCode   string `json:"shortCode,omitempty"`
	Description string `json:"description"`
}

func (d DeviceEvent) EventDate() string { return d.Date }
func (d DeviceEvent) EventTime() string { return d.Time }
func (d DeviceEvent) Kind() string      { return KindDevice }
