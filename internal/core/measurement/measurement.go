package measurement

import (
	"github.com/glucodoc/glucodoc/internal/core/factor"
)

// Measurement is one aggregated data point of a day table: a blood glucose
// value plus the insulin and carbohydrates delivered around it, with the
// bolus split into its carbohydrate and correction shares.
//
// BG uses 0 as the "absent" sentinel. Carbs is measured in bread units.
// Invariant after every derivation: IUCorr = IUTotal - IUCarb and
// IUCarb = Carbs * factor(Time).
type Measurement struct {
	Date    string
	Time    string
	BG      int
	IUTotal float64
	IUCarb  float64
	IUCorr  float64
	Carbs   float64
}

// New derives a measurement from the raw quantities. Absent inputs are
// zero; there are no error conditions, parsing is the caller's concern.
func New(sched *factor.Schedule, date, clock string, bg int, bolus, carbs float64) Measurement {
	m := Measurement{
		Date:    date,
		Time:    clock,
		BG:      bg,
		IUTotal: bolus,
		Carbs:   carbs,
	}
	m.derive(sched)
	return m
}

func (m *Measurement) derive(sched *factor.Schedule) {
	m.IUCarb = m.Carbs * sched.FactorAt(m.Time)
	m.IUCorr = m.IUTotal - m.IUCarb
}

// Add folds another measurement into this one. Glucose values average when
// both are present and sum otherwise, preserving the zero sentinel; insulin
// and carbohydrates accumulate. The derived split is recomputed at the
// receiver's timestamp.
func (m *Measurement) Add(other Measurement, sched *factor.Schedule) {
	if m.BG == 0 || other.BG == 0 {
		m.BG += other.BG
	} else {
		m.BG = (m.BG + other.BG) / 2
	}
	m.IUTotal += other.IUTotal
	m.Carbs += other.Carbs
	m.derive(sched)
}
