package store

import (
	"fmt"

	"github.com/glucodoc/glucodoc/internal/core/model"
)

// dayFile is the on-disk shape of one stored day.
type dayFile struct {
	Date   string        `json:"date"`
	Events []eventRecord `json:"events"`
}

// eventRecord is the envelope around one event variant. Exactly one of
// the variant fields is set, selected by Kind.
type eventRecord struct {
	Kind    string                 `json:"kind"`
	Reading *model.Reading         `json:"reading,omitempty"`
	Bolus   *model.BolusDose       `json:"bolus,omitempty"`
	Basal   *model.BasalAdjustment `json:"basal,omitempty"`
	Device  *model.DeviceEvent     `json:"device,omitempty"`
}

func encodeEvent(ev model.Event) (eventRecord, error) {
	switch e := ev.(type) {
	case model.Reading:
		return eventRecord{Kind: model.KindReading, Reading: &e}, nil
	case model.BolusDose:
		return eventRecord{Kind: model.KindBolus, Bolus: &e}, nil
	case model.BasalAdjustment:
		return eventRecord{Kind: model.KindBasal, Basal: &e}, nil
	case model.DeviceEvent:
		return eventRecord{Kind: model.KindDevice, Device: &e}, nil
	default:
		return eventRecord{}, fmt.Errorf("unknown event kind %q", ev.Kind())
	}
}

func (r eventRecord) decode() (model.Event, error) {
	switch r.Kind {
	case model.KindReading:
		if r.Reading != nil {
			return *r.Reading, nil
		}
	case model.KindBolus:
		if r.Bolus != nil {
			return *r.Bolus, nil
		}
	case model.KindBasal:
		if r.Basal != nil {
			return *r.Basal, nil
		}
	case model.KindDevice:
		if r.Device != nil {
			return *r.Device, nil
		}
	}
	return nil, fmt.Errorf("malformed event record of kind %q", r.Kind)
}
