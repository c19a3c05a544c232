package importer

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/glucodoc/glucodoc/internal/core/model"
	"github.com/glucodoc/glucodoc/internal/util"
)

// report mirrors a raw device export. Pump exports carry an IP header and
// an IPDATA block; meter exports carry a DEVICE header and a BGDATA block.
type report struct {
	XMLName xml.Name
	IP      *struct {
		Date string `xml:"Dt,attr"`
	} `xml:"IP"`
	Device *struct {
		Name string `xml:"Name,attr"`
	} `xml:"DEVICE"`
	PumpData  *dataBlock `xml:"IPDATA"`
	MeterData *dataBlock `xml:"BGDATA"`
}

type dataBlock struct {
	Readings []bgElem    `xml:"BG"`
	Boluses  []bolusElem `xml:"BOLUS"`
	Basals   []basalElem `xml:"BASAL"`
	Events   []eventElem `xml:"EVENT"`
}

// Attribute pointers distinguish an absent attribute from an empty one;
// that difference drives the downstream remark rules.

type bgElem struct {
	Date    string   `xml:"Dt,attr"`
	Time    string   `xml:"Tm,attr"`
	Value   string   `xml:"Val,attr"`
	Control string   `xml:"Ctrl,attr"`
	Carb    *string  `xml:"Carb,attr"`
	Ins1    *float64 `xml:"Ins1,attr"`
	Ins2    *float64 `xml:"Ins2,attr"`
	Ins3    *float64 `xml:"Ins3,attr"`
	Event   string   `xml:"Evt,attr"`
}

type bolusElem struct {
	Date   string   `xml:"Dt,attr"`
	Time   string   `xml:"Tm,attr"`
	Type   string   `xml:"type,attr"`
	Cmd    string   `xml:"cmd,attr"`
	Amount *float64 `xml:"amount,attr"`
	Remark string   `xml:"remark,attr"`
}

type basalElem struct {
	Date    string  `xml:"Dt,attr"`
	Time    string  `xml:"Tm,attr"`
	TBRDec  *string `xml:"TBRdec,attr"`
	TBRInc  *string `xml:"TBRinc,attr"`
	Profile *string `xml:"profile,attr"`
	Cmd     string  `xml:"cmd,attr"`
	Remark  *string `xml:"remark,attr"`
}

type eventElem struct {
	Date        string `xml:"Dt,attr"`
	Time        string `xml:"Tm,attr"`
	ShortInfo   string `xml:"shortinfo,attr"`
	Description string `xml:"description,attr"`
}

// ParseFile reads one device export and returns its events, unordered.
func ParseFile(path string) ([]model.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	events, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return events, nil
}

// Parse decodes a raw device export. Unreadable numeric attributes demote
// gracefully (a glucose value other than a number or the meter's "---"
// becomes an absent value) so one mangled record never sinks an import.
func Parse(data []byte) ([]model.Event, error) {
	var rep report
	if err := xml.Unmarshal(data, &rep); err != nil {
		return nil, err
	}

	var block *dataBlock
	switch {
	case rep.IP != nil && rep.PumpData != nil:
		block = rep.PumpData
	case rep.Device != nil && rep.MeterData != nil:
		block = rep.MeterData
	default:
		return nil, fmt.Errorf("unsupported report root <%s>", rep.XMLName.Local)
	}

	events := make([]model.Event, 0,
		len(block.Readings)+len(block.Boluses)+len(block.Basals)+len(block.Events))

	for _, e := range block.Readings {
		events = append(events, convertReading(e))
	}
	for _, e := range block.Boluses {
		events = append(events, model.BolusDose{
			Date:      e.Date,
			Time:      e.Time,
			BolusType: e.Type,
			Amount:    e.Amount,
			Command:   e.Cmd,
			Remark:    e.Remark,
		})
	}
	for _, e := range block.Basals {
		events = append(events, model.BasalAdjustment{
			Date:       e.Date,
			Time:       e.Time,
			TempDecPct: e.TBRDec,
			TempIncPct: e.TBRInc,
			Profile:    e.Profile,
			Command:    e.Cmd,
			Remark:     e.Remark,
		})
	}
	for _, e := range block.Events {
		events = append(events, model.DeviceEvent{
			Date:        e.Date,
			Time:        e.Time,
			ShortCode:   e.ShortInfo,
			Description: e.Description,
		})
	}
	return events, nil
}

func convertReading(e bgElem) model.Reading {
	r := model.Reading{
		Date:     e.Date,
		Time:     e.Time,
		Control:  strings.TrimSpace(e.Control) != "",
		Insulin:  [3]*float64{e.Ins1, e.Ins2, e.Ins3},
		EventTag: e.Event,
	}
	if e.Value != "" && e.Value != "---" {
		if bg, err := strconv.Atoi(strings.TrimSpace(e.Value)); err == nil {
			r.BG = &bg
		} else {
			util.LogDebugf("reading %s %s: unreadable glucose value %q", e.Date, e.Time, e.Value)
		}
	}
	if e.Carb != nil {
		if grams, err := strconv.Atoi(strings.TrimSpace(*e.Carb)); err == nil {
			r.CarbGrams = &grams
		} else {
			util.LogDebugf("reading %s %s: unreadable carb value %q", e.Date, e.Time, *e.Carb)
		}
	}
	return r
}
