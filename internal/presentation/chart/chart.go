package chart

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/glucodoc/glucodoc/internal/core/table"
	"github.com/glucodoc/glucodoc/internal/util"
)

const (
	width  = 960
	height = 480

	marginLeft   = 56.0
	marginRight  = 16.0
	marginTop    = 40.0
	marginBottom = 40.0

	bgMin = 40
	bgMax = 320
)

// Renderer draws a day's glucose readings on a 24-hour axis.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderDay draws the glucose readings of the day's tables and writes the
// chart as a PNG file.
func (r *Renderer) RenderDay(date string, tables []*table.Table, path string) error {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if err := loadFont(dc, 13); err != nil {
		return fmt.Errorf("load chart font: %w", err)
	}

	plotW := width - marginLeft - marginRight
	plotH := height - marginTop - marginBottom

	xAt := func(minute int) float64 {
		return marginLeft + plotW*float64(minute)/(24*60)
	}
	yAt := func(bg int) float64 {
		return marginTop + plotH*float64(bgMax-bg)/float64(bgMax-bgMin)
	}

	// Grid: a vertical line every 3 hours, a horizontal one every 40 mg/dl.
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(1)
	for h := 0; h <= 24; h += 3 {
		x := xAt(h * 60)
		dc.DrawLine(x, marginTop, x, height-marginBottom)
		dc.Stroke()
	}
	for bg := bgMin; bg <= bgMax; bg += 40 {
		y := yAt(bg)
		dc.DrawLine(marginLeft, y, width-marginRight, y)
		dc.Stroke()
	}

	// Axis labels.
	dc.SetRGB(0.2, 0.2, 0.2)
	for h := 0; h <= 24; h += 3 {
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), xAt(h*60), height-marginBottom+14, 0.5, 0.5)
	}
	for bg := bgMin; bg <= bgMax; bg += 40 {
		dc.DrawStringAnchored(fmt.Sprintf("%d", bg), marginLeft-8, yAt(bg), 1, 0.5)
	}
	dc.DrawStringAnchored(date+"  blood glucose (mg/dl)", marginLeft, marginTop-16, 0, 0.5)

	// Readings, connected in time order.
	type point struct {
		x, y    float64
		clipped bool
	}
	var points []point
	for _, t := range tables {
		for _, c := range t.Columns() {
			m := c.Measurement()
			if m.BG <= 0 {
				continue
			}
			bg := m.BG
			clipped := false
			if bg < bgMin {
				bg, clipped = bgMin, true
			} else if bg > bgMax {
				bg, clipped = bgMax, true
			}
			points = append(points, point{xAt(util.MinuteOfDay(m.Time)), yAt(bg), clipped})
		}
	}

	dc.SetRGB(0.1, 0.35, 0.7)
	dc.SetLineWidth(1.5)
	for i := 1; i < len(points); i++ {
		dc.DrawLine(points[i-1].x, points[i-1].y, points[i].x, points[i].y)
		dc.Stroke()
	}
	for _, p := range points {
		if p.clipped {
			// Out-of-scale readings render as open markers on the edge.
			dc.DrawCircle(p.x, p.y, 4)
			dc.Stroke()
			continue
		}
		dc.DrawCircle(p.x, p.y, 3)
		dc.Fill()
	}

	return dc.SavePNG(path)
}

func loadFont(dc *gg.Context, size float64) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size}))
	return nil
}
