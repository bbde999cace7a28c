// Package chart renders a progress series as a dual-axis line chart.
package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/progress"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the image encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat maps a query value to a Format; empty means SVG.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", SVG:
		return SVG, nil
	case PNG:
		return PNG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", s)
}

// ContentType is the MIME type of images in format f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

const (
	width  = 720
	height = 220

	avgWeightName   = "Avg Weight (lbs)"
	totalVolumeName = "Total Volume (lbs)"
)

var (
	avgWeightColor   = drawing.ColorFromHex("8884d8")
	totalVolumeColor = drawing.ColorFromHex("82ca9d")
)

// Render draws points with weeks on the x-axis, average weight on the left
// axis and total volume on the right axis.
func Render(w io.Writer, title string, points []progress.Point, format Format) error {
	xs := make([]float64, len(points))
	weights := make([]float64, len(points))
	volumes := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Week)
		weights[i] = p.AvgWeight
		volumes[i] = p.TotalVolume
	}

	ticks := make([]gochart.Tick, 0, catalog.ProgramWeeks)
	for wk := 1; wk <= catalog.ProgramWeeks; wk++ {
		ticks = append(ticks, gochart.Tick{Value: float64(wk), Label: strconv.Itoa(wk)})
	}

	ch := gochart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  "Week",
			Range: &gochart.ContinuousRange{Min: 1, Max: float64(catalog.ProgramWeeks)},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  avgWeightName,
			Range: &gochart.ContinuousRange{Min: 0, Max: axisMax(weights)},
		},
		YAxisSecondary: gochart.YAxis{
			Name:  totalVolumeName,
			Range: &gochart.ContinuousRange{Min: 0, Max: axisMax(volumes)},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    avgWeightName,
				XValues: xs,
				YValues: weights,
				Style:   lineStyle(avgWeightColor),
			},
			gochart.ContinuousSeries{
				Name:    totalVolumeName,
				YAxis:   gochart.YAxisSecondary,
				XValues: xs,
				YValues: volumes,
				Style:   lineStyle(totalVolumeColor),
			},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	provider := gochart.SVG
	if format == PNG {
		provider = gochart.PNG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("rendering chart %q: %w", title, err)
	}
	return nil
}

func lineStyle(c drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: c,
		StrokeWidth: 2,
		DotColor:    c,
		DotWidth:    3,
	}
}

// axisMax returns a headroom-padded maximum, never zero so an empty series
// still has a drawable range.
func axisMax(vals []float64) float64 {
	top := 0.0
	for _, v := range vals {
		if v > top {
			top = v
		}
	}
	if top <= 0 {
		return 1
	}
	if padded := top * 1.1; !math.IsInf(padded, 0) {
		return padded
	}
	return top
}
