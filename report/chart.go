package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rustyeddy/tradeboard/metrics"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

var (
	gainColor   = drawing.ColorFromHex("16a34a") // green-600
	lossColor   = drawing.ColorFromHex("dc2626") // red-600
	equityColor = drawing.ColorFromHex("2563eb") // blue-600
	startColor  = drawing.ColorFromHex("9ca3af") // gray-400
)

const barWidth = 24

// EquityChart renders the equity curve as a PNG. The curve is anchored at
// start on the day before its first point.
func EquityChart(w io.Writer, curve []metrics.DayValue, start float64) error {
	if len(curve) == 0 {
		return ErrNoData
	}

	xValues := make([]time.Time, 0, len(curve)+1)
	yValues := make([]float64, 0, len(curve)+1)
	xValues = append(xValues, curve[0].Date.AddDate(0, 0, -1))
	yValues = append(yValues, start)
	for _, p := range curve {
		xValues = append(xValues, p.Date)
		yValues = append(yValues, p.Value)
	}

	baseline := make([]float64, len(xValues))
	for i := range baseline {
		baseline[i] = start
	}

	graph := chart.Chart{
		Title:  "Equity",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: padded(yValues),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Equity",
				Style:   chart.Style{StrokeColor: equityColor, StrokeWidth: 2.5},
				XValues: xValues,
				YValues: yValues,
			},
			chart.TimeSeries{
				Name: "Start Capital",
				Style: chart.Style{
					StrokeColor:     startColor,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5.0, 3.0},
				},
				XValues: xValues,
				YValues: baseline,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render equity chart: %w", err)
	}
	return nil
}

// DailyChart renders daily net P&L as coloured bars.
func DailyChart(w io.Writer, daily []metrics.DayValue) error {
	if len(daily) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(daily))
	values := make([]float64, len(daily))
	for i, d := range daily {
		bars[i] = chart.Value{
			Label: d.Date.Format("01-02"),
			Value: d.Value,
			Style: barStyle(d.Value >= 0),
		}
		values[i] = d.Value
	}

	return renderBars(w, "Daily Net P&L", bars, values)
}

// HistogramChart renders the P&L distribution. Each bar is coloured by the
// outcome most of its trades had.
func HistogramChart(w io.Writer, bins []metrics.Bin) error {
	if len(bins) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(bins))
	values := make([]float64, len(bins))
	for i, b := range bins {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%.0f", (b.Low+b.High)/2),
			Value: float64(b.Count()),
			Style: barStyle(b.Gains >= b.Losses),
		}
		values[i] = float64(b.Count())
	}

	return renderBars(w, "P&L Distribution", bars, values)
}

func barStyle(gain bool) chart.Style {
	c := lossColor
	if gain {
		c = gainColor
	}
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

func renderBars(w io.Writer, title string, bars []chart.Value, values []float64) error {
	graph := chart.BarChart{
		Title:  title,
		Width:  max(600, len(bars)*(barWidth+8)+120),
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth:     barWidth,
		UseBaseValue: true,
		BaseValue:    0,
		XAxis:        chart.Style{Hidden: len(bars) > 40},
		YAxis: chart.YAxis{
			Range: zeroBased(values),
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s: %w", title, err)
	}
	return nil
}

// zeroBased is a y range that always includes zero and is never empty.
func zeroBased(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// padded is a y range around values with a little headroom.
func padded(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.05, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
