package portfolio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/folio/internal/models"
)

// RenderPerformanceChart renders a performance series as a PNG line chart.
func (s *Service) RenderPerformanceChart(series *models.PerformanceSeries) ([]byte, error) {
	return renderPerformanceChart(series)
}

// renderPerformanceChart draws the portfolio value over the series' timeframe.
// Intraday series label the x axis with hours, longer ones with dates.
func renderPerformanceChart(series *models.PerformanceSeries) ([]byte, error) {
	if series == nil || len(series.Data) < 2 {
		n := 0
		if series != nil {
			n = len(series.Data)
		}
		return nil, fmt.Errorf("need at least 2 data points, got %d", n)
	}

	xValues := make([]time.Time, len(series.Data))
	yValues := make([]float64, len(series.Data))
	for i, p := range series.Data {
		xValues[i] = p.Date
		yValues[i] = p.Value
	}

	layout := "Jan 02"
	if series.Timeframe == "1D" {
		layout = "15:04"
	}

	color := "16a34a" // green-600
	if series.Summary.Return < 0 {
		color = "dc2626" // red-600
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Portfolio Performance (%s)", series.Timeframe),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format(layout)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.1fk", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Portfolio Value",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex(color),
					StrokeWidth: 2.5,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
