package forecast

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/augur/internal/models"
)

// RenderChart renders the resolved symbol's closing history with the three
// forecast tracks appended, as raw PNG bytes.
func (s *Service) RenderChart(ctx context.Context, raw string) ([]byte, error) {
	symbol, bars, err := s.resolver.ResolveDaily(ctx, raw)
	if err != nil {
		return nil, err
	}

	prediction, err := s.predictResolved(ctx, symbol, bars)
	if err != nil {
		return nil, err
	}

	return renderForecastChart(symbol, bars, prediction)
}

// renderForecastChart draws history (solid blue) plus one series per model.
// Forecast dates advance one calendar day per step from the last bar.
func renderForecastChart(symbol string, bars []models.Bar, prediction *models.StockPrediction) ([]byte, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("need at least 2 history points, got %d", len(bars))
	}

	historyX := make([]time.Time, len(bars))
	historyY := make([]float64, len(bars))
	for i, b := range bars {
		historyX[i] = b.Date
		historyY[i] = b.Close
	}

	lastDate := bars[len(bars)-1].Date
	forecastX := make([]time.Time, Horizon)
	for i := range forecastX {
		forecastX[i] = lastDate.AddDate(0, 0, i+1)
	}

	historySeries := chart.TimeSeries{
		Name: "Close",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: historyX,
		YValues: historyY,
	}

	maSeries := chart.TimeSeries{
		Name: "MA",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: forecastX,
		YValues: prediction.MAPrediction,
	}

	armaSeries := chart.TimeSeries{
		Name: "ARMA",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("f59e0b"), // amber-500
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: forecastX,
		YValues: prediction.ARMAPrediction,
	}

	arimaSeries := chart.TimeSeries{
		Name: "ARIMA",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("16a34a"), // green-600
			StrokeWidth: 2.0,
		},
		XValues: forecastX,
		YValues: prediction.ARIMAPrediction,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Forecast", symbol),
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
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			historySeries,
			maSeries,
			armaSeries,
			arimaSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
