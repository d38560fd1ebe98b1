package chartRenderer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/KotFed0t/commodity_value_analyzer/config"
	"github.com/KotFed0t/commodity_value_analyzer/internal/converter/viewConverter"
	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	title = "Closing Prices Over Time - By Value Difference on Total Value From Most Recent Date"

	minXPadding = 12 * time.Hour
	minYPadding = 1.0
)

var (
	colorLine    = drawing.ColorFromHex("1f4fd1")
	colorClose   = drawing.ColorFromHex("2e7d32")
	colorDiff    = drawing.ColorFromHex("7b1fa2")
	colorSummary = drawing.ColorFromHex("0d47a1")
)

type ChartRenderer struct {
	width  int
	height int
}

func New(cfg *config.Config) *ChartRenderer {
	return &ChartRenderer{width: cfg.Chart.Width, height: cfg.Chart.Height}
}

// Render draws the close price line as PNG with per-point close and difference labels.
func (r *ChartRenderer) Render(ctx context.Context, analysis model.Analysis) ([]byte, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "ChartRenderer.Render"

	points := viewConverter.ChartPoints(analysis)
	if len(points) == 0 {
		return nil, errors.New("nothing to render")
	}

	slog.Debug("Render start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("points", len(points)))

	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	closeLabels := make([]chart.Value2, 0, len(points))
	diffLabels := make([]chart.Value2, 0, len(points))

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		yMin = math.Min(yMin, p.Close)
		yMax = math.Max(yMax, p.Close)
	}
	yPad := math.Max((yMax-yMin)*0.15, minYPadding)
	// difference labels sit under the point so they don't cover the close label
	diffOffset := yPad / 3

	for _, p := range points {
		x := chart.TimeToFloat64(p.Date)
		xs = append(xs, p.Date)
		ys = append(ys, p.Close)
		closeLabels = append(closeLabels, chart.Value2{XValue: x, YValue: p.Close, Label: p.CloseLabel})
		diffLabels = append(diffLabels, chart.Value2{XValue: x, YValue: p.Close - diffOffset, Label: p.DiffLabel})
	}

	first, last := points[0].Date, points[len(points)-1].Date
	xPad := time.Duration(float64(last.Sub(first)) * 0.05)
	if xPad < minXPadding {
		xPad = minXPadding
	}

	latest := points[len(points)-1]
	summary := chart.Value2{
		XValue: chart.TimeToFloat64(latest.Date),
		YValue: latest.Close + diffOffset,
		Label:  viewConverter.TotalValueLabel(analysis),
	}

	graph := chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 40, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(first.Add(-xPad)),
				Max: chart.TimeToFloat64(last.Add(xPad)),
			},
			Style: chart.Style{TextRotationDegrees: 45},
		},
		YAxis: chart.YAxis{
			Name:  "Closing Price",
			Range: &chart.ContinuousRange{Min: yMin - yPad, Max: yMax + yPad},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.ColorFromHex("dddddd"),
				StrokeWidth: 1,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Close",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: colorLine,
					StrokeWidth: 2,
					DotColor:    colorLine,
					DotWidth:    4,
				},
			},
			chart.AnnotationSeries{
				Name:        "Close labels",
				Annotations: closeLabels,
				Style:       annotationStyle(colorClose, 9),
			},
			chart.AnnotationSeries{
				Name:        "Difference labels",
				Annotations: diffLabels,
				Style:       annotationStyle(colorDiff, 9),
			},
			chart.AnnotationSeries{
				Name:        "Total value",
				Annotations: []chart.Value2{summary},
				Style:       annotationStyle(colorSummary, 12),
			},
		},
	}

	buf := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buf); err != nil {
		slog.Error("got error while rendering chart", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	slog.Debug("Render completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

func annotationStyle(color drawing.Color, fontSize float64) chart.Style {
	return chart.Style{
		FontColor:   color,
		FontSize:    fontSize,
		StrokeColor: color,
		FillColor:   drawing.ColorWhite,
	}
}
