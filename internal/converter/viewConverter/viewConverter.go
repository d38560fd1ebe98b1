package viewConverter

import (
	"fmt"
	"time"

	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/shopspring/decimal"
)

type ChartPoint struct {
	Date       time.Time
	Close      float64
	CloseLabel string
	DiffLabel  string
}

type TableRow struct {
	Date  string
	Open  string
	Close string
}

func ChartPoints(analysis model.Analysis) []ChartPoint {
	points := make([]ChartPoint, 0, len(analysis.Records))
	for _, rec := range analysis.Records {
		points = append(points, ChartPoint{
			Date:       rec.Date,
			Close:      rec.Close.Decimal.InexactFloat64(),
			CloseLabel: rec.Close.Decimal.StringFixed(2),
			DiffLabel:  fmt.Sprintf("Diff: %s", rec.Difference.StringFixed(2)),
		})
	}
	return points
}

func TableRows(analysis model.Analysis) []TableRow {
	rows := make([]TableRow, 0, len(analysis.Records))
	for _, rec := range analysis.Records {
		rows = append(rows, TableRow{
			Date:  rec.Date.Format(time.DateOnly),
			Open:  nullString(rec.Open),
			Close: nullString(rec.Close),
		})
	}
	return rows
}

func TotalValueLabel(analysis model.Analysis) string {
	return fmt.Sprintf("Total Value: %s", analysis.LatestTotalValue.StringFixed(2))
}

func SummaryText(analysis model.Analysis) string {
	return fmt.Sprintf(
		"%d records from %s to %s, quantity %d. Most recent close on %s: %s. %s",
		len(analysis.Records),
		analysis.Start.Format(time.DateOnly),
		analysis.End.Format(time.DateOnly),
		analysis.Quantity,
		analysis.LatestDate.Format(time.DateOnly),
		analysis.LatestClose.StringFixed(2),
		TotalValueLabel(analysis),
	)
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
