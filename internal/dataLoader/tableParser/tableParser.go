package tableParser

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader"
	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	DateColumn  = "Date"
	OpenColumn  = "Open"
	CloseColumn = "Close"

	previewRows = 5
)

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

type columns struct {
	date  int
	open  int
	close int
}

// Parse turns raw table rows into price records. The first skipRows rows are banner rows,
// the next one is the header.
func Parse(ctx context.Context, rows [][]string, skipRows int) ([]model.PriceRecord, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "tableParser.Parse"

	if skipRows < 0 {
		skipRows = 0
	}

	if len(rows) <= skipRows {
		return nil, fmt.Errorf("no header row after skipping %d rows: %w", skipRows, dataLoader.ErrMissingColumn)
	}

	header := rows[skipRows]
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	slog.Debug("resolved columns", slog.String("rqID", rqID), slog.String("op", op), slog.Any("header", header), slog.Int("dateCol", cols.date), slog.Int("openCol", cols.open), slog.Int("closeCol", cols.close))

	records := make([]model.PriceRecord, 0, len(rows)-skipRows-1)
	for i, row := range rows[skipRows+1:] {
		rowNum := skipRows + 2 + i

		if isBlank(row) {
			continue
		}

		rawDate := cell(row, cols.date)
		if rawDate == "" {
			slog.Debug("skip row without date", slog.String("rqID", rqID), slog.String("op", op), slog.Int("row", rowNum))
			continue
		}

		date, err := ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		records = append(records, model.PriceRecord{
			Date:  date,
			Open:  ParsePrice(cell(row, cols.open)),
			Close: ParsePrice(cell(row, cols.close)),
		})
	}

	for i := 0; i < len(records) && i < previewRows; i++ {
		slog.Debug(
			"loaded record",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.String("date", records[i].Date.Format(time.DateOnly)),
			slog.Any("open", records[i].Open),
			slog.Any("close", records[i].Close),
		)
	}

	return records, nil
}

// NormalizeHeader makes column names comparable regardless of case and whitespace.
func NormalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{date: -1, open: -1, close: -1}

	for i, name := range header {
		switch NormalizeHeader(name) {
		case NormalizeHeader(DateColumn):
			if cols.date < 0 {
				cols.date = i
			}
		case NormalizeHeader(OpenColumn):
			if cols.open < 0 {
				cols.open = i
			}
		case NormalizeHeader(CloseColumn):
			if cols.close < 0 {
				cols.close = i
			}
		}
	}

	if cols.date < 0 {
		return columns{}, fmt.Errorf("column %q: %w", DateColumn, dataLoader.ErrMissingColumn)
	}

	if cols.close < 0 {
		return columns{}, fmt.Errorf("column %q: %w", CloseColumn, dataLoader.ErrMissingColumn)
	}

	return cols, nil
}

// ParseDate accepts the common text layouts and Excel serial date numbers.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return model.DateOnly(t), nil
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return model.DateOnly(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%q: %w", raw, dataLoader.ErrInvalidDate)
}

// ParsePrice returns an invalid NullDecimal for blank or malformed cells.
func ParsePrice(raw string) decimal.NullDecimal {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, " ", "")

	if raw == "" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(d)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
