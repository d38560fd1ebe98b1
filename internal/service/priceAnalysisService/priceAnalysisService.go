package priceAnalysisService

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/KotFed0t/commodity_value_analyzer/internal/service"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
	"github.com/shopspring/decimal"
)

// PriceAnalysisService is stateless: the dataset comes in with every call.
type PriceAnalysisService struct{}

func New() *PriceAnalysisService {
	return &PriceAnalysisService{}
}

// FilterRange selects records dated within [start, end] that have a close price.
func (s *PriceAnalysisService) FilterRange(ctx context.Context, dataset model.Dataset, start, end time.Time) ([]model.PriceRecord, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PriceAnalysisService.FilterRange"

	start, end = model.DateOnly(start), model.DateOnly(end)

	if start.After(end) {
		slog.Warn("invalid range", slog.String("rqID", rqID), slog.String("op", op), slog.Time("start", start), slog.Time("end", end))
		return nil, service.ErrInvalidRange
	}

	var res []model.PriceRecord
	for _, rec := range dataset.Records() {
		if !rec.Close.Valid {
			continue
		}

		date := model.DateOnly(rec.Date)
		if date.Before(start) || date.After(end) {
			continue
		}

		res = append(res, rec)
	}

	slog.Debug("FilterRange done", slog.String("rqID", rqID), slog.String("op", op), slog.Int("datasetLen", dataset.Len()), slog.Int("filtered", len(res)))

	if len(res) == 0 {
		return nil, service.ErrNoData
	}

	return res, nil
}

// ComputeValues sorts records by date and derives total value and difference from the latest close.
func (s *PriceAnalysisService) ComputeValues(ctx context.Context, records []model.PriceRecord, quantity int) ([]model.FilteredRecord, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PriceAnalysisService.ComputeValues"

	if quantity <= 0 {
		slog.Warn("invalid quantity", slog.String("rqID", rqID), slog.String("op", op), slog.Int("quantity", quantity))
		return nil, service.ErrInvalidQuantity
	}

	if len(records) == 0 {
		return nil, service.ErrNoData
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b model.PriceRecord) int {
		return a.Date.Compare(b.Date)
	})

	for _, rec := range sorted {
		if !rec.Close.Valid {
			return nil, fmt.Errorf("missing close price on %s: %w", rec.Date.Format(time.DateOnly), service.ErrNoData)
		}
	}

	q := decimal.NewFromInt(int64(quantity))
	latestTotalValue := sorted[len(sorted)-1].Close.Decimal.Mul(q)

	res := make([]model.FilteredRecord, 0, len(sorted))
	for _, rec := range sorted {
		totalValue := rec.Close.Decimal.Mul(q)
		res = append(res, model.FilteredRecord{
			PriceRecord: rec,
			TotalValue:  totalValue,
			Difference:  latestTotalValue.Sub(totalValue),
		})
	}

	slog.Debug("ComputeValues done", slog.String("rqID", rqID), slog.String("op", op), slog.String("latestTotalValue", latestTotalValue.String()))

	return res, nil
}

// Analyze runs one user submission: range check, filter, then value computation.
func (s *PriceAnalysisService) Analyze(ctx context.Context, dataset model.Dataset, start, end time.Time, quantity int) (model.Analysis, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PriceAnalysisService.Analyze"

	slog.Debug("Analyze start", slog.String("rqID", rqID), slog.String("op", op), slog.Time("start", start), slog.Time("end", end), slog.Int("quantity", quantity))
	defer func() {
		slog.Debug("Analyze finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	filtered, err := s.FilterRange(ctx, dataset, start, end)
	if err != nil {
		return model.Analysis{}, err
	}

	records, err := s.ComputeValues(ctx, filtered, quantity)
	if err != nil {
		return model.Analysis{}, err
	}

	latest := records[len(records)-1]

	return model.Analysis{
		Start:            model.DateOnly(start),
		End:              model.DateOnly(end),
		Quantity:         quantity,
		Records:          records,
		LatestDate:       latest.Date,
		LatestClose:      latest.Close.Decimal,
		LatestTotalValue: latest.TotalValue,
	}, nil
}
