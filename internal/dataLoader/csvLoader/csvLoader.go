package csvLoader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/KotFed0t/commodity_value_analyzer/utils"
)

type CSVLoader struct{}

func New() *CSVLoader {
	return &CSVLoader{}
}

func (l *CSVLoader) ReadRows(ctx context.Context, r io.Reader) ([][]string, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "CSVLoader.ReadRows"

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		slog.Error("failed to read csv records", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("read csv: %w", err)
	}

	slog.Debug("ReadRows completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("rows", len(rows)))

	return rows, nil
}
