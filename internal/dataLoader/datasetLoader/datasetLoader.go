package datasetLoader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KotFed0t/commodity_value_analyzer/config"
	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader"
	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader/csvLoader"
	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader/tableParser"
	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader/xlsxLoader"
	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
)

type RowsReader interface {
	ReadRows(ctx context.Context, r io.Reader) ([][]string, error)
}

type DatasetLoader struct {
	cfg     *config.Config
	readers map[string]RowsReader
}

func New(cfg *config.Config) *DatasetLoader {
	xlsx := xlsxLoader.New(cfg.Dataset.Sheet)
	return &DatasetLoader{
		cfg: cfg,
		readers: map[string]RowsReader{
			".xlsx": xlsx,
			".xlsm": xlsx,
			".xltx": xlsx,
			".xltm": xlsx,
			".csv":  csvLoader.New(),
		},
	}
}

// Load reads the configured dataset file once. A missing Date or Close column is returned as dataLoader.ErrMissingColumn.
func (l *DatasetLoader) Load(ctx context.Context) (model.Dataset, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "DatasetLoader.Load"
	path := l.cfg.Dataset.Path

	slog.Info("loading dataset", slog.String("rqID", rqID), slog.String("op", op), slog.String("path", path))

	reader, ok := l.readers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return model.Dataset{}, fmt.Errorf("%s: %w", path, dataLoader.ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		slog.Error("can't open dataset file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Dataset{}, err
	}
	defer f.Close()

	rows, err := reader.ReadRows(ctx, f)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}

	records, err := tableParser.Parse(ctx, rows, l.cfg.Dataset.SkipRows)
	if err != nil {
		slog.Error("can't parse dataset", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Dataset{}, fmt.Errorf("parse %s: %w", path, err)
	}

	dataset := model.NewDataset(records)

	slog.Info("dataset loaded", slog.String("rqID", rqID), slog.String("op", op), slog.Int("records", dataset.Len()))

	return dataset, nil
}
