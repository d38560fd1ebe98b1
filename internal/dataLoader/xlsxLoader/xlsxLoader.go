package xlsxLoader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
	"github.com/xuri/excelize/v2"
)

type XLSXLoader struct {
	sheet string
}

// New returns a loader for the given sheet, empty sheet means the first one in the workbook.
func New(sheet string) *XLSXLoader {
	return &XLSXLoader{sheet: sheet}
}

func (l *XLSXLoader) ReadRows(ctx context.Context, r io.Reader) ([][]string, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XLSXLoader.ReadRows"

	slog.Debug("ReadRows start", slog.String("rqID", rqID), slog.String("op", op), slog.String("sheet", l.sheet))

	f, err := excelize.OpenReader(r)
	if err != nil {
		slog.Error("got error while opening workbook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	sheets := f.GetSheetList()
	sheet := l.sheet
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets: %w", dataLoader.ErrSheetNotFound)
		}
		sheet = sheets[0]
	}

	if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("sheet %q: %w", sheet, dataLoader.ErrSheetNotFound)
	}

	// raw values keep dates as serial numbers instead of locale dependent strings
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		slog.Error("got error while reading rows", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	slog.Debug("ReadRows completed", slog.String("rqID", rqID), slog.String("op", op), slog.String("sheet", sheet), slog.Int("rows", len(rows)))

	return rows, nil
}
