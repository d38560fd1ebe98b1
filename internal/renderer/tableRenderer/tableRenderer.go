package tableRenderer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/KotFed0t/commodity_value_analyzer/config"
	"github.com/KotFed0t/commodity_value_analyzer/internal/converter/viewConverter"
	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
	"github.com/fatih/color"
)

const rowFormat = " %-12s %14s %14s "

type TableRenderer struct {
	header  *color.Color
	evenRow *color.Color
	oddRow  *color.Color
}

func New(cfg *config.Config) *TableRenderer {
	r := &TableRenderer{
		header:  color.New(color.Bold, color.FgHiWhite, color.BgCyan),
		evenRow: color.New(color.FgBlack, color.BgHiWhite),
		oddRow:  color.New(color.FgBlack, color.BgWhite), // light grey on most terminals
	}

	for _, c := range []*color.Color{r.header, r.evenRow, r.oddRow} {
		if cfg.Table.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// Render prints Date, Open and Close of every filtered record with striped rows, then the summary.
func (r *TableRenderer) Render(ctx context.Context, out io.Writer, analysis model.Analysis) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TableRenderer.Render"

	rows := viewConverter.TableRows(analysis)

	if err := r.line(out, r.header, fmt.Sprintf(rowFormat, "Date", "Open", "Close")); err != nil {
		slog.Error("got error while writing table", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	for i, row := range rows {
		style := r.evenRow
		if i%2 == 1 {
			style = r.oddRow
		}

		if err := r.line(out, style, fmt.Sprintf(rowFormat, row.Date, row.Open, row.Close)); err != nil {
			slog.Error("got error while writing table", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}
	}

	_, err := fmt.Fprintln(out, viewConverter.SummaryText(analysis))
	return err
}

func (r *TableRenderer) line(out io.Writer, style *color.Color, text string) error {
	if _, err := style.Fprint(out, text); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out)
	return err
}
