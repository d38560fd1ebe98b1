package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/KotFed0t/commodity_value_analyzer/config"
	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/KotFed0t/commodity_value_analyzer/internal/service"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
)

const (
	internalErrMsg        = "Something went wrong, please try again"
	invalidRangeMsg       = "Start date must be before end date"
	noDataMsg             = "No data available for the selected date range"
	invalidQuantityMsg    = "Quantity must be a positive integer"
	invalidDateMsgPattern = "Invalid %s %q, expected format YYYY-MM-DD"
)

type PriceAnalysisService interface {
	Analyze(ctx context.Context, dataset model.Dataset, start, end time.Time, quantity int) (model.Analysis, error)
}

type ChartRenderer interface {
	Render(ctx context.Context, analysis model.Analysis) ([]byte, error)
}

type TableRenderer interface {
	Render(ctx context.Context, out io.Writer, analysis model.Analysis) error
}

type Controller struct {
	dataset       model.Dataset
	service       PriceAnalysisService
	chartRenderer ChartRenderer
	tableRenderer TableRenderer
	chartDir      string
}

func NewController(
	cfg *config.Config,
	dataset model.Dataset,
	service PriceAnalysisService,
	chartRenderer ChartRenderer,
	tableRenderer TableRenderer,
) *Controller {
	return &Controller{
		dataset:       dataset,
		service:       service,
		chartRenderer: chartRenderer,
		tableRenderer: tableRenderer,
		chartDir:      cfg.Chart.Dir,
	}
}

// Submit handles one filled form. User errors are reported to out and never returned,
// the returned error means out itself failed.
func (ctrl *Controller) Submit(ctx context.Context, form model.SubmissionForm, out io.Writer) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	parsed, msg := ParseForm(form)
	if msg != "" {
		slog.Info("invalid form", slog.String("rqID", rqID), slog.String("msg", msg))
		return send(out, msg)
	}

	analysis, err := ctrl.service.Analyze(ctx, ctrl.dataset, parsed.Start, parsed.End, parsed.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRange):
			return send(out, invalidRangeMsg)
		case errors.Is(err, service.ErrNoData):
			return send(out, noDataMsg)
		case errors.Is(err, service.ErrInvalidQuantity):
			return send(out, invalidQuantityMsg)
		default:
			slog.Error("got error from service.Analyze", slog.String("rqID", rqID), slog.String("err", err.Error()))
			return send(out, internalErrMsg)
		}
	}

	chartPath, err := ctrl.saveChart(ctx, analysis)
	if err != nil {
		slog.Error("can't save chart", slog.String("rqID", rqID), slog.String("err", err.Error()))
		if err := send(out, "Chart is not available: "+err.Error()); err != nil {
			return err
		}
	} else if err := send(out, "Chart saved to "+chartPath); err != nil {
		return err
	}

	return ctrl.tableRenderer.Render(ctx, out, analysis)
}

func (ctrl *Controller) saveChart(ctx context.Context, analysis model.Analysis) (string, error) {
	img, err := ctrl.chartRenderer.Render(ctx, analysis)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(ctrl.chartDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("chart_%s_%s", analysis.Start.Format("20060102"), analysis.End.Format("20060102"))
	if rqID := utils.GetRequestIDFromCtx(ctx); rqID != "" {
		name += "_" + strings.SplitN(rqID, "-", 2)[0]
	}

	path := filepath.Join(ctrl.chartDir, name+".png")
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", err
	}

	return path, nil
}

func send(out io.Writer, msg string) error {
	_, err := fmt.Fprintln(out, msg)
	return err
}

// ParseForm validates raw input. A non-empty message means the form is rejected.
func ParseForm(form model.SubmissionForm) (model.ParsedForm, string) {
	start, err := time.Parse(time.DateOnly, strings.TrimSpace(form.StartDate))
	if err != nil {
		return model.ParsedForm{}, fmt.Sprintf(invalidDateMsgPattern, "start date", form.StartDate)
	}

	end, err := time.Parse(time.DateOnly, strings.TrimSpace(form.EndDate))
	if err != nil {
		return model.ParsedForm{}, fmt.Sprintf(invalidDateMsgPattern, "end date", form.EndDate)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
	if err != nil {
		return model.ParsedForm{}, invalidQuantityMsg
	}

	return model.ParsedForm{Start: start, End: end, Quantity: quantity}, ""
}
