package middleware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
)

type SubmitFunc func(ctx context.Context, form model.SubmissionForm, out io.Writer) error

// Chain applies middlewares so that the first one is the outermost.
func Chain(h SubmitFunc, mws ...func(SubmitFunc) SubmitFunc) SubmitFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func Logger() func(SubmitFunc) SubmitFunc {
	return func(next SubmitFunc) SubmitFunc {
		return func(ctx context.Context, form model.SubmissionForm, out io.Writer) error {
			now := time.Now()

			ctx = utils.CreateCtxWithRqID(ctx)
			rqID := utils.GetRequestIDFromCtx(ctx)

			slog.Info(
				"start submission",
				slog.String("rqID", rqID),
				slog.String("startDate", form.StartDate),
				slog.String("endDate", form.EndDate),
				slog.String("quantity", form.Quantity),
			)

			defer func() {
				slog.Info(
					"submission finished",
					slog.String("rqID", rqID),
					slog.String("duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())),
				)
			}()

			return next(ctx, form, out)
		}
	}
}

// Recover turns a panic inside a submission into an error, the session keeps running.
func Recover() func(SubmitFunc) SubmitFunc {
	return func(next SubmitFunc) SubmitFunc {
		return func(ctx context.Context, form model.SubmissionForm, out io.Writer) (err error) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error(
						"panic recovered in submission",
						slog.String("rqID", utils.GetRequestIDFromCtx(ctx)),
						slog.Any("panic", r),
						slog.String("stacktrace", string(debug.Stack())),
					)
					err = fmt.Errorf("submission panic: %v", r)
				}
			}()

			return next(ctx, form, out)
		}
	}
}
