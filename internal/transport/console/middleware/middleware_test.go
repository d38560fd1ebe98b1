package middleware

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
)

func TestChainOrder(t *testing.T) {
	var calls []string
	mw := func(name string) func(SubmitFunc) SubmitFunc {
		return func(next SubmitFunc) SubmitFunc {
			return func(ctx context.Context, form model.SubmissionForm, out io.Writer) error {
				calls = append(calls, name)
				return next(ctx, form, out)
			}
		}
	}

	h := Chain(func(ctx context.Context, form model.SubmissionForm, out io.Writer) error {
		calls = append(calls, "handler")
		return nil
	}, mw("first"), mw("second"))

	if err := h(context.Background(), model.SubmissionForm{}, io.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "handler"}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestLoggerSetsRequestID(t *testing.T) {
	var rqID string
	h := Logger()(func(ctx context.Context, form model.SubmissionForm, out io.Writer) error {
		rqID = utils.GetRequestIDFromCtx(ctx)
		return nil
	})

	if err := h(context.Background(), model.SubmissionForm{}, io.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rqID == "" {
		t.Fatal("expected request id in context")
	}
}

func TestLoggerPassesError(t *testing.T) {
	want := errors.New("failed")
	h := Logger()(func(ctx context.Context, form model.SubmissionForm, out io.Writer) error { return want })

	if err := h(context.Background(), model.SubmissionForm{}, io.Discard); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestRecover(t *testing.T) {
	h := Recover()(func(ctx context.Context, form model.SubmissionForm, out io.Writer) error {
		panic("boom")
	})

	if err := h(context.Background(), model.SubmissionForm{}, io.Discard); err == nil {
		t.Fatal("expected error from recovered panic")
	}
}
