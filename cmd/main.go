package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KotFed0t/commodity_value_analyzer/config"
	"github.com/KotFed0t/commodity_value_analyzer/internal/consoleApp"
	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader/datasetLoader"
	"github.com/KotFed0t/commodity_value_analyzer/internal/renderer/chartRenderer"
	"github.com/KotFed0t/commodity_value_analyzer/internal/renderer/tableRenderer"
	"github.com/KotFed0t/commodity_value_analyzer/internal/service/priceAnalysisService"
	"github.com/KotFed0t/commodity_value_analyzer/internal/transport/console"
	"github.com/KotFed0t/commodity_value_analyzer/utils"
)

func main() {
	cfg := config.MustLoad()

	logFile := setupLogger(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	slog.Debug("config", slog.Any("cfg", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dataset, err := datasetLoader.New(cfg).Load(utils.CreateCtxWithRqID(ctx))
	if err != nil {
		slog.Error("can't load dataset", slog.String("path", cfg.Dataset.Path), slog.String("err", err.Error()))
		fmt.Fprintf(os.Stderr, "can't load dataset %q: %s\n", cfg.Dataset.Path, err)
		os.Exit(1)
	}

	priceAnalysisSrv := priceAnalysisService.New()

	ctrl := console.NewController(
		cfg,
		dataset,
		priceAnalysisSrv,
		chartRenderer.New(cfg),
		tableRenderer.New(cfg),
	)

	app := consoleApp.New(ctx, ctrl)

	done := make(chan error, 1)
	go func() {
		done <- app.Run()
	}()

	// Waiting interruption signal or the end of the session
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-interrupt:
		slog.Info("interrupted")
		// give the UI a chance to restore the terminal
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			slog.Error("console app failed", slog.String("err", err.Error()))
			fmt.Fprintf(os.Stderr, "console app failed: %s\n", err)
			os.Exit(1)
		}
	}
}

func setupLogger(cfg *config.Config) *os.File {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	// the terminal belongs to the interactive session
	var (
		out  io.Writer = io.Discard
		file *os.File
	)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "can't open log file %q: %s\n", cfg.LogFile, err)
		} else {
			out, file = f, f
		}
	}

	log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	return file
}
