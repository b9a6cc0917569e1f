package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"fotobot/internal/bot"
	"fotobot/internal/config"
	"fotobot/internal/scheduler"
	"fotobot/internal/service/export"
	"fotobot/internal/service/report"
	"fotobot/internal/storage/jsondoc"
	"fotobot/internal/transport/webhook"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	// Файлы данных должны существовать или создаться, иначе не стартуем
	storage, err := jsondoc.New(*cfg)
	if err != nil {
		log.Error("failed to open storage", "error", err.Error())
		os.Exit(1)
	}

	sender := webhook.New(cfg.OutboundURL)
	reports := report.NewReportService(storage)
	exports := export.NewExportService(storage)
	access := bot.NewAccess(cfg.AdminIDs)
	engine := bot.NewEngine(log, storage, reports, sender, access, cfg.GroupChatID)
	daily := scheduler.New(log, reports, sender, cfg.GroupChatID, cfg.ReportHour, cfg.ReportMinute)

	log.Info("bot started",
		slog.String("address", cfg.Address),
		slog.Int("report_hour", cfg.ReportHour),
		slog.Int("report_minute", cfg.ReportMinute),
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, engine, exports, storage),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	g, ctx := errgroup.WithContext(context.Background())

	// ежедневный отчёт живёт своим таймером, отдельно от обработки событий
	g.Go(func() error {
		return daily.Run(ctx)
	})
	g.Go(func() error {
		return srv.ListenAndServe()
	})

	if err := g.Wait(); err != nil {
		log.Error("bot stopped", "error", err.Error())
	}
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	// Всегда пишем в основной вывод (stdout)
	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// Если это ошибка — дублируем в файл
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		cloned := r.Clone()
		if fileErr := h.errorHandler.Handle(ctx, cloned); fileErr != nil {
			return err
		}
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	switch env {
	case envProd:
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envLocal:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	// Файловый handler — только ошибки
	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		slog.Warn("Cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
