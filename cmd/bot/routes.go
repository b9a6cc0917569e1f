package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getaudit "fotobot/http-server/audit"
	"fotobot/http-server/events"
	exporthandler "fotobot/http-server/export"
	"fotobot/internal/bot"
	"fotobot/internal/config"
	"fotobot/internal/middleware/auth"
	exportservice "fotobot/internal/service/export"
	"fotobot/internal/storage/jsondoc"
)

func routes(cfg config.Config, log *slog.Logger, engine *bot.Engine, exports *exportservice.ExportService, storage *jsondoc.Storage) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// входящие события от шлюза мессенджера
	router.Post("/api/events/text", events.Text(log, engine))
	router.Post("/api/events/button", events.Button(log, engine))

	// админка: выгрузка учёта и журнал отправок
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/export/excel", exporthandler.LedgerExcel(log, exports))
	adminRouter.Get("/audit", getaudit.Get(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
