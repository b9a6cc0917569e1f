package events

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Dispatcher — вход движка диалогов. Сюда шлюз мессенджера отдаёт
// входящие сообщения и нажатия кнопок.
type Dispatcher interface {
	HandleText(ctx context.Context, userID int64, text string) error
	HandleButton(ctx context.Context, userID int64, token string) error
}

type TextEvent struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

type ButtonEvent struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

type Response struct {
	Status string `json:"status"`
}

func Text(log *slog.Logger, d Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.events.Text"

		var ev TextEvent
		if err := render.DecodeJSON(r.Body, &ev); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("не удалось разобрать событие")
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if ev.UserID == 0 {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		if err := d.HandleText(r.Context(), ev.UserID, ev.Text); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка обработки сообщения")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "ok"})
	}
}

func Button(log *slog.Logger, d Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.events.Button"

		var ev ButtonEvent
		if err := render.DecodeJSON(r.Body, &ev); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("не удалось разобрать событие")
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if ev.UserID == 0 || ev.Token == "" {
			http.Error(w, "user_id and token are required", http.StatusBadRequest)
			return
		}

		if err := d.HandleButton(r.Context(), ev.UserID, ev.Token); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка обработки кнопки")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "ok"})
	}
}
