package audit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"fotobot/internal/storage"
)

type AuditStorage interface {
	LoadAudit() ([]storage.DispatchRecord, error)
}

// Get отдаёт журнал отправок целиком, от старых к новым.
func Get(log *slog.Logger, store AuditStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.audit.Get"

		records, err := store.LoadAudit()
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка чтения журнала отправок")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if records == nil {
			records = []storage.DispatchRecord{}
		}
		render.JSON(w, r, records)
	}
}
