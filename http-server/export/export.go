package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ExportHandler interface {
	ExportExcel() ([]byte, error)
}

// LedgerExcel отдаёт весь учёт одним xlsx-файлом.
func LedgerExcel(log *slog.Logger, exp ExportHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.export.LedgerExcel"

		data, err := exp.ExportExcel()
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка генерации excel")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("photo_counts_%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(data)
	}
}
