package scheduler

import (
	"context"
	"log/slog"
	"time"

	"fotobot/internal/service/report"
	"fotobot/internal/transport"
)

// Scheduler раз в день в заданное время шлёт отчёт в группу без
// подтверждения. Пропущенный запуск не навёрстывается: после рестарта
// следующее срабатывание считается заново от текущего момента.
type Scheduler struct {
	log         *slog.Logger
	reports     *report.ReportService
	send        transport.Sender
	groupChatID int64
	hour        int
	minute      int
	now         func() time.Time
}

func New(log *slog.Logger, reports *report.ReportService, send transport.Sender, groupChatID int64, hour, minute int) *Scheduler {
	return &Scheduler{
		log:         log,
		reports:     reports,
		send:        send,
		groupChatID: groupChatID,
		hour:        hour,
		minute:      minute,
		now:         time.Now,
	}
}

// NextRun — ближайшее наступление hour:minute строго после now.
// Если сегодня время уже прошло — завтра.
func NextRun(now time.Time, hour, minute int) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// Run крутится до отмены контекста, то есть всю жизнь процесса.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next := NextRun(s.now(), s.hour, s.minute)
		timer := time.NewTimer(next.Sub(s.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		s.fire(ctx)
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	const op = "scheduler.fire"

	summary, err := s.reports.Summary(transport.MarkupMarkdown)
	if err != nil {
		s.log.With(slog.String("op", op), slog.String("error", err.Error())).Error("не удалось собрать отчёт")
		return
	}

	// журнал пополняется только после фактической отправки
	if err := s.send.SendToChannel(ctx, s.groupChatID, summary); err != nil {
		s.log.With(slog.String("op", op), slog.String("error", err.Error())).Error("не удалось отправить отчёт в группу")
		return
	}
	if err := s.reports.RecordDispatch(summary); err != nil {
		s.log.With(slog.String("op", op), slog.String("error", err.Error())).Error("не удалось записать журнал отправок")
	}

	s.log.Info("ежедневный отчёт отправлен", slog.String("at", s.now().Format(time.RFC3339)))
}

// WithClock подменяет источник времени (для тестов).
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}
