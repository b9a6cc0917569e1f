package report

import (
	"fmt"
	"strings"
	"time"

	"fotobot/internal/storage"
	"fotobot/internal/transport"
)

const EmptyLedgerText = "No data yet."

type ReportStorage interface {
	LoadLedger() (*storage.Ledger, error)
	AppendDispatch(rec storage.DispatchRecord) error
}

type ReportService struct {
	storage ReportStorage
	now     func() time.Time
}

func NewReportService(storage ReportStorage) *ReportService {
	return &ReportService{storage: storage, now: time.Now}
}

// BuildSummary — чистая функция: по снимку данных собирает текст отчёта
// за указанную дату. Строки идут в порядке добавления сотрудников.
func BuildSummary(ledger *storage.Ledger, date string, markup transport.Markup) string {
	if ledger.Empty() {
		return EmptyLedgerText
	}

	var lines []string
	if markup == transport.MarkupMarkdown {
		lines = append(lines, fmt.Sprintf("*Report for %s:*", date))
	} else {
		lines = append(lines, fmt.Sprintf("Report for %s:", date))
	}

	for _, name := range ledger.Names() {
		dayCount := ledger.DayCount(name, date)
		totalCount := ledger.Total(name)
		if markup == transport.MarkupMarkdown {
			lines = append(lines, fmt.Sprintf("• *%s* — today: _%d_, total: _%d_", name, dayCount, totalCount))
		} else {
			lines = append(lines, fmt.Sprintf("• %s — today: %d, total: %d", name, dayCount, totalCount))
		}
	}

	return strings.Join(lines, "\n")
}

// Summary читает свежие данные и строит отчёт за сегодня.
func (s *ReportService) Summary(markup transport.Markup) (string, error) {
	const op = "service.report.Summary"

	ledger, err := s.storage.LoadLedger()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	today := s.now().Format("2006-01-02")
	return BuildSummary(ledger, today, markup), nil
}

// RecordDispatch пишет запись в журнал отправок. Вызывается только при
// фактической отправке — предпросмотр журнал не трогает.
func (s *ReportService) RecordDispatch(report string) error {
	const op = "service.report.RecordDispatch"

	rec := storage.DispatchRecord{
		Timestamp: s.now().Format(time.RFC3339),
		Report:    report,
	}
	if err := s.storage.AppendDispatch(rec); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// WithClock подменяет источник времени (для тестов).
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}
