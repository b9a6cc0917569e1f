package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotobot/internal/storage"
	"fotobot/internal/transport"
)

type fakeStorage struct {
	ledger   *storage.Ledger
	dispatch []storage.DispatchRecord
}

func (f *fakeStorage) LoadLedger() (*storage.Ledger, error) {
	return f.ledger, nil
}

func (f *fakeStorage) AppendDispatch(rec storage.DispatchRecord) error {
	f.dispatch = append(f.dispatch, rec)
	return nil
}

// Тест: пустые данные дают заглушку, а не пустой отчёт
func TestBuildSummary_EmptyLedger(t *testing.T) {
	got := BuildSummary(storage.NewLedger(), "2025-01-01", transport.MarkupPlain)
	assert.Equal(t, EmptyLedgerText, got)

	got = BuildSummary(storage.NewLedger(), "2025-01-01", transport.MarkupMarkdown)
	assert.Equal(t, EmptyLedgerText, got)
}

func TestBuildSummary_Plain(t *testing.T) {
	ledger := storage.NewLedger()
	require.NoError(t, ledger.AddWorker("Alice"))
	require.NoError(t, ledger.AddCount("Alice", "2025-01-01", 5))
	require.NoError(t, ledger.AddCount("Alice", "2025-01-01", 3))

	got := BuildSummary(ledger, "2025-01-01", transport.MarkupPlain)
	assert.Equal(t, "Report for 2025-01-01:\n• Alice — today: 8, total: 8", got)
}

func TestBuildSummary_Markdown(t *testing.T) {
	ledger := storage.NewLedger()
	require.NoError(t, ledger.AddWorker("Alice"))
	require.NoError(t, ledger.AddCount("Alice", "2025-01-02", 2))
	require.NoError(t, ledger.AddCount("Alice", "2025-01-03", 4))

	got := BuildSummary(ledger, "2025-01-03", transport.MarkupMarkdown)
	assert.Equal(t, "*Report for 2025-01-03:*\n• *Alice* — today: _4_, total: _6_", got)
}

// Тест: строки идут в порядке добавления сотрудников
func TestBuildSummary_KeepsWorkerOrder(t *testing.T) {
	ledger := storage.NewLedger()
	require.NoError(t, ledger.AddWorker("Zoya"))
	require.NoError(t, ledger.AddWorker("Alice"))

	got := BuildSummary(ledger, "2025-01-01", transport.MarkupPlain)
	assert.Equal(t, "Report for 2025-01-01:\n• Zoya — today: 0, total: 0\n• Alice — today: 0, total: 0", got)
}

func TestSummary_UsesCurrentDate(t *testing.T) {
	ledger := storage.NewLedger()
	require.NoError(t, ledger.AddWorker("Alice"))
	require.NoError(t, ledger.AddCount("Alice", "2025-01-01", 8))

	svc := NewReportService(&fakeStorage{ledger: ledger}).WithClock(func() time.Time {
		return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	})

	got, err := svc.Summary(transport.MarkupPlain)
	require.NoError(t, err)
	assert.Equal(t, "Report for 2025-01-01:\n• Alice — today: 8, total: 8", got)
}

func TestRecordDispatch(t *testing.T) {
	store := &fakeStorage{ledger: storage.NewLedger()}
	svc := NewReportService(store).WithClock(func() time.Time {
		return time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC)
	})

	require.NoError(t, svc.RecordDispatch("report text"))

	require.Len(t, store.dispatch, 1)
	assert.Equal(t, "2025-01-01T18:00:00Z", store.dispatch[0].Timestamp)
	assert.Equal(t, "report text", store.dispatch[0].Report)
}
