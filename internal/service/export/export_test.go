package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fotobot/internal/storage"
)

type fakeStorage struct {
	ledger *storage.Ledger
}

func (f *fakeStorage) LoadLedger() (*storage.Ledger, error) {
	return f.ledger, nil
}

func TestExportExcel(t *testing.T) {
	ledger := storage.NewLedger()
	require.NoError(t, ledger.AddWorker("Alice"))
	require.NoError(t, ledger.AddWorker("Bob"))
	require.NoError(t, ledger.AddCount("Alice", "2025-01-01", 5))
	require.NoError(t, ledger.AddCount("Alice", "2025-01-02", 3))
	require.NoError(t, ledger.AddCount("Bob", "2025-01-02", 2))

	svc := NewExportService(&fakeStorage{ledger: ledger})
	data, err := svc.ExportExcel()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Photo counts")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// шапка: сотрудник, даты по порядку, итог
	assert.Equal(t, []string{"Worker", "2025-01-01", "2025-01-02", "Total"}, rows[0])
	assert.Equal(t, []string{"Alice", "5", "3", "8"}, rows[1])
	assert.Equal(t, "Bob", rows[2][0])
	assert.Equal(t, "2", rows[2][2])
}

func TestExportExcel_EmptyLedger(t *testing.T) {
	svc := NewExportService(&fakeStorage{ledger: storage.NewLedger()})
	data, err := svc.ExportExcel()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Photo counts")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Worker", "Total"}, rows[0])
}
