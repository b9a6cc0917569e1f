package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тест: имена уникальны при любой последовательности операций
func TestLedger_UniqueNames(t *testing.T) {
	ledger := NewLedger()

	require.NoError(t, ledger.AddWorker("Carl"))
	require.NoError(t, ledger.AddCount("Carl", "2025-01-01", 5))

	err := ledger.AddWorker("Carl")
	assert.ErrorIs(t, err, ErrWorkerExists)

	// данные первого Carl не тронуты
	assert.Equal(t, []string{"Carl"}, ledger.Names())
	assert.Equal(t, 5, ledger.DayCount("Carl", "2025-01-01"))

	require.NoError(t, ledger.AddWorker("Dan"))
	err = ledger.Rename("Carl", "Dan")
	assert.ErrorIs(t, err, ErrWorkerExists)
	assert.Equal(t, []string{"Carl", "Dan"}, ledger.Names())
	assert.Equal(t, 5, ledger.DayCount("Carl", "2025-01-01"))
}

// Тест: переименование переносит записи без изменений
func TestLedger_RenameMovesRecordsIntact(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddWorker("Carl"))
	require.NoError(t, ledger.AddCount("Carl", "2025-01-01", 5))
	require.NoError(t, ledger.AddCount("Carl", "2025-01-02", 3))

	before := ledger.Counts("Carl")
	beforeTotal := ledger.Total("Carl")

	require.NoError(t, ledger.Rename("Carl", "Dan"))

	assert.False(t, ledger.Has("Carl"))
	assert.Equal(t, before, ledger.Counts("Dan"))
	assert.Equal(t, beforeTotal, ledger.Total("Dan"))
	assert.Equal(t, []string{"Dan"}, ledger.Names())
}

func TestLedger_RenameMissing(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Rename("nobody", "somebody")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

// Тест: добавление фото суммирует, правка перезаписывает
func TestLedger_AddCountVsSetCount(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddWorker("Alice"))

	require.NoError(t, ledger.AddCount("Alice", "2025-01-01", 5))
	require.NoError(t, ledger.AddCount("Alice", "2025-01-01", 3))
	assert.Equal(t, 8, ledger.DayCount("Alice", "2025-01-01"))
	assert.Equal(t, 8, ledger.Total("Alice"))

	require.NoError(t, ledger.SetCount("Alice", "2025-01-01", 10))
	require.NoError(t, ledger.SetCount("Alice", "2025-01-01", 4))
	assert.Equal(t, 4, ledger.DayCount("Alice", "2025-01-01"))
}

func TestLedger_CountsForMissingWorker(t *testing.T) {
	ledger := NewLedger()
	assert.ErrorIs(t, ledger.AddCount("ghost", "2025-01-01", 1), ErrWorkerNotFound)
	assert.ErrorIs(t, ledger.SetCount("ghost", "2025-01-01", 1), ErrWorkerNotFound)
	assert.ErrorIs(t, ledger.Delete("ghost"), ErrWorkerNotFound)
}

func TestLedger_Delete(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddWorker("Alice"))
	require.NoError(t, ledger.AddWorker("Bob"))
	require.NoError(t, ledger.AddCount("Bob", "2025-01-01", 2))

	require.NoError(t, ledger.Delete("Alice"))
	assert.Equal(t, []string{"Bob"}, ledger.Names())
	assert.Equal(t, 2, ledger.Total("Bob"))
}

// Тест: JSON сохраняет порядок добавления сотрудников
func TestLedger_JSONKeepsInsertionOrder(t *testing.T) {
	ledger := NewLedger()
	for _, name := range []string{"Zoya", "Alice", "Mark"} {
		require.NoError(t, ledger.AddWorker(name))
	}
	require.NoError(t, ledger.AddCount("Alice", "2025-01-01", 7))

	data, err := json.Marshal(ledger)
	require.NoError(t, err)

	restored := NewLedger()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, []string{"Zoya", "Alice", "Mark"}, restored.Names())
	assert.Equal(t, 7, restored.DayCount("Alice", "2025-01-01"))

	// и после повторного цикла порядок тот же
	data2, err := json.Marshal(restored)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(data2))
}

func TestLedger_UnmarshalRejectsBadDocument(t *testing.T) {
	ledger := NewLedger()
	assert.Error(t, json.Unmarshal([]byte(`[]`), ledger))
	assert.Error(t, json.Unmarshal([]byte(`{"A": {"2025-01-01": -3}}`), ledger))
}
