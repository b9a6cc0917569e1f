package jsondoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fotobot/internal/config"
	"fotobot/internal/storage"
)

// Storage держит весь учёт в двух JSON-файлах: данные сотрудников и журнал
// отправок. Каждый документ читается и перезаписывается целиком.
type Storage struct {
	mu         sync.Mutex
	ledgerPath string
	auditPath  string
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.jsondoc.New"

	s := &Storage{
		ledgerPath: cfg.LedgerFile,
		auditPath:  cfg.AuditFile,
	}

	// Документы должны существовать при старте, иначе не запускаемся
	if err := ensureFile(s.ledgerPath, []byte("{}")); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ensureFile(s.auditPath, []byte("[]")); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func ensureFile(path string, initial []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return writeFileAtomic(path, initial)
}

func (s *Storage) LoadLedger() (*storage.Ledger, error) {
	const op = "storage.jsondoc.LoadLedger"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.ledgerPath)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения файла данных: %w", op, err)
	}

	ledger := storage.NewLedger()
	if err := json.Unmarshal(data, ledger); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ledger, nil
}

func (s *Storage) SaveLedger(ledger *storage.Ledger) error {
	const op = "storage.jsondoc.SaveLedger"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(ledger, "", "    ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := writeFileAtomic(s.ledgerPath, data); err != nil {
		return fmt.Errorf("%s: ошибка записи файла данных: %w", op, err)
	}
	return nil
}

func (s *Storage) LoadAudit() ([]storage.DispatchRecord, error) {
	const op = "storage.jsondoc.LoadAudit"

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadAuditLocked(op)
}

// AppendDispatch дописывает запись в журнал, переписывая документ целиком.
func (s *Storage) AppendDispatch(rec storage.DispatchRecord) error {
	const op = "storage.jsondoc.AppendDispatch"

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadAuditLocked(op)
	if err != nil {
		return err
	}
	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := writeFileAtomic(s.auditPath, data); err != nil {
		return fmt.Errorf("%s: ошибка записи журнала отправок: %w", op, err)
	}
	return nil
}

func (s *Storage) loadAuditLocked(op string) ([]storage.DispatchRecord, error) {
	data, err := os.ReadFile(s.auditPath)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения журнала отправок: %w", op, err)
	}

	var records []storage.DispatchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// writeFileAtomic пишет во временный файл рядом и переименовывает,
// чтобы не оставить полузаписанный документ.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
