package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrWorkerExists   = errors.New("такой сотрудник уже есть")
	ErrWorkerNotFound = errors.New("сотрудник не найден")
)

// Ledger хранит данные по сотрудникам: имя -> дата -> количество фото.
// Порядок сотрудников — порядок добавления, он же порядок строк в отчёте,
// поэтому обычный map не подходит.
type Ledger struct {
	names  []string
	counts map[string]map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{counts: make(map[string]map[string]int)}
}

func (l *Ledger) Empty() bool {
	return len(l.names) == 0
}

func (l *Ledger) Has(name string) bool {
	_, ok := l.counts[name]
	return ok
}

// Names возвращает имена в порядке добавления.
func (l *Ledger) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Counts возвращает копию записей сотрудника (дата -> количество).
func (l *Ledger) Counts(name string) map[string]int {
	records, ok := l.counts[name]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(records))
	for date, n := range records {
		out[date] = n
	}
	return out
}

func (l *Ledger) DayCount(name, date string) int {
	return l.counts[name][date]
}

// Total — сумма по всем датам сотрудника за всё время.
func (l *Ledger) Total(name string) int {
	total := 0
	for _, n := range l.counts[name] {
		total += n
	}
	return total
}

func (l *Ledger) AddWorker(name string) error {
	if l.Has(name) {
		return ErrWorkerExists
	}
	l.names = append(l.names, name)
	l.counts[name] = make(map[string]int)
	return nil
}

// Rename переносит записи под новое имя целиком, без изменений.
func (l *Ledger) Rename(oldName, newName string) error {
	if !l.Has(oldName) {
		return ErrWorkerNotFound
	}
	if l.Has(newName) {
		return ErrWorkerExists
	}
	l.counts[newName] = l.counts[oldName]
	delete(l.counts, oldName)
	for i, name := range l.names {
		if name == oldName {
			l.names[i] = newName
			break
		}
	}
	return nil
}

func (l *Ledger) Delete(name string) error {
	if !l.Has(name) {
		return ErrWorkerNotFound
	}
	delete(l.counts, name)
	for i, n := range l.names {
		if n == name {
			l.names = append(l.names[:i], l.names[i+1:]...)
			break
		}
	}
	return nil
}

// AddCount прибавляет количество к уже записанному за дату.
func (l *Ledger) AddCount(name, date string, count int) error {
	records, ok := l.counts[name]
	if !ok {
		return ErrWorkerNotFound
	}
	records[date] += count
	return nil
}

// SetCount перезаписывает количество за дату (редактирование отчёта).
func (l *Ledger) SetCount(name, date string, count int) error {
	records, ok := l.counts[name]
	if !ok {
		return ErrWorkerNotFound
	}
	records[date] = count
	return nil
}

// MarshalJSON пишет объект в порядке добавления сотрудников.
// encoding/json сортирует ключи map, поэтому объект собираем вручную.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range l.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		// даты внутри map сортируются — для ISO-дат это хронология
		val, err := json.Marshal(l.counts[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *Ledger) UnmarshalJSON(data []byte) error {
	l.names = nil
	l.counts = make(map[string]map[string]int)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("ledger document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ledger document: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("ledger document: %w", err)
		}
		name := tok.(string)

		records := make(map[string]int)
		if err := dec.Decode(&records); err != nil {
			return fmt.Errorf("ledger document: records of %q: %w", name, err)
		}
		for date, n := range records {
			if n < 0 {
				return fmt.Errorf("ledger document: negative count for %q on %s", name, date)
			}
		}

		if _, dup := l.counts[name]; dup {
			return fmt.Errorf("ledger document: duplicate worker %q", name)
		}
		l.names = append(l.names, name)
		l.counts[name] = records
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("ledger document: %w", err)
	}
	return nil
}
