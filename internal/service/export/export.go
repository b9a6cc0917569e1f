package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"fotobot/internal/storage"
)

type ExportStorage interface {
	LoadLedger() (*storage.Ledger, error)
}

// ExportService выгружает весь учёт в excel: строка на сотрудника,
// колонка на дату, последняя колонка — итог.
type ExportService struct {
	storage ExportStorage
}

func NewExportService(storage ExportStorage) *ExportService {
	return &ExportService{storage: storage}
}

func (s *ExportService) ExportExcel() ([]byte, error) {
	const op = "service.export.ExportExcel"

	ledger, err := s.storage.LoadLedger()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Photo counts"
	f.SetSheetName("Sheet1", sheet)

	// Жирный шрифт для шапки
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	// Колонки — объединение всех дат по всем сотрудникам, по порядку
	dates := collectDates(ledger)

	headers := []string{"Worker"}
	headers = append(headers, dates...)
	headers = append(headers, "Total")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	for _, name := range ledger.Names() {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, cell, name)

		records := ledger.Counts(name)
		for i, date := range dates {
			if n, ok := records[date]; ok {
				cell, _ := excelize.CoordinatesToCellName(i+2, row)
				f.SetCellValue(sheet, cell, n)
			}
		}

		cell, _ = excelize.CoordinatesToCellName(len(dates)+2, row)
		f.SetCellValue(sheet, cell, ledger.Total(name))
		row++
	}

	f.SetColWidth(sheet, "A", "A", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func collectDates(ledger *storage.Ledger) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, name := range ledger.Names() {
		for date := range ledger.Counts(name) {
			if _, ok := seen[date]; !ok {
				seen[date] = struct{}{}
				dates = append(dates, date)
			}
		}
	}
	// ISO-даты: лексикографический порядок и есть хронология
	sort.Strings(dates)
	return dates
}
