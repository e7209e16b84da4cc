// internal/export/xlsx.go
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"tabreport/internal/report"
)

// XLSXExporter выгружает содержимое отчёта в книгу Excel
type XLSXExporter struct {
	BaseExporter
	match report.NumericMatcher
}

// Format возвращает формат экспортёра
func (g *XLSXExporter) Format() string { return "xlsx" }

// Ext возвращает расширение файла
func (g *XLSXExporter) Ext() string { return ".xlsx" }

// Export пишет лист с заголовком, условиями, таблицей и футером
func (g *XLSXExporter) Export(content *report.ReportContent, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Report"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// Стили
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	numericStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})

	row := 1
	cols := len(content.Header)
	if cols == 0 {
		cols = 1
	}

	// Заголовок
	if content.Title != "" {
		f.SetCellValue(sheetName, CellByIndex(0, row), content.Title)
		f.SetCellStyle(sheetName, CellByIndex(0, row), CellByIndex(0, row), titleStyle)
		f.MergeCell(sheetName, CellByIndex(0, row), CellByIndex(cols-1, row))
		row += 2
	}

	// Условия
	for _, raw := range content.Conditions {
		cond := report.ParseCondition(raw)
		f.SetCellValue(sheetName, CellByIndex(0, row), cond.Label)
		f.SetCellValue(sheetName, CellByIndex(1, row), cond.Value)
		row++
	}
	if len(content.Conditions) > 0 {
		row++
	}

	// Таблица
	if content.HasTable() {
		numeric := make([]bool, len(content.Header))
		for i, h := range content.Header {
			f.SetCellValue(sheetName, CellByIndex(i, row), h)
			if g.match != nil {
				numeric[i] = g.match(h)
			}
		}
		f.SetCellStyle(sheetName, CellByIndex(0, row), CellByIndex(cols-1, row), headerStyle)
		row++

		for _, dataRow := range content.Rows {
			for i, cell := range dataRow {
				f.SetCellValue(sheetName, CellByIndex(i, row), cell)
				if i < len(numeric) && numeric[i] {
					f.SetCellStyle(sheetName, CellByIndex(i, row), CellByIndex(i, row), numericStyle)
				}
			}
			row++
		}
	} else {
		f.SetCellValue(sheetName, CellByIndex(0, row), "No valid data")
		row++
	}
	row++

	// Футер
	f.SetCellValue(sheetName, CellByIndex(0, row),
		fmt.Sprintf("%s | %s", g.RecordPhrase(content), g.FormatTimestamp(time.Now())))

	// Авто-ширина колонок
	f.SetColWidth(sheetName, "A", ColName(cols-1), 18)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}
