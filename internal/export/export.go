// internal/export/export.go
package export

import (
	"fmt"
	"io"
	"time"

	"tabreport/internal/report"
	"tabreport/pkg/apperror"
)

// Exporter выгружает извлечённое содержимое отчёта в дополнительный формат
// рядом с основным документом
type Exporter interface {
	Export(content *report.ReportContent, w io.Writer) error
	Format() string
	Ext() string
}

// New возвращает экспортёр по имени формата
func New(format string, match report.NumericMatcher) (Exporter, error) {
	switch format {
	case "csv":
		return &CSVExporter{}, nil
	case "xlsx":
		return &XLSXExporter{match: match}, nil
	case "markdown":
		return &MarkdownExporter{match: match}, nil
	default:
		return nil, apperror.NewWithField(apperror.CodeUnsupportedFormat, "unknown export format", format)
	}
}

// BaseExporter базовые утилиты для экспортёров
type BaseExporter struct{}

// FormatTimestamp форматирует время
func (b *BaseExporter) FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// RecordPhrase возвращает фразу футера со счётчиком записей
func (b *BaseExporter) RecordPhrase(content *report.ReportContent) string {
	return fmt.Sprintf("Total records: %d", content.RecordCount())
}

// ColName преобразует индекс колонки в буквенное обозначение (0 -> A, 25 -> Z, 26 -> AA)
func ColName(index int) string {
	result := ""
	for {
		result = string(rune('A'+index%26)) + result
		index = index/26 - 1
		if index < 0 {
			break
		}
	}
	return result
}

// CellByIndex возвращает адрес ячейки по индексам
func CellByIndex(colIndex, rowIndex int) string {
	return fmt.Sprintf("%s%d", ColName(colIndex), rowIndex)
}
