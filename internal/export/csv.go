// internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"tabreport/internal/report"
)

// CSVExporter выгружает содержимое отчёта в CSV
type CSVExporter struct {
	BaseExporter
}

// Format возвращает формат экспортёра
func (g *CSVExporter) Format() string { return "csv" }

// Ext возвращает расширение файла
func (g *CSVExporter) Ext() string { return ".csv" }

// csvWriter обёртка для отслеживания ошибок
type csvWriter struct {
	w   *csv.Writer
	err error
}

func (cw *csvWriter) Write(record []string) {
	if cw.err != nil {
		return
	}
	cw.err = cw.w.Write(record)
}

func (cw *csvWriter) Flush() {
	if cw.err != nil {
		return
	}
	cw.w.Flush()
	cw.err = cw.w.Error()
}

func (cw *csvWriter) Error() error {
	return cw.err
}

// Export пишет заголовок, условия, таблицу и футер со счётчиком записей
func (g *CSVExporter) Export(content *report.ReportContent, w io.Writer) error {
	cw := &csvWriter{w: csv.NewWriter(w)}

	if content.Title != "" {
		cw.Write([]string{content.Title})
		cw.Write([]string{""})
	}

	for _, raw := range content.Conditions {
		cond := report.ParseCondition(raw)
		cw.Write([]string{cond.Label, cond.Value})
	}
	if len(content.Conditions) > 0 {
		cw.Write([]string{""})
	}

	if content.HasTable() {
		cw.Write(content.Header)
		for _, row := range content.Rows {
			cw.Write(row)
		}
	} else {
		cw.Write([]string{"No valid data"})
	}

	cw.Write([]string{""})
	cw.Write([]string{fmt.Sprintf("%s | %s", g.RecordPhrase(content), g.FormatTimestamp(time.Now()))})

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	return nil
}
