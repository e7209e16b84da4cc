// internal/export/markdown.go
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"tabreport/internal/report"
)

// MarkdownExporter выгружает содержимое отчёта в Markdown
type MarkdownExporter struct {
	BaseExporter
	match report.NumericMatcher
}

// Format возвращает формат экспортёра
func (g *MarkdownExporter) Format() string { return "markdown" }

// Ext возвращает расширение файла
func (g *MarkdownExporter) Ext() string { return ".md" }

// Export пишет заголовок, условия списком, таблицу с выравниванием и футер
func (g *MarkdownExporter) Export(content *report.ReportContent, w io.Writer) error {
	var buf strings.Builder

	if content.Title != "" {
		buf.WriteString(fmt.Sprintf("# %s\n\n", content.Title))
	}

	if len(content.Conditions) > 0 {
		for _, raw := range content.Conditions {
			cond := report.ParseCondition(raw)
			if cond.Value != "" {
				buf.WriteString(fmt.Sprintf("- **%s:** %s\n", cond.Label, cond.Value))
			} else {
				buf.WriteString(fmt.Sprintf("- %s\n", cond.Label))
			}
		}
		buf.WriteString("\n")
	}

	if content.HasTable() {
		g.writeTable(&buf, content)
	} else {
		buf.WriteString("*No valid data to display*\n\n")
	}

	buf.WriteString("\n---\n\n")
	buf.WriteString(fmt.Sprintf("*%s*\n", g.RecordPhrase(content)))
	buf.WriteString(fmt.Sprintf("*%s*\n", g.FormatTimestamp(time.Now())))

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("markdown write error: %w", err)
	}

	return nil
}

func (g *MarkdownExporter) writeTable(buf *strings.Builder, content *report.ReportContent) {
	buf.WriteString("| " + strings.Join(escapeCells(content.Header), " | ") + " |\n")

	// Числовые колонки помечаются правым выравниванием
	seps := make([]string, len(content.Header))
	for i, h := range content.Header {
		if g.match != nil && g.match(h) {
			seps[i] = "---:"
		} else {
			seps[i] = "---"
		}
	}
	buf.WriteString("|" + strings.Join(seps, "|") + "|\n")

	for _, row := range content.Rows {
		buf.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
	buf.WriteString("\n")
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", "\\|")
	}
	return out
}
