// internal/export/export_test.go
package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"tabreport/internal/report"
	"tabreport/pkg/apperror"
)

func testContent() *report.ReportContent {
	return &report.ReportContent{
		Title:      "Q1 Sales Report",
		Conditions: []string{"Period: Q1", "Region: North"},
		Header:     []string{"Product", "Quantity", "Amount"},
		Rows: [][]string{
			{"Widget", "10", "100.00"},
			{"Gadget", "5", "250.50"},
		},
	}
}

func testMatcher() report.NumericMatcher {
	return report.KeywordMatcher([]string{"amount", "quantity"})
}

func TestNew(t *testing.T) {
	for _, format := range []string{"csv", "xlsx", "markdown"} {
		exp, err := New(format, testMatcher())
		if err != nil {
			t.Fatalf("New(%q) error = %v", format, err)
		}
		if exp.Format() != format {
			t.Errorf("Format() = %q, want %q", exp.Format(), format)
		}
		if exp.Ext() == "" {
			t.Errorf("Ext() empty for %q", format)
		}
	}

	_, err := New("docx", nil)
	if apperror.Code(err) != apperror.CodeUnsupportedFormat {
		t.Errorf("Code(err) = %v, want UNSUPPORTED_FORMAT", apperror.Code(err))
	}
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	exp := &CSVExporter{}
	if err := exp.Export(testContent(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Q1 Sales Report") {
		t.Error("title missing from CSV export")
	}
	if !strings.Contains(out, "Product,Quantity,Amount") {
		t.Error("header row missing from CSV export")
	}
	if !strings.Contains(out, "Gadget,5,250.50") {
		t.Error("data row missing from CSV export")
	}
	if !strings.Contains(out, "Total records: 2") {
		t.Error("record count missing from CSV export")
	}
}

func TestCSVExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	exp := &CSVExporter{}
	content := &report.ReportContent{Title: "Empty"}
	if err := exp.Export(content, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Total records: 0") {
		t.Error("zero record count missing")
	}
}

func TestMarkdownExport(t *testing.T) {
	var buf bytes.Buffer
	exp := &MarkdownExporter{match: testMatcher()}
	if err := exp.Export(testContent(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# Q1 Sales Report") {
		t.Error("title heading missing")
	}
	if !strings.Contains(out, "- **Period:** Q1") {
		t.Error("condition bullet missing")
	}
	if !strings.Contains(out, "| Product | Quantity | Amount |") {
		t.Error("table header missing")
	}
	// Числовые колонки выровнены вправо
	if !strings.Contains(out, "|---|---:|---:|") {
		t.Errorf("alignment row wrong:\n%s", out)
	}
	if !strings.Contains(out, "*Total records: 2*") {
		t.Error("record count missing")
	}
}

func TestXLSXExport(t *testing.T) {
	var buf bytes.Buffer
	exp := &XLSXExporter{match: testMatcher()}
	if err := exp.Export(testContent(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue("Report", "A1")
	if err != nil || title != "Q1 Sales Report" {
		t.Errorf("A1 = %q (err %v), want title", title, err)
	}

	rows, err := f.GetRows("Report")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}

	found := false
	for _, row := range rows {
		if len(row) >= 3 && row[0] == "Gadget" && row[2] == "250.50" {
			found = true
		}
	}
	if !found {
		t.Error("data row missing from workbook")
	}
}

func TestColName(t *testing.T) {
	tests := []struct {
		idx  int
		want string
	}{
		{0, "A"}, {1, "B"}, {25, "Z"}, {26, "AA"}, {27, "AB"}, {51, "AZ"}, {52, "BA"},
	}
	for _, tt := range tests {
		if got := ColName(tt.idx); got != tt.want {
			t.Errorf("ColName(%d) = %q, want %q", tt.idx, got, tt.want)
		}
	}
}
