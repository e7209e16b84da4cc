// internal/report/render_test.go
package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tabreport/pkg/apperror"
)

func testRenderOptions() RenderOptions {
	geometry := PageGeometry{
		Width: 210, Height: 297,
		LeftMargin: 15, RightMargin: 15, TopMargin: 15, BottomMargin: 20,
	}
	return RenderOptions{
		Geometry: geometry,
		GridSize: 12,
		Styles:   testStyles(),
		DocTitle: "Quarterly Report",
	}
}

func TestRenderPDF(t *testing.T) {
	content := testContent(5)
	plan := PlanWidths(content.Header, content.Rows, defaultWidthOptions())
	blocks := Compose(content, plan, testStyles(), testComposeOptions(TemplateClassic, 262))

	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := RenderPDF(blocks, outPath, testRenderOptions()); err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF document")
	}
	if len(data) < 500 {
		t.Errorf("suspiciously small document: %d bytes", len(data))
	}
}

func TestRenderPDFMultiPage(t *testing.T) {
	content := testContent(40)
	plan := PlanWidths(content.Header, content.Rows, defaultWidthOptions())
	blocks := Compose(content, plan, testStyles(), testComposeOptions(TemplateCover, 60))

	outPath := filepath.Join(t.TempDir(), "multi.pdf")
	if err := RenderPDF(blocks, outPath, testRenderOptions()); err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF document")
	}
}

func TestRenderPDFAtomic(t *testing.T) {
	blocks := []Block{Paragraph("x", RoleIntro, 6)}
	outPath := filepath.Join(t.TempDir(), "missing-dir", "out.pdf")

	err := RenderPDF(blocks, outPath, testRenderOptions())
	if err == nil {
		t.Fatal("RenderPDF() error = nil, want OUTPUT_WRITE")
	}
	if apperror.Code(err) != apperror.CodeOutputWrite {
		t.Errorf("Code(err) = %v, want OUTPUT_WRITE", apperror.Code(err))
	}
	// Частичного файла на месте назначения быть не должно
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("destination exists after failed render")
	}
}

func TestResolvePagePlaceholders(t *testing.T) {
	blocks := []Block{
		Paragraph("Page {page} of {pages}", RoleFooter, 8),
		PageBreak(),
		Paragraph("Page {page} of {pages}", RoleFooter, 8),
		PageBreak(),
		Paragraph("no placeholders here", RoleIntro, 6),
	}

	resolved := resolvePagePlaceholders(blocks)

	if resolved[0].Text != "Page 1 of 3" {
		t.Errorf("resolved[0] = %q", resolved[0].Text)
	}
	if resolved[2].Text != "Page 2 of 3" {
		t.Errorf("resolved[2] = %q", resolved[2].Text)
	}
	if resolved[4].Text != "no placeholders here" {
		t.Errorf("resolved[4] = %q", resolved[4].Text)
	}
	// Исходный срез не мутируется
	if !strings.Contains(blocks[0].Text, PagePlaceholder) {
		t.Error("resolvePagePlaceholders mutated its input")
	}
}
