// internal/report/report.go
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"tabreport/internal/source"
	"tabreport/pkg/apperror"
	"tabreport/pkg/config"
	"tabreport/pkg/logger"
)

// Exporter - дополнительный выходной формат поверх извлечённого содержимого.
// Конкретные реализации живут в internal/export
type Exporter interface {
	Export(content *ReportContent, w io.Writer) error
	Format() string
	Ext() string
}

// Request параметры одной генерации. Пустые поля берутся из конфигурации
type Request struct {
	InputPath  string
	OutputPath string
	Template   string
	Geometry   string
	Title      string
	Intro      string
	Statement  string
	ImagePath  string
	Delimiter  rune
}

// Result итог генерации
type Result struct {
	ReportID   string
	OutputPath string
	Records    int
	Pages      int
	Exports    []string
	Warnings   []string
}

// Generator выполняет полный конвейер: чтение, извлечение, раскладка, рендер
type Generator struct {
	cfg       *config.Config
	exporters []Exporter
}

// New создаёт генератор
func New(cfg *config.Config, exporters ...Exporter) *Generator {
	return &Generator{cfg: cfg, exporters: exporters}
}

// Generate выполняет одну генерацию отчёта
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	reportID := uuid.New().String()
	log := logger.WithReport(reportID)

	if req.InputPath == "" {
		return nil, apperror.ErrNoInputPath
	}
	if req.OutputPath == "" {
		return nil, apperror.New(apperror.CodeInvalidArgument, "output path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "generation cancelled")
	}

	result := &Result{ReportID: reportID, OutputPath: req.OutputPath}

	rc := g.cfg.Report

	// Чтение и извлечение. Повреждённый вход деградирует до документа-заглушки
	raw, err := source.ReadRows(req.InputPath, g.delimiter(req))
	if err != nil {
		return nil, err
	}

	content, err := Extract(raw)
	if err != nil {
		if content == nil || apperror.Code(err) != apperror.CodeMalformedInput {
			return nil, err
		}
		// MALFORMED_INPUT деградирует до документа-заглушки
		log.Warn("input degraded to placeholder", "error", err)
		result.Warnings = append(result.Warnings, err.Error())
	}
	if req.Title != "" {
		// Переопределение заголовка действует и на экспортёров
		content.Title = req.Title
	}

	geometry, err := ResolveGeometry(g.geometryOptions(req))
	if err != nil {
		return nil, err
	}

	font := g.fontChain().Resolve()
	if font.Fallback && len(g.cfg.Report.Fonts.Candidates) > 0 {
		result.Warnings = append(result.Warnings, "no configured font available, using built-in fallback")
	}
	styles := NewStyleSet(font, StyleOptions{
		FontSize:       rc.PDF.FontSize,
		HeaderFontSize: rc.PDF.HeaderFontSize,
		TitleFontSize:  rc.PDF.TitleFontSize,
	})

	plan := PlanWidths(content.Header, content.Rows, WidthOptions{
		Available:  geometry.ContentWidth(),
		Min:        rc.MinColWidth,
		Max:        rc.MaxColWidth,
		CharWidth:  rc.CharWidth,
		Padding:    rc.CellPadding,
		GrowToFill: rc.GrowToFill,
	})

	var logo *Image
	if req.ImagePath != "" {
		logo, err = LoadImage(req.ImagePath)
		if err != nil {
			// Отсутствующее изображение не прерывает генерацию
			log.Warn("image unavailable, omitting image blocks", "path", req.ImagePath, "error", err)
			result.Warnings = append(result.Warnings, err.Error())
			logo = nil
		}
	}

	blocks := Compose(content, plan, styles, ComposeOptions{
		Template:      g.template(req),
		Geometry:      geometry,
		GridSize:      rc.PDF.GridSize,
		TitleOverride: req.Title,
		Intro:         req.Intro,
		Statement:     req.Statement,
		Logo:          logo,
		GeneratedAt:   time.Now(),
		CompanyName:   rc.CompanyName,
		FooterOnEmpty: rc.FooterOnEmpty,
		NumericMatch:  KeywordMatcher(rc.NumericKeywords),
	})
	result.Pages = PageCount(blocks)
	result.Records = content.RecordCount()

	if err := RenderPDF(blocks, req.OutputPath, RenderOptions{
		Geometry:    geometry,
		GridSize:    rc.PDF.GridSize,
		Styles:      styles,
		DocTitle:    content.Title,
		DocAuthor:   rc.CompanyName,
		PageNumbers: rc.PDF.EnablePageNumbers,
	}); err != nil {
		return nil, err
	}

	if err := g.runExports(content, req.OutputPath, result); err != nil {
		return nil, err
	}

	log.Info("report generated",
		"output", req.OutputPath,
		"records", result.Records,
		"pages", result.Pages,
		"exports", len(result.Exports))

	return result, nil
}

// runExports пишет дополнительные форматы рядом с основным документом
func (g *Generator) runExports(content *ReportContent, outPath string, result *Result) error {
	base := strings.TrimSuffix(outPath, filepath.Ext(outPath))
	for _, exp := range g.exporters {
		path := base + exp.Ext()
		f, err := os.Create(path)
		if err != nil {
			return apperror.Wrap(err, apperror.CodeOutputWrite,
				fmt.Sprintf("create %s export", exp.Format()))
		}
		if err := exp.Export(content, f); err != nil {
			f.Close()
			os.Remove(path)
			return apperror.Wrap(err, apperror.CodeOutputWrite,
				fmt.Sprintf("write %s export", exp.Format()))
		}
		if err := f.Close(); err != nil {
			return apperror.Wrap(err, apperror.CodeOutputWrite,
				fmt.Sprintf("close %s export", exp.Format()))
		}
		result.Exports = append(result.Exports, path)
	}
	return nil
}

func (g *Generator) delimiter(req Request) rune {
	if req.Delimiter != 0 {
		return req.Delimiter
	}
	if g.cfg.Report.Delimiter != "" {
		return []rune(g.cfg.Report.Delimiter)[0]
	}
	return 0
}

func (g *Generator) template(req Request) Template {
	if req.Template != "" {
		return Template(req.Template)
	}
	return Template(g.cfg.Report.Template)
}

func (g *Generator) geometryOptions(req Request) GeometryOptions {
	rc := g.cfg.Report
	preset := req.Geometry
	if preset == "" {
		preset = rc.Geometry
	}
	return GeometryOptions{
		Preset:       preset,
		CustomWidth:  rc.CustomWidth,
		CustomHeight: rc.CustomHeight,
		MarginLeft:   rc.PDF.MarginLeft,
		MarginTop:    rc.PDF.MarginTop,
		MarginRight:  rc.PDF.MarginRight,
		MarginBottom: rc.PDF.MarginBottom,
	}
}

func (g *Generator) fontChain() FontChain {
	candidates := make([]FontCandidate, 0, len(g.cfg.Report.Fonts.Candidates))
	for _, c := range g.cfg.Report.Fonts.Candidates {
		candidates = append(candidates, FontCandidate{Family: c.Family, Path: c.Path})
	}
	return FontChain{Candidates: candidates}
}
