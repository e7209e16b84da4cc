// internal/report/compose.go
package report

import (
	"fmt"
	"strings"
	"time"
)

// Template - вариант раскладки документа
type Template string

const (
	// TemplateClassic - одностраничная шапка: заголовок, двухзонная строка
	// (текст слева, логотип и условия справа), таблица, футер со счётчиком.
	TemplateClassic Template = "classic"
	// TemplateCover - отдельная титульная страница с баннером и
	// принудительным разрывом, затем страница с таблицей и футером с
	// номером страницы.
	TemplateCover Template = "cover"
)

// Высоты строк, mm
const (
	titleHeight       = 12.0
	subtitleHeight    = 10.0
	textLineHeight    = 6.0
	conditionHeight   = 5.5
	metaHeight        = 5.0
	tableHeaderHeight = 8.0
	tableRowHeight    = 6.5
	summaryRowHeight  = 8.5
	footerHeight      = 8.0
	placeholderHeight = 12.0
	spacerHeight      = 4.0

	maxLogoWidth    = 45.0 // mm
	maxLogoHeight   = 30.0 // mm
	maxBannerHeight = 80.0 // mm
)

// Плейсхолдеры нумерации страниц в тексте футера, разрешаются рендером
const (
	PagePlaceholder  = "{page}"
	PagesPlaceholder = "{pages}"
)

// ComposeOptions входные параметры композера
type ComposeOptions struct {
	Template      Template
	Geometry      PageGeometry
	GridSize      int
	TitleOverride string
	Intro         string
	Statement     string
	Logo          *Image // nil - блоки изображений не создаются
	GeneratedAt   time.Time
	CompanyName   string
	FooterOnEmpty bool
	NumericMatch  NumericMatcher
}

// Стадии сборки титульного шаблона
type composeStage int

const (
	stageCover composeStage = iota
	stageBody
	stageDone
)

// composer накапливает блоки и следит за курсором внутри области контента.
// Когда очередной блок не помещается, вставляется разрыв страницы; фрагменты
// таблиц при этом всегда начинаются с шапки.
type composer struct {
	opts   ComposeOptions
	styles *StyleSet
	blocks []Block
	cursor float64
	limit  float64
}

// Compose собирает упорядоченную последовательность блоков документа
func Compose(content *ReportContent, plan WidthPlan, styles *StyleSet, opts ComposeOptions) []Block {
	if opts.GridSize <= 0 {
		opts.GridSize = 12
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	c := &composer{
		opts:   opts,
		styles: styles,
		limit:  opts.Geometry.ContentHeight(),
	}

	switch opts.Template {
	case TemplateCover:
		c.composeCover(content, plan)
	default:
		c.composeClassic(content, plan)
	}

	return c.blocks
}

// add добавляет блок, перенося его на новую страницу при нехватке места
func (c *composer) add(b Block, height float64) {
	if c.cursor > 0 && c.cursor+height > c.limit {
		c.pageBreak()
	}
	c.blocks = append(c.blocks, b)
	c.cursor += height
}

// pageBreak - принудительный разрыв страницы
func (c *composer) pageBreak() {
	c.blocks = append(c.blocks, PageBreak())
	c.cursor = 0
}

// === Классический шаблон ===

func (c *composer) composeClassic(content *ReportContent, plan WidthPlan) {
	title := c.title(content)
	if title != "" {
		c.add(Paragraph(title, RoleTitle, titleHeight), titleHeight)
		c.add(Spacer(2), 2)
	}

	c.addHeaderRegion(content)
	c.add(Spacer(spacerHeight), spacerHeight)

	c.addTable(content, plan)
	c.addFooter(content, fmt.Sprintf("Total records: %d | %s",
		content.RecordCount(), c.opts.GeneratedAt.Format("2006-01-02 15:04:05")))
}

// addHeaderRegion строит двухзонную строку: интро слева, логотип и условия
// справа. Пустые зоны схлопываются.
func (c *composer) addHeaderRegion(content *ReportContent) {
	var left, right []Block
	leftHeight, rightHeight := 0.0, 0.0

	if c.opts.Statement != "" {
		left = append(left, Paragraph(c.opts.Statement, RoleStatement, textLineHeight+1))
		leftHeight += textLineHeight + 1
	}
	for _, line := range splitLines(c.opts.Intro) {
		left = append(left, Paragraph(line, RoleIntro, textLineHeight))
		leftHeight += textLineHeight
	}

	if c.opts.Logo != nil {
		h := c.opts.Logo.HeightFor(maxLogoWidth)
		if h > maxLogoHeight {
			h = maxLogoHeight
		}
		right = append(right, Block{
			Kind:   KindImage,
			Image:  &ImageBlock{Data: c.opts.Logo.Data, Format: c.opts.Logo.Format, Height: h},
			Height: h,
		})
		rightHeight += h + 2
	}
	for _, raw := range content.Conditions {
		cond := ParseCondition(raw)
		text := cond.Label
		if cond.Value != "" {
			text = cond.Label + ": " + cond.Value
		}
		right = append(right, Paragraph(text, RoleCondition, conditionHeight))
		rightHeight += conditionHeight
	}

	if len(left) == 0 && len(right) == 0 {
		return
	}

	height := leftHeight
	if rightHeight > height {
		height = rightHeight
	}
	c.add(Block{
		Kind:     KindColumns,
		Left:     left,
		Right:    right,
		LeftSpan: c.opts.GridSize * 7 / 12,
		Height:   height,
	}, height)
}

// === Титульный шаблон ===

func (c *composer) composeCover(content *ReportContent, plan WidthPlan) {
	stage := stageCover
	title := c.title(content)

	// Титульная страница собирается только при наличии заголовка или баннера
	if title == "" && c.opts.Logo == nil {
		stage = stageBody
	}

	if stage == stageCover {
		if c.opts.Logo != nil {
			h := c.opts.Logo.HeightFor(c.opts.Geometry.ContentWidth())
			if h > maxBannerHeight {
				h = maxBannerHeight
			}
			c.add(Block{
				Kind:   KindImage,
				Image:  &ImageBlock{Data: c.opts.Logo.Data, Format: c.opts.Logo.Format, Height: h},
				Height: h,
			}, h)
			c.add(Spacer(6), 6)
		}
		if title != "" {
			c.add(Paragraph(title, RoleTitle, titleHeight+2), titleHeight+2)
			c.add(Spacer(spacerHeight), spacerHeight)
		}
		for _, line := range splitLines(c.opts.Intro) {
			c.add(Paragraph(line, RoleIntro, textLineHeight), textLineHeight)
		}
		c.add(Spacer(spacerHeight), spacerHeight)
		meta := fmt.Sprintf("Generated %s", c.opts.GeneratedAt.Format("2006-01-02 15:04:05"))
		if c.opts.CompanyName != "" {
			meta = c.opts.CompanyName + " | " + meta
		}
		c.add(Paragraph(meta, RoleMeta, metaHeight), metaHeight)

		// Титульная страница всегда завершается принудительным разрывом
		c.pageBreak()
		stage = stageBody
	}

	// Тело: подзаголовок, условия списком, таблица, футер с номером страницы
	if content.Title != "" {
		c.add(Paragraph(content.Title, RoleSubtitle, subtitleHeight), subtitleHeight)
	}
	for _, raw := range content.Conditions {
		cond := ParseCondition(raw)
		text := "* " + cond.Label
		if cond.Value != "" {
			text = "* " + cond.Label + ": " + cond.Value
		}
		c.add(Paragraph(text, RoleCondition, conditionHeight), conditionHeight)
	}
	c.add(Spacer(spacerHeight), spacerHeight)

	c.addTable(content, plan)
	c.addFooter(content, fmt.Sprintf("Page %s of %s, %d records",
		PagePlaceholder, PagesPlaceholder, content.RecordCount()))
}

// === Таблица и футер ===

// addTable режет таблицу на пострраничные фрагменты; каждый фрагмент несёт
// шапку. Пустая шапка или отсутствие данных дают блок-заглушку.
func (c *composer) addTable(content *ReportContent, plan WidthPlan) {
	if !content.HasTable() {
		c.add(Paragraph("No valid data to display", RolePlaceholder, placeholderHeight), placeholderHeight)
		return
	}

	units := plan.GridUnits(c.opts.GridSize)
	aligns := ColumnAligns(content.Header, c.opts.NumericMatch)

	newChunk := func() *TableBlock {
		return &TableBlock{
			Header:       content.Header,
			Units:        units,
			Aligns:       aligns,
			HeaderHeight: tableHeaderHeight,
			RowHeight:    tableRowHeight,
		}
	}

	// Шапка и хотя бы одна строка должны поместиться вместе
	if c.cursor > 0 && c.cursor+tableHeaderHeight+tableRowHeight > c.limit {
		c.pageBreak()
	}

	chunk := newChunk()
	c.cursor += tableHeaderHeight

	for i, row := range content.Rows {
		rowH := tableRowHeight
		if i == len(content.Rows)-1 {
			rowH = summaryRowHeight
		}
		if c.cursor+rowH > c.limit {
			c.blocks = append(c.blocks, Block{Kind: KindTable, Table: chunk})
			c.pageBreak()
			chunk = newChunk()
			c.cursor += tableHeaderHeight
		}
		chunk.Rows = append(chunk.Rows, row)
		c.cursor += rowH
	}

	// Итоговой строкой выделяется только последняя строка всей таблицы -
	// предполагается (без проверки), что источник кладёт итоги в конец
	chunk.SummaryLast = true
	c.blocks = append(c.blocks, Block{Kind: KindTable, Table: chunk})
}

func (c *composer) addFooter(content *ReportContent, text string) {
	if !content.HasTable() && !c.opts.FooterOnEmpty {
		return
	}
	c.add(Spacer(2), 2)
	c.add(Paragraph(text, RoleFooter, footerHeight), footerHeight)
}

func (c *composer) title(content *ReportContent) string {
	if c.opts.TitleOverride != "" {
		return c.opts.TitleOverride
	}
	return content.Title
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
