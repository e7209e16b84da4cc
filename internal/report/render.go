// internal/report/render.go
package report

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"tabreport/pkg/apperror"
)

// RenderOptions параметры обращения к документному рендеру
type RenderOptions struct {
	Geometry    PageGeometry
	GridSize    int
	Styles      *StyleSet
	DocTitle    string
	DocAuthor   string
	PageNumbers bool
}

// RenderPDF отдаёт блоки документному рендеру и пишет результат в outPath.
// Плейсхолдеры номеров страниц в футере разрешаются здесь: к этому моменту
// пагинация завершена и число страниц известно. Запись атомарна - документ
// собирается во временный файл и переименовывается, частичный файл на месте
// назначения не остаётся.
func RenderPDF(blocks []Block, outPath string, opt RenderOptions) error {
	if opt.GridSize <= 0 {
		opt.GridSize = 12
	}

	blocks = resolvePagePlaceholders(blocks)

	m := maroto.New(buildConfig(opt))

	r := &renderer{grid: opt.GridSize, styles: opt.Styles}
	var rows []core.Row
	for _, b := range blocks {
		if b.Kind == KindPageBreak {
			p := page.New()
			p.Add(rows...)
			m.AddPages(p)
			rows = nil
			continue
		}
		rows = append(rows, r.blockRows(b)...)
	}
	if len(rows) > 0 {
		m.AddRows(rows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "document generation failed")
	}

	return writeAtomic(outPath, doc.GetBytes())
}

func buildConfig(opt RenderOptions) *entity.Config {
	b := config.NewBuilder().
		WithDimensions(opt.Geometry.Width, opt.Geometry.Height).
		WithLeftMargin(opt.Geometry.LeftMargin).
		WithRightMargin(opt.Geometry.RightMargin).
		WithTopMargin(opt.Geometry.TopMargin).
		WithBottomMargin(opt.Geometry.BottomMargin).
		WithMaxGridSize(opt.GridSize)

	if opt.Styles != nil {
		if len(opt.Styles.Font.Custom) > 0 {
			b = b.WithCustomFonts(opt.Styles.Font.Custom)
		}
		b = b.WithDefaultFont(&props.Font{Family: opt.Styles.Font.Family})
	}
	if opt.DocTitle != "" {
		b = b.WithTitle(opt.DocTitle, true)
	}
	if opt.DocAuthor != "" {
		b = b.WithAuthor(opt.DocAuthor, true)
	}
	if opt.PageNumbers {
		b = b.WithPageNumber()
	}

	return b.Build()
}

type renderer struct {
	grid   int
	styles *StyleSet
}

// blockRows превращает блок в строки документного рендера
func (r *renderer) blockRows(b Block) []core.Row {
	switch b.Kind {
	case KindParagraph:
		return []core.Row{
			row.New(b.Height).Add(
				text.NewCol(r.grid, b.Text, r.styles.Text(b.Role)),
			),
		}
	case KindSpacer:
		return []core.Row{row.New(b.Height)}
	case KindImage:
		return []core.Row{
			row.New(b.Image.Height).Add(
				image.NewFromBytesCol(r.grid, b.Image.Data, imageExt(b.Image.Format),
					props.Rect{Center: true, Percent: 100}),
			),
		}
	case KindColumns:
		return []core.Row{r.columnsRow(b)}
	case KindTable:
		return r.tableRows(b.Table)
	default:
		return nil
	}
}

// columnsRow собирает двухзонную строку: компоненты каждой зоны
// укладываются в одну колонку со смещениями по вертикали
func (r *renderer) columnsRow(b Block) core.Row {
	rightSpan := r.grid - b.LeftSpan

	left := col.New(b.LeftSpan)
	top := 0.0
	for _, lb := range b.Left {
		st := r.styles.Text(lb.Role)
		st.Top = top
		left.Add(text.New(lb.Text, st))
		top += lb.Height
	}

	right := col.New(rightSpan)
	top = 0.0
	for _, rb := range b.Right {
		if rb.Kind == KindImage {
			right.Add(image.NewFromBytes(rb.Image.Data, imageExt(rb.Image.Format),
				props.Rect{Center: true, Percent: 100}))
			top += rb.Height + 2
			continue
		}
		st := r.styles.Text(rb.Role)
		st.Top = top
		right.Add(text.New(rb.Text, st))
		top += rb.Height
	}

	return row.New(b.Height).Add(left, right)
}

// tableRows рисует фрагмент таблицы: шапку, строки с чередующейся заливкой
// и, если фрагмент последний, выделенную итоговую строку
func (r *renderer) tableRows(t *TableBlock) []core.Row {
	rows := make([]core.Row, 0, len(t.Rows)+1)

	headerCols := make([]core.Col, 0, len(t.Header))
	for i, h := range t.Header {
		headerCols = append(headerCols,
			text.NewCol(r.units(t, i), h, r.styles.Text(RoleTableHeader)).WithStyle(r.styles.Header))
	}
	rows = append(rows, row.New(t.HeaderHeight).Add(headerCols...))

	for ri, dataRow := range t.Rows {
		summary := t.SummaryLast && ri == len(t.Rows)-1

		cell := r.styles.Body
		if ri%2 == 1 {
			cell = r.styles.AltBody
		}
		role := RoleTableBody
		height := t.RowHeight
		if summary {
			cell = r.styles.Summary
			role = RoleTableSummary
			height = summaryRowHeight
		}

		cols := make([]core.Col, 0, len(dataRow))
		for i, val := range dataRow {
			st := r.styles.Text(role)
			if i < len(t.Aligns) {
				st.Align = t.Aligns[i]
			}
			cols = append(cols, text.NewCol(r.units(t, i), val, st).WithStyle(cell))
		}
		rows = append(rows, row.New(height).Add(cols...))
	}

	return rows
}

func (r *renderer) units(t *TableBlock, i int) int {
	if i < len(t.Units) {
		return t.Units[i]
	}
	return 1
}

func imageExt(format string) extension.Type {
	switch format {
	case "jpeg", "jpg":
		return extension.Jpg
	default:
		return extension.Png
	}
}

// resolvePagePlaceholders подставляет фактические номера страниц в тексты
// блоков. Номер страницы блока определяется числом разрывов до него.
func resolvePagePlaceholders(blocks []Block) []Block {
	total := PageCount(blocks)
	out := make([]Block, len(blocks))
	current := 1
	for i, b := range blocks {
		if b.Kind == KindPageBreak {
			current++
		}
		if b.Kind == KindParagraph && strings.Contains(b.Text, "{") {
			b.Text = strings.ReplaceAll(b.Text, PagePlaceholder, strconv.Itoa(current))
			b.Text = strings.ReplaceAll(b.Text, PagesPlaceholder, strconv.Itoa(total))
		}
		out[i] = b
	}
	return out
}

// writeAtomic пишет документ через временный файл в том же каталоге
func writeAtomic(outPath string, data []byte) error {
	dir := filepath.Dir(outPath)

	tmp, err := os.CreateTemp(dir, ".tabreport-*.pdf")
	if err != nil {
		return apperror.Wrap(err, apperror.CodeOutputWrite, "cannot create output file").WithField(outPath)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperror.Wrap(err, apperror.CodeOutputWrite, "cannot write output file").WithField(outPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperror.Wrap(err, apperror.CodeOutputWrite, "cannot finalize output file").WithField(outPath)
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		os.Remove(tmpName)
		return apperror.Wrap(err, apperror.CodeOutputWrite, "cannot move output into place").WithField(outPath)
	}

	return nil
}
