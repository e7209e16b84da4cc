// internal/report/block.go
package report

import (
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
)

// Kind - вариант layout-блока
type Kind int

const (
	KindParagraph Kind = iota
	KindImage
	KindSpacer
	KindTable
	KindPageBreak
	// KindColumns - двухзонная строка шапки отчёта: слева текстовые блоки,
	// справа логотип над списком условий. Единственная вложенная раскладка.
	KindColumns
)

// Block - атомарная единица визуального контента. Упорядоченная
// последовательность блоков - единственный интерфейс между композером и
// рендером; рендер её потребляет и не хранит.
type Block struct {
	Kind Kind

	// Paragraph / Spacer
	Text   string
	Role   Role
	Height float64 // высота строки, mm

	// Image
	Image *ImageBlock

	// Table
	Table *TableBlock

	// Columns
	Left     []Block
	Right    []Block
	LeftSpan int // доля левой зоны в единицах сетки
}

// ImageBlock - картинка с готовой высотой отображения
type ImageBlock struct {
	Data   []byte
	Format string  // png, jpeg, ...
	Height float64 // высота отображения, mm
}

// TableBlock - фрагмент таблицы, целиком помещающийся на одну страницу.
// Композер разрезает длинные таблицы на фрагменты, и каждый фрагмент несёт
// шапку: так инвариант повтора шапки на каждой странице выполняется
// конструктивно.
type TableBlock struct {
	Header       []string
	Rows         [][]string
	Units        []int // доли сетки по колонкам
	Aligns       []align.Type
	HeaderHeight float64
	RowHeight    float64
	SummaryLast  bool // последняя строка - итоговая, выделяется стилем
}

// Paragraph конструирует текстовый блок
func Paragraph(text string, role Role, height float64) Block {
	return Block{Kind: KindParagraph, Text: text, Role: role, Height: height}
}

// Spacer конструирует вертикальный отступ
func Spacer(height float64) Block {
	return Block{Kind: KindSpacer, Height: height}
}

// PageBreak конструирует принудительный разрыв страницы
func PageBreak() Block {
	return Block{Kind: KindPageBreak}
}

// PageCount возвращает число страниц, на которые лягут блоки
func PageCount(blocks []Block) int {
	pages := 1
	for _, b := range blocks {
		if b.Kind == KindPageBreak {
			pages++
		}
	}
	return pages
}
