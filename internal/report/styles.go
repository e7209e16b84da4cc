// internal/report/styles.go
package report

import (
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Role - семантическая роль текста в отчёте
type Role int

const (
	RoleTitle Role = iota
	RoleSubtitle
	RoleIntro
	RoleStatement
	RoleCondition
	RoleMeta
	RoleTableHeader
	RoleTableBody
	RoleTableSummary
	RoleFooter
	RolePlaceholder
)

// Цвета
var (
	headerBgColor  = &props.Color{Red: 44, Green: 62, Blue: 80}    // #2c3e50
	primaryColor   = &props.Color{Red: 52, Green: 152, Blue: 219}  // #3498db
	lightGrayColor = &props.Color{Red: 236, Green: 240, Blue: 241} // #ecf0f1
	darkGrayColor  = &props.Color{Red: 127, Green: 140, Blue: 141} // #7f8c8d
	whiteColor     = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// StyleOptions размеры, приходящие из конфигурации
type StyleOptions struct {
	FontSize       float64
	HeaderFontSize float64
	TitleFontSize  float64
}

// StyleSet - готовые стили по ролям плюс стили ячеек таблицы.
// Собирается один раз на генерацию под разрешённый шрифт.
type StyleSet struct {
	Font    ResolvedFont
	byRole  map[Role]props.Text
	Header  *props.Cell
	Body    *props.Cell
	AltBody *props.Cell
	Summary *props.Cell
}

// NewStyleSet строит набор стилей под разрешённый шрифт
func NewStyleSet(font ResolvedFont, opt StyleOptions) *StyleSet {
	if opt.FontSize <= 0 {
		opt.FontSize = 9
	}
	if opt.HeaderFontSize <= 0 {
		opt.HeaderFontSize = opt.FontSize
	}
	if opt.TitleFontSize <= 0 {
		opt.TitleFontSize = 18
	}

	family := font.Family

	byRole := map[Role]props.Text{
		RoleTitle: {
			Family: family,
			Size:   opt.TitleFontSize,
			Style:  fontstyle.Bold,
			Align:  align.Center,
			Color:  headerBgColor,
		},
		RoleSubtitle: {
			Family: family,
			Size:   opt.TitleFontSize - 4,
			Style:  fontstyle.Bold,
			Color:  headerBgColor,
		},
		RoleIntro: {
			Family: family,
			Size:   opt.FontSize + 1,
		},
		RoleStatement: {
			Family: family,
			Size:   opt.FontSize + 1,
			Style:  fontstyle.Bold,
		},
		RoleCondition: {
			Family: family,
			Size:   opt.FontSize,
			Color:  darkGrayColor,
		},
		RoleMeta: {
			Family: family,
			Size:   8,
			Color:  darkGrayColor,
		},
		RoleTableHeader: {
			Family: family,
			Size:   opt.HeaderFontSize,
			Style:  fontstyle.Bold,
			Color:  whiteColor,
			Align:  align.Center,
		},
		RoleTableBody: {
			Family: family,
			Size:   opt.FontSize,
			Align:  align.Left,
		},
		RoleTableSummary: {
			Family: family,
			Size:   opt.FontSize + 2,
			Style:  fontstyle.Bold,
			Align:  align.Left,
		},
		RoleFooter: {
			Family: family,
			Size:   8,
			Color:  darkGrayColor,
			Align:  align.Center,
		},
		RolePlaceholder: {
			Family: family,
			Size:   opt.FontSize + 2,
			Align:  align.Center,
			Color:  darkGrayColor,
		},
	}

	return &StyleSet{
		Font:   font,
		byRole: byRole,
		Header: &props.Cell{BackgroundColor: primaryColor},
		Body: &props.Cell{
			BorderType:  border.Bottom,
			BorderColor: lightGrayColor,
		},
		AltBody: &props.Cell{
			BackgroundColor: lightGrayColor,
			BorderType:      border.Bottom,
			BorderColor:     lightGrayColor,
		},
		Summary: &props.Cell{
			BorderType:      border.Top,
			BorderColor:     primaryColor,
			BorderThickness: 0.6,
		},
	}
}

// Text возвращает стиль текста для роли
func (s *StyleSet) Text(role Role) props.Text {
	return s.byRole[role]
}

// TextAligned возвращает стиль роли с переопределённым выравниванием
func (s *StyleSet) TextAligned(role Role, a align.Type) props.Text {
	st := s.byRole[role]
	st.Align = a
	return st
}

// NumericMatcher решает, считать ли колонку числовой по тексту шапки
type NumericMatcher func(header string) bool

// KeywordMatcher строит матчер по набору ключевых слов. Сравнение
// регистронезависимое по вхождению подстроки: "Order Amount" совпадает с
// "amount". Эвристика, не гарантия.
func KeywordMatcher(keywords []string) NumericMatcher {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return func(header string) bool {
		h := strings.ToLower(header)
		for _, k := range lowered {
			if strings.Contains(h, k) {
				return true
			}
		}
		return false
	}
}

// ColumnAligns возвращает выравнивание по колонкам: числовые - вправо
func ColumnAligns(header []string, match NumericMatcher) []align.Type {
	aligns := make([]align.Type, len(header))
	for i, h := range header {
		if match != nil && match(h) {
			aligns[i] = align.Right
		} else {
			aligns[i] = align.Left
		}
	}
	return aligns
}
