// internal/report/geometry.go
package report

import (
	"tabreport/pkg/apperror"
)

// PageGeometry - размеры страницы и поля, mm. Фиксируется на весь документ.
type PageGeometry struct {
	Width        float64
	Height       float64
	LeftMargin   float64
	RightMargin  float64
	TopMargin    float64
	BottomMargin float64
}

// ContentWidth возвращает ширину области контента
func (g PageGeometry) ContentWidth() float64 {
	return g.Width - g.LeftMargin - g.RightMargin
}

// ContentHeight возвращает высоту области контента
func (g PageGeometry) ContentHeight() float64 {
	return g.Height - g.TopMargin - g.BottomMargin
}

// Margins применяет поля к пресету
func (g PageGeometry) withMargins(left, right, top, bottom float64) PageGeometry {
	g.LeftMargin, g.RightMargin, g.TopMargin, g.BottomMargin = left, right, top, bottom
	return g
}

// Пресеты страниц. "wide" - A3 альбомная, для широких таблиц.
var presets = map[string]PageGeometry{
	"a4":           {Width: 210, Height: 297},
	"a4-landscape": {Width: 297, Height: 210},
	"wide":         {Width: 420, Height: 297},
}

// GeometryOptions выбор геометрии: пресет или свои размеры
type GeometryOptions struct {
	Preset       string
	CustomWidth  float64
	CustomHeight float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
}

// ResolveGeometry разворачивает опции в конкретную геометрию страницы
func ResolveGeometry(opt GeometryOptions) (PageGeometry, error) {
	if opt.Preset == "custom" {
		if opt.CustomWidth <= 0 || opt.CustomHeight <= 0 {
			return PageGeometry{}, apperror.New(apperror.CodeInvalidArgument, "custom geometry requires positive width and height")
		}
		g := PageGeometry{Width: opt.CustomWidth, Height: opt.CustomHeight}
		return g.withMargins(opt.MarginLeft, opt.MarginRight, opt.MarginTop, opt.MarginBottom), nil
	}

	g, ok := presets[opt.Preset]
	if !ok {
		return PageGeometry{}, apperror.NewWithField(apperror.CodeInvalidArgument, "unknown geometry preset", opt.Preset)
	}
	return g.withMargins(opt.MarginLeft, opt.MarginRight, opt.MarginTop, opt.MarginBottom), nil
}
