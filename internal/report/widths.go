// internal/report/widths.go
package report

import (
	"sort"
	"unicode/utf8"
)

// WidthOptions параметры планировщика ширин колонок
type WidthOptions struct {
	Available  float64 // доступная ширина области контента, mm
	Min        float64 // нижняя граница ширины колонки до масштабирования, mm
	Max        float64 // верхняя граница ширины колонки до масштабирования, mm
	CharWidth  float64 // оценочная ширина символа, mm
	Padding    float64 // фиксированная добавка на отступы ячейки, mm
	GrowToFill bool    // растягивать колонки до полной ширины
}

// WidthPlan результат планирования: по ширине на колонку,
// sum(Widths) <= Available с точностью до эпсилона.
type WidthPlan struct {
	Widths []float64
}

// Total возвращает суммарную ширину плана
func (p WidthPlan) Total() float64 {
	t := 0.0
	for _, w := range p.Widths {
		t += w
	}
	return t
}

// PlanWidths оценивает ширину каждой колонки по шапке и всем ячейкам данных,
// зажимает в [Min, Max] и масштабирует под доступную ширину. Модель ширины
// текста намеренно грубая: число рун на константу плюс отступ, без метрик
// глифов. Ширины считаются всегда по шапке и данным вместе.
func PlanWidths(header []string, rows [][]string, opt WidthOptions) WidthPlan {
	if len(header) == 0 {
		return WidthPlan{}
	}

	widths := make([]float64, len(header))
	for i, h := range header {
		widths[i] = estimateTextWidth(h, opt)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := estimateTextWidth(row[i], opt); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i := range widths {
		widths[i] = clamp(widths[i], opt.Min, opt.Max)
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total <= 0 || opt.Available <= 0 {
		return WidthPlan{Widths: widths}
	}

	if total > opt.Available {
		// Пропорциональное сжатие
		factor := opt.Available / total
		for i := range widths {
			widths[i] *= factor
		}
	} else if total < opt.Available && opt.GrowToFill {
		// Равномерное распределение остатка
		slack := (opt.Available - total) / float64(len(widths))
		for i := range widths {
			widths[i] += slack
		}
	}

	return WidthPlan{Widths: widths}
}

// estimateTextWidth - пропорциональная оценка ширины текста
func estimateTextWidth(s string, opt WidthOptions) float64 {
	return float64(utf8.RuneCountInString(s))*opt.CharWidth + opt.Padding
}

func clamp(v, lo, hi float64) float64 {
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

// GridUnits квантует план в целочисленные доли сетки раскладки так, что
// сумма долей равна gridSize, а каждая непустая колонка получает хотя бы
// одну долю. Метод наибольших остатков сохраняет пропорции плана.
func (p WidthPlan) GridUnits(gridSize int) []int {
	n := len(p.Widths)
	if n == 0 || gridSize <= 0 {
		return nil
	}
	if n >= gridSize {
		// вырожденный случай: по доле на колонку, хвост обрезается рендером
		units := make([]int, n)
		for i := range units {
			units[i] = 1
		}
		return units
	}

	total := p.Total()
	if total <= 0 {
		units := make([]int, n)
		base := gridSize / n
		for i := range units {
			units[i] = base
		}
		units[0] += gridSize - base*n
		return units
	}

	type rem struct {
		idx  int
		frac float64
	}

	units := make([]int, n)
	rems := make([]rem, n)
	assigned := 0
	for i, w := range p.Widths {
		exact := w / total * float64(gridSize)
		units[i] = int(exact)
		if units[i] < 1 {
			units[i] = 1
		}
		rems[i] = rem{idx: i, frac: exact - float64(int(exact))}
		assigned += units[i]
	}

	// Раздаём недостающие доли колонкам с наибольшим остатком
	sort.Slice(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; assigned < gridSize; i = (i + 1) % n {
		units[rems[i].idx]++
		assigned++
	}
	// Забираем лишние у самых широких
	for assigned > gridSize {
		widest := 0
		for i := 1; i < n; i++ {
			if units[i] > units[widest] {
				widest = i
			}
		}
		if units[widest] <= 1 {
			break
		}
		units[widest]--
		assigned--
	}

	return units
}
