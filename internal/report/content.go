// internal/report/content.go
package report

import (
	"strings"

	"tabreport/pkg/apperror"
)

// ReportContent - структурное разложение сырых строк источника:
// заголовок отчёта, условия выборки, шапка таблицы и строки данных.
type ReportContent struct {
	Title      string
	Conditions []string
	Header     []string
	Rows       [][]string
}

// RecordCount возвращает число строк данных
func (c *ReportContent) RecordCount() int {
	return len(c.Rows)
}

// HasTable сообщает, есть ли что рисовать в таблице
func (c *ReportContent) HasTable() bool {
	return len(c.Header) > 0 && len(c.Rows) > 0
}

// Condition - пара "метка: значение" условия выборки
type Condition struct {
	Label string
	Value string
}

// ParseCondition разбирает сырую строку условия по первому двоеточию.
// Без двоеточия вся строка считается меткой с пустым значением.
func ParseCondition(raw string) Condition {
	if i := strings.Index(raw, ":"); i >= 0 {
		return Condition{
			Label: strings.TrimSpace(raw[:i]),
			Value: strings.TrimSpace(raw[i+1:]),
		}
	}
	return Condition{Label: strings.TrimSpace(raw)}
}

// Extract раскладывает сырые строки на заголовок, условия, шапку и данные.
//
// Первая непустая строка даёт заголовок отчёта (первое поле, кавычки
// снимаются). Дальше строки с единственным непустым полем копятся как
// условия, пока не встретится строка с более чем одним полем и хотя бы
// одним непустым - это шапка таблицы. Всё после шапки - данные; полностью
// пустые строки пропускаются, рваные строки выравниваются по длине шапки.
//
// Если шапка так и не найдена, возвращается частичный ReportContent вместе
// с ошибкой MALFORMED_INPUT: вызывающая сторона рисует документ-заглушку.
func Extract(raw [][]string) (*ReportContent, error) {
	content := &ReportContent{}

	i := 0
	for i < len(raw) && blankRow(raw[i]) {
		i++
	}
	if i == len(raw) {
		return content, apperror.ErrEmptyInput
	}

	if len(raw[i]) > 0 {
		content.Title = stripQuotes(raw[i][0])
	}
	i++

	// Условия до шапки. Шапка - первая строка с двумя и более непустыми
	// полями: условие с хвостовыми пустыми полями шапкой не считается.
	for ; i < len(raw); i++ {
		row := raw[i]
		if countNonBlank(row) > 1 {
			content.Header = cleanFields(row)
			i++
			break
		}
		if countNonBlank(row) == 1 {
			content.Conditions = append(content.Conditions, stripQuotes(firstNonBlank(row)))
		}
		// строки без непустых полей пропускаем
	}

	if len(content.Header) == 0 {
		return content, apperror.ErrNoHeader
	}

	// Данные после шапки
	for ; i < len(raw); i++ {
		row := raw[i]
		if countNonBlank(row) == 0 {
			continue
		}
		content.Rows = append(content.Rows, normalizeRow(cleanFields(row), len(content.Header)))
	}

	return content, nil
}

// blankRow - строка без единого непустого поля
func blankRow(row []string) bool {
	return countNonBlank(row) == 0
}

func countNonBlank(row []string) int {
	n := 0
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return n
}

func firstNonBlank(row []string) string {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return f
		}
	}
	return ""
}

// stripQuotes снимает окаймляющие кавычки и пробелы
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

func cleanFields(row []string) []string {
	out := make([]string, len(row))
	for i, f := range row {
		out[i] = stripQuotes(f)
	}
	return out
}

// normalizeRow выравнивает строку по длине шапки
func normalizeRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
