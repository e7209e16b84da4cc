// internal/report/fonts.go
package report

import (
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"tabreport/pkg/apperror"
	"tabreport/pkg/logger"
)

// FontCandidate - один кандидат цепочки шрифтов: семейство и путь к TTF
type FontCandidate struct {
	Family string
	Path   string
}

// ResolvedFont - результат разрешения шрифта. Fallback=true означает, что
// ни один кандидат не загрузился и используется встроенный шрифт; глифы вне
// латиницы в этом режиме могут не отрисоваться - известное ограничение,
// а не ошибка.
type ResolvedFont struct {
	Family   string
	Custom   []*entity.CustomFont
	Fallback bool
}

// FontChain - упорядоченная цепочка кандидатов шрифта
type FontChain struct {
	Candidates []FontCandidate
}

// Resolve пробует кандидатов по порядку; побеждает первый загрузившийся.
// Неудача всей цепочки не является ошибкой: возвращается встроенный шрифт,
// о каждом промахе пишется предупреждение в лог.
func (c FontChain) Resolve() ResolvedFont {
	for _, cand := range c.Candidates {
		if cand.Family == "" || cand.Path == "" {
			continue
		}
		custom, err := repository.New().
			AddUTF8Font(cand.Family, fontstyle.Normal, cand.Path).
			AddUTF8Font(cand.Family, fontstyle.Bold, cand.Path).
			Load()
		if err != nil {
			warn := apperror.Wrap(err, apperror.CodeFontUnavailable, "font candidate failed to load").
				WithField(cand.Path).
				WithSeverity(apperror.SeverityWarning)
			logger.Warn("font candidate skipped", "family", cand.Family, "error", warn)
			continue
		}
		return ResolvedFont{Family: cand.Family, Custom: custom}
	}

	if len(c.Candidates) > 0 {
		logger.Warn("all font candidates failed, using built-in fallback", "fallback", fontfamily.Arial)
	}
	return ResolvedFont{Family: fontfamily.Arial, Fallback: true}
}
