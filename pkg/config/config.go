// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config - главная структура конфигурации
type Config struct {
	App    AppConfig    `koanf:"app"`
	Log    LogConfig    `koanf:"log"`
	Report ReportConfig `koanf:"report"`
}

// AppConfig - общие настройки приложения
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // путь к файлу логов
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // количество бэкапов
	MaxAge     int    `koanf:"max_age"`     // дней
	Compress   bool   `koanf:"compress"`
}

// ReportConfig конфигурация генерации отчётов
type ReportConfig struct {
	// Шаблон и страница
	Template      string  `koanf:"template"`      // classic, cover
	Geometry      string  `koanf:"geometry"`      // a4, a4-landscape, wide, custom
	CustomWidth   float64 `koanf:"custom_width"`  // mm, для geometry=custom
	CustomHeight  float64 `koanf:"custom_height"` // mm, для geometry=custom
	FooterOnEmpty bool    `koanf:"footer_on_empty"`

	// Источник данных
	Delimiter string `koanf:"delimiter"` // "," "\t" ";" или auto по расширению

	// Таблица
	MinColWidth     float64  `koanf:"min_col_width"`    // mm
	MaxColWidth     float64  `koanf:"max_col_width"`    // mm
	CharWidth       float64  `koanf:"char_width"`       // mm на символ в оценке ширины
	CellPadding     float64  `koanf:"cell_padding"`     // mm, добавка к оценке
	GrowToFill      bool     `koanf:"grow_to_fill"`     // растягивать колонки до полной ширины
	NumericKeywords []string `koanf:"numeric_keywords"` // ключевые слова числовых колонок

	// Брендинг
	CompanyName string `koanf:"company_name"`

	// PDF
	PDF PDFConfig `koanf:"pdf"`

	// Шрифты: упорядоченная цепочка кандидатов, первый загрузившийся побеждает
	Fonts FontsConfig `koanf:"fonts"`

	// Дополнительные экспорты рядом с документом
	Exports []string `koanf:"exports"` // xlsx, csv, markdown
}

// PDFConfig конфигурация PDF генератора
type PDFConfig struct {
	MarginTop         float64 `koanf:"margin_top"`       // mm
	MarginBottom      float64 `koanf:"margin_bottom"`    // mm
	MarginLeft        float64 `koanf:"margin_left"`      // mm
	MarginRight       float64 `koanf:"margin_right"`     // mm
	FontSize          float64 `koanf:"font_size"`        // pt
	HeaderFontSize    float64 `koanf:"header_font_size"` // pt
	TitleFontSize     float64 `koanf:"title_font_size"`  // pt
	GridSize          int     `koanf:"grid_size"`        // колонок в сетке раскладки
	EnablePageNumbers bool    `koanf:"enable_page_numbers"`
}

// FontsConfig конфигурация шрифтов
type FontsConfig struct {
	Candidates []FontCandidate `koanf:"candidates"`
}

// FontCandidate один кандидат цепочки шрифтов
type FontCandidate struct {
	Family string `koanf:"family"`
	Path   string `koanf:"path"`
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	validTemplates := map[string]bool{"classic": true, "cover": true}
	if !validTemplates[c.Report.Template] {
		errs = append(errs, fmt.Sprintf("report.template must be one of: classic, cover, got %s", c.Report.Template))
	}

	validGeometries := map[string]bool{"a4": true, "a4-landscape": true, "wide": true, "custom": true}
	if !validGeometries[c.Report.Geometry] {
		errs = append(errs, fmt.Sprintf("report.geometry must be one of: a4, a4-landscape, wide, custom, got %s", c.Report.Geometry))
	}
	if c.Report.Geometry == "custom" && (c.Report.CustomWidth <= 0 || c.Report.CustomHeight <= 0) {
		errs = append(errs, "report.custom_width and report.custom_height must be positive for geometry=custom")
	}

	if c.Report.MinColWidth < 0 || c.Report.MaxColWidth < 0 {
		errs = append(errs, "report column width bounds must be non-negative")
	}
	if c.Report.MaxColWidth > 0 && c.Report.MinColWidth > c.Report.MaxColWidth {
		errs = append(errs, fmt.Sprintf("report.min_col_width (%v) exceeds report.max_col_width (%v)", c.Report.MinColWidth, c.Report.MaxColWidth))
	}

	if c.Report.PDF.GridSize < 12 {
		errs = append(errs, fmt.Sprintf("report.pdf.grid_size must be at least 12, got %d", c.Report.PDF.GridSize))
	}

	validExports := map[string]bool{"xlsx": true, "csv": true, "markdown": true}
	for _, e := range c.Report.Exports {
		if !validExports[e] {
			errs = append(errs, fmt.Sprintf("report.exports entries must be one of: xlsx, csv, markdown, got %s", e))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment проверяет режим разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction проверяет продакшн режим
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
