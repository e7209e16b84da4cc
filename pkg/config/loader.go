package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "TABREPORT_"
	configEnvVar = "CONFIG_PATH"
)

// Loader загружает конфигурацию из разных источников
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	envPrefix   string
}

// NewLoader создаёт новый загрузчик конфигурации
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k: koanf.New("."),
		configPaths: []string{
			"config.yaml",
			"config/config.yaml",
			"/etc/tabreport/config.yaml",
		},
		envPrefix: envPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoaderOption - опция для конфигурации загрузчика
type LoaderOption func(*Loader)

// WithConfigPaths устанавливает пути поиска конфигурации
func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.configPaths = paths
	}
}

// WithEnvPrefix устанавливает префикс переменных окружения
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// Load загружает конфигурацию с приоритетом:
// 1. Defaults (самый низкий)
// 2. Config file (yaml)
// 3. Environment variables (самый высокий)
func (l *Loader) Load() (*Config, error) {
	// 1. Загружаем значения по умолчанию
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Загружаем из файла конфигурации; файл не обязателен
	_ = l.loadConfigFile()

	// 3. Загружаем из переменных окружения (перезаписывают файл)
	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	// 4. Распаковываем в структуру
	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Валидируем
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultNumericKeywords - слова в заголовке колонки, по которым колонка
// считается числовой и выравнивается вправо. Эвристика, расширяется через
// report.numeric_keywords.
var DefaultNumericKeywords = []string{
	"amount", "total", "price", "quantity", "fee", "sum", "cost", "balance", "count",
	"сумма", "итого", "цена", "количество", "стоимость", "остаток", "кол-во",
}

// loadDefaults загружает значения по умолчанию
func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		// App
		"app.name":        "tabreport",
		"app.version":     "1.0.0",
		"app.environment": "development",
		"app.debug":       false,

		// Log
		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.max_size":    100,
		"log.max_backups": 3,
		"log.max_age":     7,
		"log.compress":    true,

		// Report - шаблон и страница
		"report.template":        "classic",
		"report.geometry":        "a4",
		"report.footer_on_empty": true,

		// Report - источник
		"report.delimiter": "",

		// Report - таблица
		"report.min_col_width":    15.0,
		"report.max_col_width":    70.0,
		"report.char_width":       2.0,
		"report.cell_padding":     6.0,
		"report.grow_to_fill":     true,
		"report.numeric_keywords": DefaultNumericKeywords,

		// Report - брендинг
		"report.company_name": "Tabreport",

		// Report - PDF
		"report.pdf.margin_top":          15.0,
		"report.pdf.margin_bottom":       20.0,
		"report.pdf.margin_left":         15.0,
		"report.pdf.margin_right":        15.0,
		"report.pdf.font_size":           9.0,
		"report.pdf.header_font_size":    9.0,
		"report.pdf.title_font_size":     18.0,
		"report.pdf.grid_size":           100,
		"report.pdf.enable_page_numbers": false,
	}

	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

// loadConfigFile загружает конфигурацию из файла
func (l *Loader) loadConfigFile() error {
	if configPath := os.Getenv(configEnvVar); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return l.k.Load(file.Provider(configPath), yaml.Parser())
		}
	}

	for _, path := range l.configPaths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}

		if _, err := os.Stat(absPath); err == nil {
			return l.k.Load(file.Provider(absPath), yaml.Parser())
		}
	}

	return fmt.Errorf("config file not found in paths: %v", l.configPaths)
}

// loadEnv загружает конфигурацию из переменных окружения
// Использует умную трансформацию ключей для полей с подчёркиванием
func (l *Loader) loadEnv() error {
	return l.k.Load(env.ProviderWithValue(l.envPrefix, ".", func(envKey string, value string) (string, interface{}) {
		// Убираем префикс и приводим к нижнему регистру
		key := strings.ToLower(strings.TrimPrefix(envKey, l.envPrefix))

		// Маппинг для полей с подчёркиванием в именах
		if mappedKey, ok := envKeyMappings[key]; ok {
			key = mappedKey
		} else {
			// По умолчанию заменяем все подчёркивания на точки
			key = strings.ReplaceAll(key, "_", ".")
		}

		// Для slice-полей разбиваем по запятой
		if isSliceField(key) {
			return key, splitAndTrim(value)
		}

		return key, value
	}), nil)
}

// envKeyMappings - маппинг переменных окружения на ключи конфига
// Необходим для полей, содержащих подчёркивания в именах
var envKeyMappings = map[string]string{
	// Log
	"log_level":       "log.level",
	"log_format":      "log.format",
	"log_output":      "log.output",
	"log_file_path":   "log.file_path",
	"log_max_size":    "log.max_size",
	"log_max_backups": "log.max_backups",
	"log_max_age":     "log.max_age",
	"log_compress":    "log.compress",

	// Report
	"report_template":         "report.template",
	"report_geometry":         "report.geometry",
	"report_custom_width":     "report.custom_width",
	"report_custom_height":    "report.custom_height",
	"report_footer_on_empty":  "report.footer_on_empty",
	"report_delimiter":        "report.delimiter",
	"report_min_col_width":    "report.min_col_width",
	"report_max_col_width":    "report.max_col_width",
	"report_char_width":       "report.char_width",
	"report_cell_padding":     "report.cell_padding",
	"report_grow_to_fill":     "report.grow_to_fill",
	"report_numeric_keywords": "report.numeric_keywords",
	"report_company_name":     "report.company_name",
	"report_exports":          "report.exports",

	// Report - PDF
	"report_pdf_margin_top":          "report.pdf.margin_top",
	"report_pdf_margin_bottom":       "report.pdf.margin_bottom",
	"report_pdf_margin_left":         "report.pdf.margin_left",
	"report_pdf_margin_right":        "report.pdf.margin_right",
	"report_pdf_font_size":           "report.pdf.font_size",
	"report_pdf_header_font_size":    "report.pdf.header_font_size",
	"report_pdf_title_font_size":     "report.pdf.title_font_size",
	"report_pdf_grid_size":           "report.pdf.grid_size",
	"report_pdf_enable_page_numbers": "report.pdf.enable_page_numbers",
}

// sliceFields - поля, которые должны парситься как слайсы
var sliceFields = map[string]bool{
	"report.numeric_keywords": true,
	"report.exports":          true,
}

func isSliceField(key string) bool {
	return sliceFields[key]
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// MustLoad загружает конфигурацию или паникует
func MustLoad(opts ...LoaderOption) *Config {
	cfg, err := NewLoader(opts...).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Load - удобная функция для загрузки с дефолтными настройками
func Load() (*Config, error) {
	return NewLoader().Load()
}
