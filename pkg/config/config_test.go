package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tabreport", cfg.App.Name)
	assert.Equal(t, "classic", cfg.Report.Template)
	assert.Equal(t, "a4", cfg.Report.Geometry)
	assert.True(t, cfg.Report.FooterOnEmpty)
	assert.Equal(t, 100, cfg.Report.PDF.GridSize)
	assert.Equal(t, 15.0, cfg.Report.MinColWidth)
	assert.Contains(t, cfg.Report.NumericKeywords, "amount")
	assert.Contains(t, cfg.Report.NumericKeywords, "сумма")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TABREPORT_REPORT_TEMPLATE", "cover")
	t.Setenv("TABREPORT_REPORT_PDF_GRID_SIZE", "48")
	t.Setenv("TABREPORT_REPORT_EXPORTS", "csv, markdown")
	t.Setenv("TABREPORT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cover", cfg.Report.Template)
	assert.Equal(t, 48, cfg.Report.PDF.GridSize)
	assert.Equal(t, []string{"csv", "markdown"}, cfg.Report.Exports)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("report:\n  geometry: wide\n  company_name: Acme\n  fonts:\n    candidates:\n      - family: dejavu\n        path: /usr/share/fonts/dejavu.ttf\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "wide", cfg.Report.Geometry)
	assert.Equal(t, "Acme", cfg.Report.CompanyName)
	require.Len(t, cfg.Report.Fonts.Candidates, 1)
	assert.Equal(t, "dejavu", cfg.Report.Fonts.Candidates[0].Family)

	// Env всё ещё перекрывает файл
	t.Setenv("TABREPORT_REPORT_GEOMETRY", "a4-landscape")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "a4-landscape", cfg.Report.Geometry)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad template",
			mutate:  func(c *Config) { c.Report.Template = "fancy" },
			wantErr: "report.template",
		},
		{
			name:    "bad geometry",
			mutate:  func(c *Config) { c.Report.Geometry = "letter" },
			wantErr: "report.geometry",
		},
		{
			name: "custom geometry without dimensions",
			mutate: func(c *Config) {
				c.Report.Geometry = "custom"
				c.Report.CustomWidth = 0
			},
			wantErr: "custom_width",
		},
		{
			name: "min above max",
			mutate: func(c *Config) {
				c.Report.MinColWidth = 80
				c.Report.MaxColWidth = 70
			},
			wantErr: "min_col_width",
		},
		{
			name:    "bad export format",
			mutate:  func(c *Config) { c.Report.Exports = []string{"docx"} },
			wantErr: "exports",
		},
		{
			name:    "tiny grid",
			mutate:  func(c *Config) { c.Report.PDF.GridSize = 6 },
			wantErr: "grid_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
