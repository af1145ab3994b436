package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, ConversionConfig{
		FontName:        "Calibri",
		FontSize:        11,
		HorizontalAlign: "center",
		VerticalAlign:   "center",
		AutoRowHeight:   true,
	}, cfg.Conversion)
	assert.Equal(t, "normal", cfg.Logging.ConsoleLogger.Level)
	assert.Equal(t, "none", cfg.Logging.FileLogger.Level)
}

func TestLoadConfigurationOverlay(t *testing.T) {
	path := writeConfig(t, `version: 1
conversion:
  table_class: report
  all_tables: true
  font_size: 9.5
  horizontal_align: general
logging:
  console:
    level: debug
`)
	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, "report", cfg.Conversion.TableClass)
	assert.True(t, cfg.Conversion.AllTables)
	assert.Equal(t, 9.5, cfg.Conversion.FontSize)
	assert.Equal(t, "general", cfg.Conversion.HorizontalAlign)
	assert.Equal(t, "Calibri", cfg.Conversion.FontName, "defaults survive the overlay")
	assert.True(t, cfg.Conversion.AutoRowHeight)
	assert.Equal(t, "debug", cfg.Logging.ConsoleLogger.Level)
}

func TestLoadConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "version: 1\nconversion:\n  colour: red\n"},
		{"bad alignment", "version: 1\nconversion:\n  horizontal_align: sideways\n"},
		{"bad font size", "version: 1\nconversion:\n  font_size: 0\n"},
		{"bad version", "version: 2\n"},
		{"long sheet name", "version: 1\nconversion:\n  sheet_name: " + strings.Repeat("s", 32) + "\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
		{"not yaml", "version: [1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 1")

	cfg, err := LoadConfiguration("")
	require.NoError(t, err)
	cfg.Conversion.TableClass = "dumped"
	out, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "table_class: dumped")

	// a dump loads back to the same configuration
	back, err := LoadConfiguration(writeConfig(t, string(out)))
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
