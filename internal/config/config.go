package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Format FormatConfig
	Report ReportConfig
	Log    LogConfig
}

// FormatConfig holds date rendering settings.
type FormatConfig struct {
	Locale      string `mapstructure:"locale"`
	Timezone    string `mapstructure:"timezone"`
	Placeholder string `mapstructure:"placeholder"`
}

// ReportConfig holds status report output settings.
type ReportConfig struct {
	Format         string `mapstructure:"format"`
	SheetName      string `mapstructure:"sheet_name"`
	FilenamePrefix string `mapstructure:"filename_prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DOCSTATUS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCSTATUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Format defaults
	v.SetDefault("format.locale", "zh-CN")
	v.SetDefault("format.timezone", "Asia/Shanghai")
	v.SetDefault("format.placeholder", "-")

	// Report defaults
	v.SetDefault("report.format", "xlsx")
	v.SetDefault("report.sheet_name", "Documents")
	v.SetDefault("report.filename_prefix", "document_status")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"format.locale":          "DOCSTATUS_FORMAT_LOCALE",
		"format.timezone":        "DOCSTATUS_FORMAT_TIMEZONE",
		"format.placeholder":     "DOCSTATUS_FORMAT_PLACEHOLDER",
		"report.format":          "DOCSTATUS_REPORT_FORMAT",
		"report.sheet_name":      "DOCSTATUS_REPORT_SHEET_NAME",
		"report.filename_prefix": "DOCSTATUS_REPORT_FILENAME_PREFIX",
		"log.level":              "DOCSTATUS_LOG_LEVEL",
		"log.format":             "DOCSTATUS_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.Format = FormatConfig{
		Locale:      v.GetString("format.locale"),
		Timezone:    v.GetString("format.timezone"),
		Placeholder: v.GetString("format.placeholder"),
	}
	cfg.Report = ReportConfig{
		Format:         strings.ToLower(v.GetString("report.format")),
		SheetName:      v.GetString("report.sheet_name"),
		FilenamePrefix: v.GetString("report.filename_prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: strings.ToLower(v.GetString("log.format")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Format.Timezone != "" {
		if _, err := time.LoadLocation(c.Format.Timezone); err != nil {
			return fmt.Errorf("invalid format.timezone %q: %w", c.Format.Timezone, err)
		}
	}
	switch c.Report.Format {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("invalid report.format %q: want xlsx or csv", c.Report.Format)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q: want console or json", c.Log.Format)
	}
	return nil
}
