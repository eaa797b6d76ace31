package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppName names the per-user config directory and the env prefix.
const AppName = "formwizard"

var (
	// ErrNoForm is returned when no wizard form is configured.
	ErrNoForm = errors.New("config: wizard.form is required")
	// ErrNoFormats is returned when no export format is configured.
	ErrNoFormats = errors.New("config: export.formats must list at least one format")
	// ErrNoExportDir is returned when the export directory is blank.
	ErrNoExportDir = errors.New("config: export.dir is required")
)

// Config holds the full application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Wizard WizardConfig `yaml:"wizard" mapstructure:"wizard"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ExportConfig configures where and how finished wizards are exported.
type ExportConfig struct {
	Dir     string   `yaml:"dir" mapstructure:"dir"`
	Formats []string `yaml:"formats" mapstructure:"formats"`
	// ForceRIPD writes the impact report draft even for processes not
	// flagged as high risk.
	ForceRIPD bool `yaml:"force_ripd" mapstructure:"force_ripd"`
	// DisableDocx turns off the document backend; docx exports then fail.
	DisableDocx bool `yaml:"disable_docx" mapstructure:"disable_docx"`
}

// WizardConfig selects the form to run.
type WizardConfig struct {
	Form      string `yaml:"form" mapstructure:"form"`
	SchemaDir string `yaml:"schema_dir" mapstructure:"schema_dir"`
}

// ConfigDir returns the per-user configuration directory.
// On Linux: ~/.config/formwizard
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultExportDir returns the user's download directory.
func DefaultExportDir() string {
	if dir := xdg.UserDirs.Download; dir != "" {
		return dir
	}
	return xdg.Home
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(ConfigDir())

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("export.dir", DefaultExportDir())
	v.SetDefault("export.formats", []string{"csv", "docx"})
	v.SetDefault("export.force_ripd", false)
	v.SetDefault("export.disable_docx", false)
	v.SetDefault("wizard.form", "biometria")
	v.SetDefault("wizard.schema_dir", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings the commands depend on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Wizard.Form) == "" {
		return ErrNoForm
	}
	if len(c.Export.Formats) == 0 {
		return ErrNoFormats
	}
	if strings.TrimSpace(c.Export.Dir) == "" {
		return ErrNoExportDir
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
