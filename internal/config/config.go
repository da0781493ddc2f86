package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pakuni/merit-cli/internal/validate"
)

// Config holds the full application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Formulas   FormulasConfig   `yaml:"formulas" mapstructure:"formulas"`
	Validation ValidationConfig `yaml:"validation" mapstructure:"validation"`
	Calculator CalculatorConfig `yaml:"calculator" mapstructure:"calculator"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// FormulasConfig locates the merit formula table. An empty path selects the
// table compiled into the binary.
type FormulasConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ValidationConfig configures score validation.
type ValidationConfig struct {
	MaxTotal float64 `yaml:"max_total" mapstructure:"max_total"`
	Language string  `yaml:"language" mapstructure:"language"`
}

// CalculatorConfig configures how results are presented.
type CalculatorConfig struct {
	Decimals     int     `yaml:"decimals" mapstructure:"decimals"`
	ChanceMargin float64 `yaml:"chance_margin" mapstructure:"chance_margin"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PAKUNI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("formulas.path", "")
	v.SetDefault("validation.max_total", validate.DefaultMaxTotal)
	v.SetDefault("validation.language", "en")
	v.SetDefault("calculator.decimals", 2)
	v.SetDefault("calculator.chance_margin", 2.0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for values the calculator cannot use.
func (c *Config) Validate() error {
	var errs []string

	if c.Validation.MaxTotal <= 0 {
		errs = append(errs, "validation.max_total must be > 0")
	}
	if _, err := validate.ParseLanguage(c.Validation.Language); err != nil {
		errs = append(errs, "validation.language must be one of "+strings.Join(validate.SupportedLanguages, ", "))
	}
	if c.Calculator.Decimals < 0 {
		errs = append(errs, "calculator.decimals must be >= 0")
	}
	if c.Calculator.ChanceMargin < 0 {
		errs = append(errs, "calculator.chance_margin must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// NewValidator builds the score validator described by the validation
// section.
func (c *Config) NewValidator() (*validate.Validator, error) {
	tag, err := validate.ParseLanguage(c.Validation.Language)
	if err != nil {
		return nil, err
	}
	return validate.NewValidator(validate.NewMessageTable(tag), c.Validation.MaxTotal), nil
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
