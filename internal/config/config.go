package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. OTSYM_LOG_LEVEL.
const EnvPrefix = "OTSYM"

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Symbol SymbolConfig `mapstructure:"symbol"`
	Check  CheckConfig  `mapstructure:"check"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

type SymbolConfig struct {
	// LineThickness is the default pen width in mils for imported symbols.
	LineThickness int `mapstructure:"line_thickness"`
}

type CheckConfig struct {
	// Strict aborts a check at the first record that fails to decode.
	Strict bool `mapstructure:"strict"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("symbol.line_thickness", 6)
	v.SetDefault("check.strict", false)
}

// Load reads configuration. An explicit path must exist; otherwise
// otsym.yaml is looked up in the working directory and ./config and may be
// absent. Environment variables override both.
func Load(path string) (*Config, error) {
	// Local .env for development, ignored when missing.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("otsym")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Symbol.LineThickness < 0 {
		return nil, fmt.Errorf("symbol.line_thickness must not be negative, got %d", cfg.Symbol.LineThickness)
	}

	return &cfg, nil
}
