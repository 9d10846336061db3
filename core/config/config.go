package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/trufnetwork/credit-market/core/ledger"
	"github.com/trufnetwork/credit-market/core/types"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config describes how a host sets up a ledger
type Config struct {
	// Admin is stored on the ledger; resolution is not gated on it
	Admin            string `yaml:"admin"`
	RewardMultiplier int64  `yaml:"reward_multiplier" validate:"gte=1"`
	LogLevel         string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Defaults returns the configuration used when a field is left out
func Defaults() Config {
	return Config{
		RewardMultiplier: ledger.DefaultRewardMultiplier,
		LogLevel:         "info",
	}
}

// Load reads a YAML config file, expanding ${VAR} references, on top of
// Defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	return Parse(data)
}

// Parse decodes and validates YAML config content
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// NewLogger builds a production zap logger at the configured level
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return logger, nil
}

// LedgerOptions converts the config into ledger construction options
func (c *Config) LedgerOptions(logger *zap.Logger) []ledger.Option {
	opts := []ledger.Option{
		ledger.WithAdmin(types.Address(c.Admin)),
		ledger.WithRewardMultiplier(c.RewardMultiplier),
	}
	if logger != nil {
		opts = append(opts, ledger.WithLogger(logger))
	}
	return opts
}
