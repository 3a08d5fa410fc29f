package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/bcdannyboy/eurostrat/logger"
	"github.com/bcdannyboy/eurostrat/models"
)

const DefaultPath = "config.yaml"

// OptionConfig describes the instrument the demo prices.
type OptionConfig struct {
	Type          string  `yaml:"type"`
	Spot          float64 `yaml:"spot"`
	Strike        float64 `yaml:"strike"`
	Rate          float64 `yaml:"rate"`
	DividendYield float64 `yaml:"dividend_yield"`
	Maturity      float64 `yaml:"maturity"`
	Volatility    float64 `yaml:"volatility"`
}

type PricingConfig struct {
	Model       string `yaml:"model"` // analytic, simulation, lattice
	Accelerated bool   `yaml:"accelerated"`
	Paths       int    `yaml:"paths"`
	Seed        uint64 `yaml:"seed"`
	Workers     int    `yaml:"workers"`
	Replicates  int    `yaml:"replicates"`
	Fallback    bool   `yaml:"fallback"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Option  OptionConfig  `yaml:"option"`
	Pricing PricingConfig `yaml:"pricing"`
	Logging logger.Config `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// Default is an at-the-money six month call priced by accelerated simulation.
func Default() *Config {
	return &Config{
		Option: OptionConfig{
			Type:          "call",
			Spot:          100,
			Strike:        100,
			Rate:          0.01,
			DividendYield: 0,
			Maturity:      0.5,
			Volatility:    0.35,
		},
		Pricing: PricingConfig{
			Model:       "simulation",
			Accelerated: true,
			Paths:       models.DefaultPaths,
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "text",
			Output:     "stdout",
			File:       "logs/pricer.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load layers defaults, the YAML file at path and environment variables, in
// that order. A .env file in the working directory is loaded into the
// environment first. An empty path means DefaultPath, which may be absent.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Option.Type = getEnv("OPTION_TYPE", c.Option.Type)
	c.Option.Spot = getEnvFloat("OPTION_SPOT", c.Option.Spot)
	c.Option.Strike = getEnvFloat("OPTION_STRIKE", c.Option.Strike)
	c.Option.Rate = getEnvFloat("OPTION_RATE", c.Option.Rate)
	c.Option.DividendYield = getEnvFloat("OPTION_DIVIDEND_YIELD", c.Option.DividendYield)
	c.Option.Maturity = getEnvFloat("OPTION_MATURITY", c.Option.Maturity)
	c.Option.Volatility = getEnvFloat("OPTION_VOLATILITY", c.Option.Volatility)

	c.Pricing.Model = getEnv("PRICER_MODEL", c.Pricing.Model)
	c.Pricing.Accelerated = getEnvBool("PRICER_ACCELERATED", c.Pricing.Accelerated)
	c.Pricing.Paths = getEnvInt("PRICER_PATHS", c.Pricing.Paths)
	c.Pricing.Seed = getEnvUint("PRICER_SEED", c.Pricing.Seed)
	c.Pricing.Workers = getEnvInt("PRICER_WORKERS", c.Pricing.Workers)
	c.Pricing.Replicates = getEnvInt("PRICER_REPLICATES", c.Pricing.Replicates)
	c.Pricing.Fallback = getEnvBool("PRICER_FALLBACK", c.Pricing.Fallback)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
	c.Logging.Output = getEnv("LOG_OUTPUT", c.Logging.Output)
	c.Logging.File = getEnv("LOG_FILE", c.Logging.File)

	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
}

// Validate checks the pricing section. Option parameters are checked when
// the option is built.
func (c *Config) Validate() error {
	if _, err := models.ParseStrategyKind(c.Pricing.Model); err != nil {
		return fmt.Errorf("pricing.model: %w", err)
	}
	if c.Pricing.Paths <= 0 {
		return fmt.Errorf("pricing.paths must be positive, got %d", c.Pricing.Paths)
	}
	if c.Pricing.Workers < 0 {
		return fmt.Errorf("pricing.workers must not be negative, got %d", c.Pricing.Workers)
	}
	if c.Pricing.Replicates < 0 {
		return fmt.Errorf("pricing.replicates must not be negative, got %d", c.Pricing.Replicates)
	}
	return nil
}

// NewOption builds the configured option.
func (c *Config) NewOption() (models.Option, error) {
	t, err := models.ParseOptionType(c.Option.Type)
	if err != nil {
		return models.Option{}, err
	}
	return models.NewOption(t, c.Option.Spot, c.Option.Strike, c.Option.Rate,
		c.Option.DividendYield, c.Option.Maturity, c.Option.Volatility)
}

// NewStrategy builds a fresh strategy from the pricing section.
func (c *Config) NewStrategy() (models.PricingStrategy, error) {
	kind, err := models.ParseStrategyKind(c.Pricing.Model)
	if err != nil {
		return nil, err
	}
	return models.NewStrategy(kind, c.Pricing.Accelerated,
		models.WithPaths(c.Pricing.Paths),
		models.WithSeed(c.Pricing.Seed),
		models.WithWorkers(c.Pricing.Workers),
		models.WithFallback(c.Pricing.Fallback),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
