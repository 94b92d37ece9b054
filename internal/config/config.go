package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Scrape  ScrapeConfig  `yaml:"scrape" mapstructure:"scrape"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// FetchConfig configures page retrieval.
type FetchConfig struct {
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts  int    `yaml:"max_attempts" mapstructure:"max_attempts"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// Timeout returns the per-request timeout.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// ScrapeConfig selects scrape engines and URLs they must never fetch.
type ScrapeConfig struct {
	Engines      []string `yaml:"engines" mapstructure:"engines"`
	ExcludePaths []string `yaml:"exclude_paths" mapstructure:"exclude_paths"`
}

// ExtractConfig tunes the extraction stages.
type ExtractConfig struct {
	MaxSubpages int `yaml:"max_subpages" mapstructure:"max_subpages"`
}

// BatchConfig configures roster processing.
type BatchConfig struct {
	DelaySecs int `yaml:"delay_secs" mapstructure:"delay_secs"`
	Limit     int `yaml:"limit" mapstructure:"limit"`
}

// Delay returns the pause between companies.
func (b BatchConfig) Delay() time.Duration {
	return time.Duration(b.DelaySecs) * time.Second
}

// OutputConfig names the batch export files.
type OutputConfig struct {
	XLSX string `yaml:"xlsx" mapstructure:"xlsx"`
	JSON string `yaml:"json" mapstructure:"json"`
}

// StoreConfig configures the result history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from path, or from an optional config.yaml in the
// working directory when path is empty, then applies SCRAPER_* environment
// variables. A .env file in the working directory is loaded first; it never
// overrides variables already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("SCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.max_attempts", 2)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.max_body_bytes", 2<<20)
	v.SetDefault("scrape.engines", []string{"local"})
	v.SetDefault("scrape.exclude_paths", []string{})
	v.SetDefault("extract.max_subpages", 2)
	v.SetDefault("batch.delay_secs", 3)
	v.SetDefault("batch.limit", 0)
	v.SetDefault("output.xlsx", "net_zero_companies_enhanced.xlsx")
	v.SetDefault("output.json", "net_zero_companies_enhanced.json")
	v.SetDefault("store.driver", "none")
	v.SetDefault("store.database_url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional unless a path was given)
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

// Validate checks the settings a command depends on. mode is the command
// name ("run", "batch", "serve", "runs"); every problem found is reported.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Fetch.TimeoutSecs <= 0 {
		problems = append(problems, "fetch.timeout_secs must be > 0")
	}
	if c.Fetch.MaxAttempts < 1 {
		problems = append(problems, "fetch.max_attempts must be >= 1")
	}
	if c.Extract.MaxSubpages < 0 {
		problems = append(problems, "extract.max_subpages must be >= 0")
	}

	switch strings.ToLower(c.Store.Driver) {
	case "", "none":
		if mode == "runs" {
			problems = append(problems, "store.driver is required to list runs")
		}
	case "sqlite", "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	default:
		problems = append(problems, "store.driver must be none, sqlite or postgres")
	}

	switch mode {
	case "batch":
		if c.Batch.DelaySecs < 0 {
			problems = append(problems, "batch.delay_secs must be >= 0")
		}
		if c.Batch.Limit < 0 {
			problems = append(problems, "batch.limit must be >= 0")
		}
		if c.Output.XLSX == "" && c.Output.JSON == "" {
			problems = append(problems, "output.xlsx or output.json is required")
		}
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
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
