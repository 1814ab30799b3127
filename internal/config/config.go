// Package config loads application configuration and wires the global
// logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Quota   QuotaConfig   `yaml:"quota" mapstructure:"quota"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Lists   ListsConfig   `yaml:"lists" mapstructure:"lists"`
	RunLog  RunLogConfig  `yaml:"runlog" mapstructure:"runlog"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourcesConfig holds the upstream URLs.
type SourcesConfig struct {
	MarketCapURLs []string `yaml:"marketcap_urls" mapstructure:"marketcap_urls"`
	SP500URL      string   `yaml:"sp500_url" mapstructure:"sp500_url"`
	JapanDevURL   string   `yaml:"japandev_url" mapstructure:"japandev_url"`
}

// FetchConfig configures outbound HTTP behavior.
type FetchConfig struct {
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	DebugDir          string  `yaml:"debug_dir" mapstructure:"debug_dir"`
}

// Timeout returns the per-request timeout.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// QuotaConfig holds the target sizes of the two output lists.
type QuotaConfig struct {
	JapanTop      int `yaml:"japan_top" mapstructure:"japan_top"`
	ForeignTarget int `yaml:"foreign_target" mapstructure:"foreign_target"`
}

// OutputConfig holds the output file locations.
type OutputConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	JapanFile   string `yaml:"japan_file" mapstructure:"japan_file"`
	ForeignFile string `yaml:"foreign_file" mapstructure:"foreign_file"`
}

// ListsConfig points at an optional external curated-lists file.
type ListsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RunLogConfig configures the local run-log database.
type RunLogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPANYMAPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources.marketcap_urls", []string{
		"https://companiesmarketcap.com/japan/largest-companies-in-japan-by-market-cap/?download=csv",
	})
	v.SetDefault("sources.sp500_url", "https://www.slickcharts.com/sp500")
	v.SetDefault("sources.japandev_url", "https://japan-dev.com/companies/tags/global-offices")
	v.SetDefault("fetch.user_agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.requests_per_second", 2.0)
	v.SetDefault("quota.japan_top", 200)
	v.SetDefault("quota.foreign_target", 50)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.japan_file", "japan_top200_mymaps.csv")
	v.SetDefault("output.foreign_file", "foreign_tokyo50_mymaps.csv")
	v.SetDefault("runlog.path", "companymaps.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
