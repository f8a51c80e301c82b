package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "UTOOLS"

// probeBudget is the server-side ping timeout; writes must outlast it.
const probeBudget = 5 * time.Second

type Config struct {
	Addr           string        `mapstructure:"addr"`
	LogLevel       string        `mapstructure:"log_level"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	ICMPPrivileged bool          `mapstructure:"icmp_privileged"`
	OTLPEndpoint   string        `mapstructure:"otlp_endpoint"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
}

// SetDefaults registers every key so environment overrides are picked up by
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("max_body_bytes", 1<<20)
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 15*time.Second)
	v.SetDefault("icmp_privileged", false)
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("api_base_url", "http://localhost:8080")
}

// Load reads defaults, the optional config file at path and UTOOLS_*
// environment variables, in increasing order of precedence. Values already
// bound on v (cobra flags) win over all of them.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// New loads the server configuration. UTOOLS_CONFIG names an optional file.
func New() (*Config, error) {
	return Load(viper.New(), os.Getenv(EnvPrefix+"_CONFIG"))
}

func (c *Config) Validate() error {
	var problems []error
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, errors.New("addr must not be empty"))
	}
	if c.MaxBodyBytes <= 0 {
		problems = append(problems, errors.New("max_body_bytes must be positive"))
	}
	if c.ReadTimeout <= 0 {
		problems = append(problems, errors.New("read_timeout must be positive"))
	}
	if c.WriteTimeout <= probeBudget {
		problems = append(problems, fmt.Errorf("write_timeout must exceed %s", probeBudget))
	}
	return errors.Join(problems...)
}
