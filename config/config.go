package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	envConfigPath = "WEBHOOK_PROXY_CONFIG"
	envWebhookURL = "N8N_WEBHOOK_URL"
	envTimeout    = "WEBHOOK_PROXY_TIMEOUT"
	envPort       = "PORT"
	envAddr       = "WEBHOOK_PROXY_ADDR"
	envBasePath   = "WEBHOOK_PROXY_BASE_PATH"
	envAWSRegion  = "AWS_REGION"

	defaultFileName = "webhook-proxy.yaml"
)

// Config is the root runtime configuration.
type Config struct {
	Webhook WebhookConfig `yaml:"webhook"`
	Server  ServerConfig  `yaml:"server"`
	Lambda  LambdaConfig  `yaml:"lambda"`
	AWS     AWSConfig     `yaml:"aws"`
	Logging LoggingConfig `yaml:"logging"`
}

// WebhookConfig describes the remote webhook every request is forwarded to.
type WebhookConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout" default:"30s"`
}

// ServerConfig configures the long-running HTTP host.
type ServerConfig struct {
	Addr string `yaml:"addr" default:":8000"`
}

// LambdaConfig configures the API Gateway host. BasePath is prepended to every
// route except the preflight catch-all, e.g. "/api" serves "/api/webhook".
type LambdaConfig struct {
	BasePath string `yaml:"base_path"`
}

// AWSConfig holds the settings used when resolving ssm:// references.
type AWSConfig struct {
	Region string `yaml:"region" default:"us-east-1"`
}

// LoggingConfig controls log output format and verbosity.
type LoggingConfig struct {
	Format    string `yaml:"format" default:"text"`
	Level     string `yaml:"level" default:"info"`
	AddSource bool   `yaml:"add_source"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, then resolves ssm:// references and validates the result.
//
// path may be empty, in which case WEBHOOK_PROXY_CONFIG and then
// ./webhook-proxy.yaml are tried. A missing default file is not an error.
func Load(path string) (*Config, error) {
	return load(path, func(region string) ParameterResolver {
		return NewSSMResolver(region)
	})
}

func load(path string, resolverFunc func(region string) ParameterResolver) (*Config, error) {
	cfg := new(Config)
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed applying config defaults")
	}

	file, err := findConfigPath(path)
	if err != nil {
		return nil, err
	}

	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed reading config file %s", file)
		}

		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed parsing config file %s", file)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if name, ok := ParameterName(cfg.Webhook.URL); ok {
		value, err := resolverFunc(cfg.AWS.Region).Resolve(name)
		if err != nil {
			return nil, errors.Wrap(err, "failed resolving webhook url")
		}
		cfg.Webhook.URL = strings.TrimSpace(value)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first setting that would prevent the proxy from
// starting.
func (cfg *Config) Validate() error {
	raw := strings.TrimSpace(cfg.Webhook.URL)
	if raw == "" {
		return errors.Errorf("webhook url is required (set %s)", envWebhookURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid webhook url %q", raw)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("webhook url %q must use http or https", raw)
	}

	if u.Host == "" {
		return errors.Errorf("webhook url %q has no host", raw)
	}

	if cfg.Webhook.Timeout <= 0 {
		return errors.Errorf("webhook timeout must be positive, got %s", cfg.Webhook.Timeout)
	}

	return nil
}

// applyEnvOverrides layers environment settings on top of file config.
func applyEnvOverrides(cfg *Config) error {
	if value := strings.TrimSpace(os.Getenv(envWebhookURL)); value != "" {
		cfg.Webhook.URL = value
	}

	if value := strings.TrimSpace(os.Getenv(envTimeout)); value != "" {
		timeout, err := parseTimeout(value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", envTimeout)
		}
		cfg.Webhook.Timeout = timeout
	}

	if value := strings.TrimSpace(os.Getenv(envPort)); value != "" {
		cfg.Server.Addr = ":" + value
	}

	if value := strings.TrimSpace(os.Getenv(envAddr)); value != "" {
		cfg.Server.Addr = value
	}

	if value := strings.TrimSpace(os.Getenv(envBasePath)); value != "" {
		cfg.Lambda.BasePath = value
	}

	if value := strings.TrimSpace(os.Getenv(envAWSRegion)); value != "" {
		cfg.AWS.Region = value
	}

	return nil
}

// parseTimeout accepts a Go duration ("45s") or a bare number of seconds.
func parseTimeout(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	return time.ParseDuration(value)
}

// findConfigPath resolves the config file location. Precedence is the explicit
// path, then WEBHOOK_PROXY_CONFIG, then ./webhook-proxy.yaml if it exists.
func findConfigPath(path string) (string, error) {
	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(envConfigPath))
	}

	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil || info.IsDir() {
			return "", errors.Errorf("config path does not point to a file: %s", explicit)
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed getting working directory")
	}

	candidate := filepath.Join(cwd, defaultFileName)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, nil
	}

	return "", nil
}
