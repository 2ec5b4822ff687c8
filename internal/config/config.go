package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingHost  = errors.New("client host is not specified")
	ErrInvalidPort  = errors.New("client port is out of range")
	ErrInvalidValue = errors.New("invalid config value")
)

const (
	defaultHost             = "127.0.0.1"
	defaultUsername         = "riot"
	defaultRequestTimeout   = 5 * time.Second
	defaultReconnectBackoff = time.Second
	defaultTick             = 100 * time.Millisecond
	defaultNotificationTTL  = 5 * time.Second
	defaultSettingsPath     = "./settings.yml"

	passwordEnv = "LCU_PASSWORD"
	portEnv     = "LCU_PORT"
)

type ClientConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	Username           string        `yaml:"username"`
	Password           string        `yaml:"password"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
}

type StreamConfig struct {
	ConnectionID      int           `yaml:"connection_id"`
	ReconnectAttempts int           `yaml:"reconnect_attempts"`
	ReconnectBackoff  time.Duration `yaml:"reconnect_backoff"`
}

type UIConfig struct {
	Tick            time.Duration `yaml:"tick"`
	NotificationTTL time.Duration `yaml:"notification_ttl"`
}

type Config struct {
	Client       ClientConfig `yaml:"client"`
	Stream       StreamConfig `yaml:"stream"`
	UI           UIConfig     `yaml:"ui"`
	SettingsPath string       `yaml:"settings_path"`
}

func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := defaults()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "decode yaml config")
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Client: ClientConfig{
			Host:           defaultHost,
			Username:       defaultUsername,
			RequestTimeout: defaultRequestTimeout,
		},
		Stream: StreamConfig{
			ReconnectBackoff: defaultReconnectBackoff,
		},
		UI: UIConfig{
			Tick:            defaultTick,
			NotificationTTL: defaultNotificationTTL,
		},
		SettingsPath: defaultSettingsPath,
	}
}

func (c *Config) applyEnv() error {
	if password := os.Getenv(passwordEnv); password != "" {
		c.Client.Password = password
	}
	if port := os.Getenv(portEnv); port != "" {
		v, err := strconv.Atoi(port)
		if err != nil {
			return errors.WithMessagef(ErrInvalidValue, "%s=%q", portEnv, port)
		}
		c.Client.Port = v
	}
	return nil
}

func (c Config) validate() error {
	if c.Client.Host == "" {
		return ErrMissingHost
	}
	if c.Client.Port <= 0 || c.Client.Port > 65535 {
		return ErrInvalidPort
	}
	if c.Stream.ReconnectAttempts < 0 {
		return errors.WithMessage(ErrInvalidValue, "reconnect_attempts must not be negative")
	}
	if c.Stream.ReconnectAttempts > 0 && c.Stream.ReconnectBackoff <= 0 {
		return errors.WithMessage(ErrInvalidValue, "reconnect_backoff must be positive when reconnecting")
	}
	if c.UI.Tick <= 0 {
		return errors.WithMessage(ErrInvalidValue, "ui tick must be positive")
	}
	return nil
}
