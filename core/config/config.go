// Package config loads the endpoints and timings of the relay client from an
// optional file and HOTLINE_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/koscakluka/hotline-core/core/channel"
	"github.com/spf13/viper"
)

const EnvPrefix = "HOTLINE"

const (
	DefaultAPIBaseURL       = "http://localhost:8000/api/v1/call"
	DefaultWebsocketBaseURL = "ws://localhost:8000/api/v1/call/ws"
	DefaultDialSettleDelay  = 500 * time.Millisecond
	DefaultRequestTimeout   = 10 * time.Second
)

type Config struct {
	APIBaseURL       string        `mapstructure:"api_base_url"`
	WebsocketBaseURL string        `mapstructure:"websocket_base_url"`
	DialSettleDelay  time.Duration `mapstructure:"dial_settle_delay"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`

	ReconnectEnabled     bool          `mapstructure:"reconnect_enabled"`
	ReconnectMaxAttempts int           `mapstructure:"reconnect_max_attempts"`
	ReconnectBackoff     time.Duration `mapstructure:"reconnect_backoff"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		APIBaseURL:           DefaultAPIBaseURL,
		WebsocketBaseURL:     DefaultWebsocketBaseURL,
		DialSettleDelay:      DefaultDialSettleDelay,
		RequestTimeout:       DefaultRequestTimeout,
		ReconnectMaxAttempts: 3,
		ReconnectBackoff:     time.Second,
	}
}

// Load reads the configuration. path may be empty, in which case only the
// environment and defaults apply. Environment variables win over the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("api_base_url", cfg.APIBaseURL)
	v.SetDefault("websocket_base_url", cfg.WebsocketBaseURL)
	v.SetDefault("dial_settle_delay", cfg.DialSettleDelay)
	v.SetDefault("request_timeout", cfg.RequestTimeout)
	v.SetDefault("reconnect_enabled", cfg.ReconnectEnabled)
	v.SetDefault("reconnect_max_attempts", cfg.ReconnectMaxAttempts)
	v.SetDefault("reconnect_backoff", cfg.ReconnectBackoff)
}

func (c Config) Validate() error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api_base_url is required"))
	}
	if c.WebsocketBaseURL == "" {
		errs = append(errs, errors.New("websocket_base_url is required"))
	}
	if c.DialSettleDelay < 0 {
		errs = append(errs, errors.New("dial_settle_delay must not be negative"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, errors.New("request_timeout must not be negative"))
	}
	if c.ReconnectMaxAttempts < 0 {
		errs = append(errs, errors.New("reconnect_max_attempts must not be negative"))
	}
	if c.ReconnectBackoff < 0 {
		errs = append(errs, errors.New("reconnect_backoff must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ReconnectPolicy returns the channel reconnection settings.
func (c Config) ReconnectPolicy() channel.ReconnectPolicy {
	return channel.ReconnectPolicy{
		Enabled:     c.ReconnectEnabled,
		MaxAttempts: c.ReconnectMaxAttempts,
		Backoff:     c.ReconnectBackoff,
	}
}
