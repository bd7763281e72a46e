// Package config loads process configuration from the environment, after
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/lzjever/open189/pkg/open189"
)

// Client configures an open.189.cn API client.
type Client struct {
	AppID       string        `envconfig:"OPEN189_APP_ID" required:"true"`
	AppSecret   string        `envconfig:"OPEN189_APP_SECRET" required:"true"`
	AccessToken string        `envconfig:"OPEN189_ACCESS_TOKEN"`
	OAuthURL    string        `envconfig:"OPEN189_OAUTH_URL" default:"https://oauth.api.189.cn/emp/oauth2/v3/access_token"`
	APIBaseURL  string        `envconfig:"OPEN189_API_BASE_URL" default:"http://api.189.cn"`
	HTTPTimeout time.Duration `envconfig:"OPEN189_HTTP_TIMEOUT" default:"30s"`
	LogLevel    string        `envconfig:"OPEN189_LOG_LEVEL" default:"info"`
}

// Endpoints returns the platform URLs selected by c.
func (c Client) Endpoints() open189.Endpoints {
	return open189.EndpointsFor(c.OAuthURL, c.APIBaseURL)
}

// Callback configures the verification-code callback receiver.
type Callback struct {
	HTTPAddr        string        `envconfig:"OPEN189_CALLBACK_ADDR" default:"0.0.0.0:8080"`
	MetricsAddr     string        `envconfig:"OPEN189_METRICS_ADDR" default:"0.0.0.0:9090"`
	DBDSN           string        `envconfig:"OPEN189_DB_DSN"`
	LogLevel        string        `envconfig:"OPEN189_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"OPEN189_SHUTDOWN_TIMEOUT" default:"30s"`
	CodeTTL         time.Duration `envconfig:"OPEN189_CODE_TTL" default:"10m"`
}

// LoadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadClient reads the client configuration.
func LoadClient(envFile string) (Client, error) {
	var cfg Client
	if err := LoadEnvFile(envFile); err != nil {
		return cfg, err
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadCallback reads the callback receiver configuration.
func LoadCallback(envFile string) (Callback, error) {
	var cfg Callback
	if err := LoadEnvFile(envFile); err != nil {
		return cfg, err
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
