package config

import (
	"fmt"
	"strings"
	"time"
)

// LoginEncoding declares the request encoding the deployment's login
// endpoint accepts. The backend historically changed its accepted
// encoding between deployments, so this is a per-deployment declared
// property, configured once and never probed at runtime.
type LoginEncoding string

const (
	// LoginEncodingForm posts credentials as application/x-www-form-urlencoded.
	LoginEncodingForm LoginEncoding = "form"
	// LoginEncodingJSON posts credentials as application/json.
	LoginEncodingJSON LoginEncoding = "json"
)

// UnmarshalText implements encoding.TextUnmarshaler for LoginEncoding.
func (e *LoginEncoding) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "form", "json":
		*e = LoginEncoding(v)
		return nil
	default:
		return fmt.Errorf("invalid LoginEncoding: %q (valid options: form, json)", v)
	}
}

// GatewayConfig configures the backend gateway client.
type GatewayConfig struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout bounds every exchange, including body read.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// LoginEncoding is the declared login request encoding for this
	// deployment target.
	LoginEncoding LoginEncoding `env:"LOGIN_ENCODING" envDefault:"form"`
}

// Sanitize applies guardrails to gateway configuration values.
func (c *GatewayConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.LoginEncoding == "" {
		c.LoginEncoding = LoginEncodingForm
	}
}
