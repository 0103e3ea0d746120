package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config files
// for the available variables:
//   - gateway.go: backend gateway configuration
//   - credential.go: credential storage configuration
//   - geo.go: geolocation fallback configuration
type AppConfig struct {
	// IsDev enables development behavior (verbose logging).
	IsDev bool `env:"DEV" envDefault:"false"`

	// Gateway configuration for the backend REST surface.
	Gateway GatewayConfig `envPrefix:"API_"`

	// Credential storage configuration.
	Credential CredentialConfig `envPrefix:"CREDENTIAL_"`

	// Geolocation fallback configuration.
	Geo GeoConfig `envPrefix:"GEO_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// Call after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Gateway.Sanitize()
	c.Credential.Sanitize()
}
