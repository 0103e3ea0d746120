package config

import (
	"os"
	"path/filepath"
	"strings"
)

// CredentialConfig configures where the bearer credential is persisted
// between runs.
type CredentialConfig struct {
	// Path is the credential file location. Relative paths resolve
	// against the user's home directory.
	Path string `env:"PATH" envDefault:".guardops/credential"`
}

// Sanitize resolves the credential path against the home directory.
func (c *CredentialConfig) Sanitize() {
	c.Path = strings.TrimSpace(c.Path)
	if c.Path == "" {
		c.Path = ".guardops/credential"
	}
	if !filepath.IsAbs(c.Path) {
		if home, err := os.UserHomeDir(); err == nil {
			c.Path = filepath.Join(home, c.Path)
		}
	}
}
