package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/millio-space/guardops/config"
	"github.com/millio-space/guardops/internal/credential"
	"github.com/millio-space/guardops/internal/gateway"
	"github.com/millio-space/guardops/internal/geo"
	"github.com/millio-space/guardops/internal/notify"
	"github.com/millio-space/guardops/internal/session"
)

// App bundles the wired core components consumed by the console.
type App struct {
	Config   config.AppConfig
	Logger   *slog.Logger
	Sessions *session.Store
	Gateway  *gateway.Client
	Geo      geo.Provider
	Notifier notify.Sink
}

// NewApp wires credential storage, gateway and session store together.
// The session store is the gateway's token source, and the gateway's
// 401 handler is the store's invalidation: credential rejection anywhere
// forces a logout.
func NewApp(cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	creds, err := credential.NewFileStore(cfg.Credential.Path)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}

	// Wired in two steps: the gateway needs the store's tokens and the
	// store needs the gateway's exchanges.
	var sessions *session.Store
	client, err := gateway.NewClient(gateway.Config{
		BaseURL:       cfg.Gateway.BaseURL,
		LoginEncoding: cfg.Gateway.LoginEncoding,
		Timeout:       cfg.Gateway.Timeout,
		Logger:        logger,
	}, tokenSourceFunc(func() (string, bool) {
		if sessions == nil {
			return "", false
		}
		return sessions.Token()
	}))
	if err != nil {
		return nil, fmt.Errorf("gateway client: %w", err)
	}

	sessions = session.NewStore(client, creds, logger)
	client.OnUnauthorized(sessions.Invalidate)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		Gateway:  client,
		Geo:      geo.NewStaticProvider(cfg.Geo.Latitude, cfg.Geo.Longitude, cfg.Geo.Accuracy),
		Notifier: notify.NewSlogSink(logger),
	}, nil
}

// tokenSourceFunc adapts a closure to the gateway token source.
type tokenSourceFunc func() (string, bool)

func (f tokenSourceFunc) Token() (string, bool) { return f() }
