// Package bootstrap wires configuration into a ready auth.Service.
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/devlink/desktop/core"
	"github.com/devlink/desktop/internal/auth"
	"github.com/devlink/desktop/internal/config"
	"github.com/devlink/desktop/services"
)

// Runtime holds what the GUI and CLI need. Close releases the journal, if open.
type Runtime struct {
	Config  *config.Config
	Logger  *zap.Logger
	Service auth.Service
	Journal *core.Journal
}

// New builds the auth service for cfg. When the journal is enabled the
// service is wrapped so that every attempt is recorded.
func New(cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rt := &Runtime{
		Config:  cfg,
		Logger:  logger,
		Service: services.NewAuthService(services.NewApiClient(cfg.APIURL, cfg.Timeout)),
	}

	if cfg.Journal.Enabled {
		journal, err := OpenJournal(cfg)
		if err != nil {
			return nil, err
		}
		rt.Journal = journal
		rt.Service = core.NewAuthTracker(rt.Service, journal, logger)
	}

	logger.Debug("runtime ready",
		zap.String("api_url", cfg.APIURL),
		zap.Duration("timeout", cfg.Timeout),
		zap.Bool("journal", cfg.Journal.Enabled),
	)

	return rt, nil
}

// OpenJournal connects to the journal database named in cfg.
func OpenJournal(cfg *config.Config) (*core.Journal, error) {
	journal := core.NewJournal(cfg.Journal.Path)
	if err := journal.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", cfg.Journal.Path, err)
	}
	return journal, nil
}

func (rt *Runtime) Close() error {
	if rt.Journal == nil {
		return nil
	}
	return rt.Journal.Close()
}
