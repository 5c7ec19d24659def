package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-sync/internal/logger"
)

type App struct {
	engines Engines
	ui      UI
	workers Worker
	logger  *logger.Logger
}

func NewApp(engines Engines, ui UI, workers Worker, logger *logger.Logger) *App {
	return &App{
		engines: engines,
		ui:      ui,
		workers: workers,
		logger:  logger.Component("app"),
	}
}

// Run starts the engines and the workers, blocks in the UI and tears
// everything down in reverse order. Workers stop before the engines close
// so that no resync races the teardown.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.engines.Start(ctx)
	a.workers.Start(ctx)
	a.logger.Info().Msg("client started")

	err := a.ui.Run(ctx)

	a.workers.Stop()
	a.engines.Close()
	a.logger.Info().Msg("client stopped")

	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
