package tui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-sync/internal/identity"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/service"
	"github.com/MKhiriev/go-blog-sync/models"
)

type TUI struct {
	services  *service.ClientServices
	caps      identity.Capabilities
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, caps identity.Capabilities, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		caps:      caps,
		buildInfo: buildInfo,
		logger:    log.Component("tui"),
	}
}

// Run shows the blog until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services.Posts, t.services.Comments, t.caps, t.buildInfo, clipboard.WriteAll)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if result, ok := finalModel.(appModel); ok {
		result.stop()
	} else {
		model.stop()
	}
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		t.logger.Debug().Msg("tui stopped on shutdown")
		return nil
	}
	if err != nil {
		t.logger.Error().Err(err).Msg("tui stopped with error")
		return err
	}

	t.logger.Debug().Msg("tui closed by user")
	return nil
}
