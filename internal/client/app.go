package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/account-keeper/internal/logger"
	"golang.org/x/sync/errgroup"
)

// UI is the interactive front end driven by App.
type UI interface {
	Run(ctx context.Context) error
}

// Services is the part of the service layer App owns the lifecycle of.
type Services interface {
	Close()
}

type App struct {
	services Services
	ui       UI
	logger   *logger.Logger
}

func NewApp(services Services, ui UI, log *logger.Logger) *App {
	return &App{
		services: services,
		ui:       ui,
		logger:   log.Component("client"),
	}
}

// Run shows the UI until the user quits or the process receives a stop
// signal. Background polling and pending refreshes are stopped before Run
// returns.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := a.ui.Run(gctx); err != nil {
			return fmt.Errorf("ui: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutting down client services")
		a.services.Close()
		return nil
	})

	err := g.Wait()
	cancel()
	if err != nil {
		return err
	}
	a.logger.Info().Msg("client stopped")
	return nil
}
