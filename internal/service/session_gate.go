package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/models"
)

type sessionGate struct {
	serverAdapter adapter.ServerAdapter
	logger        *logger.Logger

	// mu is held across notifications: a new status becomes visible to
	// readers only after every subscriber has reacted to it.
	mu     sync.RWMutex
	status models.SessionStatus

	listeners listeners[models.SessionStatus]
}

// NewSessionGate returns a gate in the unknown state.
func NewSessionGate(serverAdapter adapter.ServerAdapter, log *logger.Logger) SessionGate {
	return &sessionGate{
		serverAdapter: serverAdapter,
		logger:        log.Component("session"),
		status:        models.SessionUnknown,
	}
}

func (g *sessionGate) Probe(ctx context.Context) models.SessionStatus {
	status := models.SessionUnauthenticated

	resp, err := g.serverAdapter.AuthStatus(ctx)
	switch {
	case err != nil:
		g.logger.Error().Err(err).Msg("session probe failed, treating session as unauthenticated")
	case resp.Authenticated:
		status = models.SessionAuthenticated
	}

	g.set(status)
	return status
}

func (g *sessionGate) MarkAuthenticated() {
	g.set(models.SessionAuthenticated)
}

func (g *sessionGate) MarkUnauthenticated() {
	g.set(models.SessionUnauthenticated)
}

func (g *sessionGate) Status() models.SessionStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

func (g *sessionGate) Subscribe(fn func(models.SessionStatus)) {
	g.listeners.add(fn)
}

func (g *sessionGate) Login(ctx context.Context, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	if err := g.serverAdapter.Login(ctx, password); err != nil {
		if adapter.IsUnauthorized(err) {
			return ErrWrongPassword
		}
		g.logger.Error().Err(err).Msg("login failed")
		return fmt.Errorf("login: %w", err)
	}

	g.MarkAuthenticated()
	return nil
}

func (g *sessionGate) Logout(ctx context.Context) error {
	if err := g.serverAdapter.Logout(ctx); err != nil {
		g.logger.Warn().Err(err).Msg("logout request failed, ending session locally")
	}

	g.MarkUnauthenticated()
	return nil
}

func (g *sessionGate) set(status models.SessionStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()

	prev := g.status
	if prev == status {
		return
	}
	g.status = status

	g.logger.Info().
		Str("from", prev.String()).
		Str("to", status.String()).
		Msg("session status changed")

	g.listeners.notify(status)
}
