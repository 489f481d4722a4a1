// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the client. It renders the
// session and the account collection held by the service layer and turns
// key presses into service calls. It keeps no state of its own beyond the
// input being typed.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/internal/service"
	"github.com/MKhiriev/account-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.BuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.BuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		buildInfo: buildInfo,
		logger:    log.Component("tui"),
	}
}

// Run shows the UI until the user quits or ctx is cancelled. Service
// notifications are forwarded to the program as refresh messages.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services, t.buildInfo)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the event loop takes the message, and the services
	// notify while holding their locks.
	notify := func(msg tea.Msg) { go p.Send(msg) }
	t.services.Session.Subscribe(func(models.SessionStatus) { notify(sessionChangedMsg{}) })
	t.services.Accounts.Subscribe(func() { notify(stateChangedMsg{}) })
	t.services.Sync.Subscribe(func() { notify(stateChangedMsg{}) })

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		t.logger.Info().Msg("ui stopped by shutdown")
		return nil
	}
	return err
}
