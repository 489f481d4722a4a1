// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/config"
	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/models"
	"k8s.io/utils/clock"
)

// ClientServices bundles the controller components wired to one backend.
type ClientServices struct {
	Session  SessionGate
	Accounts AccountStore
	Sync     SyncOrchestrator
	Poller   PollingScheduler

	cancel context.CancelFunc
}

// NewClientServices builds the controller. The poller is subscribed to the
// session gate first, so it is already disarmed when later subscribers learn
// that the session ended. clk may be nil, in which case the wall clock is
// used.
func NewClientServices(serverAdapter adapter.ServerAdapter, workersCfg config.ClientWorkers, clk clock.WithTicker, log *logger.Logger) *ClientServices {
	if clk == nil {
		clk = clock.RealClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	session := NewSessionGate(serverAdapter, log)
	accounts := NewAccountStore(serverAdapter, session, log)
	syncer := NewSyncOrchestrator(ctx, serverAdapter, accounts, session, clk, workersCfg.SyncRefreshDelay, log)
	poller := NewPollingScheduler(ctx, accounts, clk, workersCfg.PollInterval, log)

	session.Subscribe(poller.OnSessionChange)

	return &ClientServices{
		Session:  session,
		Accounts: accounts,
		Sync:     syncer,
		Poller:   poller,
		cancel:   cancel,
	}
}

// Logout ends the session and clears the cached collection.
func (s *ClientServices) Logout(ctx context.Context) error {
	err := s.Session.Logout(ctx)
	s.Accounts.Reset()
	return err
}

// Authenticated reports whether the session is currently authenticated.
func (s *ClientServices) Authenticated() bool {
	return s.Session.Status() == models.SessionAuthenticated
}

// Close stops polling, cancels pending refreshes and in-flight background
// fetches, and waits for the background goroutines to exit.
func (s *ClientServices) Close() {
	s.Poller.Stop()
	s.cancel()
	s.Sync.Wait()
	s.Poller.Wait()
}
