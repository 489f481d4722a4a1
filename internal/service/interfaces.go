// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the client-side session and data
// synchronization controller.
//
// Four components cooperate:
//   - [SessionGate] owns the tri-state session status and notifies
//     subscribers on every real transition;
//   - [AccountStore] caches the last fetched account collection;
//   - [SyncOrchestrator] triggers the backend bulk sync and schedules one
//     deferred refresh of the store;
//   - [PollingScheduler] refreshes the store on a fixed interval while the
//     session is authenticated.
//
// Any authorization failure seen by a component is routed to
// [SessionGate.MarkUnauthenticated] and is not returned to the caller.
package service

import (
	"context"

	"github.com/MKhiriev/account-keeper/models"
)

// SessionGate holds the client's belief about whether it may call protected
// endpoints. The status starts as [models.SessionUnknown] and never returns
// to it.
type SessionGate interface {
	// Probe asks the backend whether the ambient session is valid and stores
	// the answer. Any failure resolves to unauthenticated; the error is
	// logged and never returned.
	Probe(ctx context.Context) models.SessionStatus

	// MarkAuthenticated moves the gate to authenticated.
	MarkAuthenticated()

	// MarkUnauthenticated moves the gate to unauthenticated. Calling it when
	// the gate is already unauthenticated does nothing.
	MarkUnauthenticated()

	// Status returns the current status.
	Status() models.SessionStatus

	// Subscribe registers fn to be called with the new status after every
	// transition. fn runs synchronously on the goroutine that caused the
	// transition, in subscription order, and must not call back into the
	// gate.
	Subscribe(fn func(models.SessionStatus))

	// Login posts the operator password and marks the gate authenticated on
	// success. A rejected password yields ErrWrongPassword.
	Login(ctx context.Context, password string) error

	// Logout ends the session on the backend and always marks the gate
	// unauthenticated, whatever the backend answered.
	Logout(ctx context.Context) error
}

// AccountStore caches the account collection owned by the backend.
type AccountStore interface {
	// Fetch replaces the cache with the backend's current collection.
	Fetch(ctx context.Context) error

	// Add creates an account and re-fetches the collection. Empty e-mail or
	// password is rejected before any network call.
	Add(ctx context.Context, draft models.AccountDraft) error

	// Remove deletes the account with the given id and re-fetches the
	// collection. Confirmation is the caller's concern.
	Remove(ctx context.Context, id models.AccountID) error

	// Accounts returns a copy of the cached collection in server order.
	Accounts() []models.Account

	// Busy reports whether a list operation is in flight.
	Busy() bool

	// Reset drops the cached collection and discards the results of fetches
	// that are still in flight.
	Reset()

	// Subscribe registers fn to be called whenever the collection or the busy
	// flag changes.
	Subscribe(fn func())
}

// SyncOrchestrator triggers the backend bulk sync.
type SyncOrchestrator interface {
	// SyncAll asks the backend to sync every account. On acknowledgement one
	// deferred store refresh is scheduled.
	SyncAll(ctx context.Context) error

	// SyncOne asks the backend to sync a single account, with the same
	// deferred refresh as SyncAll.
	SyncOne(ctx context.Context, id models.AccountID) error

	// Busy reports whether a sync request round trip is in flight. It does
	// not cover the backend work or the deferred refresh.
	Busy() bool

	// Wait blocks until every scheduled refresh has run or been cancelled.
	Wait()

	// Subscribe registers fn to be called whenever the busy flag changes.
	Subscribe(fn func())
}

// PollingScheduler refreshes the store periodically while the session is
// authenticated.
type PollingScheduler interface {
	// Start fetches once immediately and arms the poll ticker. It does
	// nothing when the scheduler is already running.
	Start()

	// Stop disarms the ticker before returning. In-flight fetches are not
	// aborted.
	Stop()

	// OnSessionChange starts the scheduler on authenticated and stops it on
	// any other status. It is meant to be passed to SessionGate.Subscribe.
	OnSessionChange(status models.SessionStatus)

	// Running reports whether the ticker is armed.
	Running() bool

	// Wait blocks until the polling goroutine of the last run has exited.
	Wait()
}
