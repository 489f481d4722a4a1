// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to the
// account-manager backend.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from HTTP. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty. Authentication is an ambient
// session cookie kept in the client's cookie jar; the adapter never handles a
// token itself.
//
// Non-2xx answers are mapped to the sentinel errors in errors.go so callers
// can use [errors.Is] (e.g. [ErrUnauthorized] for 401). A 2xx answer whose
// envelope lacks "success": true yields [ErrUnsuccessful].
package adapter

import (
	"context"

	"github.com/MKhiriev/account-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the account-manager backend.
type ServerAdapter interface {
	// AuthStatus queries GET /api/auth/status and returns the decoded
	// answer. Any transport error, non-2xx status or missing "success"
	// yields an error.
	AuthStatus(ctx context.Context) (models.AuthStatusResponse, error)

	// Login posts the operator password to POST /api/auth/login. On success
	// the session cookie is stored in the client's jar. A wrong password
	// surfaces as [ErrUnauthorized].
	Login(ctx context.Context, password string) error

	// Logout posts to POST /api/auth/logout.
	Logout(ctx context.Context) error

	// ListAccounts fetches the full collection from GET /api/accounts, in
	// server order.
	ListAccounts(ctx context.Context) ([]models.Account, error)

	// CreateAccount posts draft to POST /api/accounts.
	CreateAccount(ctx context.Context, draft models.AccountDraft) error

	// DeleteAccount sends DELETE /api/accounts/{id}.
	DeleteAccount(ctx context.Context, id models.AccountID) error

	// SyncAccounts triggers the backend bulk sync via POST
	// /api/accounts/sync. The call returns once the backend acknowledged the
	// job, not when the job finished.
	SyncAccounts(ctx context.Context) error

	// SyncAccount triggers the sync of a single account via POST
	// /api/accounts/{id}/sync. Same acknowledgement semantics as
	// SyncAccounts.
	SyncAccount(ctx context.Context, id models.AccountID) error
}
