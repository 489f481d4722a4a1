// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/apitest"
	"github.com/MKhiriev/account-keeper/internal/config"
	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

const (
	testPassword = "secret"
	eventually   = 2 * time.Second
	tick         = 5 * time.Millisecond
)

type e2e struct {
	srv      *apitest.Server
	adapter  adapter.ServerAdapter
	clock    *testingclock.FakeClock
	services *ClientServices
}

// newE2E wires the real controller to the in-process backend on a fake
// clock. The adapter is already logged in, so the first probe succeeds.
func newE2E(t *testing.T, accounts ...models.Account) *e2e {
	t.Helper()
	srv := apitest.New(t, testPassword)
	srv.SetAccounts(accounts...)

	serverAdapter, err := adapter.NewHTTPServerAdapter(
		config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: time.Second},
		logger.Nop(),
	)
	require.NoError(t, err)
	require.NoError(t, serverAdapter.Login(context.Background(), testPassword))

	fc := testingclock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	services := NewClientServices(serverAdapter, config.ClientWorkers{
		PollInterval:     30 * time.Second,
		SyncRefreshDelay: 2 * time.Second,
	}, fc, logger.Nop())
	t.Cleanup(services.Close)

	return &e2e{srv: srv, adapter: serverAdapter, clock: fc, services: services}
}

// authenticate probes and waits for the poller's immediate fetch to land.
func (e *e2e) authenticate(t *testing.T) {
	t.Helper()
	require.Equal(t, models.SessionAuthenticated, e.services.Session.Probe(context.Background()))
	require.True(t, e.services.Poller.Running())
	require.Eventually(t, func() bool {
		return e.srv.Calls(apitest.RouteList) == 1 && !e.services.Accounts.Busy()
	}, eventually, tick)
}

func TestClientServices_ProbeStartsPolling(t *testing.T) {
	e := newE2E(t, models.Account{ID: "1", Email: "a@b.com", Status: models.AccountActive})

	assert.Equal(t, models.SessionUnknown, e.services.Session.Status())
	assert.False(t, e.services.Poller.Running())

	e.authenticate(t)

	accounts := e.services.Accounts.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, models.AccountID("1"), accounts[0].ID)
	assert.Equal(t, "a@b.com", accounts[0].Email)
	assert.Equal(t, models.AccountActive, accounts[0].Status)

	e.clock.Step(30 * time.Second)
	assert.Eventually(t, func() bool {
		return e.srv.Calls(apitest.RouteList) == 2
	}, eventually, tick)
}

func TestClientServices_ProbeUnauthenticated(t *testing.T) {
	e := newE2E(t)
	require.NoError(t, e.adapter.Logout(context.Background()))

	assert.Equal(t, models.SessionUnauthenticated, e.services.Session.Probe(context.Background()))
	assert.False(t, e.services.Poller.Running())
	assert.Equal(t, 0, e.srv.Calls(apitest.RouteList))
}

func TestClientServices_ProbeServerDown(t *testing.T) {
	e := newE2E(t)
	e.srv.Fail(apitest.RouteStatus, 500, "boom")

	assert.Equal(t, models.SessionUnauthenticated, e.services.Session.Probe(context.Background()))
	assert.False(t, e.services.Poller.Running())
}

func TestClientServices_RemoveRefetches(t *testing.T) {
	e := newE2E(t, models.Account{ID: "1", Email: "a@b.com", Status: models.AccountActive})
	e.authenticate(t)

	require.NoError(t, e.services.Accounts.Remove(context.Background(), "1"))

	assert.Equal(t, 1, e.srv.Calls(apitest.RouteDelete))
	assert.Equal(t, 2, e.srv.Calls(apitest.RouteList))
	assert.Empty(t, e.services.Accounts.Accounts())
	assert.False(t, e.services.Accounts.Busy())
}

func TestClientServices_AddRefetches(t *testing.T) {
	e := newE2E(t)
	e.authenticate(t)

	err := e.services.Accounts.Add(context.Background(), models.AccountDraft{Email: "new@x.de", Password: "pw"})
	require.NoError(t, err)

	accounts := e.services.Accounts.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "new@x.de", accounts[0].Email)
	assert.Equal(t, models.AccountInactive, accounts[0].Status)
}

func TestClientServices_AddInvalidMakesNoCalls(t *testing.T) {
	e := newE2E(t, models.Account{ID: "1", Email: "a@b.com"})
	e.authenticate(t)

	ctx := context.Background()
	assert.ErrorIs(t, e.services.Accounts.Add(ctx, models.AccountDraft{Email: "", Password: "x"}), ErrEmptyEmail)
	assert.ErrorIs(t, e.services.Accounts.Add(ctx, models.AccountDraft{Email: "x", Password: ""}), ErrEmptyPassword)

	assert.Equal(t, 0, e.srv.Calls(apitest.RouteCreate))
	assert.Len(t, e.services.Accounts.Accounts(), 1)
}

func TestClientServices_ExpiredSessionStopsPolling(t *testing.T) {
	e := newE2E(t, models.Account{ID: "1", Email: "a@b.com", Status: models.AccountActive})
	e.authenticate(t)

	e.srv.ExpireSessions()
	e.clock.Step(30 * time.Second)

	require.Eventually(t, func() bool {
		return e.services.Session.Status() == models.SessionUnauthenticated
	}, eventually, tick)
	assert.False(t, e.services.Poller.Running(), "ticker disarmed together with the transition")
	assert.Len(t, e.services.Accounts.Accounts(), 1, "stale cache is kept after a 401")

	e.services.Poller.Wait()
	calls := e.srv.Calls(apitest.RouteList)
	e.clock.Step(5 * 30 * time.Second)
	assert.Equal(t, calls, e.srv.Calls(apitest.RouteList))
}

func TestClientServices_SuccessFalseKeepsSession(t *testing.T) {
	e := newE2E(t, models.Account{ID: "1", Email: "a@b.com"})
	e.authenticate(t)

	e.srv.Fail(apitest.RouteList, 200, `{"success":false,"error":"db locked"}`)

	err := e.services.Accounts.Fetch(context.Background())

	assert.ErrorIs(t, err, adapter.ErrUnsuccessful)
	assert.Equal(t, models.SessionAuthenticated, e.services.Session.Status())
	assert.Len(t, e.services.Accounts.Accounts(), 1)
}

func TestClientServices_SyncAllRefreshesAfterDelay(t *testing.T) {
	e := newE2E(t, models.Account{ID: "1", Email: "a@b.com", Status: models.AccountInactive})
	e.authenticate(t)

	require.NoError(t, e.services.Sync.SyncAll(context.Background()))
	assert.False(t, e.services.Sync.Busy())
	assert.Equal(t, 1, e.srv.Calls(apitest.RouteList))

	e.clock.Step(2 * time.Second)
	e.services.Sync.Wait()

	assert.Equal(t, 2, e.srv.Calls(apitest.RouteList))
	accounts := e.services.Accounts.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, models.AccountActive, accounts[0].Status)
	assert.NotNil(t, accounts[0].LastLogin)
}

func TestClientServices_LoginAfterLogout(t *testing.T) {
	e := newE2E(t, models.Account{ID: "1", Email: "a@b.com"})
	e.authenticate(t)
	ctx := context.Background()

	require.NoError(t, e.services.Logout(ctx))
	assert.Equal(t, models.SessionUnauthenticated, e.services.Session.Status())
	assert.False(t, e.services.Poller.Running())
	assert.Empty(t, e.services.Accounts.Accounts())
	e.services.Poller.Wait()

	assert.ErrorIs(t, e.services.Session.Login(ctx, "wrong"), ErrWrongPassword)
	require.NoError(t, e.services.Session.Login(ctx, testPassword))

	assert.True(t, e.services.Authenticated())
	assert.True(t, e.services.Poller.Running())
	assert.Eventually(t, func() bool {
		return len(e.services.Accounts.Accounts()) == 1
	}, eventually, tick)
}

func TestClientServices_LogoutWhenServerDown(t *testing.T) {
	e := newE2E(t)
	e.authenticate(t)

	e.srv.Fail(apitest.RouteLogout, 502, "")

	require.NoError(t, e.services.Logout(context.Background()))
	assert.Equal(t, models.SessionUnauthenticated, e.services.Session.Status())
	assert.False(t, e.services.Poller.Running())
}
