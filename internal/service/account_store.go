package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/models"
)

type accountStore struct {
	serverAdapter adapter.ServerAdapter
	session       SessionGate
	logger        *logger.Logger

	busy *BusyFlag

	mu         sync.RWMutex
	accounts   []models.Account
	generation uint64

	listeners listeners[struct{}]
}

// NewAccountStore returns an empty store. Authorization failures are
// reported to session.
func NewAccountStore(serverAdapter adapter.ServerAdapter, session SessionGate, log *logger.Logger) AccountStore {
	s := &accountStore{
		serverAdapter: serverAdapter,
		session:       session,
		logger:        log.Component("accounts"),
		accounts:      []models.Account{},
	}
	s.busy = NewBusyFlag(func(bool) { s.listeners.notify(struct{}{}) })

	return s
}

func (s *accountStore) Fetch(ctx context.Context) error {
	release := s.busy.Acquire()
	defer release()

	return s.fetch(ctx)
}

func (s *accountStore) Add(ctx context.Context, draft models.AccountDraft) error {
	if strings.TrimSpace(draft.Email) == "" {
		return ErrEmptyEmail
	}
	if draft.Password == "" {
		return ErrEmptyPassword
	}

	release := s.busy.Acquire()
	defer release()

	if err := s.serverAdapter.CreateAccount(ctx, draft); err != nil {
		return s.fail("add account", err)
	}

	s.logger.Info().Str("email", draft.Email).Msg("account added")
	return s.fetch(ctx)
}

func (s *accountStore) Remove(ctx context.Context, id models.AccountID) error {
	if id == "" {
		return ErrEmptyAccountID
	}

	release := s.busy.Acquire()
	defer release()

	if err := s.serverAdapter.DeleteAccount(ctx, id); err != nil {
		return s.fail("remove account", err)
	}

	s.logger.Info().Str("account_id", id.String()).Msg("account removed")
	return s.fetch(ctx)
}

func (s *accountStore) Accounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.accounts)
}

func (s *accountStore) Busy() bool {
	return s.busy.Busy()
}

func (s *accountStore) Reset() {
	s.mu.Lock()
	s.accounts = []models.Account{}
	s.generation++
	s.mu.Unlock()

	s.listeners.notify(struct{}{})
}

func (s *accountStore) Subscribe(fn func()) {
	s.listeners.add(func(struct{}) { fn() })
}

// fetch does the round trip without touching the busy flag. A snapshot that
// arrives after a Reset is dropped.
func (s *accountStore) fetch(ctx context.Context) error {
	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	accounts, err := s.serverAdapter.ListAccounts(ctx)
	if err != nil {
		return s.fail("fetch accounts", err)
	}

	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		s.logger.Debug().Msg("dropping accounts fetched before reset")
		return nil
	}
	s.accounts = accounts
	s.mu.Unlock()

	s.logger.Debug().Int("count", len(accounts)).Msg("accounts fetched")
	s.listeners.notify(struct{}{})
	return nil
}

// fail classifies err. An authorization failure ends the session and is
// swallowed; anything else is logged and returned.
func (s *accountStore) fail(op string, err error) error {
	if adapter.IsUnauthorized(err) {
		s.logger.Warn().Str("op", op).Msg("session rejected by server")
		s.session.MarkUnauthenticated()
		return nil
	}

	s.logger.Error().Err(err).Str("op", op).Msg("request failed")
	return fmt.Errorf("%s: %w", op, err)
}
