package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/models"
	"k8s.io/utils/clock"
)

type syncOrchestrator struct {
	ctx           context.Context
	serverAdapter adapter.ServerAdapter
	store         AccountStore
	session       SessionGate
	clock         clock.Clock
	refreshDelay  time.Duration
	logger        *logger.Logger

	busy *BusyFlag
	wg   sync.WaitGroup

	listeners listeners[struct{}]
}

// NewSyncOrchestrator returns an orchestrator whose deferred refreshes fire
// refreshDelay after an acknowledged sync, measured on clk. Refreshes that
// have not fired when ctx is cancelled are dropped.
func NewSyncOrchestrator(
	ctx context.Context,
	serverAdapter adapter.ServerAdapter,
	store AccountStore,
	session SessionGate,
	clk clock.Clock,
	refreshDelay time.Duration,
	log *logger.Logger,
) SyncOrchestrator {
	o := &syncOrchestrator{
		ctx:           ctx,
		serverAdapter: serverAdapter,
		store:         store,
		session:       session,
		clock:         clk,
		refreshDelay:  refreshDelay,
		logger:        log.Component("sync"),
	}
	o.busy = NewBusyFlag(func(bool) { o.listeners.notify(struct{}{}) })

	return o
}

func (o *syncOrchestrator) SyncAll(ctx context.Context) error {
	return o.trigger(ctx, "sync accounts", o.serverAdapter.SyncAccounts)
}

func (o *syncOrchestrator) SyncOne(ctx context.Context, id models.AccountID) error {
	if id == "" {
		return ErrEmptyAccountID
	}
	return o.trigger(ctx, "sync account "+id.String(), func(ctx context.Context) error {
		return o.serverAdapter.SyncAccount(ctx, id)
	})
}

func (o *syncOrchestrator) Busy() bool {
	return o.busy.Busy()
}

func (o *syncOrchestrator) Wait() {
	o.wg.Wait()
}

func (o *syncOrchestrator) Subscribe(fn func()) {
	o.listeners.add(func(struct{}) { fn() })
}

func (o *syncOrchestrator) trigger(ctx context.Context, op string, call func(context.Context) error) error {
	release := o.busy.Acquire()
	err := call(ctx)
	release()

	if err != nil {
		if adapter.IsUnauthorized(err) {
			o.logger.Warn().Str("op", op).Msg("session rejected by server")
			o.session.MarkUnauthenticated()
			return nil
		}
		o.logger.Error().Err(err).Str("op", op).Msg("sync request failed")
		return fmt.Errorf("%s: %w", op, err)
	}

	o.logger.Info().Str("op", op).Dur("refresh_in", o.refreshDelay).Msg("sync acknowledged")
	o.scheduleRefresh()
	return nil
}

// scheduleRefresh arms the timer before returning, so a fake clock stepped
// right after the sync call observes it.
func (o *syncOrchestrator) scheduleRefresh() {
	timer := o.clock.NewTimer(o.refreshDelay)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		select {
		case <-timer.C():
		case <-o.ctx.Done():
			timer.Stop()
			return
		}

		if o.session.Status() != models.SessionAuthenticated {
			o.logger.Debug().Msg("session ended, skipping post-sync refresh")
			return
		}
		// Fetch logs its own failures.
		_ = o.store.Fetch(o.ctx)
	}()
}
