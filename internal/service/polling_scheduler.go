package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/models"
	"k8s.io/utils/clock"
)

type pollingScheduler struct {
	ctx      context.Context
	store    AccountStore
	clock    clock.WithTicker
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	ticker clock.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewPollingScheduler returns a stopped scheduler that calls store.Fetch
// every interval of clk while running. Fetches run with ctx, which Stop does
// not cancel.
func NewPollingScheduler(ctx context.Context, store AccountStore, clk clock.WithTicker, interval time.Duration, log *logger.Logger) PollingScheduler {
	return &pollingScheduler{
		ctx:      ctx,
		store:    store,
		clock:    clk,
		interval: interval,
		logger:   log.Component("poller"),
	}
}

func (p *pollingScheduler) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ticker != nil {
		return
	}

	p.ticker = p.clock.NewTicker(p.interval)
	p.stop = make(chan struct{})

	p.wg.Add(1)
	go p.loop(p.ticker, p.stop)

	p.logger.Info().Dur("interval", p.interval).Msg("polling started")
}

func (p *pollingScheduler) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ticker == nil {
		return
	}

	p.ticker.Stop()
	close(p.stop)
	p.ticker = nil
	p.stop = nil

	p.logger.Info().Msg("polling stopped")
}

func (p *pollingScheduler) OnSessionChange(status models.SessionStatus) {
	if status == models.SessionAuthenticated {
		p.Start()
		return
	}
	p.Stop()
}

func (p *pollingScheduler) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticker != nil
}

func (p *pollingScheduler) Wait() {
	p.wg.Wait()
}

// loop owns one run. Stop never waits for it: a fetch inside the loop may end
// the session, which calls Stop on this goroutine.
func (p *pollingScheduler) loop(ticker clock.Ticker, stop <-chan struct{}) {
	defer p.wg.Done()

	p.poll(stop)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			p.poll(stop)
		}
	}
}

func (p *pollingScheduler) poll(stop <-chan struct{}) {
	select {
	case <-stop:
		return
	case <-p.ctx.Done():
		return
	default:
	}

	// Fetch logs its own failures.
	_ = p.store.Fetch(p.ctx)
}
