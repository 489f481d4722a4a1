package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServices struct {
	closed atomic.Int32
}

func (f *fakeServices) Close() { f.closed.Add(1) }

type fakeUI func(ctx context.Context) error

func (f fakeUI) Run(ctx context.Context) error { return f(ctx) }

func TestApp_Run_UIQuitClosesServices(t *testing.T) {
	services := &fakeServices{}
	app := NewApp(services, fakeUI(func(context.Context) error { return nil }), logger.Nop())

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, int32(1), services.closed.Load())
}

func TestApp_Run_UIErrorIsReturned(t *testing.T) {
	services := &fakeServices{}
	boom := errors.New("terminal gone")
	app := NewApp(services, fakeUI(func(context.Context) error { return boom }), logger.Nop())

	err := app.Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), services.closed.Load())
}

func TestApp_Run_ContextCancelStopsUI(t *testing.T) {
	services := &fakeServices{}
	started := make(chan struct{})
	app := NewApp(services, fakeUI(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	}), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	<-started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
	assert.Equal(t, int32(1), services.closed.Load())
}
