package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// edgeRecorder collects BusyFlag edges.
type edgeRecorder struct {
	mu    sync.Mutex
	edges []bool
}

func (r *edgeRecorder) record(busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edges = append(r.edges, busy)
}

func (r *edgeRecorder) get() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.edges...)
}

func TestBusyFlag_AcquireRelease(t *testing.T) {
	rec := &edgeRecorder{}
	flag := NewBusyFlag(rec.record)

	assert.False(t, flag.Busy())

	release := flag.Acquire()
	assert.True(t, flag.Busy())

	release()
	assert.False(t, flag.Busy())
	assert.Equal(t, []bool{true, false}, rec.get())
}

func TestBusyFlag_ReleaseIsIdempotent(t *testing.T) {
	rec := &edgeRecorder{}
	flag := NewBusyFlag(rec.record)

	release := flag.Acquire()
	release()
	release()

	other := flag.Acquire()
	release()
	assert.True(t, flag.Busy(), "a stale release must not clear another holder")

	other()
	assert.False(t, flag.Busy())
	assert.Equal(t, []bool{true, false, true, false}, rec.get())
}

func TestBusyFlag_OverlappingHolders(t *testing.T) {
	rec := &edgeRecorder{}
	flag := NewBusyFlag(rec.record)

	first := flag.Acquire()
	second := flag.Acquire()
	first()
	assert.True(t, flag.Busy())
	second()
	assert.False(t, flag.Busy())

	assert.Equal(t, []bool{true, false}, rec.get())
}

func TestBusyFlag_Concurrent(t *testing.T) {
	flag := NewBusyFlag(nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := flag.Acquire()
			defer release()
		}()
	}
	wg.Wait()

	assert.False(t, flag.Busy())
}

func TestListeners_NotifyInOrder(t *testing.T) {
	var l listeners[int]
	var got []int
	l.add(func(v int) { got = append(got, v) })
	l.add(func(v int) { got = append(got, v*10) })

	l.notify(2)

	assert.Equal(t, []int{2, 20}, got)
}
