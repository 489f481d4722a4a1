package service

import (
	"slices"
	"sync"
)

// BusyFlag is an advisory in-flight marker. It does not exclude anything:
// overlapping holders are counted and the flag reads true while at least one
// holder has not released.
type BusyFlag struct {
	mu       sync.Mutex
	holders  int
	onChange func(busy bool)
}

// NewBusyFlag returns a flag that calls onChange on every false→true and
// true→false edge. onChange may be nil.
func NewBusyFlag(onChange func(busy bool)) *BusyFlag {
	return &BusyFlag{onChange: onChange}
}

// Acquire marks the flag busy and returns the matching release. Calling the
// release more than once has no further effect, so it is safe to both defer
// it and call it early.
func (b *BusyFlag) Acquire() (release func()) {
	b.mu.Lock()
	b.holders++
	edge := b.holders == 1
	b.mu.Unlock()

	if edge {
		b.changed(true)
	}

	var once sync.Once
	return func() {
		once.Do(b.release)
	}
}

func (b *BusyFlag) release() {
	b.mu.Lock()
	b.holders--
	edge := b.holders == 0
	b.mu.Unlock()

	if edge {
		b.changed(false)
	}
}

// Busy reports whether any holder is active.
func (b *BusyFlag) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.holders > 0
}

func (b *BusyFlag) changed(busy bool) {
	if b.onChange != nil {
		b.onChange(busy)
	}
}

// listeners is a copy-on-notify subscriber list.
type listeners[T any] struct {
	mu  sync.Mutex
	fns []func(T)
}

func (l *listeners[T]) add(fn func(T)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fns = append(l.fns, fn)
}

func (l *listeners[T]) notify(v T) {
	l.mu.Lock()
	fns := slices.Clone(l.fns)
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
