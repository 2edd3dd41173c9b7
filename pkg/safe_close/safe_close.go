// Package safe_close coordinates graceful shutdown of multiple background
// loops. Each loop attaches itself and is handed a close signal channel plus
// a done callback; SendCloseSignal broadcasts once and WaitClosed blocks
// until every attached loop reported done.
package safe_close

import (
	"sync"
)

type SafeClose struct {
	mu sync.Mutex
	wg sync.WaitGroup

	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a background loop. The loop must call done exactly once
// when it has fully stopped, and should stop when closeSignal is closed.
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal broadcasts the close signal. The first non-nil error wins
// and is returned by WaitClosed. Safe to call multiple times.
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached loop called done, then returns the
// error passed to the first SendCloseSignal, if any.
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CloseSignal exposes the broadcast channel for select loops that cannot use
// Attach.
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}
