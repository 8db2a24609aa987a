// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package blocking wraps a ringbuf.Index with a binary semaphore and a
// closed flag, giving Push/Pop calls that sleep with an optional timeout
// instead of returning immediately. The semaphore is a capacity-1
// buffered channel rather than a condvar: sync.Cond has no native
// wait-with-timeout, and a capacity-1 channel gives give/try-take/
// take(timeout) directly via select, the idiomatic Go shape for exactly
// this rendezvous.
package blocking

import "time"

// Semaphore is a binary (one-bit) latch: Give sets it (idempotent if
// already set), TryTake atomically clears it and reports whether it had
// been set, Take blocks until set or until timeout elapses.
type Semaphore interface {
	Give()
	TryTake() bool
	// Take waits for the semaphore to be given. hasTimeout distinguishes
	// "wait forever" (false) from "wait up to timeout" (true); a
	// non-positive timeout with hasTimeout true polls once without
	// sleeping. Returns true on signal, false on timeout.
	Take(timeout time.Duration, hasTimeout bool) bool
}

// StdSemaphore is the default Semaphore: a capacity-1 channel acting as
// a one-bit latch.
type StdSemaphore struct {
	ch chan struct{}
}

// NewStdSemaphore returns an unsignalled StdSemaphore.
func NewStdSemaphore() *StdSemaphore {
	return &StdSemaphore{ch: make(chan struct{}, 1)}
}

// Give signals the semaphore. Does nothing if already signalled.
func (s *StdSemaphore) Give() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// TryTake clears the signal and reports whether it had been set.
func (s *StdSemaphore) TryTake() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// Take blocks until signalled or timeout elapses.
func (s *StdSemaphore) Take(timeout time.Duration, hasTimeout bool) bool {
	if !hasTimeout {
		<-s.ch
		return true
	}
	if timeout <= 0 {
		return s.TryTake()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-s.ch:
		return true
	case <-timer.C:
		return false
	}
}
