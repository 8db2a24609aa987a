// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package blocking

import (
	"sync/atomic"
	"time"

	"github.com/jskootsky/ringbuf"
)

// Index decorates a plain ringbuf.Index with a semaphore and a closed
// flag. Every Store (i.e. every advanceRead or advanceWrite on whichever
// side owns this index) gives the semaphore, so the opposite side's
// blocking Push/Pop wakes as soon as progress is possible: the
// producer's semaphore is given by the consumer whenever it advances
// read, and symmetrically for write.
type Index struct {
	inner  ringbuf.Index
	sem    Semaphore
	closed atomic.Bool
}

// NewIndex wraps a fresh plain counter with sem.
func NewIndex(sem Semaphore) *Index {
	return &Index{inner: ringbuf.NewIndex(), sem: sem}
}

func (i *Index) Load() uint64 { return i.inner.Load() }

func (i *Index) Store(v uint64) {
	i.inner.Store(v)
	i.sem.Give()
}

// Close sets closed and performs one final give, releasing any current
// waiter. Idempotent: the ring's Producer/Consumer Close already guards
// against a second call, but Close itself is safe to call more than
// once.
func (i *Index) Close() {
	i.closed.Store(true)
	i.sem.Give()
}

func (i *Index) IsClosed() bool { return i.closed.Load() }

// Wait blocks this side until its semaphore is given or timeout elapses,
// returning true on signal and false on timeout.
func (i *Index) Wait(remaining time.Duration, hasTimeout bool) bool {
	return i.sem.Take(remaining, hasTimeout)
}
